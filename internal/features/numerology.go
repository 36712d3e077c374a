package features

import "github.com/mark3labs/augur/internal/form"

var numerology = func() *form.Definition {
	def := form.MustDefinition("numerology", "Numerology", []form.Step{
		{Index: 0, Key: "identity", Title: "Your full birth name", Fields: []form.Field{fullName(80)}},
		{Index: 1, Key: "birth_date", Title: "Date of birth", Fields: birthDate()},
	}, clampBirthDay)
	def.Description = "Collects a name and birth date for a numerology profile."
	return def
}()
