package features

import "github.com/mark3labs/augur/internal/form"

var focusAreas = []string{"love", "career", "health", "finance", "family"}

var birthChart = func() *form.Definition {
	def := form.MustDefinition("birth-chart", "Birth chart", []form.Step{
		{
			Index:  0,
			Key:    "identity",
			Title:  "Who is this chart for?",
			Fields: []form.Field{fullName(60)},
		},
		{
			Index:  1,
			Key:    "birth_date",
			Title:  "Date of birth",
			Fields: birthDate(),
		},
		{
			Index: 2,
			Key:   "details",
			Title: "Birth details",
			Fields: []form.Field{
				{
					Name:  "birth_time",
					Label: "Time of birth (HH:MM)",
					Kind:  form.KindString,
					Rules: []form.Rule{form.Matches(clockPattern, "HH:MM")},
				},
				{
					Name:  "birth_place",
					Label: "Place of birth",
					Kind:  form.KindString,
					Rules: []form.Rule{form.Required(), form.MaxLength(80)},
				},
				{
					Name:    "focus_areas",
					Label:   "Focus areas",
					Kind:    form.KindStrings,
					Options: focusAreas,
					Rules:   []form.Rule{form.MinSelected(1), form.SubsetOf(focusAreas...)},
				},
			},
		},
	}, clampBirthDay)
	def.Description = "Collects the birth data needed to cast a natal chart."
	return def
}()
