package features

import "github.com/mark3labs/augur/internal/form"

var interests = []string{"technology", "arts", "business", "education", "health", "public_service", "science"}

var careerReading = func() *form.Definition {
	def := form.MustDefinition("career-reading", "Career reading", []form.Step{
		{
			Index:  0,
			Key:    "profile",
			Title:  "Profile",
			Fields: []form.Field{fullName(60), birthYear()},
		},
		{
			Index: 1,
			Key:   "interests",
			Title: "Interests",
			Fields: []form.Field{
				{
					Name:    "interests",
					Label:   "Fields of interest",
					Kind:    form.KindStrings,
					Options: interests,
					Rules:   []form.Rule{form.MinSelected(1), form.MaxSelected(3), form.SubsetOf(interests...)},
				},
			},
		},
		{
			Index: 2,
			Key:   "experience",
			Title: "Experience",
			Fields: []form.Field{
				{
					Name:  "years_experience",
					Label: "Years of experience",
					Kind:  form.KindInt,
					Rules: []form.Rule{form.IntRange(0, 60)},
				},
				{
					Name:  "current_role",
					Label: "Current role",
					Kind:  form.KindString,
					Rules: []form.Rule{form.MaxLength(60)},
				},
			},
		},
		{
			Index: 3,
			Key:   "goals",
			Title: "Goals",
			Fields: []form.Field{
				{
					Name:      "goal",
					Label:     "What do you want to achieve?",
					Kind:      form.KindString,
					Multiline: true,
					Rules:     []form.Rule{form.Required(), form.MaxLength(500)},
				},
				{
					Name:  "open_to_relocation",
					Label: "Open to relocation",
					Kind:  form.KindBool,
				},
			},
		},
	})
	def.Description = "Collects interests and goals for a career reading."
	return def
}()
