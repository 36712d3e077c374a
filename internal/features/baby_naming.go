package features

import "github.com/mark3labs/augur/internal/form"

var (
	genders  = []string{"boy", "girl", "any"}
	elements = []string{"metal", "wood", "water", "fire", "earth"}
)

var babyNaming = func() *form.Definition {
	def := form.MustDefinition("baby-naming", "Baby naming", []form.Step{
		{
			Index: 0,
			Key:   "family",
			Title: "Family",
			Fields: []form.Field{
				{
					Name:  "surname",
					Label: "Family name",
					Kind:  form.KindString,
					Rules: []form.Rule{form.Required(), form.MaxLength(30)},
				},
			},
		},
		{
			Index: 1,
			Key:   "child",
			Title: "About the child",
			Fields: []form.Field{
				{
					Name:    "gender",
					Label:   "Gender",
					Kind:    form.KindString,
					Options: genders,
					Rules:   []form.Rule{form.Required(), form.OneOf(genders...)},
				},
				birthYear(),
			},
		},
		{
			Index: 2,
			Key:   "preferences",
			Title: "Preferences",
			Fields: []form.Field{
				{
					Name:    "elements",
					Label:   "Favoured elements",
					Kind:    form.KindStrings,
					Options: elements,
					Rules:   []form.Rule{form.MinSelected(1), form.MaxSelected(2), form.SubsetOf(elements...)},
				},
				{
					Name:    "syllables",
					Label:   "Syllables",
					Kind:    form.KindInt,
					Default: defaultInt(2),
					Rules:   []form.Rule{form.IntRange(1, 3)},
				},
			},
		},
		{
			Index: 3,
			Key:   "notes",
			Title: "Notes",
			Fields: []form.Field{
				{
					Name:      "meaning",
					Label:     "Desired meaning",
					Kind:      form.KindString,
					Multiline: true,
					Rules:     []form.Rule{form.MaxLength(500)},
				},
				{
					Name:    "include_middle_name",
					Label:   "Suggest a middle name",
					Kind:    form.KindBool,
					Default: defaultBool(true),
				},
			},
		},
	})
	def.Description = "Collects family preferences for name suggestions."
	return def
}()
