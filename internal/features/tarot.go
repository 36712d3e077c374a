package features

import "github.com/mark3labs/augur/internal/form"

var spreads = []string{"single", "three_card", "celtic_cross"}

var tarot = func() *form.Definition {
	def := form.MustDefinition("tarot", "Tarot", []form.Step{
		{
			Index: 0,
			Key:   "question",
			Title: "Your question",
			Fields: []form.Field{
				{
					Name:      "question",
					Label:     "Question",
					Kind:      form.KindString,
					Multiline: true,
					Rules:     []form.Rule{form.Required(), form.MinLength(5), form.MaxLength(280)},
				},
			},
		},
		{
			Index: 1,
			Key:   "spread",
			Title: "Spread",
			Fields: []form.Field{
				{
					Name:    "spread",
					Label:   "Spread",
					Kind:    form.KindString,
					Options: spreads,
					Rules:   []form.Rule{form.Required(), form.OneOf(spreads...)},
				},
				{
					Name:  "reversed_cards",
					Label: "Allow reversed cards",
					Kind:  form.KindBool,
				},
			},
		},
	})
	def.Description = "Collects a question and a spread for a tarot draw."
	return def
}()
