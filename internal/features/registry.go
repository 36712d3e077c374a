// Package features declares the wizards augur offers. Each feature is a
// form.Definition; interpreting the submitted payload happens elsewhere.
package features

import (
	"sort"
	"time"

	"github.com/gosimple/slug"
	"github.com/mark3labs/augur/internal/form"
)

// Now is the clock used by year rules. Tests may replace it.
var Now = time.Now

func clock() time.Time { return Now() }

var registry = []*form.Definition{
	birthChart,
	numerology,
	babyNaming,
	careerReading,
	tarot,
}

// All returns every feature definition in menu order.
func All() []*form.Definition {
	return append([]*form.Definition(nil), registry...)
}

// Lookup finds a feature by ID. The ID is slugified first, so
// "Birth Chart" and "birth-chart" resolve to the same feature.
func Lookup(id string) (*form.Definition, bool) {
	id = slug.Make(id)
	for _, def := range registry {
		if def.ID == id {
			return def, true
		}
	}
	return nil, false
}

// IDs returns every feature ID, sorted.
func IDs() []string {
	ids := make([]string, len(registry))
	for i, def := range registry {
		ids[i] = def.ID
	}
	sort.Strings(ids)
	return ids
}

// TitleKey, DescriptionKey, StepKey, LabelKey and OptionKey name the text
// keys consumers resolve through a localizer.

func TitleKey(def *form.Definition) string { return "feature." + def.ID + ".title" }

func DescriptionKey(def *form.Definition) string { return "feature." + def.ID + ".description" }

func StepKey(def *form.Definition, step form.Step) string {
	return "step." + def.ID + "." + step.Key
}

func LabelKey(f form.Field) string { return "field." + f.Name }

func OptionKey(option string) string { return "option." + option }
