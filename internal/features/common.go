package features

import (
	"regexp"

	"github.com/mark3labs/augur/internal/form"
)

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

func defaultInt(n int) *form.Value {
	v := form.Int(n)
	return &v
}

func defaultBool(b bool) *form.Value {
	v := form.Bool(b)
	return &v
}

func fullName(maxLen int) form.Field {
	return form.Field{
		Name:  "full_name",
		Label: "Full name",
		Kind:  form.KindString,
		Rules: []form.Rule{form.Required(), form.MaxLength(maxLen)},
	}
}

func birthYear() form.Field {
	return form.Field{
		Name:  "birth_year",
		Label: "Birth year",
		Kind:  form.KindInt,
		Rules: []form.Rule{form.Required(), form.IntRange(1900, 2100), form.YearNotAfterNext(clock)},
	}
}

// birthDate is the day/month/year triple shared by date-driven readings.
// Pair it with form.ClampDay("birth_day", "birth_month", "birth_year").
func birthDate() []form.Field {
	return []form.Field{
		{
			Name:  "birth_day",
			Label: "Day",
			Kind:  form.KindInt,
			Rules: []form.Rule{form.Required(), form.IntRange(1, 31)},
		},
		{
			Name:  "birth_month",
			Label: "Month",
			Kind:  form.KindInt,
			Rules: []form.Rule{form.Required(), form.IntRange(1, 12)},
		},
		birthYear(),
	}
}

var clampBirthDay = form.ClampDay("birth_day", "birth_month", "birth_year")
