package form

import "time"

// DaysIn returns the number of days in month of year. A year of 0 is
// treated as a leap year so that 29 February stays valid until a year is known.
func DaysIn(month, year int) int {
	if month < 1 || month > 12 {
		return 31
	}
	if year == 0 {
		year = 2000
	}
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ClampDay keeps a day field within the length of the month selected by the
// month and year fields. It runs when any of the three change.
func ClampDay(dayField, monthField, yearField string) Normalizer {
	return Normalizer{
		Name:      "clamp-" + dayField,
		DependsOn: []string{dayField, monthField, yearField},
		Targets:   []string{dayField},
		Apply: func(fields Getter) map[string]Value {
			day := fields.Get(dayField).IntVal()
			limit := DaysIn(fields.Get(monthField).IntVal(), fields.Get(yearField).IntVal())
			if day > limit {
				return map[string]Value{dayField: Int(limit)}
			}
			return nil
		},
	}
}
