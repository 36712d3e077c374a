package form

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Message keys produced by the built-in rules.
const (
	KeyRequired      = "form.error.required"
	KeyTooShort      = "form.error.too_short"
	KeyTooLong       = "form.error.too_long"
	KeyOutOfRange    = "form.error.out_of_range"
	KeyYearTooLate   = "form.error.year_too_late"
	KeyNotAnOption   = "form.error.not_an_option"
	KeySelectAtLeast = "form.error.select_at_least"
	KeySelectAtMost  = "form.error.select_at_most"
	KeyUnknownOption = "form.error.unknown_option"
	KeyInvalidFormat = "form.error.invalid_format"
)

// Violation is a failed rule: a text key plus positional parameters.
type Violation struct {
	Key    string
	Params []any
}

// Rule checks one field value. It returns nil when the value passes.
// Rules must be pure.
type Rule func(v Value) *Violation

func violation(key string, params ...any) *Violation {
	return &Violation{Key: key, Params: params}
}

// fieldValidate backs the primitive checks. validator.Validate is safe for
// concurrent use once configured.
var fieldValidate = validator.New()

func check(value any, tag string) bool {
	return fieldValidate.Var(value, tag) == nil
}

// Required fails on a blank string, a zero int, false, or an empty selection.
func Required() Rule {
	return func(v Value) *Violation {
		var ok bool
		switch v.Kind() {
		case KindInt:
			ok = check(v.IntVal(), "required")
		case KindBool:
			ok = v.BoolVal()
		case KindStrings:
			ok = check(v.List(), "required,min=1")
		default:
			ok = check(strings.TrimSpace(v.Str()), "required")
		}
		if !ok {
			return violation(KeyRequired)
		}
		return nil
	}
}

// MinLength fails when a non-empty string has fewer than n characters.
func MinLength(n int) Rule {
	tag := fmt.Sprintf("min=%d", n)
	return func(v Value) *Violation {
		s := strings.TrimSpace(v.Str())
		if v.Kind() != KindString || s == "" {
			return nil
		}
		if !check(s, tag) {
			return violation(KeyTooShort, n)
		}
		return nil
	}
}

// MaxLength fails when a string has more than n characters.
func MaxLength(n int) Rule {
	tag := fmt.Sprintf("max=%d", n)
	return func(v Value) *Violation {
		if v.Kind() != KindString {
			return nil
		}
		if !check(strings.TrimSpace(v.Str()), tag) {
			return violation(KeyTooLong, n)
		}
		return nil
	}
}

// IntRange fails when an int falls outside [lo, hi].
func IntRange(lo, hi int) Rule {
	tag := fmt.Sprintf("gte=%d,lte=%d", lo, hi)
	return func(v Value) *Violation {
		if v.Kind() != KindInt {
			return nil
		}
		if !check(v.IntVal(), tag) {
			return violation(KeyOutOfRange, lo, hi)
		}
		return nil
	}
}

// YearNotAfterNext fails when a year is later than the current year plus one.
// A nil clock uses time.Now.
func YearNotAfterNext(clock func() time.Time) Rule {
	if clock == nil {
		clock = time.Now
	}
	return func(v Value) *Violation {
		if v.Kind() != KindInt {
			return nil
		}
		limit := clock().Year() + 1
		if v.IntVal() > limit {
			return violation(KeyYearTooLate, limit)
		}
		return nil
	}
}

// OneOf fails when a non-empty string is not one of options.
func OneOf(options ...string) Rule {
	return func(v Value) *Violation {
		if v.Kind() != KindString || v.Str() == "" {
			return nil
		}
		if !slices.Contains(options, v.Str()) {
			return violation(KeyNotAnOption, strings.Join(options, ", "))
		}
		return nil
	}
}

// MinSelected fails when fewer than n options are selected.
// It yields one violation for the field no matter how many are missing.
func MinSelected(n int) Rule {
	tag := fmt.Sprintf("min=%d", n)
	return func(v Value) *Violation {
		if v.Kind() != KindStrings {
			return nil
		}
		if !check(v.List(), tag) {
			return violation(KeySelectAtLeast, n)
		}
		return nil
	}
}

// MaxSelected fails when more than n options are selected.
func MaxSelected(n int) Rule {
	tag := fmt.Sprintf("max=%d", n)
	return func(v Value) *Violation {
		if v.Kind() != KindStrings {
			return nil
		}
		if !check(v.List(), tag) {
			return violation(KeySelectAtMost, n)
		}
		return nil
	}
}

// SubsetOf fails when a selection contains an undeclared option.
func SubsetOf(options ...string) Rule {
	return func(v Value) *Violation {
		if v.Kind() != KindStrings {
			return nil
		}
		for _, item := range v.List() {
			if !slices.Contains(options, item) {
				return violation(KeyUnknownOption, item)
			}
		}
		return nil
	}
}

// Matches fails when a non-empty string does not match re. hint is passed
// as the message parameter, e.g. "HH:MM".
func Matches(re *regexp.Regexp, hint string) Rule {
	return func(v Value) *Violation {
		s := strings.TrimSpace(v.Str())
		if v.Kind() != KindString || s == "" {
			return nil
		}
		if !re.MatchString(s) {
			return violation(KeyInvalidFormat, hint)
		}
		return nil
	}
}

// All composes rules; the first failure wins.
func All(rules ...Rule) Rule {
	return func(v Value) *Violation {
		for _, r := range rules {
			if viol := r(v); viol != nil {
				return viol
			}
		}
		return nil
	}
}
