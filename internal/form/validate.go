package form

import "fmt"

// Translator resolves a text key with positional parameters into a
// human-readable string. Implementations fall back to the raw key.
type Translator interface {
	Lookup(key string, params ...any) string
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(key string, params ...any) string

// Lookup calls f.
func (f TranslatorFunc) Lookup(key string, params ...any) string { return f(key, params...) }

var fallbackMessages = map[string]string{
	KeyRequired:      "This field is required",
	KeyTooShort:      "Must be at least %d characters",
	KeyTooLong:       "Must be at most %d characters",
	KeyOutOfRange:    "Must be between %d and %d",
	KeyYearTooLate:   "Year cannot be later than %d",
	KeyNotAnOption:   "Choose one of: %s",
	KeySelectAtLeast: "Select at least %d option(s)",
	KeySelectAtMost:  "Select at most %d option(s)",
	KeyUnknownOption: "Unknown option %q",
	KeyInvalidFormat: "Use the format %s",
}

// FallbackTranslator resolves the built-in rule keys in English and
// returns any other key unchanged.
var FallbackTranslator Translator = TranslatorFunc(func(key string, params ...any) string {
	format, ok := fallbackMessages[key]
	if !ok {
		return key
	}
	return fmt.Sprintf(format, params...)
})

// Validate checks the fields owned by one step and returns field name to
// message for every failing field. An empty map means the step is valid.
// It reads only the step's own fields, so steps can be checked in any order.
// An out-of-range step index yields an empty map.
func Validate(def *Definition, step int, fields Getter, tr Translator) map[string]string {
	errs := make(map[string]string)
	if step < 0 || step >= def.Len() {
		return errs
	}
	if tr == nil {
		tr = FallbackTranslator
	}

	for _, f := range def.Steps[step].Fields {
		value := fields.Get(f.Name)
		for _, rule := range f.Rules {
			viol := rule(value)
			if viol == nil {
				continue
			}
			msg := tr.Lookup(viol.Key, viol.Params...)
			if msg == "" {
				msg = viol.Key
			}
			errs[f.Name] = msg
			break
		}
	}
	return errs
}
