package form

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Definition errors. NewDefinition wraps these with the offending step or field.
var (
	ErrNoSteps         = errors.New("definition has no steps")
	ErrStepIndex       = errors.New("step index does not match its position")
	ErrDuplicateField  = errors.New("field declared more than once")
	ErrUndeclaredField = errors.New("reference to undeclared field")
	ErrInvalidField    = errors.New("invalid field declaration")
)

// Runtime errors.
var (
	ErrUnknownField = errors.New("unknown field")
	ErrKindMismatch = errors.New("value kind does not match field")
	ErrNotFinalStep = errors.New("submit is only available on the final step")
	ErrSubmitted    = errors.New("wizard already submitted")
)

// ValidationError is returned by Submit when the final step fails validation.
type ValidationError struct {
	Step   int
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Errors))
	for name := range e.Errors {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Errors[name]))
	}
	return fmt.Sprintf("step %d invalid: %s", e.Step, strings.Join(parts, "; "))
}
