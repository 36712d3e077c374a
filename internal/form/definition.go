// Package form implements a generic multi-step wizard engine.
//
// A Definition declares ordered steps, the fields each step owns and the
// rules those fields must satisfy. A Wizard walks one user through a
// Definition: it stores field values, gates forward navigation on the
// current step's rules, and emits an immutable Payload on submit.
package form

import (
	"fmt"
	"strings"

	"github.com/gosimple/slug"
)

// Field declares one named, typed input.
type Field struct {
	Name      string   // Stable identifier, unique within a definition
	Label     string   // Default label; translations use the key "field.<Name>"
	Kind      Kind     // Declared value kind
	Default   *Value   // Returned by Get when the field was never set
	Options   []string // Choices for single-choice or multi-select fields
	Multiline bool     // Rendering hint for long text
	Rules     []Rule   // Checked in order, first failure wins
}

// DefaultValue returns the declared default or the kind's zero value.
func (f Field) DefaultValue() Value {
	if f.Default != nil {
		return *f.Default
	}
	return Zero(f.Kind)
}

// Step is one ordered stage owning a disjoint set of fields.
type Step struct {
	Index  int
	Key    string // Stable identifier; translations use "step.<definition>.<Key>"
	Title  string // Default title
	Fields []Field
}

// FieldNames returns the names of the fields the step owns, in declaration order.
func (s Step) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Getter reads field values.
type Getter interface {
	Get(name string) Value
}

// Normalizer derives field values from other fields. It runs after every
// edit of a field listed in DependsOn and may only write fields in Targets.
type Normalizer struct {
	Name      string
	DependsOn []string
	Targets   []string
	Apply     func(fields Getter) map[string]Value
}

// Definition is the immutable declaration of one wizard.
type Definition struct {
	ID          string
	Title       string
	Description string
	Steps       []Step
	Normalizers []Normalizer

	fields   map[string]Field
	stepOf   map[string]int
	triggers map[string][]int // field name -> normalizer indexes
}

// NewDefinition validates a declaration and indexes its fields.
// Configuration mistakes fail here rather than at runtime.
func NewDefinition(id, title string, steps []Step, normalizers ...Normalizer) (*Definition, error) {
	if len(steps) == 0 {
		return nil, ErrNoSteps
	}
	if id == "" {
		id = slug.Make(title)
	}

	def := &Definition{
		ID:          id,
		Title:       title,
		Steps:       make([]Step, len(steps)),
		Normalizers: append([]Normalizer(nil), normalizers...),
		fields:      make(map[string]Field),
		stepOf:      make(map[string]int),
		triggers:    make(map[string][]int),
	}

	for i, step := range steps {
		if step.Index != i {
			return nil, fmt.Errorf("step %q at position %d has index %d: %w", step.Key, i, step.Index, ErrStepIndex)
		}
		for _, f := range step.Fields {
			if err := checkField(f); err != nil {
				return nil, fmt.Errorf("step %d: %w", i, err)
			}
			if prev, exists := def.stepOf[f.Name]; exists {
				return nil, fmt.Errorf("field %q in steps %d and %d: %w", f.Name, prev, i, ErrDuplicateField)
			}
			def.fields[f.Name] = f
			def.stepOf[f.Name] = i
		}
		step.Fields = append([]Field(nil), step.Fields...)
		def.Steps[i] = step
	}

	for i, n := range def.Normalizers {
		if n.Apply == nil {
			return nil, fmt.Errorf("normalizer %q has no apply func: %w", n.Name, ErrInvalidField)
		}
		for _, name := range append(append([]string(nil), n.DependsOn...), n.Targets...) {
			if _, ok := def.fields[name]; !ok {
				return nil, fmt.Errorf("normalizer %q references %q: %w", n.Name, name, ErrUndeclaredField)
			}
		}
		for _, name := range n.DependsOn {
			def.triggers[name] = append(def.triggers[name], i)
		}
	}

	return def, nil
}

// MustDefinition is like NewDefinition but panics on error.
// Use it for static declarations.
func MustDefinition(id, title string, steps []Step, normalizers ...Normalizer) *Definition {
	def, err := NewDefinition(id, title, steps, normalizers...)
	if err != nil {
		panic(fmt.Sprintf("form: invalid definition %q: %v", title, err))
	}
	return def
}

func checkField(f Field) error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("field with empty name: %w", ErrInvalidField)
	}
	if f.Kind < KindString || f.Kind > KindStrings {
		return fmt.Errorf("field %q has unknown kind %d: %w", f.Name, f.Kind, ErrInvalidField)
	}
	if f.Default != nil && f.Default.Kind() != f.Kind {
		return fmt.Errorf("field %q default is %s, want %s: %w", f.Name, f.Default.Kind(), f.Kind, ErrInvalidField)
	}
	if f.Kind == KindStrings && len(f.Options) == 0 {
		return fmt.Errorf("multi-select field %q has no options: %w", f.Name, ErrInvalidField)
	}
	for i, r := range f.Rules {
		if r == nil {
			return fmt.Errorf("field %q rule %d is nil: %w", f.Name, i, ErrInvalidField)
		}
	}
	return nil
}

// Len returns the number of steps.
func (d *Definition) Len() int { return len(d.Steps) }

// Field returns the declaration for a field name.
func (d *Definition) Field(name string) (Field, bool) {
	f, ok := d.fields[name]
	return f, ok
}

// StepOf returns the index of the step that owns a field.
func (d *Definition) StepOf(name string) (int, bool) {
	i, ok := d.stepOf[name]
	return i, ok
}

// FieldNames returns every field name in step then declaration order.
func (d *Definition) FieldNames() []string {
	var names []string
	for _, s := range d.Steps {
		names = append(names, s.FieldNames()...)
	}
	return names
}

func (d *Definition) normalizersFor(name string) []Normalizer {
	idx := d.triggers[name]
	out := make([]Normalizer, len(idx))
	for i, n := range idx {
		out[i] = d.Normalizers[n]
	}
	return out
}
