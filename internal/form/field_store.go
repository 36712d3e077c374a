package form

import "fmt"

// FieldStore holds the current value of every field of one wizard instance.
// Fields are populated lazily and never removed once set.
type FieldStore struct {
	def    *Definition
	values map[string]Value
	onSet  func(name string)
}

// NewFieldStore creates an empty store for def. onSet, if non-nil, is called
// after every successful Set with the field name.
func NewFieldStore(def *Definition, onSet func(name string)) *FieldStore {
	return &FieldStore{
		def:    def,
		values: make(map[string]Value),
		onSet:  onSet,
	}
}

// Set overwrites or inserts a value. The value kind must match the field.
func (s *FieldStore) Set(name string, v Value) error {
	if err := s.put(name, v); err != nil {
		return err
	}
	if s.onSet != nil {
		s.onSet(name)
	}
	return nil
}

// put stores a value without firing the edit hook.
func (s *FieldStore) put(name string, v Value) error {
	f, ok := s.def.Field(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	if v.Kind() != f.Kind {
		return fmt.Errorf("%w: %q is %s, got %s", ErrKindMismatch, name, f.Kind, v.Kind())
	}
	s.values[name] = copyValue(v)
	return nil
}

// Get returns the current value, or the field's declared default if it was
// never set. Unknown names yield an empty string value.
func (s *FieldStore) Get(name string) Value {
	if v, ok := s.values[name]; ok {
		return copyValue(v)
	}
	if f, ok := s.def.Field(name); ok {
		return f.DefaultValue()
	}
	return Value{}
}

// Snapshot returns a deep copy of every field, defaults included.
func (s *FieldStore) Snapshot() map[string]Value {
	out := make(map[string]Value, len(s.def.fields))
	for _, name := range s.def.FieldNames() {
		out[name] = s.Get(name)
	}
	return out
}

// Reset drops every stored value.
func (s *FieldStore) Reset() {
	clear(s.values)
}

func copyValue(v Value) Value {
	if v.Kind() == KindStrings {
		return Strings(v.list...)
	}
	return v
}
