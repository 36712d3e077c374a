package form

import (
	"encoding/json"
	"time"
)

// Payload is the immutable set of field values emitted by a successful submit.
type Payload struct {
	definition  string
	submittedAt time.Time
	order       []string
	values      map[string]Value
}

func newPayload(def *Definition, values map[string]Value, at time.Time) Payload {
	return Payload{
		definition:  def.ID,
		submittedAt: at,
		order:       def.FieldNames(),
		values:      values,
	}
}

// Definition returns the ID of the definition the payload was collected for.
func (p Payload) Definition() string { return p.definition }

// SubmittedAt returns when the payload was emitted.
func (p Payload) SubmittedAt() time.Time { return p.submittedAt }

// Names returns field names in step then declaration order.
func (p Payload) Names() []string { return append([]string(nil), p.order...) }

// Get returns a copy of a field value.
func (p Payload) Get(name string) (Value, bool) {
	v, ok := p.values[name]
	if !ok {
		return Value{}, false
	}
	return copyValue(v), true
}

// String returns a string field, or "" if absent.
func (p Payload) String(name string) string {
	v, _ := p.Get(name)
	return v.Str()
}

// Int returns an int field, or 0 if absent.
func (p Payload) Int(name string) int {
	v, _ := p.Get(name)
	return v.IntVal()
}

// Bool returns a bool field, or false if absent.
func (p Payload) Bool(name string) bool {
	v, _ := p.Get(name)
	return v.BoolVal()
}

// Strings returns a copy of a multi-select field, or nil if absent.
func (p Payload) Strings(name string) []string {
	v, _ := p.Get(name)
	return v.List()
}

// Fields returns a deep copy of every value.
func (p Payload) Fields() map[string]Value {
	out := make(map[string]Value, len(p.values))
	for name, v := range p.values {
		out[name] = copyValue(v)
	}
	return out
}

type payloadJSON struct {
	Definition  string           `json:"definition"`
	SubmittedAt time.Time        `json:"submitted_at"`
	Fields      map[string]Value `json:"fields"`
}

// MarshalJSON encodes the payload with plain field values.
func (p Payload) MarshalJSON() ([]byte, error) {
	return json.Marshal(payloadJSON{
		Definition:  p.definition,
		SubmittedAt: p.submittedAt,
		Fields:      p.values,
	})
}
