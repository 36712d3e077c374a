package form

import "maps"

// ErrorStore holds the messages from the last validation pass, keyed by field.
// It never holds an entry with an empty message.
type ErrorStore struct {
	errs map[string]string
}

// NewErrorStore creates an empty error store.
func NewErrorStore() *ErrorStore {
	return &ErrorStore{errs: make(map[string]string)}
}

// SetAll replaces the full error set. Empty messages are dropped.
func (e *ErrorStore) SetAll(errs map[string]string) {
	e.errs = make(map[string]string, len(errs))
	for name, msg := range errs {
		if msg != "" {
			e.errs[name] = msg
		}
	}
}

// Clear removes the entry for one field if present.
func (e *ErrorStore) Clear(name string) {
	delete(e.errs, name)
}

// ClearFields removes the entries for several fields.
func (e *ErrorStore) ClearFields(names ...string) {
	for _, name := range names {
		delete(e.errs, name)
	}
}

// Get returns the message for a field.
func (e *ErrorStore) Get(name string) (string, bool) {
	msg, ok := e.errs[name]
	return msg, ok
}

// All returns a copy of every stored message.
func (e *ErrorStore) All() map[string]string {
	return maps.Clone(e.errs)
}

// Len returns the number of stored messages.
func (e *ErrorStore) Len() int {
	return len(e.errs)
}

// Reset drops every message.
func (e *ErrorStore) Reset() {
	clear(e.errs)
}
