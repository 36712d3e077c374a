package form

import (
	"fmt"
	"slices"
	"time"

	"github.com/mark3labs/augur/internal/logger"
)

// State is a read-only snapshot of a wizard instance.
type State struct {
	Step      int
	Fields    map[string]Value
	Errors    map[string]string
	Submitted bool
}

// Option configures a Wizard.
type Option func(*Wizard)

// WithTranslator sets the translator used to resolve validation messages.
func WithTranslator(tr Translator) Option {
	return func(w *Wizard) { w.tr = tr }
}

// OnComplete registers a callback invoked exactly once per successful Submit.
func OnComplete(fn func(Payload)) Option {
	return func(w *Wizard) {
		if fn != nil {
			w.onComplete = append(w.onComplete, fn)
		}
	}
}

// WithClock overrides the time source used to stamp payloads.
func WithClock(now func() time.Time) Option {
	return func(w *Wizard) { w.now = now }
}

// Wizard walks one user through a Definition. It is not safe for concurrent
// use; callers that share an instance across goroutines must serialise access.
type Wizard struct {
	def        *Definition
	step       int
	fields     *FieldStore
	errs       *ErrorStore
	tr         Translator
	now        func() time.Time
	onComplete []func(Payload)
	submitted  bool
}

// New creates a wizard positioned on step 0 with no values and no errors.
func New(def *Definition, opts ...Option) (*Wizard, error) {
	if def == nil || def.fields == nil {
		return nil, fmt.Errorf("definition must be built with NewDefinition: %w", ErrInvalidField)
	}

	w := &Wizard{
		def:  def,
		errs: NewErrorStore(),
		tr:   FallbackTranslator,
		now:  time.Now,
	}
	w.fields = NewFieldStore(def, w.OnFieldEdited)
	for _, opt := range opts {
		opt(w)
	}
	if w.tr == nil {
		w.tr = FallbackTranslator
	}

	logger.Debug("Wizard %s opened with %d steps", def.ID, def.Len())
	return w, nil
}

// Definition returns the definition the wizard walks.
func (w *Wizard) Definition() *Definition { return w.def }

// Step returns the current step index.
func (w *Wizard) Step() int { return w.step }

// Steps returns the total step count.
func (w *Wizard) Steps() int { return w.def.Len() }

// CurrentStep returns the declaration of the current step.
func (w *Wizard) CurrentStep() Step { return w.def.Steps[w.step] }

// IsFirst reports whether the wizard is on step 0.
func (w *Wizard) IsFirst() bool { return w.step == 0 }

// IsLast reports whether the wizard is on the final step.
func (w *Wizard) IsLast() bool { return w.step == w.def.Len()-1 }

// CanGoBack reports whether Back would move.
func (w *Wizard) CanGoBack() bool { return !w.submitted && w.step > 0 }

// Submitted reports whether a Submit has succeeded.
func (w *Wizard) Submitted() bool { return w.submitted }

// Set stores a field value and runs the edit hook: the field's error is
// cleared and dependent normalizers run.
func (w *Wizard) Set(name string, v Value) error {
	if w.submitted {
		return ErrSubmitted
	}
	return w.fields.Set(name, v)
}

// SetRaw parses text input according to the field's kind and stores it.
func (w *Wizard) SetRaw(name, raw string) error {
	f, ok := w.def.Field(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	v, err := Parse(f.Kind, raw)
	if err != nil {
		return fmt.Errorf("field %q: %w", name, err)
	}
	return w.Set(name, v)
}

// Value returns the current value of a field, or its default.
func (w *Wizard) Value(name string) Value { return w.fields.Get(name) }

// Error returns the stored message for a field.
func (w *Wizard) Error(name string) (string, bool) { return w.errs.Get(name) }

// Errors returns a copy of every stored message.
func (w *Wizard) Errors() map[string]string { return w.errs.All() }

// OnFieldEdited clears the stored error for name without re-validating,
// then runs every normalizer that depends on name. Set calls it; consumers
// that mutate input outside Set may call it directly.
func (w *Wizard) OnFieldEdited(name string) {
	w.errs.Clear(name)

	for _, n := range w.def.normalizersFor(name) {
		for target, v := range n.Apply(w.fields) {
			if !slices.Contains(n.Targets, target) {
				logger.Warn("Normalizer %s wrote undeclared target %s", n.Name, target)
				continue
			}
			if w.fields.Get(target).Equal(v) {
				continue
			}
			if err := w.fields.put(target, v); err != nil {
				logger.Warn("Normalizer %s failed for %s: %v", n.Name, target, err)
				continue
			}
			w.errs.Clear(target)
			logger.Debug("Normalizer %s set %s=%s", n.Name, target, v.Display())
		}
	}
}

// ValidateStep runs the rules of step i against the current values
// without touching stored errors.
func (w *Wizard) ValidateStep(i int) map[string]string {
	return Validate(w.def, i, w.fields, w.tr)
}

// Next validates the current step and advances on success. On failure the
// error store is replaced with the new errors and the wizard stays put.
// It is a no-op on the final step.
func (w *Wizard) Next() bool {
	if w.submitted || w.IsLast() {
		return false
	}
	errs := w.ValidateStep(w.step)
	if len(errs) > 0 {
		w.errs.SetAll(errs)
		logger.Debug("Wizard %s step %d blocked by %d error(s)", w.def.ID, w.step, len(errs))
		return false
	}
	w.errs.ClearFields(w.CurrentStep().FieldNames()...)
	w.step++
	logger.Debug("Wizard %s advanced to step %d", w.def.ID, w.step)
	return true
}

// Back moves to the previous step unconditionally. It is a no-op on step 0.
func (w *Wizard) Back() bool {
	if !w.CanGoBack() {
		return false
	}
	w.step--
	logger.Debug("Wizard %s moved back to step %d", w.def.ID, w.step)
	return true
}

// GoTo jumps to step target. Backward jumps always succeed. Forward jumps
// validate each intermediate step in order and stop on the first invalid
// one, leaving the wizard there with its errors set. Out-of-range targets
// are ignored.
func (w *Wizard) GoTo(target int) bool {
	if w.submitted || target < 0 || target >= w.def.Len() || target == w.step {
		return false
	}
	if target < w.step {
		w.step = target
		logger.Debug("Wizard %s jumped back to step %d", w.def.ID, w.step)
		return true
	}
	for w.step < target {
		if !w.Next() {
			return false
		}
	}
	return true
}

// Submit validates the final step and, on success, emits the accumulated
// values as a Payload to every OnComplete callback exactly once. On a
// non-final step it returns ErrNotFinalStep without side effects. A failed
// validation stores the errors and returns a *ValidationError.
func (w *Wizard) Submit() (Payload, error) {
	if w.submitted {
		return Payload{}, ErrSubmitted
	}
	if !w.IsLast() {
		return Payload{}, ErrNotFinalStep
	}

	errs := w.ValidateStep(w.step)
	if len(errs) > 0 {
		w.errs.SetAll(errs)
		logger.Debug("Wizard %s submit blocked by %d error(s)", w.def.ID, len(errs))
		return Payload{}, &ValidationError{Step: w.step, Errors: errs}
	}

	w.errs.Reset()
	w.submitted = true
	payload := newPayload(w.def, w.fields.Snapshot(), w.now())
	logger.Info("Wizard %s submitted", w.def.ID)

	for _, fn := range w.onComplete {
		fn(payload)
	}
	return payload, nil
}

// Reset discards all values and errors and returns to step 0.
func (w *Wizard) Reset() {
	w.step = 0
	w.fields.Reset()
	w.errs.Reset()
	w.submitted = false
	logger.Debug("Wizard %s reset", w.def.ID)
}

// State returns a snapshot of the current step, values and errors.
func (w *Wizard) State() State {
	return State{
		Step:      w.step,
		Fields:    w.fields.Snapshot(),
		Errors:    w.errs.All(),
		Submitted: w.submitted,
	}
}
