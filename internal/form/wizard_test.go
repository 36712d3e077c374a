package form

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// twoStep has a required name on step 0 and a required city on step 1.
func twoStep(t *testing.T) *Definition {
	t.Helper()
	def, err := NewDefinition("greeting", "Greeting", []Step{
		{Index: 0, Key: "who", Fields: []Field{
			{Name: "name", Kind: KindString, Rules: []Rule{Required()}},
		}},
		{Index: 1, Key: "where", Fields: []Field{
			{Name: "city", Kind: KindString, Rules: []Rule{Required()}},
		}},
	})
	require.NoError(t, err)
	return def
}

// fourStep mirrors the naming and career forms.
func fourStep(t *testing.T) *Definition {
	t.Helper()
	topics := []string{"a", "b", "c"}
	def, err := NewDefinition("four", "Four", []Step{
		{Index: 0, Key: "intro", Fields: []Field{
			{Name: "surname", Kind: KindString, Rules: []Rule{Required()}},
		}},
		{Index: 1, Key: "about", Fields: []Field{
			{Name: "nickname", Kind: KindString, Rules: []Rule{Required(), MaxLength(10)}},
			{Name: "year", Kind: KindInt, Rules: []Rule{Required(), IntRange(1900, 2100)}},
		}},
		{Index: 2, Key: "topics", Fields: []Field{
			{Name: "topics", Kind: KindStrings, Options: topics, Rules: []Rule{MinSelected(1), SubsetOf(topics...)}},
		}},
		{Index: 3, Key: "notes", Fields: []Field{
			{Name: "goal", Kind: KindString, Multiline: true, Rules: []Rule{Required()}},
			{Name: "share", Kind: KindBool},
		}},
	})
	require.NoError(t, err)
	return def
}

func newWizard(t *testing.T, def *Definition, opts ...Option) *Wizard {
	t.Helper()
	w, err := New(def, opts...)
	require.NoError(t, err)
	return w
}

func TestNew(t *testing.T) {
	w := newWizard(t, twoStep(t))
	require.Equal(t, 0, w.Step())
	require.Equal(t, 2, w.Steps())
	require.True(t, w.IsFirst())
	require.False(t, w.IsLast())
	require.False(t, w.CanGoBack())
	require.Empty(t, w.Errors())
	require.Equal(t, "who", w.CurrentStep().Key)

	_, err := New(nil)
	require.ErrorIs(t, err, ErrInvalidField)

	_, err = New(&Definition{ID: "raw", Steps: []Step{{}}})
	require.ErrorIs(t, err, ErrInvalidField)
}

// Scenario A
func TestWizard_NextBlocksOnRequiredField(t *testing.T) {
	w := newWizard(t, twoStep(t))

	require.NoError(t, w.Set("name", String("")))
	require.False(t, w.Next())
	require.Equal(t, 0, w.Step())
	require.Equal(t, map[string]string{"name": "This field is required"}, w.Errors())

	require.NoError(t, w.Set("name", String("Lan")))
	require.True(t, w.Next())
	require.Equal(t, 1, w.Step())
	_, ok := w.Error("name")
	require.False(t, ok)
}

// Scenario B
func TestWizard_BackKeepsEarlierFields(t *testing.T) {
	w := newWizard(t, fourStep(t))

	require.NoError(t, w.Set("surname", String("Nguyen")))
	require.True(t, w.Next())
	require.NoError(t, w.Set("nickname", String("Bin")))
	require.NoError(t, w.Set("year", Int(2020)))
	require.True(t, w.Next())
	require.Equal(t, 2, w.Step())

	// Step 2 fails; its error must not touch step 1 fields.
	require.False(t, w.Next())
	require.Contains(t, w.Errors(), "topics")

	require.True(t, w.Back())
	require.True(t, w.Back())
	require.Equal(t, 0, w.Step())

	require.Equal(t, "Nguyen", w.Value("surname").Str())
	require.Equal(t, "Bin", w.Value("nickname").Str())
	require.Equal(t, 2020, w.Value("year").IntVal())
	require.NotContains(t, w.Errors(), "nickname")
	require.NotContains(t, w.Errors(), "year")
}

// Scenario C
func TestWizard_SubmitBlockedOnFinalStep(t *testing.T) {
	var emitted []Payload
	w := newWizard(t, fourStep(t), OnComplete(func(p Payload) { emitted = append(emitted, p) }))

	require.NoError(t, w.Set("surname", String("Tran")))
	require.NoError(t, w.Set("nickname", String("Na")))
	require.NoError(t, w.Set("year", Int(2024)))
	require.NoError(t, w.Set("topics", Strings("a")))
	require.True(t, w.GoTo(3))

	_, err := w.Submit()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, 3, verr.Step)
	require.Equal(t, map[string]string{"goal": "This field is required"}, verr.Errors)

	require.Equal(t, 3, w.Step())
	require.Empty(t, emitted)
	require.Equal(t, map[string]string{"goal": "This field is required"}, w.Errors())
	require.False(t, w.Submitted())
}

// Scenario D
func TestWizard_MultiSelectSingleError(t *testing.T) {
	w := newWizard(t, fourStep(t))
	require.NoError(t, w.Set("surname", String("Le")))
	require.NoError(t, w.Set("nickname", String("Mi")))
	require.NoError(t, w.Set("year", Int(2021)))
	require.True(t, w.GoTo(2))

	require.False(t, w.Next())
	require.Equal(t, map[string]string{"topics": "Select at least 1 option(s)"}, w.Errors())

	require.NoError(t, w.Set("topics", w.Value("topics").Toggle("b")))
	require.Empty(t, w.ValidateStep(2))
	require.True(t, w.Next())
	require.Empty(t, w.Errors())
}

func TestWizard_NextIffStepValid(t *testing.T) {
	def := fourStep(t)
	values := map[string]Value{
		"surname":  String("Pham"),
		"nickname": String("Tom"),
		"year":     Int(1999),
		"topics":   Strings("c"),
	}

	for i := 0; i < def.Len()-1; i++ {
		w := newWizard(t, def)
		for name, v := range values {
			if step, _ := def.StepOf(name); step < i {
				require.NoError(t, w.Set(name, v))
			}
		}
		if i > 0 {
			require.True(t, w.GoTo(i))
		}

		// Empty step i: valid only when it has no required fields.
		want := len(Validate(def, i, w.fields, nil)) == 0
		require.Equal(t, want, w.Next(), "step %d without values", i)

		for name, v := range values {
			if step, _ := def.StepOf(name); step == i {
				require.NoError(t, w.Set(name, v))
			}
		}
		if w.Step() == i {
			require.True(t, w.Next(), "step %d with values", i)
		}
		require.Equal(t, i+1, w.Step())
	}
}

func TestWizard_NextNoopOnLastStep(t *testing.T) {
	w := newWizard(t, twoStep(t))
	require.NoError(t, w.Set("name", String("Lan")))
	require.True(t, w.Next())
	require.True(t, w.IsLast())

	require.False(t, w.Next())
	require.Equal(t, 1, w.Step())
	require.Empty(t, w.Errors())
}

func TestWizard_BackNeverValidatesOrMutates(t *testing.T) {
	w := newWizard(t, fourStep(t))
	require.NoError(t, w.Set("surname", String("Vo")))
	require.True(t, w.Next())

	// Leave an error on step 1, then go back.
	require.False(t, w.Next())
	before := w.State()

	require.True(t, w.Back())
	after := w.State()
	require.Equal(t, 0, after.Step)
	require.Equal(t, before.Fields, after.Fields)
	require.Equal(t, before.Errors, after.Errors)

	require.False(t, w.Back())
	require.Equal(t, 0, w.Step())
}

func TestWizard_OtherStepErrorsDoNotBlockNext(t *testing.T) {
	w := newWizard(t, fourStep(t))
	require.NoError(t, w.Set("surname", String("Vo")))
	require.True(t, w.Next())
	require.False(t, w.Next())
	require.True(t, w.Back())

	_, stale := w.Error("nickname")
	require.True(t, stale)

	// Only step 0's rules gate leaving step 0
	require.True(t, w.Next())
	require.Equal(t, 1, w.Step())
}

func TestWizard_BackThenNextRestoresFields(t *testing.T) {
	w := newWizard(t, fourStep(t))
	require.NoError(t, w.Set("surname", String("Dang")))
	require.True(t, w.Next())
	require.NoError(t, w.Set("nickname", String("Su")))
	require.NoError(t, w.Set("year", Int(2000)))
	require.True(t, w.Next())

	before := w.State().Fields
	require.True(t, w.Back())
	require.True(t, w.Next())
	require.Equal(t, 2, w.Step())
	require.Equal(t, before, w.State().Fields)
}

func TestWizard_SubmitOnEarlierStepIsNoop(t *testing.T) {
	called := false
	w := newWizard(t, twoStep(t), OnComplete(func(Payload) { called = true }))
	require.NoError(t, w.Set("name", String("")))

	_, err := w.Submit()
	require.ErrorIs(t, err, ErrNotFinalStep)
	require.False(t, called)
	require.Empty(t, w.Errors())
	require.Equal(t, 0, w.Step())
}

func TestWizard_EditClearsOnlyThatField(t *testing.T) {
	w := newWizard(t, fourStep(t))
	require.NoError(t, w.Set("surname", String("Ho")))
	require.True(t, w.Next())
	require.NoError(t, w.Set("nickname", String("a very long nickname")))
	require.False(t, w.Next())
	require.Len(t, w.Errors(), 2)

	// Optimistic clear: the new value is still too long but the error goes.
	require.NoError(t, w.Set("nickname", String("still far too long")))
	require.Equal(t, []string{"year"}, keys(w.Errors()))

	w.OnFieldEdited("unknown")
	require.Equal(t, []string{"year"}, keys(w.Errors()))
}

func TestWizard_Submit(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	var emitted []Payload
	w := newWizard(t, twoStep(t),
		WithClock(func() time.Time { return at }),
		OnComplete(func(p Payload) { emitted = append(emitted, p) }),
		OnComplete(func(p Payload) { emitted = append(emitted, p) }),
	)

	require.NoError(t, w.Set("name", String("Lan")))
	require.True(t, w.Next())
	require.NoError(t, w.Set("city", String("Hue")))

	p, err := w.Submit()
	require.NoError(t, err)
	require.True(t, w.Submitted())
	require.Len(t, emitted, 2)
	require.Equal(t, "greeting", p.Definition())
	require.Equal(t, at, p.SubmittedAt())
	require.Equal(t, "Lan", p.String("name"))
	require.Equal(t, "Hue", p.String("city"))
	require.Equal(t, []string{"name", "city"}, p.Names())

	_, err = w.Submit()
	require.ErrorIs(t, err, ErrSubmitted)
	require.Len(t, emitted, 2)

	require.ErrorIs(t, w.Set("city", String("Hanoi")), ErrSubmitted)
	require.False(t, w.Back())
	require.False(t, w.CanGoBack())
	require.Equal(t, "Hue", p.String("city"))
}

func TestWizard_GoTo(t *testing.T) {
	w := newWizard(t, fourStep(t))

	require.False(t, w.GoTo(-1))
	require.False(t, w.GoTo(4))
	require.False(t, w.GoTo(0))

	// Forward jump stops at the first invalid step.
	require.NoError(t, w.Set("surname", String("Bui")))
	require.False(t, w.GoTo(3))
	require.Equal(t, 1, w.Step())
	require.Contains(t, w.Errors(), "nickname")

	require.True(t, w.GoTo(0))
	require.Equal(t, 0, w.Step())
}

func TestWizard_SetRaw(t *testing.T) {
	w := newWizard(t, fourStep(t))

	require.NoError(t, w.SetRaw("year", " 2019 "))
	require.Equal(t, Int(2019), w.Value("year"))

	require.NoError(t, w.SetRaw("topics", "a, c,"))
	require.Equal(t, []string{"a", "c"}, w.Value("topics").List())

	require.NoError(t, w.SetRaw("share", "true"))
	require.True(t, w.Value("share").BoolVal())

	require.ErrorIs(t, w.SetRaw("year", "soon"), ErrKindMismatch)
	require.ErrorIs(t, w.SetRaw("missing", "x"), ErrUnknownField)
	require.ErrorIs(t, w.Set("year", String("2019")), ErrKindMismatch)
}

func TestWizard_Reset(t *testing.T) {
	w := newWizard(t, twoStep(t))
	require.NoError(t, w.Set("name", String("Lan")))
	require.True(t, w.Next())
	require.NoError(t, w.Set("city", String("")))
	_, err := w.Submit()
	require.Error(t, err)

	w.Reset()
	state := w.State()
	require.Equal(t, 0, state.Step)
	require.Empty(t, state.Errors)
	require.Equal(t, String(""), state.Fields["name"])
	require.False(t, state.Submitted)
}

func TestWizard_Translator(t *testing.T) {
	tr := TranslatorFunc(func(key string, params ...any) string {
		if key == KeyRequired {
			return "bắt buộc"
		}
		return ""
	})
	w := newWizard(t, fourStep(t), WithTranslator(tr))
	require.False(t, w.Next())
	require.Equal(t, "bắt buộc", w.Errors()["surname"])

	require.NoError(t, w.Set("surname", String("Ly")))
	require.True(t, w.Next())
	require.NoError(t, w.Set("nickname", String("x")))
	require.NoError(t, w.Set("year", Int(1800)))
	require.False(t, w.Next())
	// Empty translation falls back to the key.
	require.Equal(t, KeyOutOfRange, w.Errors()["year"])
}

func TestWizard_Normalizer(t *testing.T) {
	def, err := NewDefinition("date", "Date", []Step{
		{Index: 0, Key: "date", Fields: []Field{
			{Name: "day", Kind: KindInt, Rules: []Rule{Required(), IntRange(1, 31)}},
			{Name: "month", Kind: KindInt, Rules: []Rule{Required(), IntRange(1, 12)}},
			{Name: "year", Kind: KindInt},
		}},
	}, ClampDay("day", "month", "year"))
	require.NoError(t, err)
	w := newWizard(t, def)

	require.NoError(t, w.Set("day", Int(31)))
	require.NoError(t, w.Set("month", Int(4)))
	require.Equal(t, 30, w.Value("day").IntVal())

	require.NoError(t, w.Set("month", Int(2)))
	require.Equal(t, 29, w.Value("day").IntVal())

	require.NoError(t, w.Set("year", Int(2023)))
	require.Equal(t, 28, w.Value("day").IntVal())

	// Editing a dependency leaves an unrelated error alone when
	// the normalizer has nothing to write.
	require.NoError(t, w.Set("day", Int(0)))
	_, err = w.Submit()
	require.Error(t, err)
	require.Equal(t, []string{"day"}, keys(w.Errors()))
	require.NoError(t, w.Set("month", Int(3)))
	require.Equal(t, []string{"day"}, keys(w.Errors()))
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Step: 2, Errors: map[string]string{"b": "two", "a": "one"}}
	require.Equal(t, "step 2 invalid: a: one; b: two", err.Error())
	require.True(t, errors.As(error(err), new(*ValidationError)))
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func TestWizard_NormalizerWrites(t *testing.T) {
	def, err := NewDefinition("plan", "Plan", []Step{
		{Index: 0, Key: "plan", Fields: []Field{
			{Name: "tier", Kind: KindString},
			{Name: "seats", Kind: KindInt, Rules: []Rule{IntRange(1, 10)}},
			{Name: "note", Kind: KindString},
		}},
	}, Normalizer{
		Name:      "tier-seats",
		DependsOn: []string{"tier"},
		Targets:   []string{"seats"},
		Apply: func(fields Getter) map[string]Value {
			if fields.Get("tier").Str() == "solo" {
				return map[string]Value{"seats": Int(1), "note": String("ignored")}
			}
			return nil
		},
	})
	require.NoError(t, err)
	w := newWizard(t, def)

	_, err = w.Submit()
	require.Error(t, err)
	require.Contains(t, w.Errors(), "seats")

	require.NoError(t, w.Set("tier", String("solo")))
	require.Equal(t, 1, w.Value("seats").IntVal())
	require.NotContains(t, w.Errors(), "seats")
	require.Equal(t, "", w.Value("note").Str(), "writes outside Targets are dropped")
}
