package form

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/validation"
)

var (
	ErrUnknownField   = errors.New("form: unknown field")
	ErrDuplicateField = errors.New("form: duplicate field")
	ErrInvalidValue   = errors.New("form: invalid value type")
)

// FieldSpec describes a single field: its identity, initial value, and the
// validators evaluated against its value.
type FieldSpec struct {
	Name        string
	Label       string
	Type        model.FieldType
	Placeholder string
	Initial     any
	Validators  []validation.Validator
}

// FieldState is a read-only view of a field used by renderers.
type FieldState struct {
	Spec    FieldSpec
	Value   any
	Touched bool
	Dirty   bool
	Invalid bool
	Message string
	Result  validation.Result
}

type field struct {
	spec    FieldSpec
	value   any
	touched bool
	dirty   bool
}

// Form tracks field values, interaction flags, and whether a submission was
// attempted. It is safe for concurrent use.
type Form struct {
	mu        sync.RWMutex
	fields    []*field
	index     map[string]*field
	attempted bool
}

// New builds a form from specs, preserving their order.
func New(specs ...FieldSpec) (*Form, error) {
	f := &Form{
		fields: make([]*field, 0, len(specs)),
		index:  make(map[string]*field, len(specs)),
	}
	for _, spec := range specs {
		name := strings.TrimSpace(spec.Name)
		if name == "" {
			return nil, fmt.Errorf("form: field name is required")
		}
		if _, exists := f.index[name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateField, name)
		}
		spec.Name = name
		if spec.Initial == nil {
			spec.Initial = zeroValue(spec.Type)
		}
		entry := &field{spec: spec, value: spec.Initial}
		f.fields = append(f.fields, entry)
		f.index[name] = entry
	}
	return f, nil
}

// MustNew is like New but panics on error.
func MustNew(specs ...FieldSpec) *Form {
	f, err := New(specs...)
	if err != nil {
		panic(err)
	}
	return f
}

// Fields returns the field specs in declaration order.
func (f *Form) Fields() []FieldSpec {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]FieldSpec, 0, len(f.fields))
	for _, entry := range f.fields {
		out = append(out, entry.spec)
	}
	return out
}

// Set records a new value for name and marks the field dirty.
func (f *Form) Set(name string, value any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry, ok := f.index[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	value, err := coerce(entry.spec.Type, value)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidValue, name, err)
	}
	entry.value = value
	entry.dirty = true
	return nil
}

// Touch marks name as visited, the equivalent of an input losing focus.
func (f *Form) Touch(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry, ok := f.index[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	entry.touched = true
	return nil
}

// Value returns the current value of name.
func (f *Form) Value(name string) (any, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	entry, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return entry.value, true
}

// Validate evaluates the validators of name against its current value.
// Unknown fields are reported valid.
func (f *Form) Validate(name string) validation.Result {
	f.mu.RLock()
	defer f.mu.RUnlock()

	entry, ok := f.index[name]
	if !ok {
		return validation.Result{Valid: true}
	}
	return validation.Validate(entry.value, entry.spec.Validators...)
}

// FieldInvalid reports whether name fails validation and the user has
// interacted with it or attempted a submission.
func (f *Form) FieldInvalid(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	entry, ok := f.index[name]
	if !ok {
		return false
	}
	return f.invalidLocked(entry)
}

// ErrorMessage returns the first matching message for name or "".
func (f *Form) ErrorMessage(name string) string {
	result := f.Validate(name)
	return validation.MessageFor(name, result)
}

// Valid reports whether every field passes validation.
func (f *Form) Valid() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, entry := range f.fields {
		if !validation.Validate(entry.value, entry.spec.Validators...).Valid {
			return false
		}
	}
	return true
}

// MarkAttempted records a submission attempt so every failing field surfaces
// its error.
func (f *Form) MarkAttempted() {
	f.mu.Lock()
	f.attempted = true
	f.mu.Unlock()
}

// Attempted reports whether a submission was attempted since the last reset.
func (f *Form) Attempted() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.attempted
}

// Reset restores every field to its initial value and clears interaction
// flags and the attempt marker.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, entry := range f.fields {
		entry.value = entry.spec.Initial
		entry.touched = false
		entry.dirty = false
	}
	f.attempted = false
}

// State returns the renderer view of name.
func (f *Form) State(name string) (FieldState, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	entry, ok := f.index[name]
	if !ok {
		return FieldState{}, false
	}
	return f.stateLocked(entry), true
}

// States returns the renderer view of every field in declaration order.
func (f *Form) States() []FieldState {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]FieldState, 0, len(f.fields))
	for _, entry := range f.fields {
		out = append(out, f.stateLocked(entry))
	}
	return out
}

func (f *Form) stateLocked(entry *field) FieldState {
	result := validation.Validate(entry.value, entry.spec.Validators...)
	state := FieldState{
		Spec:    entry.spec,
		Value:   entry.value,
		Touched: entry.touched,
		Dirty:   entry.dirty,
		Result:  result,
	}
	state.Invalid = !result.Valid && (entry.touched || entry.dirty || f.attempted)
	if state.Invalid {
		state.Message = validation.MessageFor(entry.spec.Name, result)
	}
	return state
}

func (f *Form) invalidLocked(entry *field) bool {
	if !(entry.touched || entry.dirty || f.attempted) {
		return false
	}
	return !validation.Validate(entry.value, entry.spec.Validators...).Valid
}

func zeroValue(t model.FieldType) any {
	if t == model.FieldTypeBoolean {
		return false
	}
	return ""
}

func coerce(t model.FieldType, value any) (any, error) {
	if t == model.FieldTypeBoolean {
		switch v := value.(type) {
		case bool:
			return v, nil
		case string:
			return ParseBool(v), nil
		case nil:
			return false, nil
		default:
			return nil, fmt.Errorf("expected bool, got %T", value)
		}
	}
	switch v := value.(type) {
	case string:
		return v, nil
	case nil:
		return "", nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return nil, fmt.Errorf("expected string, got %T", value)
	}
}

// ParseBool reads checkbox style values such as "on", "true" or "1".
func ParseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "on", "yes", "y":
		return true
	default:
		return false
	}
}
