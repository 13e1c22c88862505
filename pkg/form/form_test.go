package form

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/validation"
)

func TestFieldInvalid_PristineFormShowsNoErrors(t *testing.T) {
	f := NewContact()

	for _, spec := range f.Fields() {
		if f.FieldInvalid(spec.Name) {
			t.Fatalf("expected pristine field %q to be reported valid to the view", spec.Name)
		}
		if f.Validate(spec.Name).Valid {
			t.Fatalf("expected empty field %q to fail its rules", spec.Name)
		}
	}
	if f.Valid() {
		t.Fatalf("expected empty contact form to be invalid")
	}
}

func TestFieldInvalid_AfterTouchDirtyOrAttempt(t *testing.T) {
	f := NewContact()

	if err := f.Touch(FieldName); err != nil {
		t.Fatalf("touch: %v", err)
	}
	if !f.FieldInvalid(FieldName) {
		t.Fatalf("expected touched empty name to be invalid")
	}

	if err := f.Set(FieldEmail, "nope"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !f.FieldInvalid(FieldEmail) {
		t.Fatalf("expected dirty email to be invalid")
	}
	if f.FieldInvalid(FieldPhone) {
		t.Fatalf("expected untouched phone to stay quiet before an attempt")
	}

	f.MarkAttempted()
	if !f.FieldInvalid(FieldPhone) {
		t.Fatalf("expected phone to be invalid after a submission attempt")
	}
}

func TestErrorMessage(t *testing.T) {
	f := NewContact()

	if got := f.ErrorMessage(FieldName); got != "name is required" {
		t.Fatalf("unexpected name message: %q", got)
	}
	mustSet(t, f, FieldName, "J")
	if got := f.ErrorMessage(FieldName); got != "name is too short" {
		t.Fatalf("unexpected short name message: %q", got)
	}
	mustSet(t, f, FieldEmail, "jane")
	if got := f.ErrorMessage(FieldEmail); got != "Please enter a valid email" {
		t.Fatalf("unexpected email message: %q", got)
	}
	mustSet(t, f, FieldPhone, "12345")
	if got := f.ErrorMessage(FieldPhone); got != "Please enter a valid phone number" {
		t.Fatalf("unexpected phone message: %q", got)
	}
	mustSet(t, f, FieldPhone, "1234567890")
	if got := f.ErrorMessage(FieldPhone); got != "" {
		t.Fatalf("expected no phone message, got %q", got)
	}
	if got := f.ErrorMessage(FieldAgreement); got != "agreement is required" {
		t.Fatalf("unexpected agreement message: %q", got)
	}
	if got := f.ErrorMessage("missing"); got != "" {
		t.Fatalf("expected empty message for unknown field, got %q", got)
	}
}

func TestValid_AgreementFalseBlocks(t *testing.T) {
	f := NewContact()
	if err := f.SetValues(validContact(false)); err != nil {
		t.Fatalf("set values: %v", err)
	}
	if f.Valid() {
		t.Fatalf("expected form without agreement to be invalid")
	}

	mustSet(t, f, FieldAgreement, "on")
	if !f.Valid() {
		t.Fatalf("expected form to be valid once agreement is checked")
	}
}

func TestReset_RestoresInitialValues(t *testing.T) {
	f := NewContact()
	if err := f.SetValues(validContact(true)); err != nil {
		t.Fatalf("set values: %v", err)
	}
	if err := f.Touch(FieldName); err != nil {
		t.Fatalf("touch: %v", err)
	}
	f.MarkAttempted()

	f.Reset()

	if diff := cmp.Diff(model.ContactForm{}, f.Values()); diff != "" {
		t.Fatalf("values not reset (-want +got):\n%s", diff)
	}
	if f.Attempted() {
		t.Fatalf("expected attempt marker cleared")
	}
	for _, state := range f.States() {
		if state.Touched || state.Dirty || state.Invalid {
			t.Fatalf("expected pristine state for %q, got %+v", state.Spec.Name, state)
		}
	}
}

func TestSet_Errors(t *testing.T) {
	f := NewContact()

	if err := f.Set("missing", "x"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if err := f.Touch("missing"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if err := f.Set(FieldAgreement, 42); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
	if f.FieldInvalid("missing") {
		t.Fatalf("expected unknown field to never be invalid")
	}
}

func TestNew_RejectsDuplicateNames(t *testing.T) {
	_, err := New(
		FieldSpec{Name: "a"},
		FieldSpec{Name: "a"},
	)
	if !errors.Is(err, ErrDuplicateField) {
		t.Fatalf("expected ErrDuplicateField, got %v", err)
	}
}

func TestState_CarriesMessageOnlyWhenInvalid(t *testing.T) {
	f := MustNew(FieldSpec{
		Name:       "code",
		Validators: []validation.Validator{validation.Required()},
	})

	state, ok := f.State("code")
	if !ok {
		t.Fatalf("expected state for code")
	}
	if state.Invalid || state.Message != "" {
		t.Fatalf("expected quiet pristine state, got %+v", state)
	}

	f.MarkAttempted()
	state, _ = f.State("code")
	if !state.Invalid || state.Message != "code is required" {
		t.Fatalf("expected required message after attempt, got %+v", state)
	}
}

func validContact(agreement bool) model.ContactForm {
	return model.ContactForm{
		Name:      "Jane Doe",
		Email:     "jane@example.com",
		Phone:     "1234567890",
		Message:   "Hello there, please call me back.",
		Agreement: agreement,
	}
}

func mustSet(t *testing.T, f *Form, name string, value any) {
	t.Helper()
	if err := f.Set(name, value); err != nil {
		t.Fatalf("set %s: %v", name, err)
	}
}
