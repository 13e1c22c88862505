package form

import (
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/validation"
)

const (
	FieldName      = "name"
	FieldEmail     = "email"
	FieldPhone     = "phone"
	FieldMessage   = "message"
	FieldAgreement = "agreement"
)

// PhonePattern accepts 10 to 12 digits and nothing else.
const PhonePattern = `^\d{10,12}$`

// ContactFields returns the field specs of the contact form.
func ContactFields() []FieldSpec {
	return []FieldSpec{
		{
			Name:        FieldName,
			Label:       "Name",
			Type:        model.FieldTypeString,
			Placeholder: "Your name",
			Validators:  []validation.Validator{validation.Required(), validation.MinLength(2)},
		},
		{
			Name:        FieldEmail,
			Label:       "Email",
			Type:        model.FieldTypeEmail,
			Placeholder: "you@example.com",
			Validators:  []validation.Validator{validation.Required(), validation.Email()},
		},
		{
			Name:        FieldPhone,
			Label:       "Phone",
			Type:        model.FieldTypePhone,
			Placeholder: "1234567890",
			Validators:  []validation.Validator{validation.Required(), validation.Pattern(PhonePattern)},
		},
		{
			Name:        FieldMessage,
			Label:       "Message",
			Type:        model.FieldTypeText,
			Placeholder: "How can we help?",
			Validators:  []validation.Validator{validation.Required(), validation.MinLength(10)},
		},
		{
			Name:       FieldAgreement,
			Label:      "I agree to be contacted",
			Type:       model.FieldTypeBoolean,
			Validators: []validation.Validator{validation.RequiredTrue()},
		},
	}
}

// NewContact builds an empty contact form.
func NewContact() *Form {
	return MustNew(ContactFields()...)
}

// Values returns the contact snapshot of the form. Fields missing from the
// form are left at their zero value.
func (f *Form) Values() model.ContactForm {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return model.ContactForm{
		Name:      f.stringLocked(FieldName),
		Email:     f.stringLocked(FieldEmail),
		Phone:     f.stringLocked(FieldPhone),
		Message:   f.stringLocked(FieldMessage),
		Agreement: f.boolLocked(FieldAgreement),
	}
}

// SetValues assigns every contact field from values, marking each dirty.
func (f *Form) SetValues(values model.ContactForm) error {
	assignments := []struct {
		name  string
		value any
	}{
		{FieldName, values.Name},
		{FieldEmail, values.Email},
		{FieldPhone, values.Phone},
		{FieldMessage, values.Message},
		{FieldAgreement, values.Agreement},
	}
	for _, a := range assignments {
		if err := f.Set(a.name, a.value); err != nil {
			return err
		}
	}
	return nil
}

func (f *Form) stringLocked(name string) string {
	entry, ok := f.index[name]
	if !ok {
		return ""
	}
	s, _ := entry.value.(string)
	return s
}

func (f *Form) boolLocked(name string) bool {
	entry, ok := f.index[name]
	if !ok {
		return false
	}
	b, _ := entry.value.(bool)
	return b
}
