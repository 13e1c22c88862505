package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-contactform/pkg/form"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/validation"
)

// CollectContact prompts for every field of f in order, checking text answers
// with the field validators before accepting them. Boolean fields are asked
// last as a confirmation; answering no returns ErrDeclined.
func CollectContact(ctx context.Context, driver PromptDriver, f *form.Form) error {
	if driver == nil {
		return errors.New("tui: missing prompt driver")
	}
	if f == nil {
		return errors.New("tui: missing form")
	}

	var confirms []form.FieldSpec
	for _, spec := range f.Fields() {
		if spec.Type == model.FieldTypeBoolean {
			confirms = append(confirms, spec)
			continue
		}
		answer, err := askText(ctx, driver, f, spec)
		if err != nil {
			return err
		}
		if err := f.Set(spec.Name, answer); err != nil {
			return err
		}
		if err := f.Touch(spec.Name); err != nil {
			return err
		}
	}

	for _, spec := range confirms {
		ok, err := driver.Confirm(ctx, ConfirmConfig{Message: spec.Label})
		if err != nil {
			return err
		}
		if err := f.Set(spec.Name, ok); err != nil {
			return err
		}
		if err := f.Touch(spec.Name); err != nil {
			return err
		}
		if !ok && !validation.Validate(ok, spec.Validators...).Valid {
			return ErrDeclined
		}
	}
	return nil
}

func askText(ctx context.Context, driver PromptDriver, f *form.Form, spec form.FieldSpec) (string, error) {
	current := ""
	if value, ok := f.Value(spec.Name); ok {
		current = fmt.Sprint(value)
	}
	validator := fieldValidator(spec)

	if spec.Type == model.FieldTypeText {
		answer, err := driver.TextArea(ctx, TextAreaConfig{
			Message:   spec.Label,
			Default:   current,
			Help:      spec.Placeholder,
			Validator: validator,
		})
		return strings.TrimSpace(answer), err
	}

	answer, err := driver.Input(ctx, InputConfig{
		Message:   spec.Label,
		Default:   current,
		Help:      spec.Placeholder,
		Validator: validator,
	})
	return strings.TrimSpace(answer), err
}

func fieldValidator(spec form.FieldSpec) func(string) error {
	return func(answer string) error {
		result := validation.Validate(strings.TrimSpace(answer), spec.Validators...)
		if msg := validation.MessageFor(spec.Name, result); msg != "" {
			return errors.New(msg)
		}
		return nil
	}
}
