// Package form holds a structured form made of typed fields and declarative
// validators. Field mutation never validates implicitly; callers ask for
// Validate, FieldInvalid, or ErrorMessage and the rules are re-evaluated
// against the current value on every call.
//
// A field only reports itself invalid to the view once it has been touched,
// edited, or a submission was attempted, so a pristine form renders without
// errors even when required fields are empty.
package form
