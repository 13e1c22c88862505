// Package validation provides the pure field validators used by forms.
//
// A Validator maps a value to pass/fail plus an ErrorKind. Apart from
// Required and RequiredTrue, validators treat an empty value as valid so a
// blank field only ever reports ErrorRequired.
package validation
