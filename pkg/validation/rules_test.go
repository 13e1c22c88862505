package validation

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPattern_PhoneDigits(t *testing.T) {
	phone := Pattern(`\d{10,12}`)

	cases := map[string]bool{
		"12345":         false,
		"1234567890":    true,
		"123456789012":  true,
		"1234567890123": false,
		"12345abcde":    false,
		" 1234567890":   false,
		"":              true,
	}
	for input, want := range cases {
		_, ok := phone(input)
		if ok != want {
			t.Fatalf("phone %q: expected valid=%v, got %v", input, want, ok)
		}
	}
}

func TestRequired(t *testing.T) {
	if kind, ok := Required()(""); ok || kind != ErrorRequired {
		t.Fatalf("expected required failure for empty string, got %q %v", kind, ok)
	}
	if _, ok := Required()(nil); ok {
		t.Fatalf("expected required failure for nil")
	}
	if _, ok := Required()("x"); !ok {
		t.Fatalf("expected non-empty string to pass")
	}
}

func TestRequiredTrue(t *testing.T) {
	if kind, ok := RequiredTrue()(false); ok || kind != ErrorRequired {
		t.Fatalf("expected required failure for false, got %q %v", kind, ok)
	}
	if _, ok := RequiredTrue()("true"); ok {
		t.Fatalf("expected string value to fail requiredTrue")
	}
	if _, ok := RequiredTrue()(true); !ok {
		t.Fatalf("expected true to pass")
	}
}

func TestEmail(t *testing.T) {
	valid := []string{"jane@example.com", "first.last+tag@sub.example.org", "user@localhost", "a@b"}
	for _, input := range valid {
		if _, ok := Email()(input); !ok {
			t.Fatalf("expected %q to be a valid email", input)
		}
	}
	invalid := []string{
		"jane", "jane@", "@example.com", "jane example.com",
		"jane..doe@example.com", "jane@-example.com",
		strings.Repeat("a", 65) + "@example.com",
	}
	for _, input := range invalid {
		if kind, ok := Email()(input); ok || kind != ErrorEmail {
			t.Fatalf("expected %q to fail with email, got %q %v", input, kind, ok)
		}
	}
	if _, ok := Email()(""); !ok {
		t.Fatalf("expected empty email to be left to the required rule")
	}
}

func TestMinLength_CountsUTF16Units(t *testing.T) {
	min := MinLength(2)
	if _, ok := min("é"); ok {
		t.Fatalf("expected single unit to be too short")
	}
	if _, ok := min("éé"); !ok {
		t.Fatalf("expected two units to pass")
	}
	if _, ok := min("😀"); !ok {
		t.Fatalf("expected a surrogate pair to count as two units")
	}
}

func TestValidate_CollectsInOrder(t *testing.T) {
	result := Validate("a", Required(), MinLength(2), Pattern(`\d+`))
	want := Result{Valid: false, Errors: []ErrorKind{ErrorMinLength, ErrorPattern}}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_EmptyOnlyReportsRequired(t *testing.T) {
	result := Validate("", Required(), Email(), MinLength(10))
	want := Result{Valid: false, Errors: []ErrorKind{ErrorRequired}}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestMessageFor_Priority(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		want   string
	}{
		{"valid", Result{Valid: true}, ""},
		{"required wins", Result{Errors: []ErrorKind{ErrorPattern, ErrorRequired}}, "phone is required"},
		{"email before length", Result{Errors: []ErrorKind{ErrorMinLength, ErrorEmail}}, "Please enter a valid email"},
		{"too short", Result{Errors: []ErrorKind{ErrorMinLength}}, "phone is too short"},
		{"pattern", Result{Errors: []ErrorKind{ErrorPattern}}, "Please enter a valid phone number"},
		{"unknown kind", Result{Errors: []ErrorKind{"custom"}}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MessageFor("phone", tt.result); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
