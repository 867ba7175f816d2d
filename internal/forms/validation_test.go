package forms

import (
	"regexp"
	"testing"
)

func TestField_MessageError(t *testing.T) {
	digits := regexp.MustCompile(`^[0-9]+$`)
	field := Field{
		Key:    "codigo",
		Nombre: "codigo",
		Constraints: []Constraint{
			Pattern(digits),
			MaxLength(6),
			MinLength(3),
			Required(),
		},
	}

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "empty reports required first", value: "", want: "El campo codigo es requerido"},
		{name: "too short", value: "12", want: "El campo codigo tiene un minimo de 3"},
		{name: "too short and bad pattern prefers length", value: "ab", want: "El campo codigo tiene un minimo de 3"},
		{name: "too long", value: "1234567", want: "El campo codigo tiene un maximo de 6"},
		{name: "too long and bad pattern prefers length", value: "abcdefgh", want: "El campo codigo tiene un maximo de 6"},
		{name: "bad pattern", value: "12a4", want: "El campo codigo no tiene el formato correcto"},
		{name: "valid", value: "1234", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := field.MessageError(tt.value); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestField_OptionalFieldSkipsLengthRules(t *testing.T) {
	field := Field{Key: "apodo", Nombre: "apodo", Constraints: []Constraint{MinLength(3)}}
	if got := field.MessageError(""); got != "" {
		t.Errorf("expected no message for empty optional field, got %q", got)
	}
}

func TestField_LengthCountsRunes(t *testing.T) {
	field := Field{Key: "nombre", Nombre: "nombre", Constraints: []Constraint{MaxLength(4)}}
	if got := field.MessageError("ñaña"); got != "" {
		t.Errorf("expected 4 runes to fit max 4, got %q", got)
	}
}

func TestForm_Validate(t *testing.T) {
	form := Form{Fields: []Field{
		{Key: "username", Nombre: "username", Constraints: []Constraint{Required()}},
		{Key: "password", Nombre: "password", Constraints: []Constraint{Required()}},
	}}

	errs := form.Validate(map[string]string{"username": "alice", "password": ""})
	if len(errs) != 1 {
		t.Fatalf("expected one invalid field, got %v", errs)
	}
	if errs["password"] != "El campo password es requerido" {
		t.Errorf("unexpected password message %q", errs["password"])
	}

	errs = form.Validate(map[string]string{"username": "alice", "password": "secret"})
	if len(errs) != 0 {
		t.Errorf("expected valid form, got %v", errs)
	}

	errs = form.Validate(nil)
	if len(errs) != 2 {
		t.Errorf("expected both fields required, got %v", errs)
	}
}
