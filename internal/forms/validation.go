package forms

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// Kind identifies a constraint. When several constraints fail, the lowest Kind
// wins: required, then minimum length, maximum length, pattern.
type Kind int

const (
	KindRequired Kind = iota
	KindMinLength
	KindMaxLength
	KindPattern
)

// Constraint is a single rule attached to a field.
type Constraint struct {
	Kind    Kind
	Length  int
	Pattern *regexp.Regexp
}

func Required() Constraint                 { return Constraint{Kind: KindRequired} }
func MinLength(n int) Constraint           { return Constraint{Kind: KindMinLength, Length: n} }
func MaxLength(n int) Constraint           { return Constraint{Kind: KindMaxLength, Length: n} }
func Pattern(re *regexp.Regexp) Constraint { return Constraint{Kind: KindPattern, Pattern: re} }

// Field declares a form control: its key, the name shown in messages and its rules.
type Field struct {
	Key         string
	Nombre      string
	Constraints []Constraint
}

// Form is an ordered set of fields.
type Form struct {
	Fields []Field
}

// failed reports whether value violates c. Length and pattern rules do not apply
// to empty values, so an optional field may be left blank.
func (c Constraint) failed(value string) bool {
	switch c.Kind {
	case KindRequired:
		return value == ""
	case KindMinLength:
		return value != "" && utf8.RuneCountInString(value) < c.Length
	case KindMaxLength:
		return value != "" && utf8.RuneCountInString(value) > c.Length
	case KindPattern:
		return value != "" && c.Pattern != nil && !c.Pattern.MatchString(value)
	}
	return false
}

// Message renders the user-facing message for a violation of c on the field nombre.
func (c Constraint) Message(nombre string) string {
	switch c.Kind {
	case KindRequired:
		return fmt.Sprintf("El campo %s es requerido", nombre)
	case KindMinLength:
		return fmt.Sprintf("El campo %s tiene un minimo de %d", nombre, c.Length)
	case KindMaxLength:
		return fmt.Sprintf("El campo %s tiene un maximo de %d", nombre, c.Length)
	case KindPattern:
		return fmt.Sprintf("El campo %s no tiene el formato correcto", nombre)
	}
	return ""
}

// MessageError returns the single message for value under f's constraints,
// or "" when the value is valid.
func (f Field) MessageError(value string) string {
	var first *Constraint
	for i := range f.Constraints {
		c := f.Constraints[i]
		if !c.failed(value) {
			continue
		}
		if first == nil || c.Kind < first.Kind {
			first = &c
		}
	}
	if first == nil {
		return ""
	}
	return first.Message(f.Nombre)
}

// Validate checks values against every field and returns one message per
// invalid field keyed by Field.Key. An empty map means the form is valid.
func (f Form) Validate(values map[string]string) map[string]string {
	errs := make(map[string]string)
	for _, field := range f.Fields {
		if msg := field.MessageError(values[field.Key]); msg != "" {
			errs[field.Key] = msg
		}
	}
	return errs
}
