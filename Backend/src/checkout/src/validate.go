package main

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	checkoutapi "github.com/ahinestrog/storefront/api/checkout"
)

const maxTextLen = 256

type FieldError struct {
	Field  string
	Reason string
}

type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	return "invalid checkout form: " + strings.Join(parts, "; ")
}

// validateForm only checks that every field is present and within its length
// cap; payment details are not interpreted.
func validateForm(s checkoutapi.Shipping, p checkoutapi.Payment) error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"name", s.Name, maxTextLen},
		{"email", s.Email, maxTextLen},
		{"address", s.Address, maxTextLen},
		{"city", s.City, maxTextLen},
		{"zipCode", s.ZipCode, maxTextLen},
		{"cardNumber", p.CardNumber, 19},
		{"expiryDate", p.ExpiryDate, 5},
		{"cvv", p.CVV, 4},
	}

	var errs []FieldError
	for _, f := range fields {
		switch n := utf8.RuneCountInString(f.value); {
		case strings.TrimSpace(f.value) == "":
			errs = append(errs, FieldError{Field: f.name, Reason: "required"})
		case n > f.max:
			errs = append(errs, FieldError{Field: f.name, Reason: fmt.Sprintf("too long (max %d)", f.max)})
		}
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

// cardLast4 keeps the last four digits of a card number for the receipt.
func cardLast4(number string) string {
	var digits []rune
	for _, r := range number {
		if unicode.IsDigit(r) {
			digits = append(digits, r)
		}
	}
	if len(digits) > 4 {
		digits = digits[len(digits)-4:]
	}
	return string(digits)
}
