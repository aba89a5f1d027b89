package utils

import (
	"fmt"
	"regexp"
)

var (
	emailRegex     = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	referenceRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_\-]{2,63}$`)
)

// ValidateEmail validates an email address
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format: %s", email)
	}
	return nil
}

// ValidateReference validates an offer reference: alphanumeric with dashes
// or underscores, 3 to 64 characters.
func ValidateReference(reference string) error {
	if !referenceRegex.MatchString(reference) {
		return fmt.Errorf("invalid reference format: %s", reference)
	}
	return nil
}

// ValidateAmount validates a monetary amount
func ValidateAmount(amount float64) error {
	if amount < 0 {
		return fmt.Errorf("amount must not be negative: %.2f", amount)
	}
	return nil
}
