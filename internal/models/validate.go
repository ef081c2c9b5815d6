package models

import (
	"fmt"
	"strings"
)

// required trims value and reports a validation error if nothing is left.
func required(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", missing(field)
	}
	return value, nil
}

func missing(field string) error {
	return fmt.Errorf("%w: %s is required", ErrValidation, field)
}
