package validator

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// Required fails for empty and whitespace-only values.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("%s is required", field),
			TranslationKey: "validation.required",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// MinLen fails for non-empty values shorter than min characters.
func MinLen(field, value string, min int) Rule {
	return Rule{
		Check: func() bool {
			return value == "" || IsValidLength(value, min, math.MaxInt)
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("Minimum length is %d", min),
			TranslationKey: "validation.min_length",
			TranslationValues: map[string]any{
				"field": field,
				"min":   min,
			},
		},
	}
}

// MaxLen fails for values longer than max characters.
func MaxLen(field, value string, max int) Rule {
	return Rule{
		Check: func() bool {
			return IsValidLength(value, 0, max)
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("Maximum length is %d", max),
			TranslationKey: "validation.max_length",
			TranslationValues: map[string]any{
				"field": field,
				"max":   max,
			},
		},
	}
}

// IsValidLength reports whether s has between min and max characters inclusive.
func IsValidLength(s string, min, max int) bool {
	n := utf8.RuneCountInString(s)
	return n >= min && n <= max
}
