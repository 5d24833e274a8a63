package validator

import "regexp"

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex = regexp.MustCompile(`^\+?[\d\s\-()]+$`)
)

// IsValidEmail performs the loose local@domain.tld check used by the contact form.
func IsValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// IsValidPhone accepts digits, spaces, hyphens and parentheses with an optional leading plus.
func IsValidPhone(s string) bool {
	return phoneRegex.MatchString(s)
}

// Email fails for non-empty values that are not an email address.
func Email(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return value == "" || IsValidEmail(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "Invalid email format",
			TranslationKey: "validation.email",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// Phone fails for non-empty values that are not a phone number.
func Phone(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return value == "" || IsValidPhone(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "Invalid phone format",
			TranslationKey: "validation.phone",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}
