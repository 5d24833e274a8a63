package validator

import "sort"

// FieldRules describes the checks for one field. Zero MinLength or MaxLength
// means the bound is not set.
type FieldRules struct {
	Required  bool `json:"required,omitempty" yaml:"required,omitempty"`
	Email     bool `json:"email,omitempty" yaml:"email,omitempty"`
	Phone     bool `json:"phone,omitempty" yaml:"phone,omitempty"`
	MinLength int  `json:"minLength,omitempty" yaml:"min_length,omitempty"`
	MaxLength int  `json:"maxLength,omitempty" yaml:"max_length,omitempty"`
}

// Rules maps field names to their checks.
type Rules map[string]FieldRules

// Result is the outcome of Validate. Errors holds at most one message per field.
type Result struct {
	IsValid bool              `json:"isValid"`
	Errors  map[string]string `json:"errors"`
}

// Err converts a failed result into ValidationErrors ordered by field name.
// It returns nil for a valid result.
func (r Result) Err() error {
	if r.IsValid {
		return nil
	}

	fields := make([]string, 0, len(r.Errors))
	for f := range r.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	errs := make(ValidationErrors, 0, len(fields))
	for _, f := range fields {
		errs.Add(ValidationError{Field: f, Message: r.Errors[f]})
	}
	return errs
}

// Chain builds the ordered rule list for a single field value:
// required, email, phone, minimum length, maximum length.
func (fr FieldRules) Chain(field, value string) []Rule {
	rules := make([]Rule, 0, 5)
	if fr.Required {
		rules = append(rules, Required(field, value))
	}
	if fr.Email {
		rules = append(rules, Email(field, value))
	}
	if fr.Phone {
		rules = append(rules, Phone(field, value))
	}
	if fr.MinLength > 0 {
		rules = append(rules, MinLen(field, value, fr.MinLength))
	}
	if fr.MaxLength > 0 {
		rules = append(rules, MaxLen(field, value, fr.MaxLength))
	}
	return rules
}

// Validate evaluates rules against values. Fields missing from values are
// treated as empty. Only the first failing rule of each field is reported.
func Validate(values map[string]string, rules Rules) Result {
	res := Result{IsValid: true, Errors: make(map[string]string)}

	for field, fr := range rules {
		if verr, failed := First(fr.Chain(field, values[field])...); failed {
			res.Errors[field] = verr.Message
			res.IsValid = false
		}
	}

	return res
}
