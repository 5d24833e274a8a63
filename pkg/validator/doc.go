// Package validator evaluates declarative field rules against submitted form
// values.
//
// A Rules value maps field names to FieldRules descriptors. Validate checks
// every described field in a fixed order (required, email, phone, minimum
// length, maximum length) and records only the first failure per field.
// Format and length checks never fire on empty values; emptiness is the
// concern of Required alone.
//
//	rules := validator.Rules{
//	    "email": {Required: true, Email: true},
//	    "phone": {Phone: true},
//	}
//	res := validator.Validate(values, rules)
//	if !res.IsValid {
//	    // res.Errors["email"] == "Invalid email format"
//	}
//
// The building blocks are plain Rule values (a Check func plus a
// translation-friendly ValidationError). Apply runs a list of rules and
// collects every failure; First stops at the first one. Result.Err converts a
// failed result into ValidationErrors, which implements error.
//
// The package is stateless and safe for concurrent use.
package validator
