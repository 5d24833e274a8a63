package contact

import (
	"github.com/dmitrymomot/agencysite/pkg/validator"
)

// Field names a contact form input.
type Field string

const (
	FieldFirstName      Field = "firstName"
	FieldLastName       Field = "lastName"
	FieldEmail          Field = "email"
	FieldCompany        Field = "company"
	FieldService        Field = "service"
	FieldBudget         Field = "budget"
	FieldProjectDetails Field = "projectDetails"
)

// Fields lists every form field in display order.
var Fields = []Field{
	FieldFirstName,
	FieldLastName,
	FieldEmail,
	FieldCompany,
	FieldService,
	FieldBudget,
	FieldProjectDetails,
}

// Valid reports whether f is a known field.
func (f Field) Valid() bool {
	for _, known := range Fields {
		if f == known {
			return true
		}
	}
	return false
}

// Form holds the current value of every field.
type Form struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Company        string `json:"company"`
	Service        string `json:"service"`
	Budget         string `json:"budget"`
	ProjectDetails string `json:"projectDetails"`
}

// FormFrom builds a form by asking value for every field in Fields.
func FormFrom(value func(Field) string) Form {
	var f Form
	for _, field := range Fields {
		*f.ref(field) = value(field)
	}
	return f
}

// Get returns the value of f, or "" for unknown fields.
func (f *Form) Get(field Field) string {
	if p := f.ref(field); p != nil {
		return *p
	}
	return ""
}

// Set assigns value to field.
func (f *Form) Set(field Field, value string) error {
	p := f.ref(field)
	if p == nil {
		return ErrUnknownField
	}
	*p = value
	return nil
}

// Values returns the form as a field name to value map.
func (f Form) Values() map[string]string {
	out := make(map[string]string, len(Fields))
	for _, field := range Fields {
		out[string(field)] = f.Get(field)
	}
	return out
}

// IsZero reports whether every field is empty.
func (f Form) IsZero() bool {
	return f == Form{}
}

func (f *Form) ref(field Field) *string {
	switch field {
	case FieldFirstName:
		return &f.FirstName
	case FieldLastName:
		return &f.LastName
	case FieldEmail:
		return &f.Email
	case FieldCompany:
		return &f.Company
	case FieldService:
		return &f.Service
	case FieldBudget:
		return &f.Budget
	case FieldProjectDetails:
		return &f.ProjectDetails
	}
	return nil
}

// Rules is the validation rule set of the contact form. Company is the only
// optional field.
var Rules = validator.Rules{
	string(FieldFirstName):      {Required: true, MaxLength: 50},
	string(FieldLastName):       {Required: true, MaxLength: 50},
	string(FieldEmail):          {Required: true, Email: true, MaxLength: 254},
	string(FieldCompany):        {MaxLength: 100},
	string(FieldService):        {Required: true},
	string(FieldBudget):         {Required: true},
	string(FieldProjectDetails): {Required: true, MinLength: 10, MaxLength: 1000},
}
