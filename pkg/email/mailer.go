package email

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// EmailSender represents an interface for sending emails.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams represents the parameters for sending an email.
// Either BodyHTML (with Subject) or TemplateAlias must be set. Templated
// emails take their subject and body from the provider-side template.
type SendEmailParams struct {
	SendTo        string         `json:"send_to"`
	ReplyTo       string         `json:"reply_to,omitempty"`
	Subject       string         `json:"subject,omitempty"`
	BodyHTML      string         `json:"body_html,omitempty"`
	Tag           string         `json:"tag,omitempty"`
	TemplateAlias string         `json:"template_alias,omitempty"`
	TemplateModel map[string]any `json:"template_model,omitempty"`
}

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Templated reports whether the message is rendered by a provider template.
func (p SendEmailParams) Templated() bool {
	return p.TemplateAlias != ""
}

// Validate checks the parameters before they reach a provider.
func (p SendEmailParams) Validate() error {
	if strings.TrimSpace(p.SendTo) == "" {
		return fmt.Errorf("%w: SendTo is required", ErrInvalidParams)
	}
	if !emailRegex.MatchString(p.SendTo) {
		return fmt.Errorf("%w: SendTo must be a valid email address", ErrInvalidParams)
	}
	if p.ReplyTo != "" && !emailRegex.MatchString(p.ReplyTo) {
		return fmt.Errorf("%w: ReplyTo must be a valid email address", ErrInvalidParams)
	}
	if p.Templated() {
		return nil
	}
	if strings.TrimSpace(p.Subject) == "" {
		return fmt.Errorf("%w: Subject is required", ErrInvalidParams)
	}
	if strings.TrimSpace(p.BodyHTML) == "" {
		return fmt.Errorf("%w: BodyHTML is required", ErrInvalidParams)
	}
	return nil
}
