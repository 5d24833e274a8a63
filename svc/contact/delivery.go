package contact

import (
	"context"
	"time"

	"github.com/dmitrymomot/agencysite/pkg/email"
	"github.com/dmitrymomot/agencysite/pkg/emailjs"
)

// Template parameter names sent to the delivery provider.
const (
	ParamFromName  = "from_name"
	ParamFromEmail = "from_email"
	ParamReplyTo   = "reply_to"
	ParamCompany   = "company"
	ParamService   = "service"
	ParamBudget    = "budget"
	ParamMessage   = "message"
)

// CompanyPlaceholder replaces an empty company field.
const CompanyPlaceholder = "Not specified"

// Credentials identify the delivery template and account. All three must be
// set for a real delivery; otherwise the controller simulates success.
type Credentials struct {
	ServiceID  string `env:"EMAILJS_SERVICE_ID"`
	TemplateID string `env:"EMAILJS_TEMPLATE_ID"`
	PublicKey  string `env:"EMAILJS_PUBLIC_KEY"`
}

// Complete reports whether every identifier is present.
func (c Credentials) Complete() bool {
	return c.ServiceID != "" && c.TemplateID != "" && c.PublicKey != ""
}

// Delivery is a single outbound inquiry.
type Delivery struct {
	Credentials
	Params map[string]string
}

// Deliverer sends an inquiry to the agency inbox.
type Deliverer interface {
	Deliver(ctx context.Context, d Delivery) error
}

// DelivererFunc adapts a function to Deliverer.
type DelivererFunc func(ctx context.Context, d Delivery) error

func (f DelivererFunc) Deliver(ctx context.Context, d Delivery) error { return f(ctx, d) }

// DeliveryParams maps a form to the provider template parameters.
func DeliveryParams(f Form) map[string]string {
	company := f.Company
	if company == "" {
		company = CompanyPlaceholder
	}
	return map[string]string{
		ParamFromName:  f.FirstName + " " + f.LastName,
		ParamFromEmail: f.Email,
		ParamReplyTo:   f.Email,
		ParamCompany:   company,
		ParamService:   f.Service,
		ParamBudget:    f.Budget,
		ParamMessage:   f.ProjectDetails,
	}
}

// EmailJSDeliverer delivers through the EmailJS REST API.
type EmailJSDeliverer struct {
	client *emailjs.Client
}

// NewEmailJSDeliverer wraps client.
func NewEmailJSDeliverer(client *emailjs.Client) *EmailJSDeliverer {
	return &EmailJSDeliverer{client: client}
}

func (d *EmailJSDeliverer) Deliver(ctx context.Context, del Delivery) error {
	return d.client.Send(ctx, emailjs.Message{
		ServiceID:  del.ServiceID,
		TemplateID: del.TemplateID,
		PublicKey:  del.PublicKey,
		Params:     del.Params,
	})
}

// MailerDeliverer delivers through an email.EmailSender as a templated
// email. The template id doubles as the provider template alias and replies
// go to the visitor.
type MailerDeliverer struct {
	sender email.EmailSender
	inbox  string
}

// NewMailerDeliverer sends inquiries to inbox through sender.
func NewMailerDeliverer(sender email.EmailSender, inbox string) *MailerDeliverer {
	return &MailerDeliverer{sender: sender, inbox: inbox}
}

func (d *MailerDeliverer) Deliver(ctx context.Context, del Delivery) error {
	model := make(map[string]any, len(del.Params))
	for k, v := range del.Params {
		model[k] = v
	}
	return d.sender.SendEmail(ctx, email.SendEmailParams{
		SendTo:        d.inbox,
		ReplyTo:       del.Params[ParamReplyTo],
		TemplateAlias: del.TemplateID,
		TemplateModel: model,
		Tag:           "contact-inquiry",
	})
}

// simulatedDeliverer stands in for a provider when credentials are missing.
type simulatedDeliverer struct {
	delay time.Duration
}

func (s simulatedDeliverer) Deliver(ctx context.Context, _ Delivery) error {
	if s.delay <= 0 {
		return nil
	}
	t := time.NewTimer(s.delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
