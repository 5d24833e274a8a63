package contact

import (
	"time"

	"github.com/dmitrymomot/agencysite/pkg/ratelimiter"
)

// Delivery providers selectable through CONTACT_PROVIDER.
const (
	ProviderEmailJS  = "emailjs"
	ProviderPostmark = "postmark"
	ProviderDev      = "dev"
)

// Config holds the contact form settings loaded from the environment.
type Config struct {
	Action           string             `env:"CONTACT_ACTION" envDefault:"contactForm"`
	RateLimit        ratelimiter.Config `envPrefix:"CONTACT_"`
	SimulatedDelay   time.Duration      `env:"CONTACT_SIMULATED_DELAY" envDefault:"1s"`
	WhatsAppPhone    string             `env:"CONTACT_WHATSAPP_PHONE" envDefault:"+8801646846514"`
	Provider         string             `env:"CONTACT_PROVIDER" envDefault:"emailjs"`
	PostmarkTemplate string             `env:"CONTACT_POSTMARK_TEMPLATE" envDefault:"contact-inquiry"`
	CatalogFile      string             `env:"CONTACT_CATALOG_FILE"`
	MaxBodyBytes     int64              `env:"CONTACT_MAX_BODY_BYTES" envDefault:"16384"`
	Credentials      Credentials
}

// ControllerOptions converts the configuration into controller options.
func (c Config) ControllerOptions() []Option {
	return []Option{
		WithAction(c.Action),
		WithCredentials(c.Credentials),
		WithSimulatedDelay(c.SimulatedDelay),
		WithWhatsAppPhone(c.WhatsAppPhone),
	}
}
