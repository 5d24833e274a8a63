package email

// Config holds email service configuration. Postmark tokens are optional so
// development setups can fall back to DevSender.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL" envDefault:"noreply@localhost.dev"`
	InboxEmail           string `env:"INBOX_EMAIL" envDefault:"inbox@localhost.dev"` // receives contact inquiries
	DevOutputDir         string `env:"EMAIL_DEV_DIR" envDefault:"./tmp/emails"`
}

// PostmarkEnabled reports whether both Postmark tokens are set.
func (c Config) PostmarkEnabled() bool {
	return c.PostmarkServerToken != "" && c.PostmarkAccountToken != ""
}
