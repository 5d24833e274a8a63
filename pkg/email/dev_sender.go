package email

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DevSender implements EmailSender for local development. Every email is
// written to dir as a JSON envelope, plus an HTML file for non-templated mail.
type DevSender struct {
	dir string
	now func() time.Time
}

// NewDevSender creates a development email sender that saves emails to disk.
// The directory is created on first send.
func NewDevSender(dir string) *DevSender {
	return &DevSender{dir: dir, now: time.Now}
}

type devEnvelope struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	SendEmailParams
}

// SendEmail saves the email to the configured directory.
func (d *DevSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToSendEmail, err)
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("%w: failed to create directory: %v", ErrFailedToSendEmail, err)
	}

	now := d.now()
	id := uuid.NewString()

	identifier := params.Tag
	if identifier == "" {
		identifier = params.TemplateAlias
	}
	if identifier == "" {
		identifier = params.Subject
	}
	base := fmt.Sprintf("%s_%s_%s", now.Format("2006_01_02_150405"), sanitizeFilename(identifier), id[:8])

	if !params.Templated() {
		htmlPath := filepath.Join(d.dir, base+".html")
		if err := os.WriteFile(htmlPath, []byte(params.BodyHTML), 0o644); err != nil {
			return fmt.Errorf("%w: failed to write HTML file: %v", ErrFailedToSendEmail, err)
		}
		params.BodyHTML = ""
	}

	data, err := json.MarshalIndent(devEnvelope{
		ID:              id,
		Timestamp:       now.Format(time.RFC3339),
		SendEmailParams: params,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: failed to marshal metadata: %v", ErrFailedToSendEmail, err)
	}
	if err := os.WriteFile(filepath.Join(d.dir, base+".json"), data, 0o644); err != nil {
		return fmt.Errorf("%w: failed to write JSON file: %v", ErrFailedToSendEmail, err)
	}
	return nil
}

var sanitizeRegex = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// sanitizeFilename keeps [a-z0-9-_.], turns spaces into underscores and caps the length.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = sanitizeRegex.ReplaceAllString(s, "")

	const maxLength = 64
	if len(s) > maxLength {
		s = s[:maxLength]
	}
	if s == "" {
		s = "email"
	}
	return strings.ToLower(s)
}
