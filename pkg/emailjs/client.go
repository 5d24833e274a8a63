package emailjs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultEndpoint is the EmailJS send API.
const DefaultEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// Config holds EmailJS credentials. Any empty identifier leaves the client
// unconfigured.
type Config struct {
	ServiceID   string        `env:"EMAILJS_SERVICE_ID"`
	TemplateID  string        `env:"EMAILJS_TEMPLATE_ID"`
	PublicKey   string        `env:"EMAILJS_PUBLIC_KEY"`
	PrivateKey  string        `env:"EMAILJS_PRIVATE_KEY"` // optional access token for strict mode
	Endpoint    string        `env:"EMAILJS_ENDPOINT" envDefault:"https://api.emailjs.com/api/v1.0/email/send"`
	HTTPTimeout time.Duration `env:"EMAILJS_TIMEOUT" envDefault:"15s"`
}

// Configured reports whether all three identifiers are present.
func (c Config) Configured() bool {
	return c.ServiceID != "" && c.TemplateID != "" && c.PublicKey != ""
}

// Message is one email send. Empty identifiers fall back to the client
// configuration.
type Message struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
	Params     map[string]string
}

type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
	AccessToken    string            `json:"accessToken,omitempty"`
}

// Client sends messages through EmailJS.
type Client struct {
	cfg  Config
	http *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New creates a client. It does not validate cfg; Send does.
func New(cfg Config, opts ...Option) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	c := &Client{cfg: cfg, http: &http.Client{Timeout: timeout}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Config returns the client configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// Send posts msg to the EmailJS API.
func (c *Client) Send(ctx context.Context, msg Message) error {
	req := sendRequest{
		ServiceID:      firstNonEmpty(msg.ServiceID, c.cfg.ServiceID),
		TemplateID:     firstNonEmpty(msg.TemplateID, c.cfg.TemplateID),
		UserID:         firstNonEmpty(msg.PublicKey, c.cfg.PublicKey),
		TemplateParams: msg.Params,
		AccessToken:    c.cfg.PrivateKey,
	}
	if req.ServiceID == "" || req.TemplateID == "" || req.UserID == "" {
		return ErrNotConfigured
	}
	if req.TemplateParams == nil {
		req.TemplateParams = map[string]string{}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("emailjs: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
		return errors.Join(ErrSendFailed, &APIError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		})
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
