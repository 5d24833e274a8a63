package email

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mrz1836/postmark"
)

type postmarkClient struct {
	client *postmark.Client
	config Config
}

// PostmarkOption tweaks the underlying Postmark client.
type PostmarkOption func(*postmark.Client)

// WithBaseURL points the client at another API endpoint.
func WithBaseURL(url string) PostmarkOption {
	return func(c *postmark.Client) { c.BaseURL = url }
}

// WithHTTPClient replaces the HTTP client used for API calls.
func WithHTTPClient(hc *http.Client) PostmarkOption {
	return func(c *postmark.Client) {
		if hc != nil {
			c.HTTPClient = hc
		}
	}
}

// NewPostmarkClient creates a Postmark-backed email sender.
func NewPostmarkClient(cfg Config, opts ...PostmarkOption) (EmailSender, error) {
	if cfg.PostmarkServerToken == "" {
		return nil, fmt.Errorf("%w: PostmarkServerToken is required", ErrInvalidConfig)
	}
	if cfg.PostmarkAccountToken == "" {
		return nil, fmt.Errorf("%w: PostmarkAccountToken is required", ErrInvalidConfig)
	}
	if cfg.SenderEmail == "" {
		return nil, fmt.Errorf("%w: SenderEmail is required", ErrInvalidConfig)
	}
	if !emailRegex.MatchString(cfg.SenderEmail) {
		return nil, fmt.Errorf("%w: SenderEmail must be a valid email address", ErrInvalidConfig)
	}

	client := postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken)
	for _, opt := range opts {
		opt(client)
	}
	return &postmarkClient{client: client, config: cfg}, nil
}

// MustNewPostmarkClient creates a Postmark client that panics on invalid config.
func MustNewPostmarkClient(cfg Config, opts ...PostmarkOption) EmailSender {
	client, err := NewPostmarkClient(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return client
}

// SendEmail sends either a templated or an HTML email. Reply-To defaults to
// the sender so replies never go to an unmonitored address.
func (c *postmarkClient) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	replyTo := params.ReplyTo
	if replyTo == "" {
		replyTo = c.config.SenderEmail
	}

	var (
		resp postmark.EmailResponse
		err  error
	)
	if params.Templated() {
		resp, err = c.client.SendTemplatedEmail(ctx, postmark.TemplatedEmail{
			TemplateAlias: params.TemplateAlias,
			TemplateModel: params.TemplateModel,
			From:          c.config.SenderEmail,
			To:            params.SendTo,
			ReplyTo:       replyTo,
			Tag:           params.Tag,
			TrackOpens:    true,
		})
	} else {
		resp, err = c.client.SendEmail(ctx, postmark.Email{
			From:       c.config.SenderEmail,
			ReplyTo:    replyTo,
			To:         params.SendTo,
			Subject:    params.Subject,
			Tag:        params.Tag,
			HTMLBody:   params.BodyHTML,
			TrackOpens: true,
			TrackLinks: "HtmlOnly",
		})
	}
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(
			ErrFailedToSendEmail,
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message),
		)
	}
	return nil
}
