package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/dmitrymomot/agencysite/pkg/email"
	"github.com/dmitrymomot/agencysite/pkg/emailjs"
	"github.com/dmitrymomot/agencysite/pkg/fingerprint"
	"github.com/dmitrymomot/agencysite/pkg/httpserver"
	"github.com/dmitrymomot/agencysite/pkg/logger"
	"github.com/dmitrymomot/agencysite/pkg/ratelimiter"
	"github.com/dmitrymomot/agencysite/pkg/redis"
	"github.com/dmitrymomot/agencysite/pkg/requestid"
	"github.com/dmitrymomot/agencysite/svc/contact"
)

var errUnknownProvider = errors.New("unknown delivery provider")

func newLogger(cfg logger.Config, out io.Writer) *slog.Logger {
	opts := append(logger.FromConfig(cfg),
		logger.WithOutput(out),
		logger.WithExtractor(requestid.LoggerExtractor()),
		logger.WithExtractor(fingerprint.LoggerExtractor()),
	)
	return logger.New(opts...)
}

type storeBundle struct {
	store  ratelimiter.Store
	checks map[string]httpserver.CheckFunc
	close  func()
}

// newStore uses Redis when REDIS_URL is set and reachable. Otherwise the
// limiter keeps its records in process memory.
func newStore(ctx context.Context, cfg redis.Config, log *slog.Logger) storeBundle {
	if cfg.Enabled() {
		client, err := redis.Connect(ctx, cfg)
		if err == nil {
			return storeBundle{
				store:  redis.NewStore(client, cfg.KeyPrefix),
				checks: map[string]httpserver.CheckFunc{"redis": redis.Healthcheck(client)},
				close:  func() { _ = client.Close() },
			}
		}
		log.WarnContext(ctx, "redis unavailable, using in-memory rate limits", logger.Error(err))
	}

	ms := ratelimiter.NewMemoryStore()
	return storeBundle{store: ms, close: ms.Close}
}

// newDeliverer returns the deliverer of the configured provider together with
// the credentials the controller checks before delivering. Incomplete
// credentials make the controller simulate deliveries.
func newDeliverer(cfg appConfig) (contact.Deliverer, contact.Credentials, error) {
	switch cfg.Contact.Provider {
	case contact.ProviderEmailJS, "":
		client := emailjs.New(cfg.EmailJS)
		return contact.NewEmailJSDeliverer(client), cfg.Contact.Credentials, nil

	case contact.ProviderPostmark:
		if !cfg.Email.PostmarkEnabled() {
			return nil, contact.Credentials{}, nil
		}
		sender, err := email.NewPostmarkClient(cfg.Email)
		if err != nil {
			return nil, contact.Credentials{}, err
		}
		creds := contact.Credentials{
			ServiceID:  contact.ProviderPostmark,
			TemplateID: cfg.Contact.PostmarkTemplate,
			PublicKey:  cfg.Email.PostmarkServerToken,
		}
		return contact.NewMailerDeliverer(sender, cfg.Email.InboxEmail), creds, nil

	case contact.ProviderDev:
		creds := contact.Credentials{
			ServiceID:  contact.ProviderDev,
			TemplateID: cfg.Contact.PostmarkTemplate,
			PublicKey:  contact.ProviderDev,
		}
		sender := email.NewDevSender(cfg.Email.DevOutputDir)
		return contact.NewMailerDeliverer(sender, cfg.Email.InboxEmail), creds, nil
	}

	return nil, contact.Credentials{}, fmt.Errorf("%w: %q", errUnknownProvider, cfg.Contact.Provider)
}
