package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/urfave/cli/v3"

	"github.com/dmitrymomot/agencysite/pkg/fingerprint"
	"github.com/dmitrymomot/agencysite/pkg/httpserver"
	"github.com/dmitrymomot/agencysite/pkg/logger"
	"github.com/dmitrymomot/agencysite/pkg/ratelimiter"
	"github.com/dmitrymomot/agencysite/pkg/requestid"
	"github.com/dmitrymomot/agencysite/svc/contact"
)

const readinessTimeout = 2 * time.Second

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the contact HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "listen address, overrides HTTP_ADDR",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return serve(ctx, cmd.String("addr"))
		},
	}
}

func serve(ctx context.Context, addr string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg.Logger, os.Stdout)

	stores := newStore(ctx, cfg.Redis, log)
	defer stores.close()

	limiter, err := ratelimiter.New(stores.store, cfg.Contact.RateLimit, ratelimiter.WithLogger(log))
	if err != nil {
		return err
	}

	deliverer, creds, err := newDeliverer(cfg)
	if err != nil {
		return err
	}
	cfg.Contact.Credentials = creds
	if !creds.Complete() {
		log.WarnContext(ctx, "delivery credentials incomplete, submissions are simulated",
			slog.String("provider", cfg.Contact.Provider))
	}

	catalog, err := contact.LoadCatalog(cfg.Contact.CatalogFile)
	if err != nil {
		return err
	}

	h := contact.NewHandler(cfg.Contact, limiter, deliverer,
		contact.WithCatalog(catalog),
		contact.WithHandlerLogger(log),
	)

	opts := []httpserver.Option{httpserver.WithLogger(log)}
	if addr != "" {
		opts = append(opts, httpserver.WithAddr(addr))
	}
	if err := httpserver.NewFromConfig(cfg.HTTP, opts...).Run(ctx, newRouter(h, log, stores.checks)); err != nil {
		log.ErrorContext(ctx, "server stopped", logger.Error(err))
		return err
	}
	return nil
}

func newRouter(h *contact.Handler, log *slog.Logger, checks map[string]httpserver.CheckFunc) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware, fingerprint.Middleware, middleware.Recoverer)

	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(log, readinessTimeout, checks))
	r.Mount("/contact", h.Routes())
	return r
}
