package main

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/dmitrymomot/agencysite/pkg/ratelimiter"
	"github.com/dmitrymomot/agencysite/svc/contact"
)

var fieldLabels = map[contact.Field]string{
	contact.FieldFirstName:      "First name",
	contact.FieldLastName:       "Last name",
	contact.FieldEmail:          "Email",
	contact.FieldCompany:        "Company (optional)",
	contact.FieldService:        "Service",
	contact.FieldBudget:         "Budget",
	contact.FieldProjectDetails: "Project details",
}

func submitCommand(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "submit",
		Usage: "Fill in and send the contact form from the terminal",
		Action: func(ctx context.Context, _ *cli.Command) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := newLogger(cfg.Logger, os.Stderr)

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

			catalog, err := contact.LoadCatalog(cfg.Contact.CatalogFile)
			if err != nil {
				return err
			}

			opts := append(cfg.Contact.ControllerOptions(), contact.WithLogger(log), contact.WithChecks(catalog.Check))
			ctrl := contact.NewController(limiter, deliverer, opts...)
			defer ctrl.Close()

			return runSubmit(ctx, ctrl, surveyPrompter{}, catalog, out)
		},
	}
}

// runSubmit drives a controller from terminal prompts. Invalid fields are
// asked again until the form is delivered, the visitor gives up or the
// attempt is rate limited.
func runSubmit(ctx context.Context, ctrl *contact.Controller, p prompter, catalog contact.Catalog, out io.Writer) error {
	pending := contact.Fields
	for {
		snap := ctrl.Snapshot()
		for _, field := range pending {
			value, err := ask(p, catalog, field, snap)
			if errors.Is(err, errAborted) {
				fmt.Fprintln(out, "Aborted.")
				return nil
			}
			if err != nil {
				return err
			}
			if snap, err = ctrl.OnFieldChange(field, value); err != nil {
				return err
			}
		}

		fmt.Fprintln(out, "Sending...")
		snap, err := ctrl.OnSubmit(ctx)
		renderSnapshot(out, snap)

		switch {
		case err == nil:
			return nil
		case errors.Is(err, contact.ErrInvalidForm):
			pending = invalidFields(snap)
		case errors.Is(err, contact.ErrDeliveryFailed):
			retry, perr := p.Confirm("Try again?", true)
			if perr != nil || !retry {
				return err
			}
			pending = nil
		default:
			return err
		}
	}
}

func ask(p prompter, catalog contact.Catalog, field contact.Field, snap contact.Snapshot) (string, error) {
	label := fieldLabels[field]
	help := snap.Errors[field]
	current := html.UnescapeString(snap.Form.Get(field))

	switch field {
	case contact.FieldService:
		return p.Select(label, help, catalog.Services, current)
	case contact.FieldBudget:
		return p.Select(label, help, catalog.Budgets, current)
	case contact.FieldProjectDetails:
		return p.Multiline(label, help, current)
	default:
		return p.Input(label, help, current)
	}
}

func invalidFields(snap contact.Snapshot) []contact.Field {
	var fields []contact.Field
	for _, f := range contact.Fields {
		if _, ok := snap.Errors[f]; ok {
			fields = append(fields, f)
		}
	}
	return fields
}

func renderSnapshot(out io.Writer, snap contact.Snapshot) {
	if snap.Status != nil {
		mark := "✔"
		if snap.Status.Kind == contact.StatusError {
			mark = "✖"
		}
		fmt.Fprintf(out, "%s %s\n", mark, snap.Status.Message)
		if snap.Status.AlternateURL != "" {
			fmt.Fprintf(out, "  WhatsApp: %s\n", snap.Status.AlternateURL)
		}
	}

	for _, f := range invalidFields(snap) {
		fmt.Fprintf(out, "  - %s: %s\n", fieldLabels[f], snap.Errors[f])
	}
}
