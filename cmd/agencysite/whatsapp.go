package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/dmitrymomot/agencysite/pkg/config"
	"github.com/dmitrymomot/agencysite/pkg/qrcode"
	"github.com/dmitrymomot/agencysite/pkg/sanitizer"
	"github.com/dmitrymomot/agencysite/svc/contact"
)

var errNoPhone = errors.New("no WhatsApp phone configured")

var whatsAppFieldFlags = map[contact.Field]string{
	contact.FieldFirstName:      "first-name",
	contact.FieldLastName:       "last-name",
	contact.FieldEmail:          "email",
	contact.FieldCompany:        "company",
	contact.FieldService:        "service",
	contact.FieldBudget:         "budget",
	contact.FieldProjectDetails: "details",
}

func whatsAppCommand(out io.Writer) *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:  "phone",
			Usage: "WhatsApp number, overrides CONTACT_WHATSAPP_PHONE",
		},
		&cli.StringFlag{
			Name:  "qr",
			Usage: "also write the link as a PNG QR code to this path",
		},
	}
	for _, field := range contact.Fields {
		flags = append(flags, &cli.StringFlag{
			Name:  whatsAppFieldFlags[field],
			Usage: fieldLabels[field],
		})
	}

	return &cli.Command{
		Name:  "whatsapp",
		Usage: "Print a WhatsApp deep link, prefilled with an inquiry when any field flag is set",
		Flags: flags,
		Action: func(_ context.Context, cmd *cli.Command) error {
			phone := cmd.String("phone")
			if phone == "" {
				var cfg contact.Config
				if err := config.Load(&cfg); err != nil {
					return err
				}
				phone = cfg.WhatsAppPhone
			}
			if phone == "" {
				return errNoPhone
			}

			form := contact.FormFrom(func(field contact.Field) string {
				return sanitizer.EscapeHTML(cmd.String(whatsAppFieldFlags[field]))
			})

			link := contact.GreetingURL(phone)
			if !form.IsZero() {
				link = contact.WhatsAppURL(phone, form)
			}
			fmt.Fprintln(out, link)

			if path := cmd.String("qr"); path != "" {
				png, err := qrcode.Generate(link)
				if err != nil {
					return err
				}
				if err := os.WriteFile(path, png, 0o644); err != nil {
					return err
				}
				fmt.Fprintf(out, "QR code written to %s\n", path)
			}
			return nil
		},
	}
}
