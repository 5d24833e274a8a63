// Command agencysite runs the agency site contact API and offers terminal
// tools for the same contact flow.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "agencysite",
		Usage: "Contact form backend of the agency site",
		Commands: []*cli.Command{
			serveCommand(),
			submitCommand(os.Stdout),
			whatsAppCommand(os.Stdout),
		},
	}
}
