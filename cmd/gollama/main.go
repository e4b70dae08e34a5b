// Command gollama is the desktop shell with the SQL and log plugins.
package main

import (
	"context"
	"os"

	"github.com/kbukum/gollama/bootstrap"
	"github.com/kbukum/gollama/internal/cli"
)

func main() {
	os.Exit(cli.Run(context.Background(), os.Args[1:], cli.Dependencies{
		AppName: "gollama",
		Variant: bootstrap.VariantExtended,
	}))
}
