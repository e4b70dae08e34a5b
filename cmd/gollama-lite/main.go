// Command gollama-lite is the desktop shell with only the content server.
package main

import (
	"context"
	"os"

	"github.com/kbukum/gollama/bootstrap"
	"github.com/kbukum/gollama/internal/cli"
)

func main() {
	os.Exit(cli.Run(context.Background(), os.Args[1:], cli.Dependencies{
		AppName: "gollama-lite",
		Variant: bootstrap.VariantMinimal,
	}))
}
