// Package gollama embeds the application manifest and the built frontend.
package gollama

import (
	"embed"

	"github.com/kbukum/gollama/appcontext"
)

//go:embed app.yml
var manifest []byte

//go:embed all:frontend/dist
var assets embed.FS

// Context generates the application context builder from the embedded
// manifest and assets. It satisfies appcontext.Generator.
func Context() (*appcontext.Builder, error) {
	return appcontext.Generate(manifest, assets)
}
