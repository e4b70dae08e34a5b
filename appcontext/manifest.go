package appcontext

import (
	"bytes"
	"fmt"

	"github.com/spf13/viper"

	"github.com/kbukum/gollama/validation"
)

// Manifest is the application description embedded at compile time.
//
//	product_name: Gollama
//	identifier: com.gollama.app
//	version: 0.1.0
//	build:
//	  dist_dir: frontend/dist
//	window:
//	  title: Gollama
//	  width: 1024
//	  height: 768
type Manifest struct {
	ProductName string      `mapstructure:"product_name" json:"product_name" validate:"required"`
	Identifier  string      `mapstructure:"identifier" json:"identifier" validate:"required,identifier"`
	Version     string      `mapstructure:"version" json:"version" validate:"omitempty,semver"`
	Build       BuildConfig `mapstructure:"build" json:"build"`
	Window      Window      `mapstructure:"window" json:"window"`
}

// BuildConfig locates the frontend inside the bundled assets.
type BuildConfig struct {
	DistDir string `mapstructure:"dist_dir" json:"dist_dir" validate:"required"`
}

// Window describes the main window.
type Window struct {
	Title     string `mapstructure:"title" json:"title"`
	Width     int    `mapstructure:"width" json:"width" validate:"gt=0"`
	Height    int    `mapstructure:"height" json:"height" validate:"gt=0"`
	MinWidth  int    `mapstructure:"min_width" json:"min_width" validate:"gte=0"`
	MinHeight int    `mapstructure:"min_height" json:"min_height" validate:"gte=0"`
	Resizable bool   `mapstructure:"resizable" json:"resizable"`
}

// ParseManifest reads and validates manifest YAML.
func ParseManifest(data []byte) (Manifest, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("build.dist_dir", "dist")
	v.SetDefault("window.width", 800)
	v.SetDefault("window.height", 600)
	v.SetDefault("window.resizable", true)

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return Manifest{}, fmt.Errorf("reading manifest: %w", err)
	}

	var m Manifest
	if err := v.Unmarshal(&m); err != nil {
		return Manifest{}, fmt.Errorf("decoding manifest: %w", err)
	}
	if m.Window.Title == "" {
		m.Window.Title = m.ProductName
	}

	if err := validation.Validate(m); err != nil {
		return Manifest{}, fmt.Errorf("invalid manifest: %w", err)
	}
	return m, nil
}
