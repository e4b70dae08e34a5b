package appcontext

import (
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/kbukum/gollama/validation"
	"github.com/kbukum/gollama/version"
)

// Context is the immutable application context.
type Context struct {
	productName string
	identifier  string
	version     string
	window      Window
	source      ContentSource
	distDir     string
	assets      fs.FS
}

// ProductName returns the human-readable application name.
func (c *Context) ProductName() string { return c.productName }

// Identifier returns the reverse-DNS application identifier.
func (c *Context) Identifier() string { return c.identifier }

// Version returns the product version.
func (c *Context) Version() string { return c.version }

// Window returns the main window description.
func (c *Context) Window() Window { return c.window }

// ContentSource returns where the window loads its UI from.
func (c *Context) ContentSource() ContentSource { return c.source }

// DistDir returns the frontend directory inside the bundled assets.
func (c *Context) DistDir() string { return c.distDir }

// Assets returns the bundled frontend rooted at the dist directory.
func (c *Context) Assets() fs.FS {
	sub, err := fs.Sub(c.assets, c.distDir)
	if err != nil {
		// Build verified the directory exists.
		return c.assets
	}
	return sub
}

// ContentAssets returns the tree a bundled content source serves. For
// external sources it falls back to Assets.
func (c *Context) ContentAssets() fs.FS {
	if c.source.IsBundled() {
		if sub, err := fs.Sub(c.assets, path.Clean(c.source.Dir())); err == nil {
			return sub
		}
	}
	return c.Assets()
}

// Builder accumulates the parts of a Context. It is the only way to obtain
// one, so a Context never changes after Build.
type Builder struct {
	manifest Manifest
	assets   fs.FS
	source   ContentSource
}

// Generator produces a fresh builder, typically from the embedded manifest.
type Generator func() (*Builder, error)

// ErrNoContentSource is returned by Build when the source was cleared.
var ErrNoContentSource = errors.New("appcontext: content source not set")

// NewBuilder starts a builder from a parsed manifest. The content source
// defaults to the bundled dist directory.
func NewBuilder(m Manifest, assets fs.FS) *Builder {
	return &Builder{
		manifest: m,
		assets:   assets,
		source:   Bundled(m.Build.DistDir),
	}
}

// Generate parses manifest YAML and returns a builder over assets.
func Generate(manifest []byte, assets fs.FS) (*Builder, error) {
	m, err := ParseManifest(manifest)
	if err != nil {
		return nil, err
	}
	return NewBuilder(m, assets), nil
}

// Manifest returns the parsed manifest.
func (b *Builder) Manifest() Manifest { return b.manifest }

// WithContentSource replaces the content source.
func (b *Builder) WithContentSource(s ContentSource) *Builder {
	b.source = s
	return b
}

// Build validates the accumulated parts and returns the immutable Context.
func (b *Builder) Build() (*Context, error) {
	if err := validation.Validate(b.manifest); err != nil {
		return nil, fmt.Errorf("appcontext: invalid manifest: %w", err)
	}
	if b.source.IsZero() {
		return nil, ErrNoContentSource
	}
	if b.source.IsExternal() {
		u := b.source.URL()
		if u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("appcontext: external content source %q must be absolute", u)
		}
	}
	if b.assets == nil {
		return nil, errors.New("appcontext: bundled assets are required")
	}

	distDir := path.Clean(b.manifest.Build.DistDir)
	info, err := fs.Stat(b.assets, distDir)
	if err != nil {
		return nil, fmt.Errorf("appcontext: dist dir %s: %w", distDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("appcontext: dist dir %s is not a directory", distDir)
	}
	if b.source.IsBundled() {
		if _, err := fs.Stat(b.assets, path.Clean(b.source.Dir())); err != nil {
			return nil, fmt.Errorf("appcontext: bundled source %s: %w", b.source.Dir(), err)
		}
	}

	return &Context{
		productName: b.manifest.ProductName,
		identifier:  b.manifest.Identifier,
		version:     version.Resolve(b.manifest.Version),
		window:      b.manifest.Window,
		source:      b.source,
		distDir:     distDir,
		assets:      b.assets,
	}, nil
}
