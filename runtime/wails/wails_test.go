package wails

import (
	"context"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"testing/fstest"

	"github.com/wailsapp/wails/v2/pkg/options"

	"github.com/kbukum/gollama/appcontext"
	"github.com/kbukum/gollama/logger"
	"github.com/kbukum/gollama/plugin"
)

func testManifest() appcontext.Manifest {
	return appcontext.Manifest{
		ProductName: "Gollama",
		Identifier:  "com.gollama.app",
		Build:       appcontext.BuildConfig{DistDir: "dist"},
		Window:      appcontext.Window{Title: "Gollama", Width: 1024, Height: 768, MinWidth: 400, Resizable: false},
	}
}

func testAssets() fstest.MapFS {
	return fstest.MapFS{"dist/index.html": {Data: []byte("bundled")}}
}

func buildContext(t *testing.T, src *appcontext.ContentSource) *appcontext.Context {
	t.Helper()
	b := appcontext.NewBuilder(testManifest(), testAssets())
	if src != nil {
		b.WithContentSource(*src)
	}
	ctx, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return ctx
}

type bindingPlugin struct {
	name     string
	bindings []any
	host     plugin.Host
}

func (p *bindingPlugin) Name() string                { return p.name }
func (p *bindingPlugin) Start(context.Context) error { return nil }
func (p *bindingPlugin) Stop(context.Context) error  { return nil }
func (p *bindingPlugin) Bindings() []any             { return p.bindings }
func (p *bindingPlugin) Attach(h plugin.Host)        { p.host = h }
func (p *bindingPlugin) Health(context.Context) plugin.Health {
	return plugin.Health{Name: p.name, Status: plugin.StatusHealthy}
}

type bridge struct{}

func TestAppOptionsWindowAndBindings(t *testing.T) {
	app := buildContext(t, nil)
	b := &bridge{}
	p := &bindingPlugin{name: "sql", bindings: []any{b}}

	opts, err := AppOptions(context.Background(), app, []plugin.Plugin{p}, logger.NewNop())
	if err != nil {
		t.Fatalf("AppOptions failed: %v", err)
	}

	if opts.Title != "Gollama" || opts.Width != 1024 || opts.Height != 768 || opts.MinWidth != 400 {
		t.Errorf("unexpected window options %+v", opts)
	}
	if !opts.DisableResize {
		t.Error("expected resize disabled for a non-resizable window")
	}
	if len(opts.Bind) != 1 || opts.Bind[0] != b {
		t.Errorf("expected plugin binding, got %v", opts.Bind)
	}
	if opts.Logger == nil {
		t.Error("expected logger adapter")
	}

	opts.OnStartup(context.Background())
	if p.host != nil {
		t.Error("plugins must not be attached before the page is ready")
	}
	opts.OnDomReady(context.Background())
	if _, ok := p.host.(*Host); !ok {
		t.Errorf("expected attacher to receive *Host on DOM ready, got %T", p.host)
	}
	opts.OnShutdown(context.Background())
	opts.OnShutdown(context.Background())
}

func TestAppOptionsBundledSource(t *testing.T) {
	app := buildContext(t, nil)
	opts, err := AppOptions(context.Background(), app, nil, logger.NewNop())
	if err != nil {
		t.Fatalf("AppOptions failed: %v", err)
	}
	if opts.AssetServer == nil || opts.AssetServer.Assets == nil {
		t.Fatal("expected bundled assets")
	}
	data, err := fs.ReadFile(opts.AssetServer.Assets, "index.html")
	if err != nil || string(data) != "bundled" {
		t.Errorf("expected bundled index, got %q (%v)", data, err)
	}
}

func TestAppOptionsExternalSourceProxies(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "proxied "+r.URL.Path)
	}))
	defer upstream.Close()

	u, _ := url.Parse(upstream.URL)
	src := appcontext.External(u)
	app := buildContext(t, &src)

	opts, err := AppOptions(context.Background(), app, nil, logger.NewNop())
	if err != nil {
		t.Fatalf("AppOptions failed: %v", err)
	}
	if opts.AssetServer.Assets != nil {
		t.Error("external source must not serve bundled assets")
	}
	if opts.AssetServer.Handler == nil {
		t.Fatal("expected proxy handler")
	}

	rr := httptest.NewRecorder()
	opts.AssetServer.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "http://wails.localhost/chat", http.NoBody))
	if rr.Body.String() != "proxied /chat" {
		t.Errorf("unexpected proxied body %q", rr.Body.String())
	}
}

func TestAppOptionsNilContext(t *testing.T) {
	if _, err := AppOptions(context.Background(), nil, nil, logger.NewNop()); err == nil {
		t.Error("expected error for nil context")
	}
}

func TestRunUsesRunFunc(t *testing.T) {
	app := buildContext(t, nil)
	var got *options.App
	r := New(WithLogger(logger.NewNop()), WithRunFunc(func(o *options.App) error {
		got = o
		return nil
	}))

	if err := r.Run(context.Background(), app, nil); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got == nil || got.Title != "Gollama" {
		t.Errorf("expected options passed to run func, got %+v", got)
	}
}
