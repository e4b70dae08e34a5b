package localhost

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/kbukum/gollama/logger"
	"github.com/kbukum/gollama/plugin"
	"github.com/kbukum/gollama/plugins/localhost/middleware"
	"github.com/kbukum/gollama/portpicker"
)

func testAssets() fstest.MapFS {
	return fstest.MapFS{
		"index.html":        {Data: []byte("<html>app</html>")},
		"assets/app.js":     {Data: []byte("console.log('hi')")},
		"docs/index.html":   {Data: []byte("<html>docs</html>")},
		"images/ollama.svg": {Data: []byte("<svg/>")},
	}
}

func TestServeAssets(t *testing.T) {
	s := NewServer(0, testAssets(), logger.NewNop(), nil)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"root", "/", http.StatusOK, "<html>app</html>"},
		{"file", "/assets/app.js", http.StatusOK, "console.log('hi')"},
		{"directory index", "/docs/", http.StatusOK, "<html>docs</html>"},
		{"client route", "/chat/42", http.StatusOK, "<html>app</html>"},
		{"missing file with extension", "/assets/missing.css", http.StatusNotFound, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tc.path, http.NoBody))

			if rr.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, rr.Code)
			}
			if tc.wantBody != "" && rr.Body.String() != tc.wantBody {
				t.Errorf("expected body %q, got %q", tc.wantBody, rr.Body.String())
			}
			if rr.Header().Get(middleware.HeaderRequestID) == "" {
				t.Error("expected request id header")
			}
		})
	}
}

func TestResolveAssetWithoutIndex(t *testing.T) {
	assets := fstest.MapFS{"app.js": {Data: []byte("x")}}
	if _, ok := resolveAsset(assets, "/chat"); ok {
		t.Error("expected no fallback when index.html is missing")
	}
	if name, ok := resolveAsset(assets, "/app.js"); !ok || name != "app.js" {
		t.Errorf("expected app.js, got %q %v", name, ok)
	}
}

func TestPluginLifecycle(t *testing.T) {
	port, err := portpicker.Pick()
	if err != nil {
		t.Skipf("no free port: %v", err)
	}

	p := New(port, testAssets(), WithLogger(logger.NewNop()))
	if p.Name() != Name {
		t.Errorf("expected name %q, got %q", Name, p.Name())
	}
	if p.Port() != port {
		t.Errorf("expected port %d, got %d", port, p.Port())
	}
	if h := p.Health(context.Background()); h.Status != plugin.StatusUnhealthy {
		t.Errorf("expected unhealthy before start, got %s", h.Status)
	}

	ctx := context.Background()
	if err := p.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if h := p.Health(ctx); h.Status != plugin.StatusHealthy {
		t.Errorf("expected healthy after start, got %s", h.Status)
	}

	resp, err := http.Get(fmt.Sprintf("http://localhost:%d/", port))
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if !strings.Contains(string(body), "app") {
		t.Errorf("unexpected body %q", body)
	}

	if err := p.Stop(ctx); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if h := p.Health(ctx); h.Status != plugin.StatusUnhealthy {
		t.Errorf("expected unhealthy after stop, got %s", h.Status)
	}
}

func TestStartFailsWhenPortTaken(t *testing.T) {
	port, err := portpicker.Pick()
	if err != nil {
		t.Skipf("no free port: %v", err)
	}
	first := New(port, testAssets(), WithLogger(logger.NewNop()))
	if err := first.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer func() { _ = first.Stop(context.Background()) }()

	second := New(port, testAssets(), WithLogger(logger.NewNop()))
	if err := second.Start(context.Background()); err == nil {
		t.Fatal("expected bind error on a taken port")
	}
}

func TestDescribe(t *testing.T) {
	p := New(18080, testAssets(), WithLogger(logger.NewNop()))
	d := p.Describe()
	if d.Type != "server" || d.Port != 18080 {
		t.Errorf("unexpected description %+v", d)
	}
	if d.Details != "http://127.0.0.1:18080" {
		t.Errorf("unexpected details %q", d.Details)
	}
}
