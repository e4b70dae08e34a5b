package log

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	apperrors "github.com/kbukum/gollama/errors"
	"github.com/kbukum/gollama/logger"
)

type event struct {
	name string
	data []any
}

type fakeHost struct {
	mu     sync.Mutex
	events []event
}

func (h *fakeHost) Emit(name string, data ...any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event{name, data})
}

func (h *fakeHost) Quit() {}

func (h *fakeHost) records() []Record {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []Record
	for _, e := range h.events {
		if e.name != EventName || len(e.data) != 1 {
			continue
		}
		if r, ok := e.data[0].(Record); ok {
			out = append(out, r)
		}
	}
	return out
}

func TestTargetString(t *testing.T) {
	tests := []struct {
		target Target
		want   string
	}{
		{LogDir, "LogDir"},
		{Stdout, "Stdout"},
		{Stderr, "Stderr"},
		{Webview, "Webview"},
		{Folder("/tmp/x"), "Folder(/tmp/x)"},
	}
	for _, tc := range tests {
		if got := tc.target.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestTargetsDeduplicatedInOrder(t *testing.T) {
	p := New(Config{Targets: []Target{LogDir, Stdout, LogDir, Webview, Stdout}})
	got := p.Targets()
	want := []Target{LogDir, Stdout, Webview}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestWebviewWriterBuffersUntilAttach(t *testing.T) {
	w := NewWebviewWriter()
	l := zerolog.New(w)
	l.Info().Str("component", "sql").Msg("first")
	l.Warn().Msg("second")

	if w.Pending() != 2 {
		t.Fatalf("expected 2 pending records, got %d", w.Pending())
	}

	host := &fakeHost{}
	w.Attach(host)
	l.Error().Msg("third")

	recs := host.records()
	want := []Record{
		{Level: LevelInfo, Message: "[sql] first"},
		{Level: LevelWarn, Message: "second"},
		{Level: LevelError, Message: "third"},
	}
	if len(recs) != len(want) {
		t.Fatalf("expected %d records, got %v", len(want), recs)
	}
	for i := range want {
		if recs[i] != want[i] {
			t.Errorf("record %d: expected %+v, got %+v", i, want[i], recs[i])
		}
	}
	if w.Pending() != 0 {
		t.Errorf("expected empty buffer after attach, got %d", w.Pending())
	}
}

func TestWebviewWriterBufferIsBounded(t *testing.T) {
	w := NewWebviewWriter()
	l := zerolog.New(w)
	for i := 0; i < pendingLimit+10; i++ {
		l.Info().Int("i", i).Msg("line")
	}
	if w.Pending() != pendingLimit {
		t.Errorf("expected %d pending, got %d", pendingLimit, w.Pending())
	}
}

func TestLevelNumber(t *testing.T) {
	tests := []struct {
		level zerolog.Level
		want  int
	}{
		{zerolog.TraceLevel, LevelTrace},
		{zerolog.DebugLevel, LevelDebug},
		{zerolog.InfoLevel, LevelInfo},
		{zerolog.NoLevel, LevelInfo},
		{zerolog.WarnLevel, LevelWarn},
		{zerolog.ErrorLevel, LevelError},
		{zerolog.FatalLevel, LevelError},
	}
	for _, tc := range tests {
		if got := levelNumber(tc.level); got != tc.want {
			t.Errorf("levelNumber(%s) = %d, want %d", tc.level, got, tc.want)
		}
	}
}

func TestPluginWritesLogFile(t *testing.T) {
	dir := t.TempDir()
	p := New(Config{
		Targets:     []Target{LogDir, Webview},
		Identifier:  "com.example.gollama",
		ProductName: "gollama",
		Dir:         dir,
		Logging:     logger.Config{Level: "debug", Format: "json"},
	})

	before := logger.GetGlobalLogger()
	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if logger.GetGlobalLogger() != p.Logger() {
		t.Error("expected plugin logger installed globally")
	}

	logger.Info("hello from a component")

	host := &fakeHost{}
	p.Attach(host)
	if err := (&Bridge{}).Log(LevelWarn, "from frontend", "App.svelte:12"); err != nil {
		t.Fatalf("Bridge.Log failed: %v", err)
	}

	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if logger.GetGlobalLogger() != before {
		t.Error("expected previous global logger restored")
	}

	data, err := os.ReadFile(p.FilePath(dir))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	content := string(data)
	for _, want := range []string{"hello from a component", "from frontend", "App.svelte:12"} {
		if !strings.Contains(content, want) {
			t.Errorf("log file missing %q:\n%s", want, content)
		}
	}

	recs := host.records()
	if len(recs) == 0 || recs[len(recs)-1].Message != "[webview] from frontend" {
		t.Errorf("expected frontend record forwarded to webview, got %v", recs)
	}
}

func TestPluginAppendsToExistingFile(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{Targets: []Target{Folder(dir)}, ProductName: "gollama", Logging: logger.Config{Format: "json"}}

	for i := 0; i < 2; i++ {
		p := New(cfg)
		if err := p.Start(context.Background()); err != nil {
			t.Fatalf("Start #%d failed: %v", i, err)
		}
		p.Logger().Info("launch")
		if err := p.Stop(context.Background()); err != nil {
			t.Fatalf("Stop #%d failed: %v", i, err)
		}
	}

	data, err := os.ReadFile(New(cfg).FilePath(dir))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if n := strings.Count(string(data), "launch"); n != 2 {
		t.Errorf("expected 2 appended lines, got %d", n)
	}
}

func TestBridgeRejectsBadLevel(t *testing.T) {
	err := (&Bridge{}).Log(9, "x", "")
	if !apperrors.HasCode(err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestDir(t *testing.T) {
	dir, err := Dir("com.example.gollama")
	if err != nil {
		t.Skipf("no user directories: %v", err)
	}
	if !strings.Contains(dir, "com.example.gollama") {
		t.Errorf("expected identifier in log dir, got %q", dir)
	}
}

func TestLoggerHandedOutBeforeStartReachesTargets(t *testing.T) {
	dir := t.TempDir()
	p := New(Config{Targets: []Target{Folder(dir)}, ProductName: "gollama", Logging: logger.Config{Format: "json"}})
	early := p.Logger().WithComponent("localhost")

	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	early.Info("served index")
	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	data, err := os.ReadFile(p.FilePath(dir))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "served index") {
		t.Errorf("expected early logger to write to the file, got:\n%s", data)
	}
}
