package gollama

import (
	"io/fs"
	"testing"
)

func TestEmbeddedContextBuilds(t *testing.T) {
	b, err := Context()
	if err != nil {
		t.Fatalf("Context failed: %v", err)
	}
	if b.Manifest().Identifier != "com.gollama.app" {
		t.Errorf("unexpected identifier %q", b.Manifest().Identifier)
	}
	ctx, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if _, err := fs.Stat(ctx.Assets(), "index.html"); err != nil {
		t.Errorf("expected embedded index.html: %v", err)
	}
}
