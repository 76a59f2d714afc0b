package printer

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func channelOpener(err error) (Opener, *[]string) {
	var opened []string
	return func(path string) <-chan error {
		opened = append(opened, path)
		done := make(chan error, 1)
		done <- err
		return done
	}, &opened
}

func TestSpoolBackendAvailable(t *testing.T) {
	tests := []struct {
		name   string
		bridge Bridge
		want   bool
	}{
		{"no bridge", nil, true},
		{"unreachable bridge", &fakeBridge{alive: false}, true},
		{"reachable bridge", &fakeBridge{alive: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewSpoolBackend(tt.bridge, t.TempDir(), nil, nil, zap.NewNop())
			if got := b.Available(&Job{HTML: "<p>x</p>"}); got != tt.want {
				t.Errorf("Available() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpoolBackendWritesAndOpens(t *testing.T) {
	dir := t.TempDir()
	opener, opened := channelOpener(nil)
	b := NewSpoolBackend(nil, dir, opener, nil, zap.NewNop())

	job := &Job{ID: uuid.New(), HTML: "<html>struk</html>"}
	if err := b.Print(context.Background(), job); err != nil {
		t.Fatalf("Print() error: %v", err)
	}

	if len(*opened) != 1 {
		t.Fatalf("opener calls = %d, want 1", len(*opened))
	}
	data, err := os.ReadFile((*opened)[0])
	if err != nil {
		t.Fatalf("reading spool file: %v", err)
	}
	if string(data) != job.HTML {
		t.Errorf("spool file content = %q, want job HTML", data)
	}
	if !strings.HasSuffix((*opened)[0], ".html") {
		t.Errorf("spool file %q should carry an .html extension", (*opened)[0])
	}
}

func TestSpoolBackendOpenerError(t *testing.T) {
	wantErr := errors.New("no handler")
	opener, _ := channelOpener(wantErr)
	b := NewSpoolBackend(nil, t.TempDir(), opener, nil, zap.NewNop())

	err := b.Print(context.Background(), &Job{ID: uuid.New(), HTML: "<p>x</p>"})
	if !errors.Is(err, wantErr) {
		t.Errorf("Print() error = %v, want wrapped %v", err, wantErr)
	}
}

func TestSpoolBackendOpenerTimeoutIsSuccess(t *testing.T) {
	// Opener that never settles, like a GUI viewer holding the dialog open.
	opener := func(string) <-chan error { return make(chan error) }
	b := NewSpoolBackend(nil, t.TempDir(), opener, nil, zap.NewNop())
	b.wait = 10 * time.Millisecond

	if err := b.Print(context.Background(), &Job{ID: uuid.New(), HTML: "<p>x</p>"}); err != nil {
		t.Errorf("Print() error = %v, want timeout treated as success", err)
	}
}

func TestSpoolBackendFallbackWriter(t *testing.T) {
	// A regular file in place of the spool directory makes MkdirAll fail.
	blocked := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(blocked, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	b := NewSpoolBackend(nil, filepath.Join(blocked, "spool"), nil, &buf, zap.NewNop())

	job := &Job{ID: uuid.New(), HTML: "<html>struk</html>"}
	if err := b.Print(context.Background(), job); err != nil {
		t.Fatalf("Print() error: %v", err)
	}
	if buf.String() != job.HTML {
		t.Errorf("fallback writer got %q, want job HTML", buf.String())
	}
}

func TestSpoolBackendNoFallback(t *testing.T) {
	blocked := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(blocked, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	b := NewSpoolBackend(nil, filepath.Join(blocked, "spool"), nil, nil, zap.NewNop())
	if err := b.Print(context.Background(), &Job{ID: uuid.New(), HTML: "<p>x</p>"}); err == nil {
		t.Error("Print() should fail when spooling and the fallback are both unusable")
	}
}
