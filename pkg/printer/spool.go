package printer

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// defaultSpoolWait bounds how long the spool backend waits for the opener to
// report back before assuming the print dialog has taken over.
const defaultSpoolWait = time.Second

// Opener hands a spooled document to whatever shows the platform print
// dialog. The returned channel settles when the opener finishes; the backend
// races it against a bounded timer because some openers never report back.
type Opener func(path string) <-chan error

// ExecOpener runs a system command (e.g. "xdg-open" or "lp") on the spool
// file.
func ExecOpener(command string) Opener {
	return func(path string) <-chan error {
		done := make(chan error, 1)
		cmd := exec.Command(command, path)
		if err := cmd.Start(); err != nil {
			done <- err
			return done
		}
		go func() {
			done <- cmd.Wait()
		}()
		return done
	}
}

// SpoolBackend is the last resort, used only when no host bridge exists: it
// writes the full printable HTML document to a spool file and hands it to the
// system opener. When the spool directory is unusable it degrades once more
// and streams the document to a fallback writer instead of failing the print.
type SpoolBackend struct {
	bridge   Bridge
	dir      string
	opener   Opener
	fallback io.Writer
	wait     time.Duration
	logger   *zap.Logger
}

func NewSpoolBackend(bridge Bridge, dir string, opener Opener, fallback io.Writer, logger *zap.Logger) *SpoolBackend {
	return &SpoolBackend{
		bridge:   bridge,
		dir:      dir,
		opener:   opener,
		fallback: fallback,
		wait:     defaultSpoolWait,
		logger:   logger.Named("spool"),
	}
}

func (b *SpoolBackend) Name() string { return "spool" }

// Available is the inverse of the bridge check: the spool path only exists
// for environments without a host bridge.
func (b *SpoolBackend) Available(job *Job) bool {
	return b.bridge == nil || !b.bridge.Available()
}

func (b *SpoolBackend) Print(ctx context.Context, job *Job) error {
	path, err := b.writeSpoolFile(job)
	if err != nil {
		b.logger.Warn("spool file unusable, streaming to fallback writer", zap.Error(err))
		return b.printInline(job)
	}

	done := b.opener(path)
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("spool open %s: %w", path, err)
		}
	case <-time.After(b.wait):
		// The opener never settled; assume the print dialog took over.
		b.logger.Debug("spool opener timed out, assuming dialog shown",
			zap.String("path", path))
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

func (b *SpoolBackend) writeSpoolFile(job *Job) (string, error) {
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return "", fmt.Errorf("create spool dir %s: %w", b.dir, err)
	}
	name := fmt.Sprintf("receipt-%s-%d.html", job.ID, time.Now().UnixNano())
	path := filepath.Join(b.dir, name)
	if err := os.WriteFile(path, []byte(job.HTML), 0o644); err != nil {
		return "", fmt.Errorf("write spool file %s: %w", path, err)
	}
	return path, nil
}

func (b *SpoolBackend) printInline(job *Job) error {
	if b.fallback == nil {
		return fmt.Errorf("spool: no fallback writer configured")
	}
	if _, err := io.WriteString(b.fallback, job.HTML); err != nil {
		return fmt.Errorf("spool fallback write: %w", err)
	}
	return nil
}
