package printer

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SunnFlower47/kasir-print-service/internal/domain/entity"
)

var (
	// ErrEmptyContent means the formatter invariant was violated: a job
	// reached the chain with no printable content.
	ErrEmptyContent = errors.New("printer: empty content")
	// ErrNoBackendAvailable means no backend exists in this environment.
	ErrNoBackendAvailable = errors.New("printer: no print backend available")
)

// Job is one physical output to deliver: the printable HTML document plus,
// for thermal templates, the bare fixed-width text.
type Job struct {
	ID            uuid.UUID
	TransactionID string
	HTML          string
	PlainText     string
	Settings      entity.PrinterSettings
	Scale         int
	CustomerCopy  bool
}

// Backend is one strategy for getting a job onto paper. Backends are probed
// in priority order; one that is not available in this environment is
// silently skipped, never an error.
type Backend interface {
	Name() string
	Available(job *Job) bool
	Print(ctx context.Context, job *Job) error
}

// Chain tries an ordered list of backends and stops at the first success.
type Chain struct {
	backends []Backend
	logger   *zap.Logger
}

func NewChain(logger *zap.Logger, backends ...Backend) *Chain {
	return &Chain{
		backends: backends,
		logger:   logger.Named("chain"),
	}
}

// Deliver pushes one job through the chain. A backend failure is logged and
// the next backend is tried; when every available backend has failed the last
// error is returned, and when none is available at all the result is
// ErrNoBackendAvailable.
func (c *Chain) Deliver(ctx context.Context, job *Job) (string, error) {
	if job == nil || job.HTML == "" {
		return "", ErrEmptyContent
	}

	var lastErr error
	for _, b := range c.backends {
		if !b.Available(job) {
			continue
		}
		if err := b.Print(ctx, job); err != nil {
			c.logger.Warn("print backend failed, trying next",
				zap.String("backend", b.Name()),
				zap.String("transaction_id", job.TransactionID),
				zap.Error(err))
			lastErr = err
			continue
		}
		return b.Name(), nil
	}

	if lastErr != nil {
		return "", fmt.Errorf("printer: all backends failed: %w", lastErr)
	}
	return "", ErrNoBackendAvailable
}
