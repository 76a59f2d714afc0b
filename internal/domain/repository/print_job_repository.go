package repository

import (
	"context"

	"github.com/SunnFlower47/kasir-print-service/internal/domain/entity"
)

// PrintJobRepository defines the interface for the print job audit trail.
type PrintJobRepository interface {
	// Create records the outcome of one print call
	Create(ctx context.Context, job *entity.PrintJob) error
	// List returns jobs ordered newest first
	List(ctx context.Context, offset, limit int) ([]entity.PrintJob, int64, error)
}
