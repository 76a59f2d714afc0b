package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/SunnFlower47/kasir-print-service/internal/domain/entity"
	domainRepo "github.com/SunnFlower47/kasir-print-service/internal/domain/repository"
)

// In-memory stores used when no database is configured. The service still
// prints; it just forgets its audit trail on restart.

type memoryPrintJobRepository struct {
	mu   sync.Mutex
	jobs []entity.PrintJob
}

// NewMemoryPrintJobRepository creates a volatile print job store.
func NewMemoryPrintJobRepository() domainRepo.PrintJobRepository {
	return &memoryPrintJobRepository{}
}

func (r *memoryPrintJobRepository) Create(_ context.Context, job *entity.PrintJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	// Newest first
	r.jobs = append([]entity.PrintJob{*job}, r.jobs...)
	return nil
}

func (r *memoryPrintJobRepository) List(_ context.Context, offset, limit int) ([]entity.PrintJob, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := int64(len(r.jobs))
	if offset >= len(r.jobs) {
		return []entity.PrintJob{}, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(r.jobs) {
		end = len(r.jobs)
	}
	out := make([]entity.PrintJob, end-offset)
	copy(out, r.jobs[offset:end])
	return out, total, nil
}

type memoryIdempotencyRepository struct {
	mu   sync.Mutex
	keys map[string]entity.IdempotencyKey
}

// NewMemoryIdempotencyRepository creates a volatile idempotency store.
func NewMemoryIdempotencyRepository() domainRepo.IdempotencyRepository {
	return &memoryIdempotencyRepository{keys: make(map[string]entity.IdempotencyKey)}
}

func (r *memoryIdempotencyRepository) GetByKey(_ context.Context, key, clientID string) (*entity.IdempotencyKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ikey, ok := r.keys[key+"|"+clientID]
	if !ok {
		return nil, nil
	}
	return &ikey, nil
}

func (r *memoryIdempotencyRepository) Create(_ context.Context, ikey *entity.IdempotencyKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ikey.ID == uuid.Nil {
		ikey.ID = uuid.New()
	}
	r.keys[ikey.Key+"|"+ikey.ClientID] = *ikey
	return nil
}

func (r *memoryIdempotencyRepository) DeleteExpired(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, ikey := range r.keys {
		if ikey.IsExpired() {
			delete(r.keys, k)
		}
	}
	return nil
}
