package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SunnFlower47/kasir-print-service/internal/domain/entity"
	domainRepo "github.com/SunnFlower47/kasir-print-service/internal/domain/repository"
)

type printJobRepository struct {
	db *gorm.DB
}

// NewPrintJobRepository creates a new print job repository
func NewPrintJobRepository(db *gorm.DB) domainRepo.PrintJobRepository {
	return &printJobRepository{db: db}
}

func (r *printJobRepository) Create(ctx context.Context, job *entity.PrintJob) error {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *printJobRepository) List(ctx context.Context, offset, limit int) ([]entity.PrintJob, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.PrintJob{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jobs []entity.PrintJob
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&jobs).Error
	return jobs, total, err
}
