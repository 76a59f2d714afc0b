package entity

import (
	"time"

	"github.com/google/uuid"
)

// Print job statuses.
const (
	PrintJobStatusPrinted = "printed"
	PrintJobStatusFailed  = "failed"
)

// PrintJob is the audit record of one printReceipt call: which transaction,
// which template, how many physical outputs, and which backend delivered them
// (or why it failed).
type PrintJob struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TransactionID string    `gorm:"size:100;index" json:"transaction_id"`
	OutletID      string    `gorm:"size:100" json:"outlet_id,omitempty"`
	Template      string    `gorm:"size:20;not null" json:"template"`
	Copies        int       `gorm:"not null" json:"copies"`
	CustomerCopy  bool      `json:"customer_copy"`
	Backend       string    `gorm:"size:30" json:"backend,omitempty"`
	Status        string    `gorm:"size:20;not null;index" json:"status"`
	Error         string    `gorm:"type:text" json:"error,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName returns the table name for PrintJob.
func (PrintJob) TableName() string {
	return "print_jobs"
}
