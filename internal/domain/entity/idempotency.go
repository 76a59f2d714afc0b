package entity

import (
	"time"

	"github.com/google/uuid"
)

// IdempotencyKey stores processed print submissions to prevent duplicates. A
// replayed POST /print/receipt with the same key gets the cached response back
// instead of producing a second stack of paper.
type IdempotencyKey struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Key          string    `gorm:"uniqueIndex;size:255;not null"` // The idempotency key from the client
	ClientID     string    `gorm:"size:255;not null;index"`       // Token subject or client IP
	Endpoint     string    `gorm:"size:255;not null"`             // e.g. "POST /api/v1/print/receipt"
	ResponseCode int       `gorm:"not null"`
	ResponseBody string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	ExpiresAt    time.Time `gorm:"not null;index"`
}

// TableName returns the table name for IdempotencyKey.
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired checks if the idempotency key has expired.
func (i *IdempotencyKey) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}
