package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment settles a debt cycle in full: creation requires Amount to equal
// the cycle's total and atomically flips the cycle's IsPaid flag.
// Deletion is soft (DeletedAt marker) and cycles keep at most one active
// payment — a partial unique index on (cycle_id) WHERE deleted_at IS NULL.
// DeletedAt is a plain pointer, not gorm.DeletedAt: the history endpoint and
// the purge cron query deleted rows explicitly.
type Payment struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CycleID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	PaidAt    time.Time       `gorm:"not null;index"`
	DeletedAt *time.Time      `gorm:"index"`
	CreatedAt time.Time

	Cycle *DebtCycle `gorm:"foreignKey:CycleID"`
}
