package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DebtCycle is one open-to-settled billing period accumulating a customer's
// debt until it is paid in full. At most one open (is_paid=false) cycle may
// exist per customer — enforced by a partial unique index on (user_id) WHERE
// is_paid = false (see infra.applySchemaPatches). Total only grows while the
// cycle is open, and IsPaid transitions false→true exactly once.
type DebtCycle struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Total     decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	IsPaid    bool            `gorm:"not null;default:false"`
	PaidAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	User     *Customer `gorm:"foreignKey:UserID"`
	Debts    []Debt    `gorm:"foreignKey:CycleID"`
	Payments []Payment `gorm:"foreignKey:CycleID"`
}

// Debt is one dated line item added to a cycle. Immutable once created;
// it is only ever removed together with its cycle.
type Debt struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CycleID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Date      time.Time       `gorm:"not null"`
	Note      *string
	CreatedAt time.Time

	Cycle *DebtCycle `gorm:"foreignKey:CycleID"`
}
