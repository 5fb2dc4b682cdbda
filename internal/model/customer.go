package model

import (
	"time"

	"github.com/google/uuid"
)

// Customer is the shop's debtor — not a system login.
// Deletable only while it has no unpaid debt cycle.
type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null;index"`
	Phone     string    `gorm:"not null"`
	Address   string    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Cycles []DebtCycle `gorm:"foreignKey:UserID"`
}

// TableName keeps the original API naming: customers are "users".
func (Customer) TableName() string { return "users" }
