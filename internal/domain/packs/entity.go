// internal/domain/packs/entity.go
package packs

import (
	"time"
)

// PackBalance is a per-customer running total of booster-pack credits,
// keyed by game and pack type. The quantity is a materialized view of
// the transaction log and is only ever written in the same transaction
// as the log row that justifies the change.
type PackBalance struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uint      `gorm:"not null;uniqueIndex:idx_balance_key" json:"customer_id"`
	GameTitle  string    `gorm:"not null;size:255;uniqueIndex:idx_balance_key" json:"game_title"`
	PackType   string    `gorm:"not null;size:100;uniqueIndex:idx_balance_key" json:"pack_type"`
	Quantity   int       `gorm:"not null;default:0" json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PackTransaction is one append-only ledger entry. Rows are never
// updated or deleted.
type PackTransaction struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uint      `gorm:"not null;index" json:"customer_id"`
	GameTitle  string    `gorm:"not null;size:255" json:"game_title"`
	PackType   string    `gorm:"not null;size:100" json:"pack_type"`
	Amount     int       `gorm:"not null" json:"amount"`
	EventID    *uint     `gorm:"index" json:"event_id"`
	Note       string    `gorm:"size:255" json:"note"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName overrides
func (PackBalance) TableName() string     { return "pack_balances" }
func (PackTransaction) TableName() string { return "pack_transactions" }
