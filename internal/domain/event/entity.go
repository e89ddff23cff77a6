// internal/domain/event/entity.go
package event

import (
	"time"
)

// Event represents an in-store tournament or play session
type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null;size:255" json:"name"`
	GameTitle   string    `gorm:"size:255" json:"game_title"`
	EventDate   time.Time `gorm:"not null;index" json:"event_date"`
	Fee         float64   `gorm:"type:decimal(10,2);default:0" json:"fee"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EventRegistration links a customer to an event. A customer registers
// for an event at most once.
type EventRegistration struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	EventID    uint      `gorm:"not null;uniqueIndex:idx_event_customer" json:"event_id"`
	CustomerID uint      `gorm:"not null;uniqueIndex:idx_event_customer" json:"customer_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName overrides
func (Event) TableName() string             { return "events" }
func (EventRegistration) TableName() string { return "event_registrations" }
