package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ticket is a single seat on a flight, owned by exactly one order. The
// composite unique index on (flight_id, row, seat) is the authoritative
// guard against double booking; application-level checks only fail faster.
type Ticket struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Row       int       `gorm:"not null;uniqueIndex:idx_ticket_seat" json:"row"`
	Seat      int       `gorm:"not null;uniqueIndex:idx_ticket_seat" json:"seat"`
	FlightID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ticket_seat" json:"flight_id"`
	Flight    Flight    `json:"flight,omitempty"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (ticket *Ticket) BeforeCreate(tx *gorm.DB) (err error) {
	if ticket.ID == uuid.Nil {
		ticket.ID = uuid.New()
	}
	return
}
