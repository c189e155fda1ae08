package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order groups the tickets bought by a user in a single purchase. Tickets
// never exist outside an order; deleting an order removes its tickets.
type Order struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	User      User      `json:"-"`
	Tickets   []Ticket  `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"tickets"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (order *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	return
}
