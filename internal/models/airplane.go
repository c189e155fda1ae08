package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Airplane carries the seat geometry (rows x seats_in_row) that ticket
// validation checks seat coordinates against.
type Airplane struct {
	ID             uuid.UUID    `gorm:"type:uuid;primary_key" json:"id"`
	Name           string       `gorm:"not null" json:"name"`
	Rows           int          `gorm:"not null" json:"rows"`
	SeatsInRow     int          `gorm:"not null" json:"seats_in_row"`
	AirplaneTypeID uuid.UUID    `gorm:"type:uuid;not null;index" json:"-"`
	AirplaneType   AirplaneType `json:"airplane_type"`
	ImagePath      string       `json:"image,omitempty"`
	CreatedAt      time.Time    `json:"-"`
	UpdatedAt      time.Time    `json:"-"`
}

func (airplane *Airplane) BeforeCreate(tx *gorm.DB) (err error) {
	if airplane.ID == uuid.Nil {
		airplane.ID = uuid.New()
	}
	return
}

// Capacity is the total number of seats on the airplane.
func (airplane *Airplane) Capacity() int {
	return airplane.Rows * airplane.SeatsInRow
}
