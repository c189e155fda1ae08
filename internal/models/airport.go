package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Airport struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name           string    `gorm:"unique;not null" json:"name"`
	ClosestBigCity string    `gorm:"not null" json:"closest_big_city"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}

func (airport *Airport) BeforeCreate(tx *gorm.DB) (err error) {
	if airport.ID == uuid.Nil {
		airport.ID = uuid.New()
	}
	return
}
