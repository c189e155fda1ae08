package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AirplaneType struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"unique;not null" json:"name"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (airplaneType *AirplaneType) BeforeCreate(tx *gorm.DB) (err error) {
	if airplaneType.ID == uuid.Nil {
		airplaneType.ID = uuid.New()
	}
	return
}
