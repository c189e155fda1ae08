package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Route struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SourceID      uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Source        Airport   `gorm:"foreignKey:SourceID" json:"source"`
	DestinationID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Destination   Airport   `gorm:"foreignKey:DestinationID" json:"destination"`
	Distance      int       `gorm:"not null" json:"distance"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}

func (route *Route) BeforeCreate(tx *gorm.DB) (err error) {
	if route.ID == uuid.Nil {
		route.ID = uuid.New()
	}
	return
}
