package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Crew struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FirstName string    `gorm:"not null" json:"first_name"`
	LastName  string    `gorm:"not null" json:"last_name"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (crew *Crew) BeforeCreate(tx *gorm.DB) (err error) {
	if crew.ID == uuid.Nil {
		crew.ID = uuid.New()
	}
	return
}

func (crew *Crew) FullName() string {
	return fmt.Sprintf("%s %s", crew.FirstName, crew.LastName)
}
