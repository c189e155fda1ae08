package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Flight schedules an airplane over a route. The composite unique index
// rejects a second flight with the same route, airplane and departure time.
type Flight struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RouteID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_flight_schedule" json:"-"`
	Route         Route     `json:"route"`
	AirplaneID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_flight_schedule" json:"-"`
	Airplane      Airplane  `json:"airplane"`
	Crewmates     []Crew    `gorm:"many2many:flight_crewmates;" json:"crewmates,omitempty"`
	DepartureTime time.Time `gorm:"not null;uniqueIndex:idx_flight_schedule" json:"departure_time"`
	ArrivalTime   time.Time `gorm:"not null" json:"arrival_time"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}

func (flight *Flight) BeforeCreate(tx *gorm.DB) (err error) {
	if flight.ID == uuid.Nil {
		flight.ID = uuid.New()
	}
	return
}
