package validation

import (
	"fmt"
	"time"

	"github.com/Morphin20th/airport-api/internal/models"
)

// SeatError reports a seat coordinate outside the airplane's geometry. Field
// is "row" or "seat" so callers can attribute the message to the offending
// attribute.
type SeatError struct {
	Field string
	Value int
	Max   int
}

func (e *SeatError) Error() string {
	return fmt.Sprintf("%s number must be in range [1, %d], got %d", e.Field, e.Max, e.Value)
}

// TimeRangeError reports a flight whose departure is not strictly earlier
// than its arrival.
type TimeRangeError struct {
	Departure time.Time
	Arrival   time.Time
}

func (e *TimeRangeError) Error() string {
	return "departure time must be earlier than arrival time"
}

// ValidateSeat checks a (row, seat) coordinate against the airplane's seat
// geometry. It does not check whether the seat is already taken; uniqueness
// is enforced separately by the order transaction and the database index.
func ValidateSeat(row, seat int, airplane *models.Airplane) error {
	if row < 1 || row > airplane.Rows {
		return &SeatError{Field: "row", Value: row, Max: airplane.Rows}
	}
	if seat < 1 || seat > airplane.SeatsInRow {
		return &SeatError{Field: "seat", Value: seat, Max: airplane.SeatsInRow}
	}
	return nil
}

// ValidateFlightTimes checks that a flight departs strictly before it
// arrives.
func ValidateFlightTimes(departure, arrival time.Time) error {
	if !departure.Before(arrival) {
		return &TimeRangeError{Departure: departure, Arrival: arrival}
	}
	return nil
}
