package booking

import (
	"errors"
	"fmt"

	"github.com/Morphin20th/airport-api/internal/models"
	"github.com/Morphin20th/airport-api/internal/validation"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrEmptyOrder is returned when an order is placed with no tickets. It is
// detected before any storage access.
var ErrEmptyOrder = errors.New("an order must contain at least one ticket")

// FlightNotFoundError reports a ticket request referencing a flight that
// does not exist.
type FlightNotFoundError struct {
	FlightID uuid.UUID
}

func (e *FlightNotFoundError) Error() string {
	return fmt.Sprintf("flight %s does not exist", e.FlightID)
}

// SeatTakenError reports a (row, seat, flight) combination that is already
// occupied, either by a persisted ticket or by a duplicate within the same
// order request.
type SeatTakenError struct {
	Row      int
	Seat     int
	FlightID uuid.UUID
}

func (e *SeatTakenError) Error() string {
	return fmt.Sprintf("seat (row %d, seat %d) on flight %s is already taken", e.Row, e.Seat, e.FlightID)
}

type TicketRequest struct {
	Row      int       `json:"row" binding:"required"`
	Seat     int       `json:"seat" binding:"required"`
	FlightID uuid.UUID `json:"flight" binding:"required"`
}

type validatedTicket struct {
	row    int
	seat   int
	flight models.Flight
}

// ValidatedOrder is the output of ValidateOrder and the only input
// CommitOrder accepts, so an order cannot be committed without having passed
// validation first.
type ValidatedOrder struct {
	userID  uuid.UUID
	tickets []validatedTicket
}

// ValidateOrder resolves and validates every ticket request of an order.
// Any failure rejects the whole batch: a nil ValidatedOrder is returned and
// nothing has been written. The checks run in request order and surface the
// first failure.
func ValidateOrder(db *gorm.DB, userID uuid.UUID, requests []TicketRequest) (*ValidatedOrder, error) {
	if len(requests) == 0 {
		return nil, ErrEmptyOrder
	}

	type seatKey struct {
		flightID uuid.UUID
		row      int
		seat     int
	}
	seen := make(map[seatKey]bool, len(requests))

	validated := &ValidatedOrder{userID: userID}
	for _, req := range requests {
		var flight models.Flight
		err := db.Preload("Airplane").
			Preload("Route.Source").
			Preload("Route.Destination").
			Where("id = ?", req.FlightID).
			First(&flight).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &FlightNotFoundError{FlightID: req.FlightID}
			}
			return nil, err
		}

		if err := validation.ValidateSeat(req.Row, req.Seat, &flight.Airplane); err != nil {
			return nil, err
		}

		key := seatKey{flightID: flight.ID, row: req.Row, seat: req.Seat}
		if seen[key] {
			return nil, &SeatTakenError{Row: req.Row, Seat: req.Seat, FlightID: flight.ID}
		}
		seen[key] = true

		// "row" is a reserved word in postgres; a map condition lets gorm
		// quote the column for whichever dialect is in use.
		var taken int64
		err = db.Model(&models.Ticket{}).
			Where(map[string]interface{}{"flight_id": flight.ID, "row": req.Row, "seat": req.Seat}).
			Count(&taken).Error
		if err != nil {
			return nil, err
		}
		if taken > 0 {
			return nil, &SeatTakenError{Row: req.Row, Seat: req.Seat, FlightID: flight.ID}
		}

		validated.tickets = append(validated.tickets, validatedTicket{
			row:    req.Row,
			seat:   req.Seat,
			flight: flight,
		})
	}
	return validated, nil
}

// CommitOrder persists the order and its tickets in a single transaction:
// either every record is committed or none is. The unique index on
// (flight_id, row, seat) backstops the pre-check in ValidateOrder; when a
// concurrent order wins the race the constraint violation comes back as a
// SeatTakenError instead of a double booking.
func CommitOrder(db *gorm.DB, validated *ValidatedOrder) (*models.Order, error) {
	order := &models.Order{UserID: validated.userID}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for _, vt := range validated.tickets {
			ticket := models.Ticket{
				Row:      vt.row,
				Seat:     vt.seat,
				FlightID: vt.flight.ID,
				OrderID:  order.ID,
			}
			if err := tx.Create(&ticket).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return &SeatTakenError{Row: vt.row, Seat: vt.seat, FlightID: vt.flight.ID}
				}
				return err
			}
			ticket.Flight = vt.flight
			order.Tickets = append(order.Tickets, ticket)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// PlaceOrder runs the full validate-then-commit pipeline for one order.
func PlaceOrder(db *gorm.DB, userID uuid.UUID, requests []TicketRequest) (*models.Order, error) {
	validated, err := ValidateOrder(db, userID, requests)
	if err != nil {
		return nil, err
	}
	return CommitOrder(db, validated)
}
