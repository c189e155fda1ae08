package validation

import (
	"testing"
	"time"

	"github.com/Morphin20th/airport-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSeatBounds(t *testing.T) {
	airplane := &models.Airplane{Rows: 9, SeatsInRow: 70}

	tests := []struct {
		name      string
		row       int
		seat      int
		wantField string
	}{
		{name: "first seat", row: 1, seat: 1},
		{name: "last seat", row: 9, seat: 70},
		{name: "row too high", row: 10, seat: 1, wantField: "row"},
		{name: "row zero", row: 0, seat: 1, wantField: "row"},
		{name: "row negative", row: -3, seat: 1, wantField: "row"},
		{name: "seat too high", row: 1, seat: 71, wantField: "seat"},
		{name: "seat zero", row: 1, seat: 0, wantField: "seat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSeat(tt.row, tt.seat, airplane)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var seatErr *SeatError
			require.ErrorAs(t, err, &seatErr)
			assert.Equal(t, tt.wantField, seatErr.Field)
		})
	}
}

func TestSeatErrorMessageNamesValueAndRange(t *testing.T) {
	airplane := &models.Airplane{Rows: 9, SeatsInRow: 70}

	err := ValidateSeat(10, 1, airplane)
	require.Error(t, err)
	assert.Equal(t, "row number must be in range [1, 9], got 10", err.Error())

	err = ValidateSeat(1, 71, airplane)
	require.Error(t, err)
	assert.Equal(t, "seat number must be in range [1, 70], got 71", err.Error())
}

func TestValidateFlightTimes(t *testing.T) {
	departure := time.Date(2024, 12, 12, 15, 0, 0, 0, time.UTC)

	assert.NoError(t, ValidateFlightTimes(departure, departure.Add(time.Hour)))

	err := ValidateFlightTimes(departure, departure.Add(-time.Hour))
	var timeErr *TimeRangeError
	require.ErrorAs(t, err, &timeErr)
	assert.Equal(t, "departure time must be earlier than arrival time", err.Error())

	// equal times are invalid too
	assert.Error(t, ValidateFlightTimes(departure, departure))
}
