package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/Morphin20th/airport-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flightBody(fx testFixtures, departure, arrival time.Time) map[string]interface{} {
	return map[string]interface{}{
		"route":          fx.route.ID,
		"airplane":       fx.airplane.ID,
		"departure_time": departure.Format(time.RFC3339),
		"arrival_time":   arrival.Format(time.RFC3339),
	}
}

func TestCreateFlightRequiresStaff(t *testing.T) {
	r, db := setupTestServer(t)
	fx := seedFlightFixtures(t, db)
	customer := createUser(t, db, "customer@test.test", models.RoleCustomer)

	departure := time.Date(2024, 12, 13, 10, 0, 0, 0, time.UTC)
	w := doJSON(t, r, http.MethodPost, "/v1/flights", authToken(t, customer),
		flightBody(fx, departure, departure.Add(time.Hour)))
	assertStatus(t, w, http.StatusForbidden)
}

func TestCreateFlight(t *testing.T) {
	r, db := setupTestServer(t)
	fx := seedFlightFixtures(t, db)
	staff := createUser(t, db, "staff@test.test", models.RoleStaff)

	departure := time.Date(2024, 12, 13, 10, 0, 0, 0, time.UTC)
	w := doJSON(t, r, http.MethodPost, "/v1/flights", authToken(t, staff),
		flightBody(fx, departure, departure.Add(time.Hour)))
	assertStatus(t, w, http.StatusCreated)

	assert.Equal(t, int64(2), countRows(t, db, &models.Flight{}))
}

func TestCreateFlightRejectsBadTimeRange(t *testing.T) {
	r, db := setupTestServer(t)
	fx := seedFlightFixtures(t, db)
	staff := createUser(t, db, "staff@test.test", models.RoleStaff)

	// arrival one hour before departure
	departure := time.Date(2024, 12, 12, 15, 0, 0, 0, time.UTC)
	arrival := time.Date(2024, 12, 12, 14, 0, 0, 0, time.UTC)
	w := doJSON(t, r, http.MethodPost, "/v1/flights", authToken(t, staff),
		flightBody(fx, departure, arrival))
	assertStatus(t, w, http.StatusBadRequest)

	var response struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(t, response.Fields, "departure_time")

	assert.Equal(t, int64(1), countRows(t, db, &models.Flight{}))
}

func TestCreateFlightRejectsDuplicateSchedule(t *testing.T) {
	r, db := setupTestServer(t)
	fx := seedFlightFixtures(t, db)
	staff := createUser(t, db, "staff@test.test", models.RoleStaff)

	// same route, airplane and departure time as the seeded flight
	w := doJSON(t, r, http.MethodPost, "/v1/flights", authToken(t, staff),
		flightBody(fx, fx.flight.DepartureTime, fx.flight.ArrivalTime))
	assertStatus(t, w, http.StatusBadRequest)

	assert.Equal(t, int64(1), countRows(t, db, &models.Flight{}))
}

func TestListFlightsFilters(t *testing.T) {
	r, db := setupTestServer(t)
	fx := seedFlightFixtures(t, db)
	user := createUser(t, db, "test@test.test", models.RoleCustomer)
	token := authToken(t, user)

	// second flight on another day with a different airplane
	otherAirplane := models.Airplane{Name: "Other Airplane", Rows: 5, SeatsInRow: 4, AirplaneTypeID: fx.airplane.AirplaneTypeID}
	require.NoError(t, db.Create(&otherAirplane).Error)
	otherFlight := models.Flight{
		RouteID:       fx.route.ID,
		AirplaneID:    otherAirplane.ID,
		DepartureTime: time.Date(2024, 12, 20, 9, 0, 0, 0, time.UTC),
		ArrivalTime:   time.Date(2024, 12, 20, 11, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&otherFlight).Error)

	listLen := func(path string) int {
		w := doJSON(t, r, http.MethodGet, path, token, nil)
		assertStatus(t, w, http.StatusOK)
		var items []map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
		return len(items)
	}

	assert.Equal(t, 2, listLen("/v1/flights"))
	assert.Equal(t, 2, listLen(fmt.Sprintf("/v1/flights?routes=%s", fx.route.ID)))
	assert.Equal(t, 1, listLen(fmt.Sprintf("/v1/flights?airplanes=%s", otherAirplane.ID)))
	assert.Equal(t, 1, listLen("/v1/flights?departure-date=2024-12-12"))
	assert.Equal(t, 0, listLen("/v1/flights?departure-date=2024-12-01"))

	w := doJSON(t, r, http.MethodGet, "/v1/flights?departure-date=garbage", token, nil)
	assertStatus(t, w, http.StatusBadRequest)
}

func TestFlightDetailReportsTakenPlaces(t *testing.T) {
	r, db := setupTestServer(t)
	fx := seedFlightFixtures(t, db)
	user := createUser(t, db, "test@test.test", models.RoleCustomer)
	token := authToken(t, user)

	w := doJSON(t, r, http.MethodPost, "/v1/orders", token, orderBody(
		map[string]interface{}{"row": 3, "seat": 4, "flight": fx.flight.ID},
	))
	assertStatus(t, w, http.StatusCreated)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/v1/flights/%s", fx.flight.ID), token, nil)
	assertStatus(t, w, http.StatusOK)

	var detail struct {
		TakenPlaces []struct {
			Row  int `json:"row"`
			Seat int `json:"seat"`
		} `json:"taken_places"`
		AvailableSeats int `json:"available_seats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	require.Len(t, detail.TakenPlaces, 1)
	assert.Equal(t, 3, detail.TakenPlaces[0].Row)
	assert.Equal(t, 4, detail.TakenPlaces[0].Seat)
	assert.Equal(t, fx.airplane.Rows*fx.airplane.SeatsInRow-1, detail.AvailableSeats)
}

func TestOccupiedSeatsInFlightList(t *testing.T) {
	r, db := setupTestServer(t)
	fx := seedFlightFixtures(t, db)
	user := createUser(t, db, "test@test.test", models.RoleCustomer)
	token := authToken(t, user)

	w := doJSON(t, r, http.MethodPost, "/v1/orders", token, orderBody(
		map[string]interface{}{"row": 1, "seat": 1, "flight": fx.flight.ID},
		map[string]interface{}{"row": 1, "seat": 2, "flight": fx.flight.ID},
	))
	assertStatus(t, w, http.StatusCreated)

	w = doJSON(t, r, http.MethodGet, "/v1/flights", token, nil)
	assertStatus(t, w, http.StatusOK)

	var items []struct {
		ID             string `json:"id"`
		OccupiedSeats  int    `json:"occupied_seats"`
		AvailableSeats int    `json:"available_seats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].OccupiedSeats)
	assert.Equal(t, fx.airplane.Rows*fx.airplane.SeatsInRow-2, items[0].AvailableSeats)
}
