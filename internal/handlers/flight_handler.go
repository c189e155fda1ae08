package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Morphin20th/airport-api/internal/helpers"
	"github.com/Morphin20th/airport-api/internal/middleware"
	"github.com/Morphin20th/airport-api/internal/models"
	"github.com/Morphin20th/airport-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FlightRequest struct {
	Route         uuid.UUID   `json:"route" binding:"required"`
	Airplane      uuid.UUID   `json:"airplane" binding:"required"`
	Crewmates     []uuid.UUID `json:"crewmates"`
	DepartureTime time.Time   `json:"departure_time" binding:"required"`
	ArrivalTime   time.Time   `json:"arrival_time" binding:"required"`
}

func resolveFlightRequest(c *gin.Context, gormDB *gorm.DB, req *FlightRequest) ([]models.Crew, bool) {
	if err := validation.ValidateFlightTimes(req.DepartureTime, req.ArrivalTime); err != nil {
		helpers.RespondWithFieldError(c, http.StatusBadRequest, "departure_time", "Departure time must be earlier than arrival time.")
		return nil, false
	}

	var route models.Route
	if err := gormDB.Where("id = ?", req.Route).First(&route).Error; err != nil {
		helpers.RespondWithFieldError(c, http.StatusBadRequest, "route", "Route does not exist.")
		return nil, false
	}

	var airplane models.Airplane
	if err := gormDB.Where("id = ?", req.Airplane).First(&airplane).Error; err != nil {
		helpers.RespondWithFieldError(c, http.StatusBadRequest, "airplane", "Airplane does not exist.")
		return nil, false
	}

	var crewmates []models.Crew
	if len(req.Crewmates) > 0 {
		if err := gormDB.Where("id IN ?", req.Crewmates).Find(&crewmates).Error; err != nil || len(crewmates) != len(req.Crewmates) {
			helpers.RespondWithFieldError(c, http.StatusBadRequest, "crewmates", "One or more crew members do not exist.")
			return nil, false
		}
	}
	return crewmates, true
}

func flightScheduleTaken(gormDB *gorm.DB, req *FlightRequest, excludeID uuid.UUID) bool {
	query := gormDB.Model(&models.Flight{}).
		Where("route_id = ? AND airplane_id = ? AND departure_time = ?", req.Route, req.Airplane, req.DepartureTime)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	query.Count(&count)
	return count > 0
}

func CreateFlight(c *gin.Context) {
	var req FlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	crewmates, ok := resolveFlightRequest(c, gormDB, &req)
	if !ok {
		return
	}

	if flightScheduleTaken(gormDB, &req, uuid.Nil) {
		helpers.RespondWithError(c, http.StatusBadRequest, "A flight with this route, airplane and departure time already exists.")
		return
	}

	flight := models.Flight{
		RouteID:       req.Route,
		AirplaneID:    req.Airplane,
		Crewmates:     crewmates,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
	}

	if err := gormDB.Create(&flight).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			helpers.RespondWithError(c, http.StatusBadRequest, "A flight with this route, airplane and departure time already exists.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create flight.")
		return
	}

	middleware.GetFlightCache(c).Invalidate(c.Request.Context())

	gormDB.Preload("Route.Source").Preload("Route.Destination").Preload("Airplane.AirplaneType").Preload("Crewmates").First(&flight, flight.ID)
	c.JSON(http.StatusCreated, flight)
}

// occupiedSeatCounts fetches ticket counts for a set of flights in one
// grouped query instead of one count per flight.
func occupiedSeatCounts(gormDB *gorm.DB, flightIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(flightIDs))
	if len(flightIDs) == 0 {
		return counts, nil
	}

	type flightCount struct {
		FlightID uuid.UUID
		Total    int64
	}
	var rows []flightCount
	err := gormDB.Model(&models.Ticket{}).
		Select("flight_id, count(*) as total").
		Where("flight_id IN ?", flightIDs).
		Group("flight_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.FlightID] = row.Total
	}
	return counts, nil
}

func flightListItem(flight *models.Flight, occupied int64) gin.H {
	crewNames := make([]string, 0, len(flight.Crewmates))
	for i := range flight.Crewmates {
		crewNames = append(crewNames, flight.Crewmates[i].FullName())
	}

	return gin.H{
		"id":              flight.ID,
		"route":           fmt.Sprintf("%s - %s", flight.Route.Source.Name, flight.Route.Destination.Name),
		"airplane":        flight.Airplane.Name,
		"crewmates":       crewNames,
		"departure_time":  flight.DepartureTime,
		"arrival_time":    flight.ArrivalTime,
		"occupied_seats":  occupied,
		"available_seats": int64(flight.Airplane.Capacity()) - occupied,
	}
}

func ListFlights(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	routes := c.Query("routes")
	airplanes := c.Query("airplanes")
	departureDate := c.Query("departure-date")
	unfiltered := routes == "" && airplanes == "" && departureDate == ""

	flightCache := middleware.GetFlightCache(c)
	if unfiltered {
		if payload, err := flightCache.GetFlights(c.Request.Context()); err == nil && payload != nil {
			c.Data(http.StatusOK, "application/json", payload)
			return
		}
	}

	query := gormDB.Model(&models.Flight{}).
		Preload("Route.Source").
		Preload("Route.Destination").
		Preload("Airplane").
		Preload("Crewmates")

	if routes != "" {
		ids, err := helpers.ParseUUIDList(routes)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid routes filter.")
			return
		}
		query = query.Where("route_id IN ?", ids)
	}

	if airplanes != "" {
		ids, err := helpers.ParseUUIDList(airplanes)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid airplanes filter.")
			return
		}
		query = query.Where("airplane_id IN ?", ids)
	}

	if departureDate != "" {
		day, err := helpers.ParseDate(departureDate)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid departure-date filter, expected YYYY-MM-DD.")
			return
		}
		// match the calendar date portion of departure_time
		query = query.Where("departure_time >= ? AND departure_time < ?", day, day.AddDate(0, 0, 1))
	}

	var flights []models.Flight
	if err := query.Order("departure_time").Find(&flights).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving flights.")
		return
	}

	flightIDs := make([]uuid.UUID, 0, len(flights))
	for i := range flights {
		flightIDs = append(flightIDs, flights[i].ID)
	}
	counts, err := occupiedSeatCounts(gormDB, flightIDs)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving flights.")
		return
	}

	items := make([]gin.H, 0, len(flights))
	for i := range flights {
		items = append(items, flightListItem(&flights[i], counts[flights[i].ID]))
	}

	if unfiltered {
		if payload, err := json.Marshal(items); err == nil {
			flightCache.SetFlights(c.Request.Context(), payload)
		}
	}

	c.JSON(http.StatusOK, items)
}

func GetFlight(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var flight models.Flight
	err := gormDB.
		Preload("Route.Source").
		Preload("Route.Destination").
		Preload("Airplane.AirplaneType").
		Preload("Crewmates").
		Where("id = ?", id).First(&flight).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Flight not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving flight.")
		return
	}

	type takenPlace struct {
		Row  int `json:"row"`
		Seat int `json:"seat"`
	}
	var takenPlaces []takenPlace
	err = gormDB.Model(&models.Ticket{}).
		Select(`"row", seat`).
		Where("flight_id = ?", flight.ID).
		Order(`"row", seat`).
		Scan(&takenPlaces).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving flight.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":              flight.ID,
		"route":           flight.Route,
		"airplane":        flight.Airplane,
		"crewmates":       flight.Crewmates,
		"departure_time":  flight.DepartureTime,
		"arrival_time":    flight.ArrivalTime,
		"taken_places":    takenPlaces,
		"available_seats": flight.Airplane.Capacity() - len(takenPlaces),
	})
}

func UpdateFlight(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}

	var req FlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var flight models.Flight
	if err := gormDB.Where("id = ?", id).First(&flight).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Flight not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving flight.")
		return
	}

	crewmates, ok := resolveFlightRequest(c, gormDB, &req)
	if !ok {
		return
	}

	if flightScheduleTaken(gormDB, &req, flight.ID) {
		helpers.RespondWithError(c, http.StatusBadRequest, "A flight with this route, airplane and departure time already exists.")
		return
	}

	flight.RouteID = req.Route
	flight.AirplaneID = req.Airplane
	flight.DepartureTime = req.DepartureTime
	flight.ArrivalTime = req.ArrivalTime

	if err := gormDB.Save(&flight).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			helpers.RespondWithError(c, http.StatusBadRequest, "A flight with this route, airplane and departure time already exists.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update flight.")
		return
	}

	if err := gormDB.Model(&flight).Association("Crewmates").Replace(crewmates); err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error updating crewmates.")
		return
	}

	middleware.GetFlightCache(c).Invalidate(c.Request.Context())

	gormDB.Preload("Route.Source").Preload("Route.Destination").Preload("Airplane.AirplaneType").Preload("Crewmates").First(&flight, flight.ID)
	c.JSON(http.StatusOK, flight)
}

func DeleteFlight(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var sold int64
	gormDB.Model(&models.Ticket{}).Where("flight_id = ?", id).Count(&sold)
	if sold > 0 {
		helpers.RespondWithError(c, http.StatusBadRequest, "Flight has sold tickets and cannot be deleted.")
		return
	}

	result := gormDB.Select("Crewmates").Where("id = ?", id).Delete(&models.Flight{ID: id})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete flight.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Flight not found.")
		return
	}

	middleware.GetFlightCache(c).Invalidate(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"message": "Flight deleted successfully."})
}
