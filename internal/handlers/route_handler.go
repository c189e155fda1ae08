package handlers

import (
	"errors"
	"net/http"

	"github.com/Morphin20th/airport-api/internal/helpers"
	"github.com/Morphin20th/airport-api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RouteRequest struct {
	Source      uuid.UUID `json:"source" binding:"required"`
	Destination uuid.UUID `json:"destination" binding:"required"`
	Distance    int       `json:"distance" binding:"required"`
}

func validateRouteRequest(c *gin.Context, gormDB *gorm.DB, req *RouteRequest) bool {
	if req.Source == req.Destination {
		helpers.RespondWithFieldError(c, http.StatusBadRequest, "destination", "Source and destination airports must be different.")
		return false
	}
	if req.Distance <= 0 {
		helpers.RespondWithFieldError(c, http.StatusBadRequest, "distance", "Distance must be a positive number.")
		return false
	}

	var count int64
	gormDB.Model(&models.Airport{}).Where("id IN ?", []uuid.UUID{req.Source, req.Destination}).Count(&count)
	if count != 2 {
		helpers.RespondWithError(c, http.StatusBadRequest, "Source or destination airport does not exist.")
		return false
	}
	return true
}

func CreateRoute(c *gin.Context) {
	var req RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	if !validateRouteRequest(c, gormDB, &req) {
		return
	}

	route := models.Route{
		SourceID:      req.Source,
		DestinationID: req.Destination,
		Distance:      req.Distance,
	}

	if err := gormDB.Create(&route).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create route.")
		return
	}

	gormDB.Preload("Source").Preload("Destination").First(&route, route.ID)
	c.JSON(http.StatusCreated, route)
}

func ListRoutes(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	query := gormDB.Model(&models.Route{}).Preload("Source").Preload("Destination")

	if source := c.Query("source"); source != "" {
		ids, err := helpers.ParseUUIDList(source)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid source filter.")
			return
		}
		query = query.Where("source_id IN ?", ids)
	}

	if destination := c.Query("destination"); destination != "" {
		ids, err := helpers.ParseUUIDList(destination)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid destination filter.")
			return
		}
		query = query.Where("destination_id IN ?", ids)
	}

	var routes []models.Route
	if err := query.Find(&routes).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving routes.")
		return
	}

	c.JSON(http.StatusOK, routes)
}

func GetRoute(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var route models.Route
	if err := gormDB.Preload("Source").Preload("Destination").Where("id = ?", id).First(&route).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Route not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving route.")
		return
	}

	c.JSON(http.StatusOK, route)
}

func UpdateRoute(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}

	var req RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var route models.Route
	if err := gormDB.Where("id = ?", id).First(&route).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Route not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving route.")
		return
	}

	if !validateRouteRequest(c, gormDB, &req) {
		return
	}

	route.SourceID = req.Source
	route.DestinationID = req.Destination
	route.Distance = req.Distance

	if err := gormDB.Save(&route).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update route.")
		return
	}

	gormDB.Preload("Source").Preload("Destination").First(&route, route.ID)
	c.JSON(http.StatusOK, route)
}

func DeleteRoute(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	result := gormDB.Where("id = ?", id).Delete(&models.Route{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete route.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Route not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Route deleted successfully."})
}
