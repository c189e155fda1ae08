package handlers

import (
	"errors"
	"net/http"

	"github.com/Morphin20th/airport-api/internal/helpers"
	"github.com/Morphin20th/airport-api/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AirportRequest struct {
	Name           string `json:"name" binding:"required"`
	ClosestBigCity string `json:"closest_big_city" binding:"required"`
}

func CreateAirport(c *gin.Context) {
	var req AirportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	airport := models.Airport{
		Name:           req.Name,
		ClosestBigCity: req.ClosestBigCity,
	}

	if err := gormDB.Create(&airport).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			helpers.RespondWithFieldError(c, http.StatusBadRequest, "name", "An airport with this name already exists.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create airport.")
		return
	}

	c.JSON(http.StatusCreated, airport)
}

func ListAirports(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var airports []models.Airport
	if err := gormDB.Order("name").Find(&airports).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving airports.")
		return
	}

	c.JSON(http.StatusOK, airports)
}

func GetAirport(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var airport models.Airport
	if err := gormDB.Where("id = ?", id).First(&airport).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Airport not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving airport.")
		return
	}

	c.JSON(http.StatusOK, airport)
}

func UpdateAirport(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}

	var req AirportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var airport models.Airport
	if err := gormDB.Where("id = ?", id).First(&airport).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Airport not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving airport.")
		return
	}

	airport.Name = req.Name
	airport.ClosestBigCity = req.ClosestBigCity

	if err := gormDB.Save(&airport).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			helpers.RespondWithFieldError(c, http.StatusBadRequest, "name", "An airport with this name already exists.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update airport.")
		return
	}

	c.JSON(http.StatusOK, airport)
}

func DeleteAirport(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	result := gormDB.Where("id = ?", id).Delete(&models.Airport{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete airport.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Airport not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Airport deleted successfully."})
}
