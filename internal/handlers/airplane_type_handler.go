package handlers

import (
	"errors"
	"net/http"

	"github.com/Morphin20th/airport-api/internal/helpers"
	"github.com/Morphin20th/airport-api/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AirplaneTypeRequest struct {
	Name string `json:"name" binding:"required"`
}

func CreateAirplaneType(c *gin.Context) {
	var req AirplaneTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	airplaneType := models.AirplaneType{Name: req.Name}

	if err := gormDB.Create(&airplaneType).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			helpers.RespondWithFieldError(c, http.StatusBadRequest, "name", "An airplane type with this name already exists.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create airplane type.")
		return
	}

	c.JSON(http.StatusCreated, airplaneType)
}

func ListAirplaneTypes(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var airplaneTypes []models.AirplaneType
	if err := gormDB.Order("name").Find(&airplaneTypes).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving airplane types.")
		return
	}

	c.JSON(http.StatusOK, airplaneTypes)
}

func GetAirplaneType(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var airplaneType models.AirplaneType
	if err := gormDB.Where("id = ?", id).First(&airplaneType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Airplane type not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving airplane type.")
		return
	}

	c.JSON(http.StatusOK, airplaneType)
}

func UpdateAirplaneType(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}

	var req AirplaneTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var airplaneType models.AirplaneType
	if err := gormDB.Where("id = ?", id).First(&airplaneType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Airplane type not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving airplane type.")
		return
	}

	airplaneType.Name = req.Name

	if err := gormDB.Save(&airplaneType).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			helpers.RespondWithFieldError(c, http.StatusBadRequest, "name", "An airplane type with this name already exists.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update airplane type.")
		return
	}

	c.JSON(http.StatusOK, airplaneType)
}

func DeleteAirplaneType(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	result := gormDB.Where("id = ?", id).Delete(&models.AirplaneType{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete airplane type.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Airplane type not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Airplane type deleted successfully."})
}
