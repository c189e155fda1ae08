package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Morphin20th/airport-api/internal/helpers"
	"github.com/Morphin20th/airport-api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AirplaneRequest struct {
	Name         string    `json:"name" binding:"required"`
	Rows         int       `json:"rows" binding:"required"`
	SeatsInRow   int       `json:"seats_in_row" binding:"required"`
	AirplaneType uuid.UUID `json:"airplane_type" binding:"required"`
}

func validateAirplaneRequest(c *gin.Context, gormDB *gorm.DB, req *AirplaneRequest) bool {
	if req.Rows < 1 {
		helpers.RespondWithFieldError(c, http.StatusBadRequest, "rows", "Rows must be a positive integer.")
		return false
	}
	if req.SeatsInRow < 1 {
		helpers.RespondWithFieldError(c, http.StatusBadRequest, "seats_in_row", "Seats in row must be a positive integer.")
		return false
	}

	var airplaneType models.AirplaneType
	if err := gormDB.Where("id = ?", req.AirplaneType).First(&airplaneType).Error; err != nil {
		helpers.RespondWithFieldError(c, http.StatusBadRequest, "airplane_type", "Airplane type does not exist.")
		return false
	}
	return true
}

func CreateAirplane(c *gin.Context) {
	var req AirplaneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	if !validateAirplaneRequest(c, gormDB, &req) {
		return
	}

	airplane := models.Airplane{
		Name:           req.Name,
		Rows:           req.Rows,
		SeatsInRow:     req.SeatsInRow,
		AirplaneTypeID: req.AirplaneType,
	}

	if err := gormDB.Create(&airplane).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create airplane.")
		return
	}

	gormDB.Preload("AirplaneType").First(&airplane, airplane.ID)
	c.JSON(http.StatusCreated, airplane)
}

func ListAirplanes(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	query := gormDB.Model(&models.Airplane{}).Preload("AirplaneType")

	if name := c.Query("name"); name != "" {
		query = query.Where("name LIKE ?", fmt.Sprintf("%%%s%%", name))
	}

	if airplaneType := c.Query("airplane-type"); airplaneType != "" {
		ids, err := helpers.ParseUUIDList(airplaneType)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid airplane-type filter.")
			return
		}
		query = query.Where("airplane_type_id IN ?", ids)
	}

	var airplanes []models.Airplane
	if err := query.Find(&airplanes).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving airplanes.")
		return
	}

	c.JSON(http.StatusOK, airplanes)
}

func GetAirplane(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var airplane models.Airplane
	if err := gormDB.Preload("AirplaneType").Where("id = ?", id).First(&airplane).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Airplane not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving airplane.")
		return
	}

	c.JSON(http.StatusOK, airplane)
}

// UpdateAirplane allows geometry changes even when tickets referencing the
// airplane exist. Shrinking rows or seats_in_row can leave sold tickets out
// of range; this mirrors the upstream behavior and is a known gap.
func UpdateAirplane(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}

	var req AirplaneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var airplane models.Airplane
	if err := gormDB.Where("id = ?", id).First(&airplane).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Airplane not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving airplane.")
		return
	}

	if !validateAirplaneRequest(c, gormDB, &req) {
		return
	}

	airplane.Name = req.Name
	airplane.Rows = req.Rows
	airplane.SeatsInRow = req.SeatsInRow
	airplane.AirplaneTypeID = req.AirplaneType

	if err := gormDB.Save(&airplane).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update airplane.")
		return
	}

	gormDB.Preload("AirplaneType").First(&airplane, airplane.ID)
	c.JSON(http.StatusOK, airplane)
}

func DeleteAirplane(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var airplane models.Airplane
	if err := gormDB.Where("id = ?", id).First(&airplane).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Airplane not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving airplane.")
		return
	}

	if err := gormDB.Delete(&airplane).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete airplane.")
		return
	}

	if airplane.ImagePath != "" {
		if err := helpers.DeleteFile(airplane.ImagePath); err != nil {
			fmt.Printf("Error deleting airplane image: %v\n", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Airplane deleted successfully."})
}

func UploadAirplaneImage(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var airplane models.Airplane
	if err := gormDB.Where("id = ?", id).First(&airplane).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Airplane not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving airplane.")
		return
	}

	imageFile, err := c.FormFile("image")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Image file is required.")
		return
	}

	imagePath, err := helpers.UploadFile(c, imageFile, "airplane_images")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	if airplane.ImagePath != "" {
		if err := helpers.DeleteFile(airplane.ImagePath); err != nil {
			fmt.Printf("Error deleting old airplane image: %v\n", err)
		}
	}

	airplane.ImagePath = imagePath
	if err := gormDB.Save(&airplane).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update airplane image.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    airplane.ID,
		"image": airplane.ImagePath,
	})
}
