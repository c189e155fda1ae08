package handlers

import (
	"errors"
	"net/http"

	"github.com/Morphin20th/airport-api/internal/helpers"
	"github.com/Morphin20th/airport-api/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CrewRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

func crewResponse(crew *models.Crew) gin.H {
	return gin.H{
		"id":         crew.ID,
		"first_name": crew.FirstName,
		"last_name":  crew.LastName,
		"full_name":  crew.FullName(),
	}
}

func CreateCrew(c *gin.Context) {
	var req CrewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	crew := models.Crew{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	if err := gormDB.Create(&crew).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create crew member.")
		return
	}

	c.JSON(http.StatusCreated, crewResponse(&crew))
}

func ListCrew(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var crew []models.Crew
	if err := gormDB.Order("last_name, first_name").Find(&crew).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving crew.")
		return
	}

	response := make([]gin.H, 0, len(crew))
	for i := range crew {
		response = append(response, crewResponse(&crew[i]))
	}

	c.JSON(http.StatusOK, response)
}

func GetCrew(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var crew models.Crew
	if err := gormDB.Where("id = ?", id).First(&crew).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Crew member not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving crew member.")
		return
	}

	c.JSON(http.StatusOK, crewResponse(&crew))
}

func UpdateCrew(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}

	var req CrewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var crew models.Crew
	if err := gormDB.Where("id = ?", id).First(&crew).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Crew member not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving crew member.")
		return
	}

	crew.FirstName = req.FirstName
	crew.LastName = req.LastName

	if err := gormDB.Save(&crew).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update crew member.")
		return
	}

	c.JSON(http.StatusOK, crewResponse(&crew))
}

func DeleteCrew(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	result := gormDB.Where("id = ?", id).Delete(&models.Crew{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete crew member.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Crew member not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Crew member deleted successfully."})
}
