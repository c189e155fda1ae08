package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/Morphin20th/airport-api/internal/booking"
	"github.com/Morphin20th/airport-api/internal/helpers"
	"github.com/Morphin20th/airport-api/internal/middleware"
	"github.com/Morphin20th/airport-api/internal/models"
	"github.com/Morphin20th/airport-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"gorm.io/gorm"
)

type OrderRequest struct {
	Tickets []booking.TicketRequest `json:"tickets"`
}

// CreateOrder places an order through the explicit validate-then-commit
// pipeline. Either the order and every ticket are created, or nothing is.
func CreateOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	order, err := booking.PlaceOrder(gormDB, userID, req.Tickets)
	if err != nil {
		respondWithOrderError(c, err)
		return
	}

	// the cached flight list carries occupied seat counts
	middleware.GetFlightCache(c).Invalidate(c.Request.Context())

	c.JSON(http.StatusCreated, order)
}

func respondWithOrderError(c *gin.Context, err error) {
	var seatErr *validation.SeatError
	var notFoundErr *booking.FlightNotFoundError
	var takenErr *booking.SeatTakenError

	switch {
	case errors.Is(err, booking.ErrEmptyOrder):
		helpers.RespondWithFieldError(c, http.StatusBadRequest, "tickets", err.Error())
	case errors.As(err, &seatErr):
		helpers.RespondWithFieldError(c, http.StatusBadRequest, seatErr.Field, seatErr.Error())
	case errors.As(err, &notFoundErr):
		helpers.RespondWithFieldError(c, http.StatusBadRequest, "flight", notFoundErr.Error())
	case errors.As(err, &takenErr):
		helpers.RespondWithError(c, http.StatusConflict, takenErr.Error())
	default:
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to place order.")
	}
}

func ordersQuery(gormDB *gorm.DB) *gorm.DB {
	return gormDB.Model(&models.Order{}).
		Preload("Tickets.Flight.Route.Source").
		Preload("Tickets.Flight.Route.Destination").
		Preload("Tickets.Flight.Airplane").
		Preload("Tickets.Flight.Crewmates")
}

// ListOrders returns only the requester's orders. There is deliberately no
// staff override here.
func ListOrders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var orders []models.Order
	if err := ordersQuery(gormDB).Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving orders.")
		return
	}

	c.JSON(http.StatusOK, orders)
}

func GetOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var order models.Order
	if err := ordersQuery(gormDB).Where("id = ? AND user_id = ?", id, userID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Order not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving order.")
		return
	}

	c.JSON(http.StatusOK, order)
}

// DeleteOrder removes an order together with its tickets, freeing the seats.
func DeleteOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var order models.Order
	if err := gormDB.Where("id = ? AND user_id = ?", id, userID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Order not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving order.")
		return
	}

	err := gormDB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.Ticket{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete order.")
		return
	}

	middleware.GetFlightCache(c).Invalidate(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully."})
}

func generateTicketSignature(ticketID, orderID, userID uuid.UUID, secretKey string) string {
	data := fmt.Sprintf("%s:%s:%s", ticketID.String(), orderID.String(), userID.String())
	h := hmac.New(sha256.New, []byte(secretKey))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

// GenerateTicketQR renders a signed QR code for one ticket of the
// requester's order, suitable for boarding-gate verification.
func GenerateTicketQR(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	orderID, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	ticketID, ok := parsePathID(c, "ticketId")
	if !ok {
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var order models.Order
	if err := gormDB.Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Order not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving order.")
		return
	}

	var ticket models.Ticket
	if err := gormDB.Where("id = ? AND order_id = ?", ticketID, order.ID).First(&ticket).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Ticket not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving ticket.")
		return
	}

	signature := generateTicketSignature(ticket.ID, order.ID, userID, os.Getenv("JWT_SECRET"))
	qrData := fmt.Sprintf("ticket:%s;flight:%s;order:%s;signature:%s",
		ticket.ID.String(),
		ticket.FlightID.String(),
		order.ID.String(),
		signature,
	)

	qrImage, err := qrcode.Encode(qrData, qrcode.Medium, 256)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate QR code.")
		return
	}

	c.Data(http.StatusOK, "image/png", qrImage)
}
