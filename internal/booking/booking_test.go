package booking

import (
	"testing"
	"time"

	"github.com/Morphin20th/airport-api/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// a fresh connection would see a fresh in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Airport{},
		&models.AirplaneType{},
		&models.Airplane{},
		&models.Route{},
		&models.Crew{},
		&models.Flight{},
		&models.Order{},
		&models.Ticket{},
	)
	require.NoError(t, err)

	return db
}

type fixtures struct {
	user     models.User
	airplane models.Airplane
	flight   models.Flight
}

func setupFixtures(t *testing.T, db *gorm.DB) fixtures {
	t.Helper()

	role := models.Role{Name: models.RoleCustomer}
	require.NoError(t, db.Create(&role).Error)

	user := models.User{Email: "test@test.test", Password: "hashed", RoleID: role.ID}
	require.NoError(t, db.Create(&user).Error)

	source := models.Airport{Name: "Test Source", ClosestBigCity: "Test City"}
	destination := models.Airport{Name: "Test Destination", ClosestBigCity: "Test City"}
	require.NoError(t, db.Create(&source).Error)
	require.NoError(t, db.Create(&destination).Error)

	route := models.Route{SourceID: source.ID, DestinationID: destination.ID, Distance: 500}
	require.NoError(t, db.Create(&route).Error)

	airplaneType := models.AirplaneType{Name: "Test Type"}
	require.NoError(t, db.Create(&airplaneType).Error)

	airplane := models.Airplane{Name: "Test Airplane", Rows: 9, SeatsInRow: 70, AirplaneTypeID: airplaneType.ID}
	require.NoError(t, db.Create(&airplane).Error)

	flight := models.Flight{
		RouteID:       route.ID,
		AirplaneID:    airplane.ID,
		DepartureTime: time.Date(2024, 12, 12, 12, 0, 0, 0, time.UTC),
		ArrivalTime:   time.Date(2024, 12, 12, 13, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&flight).Error)

	return fixtures{user: user, airplane: airplane, flight: flight}
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}

func TestPlaceOrderCreatesOrderAndTickets(t *testing.T) {
	db := setupTestDB(t)
	fx := setupFixtures(t, db)

	ordersBefore := countRows(t, db, &models.Order{})
	ticketsBefore := countRows(t, db, &models.Ticket{})

	order, err := PlaceOrder(db, fx.user.ID, []TicketRequest{
		{Row: 2, Seat: 2, FlightID: fx.flight.ID},
	})
	require.NoError(t, err)
	require.Len(t, order.Tickets, 1)
	assert.Equal(t, fx.user.ID, order.UserID)
	assert.Equal(t, 2, order.Tickets[0].Row)
	assert.Equal(t, 2, order.Tickets[0].Seat)
	assert.Equal(t, fx.flight.ID, order.Tickets[0].FlightID)
	assert.False(t, order.CreatedAt.IsZero())

	assert.Equal(t, ordersBefore+1, countRows(t, db, &models.Order{}))
	assert.Equal(t, ticketsBefore+1, countRows(t, db, &models.Ticket{}))
}

func TestPlaceOrderKeepsTicketOrder(t *testing.T) {
	db := setupTestDB(t)
	fx := setupFixtures(t, db)

	requests := []TicketRequest{
		{Row: 3, Seat: 5, FlightID: fx.flight.ID},
		{Row: 1, Seat: 1, FlightID: fx.flight.ID},
		{Row: 9, Seat: 70, FlightID: fx.flight.ID},
	}
	order, err := PlaceOrder(db, fx.user.ID, requests)
	require.NoError(t, err)
	require.Len(t, order.Tickets, 3)
	for i, req := range requests {
		assert.Equal(t, req.Row, order.Tickets[i].Row)
		assert.Equal(t, req.Seat, order.Tickets[i].Seat)
	}
}

func TestPlaceOrderEmptyFailsBeforeStorage(t *testing.T) {
	db := setupTestDB(t)
	fx := setupFixtures(t, db)

	_, err := PlaceOrder(db, fx.user.ID, nil)
	assert.ErrorIs(t, err, ErrEmptyOrder)

	_, err = PlaceOrder(db, fx.user.ID, []TicketRequest{})
	assert.ErrorIs(t, err, ErrEmptyOrder)

	assert.Equal(t, int64(0), countRows(t, db, &models.Order{}))
	assert.Equal(t, int64(0), countRows(t, db, &models.Ticket{}))
}

func TestPlaceOrderUnknownFlight(t *testing.T) {
	db := setupTestDB(t)
	fx := setupFixtures(t, db)

	missing := uuid.New()
	_, err := PlaceOrder(db, fx.user.ID, []TicketRequest{
		{Row: 1, Seat: 1, FlightID: missing},
	})

	var notFound *FlightNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, missing, notFound.FlightID)
	assert.Equal(t, int64(0), countRows(t, db, &models.Order{}))
}

func TestPlaceOrderInvalidSeatRejectsWholeBatch(t *testing.T) {
	db := setupTestDB(t)
	fx := setupFixtures(t, db)

	// one valid ticket followed by one out of range
	_, err := PlaceOrder(db, fx.user.ID, []TicketRequest{
		{Row: 1, Seat: 1, FlightID: fx.flight.ID},
		{Row: 10, Seat: 1, FlightID: fx.flight.ID},
	})
	require.Error(t, err)

	assert.Equal(t, int64(0), countRows(t, db, &models.Order{}))
	assert.Equal(t, int64(0), countRows(t, db, &models.Ticket{}))
}

func TestPlaceOrderSeatAlreadyTaken(t *testing.T) {
	db := setupTestDB(t)
	fx := setupFixtures(t, db)

	_, err := PlaceOrder(db, fx.user.ID, []TicketRequest{
		{Row: 1, Seat: 1, FlightID: fx.flight.ID},
	})
	require.NoError(t, err)

	ordersBefore := countRows(t, db, &models.Order{})
	ticketsBefore := countRows(t, db, &models.Ticket{})

	_, err = PlaceOrder(db, fx.user.ID, []TicketRequest{
		{Row: 1, Seat: 1, FlightID: fx.flight.ID},
	})

	var taken *SeatTakenError
	require.ErrorAs(t, err, &taken)
	assert.Equal(t, 1, taken.Row)
	assert.Equal(t, 1, taken.Seat)
	assert.Equal(t, fx.flight.ID, taken.FlightID)

	assert.Equal(t, ordersBefore, countRows(t, db, &models.Order{}))
	assert.Equal(t, ticketsBefore, countRows(t, db, &models.Ticket{}))
}

func TestPlaceOrderDuplicateSeatWithinBatch(t *testing.T) {
	db := setupTestDB(t)
	fx := setupFixtures(t, db)

	_, err := PlaceOrder(db, fx.user.ID, []TicketRequest{
		{Row: 2, Seat: 3, FlightID: fx.flight.ID},
		{Row: 2, Seat: 3, FlightID: fx.flight.ID},
	})

	var taken *SeatTakenError
	require.ErrorAs(t, err, &taken)
	assert.Equal(t, int64(0), countRows(t, db, &models.Ticket{}))
}

func TestCommitOrderTranslatesConstraintViolation(t *testing.T) {
	db := setupTestDB(t)
	fx := setupFixtures(t, db)

	validated, err := ValidateOrder(db, fx.user.ID, []TicketRequest{
		{Row: 4, Seat: 4, FlightID: fx.flight.ID},
	})
	require.NoError(t, err)

	// another order grabs the seat between validation and commit; the
	// unique index must win and surface as a seat conflict
	_, err = PlaceOrder(db, fx.user.ID, []TicketRequest{
		{Row: 4, Seat: 4, FlightID: fx.flight.ID},
	})
	require.NoError(t, err)

	ordersBefore := countRows(t, db, &models.Order{})
	ticketsBefore := countRows(t, db, &models.Ticket{})

	_, err = CommitOrder(db, validated)
	var taken *SeatTakenError
	require.ErrorAs(t, err, &taken)

	assert.Equal(t, ordersBefore, countRows(t, db, &models.Order{}))
	assert.Equal(t, ticketsBefore, countRows(t, db, &models.Ticket{}))
}
