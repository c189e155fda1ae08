package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Morphin20th/airport-api/internal/models"
	"github.com/Morphin20th/airport-api/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret"

func setupTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	t.Setenv("JWT_SECRET", testSecret)
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

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

	r := gin.New()
	server.SetupRoutes(r, db, nil)
	return r, db
}

func createUser(t *testing.T, db *gorm.DB, email, roleName string) models.User {
	t.Helper()

	var role models.Role
	err := db.Where("name = ?", roleName).First(&role).Error
	if err != nil {
		role = models.Role{Name: roleName}
		require.NoError(t, db.Create(&role).Error)
	}

	user := models.User{Email: email, Password: "hashed", RoleID: role.ID}
	require.NoError(t, db.Create(&user).Error)
	user.Role = role
	return user
}

func authToken(t *testing.T, user models.User) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID.String(),
		"role":    user.Role.Name,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type testFixtures struct {
	airplane models.Airplane
	route    models.Route
	flight   models.Flight
}

func seedFlightFixtures(t *testing.T, db *gorm.DB) testFixtures {
	t.Helper()

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

	return testFixtures{airplane: airplane, route: route, flight: flight}
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}

func assertStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, w.Code, "unexpected status, body: %s", w.Body.String())
}
