package config

import (
	"fmt"
	"os"
	"time"

	"github.com/Morphin20th/airport-api/internal/cache"
	"github.com/Morphin20th/airport-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

func LoadConfig() (*Config, error) {
	return &Config{
		DBHost:        os.Getenv("DB_HOST"),
		DBPort:        os.Getenv("DB_PORT"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}, nil
}

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	// TranslateError turns driver unique-violation errors into
	// gorm.ErrDuplicatedKey, which the order transaction relies on to report
	// seat conflicts instead of a generic storage failure.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	seedRoles(db)

	return db, nil
}

// Migrate creates the schema, including the composite unique indexes on
// tickets (flight, row, seat) and flights (route, airplane, departure time).
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
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
}

func seedRoles(db *gorm.DB) {
	roles := []models.Role{
		{Name: models.RoleStaff},
		{Name: models.RoleCustomer},
	}

	for _, role := range roles {
		var existingRole models.Role
		result := db.Where("name = ?", role.Name).First(&existingRole)
		if result.Error != nil {
			db.Create(&role)
		}
	}
}

// InitFlightCache builds the redis-backed flight list cache. It returns nil
// when REDIS_ADDR is unset; the handlers treat a nil cache as a miss.
func InitFlightCache(cfg *Config) *cache.FlightCache {
	if cfg.RedisAddr == "" {
		return nil
	}
	return cache.NewFlightCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, 5*time.Minute)
}
