package middleware

import (
	"github.com/Morphin20th/airport-api/internal/cache"
	"github.com/gin-gonic/gin"
)

func CacheMiddleware(flightCache *cache.FlightCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("flight_cache", flightCache)
		c.Next()
	}
}

func GetFlightCache(c *gin.Context) *cache.FlightCache {
	value, exists := c.Get("flight_cache")
	if !exists {
		return nil
	}
	flightCache, ok := value.(*cache.FlightCache)
	if !ok {
		return nil
	}
	return flightCache
}
