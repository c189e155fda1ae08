package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const flightsKey = "cache:flights"

// FlightCache keeps the rendered unfiltered flight list in redis so the most
// common read path skips the database. A nil *FlightCache is valid and
// behaves as a permanent miss, which keeps the cache optional.
type FlightCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewFlightCache(addr, password string, db int, ttl time.Duration) *FlightCache {
	return &FlightCache{
		client: redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db}),
		ttl:    ttl,
	}
}

// GetFlights returns the cached flight list payload, or nil on a miss.
func (fc *FlightCache) GetFlights(ctx context.Context) ([]byte, error) {
	if fc == nil || fc.client == nil {
		return nil, nil
	}
	data, err := fc.client.Get(ctx, flightsKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func (fc *FlightCache) SetFlights(ctx context.Context, payload []byte) error {
	if fc == nil || fc.client == nil {
		return nil
	}
	return fc.client.Set(ctx, flightsKey, payload, fc.ttl).Err()
}

// Invalidate drops the cached list; called whenever a flight is created,
// updated or deleted.
func (fc *FlightCache) Invalidate(ctx context.Context) error {
	if fc == nil || fc.client == nil {
		return nil
	}
	return fc.client.Del(ctx, flightsKey).Err()
}
