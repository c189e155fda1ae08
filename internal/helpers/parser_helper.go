package helpers

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ParseUUIDList parses a comma-separated id list query parameter
// (e.g. ?airplanes=id1,id2) into uuids.
func ParseUUIDList(s string) ([]uuid.UUID, error) {
	parts := strings.Split(s, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, part := range parts {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ParseDate parses a YYYY-MM-DD query parameter into the UTC day it names.
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
