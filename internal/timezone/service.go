package timezone

import (
	"fmt"
	"sync"
	"time"

	"streetgrade/internal/types"

	"github.com/ringsaturn/tzf"
)

// Service resolves the IANA timezone of a coordinate
type Service interface {
	GetTimezone(coords types.Coords) (string, error)
	GetLocation(coords types.Coords) (*time.Location, error)
}

// service implements timezone lookup using tzf
type service struct {
	finder tzf.F
	mu     sync.RWMutex
}

var (
	instance *service
	initErr  error
	once     sync.Once
)

// NewService creates or returns the singleton timezone service
// tzf keeps its timezone polygons in memory, so one finder is shared
func NewService() (Service, error) {
	once.Do(func() {
		finder, err := tzf.NewDefaultFinder()
		if err != nil {
			initErr = fmt.Errorf("failed to initialize timezone finder: %w", err)
			return
		}
		instance = &service{
			finder: finder,
		}
	})
	if initErr != nil {
		return nil, initErr
	}
	return instance, nil
}

// GetTimezone returns the IANA timezone name for the given coordinates
// Returns timezone names like "America/Los_Angeles", "Europe/London", etc.
func (s *service) GetTimezone(coords types.Coords) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	timezone := s.finder.GetTimezoneName(coords.Longitude, coords.Latitude)
	if timezone == "" {
		return "", fmt.Errorf("could not determine timezone for coordinates lat=%f, lon=%f", coords.Latitude, coords.Longitude)
	}

	return timezone, nil
}

// GetLocation returns the loaded time.Location for the given coordinates
func (s *service) GetLocation(coords types.Coords) (*time.Location, error) {
	name, err := s.GetTimezone(coords)
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", name, err)
	}
	return loc, nil
}
