// FilePath: internal/gardenservice/gardenservice.go
package gardenservice

import (
	"context"
	"time"

	nuts "github.com/vaudience/go-nuts"

	"github.com/verdantlabs/gardenhub/internal/errors"
	"github.com/verdantlabs/gardenhub/internal/models"
	"github.com/verdantlabs/gardenhub/internal/repository"
)

// WeatherReader is the slice of the weather service the assessment path
// needs: the most recent sample for a user, or nil when none exists.
type WeatherReader interface {
	LatestForUser(ctx context.Context, userID string) (*models.WeatherSample, error)
}

// GardenService contains all repositories and service-wide dependencies
type GardenService struct {
	Plants       repository.PlantRepository
	Gardens      repository.GardenRepository
	GardenPlants repository.GardenPlantRepository
	Users        repository.UserRepository
	Weather      WeatherReader

	events *nuts.EventEmitter
	now    func() time.Time
}

// New creates a new GardenService instance
func New(
	plants repository.PlantRepository,
	gardens repository.GardenRepository,
	gardenPlants repository.GardenPlantRepository,
	users repository.UserRepository,
	weather WeatherReader,
) *GardenService {
	return &GardenService{
		Plants:       plants,
		Gardens:      gardens,
		GardenPlants: gardenPlants,
		Users:        users,
		Weather:      weather,
		events:       nuts.NewEventEmitter(),
		now:          time.Now,
	}
}

// Validate checks if all required dependencies are initialized
func (s *GardenService) Validate() error {
	if s.Plants == nil {
		return ErrMissingDependency("plants")
	}
	if s.Gardens == nil {
		return ErrMissingDependency("gardens")
	}
	if s.GardenPlants == nil {
		return ErrMissingDependency("gardenPlants")
	}
	if s.Users == nil {
		return ErrMissingDependency("users")
	}
	if s.Weather == nil {
		return ErrMissingDependency("weather")
	}
	return nil
}

// OnEvent registers a callback for garden lifecycle events
// ("gardenplant.placed", "gardenplant.removed", "gardenplant.watered",
// "gardenplant.status_changed").
func (s *GardenService) OnEvent(event string, handler func(id string)) {
	s.events.On(event, "gardenservice_handler", func(arg interface{}) {
		if id, ok := arg.(string); ok {
			handler(id)
		}
	})
}

func ErrMissingDependency(name string) error {
	return errors.NewInternalError("missing dependency: "+name, nil)
}
