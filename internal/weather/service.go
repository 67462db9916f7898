// FilePath: internal/weather/service.go
package weather

import (
	"context"
	"time"

	nuts "github.com/vaudience/go-nuts"

	"github.com/verdantlabs/gardenhub/internal/errors"
	"github.com/verdantlabs/gardenhub/internal/models"
	"github.com/verdantlabs/gardenhub/internal/repository"
)

// Service fetches current conditions for a user's garden location and
// persists them as weather samples.
type Service struct {
	client  Client
	samples repository.WeatherRepository
	gardens repository.GardenRepository
	cache   *Cache
}

func NewService(client Client, samples repository.WeatherRepository, gardens repository.GardenRepository, cache *Cache) *Service {
	return &Service{
		client:  client,
		samples: samples,
		gardens: gardens,
		cache:   cache,
	}
}

// FetchAndStoreForUser pulls a current-weather reading for the user's
// garden location, stores it and refreshes the cache.
func (s *Service) FetchAndStoreForUser(ctx context.Context, userID string) (*models.WeatherSample, error) {
	garden, err := s.gardens.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if garden.Latitude == 0 && garden.Longitude == 0 {
		return nil, errors.NewValidationError("garden has no location configured", nil)
	}

	conditions, err := s.client.GetCurrentWeather(ctx, garden.Latitude, garden.Longitude)
	if err != nil {
		return nil, errors.NewUnavailableError("failed to fetch weather data", err)
	}

	sample := &models.WeatherSample{
		ID:          nuts.NID("wx", 12),
		UserID:      userID,
		Date:        time.Now().UTC(),
		Conditions:  conditions.Conditions,
		Temperature: conditions.Temperature,
		Humidity:    conditions.Humidity,
		Rainfall:    conditions.Rainfall,
	}

	if err := s.samples.Insert(ctx, sample); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetLatest(ctx, userID, sample); err != nil {
			// Cache refresh failure is not fatal; the DB fallback serves.
			nuts.L.Warnf("[WeatherService] Failed to cache sample for user %s: %v", userID, err)
		}
	}

	nuts.L.Infof("[WeatherService] Stored weather for user %s (temp %.1f°C, humidity %.1f%%, rain %.1fmm)",
		userID, sample.Temperature, sample.Humidity, sample.Rainfall)
	return sample, nil
}

// sampleRetention bounds how much weather history is kept; only the
// most recent sample is ever consumed.
const sampleRetention = 30 * 24 * time.Hour

// PruneSamples deletes samples older than the retention window and
// returns how many were removed.
func (s *Service) PruneSamples(ctx context.Context) (int64, error) {
	return s.samples.DeleteOlderThan(ctx, time.Now().UTC().Add(-sampleRetention))
}

// InvalidateForUser drops the cached sample for a user. Called when the
// garden is relocated, since the cached reading belongs to the old
// coordinates.
func (s *Service) InvalidateForUser(ctx context.Context, userID string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Invalidate(ctx, userID)
}

// LatestForUser returns the most recent stored sample for the user, or
// nil when none exists yet. The cache is consulted first.
func (s *Service) LatestForUser(ctx context.Context, userID string) (*models.WeatherSample, error) {
	if s.cache != nil {
		sample, err := s.cache.GetLatest(ctx, userID)
		if err != nil {
			nuts.L.Warnf("[WeatherService] Weather cache read failed for user %s: %v", userID, err)
		} else if sample != nil {
			return sample, nil
		}
	}

	sample, err := s.samples.LatestByUser(ctx, userID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetLatest(ctx, userID, sample); err != nil {
			nuts.L.Warnf("[WeatherService] Failed to backfill weather cache for user %s: %v", userID, err)
		}
	}
	return sample, nil
}
