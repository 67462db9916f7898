// FilePath: internal/gardenservice/gardenservice.status.go
package gardenservice

import (
	"context"

	nuts "github.com/vaudience/go-nuts"

	"github.com/verdantlabs/gardenhub/internal/errors"
	"github.com/verdantlabs/gardenhub/internal/models"
	"github.com/verdantlabs/gardenhub/internal/status"
)

// AssessPlant runs the status evaluation for one garden plant using the
// owning user's most recent weather sample and persists the outcome.
// The returned transition carries the previous and new status for
// downstream notification.
func (s *GardenService) AssessPlant(ctx context.Context, ap *models.AssessablePlant) (*models.StatusTransition, error) {
	now := s.now().UTC()

	weatherSample, err := s.Weather.LatestForUser(ctx, ap.UserID)
	if err != nil {
		nuts.L.Warnf("[StatusService] Could not load weather for user %s, assessing without it: %v", ap.UserID, err)
		weatherSample = nil
	}
	if weatherSample == nil {
		nuts.L.Warnf("[StatusService] No weather data for user %s; assessment for plant %s is degraded",
			ap.UserID, ap.GardenPlant.ID)
	}

	updated := status.Evaluate(ap.Plant, *ap.GardenPlant, weatherSample, now)
	updated.UpdatedAt = now

	// A failed save leaves state inconsistent and must surface.
	if err := s.GardenPlants.Update(ctx, &updated); err != nil {
		return nil, err
	}

	if updated.Status != updated.PreviousStatus {
		s.events.Emit("gardenplant.status_changed", updated.ID)
	}

	nuts.L.Infof("[StatusService] Plant %s (%s): %s -> %s%s",
		ap.Plant.Name, updated.ID, updated.PreviousStatus, updated.Status, reasonSuffix(updated.StatusChangeReason))

	return &models.StatusTransition{
		UserID:     ap.UserID,
		PlantName:  ap.Plant.Name,
		PrevStatus: updated.PreviousStatus,
		NewStatus:  updated.Status,
		Reason:     updated.StatusChangeReason,
		CheckedAt:  now,
	}, nil
}

// AssessPlantByID loads the plant, its species and owning garden before
// assessing. Used by the manual refresh endpoint; the plant must belong
// to the given user.
func (s *GardenService) AssessPlantByID(ctx context.Context, userID, gardenPlantID string) (*models.StatusTransition, error) {
	gp, err := s.GardenPlants.Get(ctx, gardenPlantID)
	if err != nil {
		return nil, err
	}

	garden, err := s.Gardens.Get(ctx, gp.GardenID)
	if err != nil {
		return nil, err
	}
	if garden.UserID != userID {
		return nil, errors.NewAuthorizationError("garden plant does not belong to this user", nil)
	}

	plant, err := s.Plants.Get(ctx, gp.PlantID)
	if err != nil {
		return nil, err
	}

	return s.AssessPlant(ctx, &models.AssessablePlant{
		GardenPlant: gp,
		Plant:       plant,
		UserID:      garden.UserID,
	})
}

// ListAssessablePlants returns every placed plant with its species and
// owning user, for the daily pass.
func (s *GardenService) ListAssessablePlants(ctx context.Context) ([]*models.AssessablePlant, error) {
	return s.GardenPlants.ListAssessable(ctx)
}

func reasonSuffix(reason string) string {
	if reason == "" {
		return ""
	}
	return " (" + reason + ")"
}
