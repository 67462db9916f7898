// FilePath: internal/gardenservice/gardenservice.watering.go
package gardenservice

import (
	"context"

	nuts "github.com/vaudience/go-nuts"

	"github.com/verdantlabs/gardenhub/internal/errors"
	"github.com/verdantlabs/gardenhub/internal/models"
	"github.com/verdantlabs/gardenhub/internal/status"
)

// RecordWatering registers a manual watering event for one of the
// user's garden plants. An optional soil moisture reading taken after
// watering overwrites the stored value. The plant's status is
// re-derived immediately so the user does not keep seeing
// "needs watering" right after they watered.
func (s *GardenService) RecordWatering(ctx context.Context, userID, gardenPlantID string, soilMoisture *float64) (*models.GardenPlant, error) {
	garden, err := s.Gardens.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	gp, err := s.GardenPlants.Get(ctx, gardenPlantID)
	if err != nil {
		return nil, err
	}
	if gp.GardenID != garden.ID {
		return nil, errors.NewAuthorizationError("garden plant does not belong to this user", nil)
	}

	plant, err := s.Plants.Get(ctx, gp.PlantID)
	if err != nil {
		return nil, err
	}

	if soilMoisture != nil && (*soilMoisture < 0 || *soilMoisture > 100) {
		return nil, errors.NewValidationError("soil moisture reading must be between 0 and 100", nil)
	}

	now := s.now().UTC()
	updated := status.RecordWatering(plant, *gp, soilMoisture, now)
	updated.UpdatedAt = now

	if err := s.GardenPlants.Update(ctx, &updated); err != nil {
		return nil, err
	}

	s.events.Emit("gardenplant.watered", updated.ID)
	nuts.L.Infof("[WateringService] Recorded watering for plant %s (%s), status now %s",
		plant.Name, updated.ID, updated.Status)
	return &updated, nil
}
