// FilePath: internal/gardenservice/gardenservice.plant.go
package gardenservice

import (
	"context"

	nuts "github.com/vaudience/go-nuts"

	"github.com/verdantlabs/gardenhub/internal/errors"
	"github.com/verdantlabs/gardenhub/internal/models"
)

// CreatePlant adds a new species to the catalog with validation and
// initialization.
func (s *GardenService) CreatePlant(ctx context.Context, plant *models.Plant) error {
	if plant.Name == "" {
		return errors.NewValidationError("plant name is required", nil)
	}
	if plant.MinTemperature > plant.MaxTemperature {
		return errors.NewValidationError("min temperature must not exceed max temperature", nil)
	}
	if plant.MinHumidity > plant.MaxHumidity {
		return errors.NewValidationError("min humidity must not exceed max humidity", nil)
	}
	if plant.MinSoilMoisture > plant.MaxSoilMoisture {
		return errors.NewValidationError("min soil moisture must not exceed max soil moisture", nil)
	}
	if plant.WateringThresholdDays < 0 {
		return errors.NewValidationError("watering threshold days must not be negative", nil)
	}
	if plant.WateringThresholdRainfall < 0 {
		return errors.NewValidationError("watering threshold rainfall must not be negative", nil)
	}

	if plant.ID == "" {
		plant.ID = nuts.NID("plt", 12)
	}

	now := s.now()
	plant.CreatedAt = now
	plant.UpdatedAt = now

	nuts.L.Infof("[PlantService] Creating new catalog plant: %s (%s)", plant.Name, plant.ID)
	return s.Plants.Create(ctx, plant)
}

// GetPlant retrieves a catalog plant by ID
func (s *GardenService) GetPlant(ctx context.Context, id string) (*models.Plant, error) {
	return s.Plants.Get(ctx, id)
}

// GetPlantByName retrieves a catalog plant by its unique name
func (s *GardenService) GetPlantByName(ctx context.Context, name string) (*models.Plant, error) {
	return s.Plants.GetByName(ctx, name)
}

// ListPlants retrieves a paginated, filtered catalog listing
func (s *GardenService) ListPlants(ctx context.Context, filters models.PlantFilters, offset, limit int) ([]*models.Plant, error) {
	if limit <= 0 || limit > 100 {
		limit = 50 // Default limit
	}
	if offset < 0 {
		offset = 0
	}
	return s.Plants.List(ctx, filters, offset, limit)
}

// UpdatePlant updates an existing catalog plant
func (s *GardenService) UpdatePlant(ctx context.Context, plant *models.Plant) error {
	existing, err := s.Plants.Get(ctx, plant.ID)
	if err != nil {
		return err
	}

	plant.CreatedAt = existing.CreatedAt
	plant.UpdatedAt = s.now()

	nuts.L.Infof("[PlantService] Updating catalog plant %s", plant.ID)
	return s.Plants.Update(ctx, plant)
}

// DeletePlant removes a species from the catalog
func (s *GardenService) DeletePlant(ctx context.Context, id string) error {
	nuts.L.Infof("[PlantService] Deleting catalog plant: %s", id)
	return s.Plants.Delete(ctx, id)
}
