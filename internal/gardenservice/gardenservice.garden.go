// FilePath: internal/gardenservice/gardenservice.garden.go
package gardenservice

import (
	"context"

	nuts "github.com/vaudience/go-nuts"

	"github.com/verdantlabs/gardenhub/internal/errors"
	"github.com/verdantlabs/gardenhub/internal/models"
	"github.com/verdantlabs/gardenhub/internal/status"
)

// CreateGarden creates the user's garden grid. Each user has at most
// one garden.
func (s *GardenService) CreateGarden(ctx context.Context, userID string, xSize, ySize int, latitude, longitude float64) (*models.Garden, error) {
	if xSize <= 0 || ySize <= 0 {
		return nil, errors.NewValidationError("garden dimensions must be positive", nil)
	}

	if existing, err := s.Gardens.GetByUserID(ctx, userID); err == nil && existing != nil {
		return nil, errors.NewConflictError("user already has a garden", nil)
	} else if err != nil && !errors.IsNotFound(err) {
		return nil, err
	}

	now := s.now()
	garden := &models.Garden{
		ID:        nuts.NID("gdn", 12),
		UserID:    userID,
		XSize:     xSize,
		YSize:     ySize,
		Latitude:  latitude,
		Longitude: longitude,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Gardens.Create(ctx, garden); err != nil {
		return nil, err
	}

	nuts.L.Infof("[GardenService] Created garden %s (%dx%d) for user %s", garden.ID, xSize, ySize, userID)
	return garden, nil
}

// GetUserGarden retrieves the user's garden with its placed plants
func (s *GardenService) GetUserGarden(ctx context.Context, userID string) (*models.Garden, error) {
	garden, err := s.Gardens.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	plants, err := s.GardenPlants.ListByGarden(ctx, garden.ID)
	if err != nil {
		return nil, err
	}
	garden.Plants = plants

	return garden, nil
}

// ResizeGarden changes the grid dimensions. Plants whose position falls
// outside the new bounds are evicted.
func (s *GardenService) ResizeGarden(ctx context.Context, userID string, xSize, ySize int, latitude, longitude float64) (*models.Garden, error) {
	if xSize <= 0 || ySize <= 0 {
		return nil, errors.NewValidationError("garden dimensions must be positive", nil)
	}

	garden, err := s.Gardens.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	relocated := garden.Latitude != latitude || garden.Longitude != longitude

	garden.XSize = xSize
	garden.YSize = ySize
	garden.Latitude = latitude
	garden.Longitude = longitude
	garden.UpdatedAt = s.now()

	if err := s.Gardens.Update(ctx, garden); err != nil {
		return nil, err
	}

	evicted, err := s.GardenPlants.DeleteOutsideBounds(ctx, garden.ID, xSize, ySize)
	if err != nil {
		return nil, err
	}
	if evicted > 0 {
		nuts.L.Warnf("[GardenService] Evicted %d out-of-bounds plants from garden %s after resize", evicted, garden.ID)
	}

	// A relocated garden makes any cached weather sample belong to the
	// old coordinates.
	if relocated {
		if inv, ok := s.Weather.(interface {
			InvalidateForUser(ctx context.Context, userID string) error
		}); ok {
			if err := inv.InvalidateForUser(ctx, userID); err != nil {
				nuts.L.Warnf("[GardenService] Failed to invalidate cached weather for user %s: %v", userID, err)
			}
		}
	}

	return s.GetUserGarden(ctx, userID)
}

// AddPlantToGarden places a catalog plant at a grid position. Counters
// are initialized and the soil moisture reading is seeded with the
// midpoint of the species' acceptable range.
func (s *GardenService) AddPlantToGarden(ctx context.Context, userID, plantID string, x, y int) (*models.GardenPlant, error) {
	garden, err := s.Gardens.GetByUserID(ctx, userID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NewValidationError("user does not have a garden", err)
		}
		return nil, err
	}

	if x < 0 || x >= garden.XSize || y < 0 || y >= garden.YSize {
		return nil, errors.NewValidationError("position outside garden bounds", nil)
	}

	if existing, err := s.GardenPlants.GetAtPosition(ctx, garden.ID, x, y); err == nil && existing != nil {
		return nil, errors.NewConflictError("position is already occupied", nil)
	} else if err != nil && !errors.IsNotFound(err) {
		return nil, err
	}

	plant, err := s.Plants.Get(ctx, plantID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	gp := &models.GardenPlant{
		ID:                  nuts.NID("gpl", 12),
		GardenID:            garden.ID,
		PlantID:             plant.ID,
		PositionX:           x,
		PositionY:           y,
		LastWateredDate:     now,
		LastStatusCheckDate: now,
		LastSoilMoisture:    status.InitialSoilMoisture(plant),
		Status:              models.StatusNormal,
		PreviousStatus:      models.StatusNormal,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.GardenPlants.Create(ctx, gp); err != nil {
		return nil, err
	}

	s.events.Emit("gardenplant.placed", gp.ID)
	nuts.L.Infof("[GardenService] Placed plant %s (%s) at (%d,%d) in garden %s",
		plant.Name, gp.ID, x, y, garden.ID)
	return gp, nil
}

// MoveGardenPlant repositions a placed plant within the grid
func (s *GardenService) MoveGardenPlant(ctx context.Context, userID, gardenPlantID string, x, y int) (*models.GardenPlant, error) {
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

	if x < 0 || x >= garden.XSize || y < 0 || y >= garden.YSize {
		return nil, errors.NewValidationError("position outside garden bounds", nil)
	}

	if occupant, err := s.GardenPlants.GetAtPosition(ctx, garden.ID, x, y); err == nil && occupant != nil && occupant.ID != gp.ID {
		return nil, errors.NewConflictError("position is already occupied", nil)
	} else if err != nil && !errors.IsNotFound(err) {
		return nil, err
	}

	gp.PositionX = x
	gp.PositionY = y
	gp.UpdatedAt = s.now()

	if err := s.GardenPlants.Update(ctx, gp); err != nil {
		return nil, err
	}
	return gp, nil
}

// RemovePlantFromGarden removes a placed plant and its tracking state
func (s *GardenService) RemovePlantFromGarden(ctx context.Context, userID, gardenPlantID string) error {
	garden, err := s.Gardens.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	gp, err := s.GardenPlants.Get(ctx, gardenPlantID)
	if err != nil {
		return err
	}
	if gp.GardenID != garden.ID {
		return errors.NewAuthorizationError("garden plant does not belong to this user", nil)
	}

	if err := s.GardenPlants.Delete(ctx, gardenPlantID); err != nil {
		return err
	}

	s.events.Emit("gardenplant.removed", gardenPlantID)
	nuts.L.Infof("[GardenService] Removed plant %s from garden %s", gardenPlantID, garden.ID)
	return nil
}
