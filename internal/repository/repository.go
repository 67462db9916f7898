// FilePath: internal/repository/repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/verdantlabs/gardenhub/internal/database"
	"github.com/verdantlabs/gardenhub/internal/models"
)

var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("resource not found")
	// ErrDuplicate indicates that a resource already exists
	ErrDuplicate = errors.New("resource already exists")
	// ErrInvalidInput indicates that the input data is invalid
	ErrInvalidInput = errors.New("invalid input")
)

// PlantRepository defines the interface for catalog plant operations
type PlantRepository interface {
	database.Repository
	Create(ctx context.Context, plant *models.Plant) error
	Get(ctx context.Context, id string) (*models.Plant, error)
	GetByName(ctx context.Context, name string) (*models.Plant, error)
	Update(ctx context.Context, plant *models.Plant) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters models.PlantFilters, offset, limit int) ([]*models.Plant, error)
}

// GardenRepository defines the interface for garden operations
type GardenRepository interface {
	database.Repository
	Create(ctx context.Context, garden *models.Garden) error
	Get(ctx context.Context, id string) (*models.Garden, error)
	GetByUserID(ctx context.Context, userID string) (*models.Garden, error)
	Update(ctx context.Context, garden *models.Garden) error
	Delete(ctx context.Context, id string) error
}

// GardenPlantRepository defines the interface for placed garden plants
// and their care-tracking state
type GardenPlantRepository interface {
	database.Repository
	Create(ctx context.Context, gp *models.GardenPlant) error
	Get(ctx context.Context, id string) (*models.GardenPlant, error)
	GetAtPosition(ctx context.Context, gardenID string, x, y int) (*models.GardenPlant, error)
	Update(ctx context.Context, gp *models.GardenPlant) error
	Delete(ctx context.Context, id string) error
	ListByGarden(ctx context.Context, gardenID string) ([]*models.GardenPlant, error)
	DeleteOutsideBounds(ctx context.Context, gardenID string, xSize, ySize int) (int64, error)
	// ListAssessable returns every garden plant across all users joined
	// with its owning species and user, for the daily status pass.
	ListAssessable(ctx context.Context) ([]*models.AssessablePlant, error)
}

// WeatherRepository defines the interface for stored weather samples
type WeatherRepository interface {
	database.Repository
	Insert(ctx context.Context, sample *models.WeatherSample) error
	LatestByUser(ctx context.Context, userID string) (*models.WeatherSample, error)
	DeleteOlderThan(ctx context.Context, before time.Time) (int64, error)
}

// UserRepository defines the interface for user accounts
type UserRepository interface {
	database.Repository
	Create(ctx context.Context, user *models.User) error
	Get(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
}
