// FilePath: internal/repository/postgres/postgres.plant.go
package postgres

import (
	"context"
	"database/sql"

	"github.com/verdantlabs/gardenhub/internal/database"
	"github.com/verdantlabs/gardenhub/internal/errors"
	"github.com/verdantlabs/gardenhub/internal/models"
)

type PlantRepo struct {
	PostgresBaseRepo
}

func NewPlantRepository(db database.DB) *PlantRepo {
	repo := &PostgresBaseRepo{db: db}
	return &PlantRepo{PostgresBaseRepo: *repo}
}

func (r *PlantRepo) Create(ctx context.Context, plant *models.Plant) error {
	query := `
		INSERT INTO plants (
			id, name, description, care_instructions, sunlight, soil_type,
			growth_period, harvest_time, image_url,
			min_temperature, max_temperature, min_humidity, max_humidity,
			min_rainfall, max_rainfall, min_soil_moisture, max_soil_moisture,
			watering_threshold_days, watering_threshold_rainfall,
			details, created_at, updated_at
		) VALUES (
			:id, :name, :description, :care_instructions, :sunlight, :soil_type,
			:growth_period, :harvest_time, :image_url,
			:min_temperature, :max_temperature, :min_humidity, :max_humidity,
			:min_rainfall, :max_rainfall, :min_soil_moisture, :max_soil_moisture,
			:watering_threshold_days, :watering_threshold_rainfall,
			:details, :created_at, :updated_at
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, plant)
	if err != nil {
		return errors.NewDatabaseError("failed to create plant", err)
	}
	return nil
}

func (r *PlantRepo) Get(ctx context.Context, id string) (*models.Plant, error) {
	plant := &models.Plant{}
	query := `SELECT * FROM plants WHERE id = $1`

	err := r.db.GetDB().GetContext(ctx, plant, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("plant not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get plant", err)
	}
	return plant, nil
}

func (r *PlantRepo) GetByName(ctx context.Context, name string) (*models.Plant, error) {
	plant := &models.Plant{}
	query := `SELECT * FROM plants WHERE name = $1`

	err := r.db.GetDB().GetContext(ctx, plant, query, name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("plant not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get plant by name", err)
	}
	return plant, nil
}

func (r *PlantRepo) Update(ctx context.Context, plant *models.Plant) error {
	query := `
		UPDATE plants SET
			name = :name,
			description = :description,
			care_instructions = :care_instructions,
			sunlight = :sunlight,
			soil_type = :soil_type,
			growth_period = :growth_period,
			harvest_time = :harvest_time,
			image_url = :image_url,
			min_temperature = :min_temperature,
			max_temperature = :max_temperature,
			min_humidity = :min_humidity,
			max_humidity = :max_humidity,
			min_rainfall = :min_rainfall,
			max_rainfall = :max_rainfall,
			min_soil_moisture = :min_soil_moisture,
			max_soil_moisture = :max_soil_moisture,
			watering_threshold_days = :watering_threshold_days,
			watering_threshold_rainfall = :watering_threshold_rainfall,
			details = :details,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.GetDB().NamedExecContext(ctx, query, plant)
	if err != nil {
		return errors.NewDatabaseError("failed to update plant", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("plant not found", nil)
	}

	return nil
}

func (r *PlantRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM plants WHERE id = $1`

	result, err := r.db.GetDB().ExecContext(ctx, query, id)
	if err != nil {
		return errors.NewDatabaseError("failed to delete plant", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("plant not found", nil)
	}

	return nil
}

func (r *PlantRepo) List(ctx context.Context, filters models.PlantFilters, offset, limit int) ([]*models.Plant, error) {
	plants := []*models.Plant{}
	query := `
		SELECT * FROM plants
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR sunlight = $2)
		  AND ($3 = '' OR soil_type = $3)
		ORDER BY name ASC
		LIMIT $4 OFFSET $5`

	err := r.db.GetDB().SelectContext(ctx, &plants, query,
		filters.Name, string(filters.Sunlight), string(filters.SoilType), limit, offset)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list plants", err)
	}

	return plants, nil
}
