// FilePath: internal/repository/postgres/postgres.gardenplant.go
package postgres

import (
	"context"
	"database/sql"

	"github.com/verdantlabs/gardenhub/internal/database"
	"github.com/verdantlabs/gardenhub/internal/errors"
	"github.com/verdantlabs/gardenhub/internal/models"
)

type GardenPlantRepo struct {
	PostgresBaseRepo
}

func NewGardenPlantRepository(db database.DB) *GardenPlantRepo {
	repo := &PostgresBaseRepo{db: db}
	return &GardenPlantRepo{PostgresBaseRepo: *repo}
}

func (r *GardenPlantRepo) Create(ctx context.Context, gp *models.GardenPlant) error {
	query := `
		INSERT INTO garden_plants (
			id, garden_id, plant_id, position_x, position_y,
			days_to_watering_counter, last_watered_date, last_rainfall_date,
			last_rainfall_amount, last_soil_moisture, last_status_check_date,
			status, previous_status, status_change_reason, created_at, updated_at
		) VALUES (
			:id, :garden_id, :plant_id, :position_x, :position_y,
			:days_to_watering_counter, :last_watered_date, :last_rainfall_date,
			:last_rainfall_amount, :last_soil_moisture, :last_status_check_date,
			:status, :previous_status, :status_change_reason, :created_at, :updated_at
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, gp)
	if err != nil {
		return errors.NewDatabaseError("failed to create garden plant", err)
	}
	return nil
}

func (r *GardenPlantRepo) Get(ctx context.Context, id string) (*models.GardenPlant, error) {
	gp := &models.GardenPlant{}
	query := `SELECT * FROM garden_plants WHERE id = $1`

	err := r.db.GetDB().GetContext(ctx, gp, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("garden plant not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get garden plant", err)
	}
	return gp, nil
}

func (r *GardenPlantRepo) GetAtPosition(ctx context.Context, gardenID string, x, y int) (*models.GardenPlant, error) {
	gp := &models.GardenPlant{}
	query := `SELECT * FROM garden_plants WHERE garden_id = $1 AND position_x = $2 AND position_y = $3`

	err := r.db.GetDB().GetContext(ctx, gp, query, gardenID, x, y)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("garden plant not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get garden plant at position", err)
	}
	return gp, nil
}

// Update persists the full care-tracking state. The status evaluator
// returns an updated copy of the record and this writes it back.
func (r *GardenPlantRepo) Update(ctx context.Context, gp *models.GardenPlant) error {
	query := `
		UPDATE garden_plants SET
			position_x = :position_x,
			position_y = :position_y,
			days_to_watering_counter = :days_to_watering_counter,
			last_watered_date = :last_watered_date,
			last_rainfall_date = :last_rainfall_date,
			last_rainfall_amount = :last_rainfall_amount,
			last_soil_moisture = :last_soil_moisture,
			last_status_check_date = :last_status_check_date,
			status = :status,
			previous_status = :previous_status,
			status_change_reason = :status_change_reason,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.GetDB().NamedExecContext(ctx, query, gp)
	if err != nil {
		return errors.NewDatabaseError("failed to update garden plant", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("garden plant not found", nil)
	}

	return nil
}

func (r *GardenPlantRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM garden_plants WHERE id = $1`

	result, err := r.db.GetDB().ExecContext(ctx, query, id)
	if err != nil {
		return errors.NewDatabaseError("failed to delete garden plant", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("garden plant not found", nil)
	}

	return nil
}

func (r *GardenPlantRepo) ListByGarden(ctx context.Context, gardenID string) ([]*models.GardenPlant, error) {
	plants := []*models.GardenPlant{}
	query := `SELECT * FROM garden_plants WHERE garden_id = $1 ORDER BY position_y, position_x`

	err := r.db.GetDB().SelectContext(ctx, &plants, query, gardenID)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list garden plants", err)
	}

	return plants, nil
}

// DeleteOutsideBounds removes plants whose position no longer fits the
// garden grid after a resize.
func (r *GardenPlantRepo) DeleteOutsideBounds(ctx context.Context, gardenID string, xSize, ySize int) (int64, error) {
	query := `DELETE FROM garden_plants WHERE garden_id = $1 AND (position_x >= $2 OR position_y >= $3)`

	result, err := r.db.GetDB().ExecContext(ctx, query, gardenID, xSize, ySize)
	if err != nil {
		return 0, errors.NewDatabaseError("failed to evict out-of-bounds garden plants", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewDatabaseError("failed to get rows affected", err)
	}
	return rows, nil
}

type assessableRow struct {
	GardenPlant models.GardenPlant `db:"gp"`
	Plant       models.Plant       `db:"p"`
	UserID      string             `db:"user_id"`
}

func (r *GardenPlantRepo) ListAssessable(ctx context.Context) ([]*models.AssessablePlant, error) {
	rows := []assessableRow{}
	query := `
		SELECT
			gp.id "gp.id", gp.garden_id "gp.garden_id", gp.plant_id "gp.plant_id",
			gp.position_x "gp.position_x", gp.position_y "gp.position_y",
			gp.days_to_watering_counter "gp.days_to_watering_counter",
			gp.last_watered_date "gp.last_watered_date",
			gp.last_rainfall_date "gp.last_rainfall_date",
			gp.last_rainfall_amount "gp.last_rainfall_amount",
			gp.last_soil_moisture "gp.last_soil_moisture",
			gp.last_status_check_date "gp.last_status_check_date",
			gp.status "gp.status", gp.previous_status "gp.previous_status",
			gp.status_change_reason "gp.status_change_reason",
			gp.created_at "gp.created_at", gp.updated_at "gp.updated_at",
			p.id "p.id", p.name "p.name", p.description "p.description",
			p.care_instructions "p.care_instructions", p.sunlight "p.sunlight",
			p.soil_type "p.soil_type", p.growth_period "p.growth_period",
			p.harvest_time "p.harvest_time", p.image_url "p.image_url",
			p.min_temperature "p.min_temperature", p.max_temperature "p.max_temperature",
			p.min_humidity "p.min_humidity", p.max_humidity "p.max_humidity",
			p.min_rainfall "p.min_rainfall", p.max_rainfall "p.max_rainfall",
			p.min_soil_moisture "p.min_soil_moisture", p.max_soil_moisture "p.max_soil_moisture",
			p.watering_threshold_days "p.watering_threshold_days",
			p.watering_threshold_rainfall "p.watering_threshold_rainfall",
			p.details "p.details", p.created_at "p.created_at", p.updated_at "p.updated_at",
			g.user_id
		FROM garden_plants gp
		JOIN plants p ON p.id = gp.plant_id
		JOIN gardens g ON g.id = gp.garden_id
		ORDER BY g.user_id, gp.id`

	err := r.db.GetDB().SelectContext(ctx, &rows, query)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list assessable plants", err)
	}

	out := make([]*models.AssessablePlant, 0, len(rows))
	for i := range rows {
		out = append(out, &models.AssessablePlant{
			GardenPlant: &rows[i].GardenPlant,
			Plant:       &rows[i].Plant,
			UserID:      rows[i].UserID,
		})
	}
	return out, nil
}
