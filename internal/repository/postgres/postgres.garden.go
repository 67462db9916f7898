// FilePath: internal/repository/postgres/postgres.garden.go
package postgres

import (
	"context"
	"database/sql"

	"github.com/verdantlabs/gardenhub/internal/database"
	"github.com/verdantlabs/gardenhub/internal/errors"
	"github.com/verdantlabs/gardenhub/internal/models"
)

type GardenRepo struct {
	PostgresBaseRepo
}

func NewGardenRepository(db database.DB) *GardenRepo {
	repo := &PostgresBaseRepo{db: db}
	return &GardenRepo{PostgresBaseRepo: *repo}
}

func (r *GardenRepo) Create(ctx context.Context, garden *models.Garden) error {
	query := `
		INSERT INTO gardens (
			id, user_id, x_size, y_size, latitude, longitude, created_at, updated_at
		) VALUES (
			:id, :user_id, :x_size, :y_size, :latitude, :longitude, :created_at, :updated_at
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, garden)
	if err != nil {
		return errors.NewDatabaseError("failed to create garden", err)
	}
	return nil
}

func (r *GardenRepo) Get(ctx context.Context, id string) (*models.Garden, error) {
	garden := &models.Garden{}
	query := `SELECT * FROM gardens WHERE id = $1`

	err := r.db.GetDB().GetContext(ctx, garden, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("garden not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get garden", err)
	}
	return garden, nil
}

func (r *GardenRepo) GetByUserID(ctx context.Context, userID string) (*models.Garden, error) {
	garden := &models.Garden{}
	query := `SELECT * FROM gardens WHERE user_id = $1`

	err := r.db.GetDB().GetContext(ctx, garden, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("garden not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get garden by user", err)
	}
	return garden, nil
}

func (r *GardenRepo) Update(ctx context.Context, garden *models.Garden) error {
	query := `
		UPDATE gardens SET
			x_size = :x_size,
			y_size = :y_size,
			latitude = :latitude,
			longitude = :longitude,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.GetDB().NamedExecContext(ctx, query, garden)
	if err != nil {
		return errors.NewDatabaseError("failed to update garden", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("garden not found", nil)
	}

	return nil
}

func (r *GardenRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM gardens WHERE id = $1`

	result, err := r.db.GetDB().ExecContext(ctx, query, id)
	if err != nil {
		return errors.NewDatabaseError("failed to delete garden", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("garden not found", nil)
	}

	return nil
}
