// FilePath: internal/repository/postgres/postgres.weather.go
package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/verdantlabs/gardenhub/internal/database"
	"github.com/verdantlabs/gardenhub/internal/errors"
	"github.com/verdantlabs/gardenhub/internal/models"
)

type WeatherRepo struct {
	PostgresBaseRepo
}

func NewWeatherRepository(db database.DB) *WeatherRepo {
	repo := &PostgresBaseRepo{db: db}
	return &WeatherRepo{PostgresBaseRepo: *repo}
}

func (r *WeatherRepo) Insert(ctx context.Context, sample *models.WeatherSample) error {
	query := `
		INSERT INTO weather_samples (
			id, user_id, date, conditions, temperature, humidity, rainfall
		) VALUES (
			:id, :user_id, :date, :conditions, :temperature, :humidity, :rainfall
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, sample)
	if err != nil {
		return errors.NewDatabaseError("failed to insert weather sample", err)
	}
	return nil
}

func (r *WeatherRepo) LatestByUser(ctx context.Context, userID string) (*models.WeatherSample, error) {
	sample := &models.WeatherSample{}
	query := `SELECT * FROM weather_samples WHERE user_id = $1 ORDER BY date DESC LIMIT 1`

	err := r.db.GetDB().GetContext(ctx, sample, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("no weather data for user", err)
		}
		return nil, errors.NewDatabaseError("failed to get latest weather sample", err)
	}
	return sample, nil
}

// DeleteOlderThan prunes historical samples; only the most recent one is
// ever consumed by the status assessment.
func (r *WeatherRepo) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	query := `DELETE FROM weather_samples WHERE date < $1`

	result, err := r.db.GetDB().ExecContext(ctx, query, before)
	if err != nil {
		return 0, errors.NewDatabaseError("failed to prune weather samples", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewDatabaseError("failed to get rows affected", err)
	}
	return rows, nil
}
