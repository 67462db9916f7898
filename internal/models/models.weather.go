// FilePath: internal/models/models.weather.go
package models

import "time"

// WeatherSample is one current-conditions reading stored per user per
// fetch. The status evaluator only ever consumes the most recent sample
// (by Date) for the user owning a garden.
type WeatherSample struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	Date        time.Time `json:"date" db:"date"`
	Conditions  string    `json:"conditions" db:"conditions"`
	Temperature float64   `json:"temperature" db:"temperature"` // Celsius
	Humidity    float64   `json:"humidity" db:"humidity"`       // percent
	Rainfall    float64   `json:"rainfall" db:"rainfall"`       // mm, last hour
}
