// FilePath: internal/models/models.garden.go
package models

import "time"

// Garden is a user's planting grid. Each user has at most one garden;
// the grid size bounds where garden plants may be placed.
type Garden struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	XSize     int       `json:"x_size" db:"x_size"`
	YSize     int       `json:"y_size" db:"y_size"`
	Latitude  float64   `json:"latitude" db:"latitude"`
	Longitude float64   `json:"longitude" db:"longitude"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	Plants []*GardenPlant `json:"plants,omitempty" db:"-"`
}

// GardenPlant is one placed instance of a catalog plant inside a garden,
// carrying its own care-tracking counters and assessment state.
type GardenPlant struct {
	ID       string `json:"id" db:"id"`
	GardenID string `json:"garden_id" db:"garden_id"`
	PlantID  string `json:"plant_id" db:"plant_id"`

	PositionX int `json:"position_x" db:"position_x"`
	PositionY int `json:"position_y" db:"position_y"`

	// DaysToWateringCounter counts days without a qualifying watering
	// event. Reset to 0 by significant rain on the current day or by a
	// manual watering; incremented at most once per UTC calendar day.
	DaysToWateringCounter int       `json:"days_to_watering_counter" db:"days_to_watering_counter"`
	LastWateredDate       time.Time `json:"last_watered_date" db:"last_watered_date"`
	LastRainfallDate      time.Time `json:"last_rainfall_date" db:"last_rainfall_date"`
	LastRainfallAmount    float64   `json:"last_rainfall_amount" db:"last_rainfall_amount"`

	// LastSoilMoisture is the latest sensor reading in percent.
	// A value <= 0 means no sensor data is available.
	LastSoilMoisture float64 `json:"last_soil_moisture" db:"last_soil_moisture"`

	LastStatusCheckDate time.Time `json:"last_status_check_date" db:"last_status_check_date"`

	Status             PlantStatus `json:"status" db:"status"`
	PreviousStatus     PlantStatus `json:"previous_status" db:"previous_status"`
	StatusChangeReason string      `json:"status_change_reason,omitempty" db:"status_change_reason"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
