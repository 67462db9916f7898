// FilePath: internal/models/models.composite.go
package models

import "time"

// AssessablePlant bundles a garden plant with the catalog species that
// owns its thresholds and the user whose weather feed applies. This is
// what the daily status pass iterates over.
type AssessablePlant struct {
	GardenPlant *GardenPlant `json:"garden_plant"`
	Plant       *Plant       `json:"plant"`
	UserID      string       `json:"user_id"`
}

// StatusTransition records one assessment outcome for downstream
// notification. Only transitions away from normal are ever delivered.
type StatusTransition struct {
	UserID     string      `json:"user_id"`
	PlantName  string      `json:"plant_name"`
	PrevStatus PlantStatus `json:"previous_status"`
	NewStatus  PlantStatus `json:"new_status"`
	Reason     string      `json:"reason,omitempty"`
	CheckedAt  time.Time   `json:"checked_at"`
}

// LeftNormal reports whether this transition should trigger a
// notification (plant was fine, now is not).
func (t StatusTransition) LeftNormal() bool {
	return t.PrevStatus == StatusNormal && t.NewStatus != StatusNormal
}
