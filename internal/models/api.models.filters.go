// FilePath: internal/models/api.models.filters.go
package models

// PlantFilters defines the available filter options for the plant
// catalog listing. Decoded from query parameters with gorilla/schema.
type PlantFilters struct {
	Name     string              `json:"name" schema:"name"`
	Sunlight SunlightRequirement `json:"sunlight" schema:"sunlight"`
	SoilType SoilType            `json:"soil_type" schema:"soil_type"`
}
