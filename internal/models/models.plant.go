// FilePath: internal/models/models.plant.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

type PlantStatus string

const (
	StatusNormal        PlantStatus = "normal"
	StatusNeedsWatering PlantStatus = "needs_watering"
	StatusAtRisk        PlantStatus = "at_risk"
)

type SunlightRequirement string

const (
	SunlightFull    SunlightRequirement = "full_sun"
	SunlightPartial SunlightRequirement = "partial_sun"
	SunlightShade   SunlightRequirement = "shade"
)

type SoilType string

const (
	SoilLoamy SoilType = "loamy"
	SoilSandy SoilType = "sandy"
	SoilClay  SoilType = "clay"
	SoilPeaty SoilType = "peaty"
	SoilChalk SoilType = "chalky"
	SoilSilty SoilType = "silty"
)

// CareThresholds holds the environmental limits a plant species tolerates
// plus the watering cadence used by the status assessment.
type CareThresholds struct {
	MinTemperature  float64 `json:"min_temperature" db:"min_temperature"`
	MaxTemperature  float64 `json:"max_temperature" db:"max_temperature"`
	MinHumidity     float64 `json:"min_humidity" db:"min_humidity"`
	MaxHumidity     float64 `json:"max_humidity" db:"max_humidity"`
	MinRainfall     float64 `json:"min_rainfall" db:"min_rainfall"`
	MaxRainfall     float64 `json:"max_rainfall" db:"max_rainfall"`
	MinSoilMoisture float64 `json:"min_soil_moisture" db:"min_soil_moisture"`
	MaxSoilMoisture float64 `json:"max_soil_moisture" db:"max_soil_moisture"`

	// WateringThresholdDays is the number of days without a qualifying
	// watering event after which the plant is flagged as needing water.
	WateringThresholdDays int `json:"watering_threshold_days" db:"watering_threshold_days"`
	// WateringThresholdRainfall is the daily rainfall (mm) that counts as
	// a watering event for counter-reset purposes.
	WateringThresholdRainfall float64 `json:"watering_threshold_rainfall" db:"watering_threshold_rainfall"`
}

// Plant is a catalog species with its care thresholds. Thresholds are
// reference data: read-only to the status evaluator.
type Plant struct {
	ID               string              `json:"id" db:"id"`
	Name             string              `json:"name" db:"name"`
	Description      string              `json:"description" db:"description"`
	CareInstructions string              `json:"care_instructions" db:"care_instructions"`
	Sunlight         SunlightRequirement `json:"sunlight" db:"sunlight"`
	SoilType         SoilType            `json:"soil_type" db:"soil_type"`
	GrowthPeriod     string              `json:"growth_period" db:"growth_period"`
	HarvestTime      string              `json:"harvest_time" db:"harvest_time"`
	ImageURL         string              `json:"image_url" db:"image_url"`

	CareThresholds

	Details   *PlantDetails `json:"details,omitempty" db:"details"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
}

// PlantDetails carries the extended encyclopedia data shown on the plant
// detail page. Stored as a single jsonb column.
type PlantDetails struct {
	BloomSeason           string   `json:"bloom_season,omitempty"`
	Lifecycle             string   `json:"lifecycle,omitempty"`
	WaterNeeds            string   `json:"water_needs,omitempty"`
	DifficultyLevel       string   `json:"difficulty_level,omitempty"`
	NativeTo              string   `json:"native_to,omitempty"`
	IdealPhLevel          string   `json:"ideal_ph_level,omitempty"`
	GrowingZones          string   `json:"growing_zones,omitempty"`
	HeightAtMaturity      string   `json:"height_at_maturity,omitempty"`
	SpreadAtMaturity      string   `json:"spread_at_maturity,omitempty"`
	DaysToGermination     string   `json:"days_to_germination,omitempty"`
	DaysToMaturity        string   `json:"days_to_maturity,omitempty"`
	PlantingDepth         string   `json:"planting_depth,omitempty"`
	Spacing               string   `json:"spacing,omitempty"`
	Purposes              []string `json:"purposes,omitempty"`
	PropagationMethods    string   `json:"propagation_methods,omitempty"`
	PruningInstructions   string   `json:"pruning_instructions,omitempty"`
	PestManagement        string   `json:"pest_management,omitempty"`
	DiseaseManagement     string   `json:"disease_management,omitempty"`
	FertilizationSchedule string   `json:"fertilization_schedule,omitempty"`
	WinterCare            string   `json:"winter_care,omitempty"`
	HarvestingTips        string   `json:"harvesting_tips,omitempty"`
	StorageTips           string   `json:"storage_tips,omitempty"`
	CulinaryUses          string   `json:"culinary_uses,omitempty"`
	MedicinalUses         string   `json:"medicinal_uses,omitempty"`
	ImageURLs             []string `json:"image_urls,omitempty"`
	CompanionPlantIDs     []string `json:"companion_plant_ids,omitempty"`
}

// Value implements the driver.Valuer interface
func (d PlantDetails) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements the sql.Scanner interface
func (d *PlantDetails) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, d)
}
