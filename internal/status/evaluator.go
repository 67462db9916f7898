// FilePath: internal/status/evaluator.go

// Package status implements the plant status assessment rules. The
// evaluator is a pure function over a plant's care thresholds, its
// tracked garden state and the latest weather sample; callers persist
// the returned state.
package status

import (
	"fmt"
	"time"

	"github.com/verdantlabs/gardenhub/internal/models"
)

// Evaluate assesses one garden plant and returns its updated state.
//
// The rule chain is ordered and short-circuits: the first matching
// at-risk condition wins (temperature low, temperature high, humidity
// out of range, excessive rainfall, overwatered soil), then the
// needs-watering conditions are tried (dry soil sensor, day counter),
// otherwise the plant is normal. Order encodes precedence and must not
// be rearranged.
//
// weather may be nil ("no weather data available"); the climate checks
// are skipped and the assessment degrades to soil and counter state.
// A soil moisture reading <= 0 means no sensor data.
//
// The input state is taken by value and never mutated; the previous
// status is preserved in the returned record so downstream notification
// can detect transitions away from normal.
func Evaluate(plant *models.Plant, gp models.GardenPlant, weather *models.WeatherSample, now time.Time) models.GardenPlant {
	gp.PreviousStatus = gp.Status
	gp.StatusChangeReason = ""

	newStatus := models.StatusNormal
	reason := ""

	// At-risk chain: first satisfied condition wins.
	if weather != nil {
		switch {
		case weather.Temperature < plant.MinTemperature:
			reason = fmt.Sprintf("temperature (%.1f°C) below minimum threshold (%.1f°C)",
				weather.Temperature, plant.MinTemperature)
		case weather.Temperature > plant.MaxTemperature:
			reason = fmt.Sprintf("temperature (%.1f°C) above maximum threshold (%.1f°C)",
				weather.Temperature, plant.MaxTemperature)
		case weather.Humidity < plant.MinHumidity || weather.Humidity > plant.MaxHumidity:
			reason = fmt.Sprintf("humidity (%.1f%%) outside acceptable range (%.1f-%.1f%%)",
				weather.Humidity, plant.MinHumidity, plant.MaxHumidity)
		case weather.Rainfall > plant.MaxRainfall:
			reason = fmt.Sprintf("excessive rainfall today (%.1fmm), maximum recommended is %.1fmm",
				weather.Rainfall, plant.MaxRainfall)
		}
	}

	// Overwatered soil is checked independently of weather availability.
	if reason == "" && gp.LastSoilMoisture > 0 && gp.LastSoilMoisture > plant.MaxSoilMoisture {
		reason = fmt.Sprintf("soil moisture (%.1f%%) above maximum threshold (%.1f%%), potential overwatering",
			gp.LastSoilMoisture, plant.MaxSoilMoisture)
	}

	if reason != "" {
		newStatus = models.StatusAtRisk
	} else {
		newStatus, reason, gp = evaluateWatering(plant, gp, weather, now)
	}

	gp.Status = newStatus
	gp.StatusChangeReason = reason
	gp.LastStatusCheckDate = now

	return gp
}

// evaluateWatering runs the needs-watering half of the rule chain and
// applies counter bookkeeping to the state copy.
func evaluateWatering(plant *models.Plant, gp models.GardenPlant, weather *models.WeatherSample, now time.Time) (models.PlantStatus, string, models.GardenPlant) {
	// A valid soil sensor reading below the minimum is authoritative.
	if gp.LastSoilMoisture > 0 && gp.LastSoilMoisture < plant.MinSoilMoisture {
		reason := fmt.Sprintf("soil moisture (%.1f%%) is below the minimum required (%.1f%%)",
			gp.LastSoilMoisture, plant.MinSoilMoisture)
		return models.StatusNeedsWatering, reason, gp
	}

	// Significant rain today counts as a watering event and resets the
	// counter. A stale sample (not from today) must not reset it, even
	// if its rainfall value qualifies.
	rainToday := weather != nil &&
		weather.Rainfall >= plant.WateringThresholdRainfall &&
		sameUTCDay(weather.Date, now)

	if rainToday {
		gp.DaysToWateringCounter = 0
		gp.LastRainfallDate = weather.Date
		gp.LastRainfallAmount = weather.Rainfall
		// LastWateredDate is reserved for manual watering.
	} else if !sameUTCDay(gp.LastStatusCheckDate, now) {
		// Increment at most once per calendar day, however often the
		// evaluation runs.
		gp.DaysToWateringCounter++
	}

	if gp.DaysToWateringCounter >= plant.WateringThresholdDays {
		reason := fmt.Sprintf("has gone %d days without watering, exceeding the recommended threshold of %d days",
			gp.DaysToWateringCounter, plant.WateringThresholdDays)
		return models.StatusNeedsWatering, reason, gp
	}

	return models.StatusNormal, "", gp
}

// RecordWatering applies a manual watering event and re-derives the
// status with a reduced rule: watering addresses time and soil deficits
// directly, so neither weather nor the day counter is consulted. The
// only remaining hazard is overwatering.
//
// soilMoisture, when non-nil and >= 0, overwrites the stored reading.
func RecordWatering(plant *models.Plant, gp models.GardenPlant, soilMoisture *float64, now time.Time) models.GardenPlant {
	gp.PreviousStatus = gp.Status
	gp.LastWateredDate = now
	gp.DaysToWateringCounter = 0
	gp.StatusChangeReason = ""

	if soilMoisture != nil && *soilMoisture >= 0 {
		gp.LastSoilMoisture = *soilMoisture
	}

	if gp.LastSoilMoisture > 0 && gp.LastSoilMoisture > plant.MaxSoilMoisture {
		gp.Status = models.StatusAtRisk
		gp.StatusChangeReason = fmt.Sprintf("soil moisture (%.1f%%) above maximum threshold (%.1f%%) even after watering, potential overwatering",
			gp.LastSoilMoisture, plant.MaxSoilMoisture)
	} else {
		gp.Status = models.StatusNormal
	}

	gp.LastStatusCheckDate = now
	return gp
}

// InitialSoilMoisture is the reading assigned when a plant is first
// placed in a garden: the midpoint of the species' acceptable range.
func InitialSoilMoisture(plant *models.Plant) float64 {
	return plant.MinSoilMoisture + (plant.MaxSoilMoisture-plant.MinSoilMoisture)/2
}

func sameUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
