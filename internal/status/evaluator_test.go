// FilePath: internal/status/evaluator_test.go
package status

import (
	"strings"
	"testing"
	"time"

	"github.com/verdantlabs/gardenhub/internal/models"
)

var testNow = time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)

func testPlant() *models.Plant {
	return &models.Plant{
		ID:   "plt_test",
		Name: "Tomato",
		CareThresholds: models.CareThresholds{
			MinTemperature:            5,
			MaxTemperature:            30,
			MinHumidity:               30,
			MaxHumidity:               80,
			MinRainfall:               0,
			MaxRainfall:               40,
			MinSoilMoisture:           30,
			MaxSoilMoisture:           60,
			WateringThresholdDays:     7,
			WateringThresholdRainfall: 10,
		},
	}
}

func testWeather(temp, humidity, rainfall float64, date time.Time) *models.WeatherSample {
	return &models.WeatherSample{
		UserID:      "usr_test",
		Date:        date,
		Temperature: temp,
		Humidity:    humidity,
		Rainfall:    rainfall,
	}
}

func TestEvaluateAtRiskLowTemperature(t *testing.T) {
	plant := testPlant()
	gp := models.GardenPlant{
		Status:           models.StatusNormal,
		LastSoilMoisture: 45,
	}
	weather := testWeather(2, 50, 0, testNow)

	got := Evaluate(plant, gp, weather, testNow)

	if got.Status != models.StatusAtRisk {
		t.Fatalf("expected status %s, got %s", models.StatusAtRisk, got.Status)
	}
	if !strings.Contains(got.StatusChangeReason, "temperature") {
		t.Errorf("expected reason to mention temperature, got %q", got.StatusChangeReason)
	}
}

func TestEvaluateAtRiskHighTemperatureIgnoresSoilAndCounter(t *testing.T) {
	plant := testPlant()
	// Soil and counter values that would otherwise trigger needs-watering.
	gp := models.GardenPlant{
		Status:                models.StatusNormal,
		LastSoilMoisture:      20,
		DaysToWateringCounter: 99,
	}
	weather := testWeather(35, 50, 0, testNow)

	got := Evaluate(plant, gp, weather, testNow)

	if got.Status != models.StatusAtRisk {
		t.Fatalf("expected status %s, got %s", models.StatusAtRisk, got.Status)
	}
	if !strings.Contains(got.StatusChangeReason, "temperature") {
		t.Errorf("expected temperature reason, got %q", got.StatusChangeReason)
	}
}

func TestEvaluateAtRiskPriorityOrder(t *testing.T) {
	plant := testPlant()
	gp := models.GardenPlant{LastSoilMoisture: 70} // also overwatered
	// Everything is out of range at once; temperature must win.
	weather := testWeather(-10, 95, 100, testNow)

	got := Evaluate(plant, gp, weather, testNow)

	if got.Status != models.StatusAtRisk {
		t.Fatalf("expected status %s, got %s", models.StatusAtRisk, got.Status)
	}
	if !strings.Contains(got.StatusChangeReason, "temperature") {
		t.Errorf("temperature check should take precedence, got %q", got.StatusChangeReason)
	}
}

func TestEvaluateAtRiskHumidity(t *testing.T) {
	plant := testPlant()
	gp := models.GardenPlant{LastSoilMoisture: 45}
	weather := testWeather(20, 95, 0, testNow)

	got := Evaluate(plant, gp, weather, testNow)

	if got.Status != models.StatusAtRisk {
		t.Fatalf("expected status %s, got %s", models.StatusAtRisk, got.Status)
	}
	if !strings.Contains(got.StatusChangeReason, "humidity") {
		t.Errorf("expected humidity reason, got %q", got.StatusChangeReason)
	}
}

func TestEvaluateAtRiskExcessiveRainfall(t *testing.T) {
	plant := testPlant()
	gp := models.GardenPlant{LastSoilMoisture: 45}
	weather := testWeather(20, 50, 55, testNow)

	got := Evaluate(plant, gp, weather, testNow)

	if got.Status != models.StatusAtRisk {
		t.Fatalf("expected status %s, got %s", models.StatusAtRisk, got.Status)
	}
	if !strings.Contains(got.StatusChangeReason, "rainfall") {
		t.Errorf("expected rainfall reason, got %q", got.StatusChangeReason)
	}
}

func TestEvaluateAtRiskOverwateringWithoutWeather(t *testing.T) {
	plant := testPlant()
	gp := models.GardenPlant{LastSoilMoisture: 75}

	got := Evaluate(plant, gp, nil, testNow)

	if got.Status != models.StatusAtRisk {
		t.Fatalf("expected status %s without weather data, got %s", models.StatusAtRisk, got.Status)
	}
	if !strings.Contains(got.StatusChangeReason, "overwatering") {
		t.Errorf("expected overwatering reason, got %q", got.StatusChangeReason)
	}
}

func TestEvaluateNoSensorDataSkipsSoilChecks(t *testing.T) {
	plant := testPlant()
	// Zero soil moisture is the "no sensor" sentinel: neither the
	// overwatering nor the dry-soil branch may fire.
	gp := models.GardenPlant{
		LastSoilMoisture:      0,
		DaysToWateringCounter: 1,
		LastStatusCheckDate:   testNow, // same day: no increment either
	}
	weather := testWeather(20, 50, 0, testNow)

	got := Evaluate(plant, gp, weather, testNow)

	if got.Status != models.StatusNormal {
		t.Fatalf("expected status %s, got %s (reason %q)", models.StatusNormal, got.Status, got.StatusChangeReason)
	}
}

func TestEvaluateDrySoilTriggersImmediately(t *testing.T) {
	plant := testPlant()
	gp := models.GardenPlant{
		LastSoilMoisture:      25,
		DaysToWateringCounter: 2,
	}
	weather := testWeather(20, 50, 0, testNow)

	got := Evaluate(plant, gp, weather, testNow)

	if got.Status != models.StatusNeedsWatering {
		t.Fatalf("expected status %s, got %s", models.StatusNeedsWatering, got.Status)
	}
	if !strings.Contains(got.StatusChangeReason, "soil moisture") {
		t.Errorf("expected soil moisture reason, got %q", got.StatusChangeReason)
	}
	// The soil branch short-circuits the counter logic.
	if got.DaysToWateringCounter != 2 {
		t.Errorf("counter should be untouched by the soil branch, got %d", got.DaysToWateringCounter)
	}
}

func TestEvaluateCounterReachesThreshold(t *testing.T) {
	plant := testPlant()
	yesterday := testNow.AddDate(0, 0, -1)
	gp := models.GardenPlant{
		LastSoilMoisture:      45,
		DaysToWateringCounter: 6,
		LastStatusCheckDate:   yesterday,
	}
	weather := testWeather(20, 50, 2, testNow) // 2mm: below the 10mm rain threshold

	got := Evaluate(plant, gp, weather, testNow)

	if got.DaysToWateringCounter != 7 {
		t.Fatalf("expected counter 7, got %d", got.DaysToWateringCounter)
	}
	if got.Status != models.StatusNeedsWatering {
		t.Fatalf("expected status %s at threshold, got %s", models.StatusNeedsWatering, got.Status)
	}
	if !strings.Contains(got.StatusChangeReason, "7 days") {
		t.Errorf("expected reason to cite day count, got %q", got.StatusChangeReason)
	}
}

func TestEvaluateIdempotentWithinSameDay(t *testing.T) {
	plant := testPlant()
	yesterday := testNow.AddDate(0, 0, -1)
	gp := models.GardenPlant{
		LastSoilMoisture:      45,
		DaysToWateringCounter: 2,
		LastStatusCheckDate:   yesterday,
	}
	weather := testWeather(20, 50, 0, testNow)

	first := Evaluate(plant, gp, weather, testNow)
	if first.DaysToWateringCounter != 3 {
		t.Fatalf("expected counter 3 after first run, got %d", first.DaysToWateringCounter)
	}

	second := Evaluate(plant, first, weather, testNow)
	if second.DaysToWateringCounter != 3 {
		t.Fatalf("counter incremented twice on the same day: got %d", second.DaysToWateringCounter)
	}
	if second.Status != first.Status {
		t.Errorf("same-day re-evaluation changed status from %s to %s", first.Status, second.Status)
	}
}

func TestEvaluateRainResetsCounter(t *testing.T) {
	plant := testPlant()
	yesterday := testNow.AddDate(0, 0, -1)
	gp := models.GardenPlant{
		LastSoilMoisture:      45,
		DaysToWateringCounter: 6,
		LastStatusCheckDate:   yesterday,
		LastWateredDate:       yesterday,
	}
	weather := testWeather(20, 50, 12, testNow)

	got := Evaluate(plant, gp, weather, testNow)

	if got.DaysToWateringCounter != 0 {
		t.Fatalf("expected counter reset to 0 by rain, got %d", got.DaysToWateringCounter)
	}
	if got.Status != models.StatusNormal {
		t.Errorf("expected status %s after rain reset, got %s", models.StatusNormal, got.Status)
	}
	if !got.LastRainfallDate.Equal(weather.Date) {
		t.Errorf("expected last rainfall date %v, got %v", weather.Date, got.LastRainfallDate)
	}
	if got.LastRainfallAmount != 12 {
		t.Errorf("expected last rainfall amount 12, got %f", got.LastRainfallAmount)
	}
	// Rain is not a manual watering.
	if !got.LastWateredDate.Equal(yesterday) {
		t.Errorf("rain reset must not touch last watered date, got %v", got.LastWateredDate)
	}
}

func TestEvaluateStaleRainDoesNotReset(t *testing.T) {
	plant := testPlant()
	yesterday := testNow.AddDate(0, 0, -1)
	gp := models.GardenPlant{
		LastSoilMoisture:      45,
		DaysToWateringCounter: 3,
		LastStatusCheckDate:   yesterday,
	}
	// Qualifying rainfall, but the sample is from yesterday.
	weather := testWeather(20, 50, 15, yesterday)

	got := Evaluate(plant, gp, weather, testNow)

	if got.DaysToWateringCounter != 4 {
		t.Fatalf("stale rain must not reset the counter: expected 4, got %d", got.DaysToWateringCounter)
	}
}

func TestEvaluateWithoutWeatherFallsBackToCounter(t *testing.T) {
	plant := testPlant()
	yesterday := testNow.AddDate(0, 0, -1)
	gp := models.GardenPlant{
		LastSoilMoisture:      0,
		DaysToWateringCounter: 6,
		LastStatusCheckDate:   yesterday,
	}

	got := Evaluate(plant, gp, nil, testNow)

	if got.DaysToWateringCounter != 7 {
		t.Fatalf("expected counter 7, got %d", got.DaysToWateringCounter)
	}
	if got.Status != models.StatusNeedsWatering {
		t.Fatalf("expected status %s, got %s", models.StatusNeedsWatering, got.Status)
	}
}

func TestEvaluateTracksPreviousStatusAndCheckDate(t *testing.T) {
	plant := testPlant()
	gp := models.GardenPlant{
		Status:              models.StatusNeedsWatering,
		LastSoilMoisture:    45,
		LastStatusCheckDate: testNow, // same day, no increment
	}
	weather := testWeather(20, 50, 0, testNow)

	got := Evaluate(plant, gp, weather, testNow)

	if got.PreviousStatus != models.StatusNeedsWatering {
		t.Errorf("expected previous status %s, got %s", models.StatusNeedsWatering, got.PreviousStatus)
	}
	if got.Status != models.StatusNormal {
		t.Errorf("expected status %s, got %s", models.StatusNormal, got.Status)
	}
	if got.StatusChangeReason != "" {
		t.Errorf("normal status must clear the reason, got %q", got.StatusChangeReason)
	}
	if !got.LastStatusCheckDate.Equal(testNow) {
		t.Errorf("expected check date %v, got %v", testNow, got.LastStatusCheckDate)
	}
}

func TestRecordWateringResetsCounterAndStatus(t *testing.T) {
	plant := testPlant()
	gp := models.GardenPlant{
		Status:                models.StatusNeedsWatering,
		StatusChangeReason:    "has gone 9 days without watering",
		DaysToWateringCounter: 9,
		LastSoilMoisture:      45,
	}

	got := RecordWatering(plant, gp, nil, testNow)

	if got.DaysToWateringCounter != 0 {
		t.Fatalf("expected counter 0 after watering, got %d", got.DaysToWateringCounter)
	}
	if got.Status != models.StatusNormal {
		t.Fatalf("expected status %s after watering, got %s", models.StatusNormal, got.Status)
	}
	if got.PreviousStatus != models.StatusNeedsWatering {
		t.Errorf("expected previous status %s, got %s", models.StatusNeedsWatering, got.PreviousStatus)
	}
	if got.StatusChangeReason != "" {
		t.Errorf("expected reason cleared, got %q", got.StatusChangeReason)
	}
	if !got.LastWateredDate.Equal(testNow) {
		t.Errorf("expected last watered date %v, got %v", testNow, got.LastWateredDate)
	}
}

func TestRecordWateringWithReadingOverwritesSoilMoisture(t *testing.T) {
	plant := testPlant()
	gp := models.GardenPlant{LastSoilMoisture: 20}
	reading := 50.0

	got := RecordWatering(plant, gp, &reading, testNow)

	if got.LastSoilMoisture != 50 {
		t.Fatalf("expected soil moisture 50, got %f", got.LastSoilMoisture)
	}
	if got.Status != models.StatusNormal {
		t.Errorf("expected status %s, got %s", models.StatusNormal, got.Status)
	}
}

func TestRecordWateringOverwateringStaysAtRisk(t *testing.T) {
	plant := testPlant()
	gp := models.GardenPlant{Status: models.StatusNeedsWatering}
	reading := 85.0

	got := RecordWatering(plant, gp, &reading, testNow)

	if got.Status != models.StatusAtRisk {
		t.Fatalf("expected status %s for overwatered soil, got %s", models.StatusAtRisk, got.Status)
	}
	if !strings.Contains(got.StatusChangeReason, "overwatering") {
		t.Errorf("expected overwatering reason, got %q", got.StatusChangeReason)
	}
	if got.DaysToWateringCounter != 0 {
		t.Errorf("watering must still reset the counter, got %d", got.DaysToWateringCounter)
	}
}

func TestInitialSoilMoistureIsRangeMidpoint(t *testing.T) {
	plant := testPlant() // 30-60 range
	if got := InitialSoilMoisture(plant); got != 45 {
		t.Fatalf("expected midpoint 45, got %f", got)
	}
}
