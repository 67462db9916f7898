// FilePath: api/resources/api.resource.weather.go
package resources

import (
	"net/http"

	nuts "github.com/vaudience/go-nuts"

	"github.com/verdantlabs/gardenhub/api/middleware"
	"github.com/verdantlabs/gardenhub/internal/errors"
	"github.com/verdantlabs/gardenhub/internal/weather"
)

// WeatherHandlers encapsulates the weather-related HTTP handlers
type WeatherHandlers struct {
	weather *weather.Service
}

// @Summary Get the latest weather sample
// @Description Get the most recent stored weather sample for the user's garden
// @Tags weather
// @Produce json
// @Success 200 {object} models.WeatherSample
// @Failure 404 {object} errors.APIError
// @Router /weather [get]
// @Security BearerAuth
func (h *WeatherHandlers) GetLatest(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	user := middleware.GetUserContext(r)

	sample, err := h.weather.LatestForUser(r.Context(), user.ID)
	if err != nil {
		respondWithServiceError(w, requestID, err)
		return
	}
	if sample == nil {
		respondWithError(w, errors.NewNotFoundError("no weather data recorded yet", nil).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, sample)
}

// @Summary Refresh weather data
// @Description Fetch current conditions for the user's garden location and store them
// @Tags weather
// @Produce json
// @Success 200 {object} models.WeatherSample
// @Failure 400 {object} errors.APIError
// @Failure 503 {object} errors.APIError
// @Router /weather/refresh [post]
// @Security BearerAuth
func (h *WeatherHandlers) Refresh(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	user := middleware.GetUserContext(r)

	sample, err := h.weather.FetchAndStoreForUser(r.Context(), user.ID)
	if err != nil {
		respondWithServiceError(w, requestID, err)
		return
	}

	respondWithJSON(w, http.StatusOK, sample)
}
