// FilePath: api/resources/api.resource.gardens.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	nuts "github.com/vaudience/go-nuts"

	"github.com/verdantlabs/gardenhub/api/middleware"
	"github.com/verdantlabs/gardenhub/internal/errors"
	"github.com/verdantlabs/gardenhub/internal/gardenservice"
)

// GardenHandlers encapsulates the garden-related HTTP handlers
type GardenHandlers struct {
	gardenservice *gardenservice.GardenService
}

type gardenRequest struct {
	XSize     int     `json:"x_size" validate:"required,gt=0"`
	YSize     int     `json:"y_size" validate:"required,gt=0"`
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

type placePlantRequest struct {
	PlantID   string `json:"plant_id" validate:"required"`
	PositionX int    `json:"position_x" validate:"gte=0"`
	PositionY int    `json:"position_y" validate:"gte=0"`
}

type movePlantRequest struct {
	PositionX int `json:"position_x" validate:"gte=0"`
	PositionY int `json:"position_y" validate:"gte=0"`
}

type wateringRequest struct {
	SoilMoisture *float64 `json:"soil_moisture,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// @Summary Create the user's garden
// @Description Create the authenticated user's garden grid
// @Tags gardens
// @Accept json
// @Produce json
// @Param garden body gardenRequest true "Garden dimensions and location"
// @Success 201 {object} models.Garden
// @Failure 400 {object} errors.APIError
// @Failure 409 {object} errors.APIError
// @Router /garden [post]
// @Security BearerAuth
func (h *GardenHandlers) CreateGarden(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	user := middleware.GetUserContext(r)

	var req gardenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}
	if err := validate.Struct(req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid garden parameters", err).WithRequestID(requestID))
		return
	}

	garden, err := h.gardenservice.CreateGarden(r.Context(), user.ID, req.XSize, req.YSize, req.Latitude, req.Longitude)
	if err != nil {
		respondWithServiceError(w, requestID, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, garden)
}

// @Summary Get the user's garden
// @Description Get the authenticated user's garden with all placed plants
// @Tags gardens
// @Produce json
// @Success 200 {object} models.Garden
// @Failure 404 {object} errors.APIError
// @Router /garden [get]
// @Security BearerAuth
func (h *GardenHandlers) GetGarden(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	user := middleware.GetUserContext(r)

	garden, err := h.gardenservice.GetUserGarden(r.Context(), user.ID)
	if err != nil {
		respondWithServiceError(w, requestID, err)
		return
	}

	respondWithJSON(w, http.StatusOK, garden)
}

// @Summary Resize the user's garden
// @Description Change the grid dimensions; plants outside the new bounds are removed
// @Tags gardens
// @Accept json
// @Produce json
// @Param garden body gardenRequest true "New dimensions and location"
// @Success 200 {object} models.Garden
// @Failure 400 {object} errors.APIError
// @Router /garden [put]
// @Security BearerAuth
func (h *GardenHandlers) ResizeGarden(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	user := middleware.GetUserContext(r)

	var req gardenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}
	if err := validate.Struct(req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid garden parameters", err).WithRequestID(requestID))
		return
	}

	garden, err := h.gardenservice.ResizeGarden(r.Context(), user.ID, req.XSize, req.YSize, req.Latitude, req.Longitude)
	if err != nil {
		respondWithServiceError(w, requestID, err)
		return
	}

	respondWithJSON(w, http.StatusOK, garden)
}

// @Summary Place a plant in the garden
// @Description Place a catalog plant at a free grid position
// @Tags gardens
// @Accept json
// @Produce json
// @Param placement body placePlantRequest true "Plant and position"
// @Success 201 {object} models.GardenPlant
// @Failure 400 {object} errors.APIError
// @Failure 409 {object} errors.APIError
// @Router /garden/plants [post]
// @Security BearerAuth
func (h *GardenHandlers) PlacePlant(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	user := middleware.GetUserContext(r)

	var req placePlantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}
	if err := validate.Struct(req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid placement parameters", err).WithRequestID(requestID))
		return
	}

	gp, err := h.gardenservice.AddPlantToGarden(r.Context(), user.ID, req.PlantID, req.PositionX, req.PositionY)
	if err != nil {
		respondWithServiceError(w, requestID, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, gp)
}

// @Summary Move a garden plant
// @Description Reposition a placed plant within the grid
// @Tags gardens
// @Accept json
// @Produce json
// @Param id path string true "Garden plant ID"
// @Param position body movePlantRequest true "New position"
// @Success 200 {object} models.GardenPlant
// @Failure 400 {object} errors.APIError
// @Failure 409 {object} errors.APIError
// @Router /garden/plants/{id}/position [put]
// @Security BearerAuth
func (h *GardenHandlers) MovePlant(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)
	user := middleware.GetUserContext(r)

	var req movePlantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	gp, err := h.gardenservice.MoveGardenPlant(r.Context(), user.ID, id, req.PositionX, req.PositionY)
	if err != nil {
		respondWithServiceError(w, requestID, err)
		return
	}

	respondWithJSON(w, http.StatusOK, gp)
}

// @Summary Remove a garden plant
// @Description Remove a placed plant and its tracking state
// @Tags gardens
// @Produce json
// @Param id path string true "Garden plant ID"
// @Success 204 "No Content"
// @Failure 404 {object} errors.APIError
// @Router /garden/plants/{id} [delete]
// @Security BearerAuth
func (h *GardenHandlers) RemovePlant(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)
	user := middleware.GetUserContext(r)

	if err := h.gardenservice.RemovePlantFromGarden(r.Context(), user.ID, id); err != nil {
		respondWithServiceError(w, requestID, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary Record a watering event
// @Description Register a manual watering, optionally with a fresh soil moisture reading
// @Tags gardens
// @Accept json
// @Produce json
// @Param id path string true "Garden plant ID"
// @Param watering body wateringRequest true "Optional soil moisture reading"
// @Success 200 {object} models.GardenPlant
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /garden/plants/{id}/watering [post]
// @Security BearerAuth
func (h *GardenHandlers) RecordWatering(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)
	user := middleware.GetUserContext(r)

	var req wateringRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
			return
		}
	}

	gp, err := h.gardenservice.RecordWatering(r.Context(), user.ID, id, req.SoilMoisture)
	if err != nil {
		respondWithServiceError(w, requestID, err)
		return
	}

	respondWithJSON(w, http.StatusOK, gp)
}

// @Summary Re-assess a garden plant
// @Description Re-run the status evaluation for one plant immediately
// @Tags gardens
// @Produce json
// @Param id path string true "Garden plant ID"
// @Success 200 {object} models.StatusTransition
// @Failure 404 {object} errors.APIError
// @Router /garden/plants/{id}/status [post]
// @Security BearerAuth
func (h *GardenHandlers) AssessPlant(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)
	user := middleware.GetUserContext(r)

	transition, err := h.gardenservice.AssessPlantByID(r.Context(), user.ID, id)
	if err != nil {
		respondWithServiceError(w, requestID, err)
		return
	}

	respondWithJSON(w, http.StatusOK, transition)
}
