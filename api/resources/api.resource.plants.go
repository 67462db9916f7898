// FilePath: api/resources/api.resource.plants.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	nuts "github.com/vaudience/go-nuts"

	"github.com/verdantlabs/gardenhub/internal/errors"
	"github.com/verdantlabs/gardenhub/internal/gardenservice"
	"github.com/verdantlabs/gardenhub/internal/models"
)

// PlantHandlers encapsulates the catalog-related HTTP handlers
type PlantHandlers struct {
	gardenservice *gardenservice.GardenService
}

// @Summary Create a catalog plant
// @Description Add a new species with its care thresholds to the catalog
// @Tags plants
// @Accept json
// @Produce json
// @Param plant body models.Plant true "Plant details"
// @Success 201 {object} models.Plant
// @Failure 400 {object} errors.APIError
// @Failure 401 {object} errors.APIError
// @Router /plants [post]
// @Security BearerAuth
func (h *PlantHandlers) CreatePlant(w http.ResponseWriter, r *http.Request) {
	var plant models.Plant
	requestID := nuts.NID("req", 12)

	if err := json.NewDecoder(r.Body).Decode(&plant); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.gardenservice.CreatePlant(r.Context(), &plant); err != nil {
		respondWithServiceError(w, requestID, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, plant)
}

// @Summary Get a catalog plant by ID
// @Description Get detailed information about a species
// @Tags plants
// @Produce json
// @Param id path string true "Plant ID"
// @Success 200 {object} models.Plant
// @Failure 404 {object} errors.APIError
// @Router /plants/{id} [get]
func (h *PlantHandlers) GetPlant(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	plant, err := h.gardenservice.GetPlant(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, requestID, err)
		return
	}

	respondWithJSON(w, http.StatusOK, plant)
}

// @Summary List catalog plants
// @Description Get a paginated, filterable catalog listing
// @Tags plants
// @Produce json
// @Param name query string false "Filter by name substring"
// @Param sunlight query string false "Filter by sunlight requirement"
// @Param soil_type query string false "Filter by soil type"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {array} models.Plant
// @Router /plants [get]
func (h *PlantHandlers) ListPlants(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	offset, limit := getPaginationParams(r)

	var filters models.PlantFilters
	if err := queryDecoder.Decode(&filters, r.URL.Query()); err != nil {
		respondWithError(w, errors.NewValidationError("invalid filter parameters", err).WithRequestID(requestID))
		return
	}

	plants, err := h.gardenservice.ListPlants(r.Context(), filters, offset, limit)
	if err != nil {
		respondWithServiceError(w, requestID, err)
		return
	}

	respondWithJSON(w, http.StatusOK, plants)
}

// @Summary Update a catalog plant
// @Description Update a species' details and care thresholds
// @Tags plants
// @Accept json
// @Produce json
// @Param id path string true "Plant ID"
// @Param plant body models.Plant true "Updated plant details"
// @Success 200 {object} models.Plant
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /plants/{id} [put]
// @Security BearerAuth
func (h *PlantHandlers) UpdatePlant(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	var plant models.Plant
	if err := json.NewDecoder(r.Body).Decode(&plant); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	plant.ID = id
	if err := h.gardenservice.UpdatePlant(r.Context(), &plant); err != nil {
		respondWithServiceError(w, requestID, err)
		return
	}

	respondWithJSON(w, http.StatusOK, plant)
}

// @Summary Delete a catalog plant
// @Description Remove a species from the catalog
// @Tags plants
// @Produce json
// @Param id path string true "Plant ID"
// @Success 204 "No Content"
// @Failure 404 {object} errors.APIError
// @Router /plants/{id} [delete]
// @Security BearerAuth
func (h *PlantHandlers) DeletePlant(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	if err := h.gardenservice.DeletePlant(r.Context(), id); err != nil {
		respondWithServiceError(w, requestID, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
