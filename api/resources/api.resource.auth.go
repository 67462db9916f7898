// FilePath: api/resources/api.resource.auth.go
package resources

import (
	"encoding/json"
	"net/http"

	nuts "github.com/vaudience/go-nuts"

	"github.com/verdantlabs/gardenhub/api/middleware"
	"github.com/verdantlabs/gardenhub/internal/errors"
	"github.com/verdantlabs/gardenhub/internal/gardenservice"
	"github.com/verdantlabs/gardenhub/internal/models"
)

// AuthHandlers encapsulates registration and login
type AuthHandlers struct {
	gardenservice *gardenservice.GardenService
	auth          *middleware.JWTMiddleware
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// @Summary Register a new account
// @Description Create a user account and return an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param account body registerRequest true "Account details"
// @Success 201 {object} tokenResponse
// @Failure 400 {object} errors.APIError
// @Failure 409 {object} errors.APIError
// @Router /auth/register [post]
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}
	if err := validate.Struct(req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid registration details", err).WithRequestID(requestID))
		return
	}

	user, err := h.gardenservice.RegisterUser(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		respondWithServiceError(w, requestID, err)
		return
	}

	token, err := h.auth.GenerateToken(user)
	if err != nil {
		respondWithError(w, errors.NewInternalError("failed to issue token", err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusCreated, tokenResponse{Token: token, User: user})
}

// @Summary Log in
// @Description Verify credentials and return an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body loginRequest true "Credentials"
// @Success 200 {object} tokenResponse
// @Failure 401 {object} errors.APIError
// @Router /auth/login [post]
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}
	if err := validate.Struct(req); err != nil {
		respondWithError(w, errors.NewValidationError("username and password are required", err).WithRequestID(requestID))
		return
	}

	user, err := h.gardenservice.AuthenticateUser(r.Context(), req.Username, req.Password)
	if err != nil {
		respondWithServiceError(w, requestID, err)
		return
	}

	token, err := h.auth.GenerateToken(user)
	if err != nil {
		respondWithError(w, errors.NewInternalError("failed to issue token", err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, tokenResponse{Token: token, User: user})
}
