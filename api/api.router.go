// FilePath: api/api.router.go
package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/verdantlabs/gardenhub/api/middleware"
	"github.com/verdantlabs/gardenhub/api/resources"
	"github.com/verdantlabs/gardenhub/internal/config"
	"github.com/verdantlabs/gardenhub/internal/gardenservice"
	"github.com/verdantlabs/gardenhub/internal/weather"
)

type Router struct {
	router    *mux.Router
	auth      *middleware.JWTMiddleware
	resources *resources.Resources
}

func NewRouter(svc *gardenservice.GardenService, weatherSvc *weather.Service, authConfig config.AuthConfig) *Router {
	auth := middleware.NewJWTMiddleware(authConfig)
	r := &Router{
		router:    mux.NewRouter(),
		auth:      auth,
		resources: resources.NewResources(svc, weatherSvc, auth),
	}

	r.setupRoutes()
	return r
}

func (r *Router) Resources() *resources.Resources {
	return r.resources
}

// Use attaches middleware to every route, public ones included
func (r *Router) Use(mw ...mux.MiddlewareFunc) {
	r.router.Use(mw...)
}

func (r *Router) setupRoutes() {
	// API version prefix
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/health", r.serveHealth).Methods(http.MethodGet)
	api.HandleFunc("/metrics", r.serveMetrics).Methods(http.MethodGet)
	api.HandleFunc("/auth/register", r.resources.Auth.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", r.resources.Auth.Login).Methods(http.MethodPost)

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(r.auth.Authenticate)

	// Plant catalog
	plants := protected.PathPrefix("/plants").Subrouter()
	plants.HandleFunc("", r.resources.Plants.ListPlants).Methods(http.MethodGet)
	plants.HandleFunc("", r.resources.Plants.CreatePlant).Methods(http.MethodPost)
	plants.HandleFunc("/{id}", r.resources.Plants.GetPlant).Methods(http.MethodGet)
	plants.HandleFunc("/{id}", r.resources.Plants.UpdatePlant).Methods(http.MethodPut)
	plants.HandleFunc("/{id}", r.resources.Plants.DeletePlant).Methods(http.MethodDelete)

	// Garden
	garden := protected.PathPrefix("/garden").Subrouter()
	garden.HandleFunc("", r.resources.Gardens.GetGarden).Methods(http.MethodGet)
	garden.HandleFunc("", r.resources.Gardens.CreateGarden).Methods(http.MethodPost)
	garden.HandleFunc("", r.resources.Gardens.ResizeGarden).Methods(http.MethodPut)
	garden.HandleFunc("/plants", r.resources.Gardens.PlacePlant).Methods(http.MethodPost)
	garden.HandleFunc("/plants/{id}", r.resources.Gardens.RemovePlant).Methods(http.MethodDelete)
	garden.HandleFunc("/plants/{id}/position", r.resources.Gardens.MovePlant).Methods(http.MethodPut)
	garden.HandleFunc("/plants/{id}/watering", r.resources.Gardens.RecordWatering).Methods(http.MethodPost)
	garden.HandleFunc("/plants/{id}/status", r.resources.Gardens.AssessPlant).Methods(http.MethodPost)

	// Weather
	weatherRoutes := protected.PathPrefix("/weather").Subrouter()
	weatherRoutes.HandleFunc("", r.resources.Weather.GetLatest).Methods(http.MethodGet)
	weatherRoutes.HandleFunc("/refresh", r.resources.Weather.Refresh).Methods(http.MethodPost)
}

// Health and metrics handlers are wired by the server after router
// creation, so they are resolved per request.

func (r *Router) serveHealth(w http.ResponseWriter, req *http.Request) {
	if h := r.resources.HealthCheck; h != nil {
		h(w, req)
		return
	}
	http.NotFound(w, req)
}

func (r *Router) serveMetrics(w http.ResponseWriter, req *http.Request) {
	if h := r.resources.Metrics; h != nil {
		h(w, req)
		return
	}
	http.NotFound(w, req)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
