package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Yi-lne/Hospital-Selection-System-sub001/internal/analytics"
	"github.com/Yi-lne/Hospital-Selection-System-sub001/internal/criteria"
	"github.com/Yi-lne/Hospital-Selection-System-sub001/internal/suggest"
	"github.com/Yi-lne/Hospital-Selection-System-sub001/services"
)

// API holds dependencies for API handlers, primarily the filter service and normalizer.
type API struct {
	filterer   services.Filterer
	normalizer *criteria.Normalizer
	store      services.CatalogStore
	suggester  *suggest.Service
	analytics  *analytics.Service
}

// NewAPI creates a new API handler structure.
func NewAPI(filterer services.Filterer, normalizer *criteria.Normalizer, store services.CatalogStore) *API {
	return &API{
		filterer:   filterer,
		normalizer: normalizer,
		store:      store,
		suggester:  suggest.NewService(store),
		analytics:  analytics.NewService(),
	}
}

// SetupRoutes defines all the API routes for the catalog engine.
func SetupRoutes(router *gin.Engine, filterer services.Filterer, normalizer *criteria.Normalizer, store services.CatalogStore) {
	apiHandler := NewAPI(filterer, normalizer, store)

	// Health check route
	router.GET("/health", apiHandler.HealthCheckHandler)

	// Analytics route
	router.GET("/analytics", apiHandler.GetAnalyticsHandler)

	apiRoutes := router.Group("/api")
	{
		apiRoutes.POST("/filter", apiHandler.FilterHandler)  // Structured criteria filtering
		apiRoutes.POST("/query", apiHandler.AIQueryHandler)  // Natural-language query filtering
		apiRoutes.GET("/hospitals/:id", apiHandler.GetHospitalHandler)
		apiRoutes.GET("/doctors/:id", apiHandler.GetDoctorHandler)
		apiRoutes.GET("/suggestions", apiHandler.SuggestionsHandler)
	}
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "hospital-catalog-engine",
		"timestamp": fmt.Sprintf("%d", time.Now().Unix()),
	})
}

// GetAnalyticsHandler handles the request to get analytics data
func (api *API) GetAnalyticsHandler(c *gin.Context) {
	summary := api.analytics.Summary()
	c.JSON(http.StatusOK, summary)
}
