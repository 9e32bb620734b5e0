// Package api declares the HTTP surface of the evaluation service.
package api

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/dakshpokar/UnifiedWebInsights/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle
// keeps the handler layer loosely coupled to the application service.
type Dependencies interface {
	// Submit creates an evaluation record and schedules its pipeline.
	// Returns ErrBackpressure (wrapped) when the queue refuses the job.
	Submit(ctx context.Context, url, userID string) (*model.Evaluation, error)

	// Evaluation returns the record for an id, or a not-found error.
	Evaluation(ctx context.Context, id string) (*model.Evaluation, error)

	// Stats reports service health counters.
	Stats(ctx context.Context) Stats
}

// Stats is the read shape returned by the stats endpoint.
type Stats struct {
	Evaluations int `json:"evaluations"`
	QueueDepth  int `json:"queueDepth"`
	Workers     int `json:"workers"`
}

// Server wires HTTP routes for the business API.
type Server struct {
	deps Dependencies
}

// NewServer creates a new API server.
func NewServer(deps Dependencies) *Server {
	return &Server{deps: deps}
}

// Router builds the gin engine with all routes attached.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), MetricsMiddleware())

	r.GET("/healthz", s.handleHealth)
	r.GET("/metrics", s.handleMetrics)
	r.GET("/stats", s.handleStats)

	apiGroup := r.Group("/api")
	{
		apiGroup.POST("/evaluate", s.handleEvaluate)
		apiGroup.GET("/seo/:evaluationID", s.dimensionHandler(model.DimensionSEO))
		apiGroup.GET("/mobile/:evaluationID", s.dimensionHandler(model.DimensionMobile))
		apiGroup.GET("/performance/:evaluationID", s.dimensionHandler(model.DimensionPerformance))
		apiGroup.GET("/accessibility/:evaluationID", s.dimensionHandler(model.DimensionAccessibility))
		apiGroup.GET("/llm-improvements/:evaluationID", s.dimensionHandler(model.DimensionSynthesis))
		apiGroup.GET("/full-report/:evaluationID", s.handleFullReport)
	}

	return r
}
