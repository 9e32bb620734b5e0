package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dakshpokar/UnifiedWebInsights/pkg/metrics"
)

// handleHealth handles GET /healthz requests.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleMetrics serves Prometheus metrics from the custom registry.
func (s *Server) handleMetrics(c *gin.Context) {
	promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}).ServeHTTP(c.Writer, c.Request)
}

// handleStats handles GET /stats requests.
func (s *Server) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.deps.Stats(c.Request.Context()))
}
