package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dakshpokar/UnifiedWebInsights/internal/adapters/repository"
	"github.com/dakshpokar/UnifiedWebInsights/internal/domain/model"
)

// dimensionResponseKey maps a dimension to the field its result appears
// under in responses.
var dimensionResponseKey = map[model.Dimension]string{
	model.DimensionSEO:           "seoAnalysis",
	model.DimensionMobile:        "mobileAnalysis",
	model.DimensionPerformance:   "performanceAnalysis",
	model.DimensionAccessibility: "accessibilityAnalysis",
	model.DimensionSynthesis:     "llmAnalysis",
}

// dimensionPendingMessage preserves the per-dimension polling messages.
var dimensionPendingMessage = map[model.Dimension]string{
	model.DimensionSEO:           "SEO analysis is not yet complete",
	model.DimensionMobile:        "Mobile friendliness analysis is not yet complete",
	model.DimensionPerformance:   "Performance analysis is not yet complete",
	model.DimensionAccessibility: "Accessibility analysis is not yet complete",
	model.DimensionSynthesis:     "LLM-based improvement analysis is not yet complete",
}

// dimensionHandler builds the GET handler that polls one dimension's
// result: 404 for an unknown id, 202 while pending, 200 with the result.
func (s *Server) dimensionHandler(dim model.Dimension) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("evaluationID")

		ev, err := s.deps.Evaluation(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Evaluation not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if !ev.HasResult(dim) {
			c.JSON(http.StatusAccepted, gin.H{
				"status":  "pending",
				"message": dimensionPendingMessage[dim],
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":                  "success",
			"evaluationId":            id,
			dimensionResponseKey[dim]: ev.Result(dim),
		})
	}
}
