package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dakshpokar/UnifiedWebInsights/internal/adapters/repository"
	"github.com/dakshpokar/UnifiedWebInsights/internal/domain/model"
)

// handleFullReport returns all five results at once, or a 202 listing
// exactly which result keys are still missing.
func (s *Server) handleFullReport(c *gin.Context) {
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

	if pending := ev.PendingDimensions(); len(pending) > 0 {
		completed := make([]string, 0, len(model.AllDimensions()))
		for _, d := range ev.CompletedDimensions() {
			completed = append(completed, d.ResultKey())
		}
		missing := make([]string, 0, len(pending))
		names := make([]string, 0, len(pending))
		for _, d := range pending {
			missing = append(missing, d.ResultKey())
			names = append(names, strings.TrimSuffix(d.ResultKey(), "_analysis"))
		}

		c.JSON(http.StatusAccepted, gin.H{
			"status":            "pending",
			"message":           "Some analyses are not yet complete: " + strings.Join(names, ", "),
			"completedAnalyses": completed,
			"pendingAnalyses":   missing,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":                "success",
		"evaluationId":          id,
		"url":                   ev.URL,
		"timestamp":             ev.CreatedAt.Format(time.RFC3339),
		"analysisComplete":      true,
		"seoAnalysis":           ev.SEO,
		"mobileAnalysis":        ev.Mobile,
		"performanceAnalysis":   ev.Performance,
		"accessibilityAnalysis": ev.Accessibility,
		"llmAnalysis":           ev.Synthesis,
	})
}
