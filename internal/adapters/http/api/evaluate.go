package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// evaluateRequest mirrors the submission schema for POST /api/evaluate.
type evaluateRequest struct {
	URL    string `json:"url"`
	UserID string `json:"userId"`
}

func (r evaluateRequest) validate() error {
	if strings.TrimSpace(r.URL) == "" {
		return fmt.Errorf("%w: URL is required", ErrBadRequest)
	}
	parsed, err := url.Parse(r.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("%w: URL must be absolute with scheme and host", ErrBadRequest)
	}
	return nil
}

// handleEvaluate accepts a URL, creates the evaluation record, and
// acknowledges immediately; the pipeline runs asynchronously.
func (s *Server) handleEvaluate(c *gin.Context) {
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := req.validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ev, err := s.deps.Submit(c.Request.Context(), req.URL, req.UserID)
	if err != nil {
		if errors.Is(err, ErrBackpressure) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service is at capacity, retry later"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       "success",
		"message":      "Evaluation started",
		"evaluationId": ev.ID,
		"url":          ev.URL,
		"timestamp":    ev.CreatedAt.Format(time.RFC3339),
	})
}
