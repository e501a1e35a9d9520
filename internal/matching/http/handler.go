package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/collabhub/project-match/internal/auth"
	"github.com/collabhub/project-match/internal/logging"
	"github.com/collabhub/project-match/internal/matching/domain"
	"github.com/collabhub/project-match/internal/matching/service"
)

// Matcher scores a draft against the stored projects.
type Matcher interface {
	Match(ctx context.Context, d service.Draft, caller domain.Creator) ([]domain.MatchResult, error)
}

// MatchResponse is one entry of the ai-matching response.
type MatchResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Domain       string    `json:"domain"`
	Description  string    `json:"description"`
	Technologies string    `json:"technologies"`
	Creator      string    `json:"creator"`
	MatchScore   int       `json:"matchScore"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Handler struct {
	matcher Matcher
}

func New(matcher Matcher) *Handler {
	return &Handler{matcher: matcher}
}

// Register attaches the matching routes to the /api/v1 group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/ai-matching", h.aiMatching)
	rg.GET("/matching/metrics", h.metrics)
}

func (h *Handler) aiMatching(c *gin.Context) {
	var draft service.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "AI matching failed: invalid request body"})
		return
	}

	results, err := h.matcher.Match(c.Request.Context(), draft, auth.Creator(c))
	if err != nil {
		logger := logging.NewLogger(c.Request.Context())
		if errors.Is(err, domain.ErrInvalidDraft) {
			logger.LogWarnf("AIMatching", "rejected draft: %v", err)
		} else {
			logger.LogErrorf("AIMatching", "match failed: %v", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "AI matching failed: " + err.Error()})
		return
	}

	out := make([]MatchResponse, 0, len(results))
	for _, r := range results {
		out = append(out, MatchResponse{
			ID:           r.Project.ID,
			Title:        r.Project.Name,
			Domain:       r.Project.Domain,
			Description:  r.Project.Description,
			Technologies: r.Project.TechnologiesUsed,
			Creator:      r.Project.Creator.Username,
			MatchScore:   r.Score.Percentage(),
			CreatedAt:    r.Project.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) metrics(c *gin.Context) {
	c.JSON(http.StatusOK, service.GetMetrics().Snapshot())
}
