package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/collabhub/project-match/internal/auth"
	"github.com/collabhub/project-match/internal/notifications/domain"
)

// Service is the notification API the handlers call.
type Service interface {
	List(ctx context.Context, userID string) ([]domain.Notification, error)
	ListByType(ctx context.Context, userID, typ string) ([]domain.Notification, error)
	Unread(ctx context.Context, userID string) ([]domain.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, userID, id string) error
}

// Handler bundles the dependencies for notification endpoints.
type Handler struct {
	svc Service
}

func New(svc Service) *Handler {
	return &Handler{svc: svc}
}

// Register attaches notification routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.GET("/unread", h.unread)
	rg.GET("/unread-count", h.unreadCount)
	rg.PUT("/read-all", h.markAllRead)
	rg.PUT("/:id/read", h.markRead)
	rg.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	var (
		items []domain.Notification
		err   error
	)
	if typ := strings.TrimSpace(c.Query("type")); typ != "" {
		items, err = h.svc.ListByType(c.Request.Context(), auth.UserDBID(c), strings.ToUpper(typ))
	} else {
		items, err = h.svc.List(c.Request.Context(), auth.UserDBID(c))
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) unread(c *gin.Context) {
	items, err := h.svc.Unread(c.Request.Context(), auth.UserDBID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) unreadCount(c *gin.Context) {
	n, err := h.svc.UnreadCount(c.Request.Context(), auth.UserDBID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}

func (h *Handler) markRead(c *gin.Context) {
	err := h.svc.MarkRead(c.Request.Context(), auth.UserDBID(c), c.Param("id"))
	writeMutation(c, err)
}

func (h *Handler) markAllRead(c *gin.Context) {
	n, err := h.svc.MarkAllRead(c.Request.Context(), auth.UserDBID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}

func (h *Handler) delete(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), auth.UserDBID(c), c.Param("id"))
	writeMutation(c, err)
}

func writeMutation(c *gin.Context, err error) {
	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
