package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	matching "github.com/collabhub/project-match/internal/matching/domain"
	"github.com/collabhub/project-match/internal/users"
)

const (
	CtxFirebaseUID = "firebase_uid"
	CtxUserDBID    = "user_db_id"
	CtxUsername    = "username"
	CtxEmail       = "email"
	CtxAnonymous   = "anonymous"

	demoUID = "demo-user"
)

// UserEnsurer is satisfied by *users.Repo.
type UserEnsurer interface {
	EnsureUser(ctx context.Context, u users.UpsertUser) (users.User, error)
}

// WithUser makes sure the caller exists in the users table and stores its
// identity in the Gin context. A uid set by VerifyToken takes precedence
// over the X-User-Id header. Callers with neither share the demo user.
func WithUser(userRepo UserEnsurer) gin.HandlerFunc {
	return func(c *gin.Context) {
		fuid := FirebaseUID(c)
		if fuid == "" {
			fuid = strings.TrimSpace(c.GetHeader("X-User-Id"))
		}
		anonymous := fuid == ""
		if anonymous {
			fuid = demoUID
		}

		email := c.GetString(CtxEmail)
		if email == "" {
			email = c.GetHeader("X-User-Email")
		}

		u, err := userRepo.EnsureUser(c.Request.Context(), users.UpsertUser{
			FirebaseUID: fuid,
			Email:       email,
			DisplayName: c.GetHeader("X-User-Name"),
			Username:    strings.TrimSpace(c.GetHeader("X-User-Username")),
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
			c.Abort()
			return
		}

		c.Set(CtxFirebaseUID, fuid)
		c.Set(CtxUserDBID, u.ID)
		c.Set(CtxUsername, u.Username)
		c.Set(CtxAnonymous, anonymous)
		c.Next()
	}
}

// FirebaseUID extracts the Firebase UID from the Gin context
func FirebaseUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}

func UserDBID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUserDBID))
}

func Username(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUsername))
}

// Anonymous reports whether the caller fell back to the demo user.
func Anonymous(c *gin.Context) bool {
	return c.GetBool(CtxAnonymous)
}

// Creator returns the caller as a project creator identity. Anonymous
// callers have no identity, so nothing is excluded as their own.
func Creator(c *gin.Context) matching.Creator {
	if Anonymous(c) {
		return matching.Creator{}
	}
	return matching.Creator{
		UserID:    UserDBID(c),
		Username:  Username(c),
		CreatorID: FirebaseUID(c),
	}
}
