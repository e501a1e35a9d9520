package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	httpapi "github.com/collabhub/project-match/internal/api/http"
	"github.com/collabhub/project-match/internal/api/http/middleware"
	"github.com/collabhub/project-match/internal/auth"
	matchhttp "github.com/collabhub/project-match/internal/matching/http"
	notifhttp "github.com/collabhub/project-match/internal/notifications/http"
	projecthttp "github.com/collabhub/project-match/internal/projects/http"
	projectsvc "github.com/collabhub/project-match/internal/projects/service"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	CORSOrigins []string

	Users         auth.UserEnsurer
	Projects      *projectsvc.ProjectService
	Matcher       matchhttp.Matcher
	Notifications notifhttp.Service

	// Verifier enables Firebase ID-token checks when non-nil.
	Verifier auth.TokenVerifier

	DB, Redis, NATS httpapi.Pinger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-Id", "X-User-Id", "X-User-Email", "X-User-Name", "X-User-Username"},
		ExposeHeaders:    []string{middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis, dep.NATS)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	if dep.Verifier != nil {
		api.Use(auth.VerifyToken(dep.Verifier))
	}
	api.Use(auth.WithUser(dep.Users))

	projecthttp.New(dep.Projects).Register(api.Group("/projects"))
	notifhttp.New(dep.Notifications).Register(api.Group("/notifications"))
	matchhttp.New(dep.Matcher).Register(api)

	return r
}
