package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collabhub/project-match/internal/auth"
	"github.com/collabhub/project-match/internal/projects/domain"
)

type fakeService struct {
	Service

	limit   int
	deleted string
}

func (f *fakeService) Create(_ context.Context, userDBID string, in domain.CreateInput) (*domain.Project, error) {
	in, err := in.Normalize()
	if err != nil {
		return nil, err
	}
	return &domain.Project{PublicID: "collab-11111-2222", Name: in.Name, UserID: userDBID}, nil
}

func (f *fakeService) Get(_ context.Context, publicID string) (*domain.Project, error) {
	if publicID != "collab-11111-2222" {
		return nil, domain.ErrNotFound
	}
	return &domain.Project{PublicID: publicID}, nil
}

func (f *fakeService) List(_ context.Context, limit int) ([]domain.Project, error) {
	f.limit = limit
	return []domain.Project{}, nil
}

func (f *fakeService) Delete(_ context.Context, _, publicID string) (bool, error) {
	f.deleted = publicID
	return publicID == "collab-11111-2222", nil
}

func setup(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/api/v1/projects")
	g.Use(func(c *gin.Context) {
		c.Set(auth.CtxUserDBID, "u-1")
		c.Next()
	})
	New(svc).Register(g)
	return r
}

func TestCreateProject(t *testing.T) {
	r := setup(&fakeService{})

	t.Run("created", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/projects", strings.NewReader(`{"name":"AI Chatbot","country":"USA"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		var body struct {
			OK      bool           `json:"ok"`
			Project domain.Project `json:"project"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.True(t, body.OK)
		assert.Equal(t, "u-1", body.Project.UserID)
	})

	t.Run("missing name", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/projects", strings.NewReader(`{"name":"  "}`))
		r.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("bad json", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/projects", strings.NewReader(`{`)))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestListProjects_Limit(t *testing.T) {
	svc := &fakeService{}
	r := setup(svc)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/projects", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, defaultListLimit, svc.limit)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/projects?limit=100000", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, maxListLimit, svc.limit)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/projects?limit=abc", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetAndDeleteProject(t *testing.T) {
	svc := &fakeService{}
	r := setup(svc)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/projects/collab-11111-2222", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/projects/collab-00000-0000", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/v1/projects/collab-00000-0000", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "collab-00000-0000", svc.deleted)
}
