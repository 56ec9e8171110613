package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/baxirbajja/CMCEspace-api/internal/application"
	"github.com/baxirbajja/CMCEspace-api/internal/domain"
	"github.com/baxirbajja/CMCEspace-api/internal/domain/reservation"
	"github.com/baxirbajja/CMCEspace-api/internal/domain/space"
	"github.com/baxirbajja/CMCEspace-api/internal/handler"
	"github.com/baxirbajja/CMCEspace-api/internal/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubSpaceRepo serves a fixed set of spaces.
type stubSpaceRepo struct {
	spaces map[uuid.UUID]*space.Space
}

func (r *stubSpaceRepo) FindByID(_ context.Context, id uuid.UUID) (*space.Space, error) {
	sp, ok := r.spaces[id]
	if !ok {
		return nil, domain.NewNotFoundError("Espace", id.String())
	}
	return sp, nil
}

func (r *stubSpaceRepo) FindByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*space.Space, error) {
	return r.spaces, nil
}

func (r *stubSpaceRepo) ListAll(context.Context) ([]*space.Space, error) {
	all := make([]*space.Space, 0, len(r.spaces))
	for _, sp := range r.spaces {
		all = append(all, sp)
	}
	return all, nil
}

func (r *stubSpaceRepo) Save(_ context.Context, sp *space.Space) error {
	r.spaces[sp.ID()] = sp
	return nil
}

func (r *stubSpaceRepo) Update(ctx context.Context, sp *space.Space) error { return r.Save(ctx, sp) }

func (r *stubSpaceRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.spaces, id)
	return nil
}

// stubReservationRepo answers zero for every count; other methods are unused.
type stubReservationRepo struct {
	reservation.Repository
}

func (stubReservationRepo) CountBySpace(context.Context, uuid.UUID) (int64, error) { return 0, nil }

func passthrough(c *gin.Context) { c.Next() }

func newSpaceRouter(t *testing.T, spaces ...*space.Space) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := &stubSpaceRepo{spaces: make(map[uuid.UUID]*space.Space)}
	for _, sp := range spaces {
		repo.spaces[sp.ID()] = sp
	}

	service := application.NewSpaceService(repo, stubReservationRepo{}, zap.NewNop())
	h := handler.NewSpaceHandler(service, zap.NewNop())

	router := gin.New()
	h.RegisterRoutes(router.Group("/api"), passthrough, passthrough)
	return router
}

func TestListSpaces_EnvelopeWithCount(t *testing.T) {
	sp, err := space.New("Salle de réunion", "Salle équipée", 20, "", "")
	require.NoError(t, err)

	router := newSpaceRouter(t, sp)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/spaces", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	require.NotNil(t, envelope.Count)
	assert.Equal(t, 1, *envelope.Count)
}

func TestGetSpace_MalformedIDAnswers400(t *testing.T) {
	router := newSpaceRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/spaces/not-a-uuid", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	assert.Equal(t, "Format d'identifiant invalide", envelope.Error)
}

func TestGetSpace_UnknownIDAnswers404(t *testing.T) {
	router := newSpaceRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/spaces/"+uuid.NewString(), nil))

	require.Equal(t, http.StatusNotFound, rec.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "Espace non trouvé", envelope.Error)
}

func TestCreateSpace_ValidationAnswers400(t *testing.T) {
	router := newSpaceRouter(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/spaces", strings.NewReader(`{"capacity": 10}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Contains(t, envelope.Error, "Veuillez ajouter un titre")
}
