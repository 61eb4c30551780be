package views

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRouter(t *testing.T, store Store, writeMW gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(NewService(store, zap.NewNop())).RegisterRoutes(r.Group("/api/v1"), writeMW)
	return r
}

func do(r http.Handler, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHandler_IncrementAndRead(t *testing.T) {
	r := newRouter(t, NewFileStore(filepath.Join(t.TempDir(), "views.json")), nil)

	w := do(r, http.MethodPost, "/api/v1/views/frontend/post-a")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"key": "frontend/post-a", "views": float64(1)}, decode(t, w))

	w = do(r, http.MethodPost, "/api/v1/views/frontend/post-a")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decode(t, w)["views"])

	w = do(r, http.MethodGet, "/api/v1/views/frontend/post-a")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decode(t, w)["views"])

	w = do(r, http.MethodGet, "/api/v1/views/frontend/never")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decode(t, w)["views"])

	w = do(r, http.MethodGet, "/api/v1/views")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"frontend/post-a": float64(2)}, decode(t, w))
}

func TestHandler_InvalidKey(t *testing.T) {
	r := newRouter(t, NewFileStore(filepath.Join(t.TempDir(), "views.json")), nil)

	w := do(r, http.MethodPost, "/api/v1/views/")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, float64(0), decode(t, w)["ok"])
}

func TestHandler_StoreFailures(t *testing.T) {
	r := newRouter(t, brokenStore{}, nil)

	w := do(r, http.MethodGet, "/api/v1/views/a/b")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = do(r, http.MethodGet, "/api/v1/views")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = do(r, http.MethodPost, "/api/v1/views/a/b")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, float64(http.StatusInternalServerError), decode(t, w)["code"])
}

func TestHandler_WriteMiddlewareOnlyGuardsIncrements(t *testing.T) {
	deny := func(c *gin.Context) { c.AbortWithStatus(http.StatusTooManyRequests) }
	r := newRouter(t, NewFileStore(filepath.Join(t.TempDir(), "views.json")), deny)

	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodPost, "/api/v1/views/a/b").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/v1/views/a/b").Code)
}
