package video

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(r http.Handler, method, path string) (*httptest.ResponseRecorder, map[string]any) {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestHandler(t *testing.T) {
	f := newFixture(t)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(f.svc, nil).RegisterRoutes(r.Group("/api/v1"), nil)

	w, body := serve(r, http.MethodGet, "/api/v1/videos")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["videos"], 3)
	assert.Equal(t, float64(3), body["stats"].(map[string]any)["total_videos"])

	w, body = serve(r, http.MethodGet, "/api/v1/videos/"+f.newest.ID)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Alps", body["title"])

	w, _ = serve(r, http.MethodGet, "/api/v1/videos/"+f.draft.ID)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, body = serve(r, http.MethodPost, "/api/v1/videos/"+f.newest.ID+"/views")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(11), body["views"])
	assert.Equal(t, f.newest.ID, body["video_id"])

	w, body = serve(r, http.MethodGet, "/api/v1/videos/"+f.newest.ID+"/views")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(11), body["views"])

	w, _ = serve(r, http.MethodPost, "/api/v1/videos/"+f.draft.ID+"/views")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, body = serve(r, http.MethodGet, "/api/v1/videos/views")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body, 3)
}
