package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/qiushui/site-core/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(t *testing.T, extra string) *config.AppConfig {
	t.Helper()
	dir := t.TempDir()
	blog := filepath.Join(dir, "blog", "frontend")
	require.NoError(t, os.MkdirAll(blog, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(blog, "post-a.mdx"), []byte("---\ntitle: A\ndate: 2024-03-01\n---\nhi"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(blog, "post-b.mdx"), []byte("---\ntitle: B\ndate: 2024-02-01\n---\nhi"), 0o644))

	body := "env: production\n" +
		"content:\n  root: " + filepath.Join(dir, "blog") + "\n" +
		"views:\n  file_path: " + filepath.Join(dir, "views.json") + "\n" + extra
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	return cfg
}

func request(a *App, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.Router().ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestApp_FileBackend(t *testing.T) {
	a, err := New(zap.NewNop(), testConfig(t, ""))
	require.NoError(t, err)
	defer a.Shutdown()

	w := request(a, http.MethodPost, "/api/v1/views/frontend/post-a")
	require.Equal(t, http.StatusOK, w.Code)
	w = request(a, http.MethodPost, "/api/v1/views/frontend/post-a")
	require.Equal(t, http.StatusOK, w.Code)

	w = request(a, http.MethodGet, "/api/v1/content/frontend")
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Data []struct {
			Slug  string `json:"slug"`
			Views int64  `json:"views"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Data, 2)
	assert.Equal(t, "post-a", list.Data[0].Slug)
	assert.Equal(t, int64(2), list.Data[0].Views)

	w = request(a, http.MethodGet, "/api/v1/health")
	assert.Equal(t, http.StatusOK, w.Code)

	w = request(a, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "site_view_store_ops_total"))

	w = request(a, http.MethodGet, "/api/v1/videos")
	assert.Equal(t, http.StatusNotFound, w.Code, "video catalog needs a database")

	w = request(a, http.MethodGet, "/api/v1/aggregate")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestApp_DatabaseAndRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	dbPath := filepath.Join(t.TempDir(), "site.db")
	cfg := testConfig(t, "  backend: database\n  rate_limit: 1\n"+
		"database:\n  driver: sqlite\n  path: "+dbPath+"\n"+
		"redis:\n  url: redis://"+mr.Addr()+"/0\n")

	a, err := New(zap.NewNop(), cfg)
	require.NoError(t, err)
	defer a.Shutdown()

	assert.Equal(t, http.StatusOK, request(a, http.MethodPost, "/api/v1/views/frontend/post-b").Code)
	assert.Equal(t, http.StatusTooManyRequests, request(a, http.MethodPost, "/api/v1/views/frontend/post-b").Code)
	// video increments have their own bucket
	assert.Equal(t, http.StatusNotFound, request(a, http.MethodPost, "/api/v1/videos/00000000-0000-0000-0000-000000000000/views").Code)

	w := request(a, http.MethodGet, "/api/v1/views/frontend/post-b")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"key":"frontend/post-b","views":1}`, w.Body.String())

	w = request(a, http.MethodGet, "/api/v1/videos")
	assert.Equal(t, http.StatusOK, w.Code)

	w = request(a, http.MethodGet, "/api/v1/health")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"redis":"ok"`)
}

func TestMatchOriginPattern(t *testing.T) {
	assert.True(t, matchOriginPattern("*.example.com", "blog.example.com"))
	assert.False(t, matchOriginPattern("*.example.com", "example.org"))
	assert.True(t, matchOriginPattern("localhost:*", "localhost:3000"))
	assert.True(t, matchOriginPattern("*", "anything"))
	assert.Equal(t, "blog.example.com", extractOriginHost("https://blog.example.com"))
}

func TestParseTimezoneLocation(t *testing.T) {
	loc, err := parseTimezoneLocation("+08:00")
	require.NoError(t, err)
	_, offset := time.Date(2024, 1, 1, 0, 0, 0, 0, loc).Zone()
	assert.Equal(t, 8*3600, offset)

	_, err = parseTimezoneLocation("Mars/Olympus")
	assert.Error(t, err)
}
