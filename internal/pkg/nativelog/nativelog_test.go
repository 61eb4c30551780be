package nativelog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_RollsDaily(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	require.NoError(t, err)

	day := time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC)
	w.now = func() time.Time { return day }
	_, err = w.Write([]byte("first\n"))
	require.NoError(t, err)

	day = day.Add(2 * time.Minute)
	_, err = w.Write([]byte("second\n"))
	require.NoError(t, err)

	first, err := os.ReadFile(filepath.Join(dir, "site_2024-03-01.log"))
	require.NoError(t, err)
	assert.Equal(t, "first\n", string(first))

	second, err := os.ReadFile(filepath.Join(dir, "site_2024-03-02.log"))
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(second))
}

func TestResolveDir(t *testing.T) {
	t.Setenv(EnvLogDir, "/var/log/site")
	assert.Equal(t, "/explicit", ResolveDir("/explicit"))
	assert.Equal(t, "/var/log/site", ResolveDir(""))
}
