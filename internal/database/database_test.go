package database

import (
	"path/filepath"
	"testing"

	"github.com/qiushui/site-core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestOpenSQLiteAndMigrate(t *testing.T) {
	db, err := Open("sqlite", filepath.Join(t.TempDir(), "nested", "site.db"), logger.Silent)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, Migrate(db))
	for _, table := range []string{"videos", "vlog_categories", "post_views"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	require.NoError(t, db.Create(&models.PostViewModel{PostID: "frontend/post-a", Views: 1}).Error)
	err = db.Create(&models.PostViewModel{PostID: "frontend/post-a", Views: 1}).Error
	assert.Error(t, err, "post_id must be unique")
}
