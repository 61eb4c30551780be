package views

import (
	"context"
	"errors"
	"time"

	"github.com/qiushui/site-core/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore keeps counters in the post_views table of the relational database.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Backend() string { return "database" }

func (s *GormStore) Get(ctx context.Context, key string) (int64, error) {
	var row models.PostViewModel
	err := s.db.WithContext(ctx).Select("views").Where("post_id = ?", key).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return row.Views, nil
}

// Increment upserts the row with views = views + 1 and reads the result back
// inside the same transaction.
func (s *GormStore) Increment(ctx context.Context, key string) (int64, error) {
	var views int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := upsertView(tx, key).Error; err != nil {
			return err
		}

		var current models.PostViewModel
		if err := tx.Select("views").Where("post_id = ?", key).Take(&current).Error; err != nil {
			return err
		}
		views = current.Views
		return nil
	})
	if err != nil {
		return 0, err
	}
	return views, nil
}

// upsertView inserts key with one view or bumps the existing row. The column
// is table-qualified because Postgres also exposes EXCLUDED.views inside
// ON CONFLICT DO UPDATE.
func upsertView(tx *gorm.DB, key string) *gorm.DB {
	row := models.PostViewModel{PostID: key, Views: 1}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "post_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"views":      gorm.Expr(row.TableName() + ".views + 1"),
			"updated_at": time.Now(),
		}),
	}).Create(&row)
}

func (s *GormStore) All(ctx context.Context) (map[string]int64, error) {
	var rows []models.PostViewModel
	if err := s.db.WithContext(ctx).Select("post_id", "views").Find(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.PostID] = r.Views
	}
	return counts, nil
}
