package video

import (
	"context"
	"errors"

	"github.com/qiushui/site-core/internal/models"
	"github.com/qiushui/site-core/internal/pkg/pagination"
	"gorm.io/gorm"
)

// ErrVideoNotFound is returned for ids that do not name a published video.
var ErrVideoNotFound = errors.New("video not found")

type CategoryCount struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int64  `json:"count"`
}

type Stats struct {
	TotalVideos     int64           `json:"total_videos"`
	TotalCategories int64           `json:"total_categories"`
	Categories      []CategoryCount `json:"categories"`
}

// Service reads the vlog catalog. Unpublished rows are invisible to every
// method.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) published(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.VideoModel{}).Where("videos.is_published = ?", true)
}

func (s *Service) inCategory(ctx context.Context, category string) *gorm.DB {
	q := s.published(ctx)
	if category != "" {
		sub := s.db.Model(&models.VlogCategoryModel{}).Select("id").Where("slug = ?", category)
		q = q.Where("videos.category_id IN (?)", sub)
	}
	return q
}

func newestWithCategory(db *gorm.DB) *gorm.DB {
	return db.Preload("Category").Order("published_at DESC")
}

// List returns published videos newest first, optionally limited to one
// category slug.
func (s *Service) List(ctx context.Context, category string) ([]models.VideoModel, error) {
	videos := []models.VideoModel{}
	return videos, s.inCategory(ctx, category).Scopes(newestWithCategory).Find(&videos).Error
}

// ListPage is List restricted to one page.
func (s *Service) ListPage(ctx context.Context, category string, q pagination.Query) ([]models.VideoModel, pagination.Pagination, error) {
	videos := []models.VideoModel{}
	meta, err := pagination.Paginate(s.inCategory(ctx, category), q, &videos, newestWithCategory)
	return videos, meta, err
}

func (s *Service) Get(ctx context.Context, id string) (*models.VideoModel, error) {
	var v models.VideoModel
	if err := s.published(ctx).Preload("Category").Where("videos.id = ?", id).First(&v).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

// Latest returns the most recently published video, nil when there is none.
func (s *Service) Latest(ctx context.Context) (*models.VideoModel, error) {
	var v models.VideoModel
	if err := s.published(ctx).Preload("Category").Order("published_at DESC").First(&v).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{Categories: []CategoryCount{}}
	if err := s.published(ctx).Count(&stats.TotalVideos).Error; err != nil {
		return Stats{}, err
	}
	err := s.db.WithContext(ctx).Model(&models.VlogCategoryModel{}).
		Select("vlog_categories.id, vlog_categories.name, vlog_categories.slug, COUNT(videos.id) AS count").
		Joins("LEFT JOIN videos ON videos.category_id = vlog_categories.id AND videos.is_published = ?", true).
		Group("vlog_categories.id, vlog_categories.name, vlog_categories.slug").
		Order("vlog_categories.name ASC").
		Scan(&stats.Categories).Error
	if err != nil {
		return Stats{}, err
	}
	stats.TotalCategories = int64(len(stats.Categories))
	return stats, nil
}

func (s *Service) GetViews(ctx context.Context, id string) (int64, error) {
	var v models.VideoModel
	err := s.published(ctx).Select("view_count").Where("videos.id = ?", id).Take(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrVideoNotFound
		}
		return 0, err
	}
	return v.ViewCount, nil
}

// IncrementViews bumps view_count in place and returns the new value.
func (s *Service) IncrementViews(ctx context.Context, id string) (int64, error) {
	var views int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.VideoModel{}).
			Where("id = ? AND is_published = ?", id, true).
			UpdateColumn("view_count", gorm.Expr("view_count + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrVideoNotFound
		}

		var v models.VideoModel
		if err := tx.Select("view_count").Where("id = ?", id).Take(&v).Error; err != nil {
			return err
		}
		views = v.ViewCount
		return nil
	})
	if err != nil {
		return 0, err
	}
	return views, nil
}

// AllViews maps every published video id to its count.
func (s *Service) AllViews(ctx context.Context) (map[string]int64, error) {
	var rows []models.VideoModel
	if err := s.published(ctx).Select("id", "view_count").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.ID] = r.ViewCount
	}
	return out, nil
}
