package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VlogCategoryModel groups videos.
type VlogCategoryModel struct {
	ID          string `json:"id"          gorm:"type:char(36);primaryKey"`
	Name        string `json:"name"        gorm:"size:100;uniqueIndex;not null"`
	Slug        string `json:"slug"        gorm:"size:100;uniqueIndex;not null"`
	Description string `json:"description" gorm:"type:text"`
}

func (VlogCategoryModel) TableName() string { return "vlog_categories" }

// VideoModel is a vlog entry. The view counter lives on the row itself.
type VideoModel struct {
	Base
	Title        string             `json:"title"                  gorm:"size:255;not null"`
	Description  string             `json:"description"            gorm:"type:text"`
	VideoURL     string             `json:"video_url"              gorm:"column:video_url;size:500;not null"`
	ViewCount    int64              `json:"view_count"             gorm:"column:view_count;not null;default:0"`
	PublishedAt  time.Time          `json:"published_at"           gorm:"index:idx_videos_published_at,sort:desc;not null"`
	ThumbnailURL string             `json:"thumbnail_url"          gorm:"column:thumbnail_url;size:500"`
	Duration     *int               `json:"duration"` // seconds
	CategoryID   string             `json:"category_id"            gorm:"type:char(36);index:idx_videos_category;not null"`
	Category     *VlogCategoryModel `json:"category,omitempty"     gorm:"foreignKey:CategoryID"`
	Tags         StringArray        `json:"tags"                   gorm:"type:text"`
	Location     string             `json:"location,omitempty"     gorm:"size:255"`
	IsPublished  bool               `json:"is_published"           gorm:"index:idx_videos_is_published;not null;default:false"`
}

func (VideoModel) TableName() string { return "videos" }

func (c *VlogCategoryModel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
