package models

import "time"

// PostViewModel is one counter row per content key ("{category}/{slug}").
type PostViewModel struct {
	ID        uint      `json:"-"          gorm:"primaryKey"`
	PostID    string    `json:"post_id"    gorm:"column:post_id;size:255;uniqueIndex:idx_post_views_post_id;not null"`
	Views     int64     `json:"views"      gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PostViewModel) TableName() string { return "post_views" }
