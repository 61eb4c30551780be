package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	DefaultPage = 1
	DefaultSize = 10
	MaxSize     = 50
)

// Query holds parsed pagination parameters.
type Query struct {
	Page int
	Size int
}

// Pagination is the metadata returned next to a page of results.
type Pagination struct {
	Total       int64 `json:"total"`
	CurrentPage int   `json:"current_page"`
	TotalPage   int   `json:"total_page"`
	Size        int   `json:"size"`
	HasNextPage bool  `json:"has_next_page"`
	HasPrevPage bool  `json:"has_prev_page"`
}

// FromContext extracts pagination params. ok is false when the request asks
// for neither page nor size, in which case callers return everything.
func FromContext(c *gin.Context) (q Query, ok bool) {
	rawPage, hasPage := c.GetQuery("page")
	rawSize, hasSize := c.GetQuery("size")
	if !hasPage && !hasSize {
		return Query{Page: DefaultPage, Size: DefaultSize}, false
	}

	page := parseIntOr(rawPage, DefaultPage)
	size := parseIntOr(rawSize, DefaultSize)
	if page < 1 {
		page = DefaultPage
	}
	if size < 1 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	return Query{Page: page, Size: size}, true
}

func (q Query) offset() int { return (q.Page - 1) * q.Size }

func meta(q Query, total int64) Pagination {
	totalPage := int((total + int64(q.Size) - 1) / int64(q.Size))
	return Pagination{
		Total:       total,
		CurrentPage: q.Page,
		TotalPage:   totalPage,
		Size:        q.Size,
		HasNextPage: q.Page < totalPage,
		HasPrevPage: q.Page > 1,
	}
}

// Slice pages an in-memory list. Pages past the end are empty.
func Slice[T any](items []T, q Query) ([]T, Pagination) {
	p := meta(q, int64(len(items)))
	start := q.offset()
	if start >= len(items) {
		return []T{}, p
	}
	end := start + q.Size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], p
}

// Paginate counts db and loads one page into dest. scopes apply to the page
// query only, which keeps Preload and Order out of the count.
func Paginate[T any](db *gorm.DB, q Query, dest *[]T, scopes ...func(*gorm.DB) *gorm.DB) (Pagination, error) {
	var total int64
	if err := db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return Pagination{}, err
	}
	err := db.Session(&gorm.Session{}).Scopes(scopes...).Offset(q.offset()).Limit(q.Size).Find(dest).Error
	if err != nil {
		return Pagination{}, err
	}
	return meta(q, total), nil
}

func parseIntOr(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
