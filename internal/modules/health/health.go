package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by the Redis client wrapper.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Checker reports dependency reachability. Nil dependencies are reported as
// disabled and do not degrade the status.
type Checker struct {
	db    *gorm.DB
	redis Pinger
	views string
}

func NewChecker(db *gorm.DB, redis Pinger, viewsBackend string) *Checker {
	return &Checker{db: db, redis: redis, views: viewsBackend}
}

type Report struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Redis    string `json:"redis"`
	Views    string `json:"views_backend"`
}

func (h *Checker) Check(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	r := Report{Status: "ok", Database: "disabled", Redis: "disabled", Views: h.views}
	if h.db != nil {
		r.Database = "ok"
		sqlDB, err := h.db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			r.Database = "down"
			r.Status = "degraded"
		}
	}
	if h.redis != nil {
		r.Redis = "ok"
		if err := h.redis.Ping(ctx); err != nil {
			r.Redis = "down"
			r.Status = "degraded"
		}
	}
	return r
}

func RegisterRoutes(rg *gin.RouterGroup, h *Checker) {
	rg.GET("/health", func(c *gin.Context) {
		report := h.Check(c.Request.Context())
		code := http.StatusOK
		if report.Status != "ok" {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, report)
	})
}
