package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/qiushui/site-core/internal/middleware"
	"github.com/qiushui/site-core/internal/modules/aggregate"
	"github.com/qiushui/site-core/internal/modules/content"
	"github.com/qiushui/site-core/internal/modules/health"
	"github.com/qiushui/site-core/internal/modules/video"
	"github.com/qiushui/site-core/internal/modules/views"
	"github.com/qiushui/site-core/internal/pkg/response"
	"github.com/redis/go-redis/v9"
)

const apiPrefix = "/api/v1"

func (a *App) registerRoutes() {
	r := a.router

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group(apiPrefix)
	api.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": "pong"}) })

	var rdb *redis.Client
	var pinger health.Pinger
	if a.rc != nil {
		rdb = a.rc.Raw()
		pinger = a.rc
	}
	var writeMW, videoWriteMW gin.HandlerFunc
	if rdb != nil && a.cfg.Views.RateLimit > 0 {
		writeMW = middleware.RateLimit(rdb, "views", a.cfg.Views.RateLimit, time.Minute, a.logger)
		videoWriteMW = middleware.RateLimit(rdb, "videos", a.cfg.Views.RateLimit, time.Minute, a.logger)
	}

	health.RegisterRoutes(api, health.NewChecker(a.db, pinger, a.viewSvc.Backend()))
	content.NewHandler(a.repo).RegisterRoutes(api)
	views.NewHandler(a.viewSvc).RegisterRoutes(api, writeMW)

	var videos aggregate.VideoSource
	if a.db != nil {
		videoSvc := video.NewService(a.db)
		video.NewHandler(videoSvc, a.logger.Named("video")).RegisterRoutes(api, videoWriteMW)
		videos = videoSvc
	}
	aggregate.RegisterRoutes(api, aggregate.NewService(a.repo, videos, a.logger.Named("aggregate")))
}
