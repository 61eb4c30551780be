package aggregate

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/qiushui/site-core/internal/models"
	"github.com/qiushui/site-core/internal/modules/content"
	"github.com/qiushui/site-core/internal/modules/video"
	"github.com/qiushui/site-core/internal/pkg/response"
	"go.uber.org/zap"
)

const latestPosts = 3

// VideoSource is the part of the video catalog the home feed reads.
type VideoSource interface {
	Latest(ctx context.Context) (*models.VideoModel, error)
	Stats(ctx context.Context) (video.Stats, error)
}

type Feed struct {
	LatestPosts   []content.Entry    `json:"latest_posts"`
	LatestVideo   *models.VideoModel `json:"latest_video"`
	Blog          content.Stats      `json:"blog"`
	Videos        *video.Stats       `json:"videos"`
	ViewsDegraded bool               `json:"views_degraded"`
}

type Service struct {
	posts  *content.Repository
	videos VideoSource
	log    *zap.Logger
}

// NewService builds the home feed. videos may be nil when no database is
// configured.
func NewService(posts *content.Repository, videos VideoSource, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{posts: posts, videos: videos, log: log}
}

// Build never fails; video errors leave the video fields null.
func (s *Service) Build(ctx context.Context) Feed {
	all := s.posts.All(ctx)
	latest := all.Entries
	if len(latest) > latestPosts {
		latest = latest[:latestPosts]
	}
	feed := Feed{
		LatestPosts:   latest,
		Blog:          s.posts.Statistics(ctx, false),
		ViewsDegraded: all.Degraded,
	}
	if s.videos == nil {
		return feed
	}

	v, err := s.videos.Latest(ctx)
	if err != nil {
		s.log.Warn("aggregate: latest video unavailable", zap.Error(err))
	} else {
		feed.LatestVideo = v
	}
	stats, err := s.videos.Stats(ctx)
	if err != nil {
		s.log.Warn("aggregate: video stats unavailable", zap.Error(err))
	} else {
		feed.Videos = &stats
	}
	return feed
}

func RegisterRoutes(rg *gin.RouterGroup, svc *Service) {
	rg.GET("/aggregate", func(c *gin.Context) {
		response.OK(c, svc.Build(c.Request.Context()))
	})
}
