package video

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/qiushui/site-core/internal/pkg/pagination"
	"github.com/qiushui/site-core/internal/pkg/response"
	"go.uber.org/zap"
)

type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{svc: svc, log: log}
}

// RegisterRoutes mounts the catalog. writeMW guards view increments and may
// be nil.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, writeMW gin.HandlerFunc) {
	g := rg.Group("/videos")
	g.GET("", h.list)
	g.GET("/views", h.allViews)
	g.GET("/:id", h.get)
	g.GET("/:id/views", h.getViews)

	handlers := []gin.HandlerFunc{h.incrementViews}
	if writeMW != nil {
		handlers = append([]gin.HandlerFunc{writeMW}, handlers...)
	}
	g.POST("/:id/views", handlers...)
}

func (h *Handler) list(c *gin.Context) {
	ctx := c.Request.Context()
	category := c.Query("category")
	stats, err := h.svc.Stats(ctx)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	if q, ok := pagination.FromContext(c); ok {
		videos, meta, err := h.svc.ListPage(ctx, category, q)
		if err != nil {
			response.InternalError(c, err)
			return
		}
		response.OK(c, gin.H{"videos": videos, "stats": stats, "pagination": meta})
		return
	}

	videos, err := h.svc.List(ctx, category)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"videos": videos, "stats": stats})
}

func (h *Handler) get(c *gin.Context) {
	v, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if v == nil {
		response.NotFoundMsg(c, ErrVideoNotFound.Error())
		return
	}
	response.OK(c, v)
}

func (h *Handler) allViews(c *gin.Context) {
	views, err := h.svc.AllViews(c.Request.Context())
	if err != nil {
		h.log.Warn("video view counts unavailable", zap.Error(err))
		response.ServiceUnavailable(c, err.Error())
		return
	}
	response.OK(c, views)
}

func (h *Handler) getViews(c *gin.Context) {
	id := c.Param("id")
	n, err := h.svc.GetViews(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrVideoNotFound) {
			response.NotFoundMsg(c, err.Error())
			return
		}
		h.log.Warn("video view count read failed", zap.String("id", id), zap.Error(err))
		response.ServiceUnavailable(c, err.Error())
		return
	}
	response.OK(c, gin.H{"video_id": id, "views": n})
}

func (h *Handler) incrementViews(c *gin.Context) {
	id := c.Param("id")
	n, err := h.svc.IncrementViews(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrVideoNotFound) {
			response.NotFoundMsg(c, err.Error())
			return
		}
		h.log.Error("video view increment failed", zap.String("id", id), zap.Error(err))
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"video_id": id, "views": n})
}
