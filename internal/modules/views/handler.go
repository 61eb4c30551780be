package views

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/qiushui/site-core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the counter endpoints. writeMW guards increments and
// may be nil.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, writeMW gin.HandlerFunc) {
	rg.GET("/views", h.all)
	rg.GET("/views/*key", h.get)

	if writeMW != nil {
		rg.POST("/views/*key", writeMW, h.increment)
	} else {
		rg.POST("/views/*key", h.increment)
	}
}

func (h *Handler) all(c *gin.Context) {
	counts, err := h.svc.All(c.Request.Context())
	if err != nil {
		response.ServiceUnavailable(c, err.Error())
		return
	}
	response.OK(c, counts)
}

func (h *Handler) get(c *gin.Context) {
	key, err := NormalizeKey(c.Param("key"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	n, err := h.svc.Get(c.Request.Context(), key)
	if err != nil {
		response.ServiceUnavailable(c, err.Error())
		return
	}
	response.OK(c, gin.H{"key": key, "views": n})
}

func (h *Handler) increment(c *gin.Context) {
	key, err := NormalizeKey(c.Param("key"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	n, err := h.svc.Increment(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, ErrInvalidKey) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"key": key, "views": n})
}
