package content

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/qiushui/site-core/internal/pkg/pagination"
	"github.com/qiushui/site-core/internal/pkg/response"
)

const maxLatest = 20

type renderedEntry struct {
	Entry
	Rendered
}

type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// RegisterRoutes mounts the content endpoints. The static /categories and
// /latest routes win over /:category, so folders with those names are only
// reachable through ?category= on the list endpoint.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/content")
	g.GET("", h.list)
	g.GET("/categories", h.categories)
	g.GET("/latest", h.latest)
	g.GET("/:category", h.byCategory)
	g.GET("/:category/:slug", h.entry)
}

func (h *Handler) list(c *gin.Context) {
	ctx := c.Request.Context()
	category := c.Query("category")

	var listing Listing
	if category != "" {
		listing = h.repo.Category(ctx, category)
	} else {
		listing = h.repo.All(ctx)
	}
	listing.Entries = Filter(listing.Entries, category, c.Query("tag"))

	body := gin.H{
		"stats":          h.repo.Statistics(ctx, false),
		"views_degraded": listing.Degraded,
	}
	if q, ok := pagination.FromContext(c); ok {
		page, meta := pagination.Slice(listing.Entries, q)
		body["entries"], body["pagination"] = page, meta
	} else {
		body["entries"] = listing.Entries
	}
	response.OK(c, body)
}

func (h *Handler) categories(c *gin.Context) {
	ctx := c.Request.Context()
	response.OK(c, gin.H{
		"categories": h.repo.ListCategories(ctx),
		"stats":      h.repo.Statistics(ctx, false),
	})
}

func (h *Handler) latest(c *gin.Context) {
	limit := DefaultLatest
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxLatest {
			response.BadRequest(c, "limit must be between 1 and 20")
			return
		}
		limit = n
	}
	response.OK(c, h.repo.Latest(c.Request.Context(), limit))
}

func (h *Handler) byCategory(c *gin.Context) {
	response.OK(c, h.repo.ListEntriesInCategory(c.Request.Context(), c.Param("category")))
}

func (h *Handler) entry(c *gin.Context) {
	entry, ok := h.repo.GetEntryBySlug(c.Request.Context(), c.Param("category"), c.Param("slug"))
	if !ok {
		response.NotFoundMsg(c, "post not found")
		return
	}
	if c.Query("render") != "1" {
		response.OK(c, entry)
		return
	}

	rendered, err := Render(entry.Content)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, renderedEntry{Entry: *entry, Rendered: rendered})
}
