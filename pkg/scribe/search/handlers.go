package search

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/scribehq/scribe/pkg/scribe/models"
	"github.com/scribehq/scribe/pkg/scribe/posts"
	"gorm.io/gorm"
)

// PageSize is the number of posts per search results page
const PageSize = 10

// Handler handles search requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new search handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// Response represents a page of search results with the query echoed back
type Response struct {
	Posts    []posts.PostResponse `json:"posts"`
	Query    string               `json:"query"`
	SearchBy string               `json:"search_by"`
	Page     int                  `json:"page"`
}

// Search returns posts matching the query, newest first, ten per page
// @Summary Search posts
// @Description Search posts by title, author, tag, or all fields at once
// @Tags search
// @Produce json
// @Param searched query string false "Search text"
// @Param search_by query string false "One of title, author, tag; anything else searches all fields"
// @Param page query int false "Page number, starting at 1"
// @Success 200 {object} Response
// @Router /search [get]
func (h *Handler) Search(c *gin.Context) {
	query := c.Query("searched")
	mode := c.Query("search_by")

	page := 1
	if p := c.Query("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}

	var matched []models.Post
	err := h.db.Model(&models.Post{}).
		Select("posts.*").
		Scopes(Filter(query, mode)).
		Preload("Author").Preload("Tags").
		Order("posts.created_at DESC").
		Limit(PageSize).Offset((page - 1) * PageSize).
		Find(&matched).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search posts"})
		return
	}

	responses := make([]posts.PostResponse, len(matched))
	for i, post := range matched {
		responses[i] = posts.PostToResponse(post)
	}

	c.JSON(http.StatusOK, Response{
		Posts:    responses,
		Query:    query,
		SearchBy: mode,
		Page:     page,
	})
}

// RegisterRoutes registers search routes
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/search", h.Search)
}
