package tags

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles tag-related requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new tags handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// TagResponse represents a tag in API responses
type TagResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	PostCount int    `json:"post_count"`
}

// List returns all tags with their post counts
// @Summary List tags
// @Description Get all tags with the number of posts carrying each
// @Tags tags
// @Produce json
// @Success 200 {array} TagResponse
// @Router /api/tags [get]
func (h *Handler) List(c *gin.Context) {
	type tagWithCount struct {
		ID        uint
		Name      string
		PostCount int
	}

	var results []tagWithCount
	err := h.db.Table("tags").
		Select("tags.id, tags.name, COUNT(DISTINCT posts.id) as post_count").
		Joins("LEFT JOIN post_tags ON tags.id = post_tags.tag_id").
		Joins("LEFT JOIN posts ON post_tags.post_id = posts.id AND posts.deleted_at IS NULL").
		Where("tags.deleted_at IS NULL").
		Group("tags.id").
		Order("post_count DESC").
		Find(&results).Error

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tags"})
		return
	}

	tags := make([]TagResponse, len(results))
	for i, r := range results {
		tags[i] = TagResponse{
			ID:        r.ID,
			Name:      r.Name,
			PostCount: r.PostCount,
		}
	}

	c.JSON(http.StatusOK, tags)
}

// RegisterRoutes registers tag routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/tags", h.List)
}
