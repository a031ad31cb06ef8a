package importexport

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/scribehq/scribe/pkg/scribe/auth"
	"github.com/scribehq/scribe/pkg/scribe/models"
	"github.com/scribehq/scribe/pkg/scribe/tags"
	"gorm.io/gorm"
)

// Handler handles import/export requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new import/export handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// ArchivedPost represents a post in the export document.
// Tags round-trip as the same comma-separated string the forms use.
type ArchivedPost struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Tags      string `json:"tags"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// ImportRequest represents an import request
type ImportRequest struct {
	Posts []ArchivedPost `json:"posts" binding:"required"`
}

// ImportResult represents the result of an import operation
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// ExportResponse represents the export document
type ExportResponse struct {
	Posts []ArchivedPost `json:"posts"`
}

// Export returns the requester's posts as a JSON archive
// @Summary Export posts
// @Description Export all of the authenticated user's posts
// @Tags importexport
// @Produce json
// @Success 200 {object} ExportResponse
// @Security BearerAuth
// @Router /api/export [get]
func (h *Handler) Export(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var userPosts []models.Post
	if err := h.db.Preload("Tags").Where("author_id = ?", userID).
		Order("created_at DESC").Find(&userPosts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	archived := make([]ArchivedPost, len(userPosts))
	for i, post := range userPosts {
		archived[i] = ArchivedPost{
			Title:     post.Title,
			Content:   post.Content,
			Tags:      tags.Join(post.Tags),
			CreatedAt: post.CreatedAt.Format("2006-01-02T15:04:05Z"),
			UpdatedAt: post.UpdatedAt.Format("2006-01-02T15:04:05Z"),
		}
	}

	c.JSON(http.StatusOK, ExportResponse{Posts: archived})
}

// Import creates posts from an export document, authored by the requester.
// Posts whose titles already exist are skipped and reported, not failed.
// @Summary Import posts
// @Description Import posts from a previously exported archive
// @Tags importexport
// @Accept json
// @Produce json
// @Param request body ImportRequest true "Archive to import"
// @Success 200 {object} ImportResult
// @Failure 400 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /api/import [post]
func (h *Handler) Import(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := ImportResult{}
	for _, archived := range req.Posts {
		if archived.Title == "" {
			result.Skipped++
			result.Errors = append(result.Errors, "skipping post with empty title")
			continue
		}

		var existing models.Post
		if err := h.db.Where("title = ?", archived.Title).First(&existing).Error; err == nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("skipping %q: title already exists", archived.Title))
			continue
		}

		tagSet, err := tags.Normalize(h.db, archived.Tags)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("skipping %q: %v", archived.Title, err))
			continue
		}

		post := models.Post{
			Title:    archived.Title,
			Content:  archived.Content,
			AuthorID: userID,
			Tags:     tagSet,
		}
		if err := h.db.Create(&post).Error; err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("skipping %q: %v", archived.Title, err))
			continue
		}
		result.Imported++
	}

	c.JSON(http.StatusOK, result)
}

// RegisterRoutes registers import/export routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/export", h.Export)
	rg.POST("/import", h.Import)
}
