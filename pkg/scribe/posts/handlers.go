package posts

import (
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/scribehq/scribe/pkg/scribe/auth"
	"github.com/scribehq/scribe/pkg/scribe/authz"
	"github.com/scribehq/scribe/pkg/scribe/models"
	"github.com/scribehq/scribe/pkg/scribe/tags"
	"gorm.io/gorm"
)

// Handler handles post-related requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new posts handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreatePostRequest represents the create form submission
type CreatePostRequest struct {
	Title   string `form:"title" json:"title" binding:"required,max=200"`
	Content string `form:"content" json:"content" binding:"required"`
	Tags    string `form:"tags" json:"tags"`
}

// PostResponse represents a post in API responses
type PostResponse struct {
	ID        uint     `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Author    string   `json:"author"`
	Tags      []string `json:"tags"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

// PostToResponse converts a post (with Author and Tags loaded) for rendering
func PostToResponse(post models.Post) PostResponse {
	tagNames := make([]string, len(post.Tags))
	for i, t := range post.Tags {
		tagNames[i] = t.Name
	}
	return PostResponse{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		Author:    post.Author.Username,
		Tags:      tagNames,
		CreatedAt: post.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt: post.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// getPost loads a post with its author and tags by the :id route param
func (h *Handler) getPost(c *gin.Context) (*models.Post, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return nil, false
	}

	var post models.Post
	if err := h.db.Preload("Author").Preload("Tags").First(&post, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return nil, false
	}
	return &post, true
}

// titleTaken reports whether another post already uses the title.
// The unique index on posts.title is the backstop for concurrent creates.
func (h *Handler) titleTaken(title string, excludeID uint) bool {
	var existing models.Post
	query := h.db.Where("title = ?", title)
	if excludeID > 0 {
		query = query.Where("id != ?", excludeID)
	}
	return query.First(&existing).Error == nil
}

// Home returns all posts in reverse chronological order
// @Summary Home listing
// @Description Get all posts, newest first
// @Tags posts
// @Produce json
// @Success 200 {array} PostResponse
// @Router /home/ [get]
func (h *Handler) Home(c *gin.Context) {
	var posts []models.Post
	if err := h.db.Preload("Author").Preload("Tags").
		Order("created_at DESC").Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	responses := make([]PostResponse, len(posts))
	for i, post := range posts {
		responses[i] = PostToResponse(post)
	}

	c.JSON(http.StatusOK, responses)
}

// Detail returns a single post
// @Summary Show a post
// @Description Get one post by ID
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} PostResponse
// @Failure 404 {object} map[string]string "Post not found"
// @Router /posts/{id} [get]
func (h *Handler) Detail(c *gin.Context) {
	post, ok := h.getPost(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, PostToResponse(*post))
}

// InlineUpdate replaces a post's content from the detail page.
// Only the author may do this; the upstream behavior of letting any
// logged-in user overwrite content was an authorization hole.
// @Summary Inline content update
// @Description Replace a post's content from the detail page (author only)
// @Tags posts
// @Accept x-www-form-urlencoded
// @Param id path int true "Post ID"
// @Param post_content_text formData string true "New content"
// @Success 303 "Redirect to the post detail"
// @Failure 403 {object} map[string]string "Not the author"
// @Failure 404 {object} map[string]string "Post not found"
// @Security BearerAuth
// @Router /posts/{id} [post]
func (h *Handler) InlineUpdate(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	post, ok := h.getPost(c)
	if !ok {
		return
	}

	if !authz.Authorize(userID, post, authz.ActionUpdate) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the author may edit this post"})
		return
	}

	post.Content = c.PostForm("post_content_text")
	if err := h.db.Save(post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	c.Redirect(http.StatusSeeOther, "/posts/"+strconv.FormatUint(uint64(post.ID), 10))
}

// CreateForm returns the blank create form payload
// @Summary Create form
// @Description Get the fields expected by the post creation form
// @Tags posts
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /posts/create [get]
func (h *Handler) CreateForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"fields": []string{"title", "content", "tags"},
	})
}

// Create creates a new post authored by the requester
// @Summary Create a post
// @Description Create a post with a comma-separated tag string
// @Tags posts
// @Accept x-www-form-urlencoded
// @Accept json
// @Param title formData string true "Title"
// @Param content formData string true "Content"
// @Param tags formData string false "Comma-separated tags"
// @Success 303 "Redirect to /home/"
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 409 {object} map[string]string "Title already exists"
// @Security BearerAuth
// @Router /posts/create [post]
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if h.titleTaken(req.Title, 0) {
		c.JSON(http.StatusConflict, gin.H{"error": "A post with this title already exists"})
		return
	}

	tagSet, err := tags.Normalize(h.db, req.Tags)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post := models.Post{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: userID,
		Tags:     tagSet,
	}

	if err := h.db.Create(&post).Error; err != nil {
		// Lost a title race against a concurrent create
		c.JSON(http.StatusConflict, gin.H{"error": "A post with this title already exists"})
		return
	}

	c.Redirect(http.StatusSeeOther, "/home/")
}

// UpdateForm returns the edit form pre-populated with the post's fields.
// Tags come back as the comma-joined string the form round-trips.
// @Summary Edit form
// @Description Get a post's current fields for editing (author only)
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string "Not the author"
// @Failure 404 {object} map[string]string "Post not found"
// @Security BearerAuth
// @Router /posts/{id}/update/ [get]
func (h *Handler) UpdateForm(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	post, ok := h.getPost(c)
	if !ok {
		return
	}

	if !authz.Authorize(userID, post, authz.ActionUpdate) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the author may edit this post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":   post.Title,
		"content": post.Content,
		"tags":    tags.Join(post.Tags),
	})
}

// Update replaces a post's fields and, if a tag string was submitted,
// its whole tag set
// @Summary Update a post
// @Description Update a post's title, content, and tags (author only)
// @Tags posts
// @Accept x-www-form-urlencoded
// @Param id path int true "Post ID"
// @Param title formData string false "Title"
// @Param content formData string false "Content"
// @Param tags formData string false "Comma-separated tags; empty clears all tags"
// @Success 303 "Redirect to the post detail"
// @Failure 403 {object} map[string]string "Not the author"
// @Failure 404 {object} map[string]string "Post not found"
// @Failure 409 {object} map[string]string "Title already exists"
// @Security BearerAuth
// @Router /posts/{id}/update/ [post]
func (h *Handler) Update(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	post, ok := h.getPost(c)
	if !ok {
		return
	}

	if !authz.Authorize(userID, post, authz.ActionUpdate) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the author may edit this post"})
		return
	}

	if title := c.PostForm("title"); title != "" && title != post.Title {
		if utf8.RuneCountInString(title) > 200 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title must be at most 200 characters"})
			return
		}
		if h.titleTaken(title, post.ID) {
			c.JSON(http.StatusConflict, gin.H{"error": "A post with this title already exists"})
			return
		}
		post.Title = title
	}
	if content := c.PostForm("content"); content != "" {
		post.Content = content
	}

	// A submitted tags field replaces the whole set; an empty value clears it
	if rawTags, submitted := c.GetPostForm("tags"); submitted {
		tagSet, err := tags.Normalize(h.db, rawTags)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := h.db.Model(post).Association("Tags").Replace(tagSet); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tags"})
			return
		}
		// Keep the in-memory set in sync so the Save below doesn't
		// resurrect the old associations
		post.Tags = tagSet
	}

	if err := h.db.Save(post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	c.Redirect(http.StatusSeeOther, "/posts/"+strconv.FormatUint(uint64(post.ID), 10))
}

// DeleteConfirm returns the confirmation payload for the delete page
// @Summary Delete confirmation
// @Description Get a post summary before deleting it (author only)
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string "Not the author"
// @Failure 404 {object} map[string]string "Post not found"
// @Security BearerAuth
// @Router /posts/{id}/delete [get]
func (h *Handler) DeleteConfirm(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	post, ok := h.getPost(c)
	if !ok {
		return
	}

	if !authz.Authorize(userID, post, authz.ActionDelete) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the author may delete this post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    post.ID,
		"title": post.Title,
	})
}

// Delete removes a post and its tag associations.
// Tags themselves are never deleted; orphans may remain.
// @Summary Delete a post
// @Description Delete a post (author only)
// @Tags posts
// @Param id path int true "Post ID"
// @Success 303 "Redirect to /home/"
// @Failure 403 {object} map[string]string "Not the author"
// @Failure 404 {object} map[string]string "Post not found"
// @Security BearerAuth
// @Router /posts/{id}/delete [post]
func (h *Handler) Delete(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	post, ok := h.getPost(c)
	if !ok {
		return
	}

	if !authz.Authorize(userID, post, authz.ActionDelete) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the author may delete this post"})
		return
	}

	if err := h.db.Model(post).Association("Tags").Clear(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}
	if err := h.db.Delete(post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	c.Redirect(http.StatusSeeOther, "/home/")
}

// RegisterRoutes registers post routes on the root router.
// Reads are public; everything mutating requires authentication.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	authRequired := auth.AuthMiddleware()

	r.GET("/home/", h.Home)

	r.GET("/posts/create", authRequired, h.CreateForm)
	r.POST("/posts/create", authRequired, h.Create)

	r.GET("/posts/:id", h.Detail)
	r.POST("/posts/:id", authRequired, h.InlineUpdate)

	r.GET("/posts/:id/update/", authRequired, h.UpdateForm)
	r.POST("/posts/:id/update/", authRequired, h.Update)

	r.GET("/posts/:id/delete", authRequired, h.DeleteConfirm)
	r.POST("/posts/:id/delete", authRequired, h.Delete)
}
