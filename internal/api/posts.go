package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abubakar1702/techgeek/internal/models"
	"github.com/abubakar1702/techgeek/pkg/telemetry"
)

type createPostInput struct {
	Title      string   `json:"title" binding:"required,max=200"`
	Content    string   `json:"content" binding:"required"`
	Image      string   `json:"image"`
	Status     string   `json:"status"`
	Categories []string `json:"categories"`
}

type updatePostInput struct {
	Title      *string   `json:"title"`
	Content    *string   `json:"content"`
	Image      *string   `json:"image"`
	Status     *string   `json:"status"`
	Categories *[]string `json:"categories"`
}

func validPostStatus(status string) bool {
	switch status {
	case models.PostStatusDraft, models.PostStatusPublished, models.PostStatusArchived:
		return true
	}
	return false
}

// CreatePost creates a new post for the authenticated author
func (h *Handler) CreatePost(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.create_post")
	defer span.End()

	viewer := CurrentIdentity(c)

	var input createPostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithError(c, NewValidation(err.Error()))
		return
	}
	if input.Status == "" {
		input.Status = models.PostStatusDraft
	}
	if !validPostStatus(input.Status) {
		abortWithError(c, NewValidation("invalid status"))
		return
	}

	categories, err := h.resolveCategories(c, input.Categories)
	if err != nil {
		abortWithError(c, err)
		return
	}

	slug, err := h.uniqueSlug(ctx, input.Title)
	if err != nil {
		abortWithError(c, err)
		return
	}

	post := &models.Post{
		Title:    input.Title,
		Slug:     slug,
		Content:  h.sanitizer.Sanitize(input.Content),
		Image:    input.Image,
		Status:   input.Status,
		AuthorID: viewer.UserID,
	}
	if err := h.posts.Create(ctx, post); err != nil {
		abortWithError(c, err)
		return
	}
	if len(categories) > 0 {
		if err := h.posts.ReplaceCategories(ctx, post, categories); err != nil {
			abortWithError(c, err)
			return
		}
	}

	created, err := h.posts.GetByID(ctx, post.ID)
	if err != nil || created == nil {
		abortWithError(c, err)
		return
	}
	obj, err := h.loader.BuildPostSummary(ctx, created, viewer.UserID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	h.logger.Info("post created",
		zap.Int64("post_id", post.ID),
		zap.String("slug", post.Slug),
		zap.Int64("author_id", viewer.UserID))
	c.JSON(http.StatusCreated, obj)
}

// GetPost returns a post by slug with its full comment tree. Each hit
// bumps the view counter and stores an analytics row. Drafts and
// archived posts resolve only for their author.
func (h *Handler) GetPost(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.get_post")
	defer span.End()

	viewer := CurrentIdentity(c)

	post, err := h.posts.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	if post == nil || (!post.IsPublished() && post.AuthorID != viewer.UserID) {
		abortWithError(c, NewNotFound("post not found"))
		return
	}

	// View tracking is best effort: a failed analytics write must not
	// turn a readable post into an error response.
	if err := h.posts.IncrementViewCount(ctx, post.ID); err != nil {
		h.logger.Warn("view count update failed",
			zap.Int64("post_id", post.ID), zap.Error(err))
	} else {
		post.ViewCount++
	}
	view := &models.PostView{
		PostID:    post.ID,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	if viewer.Authenticated {
		view.UserID.Int64 = viewer.UserID
		view.UserID.Valid = true
	}
	if err := h.posts.RecordView(ctx, view); err != nil {
		h.logger.Warn("view record failed",
			zap.Int64("post_id", post.ID), zap.Error(err))
	}

	obj, err := h.loader.BuildPost(ctx, post, viewer.UserID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, obj)
}

// GetPostByID returns a post by numeric ID with its full comment
// tree. Unlike the slug route this does not count a view; it serves
// editors and notification links.
func (h *Handler) GetPostByID(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.get_post_by_id")
	defer span.End()

	viewer := CurrentIdentity(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abortWithError(c, NewValidation("invalid post id"))
		return
	}
	post, err := h.posts.GetByID(ctx, id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if post == nil || (!post.IsPublished() && post.AuthorID != viewer.UserID) {
		abortWithError(c, NewNotFound("post not found"))
		return
	}

	obj, err := h.loader.BuildPost(ctx, post, viewer.UserID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, obj)
}

// ListPosts returns all published posts, newest first
func (h *Handler) ListPosts(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.list_posts")
	defer span.End()

	viewer := CurrentIdentity(c)

	posts, err := h.posts.ListFiltered(ctx, "", true, 0)
	if err != nil {
		abortWithError(c, err)
		return
	}

	result, err := h.loader.BuildPostList(ctx, posts, viewer.UserID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// FilterPosts returns published posts filtered by category slug,
// optionally ordered by recency and limited
func (h *Handler) FilterPosts(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.filter_posts")
	defer span.End()

	viewer := CurrentIdentity(c)

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			abortWithError(c, NewValidation("invalid limit"))
			return
		}
		limit = parsed
	}
	recent := c.Query("filter") == "recent"

	posts, err := h.posts.ListFiltered(ctx, c.Query("slug"), recent, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}

	result, err := h.loader.BuildPostList(ctx, posts, viewer.UserID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SearchPosts returns published posts matching the query string
func (h *Handler) SearchPosts(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.search_posts")
	defer span.End()

	viewer := CurrentIdentity(c)

	posts, err := h.posts.Search(ctx, c.Query("q"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	result, err := h.loader.BuildPostList(ctx, posts, viewer.UserID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// UpdatePost applies a partial update to the caller's own post
func (h *Handler) UpdatePost(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.update_post")
	defer span.End()

	viewer := CurrentIdentity(c)

	post, err := h.loadOwnPost(c, viewer.UserID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	var input updatePostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithError(c, NewValidation(err.Error()))
		return
	}

	if input.Title != nil {
		if *input.Title == "" {
			abortWithError(c, NewValidation("title cannot be empty"))
			return
		}
		post.Title = *input.Title
	}
	if input.Content != nil {
		post.Content = h.sanitizer.Sanitize(*input.Content)
	}
	if input.Image != nil {
		post.Image = *input.Image
	}
	if input.Status != nil {
		if !validPostStatus(*input.Status) {
			abortWithError(c, NewValidation("invalid status"))
			return
		}
		post.Status = *input.Status
	}

	if err := h.posts.Update(ctx, post); err != nil {
		abortWithError(c, err)
		return
	}
	if input.Categories != nil {
		categories, err := h.resolveCategories(c, *input.Categories)
		if err != nil {
			abortWithError(c, err)
			return
		}
		if err := h.posts.ReplaceCategories(ctx, post, categories); err != nil {
			abortWithError(c, err)
			return
		}
	}

	updated, err := h.posts.GetByID(ctx, post.ID)
	if err != nil || updated == nil {
		abortWithError(c, err)
		return
	}
	obj, err := h.loader.BuildPostSummary(ctx, updated, viewer.UserID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, obj)
}

// DeletePost removes the caller's own post. Comments, engagement rows
// and notifications referencing it go with it.
func (h *Handler) DeletePost(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.delete_post")
	defer span.End()

	viewer := CurrentIdentity(c)

	post, err := h.loadOwnPost(c, viewer.UserID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	if err := h.posts.Delete(ctx, post.ID); err != nil {
		abortWithError(c, err)
		return
	}

	h.logger.Info("post deleted",
		zap.Int64("post_id", post.ID),
		zap.Int64("author_id", viewer.UserID))
	c.Status(http.StatusNoContent)
}

// loadOwnPost resolves the :id path parameter to a post owned by the
// caller. A post owned by someone else is forbidden, not hidden.
func (h *Handler) loadOwnPost(c *gin.Context, viewerID int64) (*models.Post, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return nil, NewValidation("invalid post id")
	}
	post, err := h.posts.GetByID(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, NewNotFound("post not found")
	}
	if post.AuthorID != viewerID {
		return nil, NewForbidden("not the post author")
	}
	return post, nil
}

// resolveCategories maps category slugs to rows, rejecting unknown ones
func (h *Handler) resolveCategories(c *gin.Context, slugs []string) ([]models.Category, error) {
	categories, err := h.categories.GetBySlugs(c.Request.Context(), slugs)
	if err != nil {
		return nil, err
	}
	if len(categories) != len(slugs) {
		return nil, NewValidation("unknown category")
	}
	return categories, nil
}
