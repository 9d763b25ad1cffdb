package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/abubakar1702/techgeek/internal/models"
	"github.com/abubakar1702/techgeek/pkg/telemetry"
)

// ToggleLike flips the caller's like on a post and returns the new
// state with the fresh total
func (h *Handler) ToggleLike(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.toggle_like")
	defer span.End()

	viewer := CurrentIdentity(c)

	post, err := h.loadPostParam(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	result, err := h.ledger.TogglePostLike(ctx, post, viewer.UserID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"liked":       result.Active,
		"total_likes": result.Total,
	})
}

// ToggleBookmark flips the caller's bookmark on a post
func (h *Handler) ToggleBookmark(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.toggle_bookmark")
	defer span.End()

	viewer := CurrentIdentity(c)

	post, err := h.loadPostParam(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	result, err := h.ledger.ToggleBookmark(ctx, post, viewer.UserID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"bookmarked":      result.Active,
		"total_bookmarks": result.Total,
	})
}

// ToggleCommentLike flips the caller's like on a comment
func (h *Handler) ToggleCommentLike(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.toggle_comment_like")
	defer span.End()

	viewer := CurrentIdentity(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abortWithError(c, NewValidation("invalid comment id"))
		return
	}
	comment, err := h.comments.GetByID(ctx, id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	result, err := h.ledger.ToggleCommentLike(ctx, comment, viewer.UserID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"liked":       result.Active,
		"total_likes": result.Total,
	})
}

// loadPostParam resolves the :id path parameter to a post for toggle
// endpoints. The ledger treats a nil post as not found; the parse
// error is caught here.
func (h *Handler) loadPostParam(c *gin.Context) (*models.Post, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return nil, NewValidation("invalid post id")
	}
	return h.posts.GetByID(c.Request.Context(), id)
}
