package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abubakar1702/techgeek/internal/api/objects"
	"github.com/abubakar1702/techgeek/internal/models"
	"github.com/abubakar1702/techgeek/pkg/telemetry"
)

// GetUserInfo returns the authenticated user's full account view:
// profile plus published posts, drafts and bookmarked posts
func (h *Handler) GetUserInfo(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.get_user_info")
	defer span.End()

	viewer := CurrentIdentity(c)

	user, err := h.users.GetByID(ctx, viewer.UserID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if user == nil {
		abortWithError(c, NewNotFound("user not found"))
		return
	}

	published, err := h.posts.ListByAuthor(ctx, viewer.UserID, models.PostStatusPublished)
	if err != nil {
		abortWithError(c, err)
		return
	}
	postObjs, err := h.loader.BuildPostList(ctx, published, viewer.UserID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	drafts, err := h.posts.ListByAuthor(ctx, viewer.UserID, models.PostStatusDraft)
	if err != nil {
		abortWithError(c, err)
		return
	}
	draftObjs, err := h.loader.BuildPostList(ctx, drafts, viewer.UserID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	bookmarkObjs, err := h.bookmarkedPosts(ctx, viewer.UserID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	obj := objects.BuildUser(user)
	obj["created_at"] = user.CreatedAt.Format(time.RFC3339)
	obj["posts"] = postObjs
	obj["drafts"] = draftObjs
	obj["bookmarks"] = bookmarkObjs
	c.JSON(http.StatusOK, obj)
}

// GetUser returns a public profile with the user's published posts
func (h *Handler) GetUser(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.get_user")
	defer span.End()

	viewer := CurrentIdentity(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abortWithError(c, NewValidation("invalid user id"))
		return
	}
	user, err := h.users.GetByID(ctx, id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if user == nil {
		abortWithError(c, NewNotFound("user not found"))
		return
	}

	posts, err := h.posts.ListByAuthor(ctx, user.ID, models.PostStatusPublished)
	if err != nil {
		abortWithError(c, err)
		return
	}
	postObjs, err := h.loader.BuildPostList(ctx, posts, viewer.UserID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	obj := objects.BuildUser(user)
	obj["posts"] = postObjs
	c.JSON(http.StatusOK, obj)
}

// ListDrafts returns the caller's draft posts
func (h *Handler) ListDrafts(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.list_drafts")
	defer span.End()

	viewer := CurrentIdentity(c)

	posts, err := h.posts.ListByAuthor(ctx, viewer.UserID, models.PostStatusDraft)
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

// ListBookmarks returns the posts the caller has bookmarked, most
// recently bookmarked first
func (h *Handler) ListBookmarks(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.list_bookmarks")
	defer span.End()

	viewer := CurrentIdentity(c)

	result, err := h.bookmarkedPosts(ctx, viewer.UserID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) bookmarkedPosts(ctx context.Context, userID int64) ([]map[string]interface{}, error) {
	bookmarks, err := h.bookmarks.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]map[string]interface{}, 0, len(bookmarks))
	for i := range bookmarks {
		if bookmarks[i].Post == nil {
			continue
		}
		obj, err := h.loader.BuildPostSummary(ctx, bookmarks[i].Post, userID)
		if err != nil {
			return nil, err
		}
		result = append(result, obj)
	}
	return result, nil
}
