package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/abubakar1702/techgeek/internal/engagement"
	"github.com/abubakar1702/techgeek/internal/models"
	"github.com/abubakar1702/techgeek/pkg/telemetry"
)

// createCommentInput references the post by slug or by numeric id,
// whichever the caller has at hand
type createCommentInput struct {
	Slug     string `json:"slug"`
	PostID   int64  `json:"post"`
	Content  string `json:"content" binding:"required"`
	ParentID *int64 `json:"parent"`
}

type updateCommentInput struct {
	Content string `json:"content" binding:"required"`
}

// CreateComment creates a comment or a reply. The comment row and the
// notification it triggers are written in one transaction: a post
// author is notified of a comment, a parent comment's author of a
// reply, and nobody is notified of their own action.
func (h *Handler) CreateComment(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.create_comment")
	defer span.End()

	viewer := CurrentIdentity(c)

	var input createCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithError(c, NewValidation(err.Error()))
		return
	}

	var (
		post *models.Post
		err  error
	)
	switch {
	case input.Slug != "":
		post, err = h.posts.GetBySlug(ctx, input.Slug)
	case input.PostID > 0:
		post, err = h.posts.GetByID(ctx, input.PostID)
	default:
		abortWithError(c, NewValidation("post reference required"))
		return
	}
	if err != nil {
		abortWithError(c, err)
		return
	}
	if post == nil {
		abortWithError(c, NewNotFound("post not found"))
		return
	}

	var parent *models.Comment
	if input.ParentID != nil {
		parent, err = h.comments.GetByID(ctx, *input.ParentID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		if parent == nil {
			abortWithError(c, NewNotFound("parent comment not found"))
			return
		}
		if parent.PostID != post.ID {
			abortWithError(c, NewValidation("parent comment belongs to a different post"))
			return
		}
		if parent.IsReply() {
			abortWithError(c, NewValidation("replies cannot be nested"))
			return
		}
	}

	comment := &models.Comment{
		PostID:   post.ID,
		AuthorID: viewer.UserID,
		Content:  h.sanitizer.Sanitize(input.Content),
	}
	if parent != nil {
		comment.ParentID = sql.NullInt64{Int64: parent.ID, Valid: true}
	}

	err = h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}

		emit := engagement.EmitInput{
			RecipientID: post.AuthorID,
			ActorID:     viewer.UserID,
			Verb:        models.NotifyVerbComment,
			PostID:      &post.ID,
			CommentID:   &comment.ID,
		}
		if parent != nil {
			emit.RecipientID = parent.AuthorID
			emit.Verb = models.NotifyVerbReply
		}
		return h.notifier.Emit(ctx, tx, emit)
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	created, err := h.comments.GetByID(ctx, comment.ID)
	if err != nil || created == nil {
		abortWithError(c, err)
		return
	}
	obj, err := h.loader.BuildComment(ctx, created, viewer.UserID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	obj["replies"] = []map[string]interface{}{}

	h.logger.Info("comment created",
		zap.Int64("comment_id", comment.ID),
		zap.Int64("post_id", post.ID),
		zap.Bool("is_reply", parent != nil))
	c.JSON(http.StatusCreated, obj)
}

// UpdateComment edits the caller's own comment
func (h *Handler) UpdateComment(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.update_comment")
	defer span.End()

	viewer := CurrentIdentity(c)

	comment, err := h.loadOwnComment(c, viewer.UserID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	var input updateCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithError(c, NewValidation(err.Error()))
		return
	}

	comment.Content = h.sanitizer.Sanitize(input.Content)
	if err := h.comments.Update(ctx, comment); err != nil {
		abortWithError(c, err)
		return
	}

	obj, err := h.loader.BuildComment(ctx, comment, viewer.UserID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, obj)
}

// DeleteComment removes the caller's own comment together with its
// replies, their likes and the notifications they produced
func (h *Handler) DeleteComment(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.delete_comment")
	defer span.End()

	viewer := CurrentIdentity(c)

	comment, err := h.loadOwnComment(c, viewer.UserID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	if err := h.comments.Delete(ctx, comment.ID); err != nil {
		abortWithError(c, err)
		return
	}

	h.logger.Info("comment deleted",
		zap.Int64("comment_id", comment.ID),
		zap.Int64("author_id", viewer.UserID))
	c.Status(http.StatusNoContent)
}

// loadOwnComment resolves the :id path parameter to a comment owned by
// the caller
func (h *Handler) loadOwnComment(c *gin.Context, viewerID int64) (*models.Comment, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return nil, NewValidation("invalid comment id")
	}
	comment, err := h.comments.GetByID(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, NewNotFound("comment not found")
	}
	if comment.AuthorID != viewerID {
		return nil, NewForbidden("not the comment author")
	}
	return comment, nil
}
