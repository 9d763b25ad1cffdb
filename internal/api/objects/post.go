package objects

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/abubakar1702/techgeek/internal/db"
	"github.com/abubakar1702/techgeek/internal/models"
)

// PostLoader builds complete post objects from database rows. All
// counts are live queries against the ledger tables; nothing is
// denormalized onto the post row. Viewer-relative fields (liked,
// bookmarked) are false for anonymous viewers without touching the
// ledger.
type PostLoader struct {
	likes        *db.LikeRepository
	bookmarks    *db.BookmarkRepository
	comments     *db.CommentRepository
	commentLikes *db.CommentLikeRepository
}

// NewPostLoader creates a new post loader
func NewPostLoader(database *gorm.DB) *PostLoader {
	repo := db.NewRepository(database)
	return &PostLoader{
		likes:        db.NewLikeRepository(repo),
		bookmarks:    db.NewBookmarkRepository(repo),
		comments:     db.NewCommentRepository(repo),
		commentLikes: db.NewCommentLikeRepository(repo),
	}
}

// BuildPost builds a full post object including the comment tree.
// viewerID is zero for anonymous viewers.
func (l *PostLoader) BuildPost(ctx context.Context, post *models.Post, viewerID int64) (map[string]interface{}, error) {
	obj, err := l.BuildPostSummary(ctx, post, viewerID)
	if err != nil {
		return nil, err
	}

	comments, err := l.buildCommentTree(ctx, post.ID, viewerID)
	if err != nil {
		return nil, err
	}
	obj["comments"] = comments

	return obj, nil
}

// BuildPostSummary builds a post object without the comment tree
func (l *PostLoader) BuildPostSummary(ctx context.Context, post *models.Post, viewerID int64) (map[string]interface{}, error) {
	totalLikes, err := l.likes.CountByPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	totalComments, err := l.comments.CountByPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	liked := false
	bookmarked := false
	if viewerID > 0 {
		if liked, err = l.likes.Exists(ctx, post.ID, viewerID); err != nil {
			return nil, err
		}
		if bookmarked, err = l.bookmarks.Exists(ctx, post.ID, viewerID); err != nil {
			return nil, err
		}
	}

	categories := make([]map[string]interface{}, 0, len(post.Categories))
	for i := range post.Categories {
		categories = append(categories, BuildCategory(&post.Categories[i]))
	}

	obj := map[string]interface{}{
		"id":             post.ID,
		"title":          post.Title,
		"slug":           post.Slug,
		"content":        post.Content,
		"image":          post.Image,
		"status":         post.Status,
		"author":         BuildUser(post.Author),
		"categories":     categories,
		"view_count":     post.ViewCount,
		"total_likes":    totalLikes,
		"total_comments": totalComments,
		"liked":          liked,
		"bookmarked":     bookmarked,
		"created_at":     post.CreatedAt.Format(time.RFC3339),
		"updated_at":     post.UpdatedAt.Format(time.RFC3339),
	}

	return obj, nil
}

// BuildPostList builds summary objects for a slice of posts in order
func (l *PostLoader) BuildPostList(ctx context.Context, posts []models.Post, viewerID int64) ([]map[string]interface{}, error) {
	result := make([]map[string]interface{}, 0, len(posts))
	for i := range posts {
		obj, err := l.BuildPostSummary(ctx, &posts[i], viewerID)
		if err != nil {
			return nil, err
		}
		result = append(result, obj)
	}
	return result, nil
}

// BuildUser builds a public user object
func BuildUser(user *models.User) map[string]interface{} {
	if user == nil {
		return nil
	}
	return map[string]interface{}{
		"id":              user.ID,
		"email":           user.Email,
		"full_name":       user.FullName,
		"profile_picture": user.ProfilePicture,
	}
}

// BuildCategory builds a category object
func BuildCategory(category *models.Category) map[string]interface{} {
	return map[string]interface{}{
		"id":   category.ID,
		"name": category.Name,
		"slug": category.Slug,
	}
}
