package db

import (
	"context"
	"time"

	"github.com/abubakar1702/techgeek/internal/models"
)

// LikeRepository provides post-like database operations
type LikeRepository struct {
	*Repository
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(repo *Repository) *LikeRepository {
	return &LikeRepository{Repository: repo}
}

// Exists reports whether the user has liked the post
func (r *LikeRepository) Exists(ctx context.Context, postID, userID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByPost counts all likes on a post
func (r *LikeRepository) CountByPost(ctx context.Context, postID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByPostBetween counts a post's likes created within [from, to)
func (r *LikeRepository) CountByPostBetween(ctx context.Context, postID int64, from, to time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ? AND created_at >= ? AND created_at < ?", postID, from, to).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// BookmarkRepository provides bookmark database operations
type BookmarkRepository struct {
	*Repository
}

// NewBookmarkRepository creates a new bookmark repository
func NewBookmarkRepository(repo *Repository) *BookmarkRepository {
	return &BookmarkRepository{Repository: repo}
}

// Exists reports whether the user has bookmarked the post
func (r *BookmarkRepository) Exists(ctx context.Context, postID, userID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Bookmark{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByPost counts all bookmarks on a post
func (r *BookmarkRepository) CountByPost(ctx context.Context, postID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Bookmark{}).
		Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListByUser retrieves a user's bookmarks with their posts, newest first
func (r *BookmarkRepository) ListByUser(ctx context.Context, userID int64) ([]models.Bookmark, error) {
	var bookmarks []models.Bookmark
	if err := r.db.WithContext(ctx).
		Preload("Post").Preload("Post.Author").Preload("Post.Categories").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookmarks).Error; err != nil {
		return nil, err
	}
	return bookmarks, nil
}

// CommentLikeRepository provides comment-like database operations
type CommentLikeRepository struct {
	*Repository
}

// NewCommentLikeRepository creates a new comment-like repository
func NewCommentLikeRepository(repo *Repository) *CommentLikeRepository {
	return &CommentLikeRepository{Repository: repo}
}

// Exists reports whether the user has liked the comment
func (r *CommentLikeRepository) Exists(ctx context.Context, commentID, userID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CommentLike{}).
		Where("comment_id = ? AND user_id = ?", commentID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByComment counts all likes on a comment
func (r *CommentLikeRepository) CountByComment(ctx context.Context, commentID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CommentLike{}).
		Where("comment_id = ?", commentID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
