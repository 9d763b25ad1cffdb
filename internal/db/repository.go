package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/abubakar1702/techgeek/internal/models"
)

// Repository provides database access methods
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// DB exposes the underlying gorm handle for transaction composition
func (r *Repository) DB() *gorm.DB {
	return r.db
}

// UserRepository provides user-related database operations
type UserRepository struct {
	*Repository
}

// NewUserRepository creates a new user repository
func NewUserRepository(repo *Repository) *UserRepository {
	return &UserRepository{Repository: repo}
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// CategoryRepository provides category-related database operations
type CategoryRepository struct {
	*Repository
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(repo *Repository) *CategoryRepository {
	return &CategoryRepository{Repository: repo}
}

// GetBySlugs retrieves categories matching the given slugs
func (r *CategoryRepository) GetBySlugs(ctx context.Context, slugs []string) ([]models.Category, error) {
	var categories []models.Category
	if len(slugs) == 0 {
		return categories, nil
	}
	if err := r.db.WithContext(ctx).Where("slug IN ?", slugs).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// EnsureDefaults creates the fixed category set if missing
func (r *CategoryRepository) EnsureDefaults(ctx context.Context) error {
	types := []string{
		models.CategoryArtificialIntelligence,
		models.CategoryHardware,
		models.CategorySmartphone,
		models.CategoryGaming,
		models.CategoryHowTo,
		models.CategoryNews,
		models.CategoryOther,
	}
	for _, t := range types {
		category := models.Category{
			Type: t,
			Name: models.CategoryName(t),
			Slug: t,
		}
		err := r.db.WithContext(ctx).
			Where("type = ?", t).
			FirstOrCreate(&category).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// PostRepository provides post-related database operations
type PostRepository struct {
	*Repository
}

// NewPostRepository creates a new post repository
func NewPostRepository(repo *Repository) *PostRepository {
	return &PostRepository{Repository: repo}
}

// GetByID retrieves a post by ID
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).
		Preload("Author").Preload("Categories").
		First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// GetBySlug retrieves a post by slug
func (r *PostRepository) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).
		Preload("Author").Preload("Categories").
		Where("slug = ?", slug).
		First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// SlugExists reports whether a slug is already taken
func (r *PostRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create creates a new post
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// Update updates a post
func (r *PostRepository) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

// ReplaceCategories replaces a post's category associations
func (r *PostRepository) ReplaceCategories(ctx context.Context, post *models.Post, categories []models.Category) error {
	return r.db.WithContext(ctx).Model(post).Association("Categories").Replace(categories)
}

// Delete removes a post. Comments, likes, bookmarks, views and
// notifications referencing it go with it through FK cascades.
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Post{}, id).Error
}

// ListFiltered retrieves published posts filtered by category slug,
// optionally ordered by recency and limited
func (r *PostRepository) ListFiltered(ctx context.Context, categorySlug string, recent bool, limit int) ([]models.Post, error) {
	query := r.db.WithContext(ctx).
		Preload("Author").Preload("Categories").
		Model(&models.Post{}).
		Where("blog_posts.status = ?", models.PostStatusPublished)

	if categorySlug != "" {
		query = query.
			Joins("JOIN post_categories ON post_categories.post_id = blog_posts.id").
			Joins("JOIN categories ON categories.id = post_categories.category_id").
			Where("LOWER(categories.slug) = LOWER(?)", categorySlug).
			Distinct("blog_posts.*")
	}
	if recent {
		query = query.Order("blog_posts.created_at DESC")
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var posts []models.Post
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Search retrieves published posts whose title or content contains the query
func (r *PostRepository) Search(ctx context.Context, q string) ([]models.Post, error) {
	query := r.db.WithContext(ctx).
		Preload("Author").Preload("Categories").
		Where("status = ?", models.PostStatusPublished)

	if q != "" {
		pattern := "%" + q + "%"
		query = query.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern)
	}

	var posts []models.Post
	if err := query.Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ListByAuthor retrieves an author's posts, optionally restricted to a status
func (r *PostRepository) ListByAuthor(ctx context.Context, authorID int64, status string) ([]models.Post, error) {
	query := r.db.WithContext(ctx).
		Preload("Author").Preload("Categories").
		Where("author_id = ?", authorID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var posts []models.Post
	if err := query.Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ListPublishedBefore retrieves published posts created before the cutoff
func (r *PostRepository) ListPublishedBefore(ctx context.Context, cutoff time.Time) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.WithContext(ctx).
		Preload("Author").Preload("Categories").
		Where("status = ? AND created_at < ?", models.PostStatusPublished, cutoff).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// IncrementViewCount atomically bumps a post's view counter
func (r *PostRepository) IncrementViewCount(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}

// RecordView stores an analytics row for a page view
func (r *PostRepository) RecordView(ctx context.Context, view *models.PostView) error {
	return r.db.WithContext(ctx).Create(view).Error
}

// CommentRepository provides comment-related database operations
type CommentRepository struct {
	*Repository
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(repo *Repository) *CommentRepository {
	return &CommentRepository{Repository: repo}
}

// GetByID retrieves a comment by ID
func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).
		Preload("Author").
		First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

// Create creates a new comment
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// Update updates a comment
func (r *CommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

// Delete removes a comment, its likes and its reply subtree in a
// single transaction. The subtree is collected level by level; the
// rendered tree is two levels deep but stray deeper rows are removed
// the same way.
func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Seen-set guards the walk against self- or cross-referential
		// parent rows that would otherwise loop forever.
		seen := map[int64]bool{id: true}
		ids := []int64{id}
		frontier := []int64{id}
		for len(frontier) > 0 {
			var replyIDs []int64
			if err := tx.Model(&models.Comment{}).
				Where("parent_id IN ?", frontier).
				Pluck("id", &replyIDs).Error; err != nil {
				return err
			}
			frontier = frontier[:0]
			for _, replyID := range replyIDs {
				if seen[replyID] {
					continue
				}
				seen[replyID] = true
				ids = append(ids, replyID)
				frontier = append(frontier, replyID)
			}
		}

		if err := tx.Where("comment_id IN ?", ids).
			Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("comment_id IN ?", ids).
			Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&models.Comment{}).Error
	})
}

// ListTopLevelByPost retrieves a post's top-level comments, oldest first
func (r *CommentRepository) ListTopLevelByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ? AND parent_id IS NULL", postID).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// ListApprovedReplies retrieves a comment's approved replies, oldest first
func (r *CommentRepository) ListApprovedReplies(ctx context.Context, parentID int64) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("parent_id = ? AND is_approved = ?", parentID, true).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// CountByPost counts all of a post's comments as a flat total
func (r *CommentRepository) CountByPost(ctx context.Context, postID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
