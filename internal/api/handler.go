package api

import (
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/abubakar1702/techgeek/internal/api/objects"
	"github.com/abubakar1702/techgeek/internal/cache"
	"github.com/abubakar1702/techgeek/internal/db"
	"github.com/abubakar1702/techgeek/internal/engagement"
	"github.com/abubakar1702/techgeek/pkg/logging"
)

// Handler serves the REST API. User-authored HTML is cleaned with the
// UGC policy before it is stored.
type Handler struct {
	db         *gorm.DB
	cache      *cache.Cache
	users      *db.UserRepository
	categories *db.CategoryRepository
	posts      *db.PostRepository
	comments   *db.CommentRepository
	likes      *db.LikeRepository
	bookmarks  *db.BookmarkRepository
	ledger     *engagement.Ledger
	notifier   *engagement.Notifier
	loader     *objects.PostLoader
	sanitizer  *bluemonday.Policy
	logger     *zap.Logger
}

// NewHandler creates a new API handler
func NewHandler(database *gorm.DB, redisCache *cache.Cache) *Handler {
	repo := db.NewRepository(database)
	notifier := engagement.NewNotifier(database)

	return &Handler{
		db:         database,
		cache:      redisCache,
		users:      db.NewUserRepository(repo),
		categories: db.NewCategoryRepository(repo),
		posts:      db.NewPostRepository(repo),
		comments:   db.NewCommentRepository(repo),
		likes:      db.NewLikeRepository(repo),
		bookmarks:  db.NewBookmarkRepository(repo),
		ledger:     engagement.NewLedger(database, notifier),
		notifier:   notifier,
		loader:     objects.NewPostLoader(database),
		sanitizer:  bluemonday.UGCPolicy(),
		logger:     logging.WithComponent("api"),
	}
}
