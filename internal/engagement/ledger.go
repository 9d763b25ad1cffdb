package engagement

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/abubakar1702/techgeek/internal/db"
	"github.com/abubakar1702/techgeek/internal/models"
	"github.com/abubakar1702/techgeek/pkg/logging"
	"github.com/abubakar1702/techgeek/pkg/telemetry"
)

// ToggleResult reports the state of a toggle after the mutation. Total
// is re-counted from the ledger after the write, never cached.
type ToggleResult struct {
	Active bool
	Total  int64
}

// Ledger owns the toggle-style engagement rows: post likes, bookmarks
// and comment likes. Each toggle runs in one transaction together with
// any notification it emits. The composite unique index on each table
// is the final arbiter for concurrent toggles on the same pair: an
// insert losing that race is treated as "already active", not as an
// error.
type Ledger struct {
	db       *gorm.DB
	notifier *Notifier
	logger   *zap.Logger
}

// NewLedger creates a new engagement ledger
func NewLedger(database *gorm.DB, notifier *Notifier) *Ledger {
	return &Ledger{
		db:       database,
		notifier: notifier,
		logger:   logging.WithComponent("engagement-ledger"),
	}
}

// TogglePostLike flips the like state for (post, user). Activating the
// like queues a notification for the post author in the same
// transaction, unless the actor is the author.
func (l *Ledger) TogglePostLike(ctx context.Context, post *models.Post, userID int64) (*ToggleResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "ledger.toggle_post_like")
	defer span.End()

	if post == nil {
		return nil, ErrNotFound
	}

	var activated bool
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("post_id = ? AND user_id = ?", post.ID, userID).
			Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			activated = false
			return nil
		}

		// ON CONFLICT DO NOTHING keeps the transaction healthy when a
		// concurrent request wins the insert race. The loser sees zero
		// rows affected and reports the state the winner left; the
		// winner owns the notification.
		like := &models.Like{PostID: post.ID, UserID: userID}
		ins := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(like)
		if ins.Error != nil {
			return ins.Error
		}
		activated = true
		if ins.RowsAffected == 0 {
			l.logger.Debug("like toggle race recovered",
				zap.Int64("post_id", post.ID),
				zap.Int64("user_id", userID))
			return nil
		}

		return l.notifier.Emit(ctx, tx, EmitInput{
			RecipientID: post.AuthorID,
			ActorID:     userID,
			Verb:        models.NotifyVerbLike,
			PostID:      &post.ID,
		})
	})
	if err != nil {
		return nil, err
	}

	total, err := db.NewLikeRepository(db.NewRepository(l.db)).CountByPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	return &ToggleResult{Active: activated, Total: total}, nil
}

// ToggleBookmark flips the bookmark state for (post, user). Bookmarks
// never notify anyone.
func (l *Ledger) ToggleBookmark(ctx context.Context, post *models.Post, userID int64) (*ToggleResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "ledger.toggle_bookmark")
	defer span.End()

	if post == nil {
		return nil, ErrNotFound
	}

	var activated bool
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("post_id = ? AND user_id = ?", post.ID, userID).
			Delete(&models.Bookmark{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			activated = false
			return nil
		}

		bookmark := &models.Bookmark{PostID: post.ID, UserID: userID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(bookmark).Error; err != nil {
			return err
		}
		activated = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	total, err := db.NewBookmarkRepository(db.NewRepository(l.db)).CountByPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	return &ToggleResult{Active: activated, Total: total}, nil
}

// ToggleCommentLike flips the like state for (comment, user). Comment
// likes deliberately emit no notification.
func (l *Ledger) ToggleCommentLike(ctx context.Context, comment *models.Comment, userID int64) (*ToggleResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "ledger.toggle_comment_like")
	defer span.End()

	if comment == nil {
		return nil, ErrNotFound
	}

	var activated bool
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("comment_id = ? AND user_id = ?", comment.ID, userID).
			Delete(&models.CommentLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			activated = false
			return nil
		}

		like := &models.CommentLike{CommentID: comment.ID, UserID: userID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error; err != nil {
			return err
		}
		activated = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	total, err := db.NewCommentLikeRepository(db.NewRepository(l.db)).CountByComment(ctx, comment.ID)
	if err != nil {
		return nil, err
	}
	return &ToggleResult{Active: activated, Total: total}, nil
}

// HasLiked is a read-only membership check, safe for anonymous callers
func (l *Ledger) HasLiked(ctx context.Context, postID, userID int64) (bool, error) {
	return db.NewLikeRepository(db.NewRepository(l.db)).Exists(ctx, postID, userID)
}

// HasBookmarked is a read-only membership check
func (l *Ledger) HasBookmarked(ctx context.Context, postID, userID int64) (bool, error) {
	return db.NewBookmarkRepository(db.NewRepository(l.db)).Exists(ctx, postID, userID)
}

// HasLikedComment is a read-only membership check
func (l *Ledger) HasLikedComment(ctx context.Context, commentID, userID int64) (bool, error) {
	return db.NewCommentLikeRepository(db.NewRepository(l.db)).Exists(ctx, commentID, userID)
}
