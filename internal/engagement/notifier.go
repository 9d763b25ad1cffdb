package engagement

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/abubakar1702/techgeek/internal/db"
	"github.com/abubakar1702/techgeek/internal/models"
	"github.com/abubakar1702/techgeek/pkg/logging"
)

// EmitInput carries the parameters of a notification emission
type EmitInput struct {
	RecipientID int64
	ActorID     int64
	Verb        string
	PostID      *int64
	CommentID   *int64
}

// Suppressed reports whether the emission must be dropped because the
// actor would be notifying themselves.
func (in EmitInput) Suppressed() bool {
	return in.RecipientID == in.ActorID
}

// Notifier derives and persists notification rows from engagement and
// comment actions. Emissions join the caller's transaction so a failed
// notification rolls the triggering write back with it.
type Notifier struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewNotifier creates a new notifier
func NewNotifier(database *gorm.DB) *Notifier {
	return &Notifier{
		db:     database,
		logger: logging.WithComponent("notifier"),
	}
}

// Emit inserts exactly one notification row within tx, unless the
// actor equals the recipient (self-action suppression).
func (n *Notifier) Emit(ctx context.Context, tx *gorm.DB, in EmitInput) error {
	if !models.ValidNotifyVerb(in.Verb) {
		return fmt.Errorf("invalid notification verb: %s", in.Verb)
	}

	if in.Suppressed() {
		n.logger.Debug("notification suppressed",
			zap.String("verb", in.Verb),
			zap.Int64("actor_id", in.ActorID))
		return nil
	}

	notification := &models.Notification{
		RecipientID: in.RecipientID,
		ActorID:     in.ActorID,
		Verb:        in.Verb,
	}
	if in.PostID != nil {
		notification.PostID = sql.NullInt64{Int64: *in.PostID, Valid: true}
	}
	if in.CommentID != nil {
		notification.CommentID = sql.NullInt64{Int64: *in.CommentID, Valid: true}
	}

	n.logger.Info("[NOTIFY]",
		zap.String("verb", in.Verb),
		zap.Int64("recipient_id", in.RecipientID),
		zap.Int64("actor_id", in.ActorID),
		zap.Int64("post_id", getInt64(in.PostID)),
		zap.Int64("comment_id", getInt64(in.CommentID)))

	return db.NewNotificationRepository(db.NewRepository(tx)).Create(ctx, notification)
}

// ListForRecipient returns the recipient's notifications, newest first
func (n *Notifier) ListForRecipient(ctx context.Context, recipientID int64) ([]models.Notification, error) {
	return db.NewNotificationRepository(db.NewRepository(n.db)).ListByRecipient(ctx, recipientID)
}

// CountUnread returns the recipient's unread notification count
func (n *Notifier) CountUnread(ctx context.Context, recipientID int64) (int64, error) {
	return db.NewNotificationRepository(db.NewRepository(n.db)).CountUnread(ctx, recipientID)
}

// MarkRead flips is_read on a notification owned by requester. A
// notification belonging to someone else is reported as not found; the
// listing path already scopes to the recipient, so a foreign id should
// never be visible, but the mutation re-checks ownership anyway.
func (n *Notifier) MarkRead(ctx context.Context, id, requesterID int64) error {
	repo := db.NewNotificationRepository(db.NewRepository(n.db))

	notification, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if notification == nil || notification.RecipientID != requesterID {
		return ErrNotFound
	}
	return repo.MarkRead(ctx, id)
}

func getInt64(ptr *int64) int64 {
	if ptr == nil {
		return 0
	}
	return *ptr
}
