package objects

import (
	"time"

	"github.com/abubakar1702/techgeek/internal/models"
)

// BuildNotification builds a notification object for the inbox view
func BuildNotification(n *models.Notification) map[string]interface{} {
	var postID, commentID interface{}
	if n.PostID.Valid {
		postID = n.PostID.Int64
	}
	if n.CommentID.Valid {
		commentID = n.CommentID.Int64
	}

	obj := map[string]interface{}{
		"id":         n.ID,
		"actor":      BuildUser(n.Actor),
		"verb":       n.Verb,
		"post":       postID,
		"comment":    commentID,
		"is_read":    n.IsRead,
		"created_at": n.CreatedAt.Format(time.RFC3339),
	}
	if n.Post != nil {
		obj["post_title"] = n.Post.Title
		obj["post_slug"] = n.Post.Slug
	}
	return obj
}

// BuildNotificationList builds notification objects in order
func BuildNotificationList(notifications []models.Notification) []map[string]interface{} {
	result := make([]map[string]interface{}, 0, len(notifications))
	for i := range notifications {
		result = append(result, BuildNotification(&notifications[i]))
	}
	return result
}
