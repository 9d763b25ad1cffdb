package objects

import (
	"context"
	"time"

	"github.com/abubakar1702/techgeek/internal/models"
)

// buildCommentTree loads a post's rendered comment tree: top-level
// comments oldest first, each with its approved replies nested one
// level down. Unapproved replies are invisible; unapproved top-level
// comments are kept out the same way.
func (l *PostLoader) buildCommentTree(ctx context.Context, postID, viewerID int64) ([]map[string]interface{}, error) {
	topLevel, err := l.comments.ListTopLevelByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	result := make([]map[string]interface{}, 0, len(topLevel))
	for i := range topLevel {
		if !topLevel[i].IsApproved {
			continue
		}

		obj, err := l.BuildComment(ctx, &topLevel[i], viewerID)
		if err != nil {
			return nil, err
		}

		replies, err := l.comments.ListApprovedReplies(ctx, topLevel[i].ID)
		if err != nil {
			return nil, err
		}
		replyObjs := make([]map[string]interface{}, 0, len(replies))
		for j := range replies {
			replyObj, err := l.BuildComment(ctx, &replies[j], viewerID)
			if err != nil {
				return nil, err
			}
			replyObj["replies"] = []map[string]interface{}{}
			replyObjs = append(replyObjs, replyObj)
		}
		obj["replies"] = replyObjs

		result = append(result, obj)
	}

	return result, nil
}

// BuildComment builds a single comment object without replies
func (l *PostLoader) BuildComment(ctx context.Context, comment *models.Comment, viewerID int64) (map[string]interface{}, error) {
	totalLikes, err := l.commentLikes.CountByComment(ctx, comment.ID)
	if err != nil {
		return nil, err
	}

	liked := false
	if viewerID > 0 {
		if liked, err = l.commentLikes.Exists(ctx, comment.ID, viewerID); err != nil {
			return nil, err
		}
	}

	var parentID interface{}
	if comment.ParentID.Valid {
		parentID = comment.ParentID.Int64
	}

	return map[string]interface{}{
		"id":          comment.ID,
		"post":        comment.PostID,
		"parent":      parentID,
		"author":      BuildUser(comment.Author),
		"content":     comment.Content,
		"total_likes": totalLikes,
		"liked":       liked,
		"created_at":  comment.CreatedAt.Format(time.RFC3339),
		"updated_at":  comment.UpdatedAt.Format(time.RFC3339),
	}, nil
}
