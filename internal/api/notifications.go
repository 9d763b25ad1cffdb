package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/abubakar1702/techgeek/internal/api/objects"
	"github.com/abubakar1702/techgeek/pkg/telemetry"
)

// ListNotifications returns the caller's notifications, newest first
func (h *Handler) ListNotifications(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.list_notifications")
	defer span.End()

	viewer := CurrentIdentity(c)

	notifications, err := h.notifier.ListForRecipient(ctx, viewer.UserID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, objects.BuildNotificationList(notifications))
}

// UnreadCount returns the caller's unread notification count
func (h *Handler) UnreadCount(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.unread_count")
	defer span.End()

	viewer := CurrentIdentity(c)

	count, err := h.notifier.CountUnread(ctx, viewer.UserID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": count})
}

// MarkNotificationRead marks one of the caller's notifications as
// read. Someone else's notification resolves as not found, never as
// forbidden, so IDs cannot be probed.
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.mark_notification_read")
	defer span.End()

	viewer := CurrentIdentity(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abortWithError(c, NewValidation("invalid notification id"))
		return
	}

	if err := h.notifier.MarkRead(ctx, id, viewer.UserID); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "marked as read"})
}
