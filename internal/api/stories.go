package api

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abubakar1702/techgeek/internal/cache"
	"github.com/abubakar1702/techgeek/internal/models"
	"github.com/abubakar1702/techgeek/pkg/telemetry"
)

const (
	topStoriesLimit = 3
	topStoriesTTL   = 5 * time.Minute
)

// TopStories returns up to three published posts ranked by likes
// received today, newest first among ties. The anonymous rendering is
// cached per day; signed-in viewers bypass the cache because liked and
// bookmarked are viewer-relative.
func (h *Handler) TopStories(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.top_stories")
	defer span.End()

	viewer := CurrentIdentity(c)
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	cacheKey := cache.HashKey("top-stories", startOfDay.Format("2006-01-02"))

	if !viewer.Authenticated {
		var cached []map[string]interface{}
		if err := h.cache.GetJSON(cacheKey, &cached); err == nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	posts, err := h.posts.ListPublishedBefore(ctx, now)
	if err != nil {
		abortWithError(c, err)
		return
	}

	likesToday := make(map[int64]int64, len(posts))
	for i := range posts {
		count, err := h.likes.CountByPostBetween(ctx, posts[i].ID, startOfDay, now)
		if err != nil {
			abortWithError(c, err)
			return
		}
		likesToday[posts[i].ID] = count
	}

	top := rankTopStories(posts, likesToday, topStoriesLimit)
	result, err := h.loader.BuildPostList(ctx, top, viewer.UserID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	if !viewer.Authenticated {
		if err := h.cache.SetJSON(cacheKey, result, topStoriesTTL); err != nil && err != cache.ErrCacheDisabled {
			h.logger.Warn("top stories cache write failed", zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, result)
}

// rankTopStories orders posts by like count descending, breaking ties
// by creation time newest first, and truncates to limit
func rankTopStories(posts []models.Post, likes map[int64]int64, limit int) []models.Post {
	ranked := make([]models.Post, len(posts))
	copy(ranked, posts)

	sort.SliceStable(ranked, func(i, j int) bool {
		li, lj := likes[ranked[i].ID], likes[ranked[j].ID]
		if li != lj {
			return li > lj
		}
		return ranked[i].CreatedAt.After(ranked[j].CreatedAt)
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
