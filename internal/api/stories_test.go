package api

import (
	"testing"
	"time"

	"github.com/abubakar1702/techgeek/internal/models"
)

func TestRankTopStories(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	posts := []models.Post{
		{ID: 1, CreatedAt: base},
		{ID: 2, CreatedAt: base.Add(time.Hour)},
		{ID: 3, CreatedAt: base.Add(2 * time.Hour)},
		{ID: 4, CreatedAt: base.Add(3 * time.Hour)},
	}

	tests := []struct {
		name  string
		likes map[int64]int64
		limit int
		want  []int64
	}{
		{
			name:  "ordered by like count",
			likes: map[int64]int64{1: 5, 2: 9, 3: 1, 4: 3},
			limit: 3,
			want:  []int64{2, 1, 4},
		},
		{
			name:  "ties broken by newest first",
			likes: map[int64]int64{1: 2, 2: 2, 3: 2, 4: 2},
			limit: 3,
			want:  []int64{4, 3, 2},
		},
		{
			name:  "zero likes still ranks by recency",
			likes: map[int64]int64{},
			limit: 3,
			want:  []int64{4, 3, 2},
		},
		{
			name:  "fewer posts than limit",
			likes: map[int64]int64{1: 1},
			limit: 10,
			want:  []int64{1, 4, 3, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rankTopStories(posts, tt.likes, tt.limit)
			if len(got) != len(tt.want) {
				t.Fatalf("rankTopStories() returned %d posts, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].ID != tt.want[i] {
					t.Errorf("rankTopStories()[%d].ID = %d, want %d", i, got[i].ID, tt.want[i])
				}
			}
		})
	}
}

func TestRankTopStoriesDoesNotMutateInput(t *testing.T) {
	posts := []models.Post{{ID: 1}, {ID: 2}, {ID: 3}}
	rankTopStories(posts, map[int64]int64{3: 10}, 2)

	for i, want := range []int64{1, 2, 3} {
		if posts[i].ID != want {
			t.Errorf("input posts[%d].ID = %d, want %d", i, posts[i].ID, want)
		}
	}
}
