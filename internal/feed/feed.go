package feed

import (
	"sync"

	"github.com/ascend-app/ascend-api/internal/models"
	"github.com/google/uuid"
)

// Cache mirrors the two feed scopes the server exposes. Circle and follow
// lists are independent; a post lives in exactly one of them. Mutations
// replace the backing slice.
type Cache struct {
	mu     sync.RWMutex
	circle []models.Post
	follow []models.Post
}

func New() *Cache {
	return &Cache{}
}

// Set replaces one scope's post list. Unknown scopes are ignored.
func (c *Cache) Set(scope string, posts []models.Post) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := make([]models.Post, len(posts))
	copy(next, posts)
	switch scope {
	case models.FeedCircle:
		c.circle = next
	case models.FeedFollow:
		c.follow = next
	}
}

// Prepend inserts a post at the head of its scope's list.
func (c *Cache) Prepend(scope string, p models.Post) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch scope {
	case models.FeedCircle:
		c.circle = prepend(c.circle, p)
	case models.FeedFollow:
		c.follow = prepend(c.follow, p)
	}
}

// Posts returns one scope's list, newest first.
func (c *Cache) Posts(scope string) []models.Post {
	c.mu.RLock()
	defer c.mu.RUnlock()
	switch scope {
	case models.FeedCircle:
		return c.circle
	case models.FeedFollow:
		return c.follow
	}
	return nil
}

// React appends a reaction to the matching post in either scope. Unknown post
// ids are silent no-ops.
func (c *Cache) React(postID uuid.UUID, r models.Reaction) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if next, ok := react(c.circle, postID, r); ok {
		c.circle = next
		return
	}
	if next, ok := react(c.follow, postID, r); ok {
		c.follow = next
	}
}

func prepend(posts []models.Post, p models.Post) []models.Post {
	next := make([]models.Post, 0, len(posts)+1)
	next = append(next, p)
	return append(next, posts...)
}

func react(posts []models.Post, postID uuid.UUID, r models.Reaction) ([]models.Post, bool) {
	for i := range posts {
		if posts[i].ID == postID {
			next := make([]models.Post, len(posts))
			copy(next, posts)
			reactions := make([]models.Reaction, len(next[i].Reactions), len(next[i].Reactions)+1)
			copy(reactions, next[i].Reactions)
			next[i].Reactions = append(reactions, r)
			return next, true
		}
	}
	return nil, false
}
