package services

import (
	"sync"
	"time"
)

// DefaultLikeCooldown is the suppression window between like toggles for
// the same (user, post) pair.
const DefaultLikeCooldown = 5 * time.Second

type likeKey struct {
	userID int
	postID int
}

// LikeLimiter is the process-local like-rate-limiter: a mutex-guarded map
// from (user, post) to cooldown expiry. Entries are checked lazily against
// the clock on access instead of being removed by timers, so behavior is
// the same under any scheduling model. The map is volatile and only ever a
// throttle hint; the post's persisted like set stays the source of truth.
type LikeLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	entries map[likeKey]time.Time
	now     func() time.Time
}

// NewLikeLimiter creates a limiter with the given cooldown window.
func NewLikeLimiter(window time.Duration) *LikeLimiter {
	return &LikeLimiter{
		window:  window,
		entries: make(map[likeKey]time.Time),
		now:     time.Now,
	}
}

// Allow reports whether a toggle for the pair may proceed. An expired entry
// is deleted on the way through.
func (l *LikeLimiter) Allow(userID, postID int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := likeKey{userID: userID, postID: postID}
	expiry, ok := l.entries[key]
	if !ok {
		return true
	}
	if l.now().After(expiry) {
		delete(l.entries, key)
		return true
	}
	return false
}

// Start begins a cooldown for the pair.
func (l *LikeLimiter) Start(userID, postID int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[likeKey{userID: userID, postID: postID}] = l.now().Add(l.window)
}

// Clear drops any cooldown for the pair. An unlike is not cooldown-gated
// against a subsequent like.
func (l *LikeLimiter) Clear(userID, postID int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, likeKey{userID: userID, postID: postID})
}
