package memory

import (
	"sync"
	"time"

	"ai-support-chat-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

const (
	// sessionExpiry is how long an idle conversation survives before the
	// cache evicts it.
	sessionExpiry = 24 * time.Hour
	purgeInterval = 1 * time.Hour

	defaultWindowSize = 10
	maxWindowSize     = 20
)

// SessionRepository keeps conversation sessions in process memory. Sessions
// expire after 24 hours of inactivity; every write refreshes the TTL.
type SessionRepository struct {
	cache *cache.Cache

	// mu serializes mutations of individual sessions. go-cache only guards
	// its own map, not the *store.Session values we mutate in place.
	mu sync.Mutex
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		cache: cache.New(sessionExpiry, purgeInterval),
	}
}

// GetOrCreateSession returns the session for the given ID, creating it with
// the default conversation window when it does not exist. A non-empty user
// profile overwrites whatever the session held before, so later requests can
// fill in details the first request lacked.
func (r *SessionRepository) GetOrCreateSession(sessionID string, profile *store.UserProfile) *store.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	session := r.get(sessionID)
	if session == nil {
		session = &store.Session{
			ID:          sessionID,
			History:     []store.ChatMessage{},
			WindowSize:  defaultWindowSize,
			LastUpdated: time.Now(),
		}
	}

	if profile != nil {
		session.UserProfile = profile
	}

	r.save(session)
	return session
}

// AddMessage appends one message to the session history, stamping it with the
// current time. Missing sessions are created on the fly so a message is never
// dropped. A non-nil profile updates the stored one alongside the append.
func (r *SessionRepository) AddMessage(sessionID, role, content string, profile *store.UserProfile) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session := r.get(sessionID)
	if session == nil {
		session = &store.Session{
			ID:         sessionID,
			History:    []store.ChatMessage{},
			WindowSize: defaultWindowSize,
		}
	}

	if profile != nil {
		session.UserProfile = profile
	}

	session.History = append(session.History, store.ChatMessage{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})
	session.LastUpdated = time.Now()

	r.save(session)
}

// GetFormattedHistory returns the most recent messages of the session, bounded
// by its conversation window. A positive windowOverride replaces the stored
// window for this call only; zero falls through to the session's own setting.
func (r *SessionRepository) GetFormattedHistory(sessionID string, windowOverride int) []store.ChatMessage {
	r.mu.Lock()
	defer r.mu.Unlock()

	session := r.get(sessionID)
	if session == nil {
		return nil
	}

	window := session.WindowSize
	if windowOverride > 0 {
		window = clampWindow(windowOverride)
	}

	if len(session.History) <= window {
		return append([]store.ChatMessage(nil), session.History...)
	}
	return append([]store.ChatMessage(nil), session.History[len(session.History)-window:]...)
}

// SetConversationWindowSize updates how many past messages the session feeds
// into generation. Values are clamped to [0, 20].
func (r *SessionRepository) SetConversationWindowSize(sessionID string, size int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session := r.get(sessionID)
	if session == nil {
		session = &store.Session{
			ID:         sessionID,
			History:    []store.ChatMessage{},
			WindowSize: defaultWindowSize,
		}
	}

	session.WindowSize = clampWindow(size)
	session.LastUpdated = time.Now()
	r.save(session)
}

func (r *SessionRepository) GetConversationWindowSize(sessionID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session := r.get(sessionID); session != nil {
		return session.WindowSize
	}
	return defaultWindowSize
}

// Get returns the session without creating it.
func (r *SessionRepository) Get(sessionID string) (*store.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session := r.get(sessionID)
	return session, session != nil
}

func (r *SessionRepository) Delete(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Delete(sessionID)
}

func (r *SessionRepository) get(sessionID string) *store.Session {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Session)
	}
	return nil
}

func (r *SessionRepository) save(session *store.Session) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

func clampWindow(size int) int {
	if size < 0 {
		return 0
	}
	if size > maxWindowSize {
		return maxWindowSize
	}
	return size
}
