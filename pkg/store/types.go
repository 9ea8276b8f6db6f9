package store

import "time"

// Message roles used across the chat pipeline.
const (
	RoleHuman     = "human"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ChatMessage is a single conversation turn. Immutable once appended to a
// session's history.
type ChatMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// UserProfile holds the optional contact details collected by the UI before a
// conversation starts.
type UserProfile struct {
	FullName string `json:"fullname"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
}

// Session is the in-memory conversation state for one chat session.
// History is append-only for the life of the session.
type Session struct {
	ID          string       `json:"id"`
	History     []ChatMessage `json:"history"`
	WindowSize  int          `json:"window_size"`
	UserProfile *UserProfile `json:"user_profile,omitempty"`
	LastUpdated time.Time    `json:"last_updated"`
}

// DocumentChunk is a retrieved passage of company documentation plus the
// metadata the ingestion process attaches to it. Consumed read-only by the
// retriever.
type DocumentChunk struct {
	ID       string   `json:"id"`
	Content  string   `json:"content"`
	Source   string   `json:"source"`
	Category string   `json:"category"`
	Tags     []string `json:"tags,omitempty"`
	IsFAQ    bool     `json:"is_faq"`
	Section  string   `json:"section,omitempty"`
	Score    float32  `json:"score,omitempty"`
}
