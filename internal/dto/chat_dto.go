package dto

import "time"

// UserProfileDTO carries optional visitor details captured by the chat widget.
type UserProfileDTO struct {
	FullName string `json:"full_name,omitempty"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    string `json:"phone,omitempty"`
}

type ChatMessageRequest struct {
	Message   string          `json:"message" validate:"required,max=1000"`
	SessionId string          `json:"session_id,omitempty"`
	Profile   *UserProfileDTO `json:"profile,omitempty"`

	// ConversationWindowSize overrides the session's history window for this
	// request only. Zero means "use the session setting".
	ConversationWindowSize int `json:"conversation_window_size,omitempty" validate:"min=0,max=20"`
}

type ChatMessageResponse struct {
	SessionId            string  `json:"session_id"`
	Answer               string  `json:"answer"`
	Category             string  `json:"category"`
	ContextRelevance     float64 `json:"context_relevance"`
	NeedsHumanAssistance bool    `json:"needs_human_assistance"`
	DurationMs           int64   `json:"duration_ms"`
}

type ChatHistoryResponse struct {
	SessionId string           `json:"session_id"`
	Messages  []ChatMessageDTO `json:"messages"`
}

type ChatMessageDTO struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type SetWindowSizeRequest struct {
	Size int `json:"size" validate:"min=0,max=20"`
}

type WindowSizeResponse struct {
	SessionId string `json:"session_id"`
	Size      int    `json:"size"`
}

// ChatInteractionEvent is the message published to the analytics topic after
// every completed exchange.
type ChatInteractionEvent struct {
	SessionId            string    `json:"session_id"`
	Question             string    `json:"question"`
	Category             string    `json:"category"`
	ContextRelevance     float64   `json:"context_relevance"`
	ClarificationNeeded  bool      `json:"clarification_needed"`
	NeedsRefinement      bool      `json:"needs_refinement"`
	NeedsHumanAssistance bool      `json:"needs_human_assistance"`
	DurationMs           int64     `json:"duration_ms"`
	Timestamp            time.Time `json:"timestamp"`
}
