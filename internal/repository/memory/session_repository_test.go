package memory

import (
	"fmt"
	"testing"

	"ai-support-chat-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateSessionIsIdempotent(t *testing.T) {
	repo := NewSessionRepository()

	first := repo.GetOrCreateSession("s1", nil)
	repo.AddMessage("s1", store.RoleHuman, "hello", nil)
	second := repo.GetOrCreateSession("s1", nil)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, second.History, 1)
	assert.Equal(t, defaultWindowSize, second.WindowSize)
}

func TestGetOrCreateSessionUpdatesProfile(t *testing.T) {
	repo := NewSessionRepository()

	repo.GetOrCreateSession("s1", nil)
	session := repo.GetOrCreateSession("s1", &store.UserProfile{FullName: "Ada", Email: "ada@example.com"})

	require.NotNil(t, session.UserProfile)
	assert.Equal(t, "Ada", session.UserProfile.FullName)
}

func TestAddMessageUpdatesProfile(t *testing.T) {
	repo := NewSessionRepository()

	repo.AddMessage("s1", store.RoleHuman, "hello", nil)
	repo.AddMessage("s1", store.RoleHuman, "it's Ada", &store.UserProfile{FullName: "Ada"})

	session, ok := repo.Get("s1")
	require.True(t, ok)
	require.NotNil(t, session.UserProfile)
	assert.Equal(t, "Ada", session.UserProfile.FullName)
}

func TestAddMessagePreservesOrder(t *testing.T) {
	repo := NewSessionRepository()

	repo.AddMessage("s1", store.RoleHuman, "first", nil)
	repo.AddMessage("s1", store.RoleAssistant, "second", nil)
	repo.AddMessage("s1", store.RoleHuman, "third", nil)

	history := repo.GetFormattedHistory("s1", 0)

	require.Len(t, history, 3)
	assert.Equal(t, "first", history[0].Content)
	assert.Equal(t, "second", history[1].Content)
	assert.Equal(t, "third", history[2].Content)
	assert.False(t, history[0].Timestamp.IsZero())
}

func TestGetFormattedHistoryWindow(t *testing.T) {
	repo := NewSessionRepository()
	repo.SetConversationWindowSize("s1", 3)

	for i := 1; i <= 5; i++ {
		repo.AddMessage("s1", store.RoleHuman, fmt.Sprintf("message %d", i), nil)
	}

	history := repo.GetFormattedHistory("s1", 0)

	require.Len(t, history, 3)
	assert.Equal(t, "message 3", history[0].Content)
	assert.Equal(t, "message 5", history[2].Content)
}

func TestGetFormattedHistoryOverride(t *testing.T) {
	repo := NewSessionRepository()

	for i := 1; i <= 5; i++ {
		repo.AddMessage("s1", store.RoleHuman, fmt.Sprintf("message %d", i), nil)
	}

	t.Run("positive override wins", func(t *testing.T) {
		assert.Len(t, repo.GetFormattedHistory("s1", 2), 2)
	})

	t.Run("zero falls through to session window", func(t *testing.T) {
		assert.Len(t, repo.GetFormattedHistory("s1", 0), 5)
	})

	t.Run("override above maximum is clamped", func(t *testing.T) {
		assert.Len(t, repo.GetFormattedHistory("s1", 500), 5)
	})
}

func TestSetConversationWindowSizeClamps(t *testing.T) {
	repo := NewSessionRepository()

	repo.SetConversationWindowSize("s1", -4)
	assert.Equal(t, 0, repo.GetConversationWindowSize("s1"))

	repo.SetConversationWindowSize("s1", 50)
	assert.Equal(t, maxWindowSize, repo.GetConversationWindowSize("s1"))

	repo.SetConversationWindowSize("s1", 7)
	assert.Equal(t, 7, repo.GetConversationWindowSize("s1"))
}

func TestGetFormattedHistoryUnknownSession(t *testing.T) {
	repo := NewSessionRepository()

	assert.Nil(t, repo.GetFormattedHistory("ghost", 0))
	assert.Equal(t, defaultWindowSize, repo.GetConversationWindowSize("ghost"))
}
