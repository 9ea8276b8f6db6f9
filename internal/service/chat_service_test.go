package service

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"ai-support-chat-be/internal/dto"
	"ai-support-chat-be/internal/pkg/serverutils"
	"ai-support-chat-be/internal/repository/memory"
	"ai-support-chat-be/pkg/llm"
	"ai-support-chat-be/pkg/rag/generate"
	"ai-support-chat-be/pkg/rag/pipeline"
	"ai-support-chat-be/pkg/rag/refine"
	"ai-support-chat-be/pkg/rag/retrieve"
	"ai-support-chat-be/pkg/rag/validate"
	"ai-support-chat-be/pkg/store"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTopic = "CHAT_INTERACTION_TEST"

type stubSearcher struct {
	chunks []store.DocumentChunk
}

func (s *stubSearcher) SimilaritySearch(_ context.Context, _ string, _ int) ([]store.DocumentChunk, error) {
	return s.chunks, nil
}

type stubLLM struct {
	reply string
	err   error
}

func (s *stubLLM) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	return s.reply, s.err
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func newTestService(provider llm.LLMProvider, chunks []store.DocumentChunk) (IChatService, *memory.SessionRepository, *gochannel.GoChannel) {
	logger := log.New(io.Discard, "", 0)

	ragPipeline := pipeline.New(
		retrieve.NewRetriever(&stubSearcher{chunks: chunks}, nil, logger),
		generate.NewGenerator(provider, logger),
		validate.NewValidator(),
		refine.NewRefiner(provider, logger),
		logger,
	)

	sessionRepo := memory.NewSessionRepository()
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})

	return NewChatService(ragPipeline, sessionRepo, pubSub, testTopic), sessionRepo, pubSub
}

func wheatChunks() []store.DocumentChunk {
	return []store.DocumentChunk{
		{ID: "a", Source: "wheat.md", Content: "Our wheat protein content runs twelve to fourteen percent."},
		{ID: "b", Source: "wheat.md", Content: "Wheat protein content specification sheets are available."},
	}
}

const stubAnswer = "Our wheat typically contains between twelve and fourteen percent protein " +
	"depending on the growing season, and we can supply full specification sheets " +
	"for every shipment whenever a customer requests them."

func TestSendMessagePersistsBothSides(t *testing.T) {
	svc, sessionRepo, _ := newTestService(&stubLLM{reply: stubAnswer}, wheatChunks())

	res, err := svc.SendMessage(context.Background(), &dto.ChatMessageRequest{
		Message: "What is your wheat protein content?",
	})

	require.NoError(t, err)
	require.NotEmpty(t, res.SessionId)
	assert.Equal(t, stubAnswer, res.Answer)
	assert.False(t, res.NeedsHumanAssistance)

	history := sessionRepo.GetFormattedHistory(res.SessionId, 0)
	require.Len(t, history, 2)
	assert.Equal(t, store.RoleHuman, history[0].Role)
	assert.Equal(t, "What is your wheat protein content?", history[0].Content)
	assert.Equal(t, store.RoleAssistant, history[1].Role)
	assert.Equal(t, stubAnswer, history[1].Content)
}

func TestSendMessageReusesSession(t *testing.T) {
	svc, sessionRepo, _ := newTestService(&stubLLM{reply: stubAnswer}, wheatChunks())

	first, err := svc.SendMessage(context.Background(), &dto.ChatMessageRequest{
		Message: "What is your wheat protein content?",
	})
	require.NoError(t, err)

	second, err := svc.SendMessage(context.Background(), &dto.ChatMessageRequest{
		Message:   "What about the moisture content of your wheat?",
		SessionId: first.SessionId,
	})
	require.NoError(t, err)

	assert.Equal(t, first.SessionId, second.SessionId)
	assert.Len(t, sessionRepo.GetFormattedHistory(first.SessionId, 0), 4)
}

func TestSendMessagePublishesInteractionEvent(t *testing.T) {
	svc, _, pubSub := newTestService(&stubLLM{reply: stubAnswer}, wheatChunks())

	messages, err := pubSub.Subscribe(context.Background(), testTopic)
	require.NoError(t, err)

	res, err := svc.SendMessage(context.Background(), &dto.ChatMessageRequest{
		Message: "What is your wheat protein content?",
	})
	require.NoError(t, err)

	select {
	case msg := <-messages:
		msg.Ack()
		assert.Contains(t, string(msg.Payload), res.SessionId)
		assert.Contains(t, string(msg.Payload), "wheat protein")
	case <-time.After(2 * time.Second):
		t.Fatal("expected interaction event on analytics topic")
	}
}

func TestSendMessageClassifiesProviderFailure(t *testing.T) {
	svc, sessionRepo, _ := newTestService(&stubLLM{err: errors.New("model overloaded")}, wheatChunks())

	res, err := svc.SendMessage(context.Background(), &dto.ChatMessageRequest{
		Message:   "What is your wheat protein content?",
		SessionId: "s1",
	})

	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, serverutils.ErrUpstreamProvider)
	// Failed exchanges must not pollute the session history
	assert.Empty(t, sessionRepo.GetFormattedHistory("s1", 0))
}

func TestWindowSizeRoundTrip(t *testing.T) {
	svc, _, _ := newTestService(&stubLLM{reply: stubAnswer}, nil)

	set := svc.SetWindowSize("s1", 7)
	assert.Equal(t, 7, set.Size)

	got := svc.GetWindowSize("s1")
	assert.Equal(t, 7, got.Size)
}
