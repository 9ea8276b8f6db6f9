package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"ai-support-chat-be/internal/dto"
	"ai-support-chat-be/internal/pkg/serverutils"
	"ai-support-chat-be/internal/repository/memory"
	"ai-support-chat-be/pkg/rag/pipeline"
	"ai-support-chat-be/pkg/store"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// responseTimeout is the hard ceiling on one full pipeline run, LLM calls
// included.
const responseTimeout = 25 * time.Second

type IChatService interface {
	SendMessage(ctx context.Context, request *dto.ChatMessageRequest) (*dto.ChatMessageResponse, error)
	GetHistory(sessionId string) *dto.ChatHistoryResponse
	SetWindowSize(sessionId string, size int) *dto.WindowSizeResponse
	GetWindowSize(sessionId string) *dto.WindowSizeResponse
}

type chatService struct {
	pipeline    *pipeline.Pipeline
	sessionRepo *memory.SessionRepository
	pubSub      *gochannel.GoChannel
	topicName   string
	llmLogger   *log.Logger
}

func NewChatService(
	ragPipeline *pipeline.Pipeline,
	sessionRepo *memory.SessionRepository,
	pubSub *gochannel.GoChannel,
	topicName string,
) IChatService {
	return &chatService{
		pipeline:    ragPipeline,
		sessionRepo: sessionRepo,
		pubSub:      pubSub,
		topicName:   topicName,
		llmLogger:   initLLMLogger(),
	}
}

func initLLMLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "llm_rag.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[LLM-RAG] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}

// SendMessage runs one question through the pipeline and records both sides of
// the exchange in the session.
func (cs *chatService) SendMessage(ctx context.Context, request *dto.ChatMessageRequest) (*dto.ChatMessageResponse, error) {
	sessionId := request.SessionId
	if sessionId == "" {
		sessionId = uuid.New().String()
	}

	var profile *store.UserProfile
	if request.Profile != nil {
		profile = &store.UserProfile{
			FullName: request.Profile.FullName,
			Email:    request.Profile.Email,
			Phone:    request.Profile.Phone,
		}
	}
	cs.sessionRepo.GetOrCreateSession(sessionId, profile)

	history := cs.sessionRepo.GetFormattedHistory(sessionId, request.ConversationWindowSize)

	pipelineCtx, cancel := context.WithTimeout(ctx, responseTimeout)
	defer cancel()

	started := time.Now()
	result, err := cs.pipeline.Invoke(pipelineCtx, pipeline.Input{
		Question:  request.Message,
		History:   history,
		SessionID: sessionId,
	})
	duration := time.Since(started)

	if err != nil {
		cs.llmLogger.Printf("[ERROR] Pipeline failed for session %s after %s: %v", sessionId, duration, err)
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", serverutils.ErrPipelineTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", serverutils.ErrUpstreamProvider, err)
	}

	cs.sessionRepo.AddMessage(sessionId, store.RoleHuman, request.Message, profile)
	cs.sessionRepo.AddMessage(sessionId, store.RoleAssistant, result.FinalAnswer, nil)

	cs.publishInteraction(dto.ChatInteractionEvent{
		SessionId:            sessionId,
		Question:             request.Message,
		Category:             string(result.Category),
		ContextRelevance:     result.ContextRelevance,
		ClarificationNeeded:  result.ClarificationNeeded,
		NeedsRefinement:      result.NeedsRefinement,
		NeedsHumanAssistance: result.NeedsHumanAssistance,
		DurationMs:           duration.Milliseconds(),
		Timestamp:            time.Now(),
	})

	return &dto.ChatMessageResponse{
		SessionId:            sessionId,
		Answer:               result.FinalAnswer,
		Category:             string(result.Category),
		ContextRelevance:     result.ContextRelevance,
		NeedsHumanAssistance: result.NeedsHumanAssistance,
		DurationMs:           duration.Milliseconds(),
	}, nil
}

func (cs *chatService) GetHistory(sessionId string) *dto.ChatHistoryResponse {
	history := cs.sessionRepo.GetFormattedHistory(sessionId, 0)

	messages := make([]dto.ChatMessageDTO, 0, len(history))
	for _, msg := range history {
		messages = append(messages, dto.ChatMessageDTO{
			Role:      msg.Role,
			Content:   msg.Content,
			Timestamp: msg.Timestamp,
		})
	}

	return &dto.ChatHistoryResponse{
		SessionId: sessionId,
		Messages:  messages,
	}
}

func (cs *chatService) SetWindowSize(sessionId string, size int) *dto.WindowSizeResponse {
	cs.sessionRepo.SetConversationWindowSize(sessionId, size)
	return &dto.WindowSizeResponse{
		SessionId: sessionId,
		Size:      cs.sessionRepo.GetConversationWindowSize(sessionId),
	}
}

func (cs *chatService) GetWindowSize(sessionId string) *dto.WindowSizeResponse {
	return &dto.WindowSizeResponse{
		SessionId: sessionId,
		Size:      cs.sessionRepo.GetConversationWindowSize(sessionId),
	}
}

// publishInteraction forwards the exchange to the analytics topic. Analytics
// must never fail a chat request, so errors are only logged.
func (cs *chatService) publishInteraction(event dto.ChatInteractionEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		cs.llmLogger.Printf("[WARN] Failed to marshal interaction event: %v", err)
		return
	}

	msg := message.NewMessage(uuid.New().String(), payload)
	if err := cs.pubSub.Publish(cs.topicName, msg); err != nil {
		cs.llmLogger.Printf("[WARN] Failed to publish interaction event: %v", err)
	}
}
