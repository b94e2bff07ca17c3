package service

import (
	"context"
	"log"

	"go.opentelemetry.io/otel/trace"

	"frauddetect/internal/conversation"
	"frauddetect/internal/domain"
)

type ChatCompleter interface {
	CompleteChat(ctx context.Context, history []domain.ConversationMessage, message string) (string, error)
}

type ConversationStore interface {
	AppendMessage(ctx context.Context, chatID int64, role, content string) error
	RecentMessages(ctx context.Context, chatID int64, limit int) ([]domain.ConversationMessage, error)
	DeleteChat(ctx context.Context, chatID int64) error
}

// AdvisorService answers follow-up questions about fraud analysis. Each chat
// keeps its own transcript and the full transcript is replayed to the model
// on every turn, so the advisor stays in context across questions.
type AdvisorService struct {
	tracer     trace.Tracer
	model      ChatCompleter
	store      ConversationStore
	registry   *conversation.Registry
	maxHistory int
}

func NewAdvisorService(tracer trace.Tracer, model ChatCompleter, store ConversationStore, maxHistory int) *AdvisorService {
	return &AdvisorService{
		tracer:     tracer,
		model:      model,
		store:      store,
		registry:   conversation.NewRegistry(),
		maxHistory: maxHistory,
	}
}

func (s *AdvisorService) Ask(ctx context.Context, chatID int64, message string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "advisor-service.ask")
	defer span.End()

	conv := s.registry.Get(chatID)
	s.hydrate(ctx, chatID, conv)

	reply, err := conv.Exchange(ctx, message, s.model.CompleteChat)
	if err != nil {
		return "", err
	}

	if s.store != nil {
		if err := s.store.AppendMessage(ctx, chatID, domain.RoleUser, message); err != nil {
			log.Printf("failed to persist user message for chat %d: %v", chatID, err)
		}
		if err := s.store.AppendMessage(ctx, chatID, domain.RoleAssistant, reply); err != nil {
			log.Printf("failed to persist assistant message for chat %d: %v", chatID, err)
		}
	}
	return reply, nil
}

// History returns the in-memory transcript for a chat, hydrating it from
// storage first when the process has not seen the chat yet.
func (s *AdvisorService) History(ctx context.Context, chatID int64) []domain.ConversationMessage {
	ctx, span := s.tracer.Start(ctx, "advisor-service.history")
	defer span.End()

	conv := s.registry.Get(chatID)
	s.hydrate(ctx, chatID, conv)
	return conv.History()
}

// Reset forgets a chat's transcript both in memory and in storage.
func (s *AdvisorService) Reset(ctx context.Context, chatID int64) error {
	ctx, span := s.tracer.Start(ctx, "advisor-service.reset")
	defer span.End()

	s.registry.Remove(chatID)
	if s.store == nil {
		return nil
	}
	return s.store.DeleteChat(ctx, chatID)
}

// hydrate fills an empty conversation with the chat's persisted tail so a
// restarted process keeps context. A non-empty conversation is left alone.
func (s *AdvisorService) hydrate(ctx context.Context, chatID int64, conv *conversation.Conversation) {
	if s.store == nil || conv.Len() > 0 {
		return
	}
	msgs, err := s.store.RecentMessages(ctx, chatID, s.maxHistory)
	if err != nil {
		log.Printf("failed to load history for chat %d: %v", chatID, err)
		return
	}
	for _, m := range msgs {
		conv.AppendMessage(m)
	}
}
