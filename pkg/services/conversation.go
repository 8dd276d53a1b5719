package services

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"ChatKeep/models"
	"ChatKeep/pkg/store"
	"ChatKeep/pkg/ws"
)

const titleMaxChars = 40

// ConversationService orchestrates the transcript store and the user index.
// The two stores are updated by separate, non-atomic writes; this service is
// the only writer and is responsible for keeping them in step.
type ConversationService struct {
	transcripts *store.TranscriptStore
	index       *store.UserIndexStore
	events      *ws.Hub // optional
}

func NewConversationService(transcripts *store.TranscriptStore, index *store.UserIndexStore, events *ws.Hub) *ConversationService {
	return &ConversationService{transcripts: transcripts, index: index, events: events}
}

// CreateConversation creates a chat seeded with text and links it into the
// owner's index. The two writes are not transactional: if the index write
// fails the chat is left behind with no entry pointing at it (an orphan,
// reachable by id but invisible in listings). That gap is accepted; the
// orphan is logged with enough detail to repair by hand.
func (s *ConversationService) CreateConversation(ctx context.Context, ownerID, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", models.ErrEmptyText
	}

	chatID, err := s.transcripts.CreateChat(ctx, ownerID, text)
	if err != nil {
		return "", err
	}

	if err := s.index.AppendEntry(ctx, ownerID, chatID, truncateTitle(text)); err != nil {
		log.WithFields(log.Fields{
			"chatId": chatID,
			"userId": ownerID,
		}).WithError(err).Error("index write failed, chat left unlinked")
		return "", err
	}

	s.events.NotifyUser(ownerID, ws.Event{Type: ws.EventChatCreated, ChatID: chatID})
	return chatID, nil
}

// AppendExchange appends one exchange to the chat: an optional user turn
// (question, with an optional image reference) followed by the model's
// answer. The pair goes to the store as a single batch so the internal order
// survives concurrent appends. Returns how many turns were appended.
func (s *ConversationService) AppendExchange(ctx context.Context, chatID, ownerID, question, answer, img string) (int, error) {
	if strings.TrimSpace(answer) == "" {
		return 0, models.ErrEmptyText
	}

	var turns []models.Turn
	if strings.TrimSpace(question) != "" {
		userTurn, err := models.NewUserTurn(question, img)
		if err != nil {
			return 0, err
		}
		turns = append(turns, userTurn)
	}
	modelTurn, err := models.NewModelTurn(answer)
	if err != nil {
		return 0, err
	}
	turns = append(turns, modelTurn)

	if err := s.transcripts.AppendTurns(ctx, chatID, ownerID, turns); err != nil {
		return 0, err
	}

	s.events.NotifyUser(ownerID, ws.Event{Type: ws.EventExchangeAppended, ChatID: chatID})
	return len(turns), nil
}

// ListConversations returns the owner's chat summaries in creation order.
func (s *ConversationService) ListConversations(ctx context.Context, ownerID string) ([]models.IndexEntry, error) {
	return s.index.ListSummaries(ctx, ownerID)
}

// GetConversation returns the full chat, scoped to ownerID.
func (s *ConversationService) GetConversation(ctx context.Context, chatID, ownerID string) (*models.Chat, error) {
	return s.transcripts.GetChat(ctx, chatID, ownerID)
}

// truncateTitle hard-cuts text to titleMaxChars characters. No word-boundary
// trimming; the cut counts runes so a multibyte character is never split.
func truncateTitle(text string) string {
	r := []rune(text)
	if len(r) <= titleMaxChars {
		return text
	}
	return string(r[:titleMaxChars])
}
