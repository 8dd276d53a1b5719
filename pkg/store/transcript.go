package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ChatKeep/models"
)

// ErrNotFound is returned when a chat does not exist or is not owned by the
// requesting user. The two cases are deliberately indistinguishable so a
// valid chat id leaks nothing to non-owners.
var ErrNotFound = errors.New("chat not found")

// TranscriptStore owns the chat records and their append-only turn history.
type TranscriptStore struct {
	db *gorm.DB
}

func NewTranscriptStore(db *gorm.DB) *TranscriptStore {
	return &TranscriptStore{db: db}
}

// CreateChat creates a chat seeded with a single user turn and returns its id.
func (s *TranscriptStore) CreateChat(ctx context.Context, ownerID, seedText string) (string, error) {
	seed, err := models.NewUserTurn(seedText, "")
	if err != nil {
		return "", err
	}
	chat := models.Chat{
		ID:      uuid.NewString(),
		UserID:  ownerID,
		History: []models.Turn{seed},
	}
	if err := s.db.WithContext(ctx).Create(&chat).Error; err != nil {
		return "", fmt.Errorf("create chat: %w", err)
	}
	return chat.ID, nil
}

// AppendTurns appends turns at the tail of the chat's history, preserving the
// given order. The batch is all-or-nothing: the ownership check and the
// inserts share one transaction, so a canceled request never applies half a
// batch. It does not serialize against other appends to the same chat — each
// turn is its own row, so concurrent batches interleave instead of clobbering.
func (s *TranscriptStore) AppendTurns(ctx context.Context, chatID, ownerID string, turns []models.Turn) error {
	if len(turns) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var chat models.Chat
		err := tx.Select("id").Where("id = ? AND user_id = ?", chatID, ownerID).First(&chat).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("lookup chat: %w", err)
		}
		for i := range turns {
			turns[i].ChatID = chatID
		}
		if err := tx.Create(&turns).Error; err != nil {
			return fmt.Errorf("append turns: %w", err)
		}
		return nil
	})
}

// GetChat returns the chat with its full ordered history, scoped to ownerID.
func (s *TranscriptStore) GetChat(ctx context.Context, chatID, ownerID string) (*models.Chat, error) {
	var chat models.Chat
	err := s.db.WithContext(ctx).
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("turns.id ASC") }).
		Where("id = ? AND user_id = ?", chatID, ownerID).
		First(&chat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load chat: %w", err)
	}
	return &chat, nil
}
