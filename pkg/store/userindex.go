package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"ChatKeep/models"
)

// UserIndexStore owns the per-user chat summaries used for listing. The
// index is materialized as one row per entry, which makes "create the index
// if absent, else append" a single atomic INSERT: two concurrent first-chat
// creates for the same user cannot lose an entry.
type UserIndexStore struct {
	db *gorm.DB
}

func NewUserIndexStore(db *gorm.DB) *UserIndexStore {
	return &UserIndexStore{db: db}
}

// ListSummaries returns the user's entries in append order. A user with no
// chats yet gets an empty list, not an error.
func (s *UserIndexStore) ListSummaries(ctx context.Context, ownerID string) ([]models.IndexEntry, error) {
	entries := []models.IndexEntry{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("list index entries: %w", err)
	}
	return entries, nil
}

// AppendEntry adds a summary at the tail of the user's index.
func (s *UserIndexStore) AppendEntry(ctx context.Context, ownerID, chatID, title string) error {
	entry := models.IndexEntry{UserID: ownerID, ChatID: chatID, Title: title}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("append index entry: %w", err)
	}
	return nil
}
