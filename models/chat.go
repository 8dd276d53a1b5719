package models

import (
	"errors"
	"strings"
	"time"
)

// Speaker roles. A turn is tagged with exactly one of these.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ErrEmptyText is returned when a turn (or a chat seed) carries no usable text.
var ErrEmptyText = errors.New("text must not be empty")

// Part is one piece of a turn: text always, plus an optional opaque image
// reference (a URL or storage key handed back by the upload provider).
type Part struct {
	Text string `json:"text"`
	Img  string `json:"img,omitempty"`
}

type Parts []Part

// Turn is one message in a chat history. Ordering is the insert order of the
// rows: appends never rewrite existing turns, so the autoincrement id doubles
// as the chronological position.
type Turn struct {
	ID     uint   `gorm:"primaryKey" json:"-"`
	ChatID string `gorm:"size:36;not null;index" json:"-"`
	Role   string `gorm:"size:10;not null" json:"role"`
	Parts  Parts  `gorm:"type:text;serializer:json" json:"parts"`
}

// Chat is one conversation thread, owned by exactly one user.
type Chat struct {
	ID        string    `gorm:"primaryKey;size:36" json:"_id"`
	UserID    string    `gorm:"size:64;not null;index" json:"userId"`
	History   []Turn    `gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE" json:"history"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewUserTurn builds a user-role turn. img may be empty; text may not.
func NewUserTurn(text, img string) (Turn, error) {
	if strings.TrimSpace(text) == "" {
		return Turn{}, ErrEmptyText
	}
	return Turn{Role: RoleUser, Parts: Parts{{Text: text, Img: img}}}, nil
}

// NewModelTurn builds a model-role turn. Model turns never carry images.
func NewModelTurn(text string) (Turn, error) {
	if strings.TrimSpace(text) == "" {
		return Turn{}, ErrEmptyText
	}
	return Turn{Role: RoleModel, Parts: Parts{{Text: text}}}, nil
}
