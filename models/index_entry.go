package models

// IndexEntry is one row of a user's chat index: enough to render a sidebar
// listing without loading the transcript. A user's index is the ordered set
// of their rows; a user with no chats simply has none, which is a valid
// empty state rather than an error.
//
// Title is derived from the chat's seed message, hard-cut to 40 characters.
// The column is wider than 40 because the cut counts runes, not bytes.
type IndexEntry struct {
	ID     uint   `gorm:"primaryKey" json:"-"`
	UserID string `gorm:"size:64;not null;index" json:"-"`
	ChatID string `gorm:"size:36;not null" json:"chatId"`
	Title  string `gorm:"size:160" json:"title"`
}
