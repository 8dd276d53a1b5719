package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ChatKeep/models"
	"ChatKeep/pkg/store"
)

func newTestService(t *testing.T) (*ConversationService, *gorm.DB) {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000&_journal_mode=WAL"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Chat{}, &models.Turn{}, &models.IndexEntry{}))
	svc := NewConversationService(store.NewTranscriptStore(db), store.NewUserIndexStore(db), nil)
	return svc, db
}

func TestCreateConversationSeedAndIndex(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id, err := svc.CreateConversation(ctx, "alice", "Explain recursion")
	require.NoError(t, err)

	chat, err := svc.GetConversation(ctx, id, "alice")
	require.NoError(t, err)
	require.Len(t, chat.History, 1)
	assert.Equal(t, models.RoleUser, chat.History[0].Role)
	assert.Equal(t, "Explain recursion", chat.History[0].Parts[0].Text)

	entries, err := svc.ListConversations(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, id, entries[0].ChatID)
	assert.Equal(t, "Explain recursion", entries[0].Title)
}

func TestCreateConversationTitleHardCut(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	long := strings.Repeat("ab", 30) // 60 chars, no convenient word boundary
	_, err := svc.CreateConversation(ctx, "alice", long)
	require.NoError(t, err)

	// multibyte: the cut counts characters, not bytes
	wide := strings.Repeat("é", 50)
	_, err = svc.CreateConversation(ctx, "alice", wide)
	require.NoError(t, err)

	entries, err := svc.ListConversations(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, long[:40], entries[0].Title)
	assert.Equal(t, strings.Repeat("é", 40), entries[1].Title)
}

func TestCreateConversationRejectsBlankWithoutSideEffects(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	for _, text := range []string{"", "   ", "\t\n"} {
		_, err := svc.CreateConversation(ctx, "alice", text)
		assert.ErrorIs(t, err, models.ErrEmptyText, "text %q", text)
	}

	var chats, entries int64
	require.NoError(t, db.Model(&models.Chat{}).Count(&chats).Error)
	require.NoError(t, db.Model(&models.IndexEntry{}).Count(&entries).Error)
	assert.Zero(t, chats)
	assert.Zero(t, entries)
}

func TestAppendExchangeOrderAndShape(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id, err := svc.CreateConversation(ctx, "alice", "seed")
	require.NoError(t, err)

	n, err := svc.AppendExchange(ctx, id, "alice", "Q", "A", "")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	chat, err := svc.GetConversation(ctx, id, "alice")
	require.NoError(t, err)
	require.Len(t, chat.History, 3)
	tail := chat.History[1:]
	assert.Equal(t, models.RoleUser, tail[0].Role)
	assert.Equal(t, "Q", tail[0].Parts[0].Text)
	assert.Equal(t, models.RoleModel, tail[1].Role)
	assert.Equal(t, "A", tail[1].Parts[0].Text)
}

func TestAppendExchangeAnswerOnly(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id, err := svc.CreateConversation(ctx, "alice", "seed")
	require.NoError(t, err)

	n, err := svc.AppendExchange(ctx, id, "alice", "", "just an answer", "")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	chat, err := svc.GetConversation(ctx, id, "alice")
	require.NoError(t, err)
	require.Len(t, chat.History, 2)
	assert.Equal(t, models.RoleModel, chat.History[1].Role)
}

func TestAppendExchangeImageRidesUserTurn(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id, err := svc.CreateConversation(ctx, "alice", "seed")
	require.NoError(t, err)

	_, err = svc.AppendExchange(ctx, id, "alice", "what is this?", "a capacitor", "uploads/board.png")
	require.NoError(t, err)

	chat, err := svc.GetConversation(ctx, id, "alice")
	require.NoError(t, err)
	require.Len(t, chat.History, 3)
	assert.Equal(t, "uploads/board.png", chat.History[1].Parts[0].Img)
	assert.Empty(t, chat.History[2].Parts[0].Img, "model turns never carry images")
}

func TestAppendExchangeRequiresAnswer(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id, err := svc.CreateConversation(ctx, "alice", "seed")
	require.NoError(t, err)

	_, err = svc.AppendExchange(ctx, id, "alice", "Q", "   ", "")
	assert.ErrorIs(t, err, models.ErrEmptyText)

	chat, err := svc.GetConversation(ctx, id, "alice")
	require.NoError(t, err)
	assert.Len(t, chat.History, 1)
}

func TestOwnershipIsolation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id, err := svc.CreateConversation(ctx, "alice", "private")
	require.NoError(t, err)

	_, err = svc.GetConversation(ctx, id, "bob")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = svc.AppendExchange(ctx, id, "bob", "", "sneaky", "")
	assert.ErrorIs(t, err, store.ErrNotFound)

	entries, err := svc.ListConversations(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestConcurrentCreatesForFreshUser(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	const n = 10
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateConversation(ctx, "fresh-user", fmt.Sprintf("chat number %d", i))
		}(i)
	}
	wg.Wait()
	for i, err := range errs {
		require.NoError(t, err, "create %d", i)
	}

	entries, err := svc.ListConversations(ctx, "fresh-user")
	require.NoError(t, err)
	assert.Len(t, entries, n, "no index entry may be lost")
}

func TestIndexWriteFailureLeavesOrphanChat(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	// sabotage the second write of the two-phase create
	require.NoError(t, db.Migrator().DropTable(&models.IndexEntry{}))

	_, err := svc.CreateConversation(ctx, "alice", "doomed")
	require.Error(t, err)

	// the transcript half of the write survives: a chat with no entry
	var chats int64
	require.NoError(t, db.Model(&models.Chat{}).Count(&chats).Error)
	assert.EqualValues(t, 1, chats)
}

func TestEndToEndScenario(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id, err := svc.CreateConversation(ctx, "alice", "Explain recursion")
	require.NoError(t, err)

	entries, err := svc.ListConversations(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, id, entries[0].ChatID)
	assert.Equal(t, "Explain recursion", entries[0].Title)

	_, err = svc.AppendExchange(ctx, id, "alice", "Give an example", "Factorial is a classic example.", "")
	require.NoError(t, err)

	chat, err := svc.GetConversation(ctx, id, "alice")
	require.NoError(t, err)
	assert.Len(t, chat.History, 3)
}
