package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wheeldeal/internal/backend/memory"
	"wheeldeal/internal/chat/model"
	"wheeldeal/internal/chat/repository"
	"wheeldeal/pkg/logger"
)

func newTestUsecase() *ChatUsecase {
	return NewChatUsecase(repository.NewChatRepository(memory.NewStore()), logger.Logger{})
}

func TestChatUsecase_ResolveOrCreateChat(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path - repeated calls return the same chat", func(t *testing.T) {
		uc := newTestUsecase()

		first, err := uc.ResolveOrCreateChat(ctx, "u1", "u2")
		require.NoError(t, err)
		require.NotEmpty(t, first.ID)
		assert.Equal(t, "u1", first.UserA)
		assert.Equal(t, "u2", first.UserB)

		second, err := uc.ResolveOrCreateChat(ctx, "u1", "u2")
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("happy path - reversed participants resolve the existing chat", func(t *testing.T) {
		uc := newTestUsecase()

		first, err := uc.ResolveOrCreateChat(ctx, "u1", "u2")
		require.NoError(t, err)

		reversed, err := uc.ResolveOrCreateChat(ctx, "u2", "u1")
		require.NoError(t, err)
		assert.Equal(t, first.ID, reversed.ID)
	})

	t.Run("happy path - distinct pairs get distinct chats", func(t *testing.T) {
		uc := newTestUsecase()

		a, err := uc.ResolveOrCreateChat(ctx, "u1", "u2")
		require.NoError(t, err)
		b, err := uc.ResolveOrCreateChat(ctx, "u1", "u3")
		require.NoError(t, err)
		assert.NotEqual(t, a.ID, b.ID)
	})

	t.Run("sad path - empty participant is rejected", func(t *testing.T) {
		uc := newTestUsecase()

		_, err := uc.ResolveOrCreateChat(ctx, "", "u2")
		assert.Error(t, err)
		_, err = uc.ResolveOrCreateChat(ctx, "u1", "")
		assert.Error(t, err)
	})
}

func TestChatUsecase_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path - message stored and summary patched", func(t *testing.T) {
		store := memory.NewStore()
		repo := repository.NewChatRepository(store)
		uc := NewChatUsecase(repo, logger.Logger{})

		c, err := uc.ResolveOrCreateChat(ctx, "u1", "u2")
		require.NoError(t, err)
		assert.Empty(t, c.LastMessage)

		msg, err := uc.Send(ctx, c.ID, "u1", "u2", "hi, is the car still available?")
		require.NoError(t, err)
		assert.NotEmpty(t, msg.ID)
		assert.False(t, msg.CreatedAt.IsZero())

		got, err := repo.Get(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "hi, is the car still available?", got.LastMessage)
		assert.Equal(t, msg.CreatedAt, got.LastMessageAt)
	})

	t.Run("sad path - empty body is rejected", func(t *testing.T) {
		uc := newTestUsecase()

		c, err := uc.ResolveOrCreateChat(ctx, "u1", "u2")
		require.NoError(t, err)

		_, err = uc.Send(ctx, c.ID, "u1", "u2", "")
		assert.Error(t, err)
	})

	t.Run("summary failure does not fail the send", func(t *testing.T) {
		store := memory.NewStore()
		repo := repository.NewChatRepository(store)
		uc := NewChatUsecase(repo, logger.Logger{})

		// No chat document exists, so the summary patch hits not-found;
		// the message itself is still durable and returned.
		msg, err := uc.Send(ctx, "ghost-chat", "u1", "u2", "hello")
		require.NoError(t, err)

		msgs, err := repo.Messages(ctx, "ghost-chat")
		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.Equal(t, msg.ID, msgs[0].ID)
	})
}

func TestChatUsecase_SubscribeDeliversOrderedSnapshots(t *testing.T) {
	ctx := context.Background()
	uc := newTestUsecase()

	c, err := uc.ResolveOrCreateChat(ctx, "u1", "u2")
	require.NoError(t, err)

	ch, cancel, err := uc.Subscribe(ctx, c.ID)
	require.NoError(t, err)
	defer cancel()

	require.Empty(t, waitForSnapshot(t, ch, func(m []model.Message) bool { return len(m) == 0 }))

	_, err = uc.Send(ctx, c.ID, "u1", "u2", "first")
	require.NoError(t, err)
	_, err = uc.Send(ctx, c.ID, "u2", "u1", "second")
	require.NoError(t, err)

	msgs := waitForSnapshot(t, ch, func(m []model.Message) bool { return len(m) == 2 })
	assert.Equal(t, "first", msgs[0].Body)
	assert.Equal(t, "second", msgs[1].Body)
	assert.True(t, !msgs[1].CreatedAt.Before(msgs[0].CreatedAt))
}

func TestChatUsecase_SubscribeCancelStopsDelivery(t *testing.T) {
	ctx := context.Background()
	uc := newTestUsecase()

	c, err := uc.ResolveOrCreateChat(ctx, "u1", "u2")
	require.NoError(t, err)

	ch, cancel, err := uc.Subscribe(ctx, c.ID)
	require.NoError(t, err)

	waitForSnapshot(t, ch, func(m []model.Message) bool { return len(m) == 0 })
	cancel()

	_, err = uc.Send(ctx, c.ID, "u1", "u2", "after cancel")
	require.NoError(t, err)

	// The channel closes without delivering the post-cancel snapshot.
	deadline := time.After(2 * time.Second)
	for {
		select {
		case msgs, ok := <-ch:
			if !ok {
				return
			}
			assert.Empty(t, msgs, "no new snapshots after cancel")
		case <-deadline:
			t.Fatal("subscription channel never closed")
		}
	}
}

func TestChatUsecase_ChatsForOrdersByLastMessage(t *testing.T) {
	ctx := context.Background()
	uc := newTestUsecase()

	older, err := uc.ResolveOrCreateChat(ctx, "u1", "u2")
	require.NoError(t, err)
	newer, err := uc.ResolveOrCreateChat(ctx, "u3", "u1")
	require.NoError(t, err)

	_, err = uc.Send(ctx, older.ID, "u1", "u2", "earlier")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = uc.Send(ctx, newer.ID, "u3", "u1", "later")
	require.NoError(t, err)

	chats, err := uc.ChatsFor(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, chats, 2)
	assert.Equal(t, newer.ID, chats[0].ID)
	assert.Equal(t, older.ID, chats[1].ID)
}

func waitForSnapshot(t *testing.T, ch <-chan []model.Message, ok func([]model.Message) bool) []model.Message {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case msgs, open := <-ch:
			if !open {
				t.Fatal("subscription channel closed early")
			}
			if ok(msgs) {
				return msgs
			}
		case <-deadline:
			t.Fatal("timed out waiting for snapshot")
			return nil
		}
	}
}
