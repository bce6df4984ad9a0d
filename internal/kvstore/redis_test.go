package kvstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestRedis(t *testing.T) *Redis {
	mr := miniredis.RunT(t)

	store, err := NewRedis(mr.Addr(), "", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestRedis_GetSetRemove(t *testing.T) {
	ctx := context.Background()
	store := setupTestRedis(t)

	_, ok, err := store.Get(ctx, "cart_guest")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "cart_guest", "[]"))

	v, ok, err := store.Get(ctx, "cart_guest")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)

	require.NoError(t, store.Remove(ctx, "cart_guest"))
	_, ok, err = store.Get(ctx, "cart_guest")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedis_SubscribeSeesPeerWrites(t *testing.T) {
	mr := miniredis.RunT(t)

	writer, err := NewRedis(mr.Addr(), "", zap.NewNop())
	require.NoError(t, err)
	defer writer.Close()

	reader, err := NewRedis(mr.Addr(), "", zap.NewNop())
	require.NoError(t, err)
	defer reader.Close()

	events := make(chan Event, 4)
	cancel := reader.Subscribe("user_email", func(ev Event) { events <- ev })
	defer cancel()

	// Give the pub/sub reader a moment to attach.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, writer.Set(context.Background(), "user_email", "b@stride.example"))

	select {
	case ev := <-events:
		assert.Equal(t, "user_email", ev.Key)
		assert.Equal(t, "b@stride.example", ev.Value)
		assert.False(t, ev.Removed)
	case <-time.After(2 * time.Second):
		t.Fatal("no change event received from peer write")
	}
}
