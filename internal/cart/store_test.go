package cart

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"stride-storefront/internal/kvstore"
)

func newTestStore(t *testing.T, user string) (*Store, *kvstore.Memory) {
	t.Helper()
	kv := kvstore.NewMemory()
	return NewStore(context.Background(), kv, user, zap.NewNop()), kv
}

func TestStore_AddPersistsUnderUserKey(t *testing.T) {
	ctx := context.Background()
	store, kv := newTestStore(t, "a@stride.example")

	require.NoError(t, store.Add(ctx, "men1", ProductSnapshot{Name: "Stride Air Max Alpha", Price: 8995}, "9", 1))

	raw, ok, err := kv.Get(ctx, "cart_a@stride.example")
	require.NoError(t, err)
	require.True(t, ok)

	var persisted []Item
	require.NoError(t, json.Unmarshal([]byte(raw), &persisted))
	require.Len(t, persisted, 1)
	assert.Equal(t, "men1", persisted[0].ProductID)
	assert.NotEmpty(t, persisted[0].ID)
	assert.False(t, persisted[0].AddedAt.IsZero())
}

func TestStore_AddRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, "guest")

	assert.ErrorIs(t, store.Add(ctx, "men1", ProductSnapshot{}, "9", 0), ErrInvalidQuantity)
	assert.ErrorIs(t, store.Add(ctx, "", ProductSnapshot{}, "9", 1), ErrMissingProduct)
	assert.Empty(t, store.Items())
}

func TestStore_TotalAcceptsMixedPriceShapes(t *testing.T) {
	// An older client persisted a string price; totals must still work.
	ctx := context.Background()
	kv := kvstore.NewMemory()
	persisted := `[
		{"id":"1","productId":"men1","product":{"name":"a","price":1000},"size":"9","quantity":2},
		{"id":"2","productId":"men2","product":{"name":"b","price":"₹500"},"size":"8","quantity":1}
	]`
	require.NoError(t, kv.Set(ctx, "cart_guest", persisted))

	store := NewStore(ctx, kv, "guest", zap.NewNop())

	assert.Equal(t, float64(2500), store.Total())
	assert.Equal(t, 3, store.Count())
}

func TestStore_TotalEmptyCartIsZero(t *testing.T) {
	store, _ := newTestStore(t, "guest")

	assert.Equal(t, float64(0), store.Total())
	assert.Equal(t, 0, store.Count())
}

func TestStore_CorruptPersistedCartLoadsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemory()
	require.NoError(t, kv.Set(ctx, "cart_guest", "{definitely not an array"))

	store := NewStore(ctx, kv, "guest", zap.NewNop())

	assert.Empty(t, store.Items())
	// And it must be usable afterwards.
	require.NoError(t, store.Add(ctx, "men1", ProductSnapshot{Price: 100}, "9", 1))
	assert.Len(t, store.Items(), 1)
}

func TestStore_SwitchUserLoadsIndependentCarts(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemory()

	store := NewStore(ctx, kv, "a@stride.example", zap.NewNop())
	require.NoError(t, store.Add(ctx, "men1", ProductSnapshot{Price: 8995}, "9", 2))

	// Switch to B, operate, switch back.
	store.SwitchUser(ctx, "b@stride.example")
	assert.Empty(t, store.Items())
	require.NoError(t, store.Add(ctx, "women1", ProductSnapshot{Price: 7495}, "7", 1))
	require.NoError(t, store.Clear(ctx))

	store.SwitchUser(ctx, "a@stride.example")

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "men1", items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestStore_SwitchToSameUserKeepsState(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, "guest")
	require.NoError(t, store.Add(ctx, "men1", ProductSnapshot{Price: 100}, "9", 1))

	store.SwitchUser(ctx, "guest")

	assert.Len(t, store.Items(), 1)
}

func TestStore_RemoveAndSetQuantity(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, "guest")

	require.NoError(t, store.Add(ctx, "men1", ProductSnapshot{Price: 100}, "9", 2))
	id := store.Items()[0].ID

	require.NoError(t, store.SetQuantity(ctx, id, 5))
	assert.Equal(t, 5, store.Items()[0].Quantity)

	require.NoError(t, store.SetQuantity(ctx, id, 0))
	assert.Empty(t, store.Items())

	// Removing again is a no-op, not an error.
	require.NoError(t, store.Remove(ctx, id))
}
