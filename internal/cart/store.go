package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stride-storefront/internal/kvstore"
	"stride-storefront/internal/metrics"
)

// IdentitySource notifies the store when the active user changes.
type IdentitySource interface {
	OnChange(fn func(user string)) (cancel func())
}

// Store is the single source of truth for the active user's cart. Every
// mutation goes through the reducer and is persisted under the user's
// storage key before the call returns; a user switch swaps the whole
// cart for the one persisted under the new key.
type Store struct {
	kv  kvstore.Store
	log *zap.Logger

	mu    sync.Mutex
	user  string
	items []Item
}

func NewStore(ctx context.Context, kv kvstore.Store, user string, log *zap.Logger) *Store {
	s := &Store{kv: kv, log: log, user: user}
	s.items = s.load(ctx, user)
	return s
}

// Dispatch applies one mutation and persists the result.
func (s *Store) Dispatch(ctx context.Context, m Mutation) error {
	if add, ok := m.(AddItem); ok {
		if add.ProductID == "" {
			return ErrMissingProduct
		}
		if add.Quantity < 1 {
			return ErrInvalidQuantity
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = apply(s.items, m, time.Now(), uuid.NewString)
	metrics.CartMutations.Inc()
	return s.persistLocked(ctx)
}

func (s *Store) Add(ctx context.Context, productID string, product ProductSnapshot, size string, quantity int) error {
	return s.Dispatch(ctx, AddItem{
		ProductID: productID,
		Product:   product,
		Size:      size,
		Quantity:  quantity,
	})
}

// Remove deletes the line item with that id; absent ids are a no-op.
func (s *Store) Remove(ctx context.Context, itemID string) error {
	return s.Dispatch(ctx, RemoveItem{ID: itemID})
}

// SetQuantity replaces an item's quantity; below 1 it removes the item.
func (s *Store) SetQuantity(ctx context.Context, itemID string, quantity int) error {
	return s.Dispatch(ctx, SetQuantity{ID: itemID, Quantity: quantity})
}

func (s *Store) Clear(ctx context.Context) error {
	return s.Dispatch(ctx, Clear{})
}

// Items returns a copy of the current line items in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Total is the sum of unit price times quantity across the cart.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, it := range s.items {
		total += it.Product.Price.Amount() * float64(it.Quantity)
	}
	return total
}

// Count is the sum of quantities, not the number of line items.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	for _, it := range s.items {
		count += it.Quantity
	}
	return count
}

// User returns the identity whose cart is currently loaded.
func (s *Store) User() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// SwitchUser reloads the cart persisted for user. The outgoing cart
// needs no save here: every mutation already persisted it.
func (s *Store) SwitchUser(ctx context.Context, user string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user == s.user {
		return
	}
	s.user = user
	s.items = s.load(ctx, user)
}

// Watch binds the store to an identity source for its lifetime.
func (s *Store) Watch(src IdentitySource) (cancel func()) {
	return src.OnChange(func(user string) {
		s.SwitchUser(context.Background(), user)
	})
}

func storageKey(user string) string {
	return "cart_" + user
}

// load reads the persisted cart for user. Absent or corrupt data is an
// empty cart; corruption is logged and counted, never propagated.
func (s *Store) load(ctx context.Context, user string) []Item {
	raw, ok, err := s.kv.Get(ctx, storageKey(user))
	if err != nil {
		metrics.CartLoadFailures.Inc()
		s.log.Warn("cart read failed, starting empty",
			zap.String("user", user), zap.Error(err))
		return []Item{}
	}
	if !ok {
		return []Item{}
	}

	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		metrics.CartLoadFailures.Inc()
		s.log.Warn("persisted cart corrupt, starting empty",
			zap.String("user", user), zap.Error(err))
		return []Item{}
	}
	if items == nil {
		items = []Item{}
	}
	return items
}

func (s *Store) persistLocked(ctx context.Context) error {
	raw, err := json.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.kv.Set(ctx, storageKey(s.user), string(raw)); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}
