package order

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"stride-storefront/internal/kvstore"
)

// Storage key owned by this package.
const storageKey = "orders"

// History is the local order record used when no authenticated backend
// session exists.
type History interface {
	Append(ctx context.Context, o Order) (Order, error)
	List(ctx context.Context) ([]Order, error)
}

type kvHistory struct {
	kv  kvstore.Store
	log *zap.Logger
	mu  sync.Mutex
}

func NewHistory(kv kvstore.Store, log *zap.Logger) History {
	return &kvHistory{kv: kv, log: log}
}

// Append stores o, adjusting its id with a numeric suffix if the list
// already holds that id. Returns the order as stored.
func (h *kvHistory) Append(ctx context.Context, o Order) (Order, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	orders := h.load(ctx)

	taken := make(map[string]bool, len(orders))
	for _, existing := range orders {
		taken[existing.ID] = true
	}
	base := o.ID
	for n := 1; taken[o.ID]; n++ {
		o.ID = fmt.Sprintf("%s-%d", base, n)
	}

	orders = append(orders, o)

	raw, err := json.Marshal(orders)
	if err != nil {
		return Order{}, fmt.Errorf("encode order history: %w", err)
	}
	if err := h.kv.Set(ctx, storageKey, string(raw)); err != nil {
		return Order{}, fmt.Errorf("persist order history: %w", err)
	}
	return o, nil
}

func (h *kvHistory) List(ctx context.Context) ([]Order, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.load(ctx), nil
}

// load treats absent or corrupt history as empty, same policy as the
// cart: local records are never worth failing an operation over.
func (h *kvHistory) load(ctx context.Context) []Order {
	raw, ok, err := h.kv.Get(ctx, storageKey)
	if err != nil {
		h.log.Warn("order history read failed, treating as empty", zap.Error(err))
		return []Order{}
	}
	if !ok {
		return []Order{}
	}

	var orders []Order
	if err := json.Unmarshal([]byte(raw), &orders); err != nil {
		h.log.Warn("order history corrupt, treating as empty", zap.Error(err))
		return []Order{}
	}
	return orders
}
