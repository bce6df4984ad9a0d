package user

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

const keyWishlist = "wishlist"

// Wishlist returns the saved product ids; corrupt data reads as empty.
func (s *Store) Wishlist(ctx context.Context) []string {
	raw, ok, err := s.kv.Get(ctx, keyWishlist)
	if err != nil || !ok {
		return []string{}
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		s.log.Warn("wishlist corrupt, treating as empty", zap.Error(err))
		return []string{}
	}
	return ids
}

// InWishlist reports whether productID is saved.
func (s *Store) InWishlist(ctx context.Context, productID string) bool {
	for _, id := range s.Wishlist(ctx) {
		if id == productID {
			return true
		}
	}
	return false
}

// ToggleWishlist adds or removes productID, returning true when it was
// added.
func (s *Store) ToggleWishlist(ctx context.Context, productID string) (bool, error) {
	ids := s.Wishlist(ctx)

	next := make([]string, 0, len(ids)+1)
	added := true
	for _, id := range ids {
		if id == productID {
			added = false
			continue
		}
		next = append(next, id)
	}
	if added {
		next = append(next, productID)
	}

	raw, err := json.Marshal(next)
	if err != nil {
		return false, err
	}
	if err := s.kv.Set(ctx, keyWishlist, string(raw)); err != nil {
		return false, err
	}
	return added, nil
}
