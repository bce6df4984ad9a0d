package catalog

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"stride-storefront/internal/api"
)

// Fetcher is the slice of the backend client the catalog needs.
type Fetcher interface {
	Products(ctx context.Context, category string) ([]api.Product, error)
	Product(ctx context.Context, id string) (*api.Product, error)
}

// Service serves products from the backend when it answers and from
// the built-in set when it does not. The fallback is silent: catalog
// augmentation failing is never the user's problem.
type Service struct {
	fetcher Fetcher
	log     *zap.Logger
}

func NewService(fetcher Fetcher, log *zap.Logger) *Service {
	return &Service{fetcher: fetcher, log: log}
}

// List returns products, optionally filtered by category.
func (s *Service) List(ctx context.Context, category string) []Product {
	if s.fetcher != nil {
		remote, err := s.fetcher.Products(ctx, category)
		if err == nil && len(remote) > 0 {
			return mapProducts(remote)
		}
		if err != nil {
			s.log.Debug("product fetch failed, serving built-in catalog", zap.Error(err))
		}
	}

	if category == "" {
		return StaticProducts()
	}
	out := make([]Product, 0)
	for _, p := range StaticProducts() {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}

// Get returns one product by id, false when it exists nowhere.
func (s *Service) Get(ctx context.Context, id string) (Product, bool) {
	if s.fetcher != nil {
		remote, err := s.fetcher.Product(ctx, id)
		if err == nil && remote != nil {
			return mapProduct(*remote), true
		}
		if err != nil {
			s.log.Debug("product fetch failed, checking built-in catalog",
				zap.String("id", id), zap.Error(err))
		}
	}

	for _, p := range StaticProducts() {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
