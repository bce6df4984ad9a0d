package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"stride-storefront/internal/api"
)

// MockFetcher is a mock implementation of the Fetcher interface
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Products(ctx context.Context, category string) ([]api.Product, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]api.Product), args.Error(1)
}

func (m *MockFetcher) Product(ctx context.Context, id string) (*api.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.Product), args.Error(1)
}

func TestService_ListPrefersRemote(t *testing.T) {
	ctx := context.Background()
	fetcher := new(MockFetcher)
	svc := NewService(fetcher, zap.NewNop())

	fetcher.On("Products", ctx, "").Return([]api.Product{
		{ID: "srv-1", Name: "Stride Pegasus", Price: 12795, Category: "Running"},
	}, nil).Once()

	products := svc.List(ctx, "")

	require.Len(t, products, 1)
	assert.Equal(t, "Stride Pegasus", products[0].Name)
	fetcher.AssertExpectations(t)
}

func TestService_ListFallsBackSilentlyOnError(t *testing.T) {
	ctx := context.Background()
	fetcher := new(MockFetcher)
	svc := NewService(fetcher, zap.NewNop())

	fetcher.On("Products", ctx, "").Return(nil, errors.New("connection refused")).Once()

	products := svc.List(ctx, "")

	assert.Equal(t, StaticProducts(), products)
}

func TestService_ListFiltersStaticByCategory(t *testing.T) {
	ctx := context.Background()
	fetcher := new(MockFetcher)
	svc := NewService(fetcher, zap.NewNop())

	fetcher.On("Products", ctx, "running").Return(nil, errors.New("down")).Once()

	products := svc.List(ctx, "running")

	require.NotEmpty(t, products)
	for _, p := range products {
		assert.Equal(t, "Running", p.Category)
	}
}

func TestService_ListWithoutFetcherServesStatic(t *testing.T) {
	svc := NewService(nil, zap.NewNop())

	assert.Equal(t, StaticProducts(), svc.List(context.Background(), ""))
}

func TestService_GetFallsBackToStatic(t *testing.T) {
	ctx := context.Background()
	fetcher := new(MockFetcher)
	svc := NewService(fetcher, zap.NewNop())

	fetcher.On("Product", ctx, "men1").Return(nil, errors.New("down")).Once()

	p, ok := svc.Get(ctx, "men1")

	require.True(t, ok)
	assert.Equal(t, "Stride Air Max Alpha", p.Name)

	fetcher.On("Product", ctx, "nope").Return(nil, errors.New("down")).Once()
	_, ok = svc.Get(ctx, "nope")
	assert.False(t, ok)
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{500, "₹500"},
		{8995, "₹8,995"},
		{12795, "₹12,795"},
		{123456, "₹1,23,456"},
		{12345678, "₹1,23,45,678"},
		{1495.5, "₹1,495.50"},
		{0, "₹0"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPrice(tt.in))
		})
	}
}
