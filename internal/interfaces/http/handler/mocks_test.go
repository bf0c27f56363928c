package handler

import (
	"context"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository implements catalog.ProductRepository for testing
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, storeID, productID int64) (*catalog.Product, error) {
	args := m.Called(ctx, storeID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindPurchasable(ctx context.Context, storeID int64, filter catalog.ProductFilter) ([]catalog.Product, error) {
	args := m.Called(ctx, storeID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) CountPurchasable(ctx context.Context, storeID int64, filter catalog.ProductFilter) (int64, error) {
	args := m.Called(ctx, storeID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) FindRelated(ctx context.Context, storeID, productID, categoryID int64, limit int) ([]catalog.Product, error) {
	args := m.Called(ctx, storeID, productID, categoryID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

// MockCombinationRepository implements catalog.CombinationRepository for testing
type MockCombinationRepository struct {
	mock.Mock
}

func (m *MockCombinationRepository) FindByProductID(ctx context.Context, productID int64) ([]catalog.Combination, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Combination), args.Error(1)
}

func (m *MockCombinationRepository) FindByProductIDs(ctx context.Context, productIDs []int64) (map[int64][]catalog.Combination, error) {
	args := m.Called(ctx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64][]catalog.Combination), args.Error(1)
}

// MockPinger implements Pinger for testing
type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
