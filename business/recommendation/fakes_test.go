package recommendation

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"myMarket/domain"
)

type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	ttls    map[string]time.Duration
	getErr  error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	v, ok := c.entries[key]
	return v, ok, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	c.ttls[key] = ttl
	return nil
}

type fakeActivityRepo struct {
	activities map[uint]*domain.UserActivity
}

func (f *fakeActivityRepo) FindByUserID(_ context.Context, userID uint) (*domain.UserActivity, error) {
	return f.activities[userID], nil
}

type fakeProductRepo struct {
	products []domain.Product
}

func (f *fakeProductRepo) FindByID(_ context.Context, id uint64) (*domain.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (f *fakeProductRepo) FindByIDs(_ context.Context, ids []uint64) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range f.products {
		if slices.Contains(ids, p.ID) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) FindActive(_ context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range f.products {
		if !p.IsActive {
			continue
		}
		if filter.CategoryID != nil && p.CategoryID != *filter.CategoryID {
			continue
		}
		if filter.IDs != nil && !slices.Contains(filter.IDs, p.ID) {
			continue
		}
		if slices.Contains(filter.ExcludeIDs, p.ID) {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !filter.OrderByID && out[i].NormalPrice != out[j].NormalPrice {
			return out[i].NormalPrice < out[j].NormalPrice
		}
		return out[i].ID < out[j].ID
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

type fakeOrderRepo struct {
	orders []domain.Orders
}

func (f *fakeOrderRepo) FindContainingProduct(_ context.Context, productID uint64, statuses []string) ([]domain.Orders, error) {
	var out []domain.Orders
	for _, o := range f.orders {
		if !slices.Contains(statuses, o.OrderStatus) {
			continue
		}
		if slices.ContainsFunc(o.Items, func(it domain.OrderItem) bool { return it.ProductID == productID }) {
			out = append(out, o)
		}
	}
	return out, nil
}

type staticAnalyzer struct {
	prefs domain.UserPreferences
}

func (a staticAnalyzer) AnalyzePreferences(context.Context, uint) (domain.UserPreferences, error) {
	return a.prefs, nil
}

func newProduct(id uint64, categoryID uint64, category string, price float64, active bool, tags ...string) domain.Product {
	return domain.Product{
		ID:          id,
		ProductName: category,
		CategoryID:  categoryID,
		Category:    &domain.Category{CategoryID: categoryID, ProductCategory: category},
		NormalPrice: price,
		Tags:        tags,
		IsActive:    active,
	}
}

func order(status string, productIDs ...uint64) domain.Orders {
	o := domain.Orders{OrderStatus: status}
	for _, id := range productIDs {
		o.Items = append(o.Items, domain.OrderItem{ProductID: id, Quantity: 1})
	}
	return o
}

func ids(recs []domain.RecommendedProduct) []uint64 {
	out := make([]uint64, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.ID)
	}
	return out
}
