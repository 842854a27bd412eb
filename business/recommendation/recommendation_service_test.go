package recommendation

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"myMarket/business/vector"
	"myMarket/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc        *RecommendationService
	cache      *memoryCache
	activities *fakeActivityRepo
	products   *fakeProductRepo
	orders     *fakeOrderRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		cache:      newMemoryCache(),
		activities: &fakeActivityRepo{activities: map[uint]*domain.UserActivity{}},
		products: &fakeProductRepo{products: []domain.Product{
			newProduct(1, 1, "electronics", 50, true, "new"),
			newProduct(2, 1, "electronics", 900, true, "premium"),
			newProduct(3, 2, "books", 15, true, "sale"),
			newProduct(4, 2, "books", 5, false),
			newProduct(5, 3, "food", 30, true),
			newProduct(6, 1, "electronics", 30, true),
		}},
		orders: &fakeOrderRepo{},
	}
	prefs := domain.UserPreferences{FavoriteCategories: []string{"electronics"}, PriceRange: domain.PriceRange{Min: 50, Max: 50}, AverageRating: 3}
	f.svc = NewRecommendationService(f.activities, f.products, f.orders, staticAnalyzer{prefs: prefs}, f.cache, DefaultOptions())
	return f
}

func TestGetPopularProducts_AscendingPrice(t *testing.T) {
	f := newFixture(t)

	recs, err := f.svc.GetPopularProducts(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, []uint64{3, 5, 6}, ids(recs))
	for _, r := range recs {
		assert.Equal(t, domain.RecommendationPopular, r.Kind)
	}
}

func TestLimitNormalization(t *testing.T) {
	f := newFixture(t)
	f.svc.opts.DefaultLimit = 2
	f.svc.opts.MaxLimit = 4

	recs, err := f.svc.GetPopularProducts(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, recs, 2)

	recs, err = f.svc.GetPopularProducts(context.Background(), 100)
	require.NoError(t, err)
	assert.Len(t, recs, 4)
}

func TestGetPersonalizedRecommendations_NoVectorFallsBackToPopular(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	personalized, err := f.svc.GetPersonalizedRecommendations(ctx, 99, 4)
	require.NoError(t, err)
	popular, err := f.svc.GetPopularProducts(ctx, 4)
	require.NoError(t, err)

	assert.Equal(t, popular, personalized)
}

func TestGetPersonalizedRecommendations_ScoresAndCachesProductVectors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.activities.activities[7] = domain.NewUserActivity(7)

	require.NoError(t, f.svc.UpdateUserVector(ctx, 7))
	require.Contains(t, f.cache.entries, UserVectorKey(7))

	recs, err := f.svc.GetPersonalizedRecommendations(ctx, 7, 3)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	uvRaw := f.cache.entries[UserVectorKey(7)]
	var uv domain.UserVector
	require.NoError(t, json.Unmarshal(uvRaw, &uv))

	for i, r := range recs {
		assert.Equal(t, domain.RecommendationPersonalized, r.Kind)
		pv := vector.BuildProductVector(r.Product)
		assert.InDelta(t, vector.CosineSimilarity(uv.Vector, pv.Vector), r.Score, 1e-9)
		if i > 0 {
			assert.GreaterOrEqual(t, recs[i-1].Score, r.Score)
		}
	}

	// every active product vector was built lazily and cached
	for _, id := range []uint64{1, 2, 3, 5, 6} {
		assert.Contains(t, f.cache.entries, ProductVectorKey(id))
		assert.Equal(t, DefaultVectorTTL, f.cache.ttls[ProductVectorKey(id)])
	}
	assert.NotContains(t, f.cache.entries, ProductVectorKey(4))
}

func TestGetPersonalizedRecommendations_TiesKeepQueryOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.activities.activities[7] = domain.NewUserActivity(7)
	require.NoError(t, f.svc.UpdateUserVector(ctx, 7))

	// user and product vectors differ in length, so every score is 0 and
	// the result is the active catalog in id order, not price order
	recs, err := f.svc.GetPersonalizedRecommendations(ctx, 7, 10)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3, 5, 6}, ids(recs))
	for _, r := range recs {
		assert.Zero(t, r.Score)
	}

	popular, err := f.svc.GetPopularProducts(ctx, 10)
	require.NoError(t, err)
	assert.NotEqual(t, ids(popular), ids(recs))
}

func TestGetPersonalizedRecommendations_CacheError(t *testing.T) {
	f := newFixture(t)
	f.cache.getErr = errors.New("connection refused")

	_, err := f.svc.GetPersonalizedRecommendations(context.Background(), 1, 5)
	assert.ErrorContains(t, err, "connection refused")
}

func TestGetFrequentlyBoughtTogether(t *testing.T) {
	f := newFixture(t)
	f.orders.orders = []domain.Orders{
		order(domain.OrderStatusCompleted, 1, 3, 5),
		order(domain.OrderStatusShipped, 1, 5),
		order(domain.OrderStatusCompleted, 1, 2, 2),
		order(domain.OrderStatusPending, 1, 6, 6, 6),
		order(domain.OrderStatusCompleted, 1, 4),
		order(domain.OrderStatusCompleted, 3, 6),
	}

	recs, err := f.svc.GetFrequentlyBoughtTogether(context.Background(), 1, 10)
	require.NoError(t, err)

	assert.Equal(t, []uint64{5, 2, 3}, ids(recs))
	assert.NotContains(t, ids(recs), uint64(1))
	assert.NotContains(t, ids(recs), uint64(4), "inactive products are dropped")
	assert.Equal(t, 2.0, recs[0].Score)
	assert.Equal(t, 2.0, recs[1].Score, "duplicate lines in one order count twice")
	assert.Equal(t, domain.RecommendationBoughtTogether, recs[0].Kind)

	limited, err := f.svc.GetFrequentlyBoughtTogether(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint64{5}, ids(limited))
}

func TestGetFrequentlyBoughtTogether_InactiveSkippedBeforeLimit(t *testing.T) {
	f := newFixture(t)
	f.orders.orders = []domain.Orders{
		order(domain.OrderStatusCompleted, 1, 4),
		order(domain.OrderStatusCompleted, 1, 4),
		order(domain.OrderStatusCompleted, 1, 4),
		order(domain.OrderStatusCompleted, 1, 5),
		order(domain.OrderStatusCompleted, 1, 5),
		order(domain.OrderStatusCompleted, 1, 3),
	}

	// 4 ranks first but is inactive; the next active ids fill the limit
	recs, err := f.svc.GetFrequentlyBoughtTogether(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint64{5, 3}, ids(recs))
}

func TestGetFrequentlyBoughtTogether_NoOrders(t *testing.T) {
	f := newFixture(t)

	recs, err := f.svc.GetFrequentlyBoughtTogether(context.Background(), 42, 5)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestGetCategoryRecommendations_OnlyActive(t *testing.T) {
	f := newFixture(t)

	recs, err := f.svc.GetCategoryRecommendations(context.Background(), 2, 10)
	require.NoError(t, err)
	assert.Equal(t, []uint64{3}, ids(recs))

	recs, err = f.svc.GetCategoryRecommendations(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []uint64{6, 1, 2}, ids(recs))
	for _, r := range recs {
		assert.True(t, r.IsActive)
		assert.Equal(t, domain.RecommendationCategory, r.Kind)
	}
}

func TestGetBrowsingHistoryRecommendations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// no history: popular
	recs, err := f.svc.GetBrowsingHistoryRecommendations(ctx, 7, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint64{3, 5}, ids(recs))

	activity := domain.NewUserActivity(7)
	activity.AddView(3)
	activity.AddView(1)
	f.activities.activities[7] = activity

	recs, err = f.svc.GetBrowsingHistoryRecommendations(ctx, 7, 10)
	require.NoError(t, err)
	assert.Equal(t, []uint64{5, 6, 2}, ids(recs))
	for _, r := range recs {
		assert.Equal(t, domain.RecommendationBrowsingHistory, r.Kind)
	}
}

func TestUpdateUserVector_SkipsUnknownUser(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.svc.UpdateUserVector(context.Background(), 404))
	assert.Empty(t, f.cache.entries)
}

func TestUpdateProductVector(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.UpdateProductVector(ctx, 404))
	assert.Empty(t, f.cache.entries)

	require.NoError(t, f.svc.UpdateProductVector(ctx, 2))
	var pv domain.ProductVector
	require.NoError(t, json.Unmarshal(f.cache.entries[ProductVectorKey(2)], &pv))
	assert.Equal(t, uint64(2), pv.ProductID)
	assert.Len(t, pv.Vector, vector.ProductVectorLen)
	assert.Equal(t, 24*time.Hour, f.cache.ttls[ProductVectorKey(2)])
}

func TestCorruptCacheEntryIsRebuilt(t *testing.T) {
	f := newFixture(t)
	f.cache.entries[ProductVectorKey(3)] = []byte("not json")

	pv, err := f.svc.productVector(context.Background(), f.products.products[2])
	require.NoError(t, err)
	assert.Equal(t, uint64(3), pv.ProductID)
	assert.NotEqual(t, []byte("not json"), f.cache.entries[ProductVectorKey(3)])
}

func TestCanceledContext(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.svc.GetPopularProducts(ctx, 5)
	assert.ErrorIs(t, err, context.Canceled)
}
