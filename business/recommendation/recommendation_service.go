// Package recommendation answers the product recommendation queries and
// keeps the cached user and product vectors fresh.
package recommendation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"myMarket/business/vector"
	"myMarket/domain"
	"myMarket/pkg/logger"
	"myMarket/pkg/trace"
)

type ActivityRepository interface {
	FindByUserID(ctx context.Context, userID uint) (*domain.UserActivity, error)
}

type ProductRepository interface {
	FindByID(ctx context.Context, id uint64) (*domain.Product, error)
	FindByIDs(ctx context.Context, ids []uint64) ([]domain.Product, error)
	FindActive(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
}

type OrderRepository interface {
	FindContainingProduct(ctx context.Context, productID uint64, statuses []string) ([]domain.Orders, error)
}

type PreferenceAnalyzer interface {
	AnalyzePreferences(ctx context.Context, userID uint) (domain.UserPreferences, error)
}

type Options struct {
	DefaultLimit   int
	MaxLimit       int
	BrowsingWindow int
	VectorTTL      time.Duration
}

func DefaultOptions() Options {
	return Options{
		DefaultLimit:   10,
		MaxLimit:       50,
		BrowsingWindow: 10,
		VectorTTL:      DefaultVectorTTL,
	}
}

// boughtTogetherStatuses are the order states that count as a real purchase.
var boughtTogetherStatuses = []string{domain.OrderStatusCompleted, domain.OrderStatusShipped}

type RecommendationService struct {
	activityRepo ActivityRepository
	productRepo  ProductRepository
	orderRepo    OrderRepository
	analyzer     PreferenceAnalyzer
	cache        VectorCache
	opts         Options
}

func NewRecommendationService(
	activityRepo ActivityRepository,
	productRepo ProductRepository,
	orderRepo OrderRepository,
	analyzer PreferenceAnalyzer,
	cache VectorCache,
	opts Options,
) *RecommendationService {
	defaults := DefaultOptions()
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = defaults.DefaultLimit
	}
	if opts.MaxLimit < opts.DefaultLimit {
		opts.MaxLimit = opts.DefaultLimit
	}
	if opts.BrowsingWindow <= 0 {
		opts.BrowsingWindow = defaults.BrowsingWindow
	}
	if opts.VectorTTL <= 0 {
		opts.VectorTTL = defaults.VectorTTL
	}

	return &RecommendationService{
		activityRepo: activityRepo,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
		analyzer:     analyzer,
		cache:        cache,
		opts:         opts,
	}
}

func (s *RecommendationService) limit(n int) int {
	if n <= 0 {
		return s.opts.DefaultLimit
	}
	if n > s.opts.MaxLimit {
		return s.opts.MaxLimit
	}
	return n
}

// ---- vector refresh ----

// UpdateUserVector recomputes the user's preferences and vector and caches it.
// Users without an activity record are skipped.
func (s *RecommendationService) UpdateUserVector(ctx context.Context, userID uint) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	activity, err := s.activityRepo.FindByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user activity: %w", err)
	}
	if activity == nil {
		return nil
	}

	prefs, err := s.analyzer.AnalyzePreferences(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to analyze preferences: %w", err)
	}

	return s.putVector(ctx, UserVectorKey(userID), vector.BuildUserVector(userID, prefs))
}

// UpdateProductVector rebuilds and caches a product vector. Unknown products
// are skipped.
func (s *RecommendationService) UpdateProductVector(ctx context.Context, productID uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if errors.Is(err, domain.ErrProductNotFound) || (err == nil && product == nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load product: %w", err)
	}

	return s.putVector(ctx, ProductVectorKey(productID), vector.BuildProductVector(*product))
}

func (s *RecommendationService) productVector(ctx context.Context, p domain.Product) (domain.ProductVector, error) {
	cached, err := s.cachedProductVector(ctx, p.ID)
	if err != nil {
		return domain.ProductVector{}, err
	}
	if cached != nil {
		return *cached, nil
	}

	pv := vector.BuildProductVector(p)
	if err := s.putVector(ctx, ProductVectorKey(p.ID), pv); err != nil {
		return domain.ProductVector{}, err
	}
	return pv, nil
}

// ---- queries ----

// GetPersonalizedRecommendations ranks active products by cosine similarity
// to the cached user vector. Without a cached user vector it answers with
// popular products.
func (s *RecommendationService) GetPersonalizedRecommendations(ctx context.Context, userID uint, n int) ([]domain.RecommendedProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer observe(domain.RecommendationPersonalized, time.Now())

	uv, err := s.cachedUserVector(ctx, userID)
	if err != nil {
		return nil, err
	}
	if uv == nil {
		logger.Debug("No user vector cached, falling back to popular",
			"user_id", userID,
			"trace_id", trace.TraceIDFromContext(ctx),
		)
		return s.popular(ctx, s.limit(n))
	}

	// equal scores keep insertion order
	products, err := s.productRepo.FindActive(ctx, domain.ProductFilter{OrderByID: true})
	if err != nil {
		return nil, fmt.Errorf("failed to load active products: %w", err)
	}

	scored := make([]domain.RecommendedProduct, 0, len(products))
	for _, p := range products {
		pv, err := s.productVector(ctx, p)
		if err != nil {
			return nil, err
		}
		scored = append(scored, domain.RecommendedProduct{
			Product: p,
			Kind:    domain.RecommendationPersonalized,
			Score:   vector.CosineSimilarity(uv.Vector, pv.Vector),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if limit := s.limit(n); len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

// GetFrequentlyBoughtTogether counts how often other products appear in
// completed or shipped orders containing productID. Every order line counts,
// so a product listed twice in one order scores twice.
func (s *RecommendationService) GetFrequentlyBoughtTogether(ctx context.Context, productID uint64, n int) ([]domain.RecommendedProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer observe(domain.RecommendationBoughtTogether, time.Now())

	orders, err := s.orderRepo.FindContainingProduct(ctx, productID, boughtTogetherStatuses)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	counts := map[uint64]int{}
	var ranked []uint64
	for _, o := range orders {
		for _, item := range o.Items {
			if item.ProductID == productID {
				continue
			}
			if _, seen := counts[item.ProductID]; !seen {
				ranked = append(ranked, item.ProductID)
			}
			counts[item.ProductID]++
		}
	}
	if len(ranked) == 0 {
		return []domain.RecommendedProduct{}, nil
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i]] > counts[ranked[j]]
	})

	products, err := s.productRepo.FindActive(ctx, domain.ProductFilter{IDs: ranked})
	if err != nil {
		return nil, fmt.Errorf("failed to load co-purchased products: %w", err)
	}
	active := make(map[uint64]domain.Product, len(products))
	for _, p := range products {
		active[p.ID] = p
	}

	limit := s.limit(n)
	out := make([]domain.RecommendedProduct, 0, limit)
	for _, id := range ranked {
		if len(out) == limit {
			break
		}
		p, ok := active[id]
		if !ok {
			continue
		}
		out = append(out, domain.RecommendedProduct{
			Product: p,
			Kind:    domain.RecommendationBoughtTogether,
			Score:   float64(counts[id]),
		})
	}
	return out, nil
}

// GetPopularProducts orders active products by ascending price. Price stands
// in for popularity until order volume is aggregated.
func (s *RecommendationService) GetPopularProducts(ctx context.Context, n int) ([]domain.RecommendedProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer observe(domain.RecommendationPopular, time.Now())

	return s.popular(ctx, s.limit(n))
}

func (s *RecommendationService) popular(ctx context.Context, limit int) ([]domain.RecommendedProduct, error) {
	products, err := s.productRepo.FindActive(ctx, domain.ProductFilter{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("failed to load popular products: %w", err)
	}
	return tag(products, domain.RecommendationPopular), nil
}

func (s *RecommendationService) GetCategoryRecommendations(ctx context.Context, categoryID uint64, n int) ([]domain.RecommendedProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer observe(domain.RecommendationCategory, time.Now())

	products, err := s.productRepo.FindActive(ctx, domain.ProductFilter{
		CategoryID: &categoryID,
		Limit:      s.limit(n),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load category products: %w", err)
	}
	return tag(products, domain.RecommendationCategory), nil
}

// GetBrowsingHistoryRecommendations returns active products the user has not
// browsed yet, cheapest first. Users without history get popular products.
// The category tally over recent browsing is only logged; it does not filter.
func (s *RecommendationService) GetBrowsingHistoryRecommendations(ctx context.Context, userID uint, n int) ([]domain.RecommendedProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer observe(domain.RecommendationBrowsingHistory, time.Now())

	activity, err := s.activityRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user activity: %w", err)
	}
	if activity == nil || len(activity.BrowsingHistory) == 0 {
		return s.popular(ctx, s.limit(n))
	}

	recent, err := s.productRepo.FindByIDs(ctx, activity.RecentBrowsing(s.opts.BrowsingWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to load recently browsed products: %w", err)
	}
	tally := map[string]int{}
	for _, p := range recent {
		tally[p.CategoryName()]++
	}
	logger.Debug("Recent browsing categories",
		"user_id", userID,
		"categories", tally,
		"trace_id", trace.TraceIDFromContext(ctx),
	)

	products, err := s.productRepo.FindActive(ctx, domain.ProductFilter{
		ExcludeIDs: activity.BrowsingHistory,
		Limit:      s.limit(n),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load unseen products: %w", err)
	}
	return tag(products, domain.RecommendationBrowsingHistory), nil
}

func tag(products []domain.Product, kind domain.RecommendationKind) []domain.RecommendedProduct {
	out := make([]domain.RecommendedProduct, 0, len(products))
	for _, p := range products {
		out = append(out, domain.RecommendedProduct{Product: p, Kind: kind})
	}
	return out
}
