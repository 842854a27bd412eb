// Package preference derives a user's category, price and rating
// preferences from what they purchased.
package preference

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"myMarket/business/vector"
	"myMarket/domain"
)

const (
	topCategories    = 3
	defaultMinPrice  = 0
	defaultMaxPrice  = 1000
	fallbackCategory = "other"
)

type ActivityRepository interface {
	FindByUserID(ctx context.Context, userID uint) (*domain.UserActivity, error)
}

type ProductRepository interface {
	FindByIDs(ctx context.Context, ids []uint64) ([]domain.Product, error)
}

type PreferenceService struct {
	activityRepo ActivityRepository
	productRepo  ProductRepository
}

func NewPreferenceService(activityRepo ActivityRepository, productRepo ProductRepository) *PreferenceService {
	return &PreferenceService{
		activityRepo: activityRepo,
		productRepo:  productRepo,
	}
}

// Defaults is what a user without purchases gets.
func Defaults() domain.UserPreferences {
	return domain.UserPreferences{
		FavoriteCategories: []string{},
		PriceRange:         domain.PriceRange{Min: defaultMinPrice, Max: defaultMaxPrice},
		AverageRating:      vector.DefaultRating,
	}
}

// AnalyzePreferences is recomputed from scratch on every call.
func (s *PreferenceService) AnalyzePreferences(ctx context.Context, userID uint) (domain.UserPreferences, error) {
	if err := ctx.Err(); err != nil {
		return domain.UserPreferences{}, err
	}

	activity, err := s.activityRepo.FindByUserID(ctx, userID)
	if err != nil {
		return domain.UserPreferences{}, fmt.Errorf("failed to load user activity: %w", err)
	}
	if activity == nil || len(activity.PurchasedProducts) == 0 {
		return Defaults(), nil
	}

	products, err := s.productRepo.FindByIDs(ctx, activity.PurchasedProducts)
	if err != nil {
		return domain.UserPreferences{}, fmt.Errorf("failed to load purchased products: %w", err)
	}

	byID := make(map[uint64]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	purchased := make([]domain.Product, 0, len(activity.PurchasedProducts))
	for _, id := range activity.PurchasedProducts {
		if p, ok := byID[id]; ok {
			purchased = append(purchased, p)
		}
	}

	return Summarize(purchased), nil
}

// Summarize folds purchased products into preferences. Categories are ranked
// by count, ties keep first-seen order.
func Summarize(purchased []domain.Product) domain.UserPreferences {
	if len(purchased) == 0 {
		return Defaults()
	}

	type categoryCount struct {
		name  string
		count int
	}
	var counts []categoryCount
	index := map[string]int{}

	minPrice, maxPrice := purchased[0].NormalPrice, purchased[0].NormalPrice
	var ratingSum float64

	for _, p := range purchased {
		name := strings.ToLower(p.CategoryName())
		if name == "" {
			name = fallbackCategory
		}
		if i, ok := index[name]; ok {
			counts[i].count++
		} else {
			index[name] = len(counts)
			counts = append(counts, categoryCount{name: name, count: 1})
		}

		if p.NormalPrice < minPrice {
			minPrice = p.NormalPrice
		}
		if p.NormalPrice > maxPrice {
			maxPrice = p.NormalPrice
		}
		ratingSum += vector.ProductRating(p)
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].count > counts[j].count
	})

	favorites := make([]string, 0, topCategories)
	for i := 0; i < len(counts) && i < topCategories; i++ {
		favorites = append(favorites, counts[i].name)
	}

	return domain.UserPreferences{
		FavoriteCategories: favorites,
		PriceRange:         domain.PriceRange{Min: minPrice, Max: maxPrice},
		AverageRating:      ratingSum / float64(len(purchased)),
	}
}
