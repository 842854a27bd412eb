// Package vector turns products and user preferences into fixed-length
// feature vectors and compares them. Everything here is pure.
package vector

import (
	"math"
	"myMarket/domain"
)

const (
	// ProductVectorLen = categories + price + rating + sales + tags.
	ProductVectorLen = categoryCount + 3 + tagCount
	// UserVectorLen = categories + min price + max price + average rating.
	UserVectorLen = categoryCount + 3

	priceScale  = 1000.0
	ratingScale = 5.0
	salesScale  = 1000.0

	DefaultRating     = 3.0
	DefaultSalesCount = 0
)

// ProductRating is the rating fed into product vectors. Ratings are not
// aggregated yet, so every product gets DefaultRating.
func ProductRating(domain.Product) float64 {
	return DefaultRating
}

// ProductSalesCount is the sales count fed into product vectors. Sales are
// not aggregated yet, so every product gets DefaultSalesCount.
func ProductSalesCount(domain.Product) int {
	return DefaultSalesCount
}

// normalizePrice divides by 1000 and clamps the top at 1. Negative prices pass
// through unclamped.
func normalizePrice(price float64) float64 {
	return math.Min(price/priceScale, 1)
}

func normalizeRating(rating float64) float64 {
	return rating / ratingScale
}

func normalizeSales(count int) float64 {
	return math.Min(float64(count)/salesScale, 1)
}

func BuildProductVector(p domain.Product) domain.ProductVector {
	rating := ProductRating(p)
	sales := ProductSalesCount(p)
	categoryName := p.CategoryName()

	v := make([]float64, 0, ProductVectorLen)
	v = append(v, encodeCategories([]string{categoryName})...)
	v = append(v, normalizePrice(p.NormalPrice), normalizeRating(rating), normalizeSales(sales))
	v = append(v, encodeTags(p.Tags)...)

	return domain.ProductVector{
		ProductID: p.ID,
		Vector:    v,
		Features: domain.ProductFeatures{
			Category:   categoryName,
			Price:      p.NormalPrice,
			Rating:     rating,
			SalesCount: sales,
			Tags:       append([]string(nil), p.Tags...),
		},
	}
}

// BuildUserVector multi-hot encodes the favorite categories and appends the
// normalized price range and average rating.
func BuildUserVector(userID uint, prefs domain.UserPreferences) domain.UserVector {
	v := make([]float64, 0, UserVectorLen)
	v = append(v, encodeCategories(prefs.FavoriteCategories)...)
	v = append(v,
		normalizePrice(prefs.PriceRange.Min),
		normalizePrice(prefs.PriceRange.Max),
		normalizeRating(prefs.AverageRating),
	)

	return domain.UserVector{
		UserID:      userID,
		Vector:      v,
		Preferences: prefs,
	}
}

func encodeCategories(names []string) []float64 {
	out := make([]float64, categoryCount)
	for _, name := range names {
		if c, ok := ParseCategory(name); ok {
			out[c] = 1
		}
	}
	return out
}

func encodeTags(tags []string) []float64 {
	out := make([]float64, tagCount)
	for _, tag := range tags {
		if t, ok := ParseTag(tag); ok {
			out[t] = 1
		}
	}
	return out
}

// CosineSimilarity returns dot(a,b)/(|a||b|). It returns 0 when the lengths
// differ or either vector has zero norm, which callers treat as "no signal".
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
