package domain

type RecommendationKind string

const (
	RecommendationPersonalized    RecommendationKind = "personalized"
	RecommendationBoughtTogether  RecommendationKind = "frequently_bought_together"
	RecommendationPopular         RecommendationKind = "popular"
	RecommendationCategory        RecommendationKind = "category"
	RecommendationBrowsingHistory RecommendationKind = "browsing_history"
)

// RecommendedProduct is a product enriched with how it was recommended.
// Score is the cosine similarity for personalized results, the co-occurrence
// count for bought-together results and zero otherwise.
type RecommendedProduct struct {
	Product
	Kind  RecommendationKind `json:"recommendation_kind"`
	Score float64            `json:"score"`
}
