package domain

type ProductFeatures struct {
	Category   string   `json:"category"`
	Price      float64  `json:"price"`
	Rating     float64  `json:"rating"`
	SalesCount int      `json:"sales_count"`
	Tags       []string `json:"tags"`
}

type ProductVector struct {
	ProductID uint64          `json:"product_id"`
	Vector    []float64       `json:"vector"`
	Features  ProductFeatures `json:"features"`
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type UserPreferences struct {
	FavoriteCategories []string   `json:"favorite_categories"`
	PriceRange         PriceRange `json:"price_range"`
	AverageRating      float64    `json:"average_rating"`
}

type UserVector struct {
	UserID      uint            `json:"user_id"`
	Vector      []float64       `json:"vector"`
	Preferences UserPreferences `json:"preferences"`
}
