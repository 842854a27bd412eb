package vector

import "strings"

// Category is a slot in the fixed category vocabulary.
type Category int

const (
	CategoryElectronics Category = iota
	CategoryClothing
	CategoryBooks
	CategoryHome
	CategorySports
	CategoryBeauty
	CategoryFood
	CategoryOther

	categoryCount = int(CategoryOther) + 1
)

var categoryNames = [categoryCount]string{
	CategoryElectronics: "electronics",
	CategoryClothing:    "clothing",
	CategoryBooks:       "books",
	CategoryHome:        "home",
	CategorySports:      "sports",
	CategoryBeauty:      "beauty",
	CategoryFood:        "food",
	CategoryOther:       "other",
}

func (c Category) String() string {
	if c < 0 || int(c) >= categoryCount {
		return "unknown"
	}
	return categoryNames[c]
}

// ParseCategory matches name case-insensitively against the vocabulary.
// Unknown names do not fall back to CategoryOther; "other" only matches itself.
func ParseCategory(name string) (Category, bool) {
	lower := strings.ToLower(name)
	for i, n := range categoryNames {
		if n == lower {
			return Category(i), true
		}
	}
	return 0, false
}

// Tag is a slot in the fixed product tag vocabulary.
type Tag int

const (
	TagNew Tag = iota
	TagSale
	TagTrending
	TagPopular
	TagLimited
	TagPremium
	TagEcoFriendly

	tagCount = int(TagEcoFriendly) + 1
)

var tagNames = [tagCount]string{
	TagNew:         "new",
	TagSale:        "sale",
	TagTrending:    "trending",
	TagPopular:     "popular",
	TagLimited:     "limited",
	TagPremium:     "premium",
	TagEcoFriendly: "eco-friendly",
}

func (t Tag) String() string {
	if t < 0 || int(t) >= tagCount {
		return "unknown"
	}
	return tagNames[t]
}

// ParseTag is an exact, case-insensitive match. No partial or stemmed matching.
func ParseTag(name string) (Tag, bool) {
	lower := strings.ToLower(name)
	for i, n := range tagNames {
		if n == lower {
			return Tag(i), true
		}
	}
	return 0, false
}
