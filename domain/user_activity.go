package domain

import (
	"slices"
	"time"

	"gorm.io/datatypes"
)

type ActivityType string

const (
	ActivityView     ActivityType = "view"
	ActivityPurchase ActivityType = "purchase"
	ActivityCartAdd  ActivityType = "cart_add"
)

// IsValid reports whether t is one of the tracked activity types.
func (t ActivityType) IsValid() bool {
	switch t {
	case ActivityView, ActivityPurchase, ActivityCartAdd:
		return true
	default:
		return false
	}
}

// UserActivity is the per-user interaction history. One row per user.
//
// ViewedProducts and PurchasedProducts behave as sets. BrowsingHistory is
// append-only, most recent last. FavoriteCategories is reserved for explicit
// preference capture and is not written by activity tracking.
type UserActivity struct {
	ID                 uint                        `gorm:"primaryKey" json:"id"`
	UserID             uint                        `gorm:"column:user_id;uniqueIndex;not null" json:"user_id"`
	ViewedProducts     datatypes.JSONSlice[uint64] `gorm:"column:viewed_products" json:"viewed_products"`
	BrowsingHistory    datatypes.JSONSlice[uint64] `gorm:"column:browsing_history" json:"browsing_history"`
	PurchasedProducts  datatypes.JSONSlice[uint64] `gorm:"column:purchased_products" json:"purchased_products"`
	FavoriteCategories datatypes.JSONSlice[string] `gorm:"column:favorite_categories" json:"favorite_categories"`
	CreatedAt          time.Time                   `json:"created_at"`
	UpdatedAt          time.Time                   `json:"updated_at"`
}

func (UserActivity) TableName() string {
	return "user_activities"
}

// NewUserActivity returns an empty activity record owned by userID.
func NewUserActivity(userID uint) *UserActivity {
	return &UserActivity{
		UserID:             userID,
		ViewedProducts:     datatypes.JSONSlice[uint64]{},
		BrowsingHistory:    datatypes.JSONSlice[uint64]{},
		PurchasedProducts:  datatypes.JSONSlice[uint64]{},
		FavoriteCategories: datatypes.JSONSlice[string]{},
	}
}

// AddView records a view. The product joins ViewedProducts and is appended to
// BrowsingHistory, each only when not already present. It reports whether the
// record changed.
func (a *UserActivity) AddView(productID uint64) bool {
	changed := false
	if !slices.Contains(a.ViewedProducts, productID) {
		a.ViewedProducts = append(a.ViewedProducts, productID)
		changed = true
	}
	if !slices.Contains(a.BrowsingHistory, productID) {
		a.BrowsingHistory = append(a.BrowsingHistory, productID)
		changed = true
	}
	return changed
}

// AddPurchase adds productID to PurchasedProducts when not already present.
func (a *UserActivity) AddPurchase(productID uint64) bool {
	if slices.Contains(a.PurchasedProducts, productID) {
		return false
	}
	a.PurchasedProducts = append(a.PurchasedProducts, productID)
	return true
}

// RecentBrowsing returns a copy of the last n entries of BrowsingHistory.
func (a *UserActivity) RecentBrowsing(n int) []uint64 {
	history := a.BrowsingHistory
	if n >= 0 && len(history) > n {
		history = history[len(history)-n:]
	}
	return slices.Clone([]uint64(history))
}
