package domain

import (
	"slices"
	"time"

	"gorm.io/datatypes"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "PERCENTAGE"
	DiscountAmount     DiscountType = "AMOUNT"
)

// Campaign is a promotional discount. Empty ProductIDs and CategoryIDs mean
// the campaign applies to every product.
type Campaign struct {
	ID            uint64                      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string                      `gorm:"column:name;type:text" json:"name"`
	IsActive      bool                        `gorm:"column:is_active;default:false;index" json:"is_active"`
	StartDate     time.Time                   `gorm:"column:start_date" json:"start_date"`
	EndDate       time.Time                   `gorm:"column:end_date" json:"end_date"`
	DiscountType  DiscountType                `gorm:"column:discount_type;type:text" json:"discount_type"`
	DiscountValue float64                     `gorm:"column:discount_value;type:numeric" json:"discount_value"`
	ProductIDs    datatypes.JSONSlice[uint64] `gorm:"column:product_ids" json:"product_ids"`
	CategoryIDs   datatypes.JSONSlice[uint64] `gorm:"column:category_ids" json:"category_ids"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
}

func (Campaign) TableName() string {
	return "campaigns"
}

// RunningAt reports whether the campaign is switched on and now falls inside
// its [StartDate, EndDate] window.
func (c Campaign) RunningAt(now time.Time) bool {
	return c.IsActive && !now.Before(c.StartDate) && !now.After(c.EndDate)
}

// AppliesTo reports whether the campaign targets the product, either directly,
// through its category, or platform-wide.
func (c Campaign) AppliesTo(p Product) bool {
	if len(c.ProductIDs) == 0 && len(c.CategoryIDs) == 0 {
		return true
	}
	return slices.Contains(c.ProductIDs, p.ID) || slices.Contains(c.CategoryIDs, p.CategoryID)
}
