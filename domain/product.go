package domain

import (
	"time"

	"gorm.io/datatypes"
)

// CREATE TABLE public.products (
//     id              BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     product_name    TEXT NOT NULL,
//     category_id     BIGINT REFERENCES categories(category_id),
//     unit            TEXT,
//     normal_price    NUMERIC,
//     tags            JSONB DEFAULT '[]',
//     is_active       BOOLEAN DEFAULT TRUE,
//     is_featured     BOOLEAN DEFAULT FALSE,
//     is_green_tag    BOOLEAN DEFAULT FALSE,
//     quantity        NUMERIC,
//     created_at      TIMESTAMPTZ DEFAULT NOW(),
//     updated_at      TIMESTAMPTZ DEFAULT NOW()
// );

type Product struct {
	ID          uint64                      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductName string                      `gorm:"column:product_name;type:text;not null" json:"product_name"`
	CategoryID  uint64                      `gorm:"column:category_id;default:0" json:"category_id"`
	Category    *Category                   `gorm:"foreignKey:CategoryID;references:CategoryID" json:"category,omitempty"`
	Unit        string                      `gorm:"column:unit;type:text" json:"unit"`
	NormalPrice float64                     `gorm:"column:normal_price;type:numeric" json:"normal_price"`
	Tags        datatypes.JSONSlice[string] `gorm:"column:tags" json:"tags"`
	IsActive    bool                        `gorm:"column:is_active;default:true;index" json:"is_active"`
	IsFeatured  bool                        `gorm:"column:is_featured;default:false" json:"is_featured"`
	IsGreenTag  bool                        `gorm:"column:is_green_tag;default:false" json:"is_green_tag"`
	Quantity    float64                     `gorm:"column:quantity;type:numeric" json:"quantity"`
	CreatedAt   time.Time                   `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time                   `gorm:"column:updated_at" json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// CategoryName returns the name of the preloaded category, or "" when the
// category was not loaded or does not exist.
func (p Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.ProductCategory
}

// ProductFilter narrows the active-catalog scans used by the recommendation
// queries. Results are ordered by ascending price, then id, unless
// OrderByID asks for plain insertion (id) order.
type ProductFilter struct {
	CategoryID *uint64
	IDs        []uint64
	ExcludeIDs []uint64
	OrderByID  bool
	Limit      int
}

// ProductListing is a catalog entry annotated with the effective campaign price.
type ProductListing struct {
	Product
	DiscountedPrice    float64 `json:"discounted_price"`
	HasDiscount        bool    `json:"has_discount"`
	DiscountPercentage int     `json:"discount_percentage"`
}
