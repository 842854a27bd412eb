package domain

import "time"

const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

var validOrderStatuses = map[string]bool{
	OrderStatusPending:   true,
	OrderStatusPaid:      true,
	OrderStatusShipped:   true,
	OrderStatusCompleted: true,
	OrderStatusCancelled: true,
}

// IsValidOrderStatus reports whether status is one of the known order states.
func IsValidOrderStatus(status string) bool {
	return validOrderStatuses[status]
}

type Orders struct {
	ID            uint64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        uint        `gorm:"column:user_id;not null;index" json:"user_id"`
	Items         []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	Total         float64     `gorm:"column:total;type:numeric" json:"total"`
	OrderStatus   string      `gorm:"column:order_status;not null;index" json:"order_status"`
	PaymentMethod string      `gorm:"column:payment_method" json:"payment_method"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

func (Orders) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID        uint64  `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint64  `gorm:"column:order_id;not null;index" json:"order_id"`
	ProductID uint64  `gorm:"column:product_id;not null;index" json:"product_id"`
	Quantity  int     `gorm:"column:quantity;not null" json:"quantity"`
	PriceEach float64 `gorm:"column:price_each;type:numeric" json:"price_each"`
	Subtotal  float64 `gorm:"column:subtotal;type:numeric" json:"subtotal"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
