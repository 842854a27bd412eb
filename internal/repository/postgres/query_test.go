package postgres

import (
	"testing"
	"time"

	"myMarket/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// dryRun builds statements without a database connection.
func dryRun(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=test password=test dbname=test sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func TestActiveProductsQuery(t *testing.T) {
	db := dryRun(t)
	categoryID := uint64(4)

	tests := []struct {
		name     string
		filter   domain.ProductFilter
		contains []string
		absent   []string
	}{
		{
			name:     "whole catalog",
			filter:   domain.ProductFilter{},
			contains: []string{"is_active = $1", "normal_price ASC", "id ASC"},
			absent:   []string{"category_id", "NOT IN", "LIMIT"},
		},
		{
			name:     "category with limit",
			filter:   domain.ProductFilter{CategoryID: &categoryID, Limit: 5},
			contains: []string{"is_active = $1", "category_id = $2", "LIMIT"},
		},
		{
			name:     "id order",
			filter:   domain.ProductFilter{OrderByID: true},
			contains: []string{"is_active = $1", "ORDER BY id ASC"},
			absent:   []string{"normal_price"},
		},
		{
			name:     "ids and exclusions",
			filter:   domain.ProductFilter{IDs: []uint64{1, 2}, ExcludeIDs: []uint64{3}},
			contains: []string{"id IN ($2,$3)", "id NOT IN ($4)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var products []domain.Product
			stmt := activeProducts(db, tt.filter).Find(&products).Statement
			sql := stmt.SQL.String()

			assert.Contains(t, sql, `FROM "products"`)
			for _, want := range tt.contains {
				assert.Contains(t, sql, want)
			}
			for _, unwanted := range tt.absent {
				assert.NotContains(t, sql, unwanted)
			}
		})
	}
}

func TestContainingProductQuery(t *testing.T) {
	db := dryRun(t)

	var orders []domain.Orders
	stmt := containingProduct(db, 9, []string{domain.OrderStatusCompleted, domain.OrderStatusShipped}).Find(&orders).Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, `FROM "orders"`)
	assert.Contains(t, sql, "order_status IN ($1,$2)")
	assert.Contains(t, sql, `"order_items"`)
	assert.Contains(t, sql, "product_id = $3")
	assert.Equal(t, []interface{}{domain.OrderStatusCompleted, domain.OrderStatusShipped, uint64(9)}, stmt.Vars)
}

func TestRunningCampaignsQuery(t *testing.T) {
	db := dryRun(t)
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	var campaigns []domain.Campaign
	stmt := runningCampaigns(db, now).Find(&campaigns).Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, `FROM "campaigns"`)
	assert.Contains(t, sql, "is_active = $1")
	assert.Contains(t, sql, "start_date <= $2 AND end_date >= $3")
	assert.Equal(t, []interface{}{true, now, now}, stmt.Vars)
}

func TestCategoryLookupQueries(t *testing.T) {
	db := dryRun(t)

	var categories []domain.Category
	stmt := categoryByName(db, "Books").Find(&categories).Statement
	assert.Contains(t, stmt.SQL.String(), "LOWER(product_category) = LOWER($1)")
	assert.Equal(t, []interface{}{"Books"}, stmt.Vars)

	var products []domain.Product
	stmt = productsInCategory(db, 4).Find(&products).Statement
	sql := stmt.SQL.String()
	assert.Contains(t, sql, "category_id = $1")
	assert.NotContains(t, sql, "is_active")
	assert.Equal(t, []interface{}{uint64(4)}, stmt.Vars)
}
