package preference

import (
	"context"
	"errors"
	"testing"

	"myMarket/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeActivityRepo struct {
	activities map[uint]*domain.UserActivity
	err        error
}

func (f *fakeActivityRepo) FindByUserID(_ context.Context, userID uint) (*domain.UserActivity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.activities[userID], nil
}

type fakeProductRepo struct {
	products map[uint64]domain.Product
}

func (f *fakeProductRepo) FindByIDs(_ context.Context, ids []uint64) ([]domain.Product, error) {
	var out []domain.Product
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func withCategory(id uint64, category string, price float64) domain.Product {
	p := domain.Product{ID: id, NormalPrice: price, IsActive: true}
	if category != "" {
		p.Category = &domain.Category{ProductCategory: category}
	}
	return p
}

func TestAnalyzePreferences_NoActivity(t *testing.T) {
	svc := NewPreferenceService(&fakeActivityRepo{}, &fakeProductRepo{})

	prefs, err := svc.AnalyzePreferences(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{}, prefs.FavoriteCategories)
	assert.Equal(t, domain.PriceRange{Min: 0, Max: 1000}, prefs.PriceRange)
	assert.Equal(t, 3.0, prefs.AverageRating)
}

func TestAnalyzePreferences_ViewsDoNotCount(t *testing.T) {
	a := withCategory(1, "electronics", 50)
	b := withCategory(2, "electronics", 900)

	activity := domain.NewUserActivity(7)
	activity.AddView(a.ID)
	for i := 0; i < 3; i++ {
		activity.AddView(b.ID)
	}
	activity.AddPurchase(a.ID)

	svc := NewPreferenceService(
		&fakeActivityRepo{activities: map[uint]*domain.UserActivity{7: activity}},
		&fakeProductRepo{products: map[uint64]domain.Product{1: a, 2: b}},
	)

	prefs, err := svc.AnalyzePreferences(context.Background(), 7)
	require.NoError(t, err)
	require.NotEmpty(t, prefs.FavoriteCategories)
	assert.Equal(t, "electronics", prefs.FavoriteCategories[0])
	assert.Equal(t, 50.0, prefs.PriceRange.Max)
	assert.Equal(t, 50.0, prefs.PriceRange.Min)
}

func TestAnalyzePreferences_RepositoryError(t *testing.T) {
	svc := NewPreferenceService(&fakeActivityRepo{err: errors.New("db down")}, &fakeProductRepo{})

	_, err := svc.AnalyzePreferences(context.Background(), 1)
	assert.ErrorContains(t, err, "db down")
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name      string
		purchased []domain.Product
		wantCats  []string
		wantRange domain.PriceRange
	}{
		{
			name:      "empty falls back to defaults",
			wantCats:  []string{},
			wantRange: domain.PriceRange{Min: 0, Max: 1000},
		},
		{
			name: "ranked by count with first-seen ties",
			purchased: []domain.Product{
				withCategory(1, "books", 10),
				withCategory(2, "food", 5),
				withCategory(3, "home", 300),
				withCategory(4, "food", 7),
				withCategory(5, "sports", 40),
			},
			wantCats:  []string{"food", "books", "home"},
			wantRange: domain.PriceRange{Min: 5, Max: 300},
		},
		{
			name: "missing category counts as other",
			purchased: []domain.Product{
				withCategory(1, "", 20),
				withCategory(2, "Books", 30),
				withCategory(3, "", 25),
			},
			wantCats:  []string{"other", "books"},
			wantRange: domain.PriceRange{Min: 20, Max: 30},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefs := Summarize(tt.purchased)
			assert.Equal(t, tt.wantCats, prefs.FavoriteCategories)
			assert.LessOrEqual(t, len(prefs.FavoriteCategories), 3)
			assert.Equal(t, tt.wantRange, prefs.PriceRange)
			assert.Equal(t, 3.0, prefs.AverageRating)
		})
	}
}
