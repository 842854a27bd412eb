package discount

import (
	"context"
	"errors"
	"testing"
	"time"

	"myMarket/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

type fakeCampaignRepo struct {
	campaigns []domain.Campaign
	findCalls int
	err       error
}

func (f *fakeCampaignRepo) FindActive(_ context.Context, now time.Time) ([]domain.Campaign, error) {
	f.findCalls++
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Campaign
	for _, c := range f.campaigns {
		if c.RunningAt(now) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCampaignRepo) FindAll(context.Context) ([]domain.Campaign, error) {
	return f.campaigns, f.err
}

func (f *fakeCampaignRepo) Create(_ context.Context, c *domain.Campaign) error {
	if f.err != nil {
		return f.err
	}
	c.ID = uint64(len(f.campaigns) + 1)
	f.campaigns = append(f.campaigns, *c)
	return nil
}

func newService(campaigns ...domain.Campaign) (*DiscountService, *fakeCampaignRepo) {
	repo := &fakeCampaignRepo{campaigns: campaigns}
	svc := NewDiscountService(repo)
	svc.now = func() time.Time { return fixedNow }
	return svc, repo
}

func campaign(kind domain.DiscountType, value float64) domain.Campaign {
	return domain.Campaign{
		IsActive:      true,
		StartDate:     fixedNow.Add(-24 * time.Hour),
		EndDate:       fixedNow.Add(24 * time.Hour),
		DiscountType:  kind,
		DiscountValue: value,
	}
}

func TestResolveEffectivePrice(t *testing.T) {
	product := domain.Product{ID: 10, CategoryID: 3, NormalPrice: 100}

	expired := campaign(domain.DiscountAmount, 90)
	expired.EndDate = fixedNow.Add(-time.Hour)

	inactive := campaign(domain.DiscountAmount, 90)
	inactive.IsActive = false

	otherProduct := campaign(domain.DiscountAmount, 90)
	otherProduct.ProductIDs = []uint64{11}

	byCategory := campaign(domain.DiscountPercentage, 30)
	byCategory.CategoryIDs = []uint64{3}

	byProduct := campaign(domain.DiscountAmount, 45)
	byProduct.ProductIDs = []uint64{10}

	tests := []struct {
		name      string
		product   domain.Product
		campaigns []domain.Campaign
		wantPrice float64
		wantOK    bool
	}{
		{
			name:      "minimum of percentage and amount",
			product:   product,
			campaigns: []domain.Campaign{campaign(domain.DiscountPercentage, 20), campaign(domain.DiscountAmount, 50)},
			wantPrice: 50,
			wantOK:    true,
		},
		{
			name:      "no campaigns",
			product:   product,
			campaigns: nil,
			wantOK:    false,
		},
		{
			name:      "only non-applicable campaigns",
			product:   product,
			campaigns: []domain.Campaign{expired, inactive, otherProduct},
			wantOK:    false,
		},
		{
			name:      "clamped at zero",
			product:   domain.Product{ID: 1, NormalPrice: 10},
			campaigns: []domain.Campaign{campaign(domain.DiscountAmount, 50)},
			wantPrice: 0,
			wantOK:    true,
		},
		{
			name:      "category match",
			product:   product,
			campaigns: []domain.Campaign{byCategory, otherProduct},
			wantPrice: 70,
			wantOK:    true,
		},
		{
			name:      "product match beats category",
			product:   product,
			campaigns: []domain.Campaign{byCategory, byProduct},
			wantPrice: 55,
			wantOK:    true,
		},
		{
			name:      "rounded half up at the cent",
			product:   domain.Product{ID: 1, NormalPrice: 10.05},
			campaigns: []domain.Campaign{campaign(domain.DiscountPercentage, 50)},
			wantPrice: 5.03,
			wantOK:    true,
		},
		{
			name:      "unknown discount type ignored",
			product:   product,
			campaigns: []domain.Campaign{campaign(domain.DiscountType("BOGO"), 50)},
			wantOK:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService(tt.campaigns...)
			price, ok, err := svc.ResolveEffectivePrice(context.Background(), tt.product)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.wantPrice, price, 1e-9)
			}
		})
	}
}

func TestResolveEffectivePrice_RepositoryError(t *testing.T) {
	svc, repo := newService()
	repo.err = errors.New("db down")

	_, ok, err := svc.ResolveEffectivePrice(context.Background(), domain.Product{NormalPrice: 10})
	assert.False(t, ok)
	assert.ErrorContains(t, err, "db down")
}

func TestAnnotateListings(t *testing.T) {
	half := campaign(domain.DiscountPercentage, 50)
	half.ProductIDs = []uint64{1}
	zero := campaign(domain.DiscountAmount, 5)
	zero.ProductIDs = []uint64{3}

	svc, repo := newService(half, zero)
	listings, err := svc.AnnotateListings(context.Background(), []domain.Product{
		{ID: 1, NormalPrice: 80},
		{ID: 2, NormalPrice: 40},
		{ID: 3, NormalPrice: 0},
	})
	require.NoError(t, err)
	require.Len(t, listings, 3)
	assert.Equal(t, 1, repo.findCalls)

	assert.True(t, listings[0].HasDiscount)
	assert.Equal(t, 40.0, listings[0].DiscountedPrice)
	assert.Equal(t, 50, listings[0].DiscountPercentage)

	assert.False(t, listings[1].HasDiscount)
	assert.Equal(t, 40.0, listings[1].DiscountedPrice)
	assert.Zero(t, listings[1].DiscountPercentage)

	assert.False(t, listings[2].HasDiscount)
	assert.Zero(t, listings[2].DiscountedPrice)
	assert.Zero(t, listings[2].DiscountPercentage)
}

func TestCreateCampaign(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	c := campaign(domain.DiscountType("percentage"), 15)
	created, err := svc.CreateCampaign(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, domain.DiscountPercentage, created.DiscountType)
	assert.Len(t, repo.campaigns, 1)

	bad := campaign(domain.DiscountPercentage, 150)
	_, err = svc.CreateCampaign(ctx, bad)
	assert.ErrorIs(t, err, ErrInvalidDiscount)

	backwards := campaign(domain.DiscountAmount, 5)
	backwards.EndDate = backwards.StartDate.Add(-time.Hour)
	_, err = svc.CreateCampaign(ctx, backwards)
	assert.ErrorIs(t, err, ErrInvalidCampaignWindow)
}
