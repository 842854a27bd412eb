// Package discount resolves the effective price of a product from the
// campaigns running right now.
package discount

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"myMarket/domain"

	"github.com/prometheus/client_golang/prometheus"
)

var DiscountResolutionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "discount_resolutions_total",
		Help: "Count of effective price resolutions by result (discounted, full_price).",
	},
	[]string{"result"},
)

func init() {
	prometheus.MustRegister(DiscountResolutionsTotal)
}

var (
	ErrInvalidCampaignWindow = errors.New("campaign end date must not be before start date")
	ErrInvalidDiscount       = errors.New("invalid discount type or value")
)

type CampaignRepository interface {
	// FindActive returns campaigns with is_active set whose window contains now.
	FindActive(ctx context.Context, now time.Time) ([]domain.Campaign, error)
	FindAll(ctx context.Context) ([]domain.Campaign, error)
	Create(ctx context.Context, campaign *domain.Campaign) error
}

type DiscountService struct {
	campaignRepo CampaignRepository
	now          func() time.Time
}

func NewDiscountService(campaignRepo CampaignRepository) *DiscountService {
	return &DiscountService{
		campaignRepo: campaignRepo,
		now:          time.Now,
	}
}

// ResolveEffectivePrice returns the lowest price any applicable running
// campaign yields. ok is false when no campaign applies.
func (s *DiscountService) ResolveEffectivePrice(ctx context.Context, product domain.Product) (price float64, ok bool, err error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}

	campaigns, err := s.activeCampaigns(ctx)
	if err != nil {
		return 0, false, err
	}

	price, ok = resolve(product, campaigns, s.now())
	return price, ok, nil
}

// AnnotateListings prices a batch of products against one campaign scan.
func (s *DiscountService) AnnotateListings(ctx context.Context, products []domain.Product) ([]domain.ProductListing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	campaigns, err := s.activeCampaigns(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	listings := make([]domain.ProductListing, 0, len(products))
	for _, p := range products {
		discounted, ok := resolve(p, campaigns, now)
		listings = append(listings, annotate(p, discounted, ok))
	}
	return listings, nil
}

func (s *DiscountService) activeCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	campaigns, err := s.campaignRepo.FindActive(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to load active campaigns: %w", err)
	}
	return campaigns, nil
}

func resolve(product domain.Product, campaigns []domain.Campaign, now time.Time) (float64, bool) {
	best, found := 0.0, false
	for _, c := range campaigns {
		if !c.RunningAt(now) || !c.AppliesTo(product) {
			continue
		}
		candidate, ok := candidatePrice(product.NormalPrice, c)
		if !ok {
			continue
		}
		if !found || candidate < best {
			best, found = candidate, true
		}
	}

	if !found {
		DiscountResolutionsTotal.WithLabelValues("full_price").Inc()
		return 0, false
	}
	DiscountResolutionsTotal.WithLabelValues("discounted").Inc()
	return roundCents(math.Max(best, 0)), true
}

func candidatePrice(price float64, c domain.Campaign) (float64, bool) {
	switch c.DiscountType {
	case domain.DiscountPercentage:
		return price * (1 - c.DiscountValue/100), true
	case domain.DiscountAmount:
		return price - c.DiscountValue, true
	default:
		return 0, false
	}
}

// roundCents rounds half-up at the cent.
func roundCents(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

func annotate(p domain.Product, discounted float64, ok bool) domain.ProductListing {
	listing := domain.ProductListing{Product: p, DiscountedPrice: p.NormalPrice}
	if !ok {
		return listing
	}

	listing.DiscountedPrice = discounted
	listing.HasDiscount = discounted < p.NormalPrice
	if p.NormalPrice > 0 {
		listing.DiscountPercentage = int(math.Round((p.NormalPrice - discounted) / p.NormalPrice * 100))
	}
	return listing
}

// ---- campaign administration ----

func (s *DiscountService) GetAllCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	campaigns, err := s.campaignRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load campaigns: %w", err)
	}
	return campaigns, nil
}

func (s *DiscountService) CreateCampaign(ctx context.Context, campaign domain.Campaign) (*domain.Campaign, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	campaign.DiscountType = domain.DiscountType(strings.ToUpper(string(campaign.DiscountType)))
	if campaign.EndDate.Before(campaign.StartDate) {
		return nil, ErrInvalidCampaignWindow
	}
	switch campaign.DiscountType {
	case domain.DiscountPercentage:
		if campaign.DiscountValue <= 0 || campaign.DiscountValue > 100 {
			return nil, ErrInvalidDiscount
		}
	case domain.DiscountAmount:
		if campaign.DiscountValue <= 0 {
			return nil, ErrInvalidDiscount
		}
	default:
		return nil, ErrInvalidDiscount
	}

	if err := s.campaignRepo.Create(ctx, &campaign); err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}
	return &campaign, nil
}
