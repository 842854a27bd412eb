package postgres

import (
	"context"
	"fmt"
	"time"

	"myMarket/domain"

	"gorm.io/gorm"
)

type CampaignRepository struct {
	DB *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) *CampaignRepository {
	return &CampaignRepository{DB: db}
}

func (r *CampaignRepository) FindActive(ctx context.Context, now time.Time) ([]domain.Campaign, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var campaigns []domain.Campaign
	err := runningCampaigns(r.DB.WithContext(ctx), now).Find(&campaigns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find active campaigns: %w", err)
	}

	return campaigns, nil
}

func runningCampaigns(db *gorm.DB, now time.Time) *gorm.DB {
	return db.Model(&domain.Campaign{}).
		Where("is_active = ?", true).
		Where("start_date <= ? AND end_date >= ?", now, now).
		Order("id ASC")
}

func (r *CampaignRepository) FindAll(ctx context.Context) ([]domain.Campaign, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var campaigns []domain.Campaign
	if err := r.DB.WithContext(ctx).Order("start_date DESC").Find(&campaigns).Error; err != nil {
		return nil, fmt.Errorf("failed to find campaigns: %w", err)
	}

	return campaigns, nil
}

func (r *CampaignRepository) Create(ctx context.Context, campaign *domain.Campaign) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(campaign).Error; err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}

	return nil
}
