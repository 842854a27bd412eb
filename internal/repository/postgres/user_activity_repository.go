package postgres

import (
	"context"
	"errors"
	"fmt"

	"myMarket/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserActivityRepository struct {
	DB *gorm.DB
}

func NewUserActivityRepository(db *gorm.DB) *UserActivityRepository {
	return &UserActivityRepository{DB: db}
}

// FindByUserID returns nil, nil when the user has no activity yet.
func (r *UserActivityRepository) FindByUserID(ctx context.Context, userID uint) (*domain.UserActivity, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var activity domain.UserActivity
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&activity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user_activities: %w", err)
	}

	return &activity, nil
}

// Save upserts on user_id. Concurrent writers for one user race and the last
// one wins.
func (r *UserActivityRepository) Save(ctx context.Context, activity *domain.UserActivity) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"viewed_products",
				"browsing_history",
				"purchased_products",
				"favorite_categories",
				"updated_at",
			}),
		}).
		Create(activity).Error
	if err != nil {
		return fmt.Errorf("failed to upsert user_activities: %w", err)
	}

	return nil
}
