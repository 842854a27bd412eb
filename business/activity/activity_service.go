// Package activity records what users view, add to cart and purchase.
package activity

import (
	"context"
	"fmt"

	"myMarket/domain"
	"myMarket/pkg/logger"
	"myMarket/pkg/trace"

	"github.com/prometheus/client_golang/prometheus"
)

var ActivityEventsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "activity_events_total",
		Help: "Count of tracked user activity events by activity_type.",
	},
	[]string{"activity_type"},
)

func init() {
	prometheus.MustRegister(ActivityEventsTotal)
}

type ActivityRepository interface {
	FindByUserID(ctx context.Context, userID uint) (*domain.UserActivity, error)
	Save(ctx context.Context, activity *domain.UserActivity) error
}

// VectorUpdater refreshes cached vectors after the activity record changed.
type VectorUpdater interface {
	UpdateUserVector(ctx context.Context, userID uint) error
	UpdateProductVector(ctx context.Context, productID uint64) error
}

type ActivityService struct {
	activityRepo ActivityRepository
	vectors      VectorUpdater
}

func NewActivityService(activityRepo ActivityRepository, vectors VectorUpdater) *ActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
		vectors:      vectors,
	}
}

// TrackActivity persists the event and then refreshes the user vector and the
// product vector, in that order. Refresh failures are logged and never
// returned; only validation and persistence errors reach the caller.
func (s *ActivityService) TrackActivity(ctx context.Context, userID uint, productID uint64, activityType domain.ActivityType) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if !activityType.IsValid() {
		return domain.ErrInvalidActivityType
	}

	activity, err := s.activityRepo.FindByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user activity: %w", err)
	}
	if activity == nil {
		activity = domain.NewUserActivity(userID)
	}

	switch activityType {
	case domain.ActivityView:
		activity.AddView(productID)
	case domain.ActivityPurchase:
		activity.AddPurchase(productID)
	case domain.ActivityCartAdd:
		// cart adds are accepted but not stored
	}

	if err := s.activityRepo.Save(ctx, activity); err != nil {
		return fmt.Errorf("failed to save user activity: %w", err)
	}
	ActivityEventsTotal.WithLabelValues(string(activityType)).Inc()

	tid := trace.TraceIDFromContext(ctx)
	if err := s.vectors.UpdateUserVector(ctx, userID); err != nil {
		logger.Warn("Failed to refresh user vector",
			"user_id", userID,
			"trace_id", tid,
			"error", err,
		)
	}
	if err := s.vectors.UpdateProductVector(ctx, productID); err != nil {
		logger.Warn("Failed to refresh product vector",
			"product_id", productID,
			"trace_id", tid,
			"error", err,
		)
	}

	return nil
}

// GetActivity returns the stored activity of a user, or an empty record.
func (s *ActivityService) GetActivity(ctx context.Context, userID uint) (*domain.UserActivity, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	activity, err := s.activityRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user activity: %w", err)
	}
	if activity == nil {
		return domain.NewUserActivity(userID), nil
	}
	return activity, nil
}
