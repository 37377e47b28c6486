package service

import (
	"context"
	"errors"
	"time"

	"github.com/Eursukkul/menulink/internal/availability"
	"github.com/Eursukkul/menulink/internal/dto"
	"github.com/Eursukkul/menulink/internal/models"
	"github.com/Eursukkul/menulink/internal/repository"
)

const (
	DefaultAnalyticsDays = 7
	MaxAnalyticsDays     = 90
	notificationLimit    = 50
)

type AnalyticsService interface {
	Summary(ctx context.Context, restaurantID uint, days int) (*dto.AnalyticsSummary, error)
	ListNotifications(ctx context.Context, restaurantID uint) ([]models.Notification, error)
}

type analyticsService struct {
	analyticsRepo    repository.AnalyticsRepository
	notificationRepo repository.NotificationRepository
	timeout          time.Duration
	now              func() time.Time
}

func NewAnalyticsService(analyticsRepo repository.AnalyticsRepository, notificationRepo repository.NotificationRepository, timeout time.Duration) AnalyticsService {
	return &analyticsService{
		analyticsRepo:    analyticsRepo,
		notificationRepo: notificationRepo,
		timeout:          timeout,
		now:              time.Now,
	}
}

// ClampDays maps a requested window onto 1..90 days, with 7 for anything
// missing or non-positive.
func ClampDays(days int) int {
	switch {
	case days <= 0:
		return DefaultAnalyticsDays
	case days > MaxAnalyticsDays:
		return MaxAnalyticsDays
	}
	return days
}

func (s *analyticsService) Summary(ctx context.Context, restaurantID uint, days int) (*dto.AnalyticsSummary, error) {
	days = ClampDays(days)
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	today := s.now().UTC().Truncate(24 * time.Hour)
	since := today.AddDate(0, 0, -(days - 1))

	views, err := s.analyticsRepo.PageViewsSince(ctx, restaurantID, since)
	if err != nil {
		return nil, s.queryErr(ctx, err)
	}
	clicks, err := s.analyticsRepo.ButtonClicksSince(ctx, restaurantID, since)
	if err != nil {
		return nil, s.queryErr(ctx, err)
	}

	perDay := make(map[string]int, days)
	for _, v := range views {
		perDay[v.CreatedAt.UTC().Format(availability.DateLayout)]++
	}
	summary := &dto.AnalyticsSummary{
		Days:           days,
		TotalPageViews: len(views),
		TotalClicks:    len(clicks),
		PageViews:      make([]dto.DailyCount, 0, days),
		ClicksByButton: map[string]int{},
	}
	for d := since; !d.After(today); d = d.AddDate(0, 0, 1) {
		key := d.Format(availability.DateLayout)
		summary.PageViews = append(summary.PageViews, dto.DailyCount{Date: key, Count: perDay[key]})
	}
	for _, c := range clicks {
		summary.ClicksByButton[c.ButtonType]++
	}
	return summary, nil
}

func (s *analyticsService) queryErr(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return ErrAnalyticsTimeout
	}
	return err
}

func (s *analyticsService) ListNotifications(ctx context.Context, restaurantID uint) ([]models.Notification, error) {
	return s.notificationRepo.ListRecent(ctx, restaurantID, notificationLimit)
}
