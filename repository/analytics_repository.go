package repository

import (
	"time"

	"qrmenu/entity"

	"gorm.io/gorm"
)

type AnalyticsRepository struct {
	DB *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{DB: db}
}

// AnalyticsSummary ตัวเลขรวมของหน้า admin dashboard
type AnalyticsSummary struct {
	TotalUsers          int64            `json:"totalUsers"`
	TotalProfiles       int64            `json:"totalProfiles"`
	TotalMenus          int64            `json:"totalMenus"`
	TotalItems          int64            `json:"totalItems"`
	ActiveSubscriptions int64            `json:"activeSubscriptions"`
	SubscriptionsByPlan map[string]int64 `json:"subscriptionsByPlan"`
	RevenueTotal        int64            `json:"revenueTotal"`
	RevenueThisMonth    int64            `json:"revenueThisMonth"`
	FeedbackCount       int64            `json:"feedbackCount"`
	AverageRating       float64          `json:"averageRating"`
	OpenTickets         int64            `json:"openTickets"`
	TotalMenuViews      int64            `json:"totalMenuViews"`
}

func (r *AnalyticsRepository) Summary(now time.Time) (*AnalyticsSummary, error) {
	db := r.DB
	s := &AnalyticsSummary{SubscriptionsByPlan: map[string]int64{}}

	counts := []struct {
		model any
		dst   *int64
	}{
		{&entity.User{}, &s.TotalUsers},
		{&entity.Profile{}, &s.TotalProfiles},
		{&entity.Menu{}, &s.TotalMenus},
		{&entity.Item{}, &s.TotalItems},
		{&entity.Feedback{}, &s.FeedbackCount},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Count(c.dst).Error; err != nil {
			return nil, err
		}
	}

	var byPlan []struct {
		Plan  string
		Count int64
	}
	if err := db.Model(&entity.Subscription{}).
		Select("plan, COUNT(*) AS count").
		Where("status = ?", entity.SubscriptionActive).
		Group("plan").
		Scan(&byPlan).Error; err != nil {
		return nil, err
	}
	for _, row := range byPlan {
		s.SubscriptionsByPlan[row.Plan] = row.Count
		s.ActiveSubscriptions += row.Count
	}

	// รายได้ (เฉพาะที่จ่ายแล้ว)
	if err := db.Model(&entity.Payment{}).
		Where("status = ?", entity.PaymentPaid).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&s.RevenueTotal).Error; err != nil {
		return nil, err
	}
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if err := db.Model(&entity.Payment{}).
		Where("status = ? AND paid_at >= ?", entity.PaymentPaid, monthStart).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&s.RevenueThisMonth).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&entity.Feedback{}).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&s.AverageRating).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&entity.SupportTicket{}).
		Where("status IN ?", []string{entity.TicketOpen, entity.TicketInProgress}).
		Count(&s.OpenTickets).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&entity.Menu{}).
		Select("COALESCE(SUM(view_count), 0)").
		Scan(&s.TotalMenuViews).Error; err != nil {
		return nil, err
	}
	return s, nil
}
