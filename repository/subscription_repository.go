package repository

import (
	"time"

	"qrmenu/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriptionRepository struct {
	DB *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{DB: db}
}

// SubscriptionRow แถวในหน้า admin/subscriptions
type SubscriptionRow struct {
	ID          uint       `json:"id"`
	ProfileID   uint       `json:"profileId"`
	ProfileName string     `json:"profileName"`
	OwnerEmail  string     `json:"ownerEmail"`
	Plan        string     `json:"plan"`
	Status      string     `json:"status"`
	StartedAt   time.Time  `json:"startedAt"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
}

func (r *SubscriptionRepository) FindByProfile(profileID uint) (*entity.Subscription, error) {
	var s entity.Subscription
	if err := r.DB.Where("profile_id = ?", profileID).First(&s).Error; err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *SubscriptionRepository) FindByID(id uint) (*entity.Subscription, error) {
	var s entity.Subscription
	if err := r.DB.Preload("Profile").First(&s, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *SubscriptionRepository) Save(s *entity.Subscription) error {
	return r.DB.Omit(clause.Associations).Save(s).Error
}

func (r *SubscriptionRepository) List(plan, status string, p Page) ([]SubscriptionRow, int64, error) {
	base := r.DB.Model(&entity.Subscription{}).
		Joins("JOIN profiles ON profiles.id = subscriptions.profile_id AND profiles.deleted_at IS NULL").
		Joins("JOIN users ON users.id = profiles.owner_id")
	if plan != "" {
		base = base.Where("subscriptions.plan = ?", plan)
	}
	if status != "" {
		base = base.Where("subscriptions.status = ?", status)
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	items := []SubscriptionRow{}
	err := base.
		Select("subscriptions.id, subscriptions.profile_id, profiles.name AS profile_name, users.email AS owner_email, " +
			"subscriptions.plan, subscriptions.status, subscriptions.started_at, subscriptions.expires_at").
		Order("subscriptions.id DESC").Limit(p.Limit).Offset(p.Offset()).
		Scan(&items).Error
	return items, total, err
}

// ExpireDue เปลี่ยนสถานะ subscription ที่เลยวันหมดอายุเป็น EXPIRED
func (r *SubscriptionRepository) ExpireDue(now time.Time) (int64, error) {
	res := r.DB.Model(&entity.Subscription{}).
		Where("status IN ? AND expires_at IS NOT NULL AND expires_at <= ?",
			[]string{entity.SubscriptionActive, entity.SubscriptionCancelled}, now).
		Update("status", entity.SubscriptionExpired)
	return res.RowsAffected, res.Error
}
