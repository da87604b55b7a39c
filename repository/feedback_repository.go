package repository

import (
	"qrmenu/entity"

	"gorm.io/gorm"
)

type FeedbackRepository struct {
	DB *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{DB: db}
}

func (r *FeedbackRepository) Create(f *entity.Feedback) error {
	return r.DB.Create(f).Error
}

func (r *FeedbackRepository) FindByID(id uint) (*entity.Feedback, error) {
	var f entity.Feedback
	if err := r.DB.First(&f, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &f, nil
}

func (r *FeedbackRepository) ListByProfile(profileID uint, state string, p Page) ([]entity.Feedback, int64, error) {
	base := r.DB.Model(&entity.Feedback{}).Where("profile_id = ?", profileID)
	if state != "" {
		base = base.Where("state = ?", state)
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	items := []entity.Feedback{}
	err := base.Order("id DESC").Limit(p.Limit).Offset(p.Offset()).Find(&items).Error
	return items, total, err
}

func (r *FeedbackRepository) UpdateState(id uint, state string) error {
	return r.DB.Model(&entity.Feedback{}).Where("id = ?", id).Update("state", state).Error
}
