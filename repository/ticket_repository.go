package repository

import (
	"qrmenu/entity"

	"gorm.io/gorm"
)

type TicketRepository struct {
	DB *gorm.DB
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{DB: db}
}

func (r *TicketRepository) Create(t *entity.SupportTicket) error {
	return r.DB.Create(t).Error
}

func (r *TicketRepository) FindByID(id uint) (*entity.SupportTicket, error) {
	var t entity.SupportTicket
	if err := r.DB.First(&t, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

func (r *TicketRepository) Save(t *entity.SupportTicket) error {
	return r.DB.Save(t).Error
}

// List: userID = 0 คือทุกคน (admin)
func (r *TicketRepository) List(userID uint, status string, p Page) ([]entity.SupportTicket, int64, error) {
	base := r.DB.Model(&entity.SupportTicket{})
	if userID != 0 {
		base = base.Where("user_id = ?", userID)
	}
	if status != "" {
		base = base.Where("status = ?", status)
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	items := []entity.SupportTicket{}
	err := base.Order("id DESC").Limit(p.Limit).Offset(p.Offset()).Find(&items).Error
	return items, total, err
}
