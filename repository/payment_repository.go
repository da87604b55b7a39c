package repository

import (
	"time"

	"qrmenu/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentRepository struct {
	DB *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

// PaymentRow แถวในหน้า admin/payments
type PaymentRow struct {
	ID             uint       `json:"id"`
	SubscriptionID uint       `json:"subscriptionId"`
	ProfileID      uint       `json:"profileId"`
	ProfileName    string     `json:"profileName"`
	Plan           string     `json:"plan"`
	Amount         int64      `json:"amount"`
	Currency       string     `json:"currency"`
	Method         string     `json:"method"`
	Status         string     `json:"status"`
	Reference      string     `json:"reference"`
	PaidAt         *time.Time `json:"paidAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

func (r *PaymentRepository) Create(p *entity.Payment) error {
	return r.DB.Create(p).Error
}

func (r *PaymentRepository) FindByID(id uint) (*entity.Payment, error) {
	var p entity.Payment
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// MarkPaid บันทึกการชำระเงินและต่ออายุ subscription ใน transaction เดียว
func (r *PaymentRepository) MarkPaid(p *entity.Payment, sub *entity.Subscription) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(p).Error; err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Save(sub).Error
	})
}

func (r *PaymentRepository) Save(p *entity.Payment) error {
	return r.DB.Omit(clause.Associations).Save(p).Error
}

func (r *PaymentRepository) List(status string, profileID uint, p Page) ([]PaymentRow, int64, error) {
	base := r.DB.Model(&entity.Payment{}).
		Joins("JOIN profiles ON profiles.id = payments.profile_id")
	if status != "" {
		base = base.Where("payments.status = ?", status)
	}
	if profileID != 0 {
		base = base.Where("payments.profile_id = ?", profileID)
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	items := []PaymentRow{}
	err := base.
		Select("payments.id, payments.subscription_id, payments.profile_id, profiles.name AS profile_name, " +
			"payments.plan, payments.amount, payments.currency, payments.method, payments.status, " +
			"payments.reference, payments.paid_at, payments.created_at").
		Order("payments.id DESC").Limit(p.Limit).Offset(p.Offset()).
		Scan(&items).Error
	return items, total, err
}
