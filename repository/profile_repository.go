package repository

import (
	"time"

	"qrmenu/entity"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	DB *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

// ProfileRow แถวในหน้า admin/profiles
type ProfileRow struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	IsActive   bool      `json:"isActive"`
	OwnerID    uint      `json:"ownerId"`
	OwnerEmail string    `json:"ownerEmail"`
	Plan       string    `json:"plan"`
	Status     string    `json:"status"`
	MenuCount  int64     `json:"menuCount"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CreateWithSubscription สร้างร้านพร้อม subscription FREE ใน transaction เดียว
func (r *ProfileRepository) CreateWithSubscription(p *entity.Profile, sub *entity.Subscription) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		sub.ProfileID = p.ID
		return tx.Create(sub).Error
	})
}

func (r *ProfileRepository) FindByID(id uint) (*entity.Profile, error) {
	var p entity.Profile
	if err := r.DB.Preload("Subscription").First(&p, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *ProfileRepository) ListByOwner(ownerID uint) ([]entity.Profile, error) {
	profiles := []entity.Profile{}
	err := r.DB.Preload("Subscription").
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Find(&profiles).Error
	return profiles, err
}

func (r *ProfileRepository) SlugExists(slug string) (bool, error) {
	var count int64
	// Unscoped: slug ของร้านที่ลบแล้วยังติด unique index อยู่
	err := r.DB.Unscoped().Model(&entity.Profile{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *ProfileRepository) Update(id uint, fields map[string]any) error {
	return r.DB.Model(&entity.Profile{}).Where("id = ?", id).Updates(fields).Error
}

// Delete ลบร้านพร้อมข้อมูลทั้งหมด คืน id ของเมนูที่ถูกลบ (ไว้ล้าง cache)
func (r *ProfileRepository) Delete(id uint) ([]uint, error) {
	var menuIDs []uint
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Menu{}).Where("profile_id = ?", id).Pluck("id", &menuIDs).Error; err != nil {
			return err
		}
		var itemIDs []uint
		if err := tx.Model(&entity.Item{}).Where("profile_id = ?", id).Pluck("id", &itemIDs).Error; err != nil {
			return err
		}
		if len(itemIDs) > 0 {
			if err := tx.Exec("DELETE FROM item_tags WHERE item_id IN ?", itemIDs).Error; err != nil {
				return err
			}
			if err := tx.Where("item_id IN ?", itemIDs).Delete(&entity.ItemTranslation{}).Error; err != nil {
				return err
			}
		}
		// subscription และ feedback ของร้านถูกลบไปด้วย
		for _, model := range []any{
			&entity.Item{}, &entity.Menu{}, &entity.Category{}, &entity.ItemType{}, &entity.Tag{},
			&entity.Feedback{}, &entity.Subscription{},
		} {
			if err := tx.Where("profile_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&entity.Profile{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return menuIDs, nil
}

func (r *ProfileRepository) List(q string, p Page) ([]ProfileRow, int64, error) {
	base := r.DB.Model(&entity.Profile{}).
		Joins("JOIN users ON users.id = profiles.owner_id").
		Joins("LEFT JOIN subscriptions ON subscriptions.profile_id = profiles.id AND subscriptions.deleted_at IS NULL")
	if q != "" {
		like := "%" + q + "%"
		base = base.Where("profiles.name LIKE ? OR profiles.slug LIKE ? OR users.email LIKE ?", like, like, like)
	}

	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	items := []ProfileRow{}
	err := base.
		Select("profiles.id, profiles.name, profiles.slug, profiles.is_active, profiles.owner_id, profiles.created_at, " +
			"users.email AS owner_email, subscriptions.plan, subscriptions.status, " +
			"(SELECT COUNT(*) FROM menus WHERE menus.profile_id = profiles.id AND menus.deleted_at IS NULL) AS menu_count").
		Order("profiles.id DESC").Limit(p.Limit).Offset(p.Offset()).
		Scan(&items).Error
	return items, total, err
}
