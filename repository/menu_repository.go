// repository/menu_repository.go
package repository

import (
	"qrmenu/entity"

	"gorm.io/gorm"
)

type MenuRepository struct {
	DB *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{DB: db}
}

// ดึงเมนูทั้งหมดของร้าน
func (r *MenuRepository) FindByProfile(profileID uint) ([]entity.Menu, error) {
	menus := []entity.Menu{}
	err := r.DB.
		Where("profile_id = ?", profileID).
		Order("position ASC, id ASC").
		Find(&menus).Error
	return menus, err
}

// ดึงเมนูเดียว
func (r *MenuRepository) FindByID(id uint) (*entity.Menu, error) {
	var menu entity.Menu
	if err := r.DB.First(&menu, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &menu, nil
}

// FindPublic โหลดเมนูพร้อมร้านและ subscription สำหรับหน้า public
func (r *MenuRepository) FindPublic(id uint) (*entity.Menu, error) {
	var menu entity.Menu
	if err := r.DB.
		Preload("Profile").
		Preload("Profile.Subscription").
		First(&menu, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &menu, nil
}

func (r *MenuRepository) CountByProfile(profileID uint) (int64, error) {
	var n int64
	err := r.DB.Model(&entity.Menu{}).Where("profile_id = ?", profileID).Count(&n).Error
	return n, err
}

// สร้างเมนูใหม่
func (r *MenuRepository) Create(menu *entity.Menu) error {
	return r.DB.Create(menu).Error
}

// อัปเดตเมนู (เฉพาะ field ที่แก้จากฟอร์มได้)
func (r *MenuRepository) Update(menu *entity.Menu) error {
	return r.DB.Model(menu).
		Select("name", "description", "default_language", "languages", "position").
		Updates(menu).Error
}

func (r *MenuRepository) SetPublished(id uint, published bool) error {
	return r.DB.Model(&entity.Menu{}).Where("id = ?", id).Update("is_published", published).Error
}

func (r *MenuRepository) IncrementViews(id uint) error {
	return r.DB.Model(&entity.Menu{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}

// ลบเมนูพร้อมรายการอาหารในเมนู
func (r *MenuRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var itemIDs []uint
		if err := tx.Model(&entity.Item{}).Where("menu_id = ?", id).Pluck("id", &itemIDs).Error; err != nil {
			return err
		}
		if len(itemIDs) > 0 {
			if err := tx.Exec("DELETE FROM item_tags WHERE item_id IN ?", itemIDs).Error; err != nil {
				return err
			}
			if err := tx.Where("item_id IN ?", itemIDs).Delete(&entity.ItemTranslation{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", itemIDs).Delete(&entity.Item{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&entity.Menu{}, id).Error
	})
}
