package repository

import (
	"qrmenu/entity"

	"gorm.io/gorm"
)

type ItemRepository struct {
	DB *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{DB: db}
}

func (r *ItemRepository) withRelations() *gorm.DB {
	return r.DB.
		Preload("Category").
		Preload("Type").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.position ASC, tags.id ASC") }).
		Preload("Translations")
}

func (r *ItemRepository) FindByMenu(menuID uint) ([]entity.Item, error) {
	items := []entity.Item{}
	err := r.withRelations().
		Where("menu_id = ?", menuID).
		Order("position ASC, id ASC").
		Find(&items).Error
	return items, err
}

func (r *ItemRepository) FindByID(id uint) (*entity.Item, error) {
	var item entity.Item
	if err := r.withRelations().First(&item, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

func (r *ItemRepository) CountByProfile(profileID uint) (int64, error) {
	var n int64
	err := r.DB.Model(&entity.Item{}).Where("profile_id = ?", profileID).Count(&n).Error
	return n, err
}

// Create บันทึก item พร้อม tags และคำแปล
func (r *ItemRepository) Create(item *entity.Item) error {
	return r.DB.Create(item).Error
}

// ItemChanges: nil = ไม่แตะส่วนนั้น
type ItemChanges struct {
	Fields       map[string]any
	Tags         *[]entity.Tag
	Translations *[]entity.ItemTranslation
}

// Apply เขียน field, tags และคำแปลใน transaction เดียว
func (r *ItemRepository) Apply(item *entity.Item, ch ItemChanges) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if len(ch.Fields) > 0 {
			if err := tx.Model(&entity.Item{}).Where("id = ?", item.ID).Updates(ch.Fields).Error; err != nil {
				return err
			}
		}
		if ch.Tags != nil {
			if err := replaceTags(tx, item, *ch.Tags); err != nil {
				return err
			}
		}
		if ch.Translations != nil {
			return replaceTranslations(tx, item.ID, *ch.Translations)
		}
		return nil
	})
}

func replaceTags(tx *gorm.DB, item *entity.Item, tags []entity.Tag) error {
	if len(tags) == 0 {
		return tx.Model(item).Association("Tags").Clear()
	}
	return tx.Model(item).Association("Tags").Replace(tags)
}

// replaceTranslations ลบของเดิมแล้วใส่ชุดใหม่
func replaceTranslations(tx *gorm.DB, itemID uint, trs []entity.ItemTranslation) error {
	if err := tx.Where("item_id = ?", itemID).Delete(&entity.ItemTranslation{}).Error; err != nil {
		return err
	}
	if len(trs) == 0 {
		return nil
	}
	for i := range trs {
		trs[i].ID = 0
		trs[i].ItemID = itemID
	}
	return tx.Create(&trs).Error
}

func (r *ItemRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM item_tags WHERE item_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id = ?", id).Delete(&entity.ItemTranslation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Item{}, id).Error
	})
}
