package repository

import (
	"qrmenu/entity"

	"gorm.io/gorm"
)

// Taxon คือ entity ที่แบ่งหมวดหมู่ item ได้ (ผูกกับร้าน)
type Taxon interface {
	entity.Category | entity.ItemType | entity.Tag
}

// TaxonomyRepository ใช้ร่วมกันระหว่าง categories / types / tags
type TaxonomyRepository[T Taxon] struct {
	DB *gorm.DB
}

func NewTaxonomyRepository[T Taxon](db *gorm.DB) *TaxonomyRepository[T] {
	return &TaxonomyRepository[T]{DB: db}
}

func (r *TaxonomyRepository[T]) FindByProfile(profileID uint) ([]T, error) {
	out := []T{}
	err := r.DB.Where("profile_id = ?", profileID).Order("position ASC, id ASC").Find(&out).Error
	return out, err
}

func (r *TaxonomyRepository[T]) FindInProfile(profileID, id uint) (*T, error) {
	var v T
	if err := r.DB.Where("profile_id = ?", profileID).First(&v, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &v, nil
}

// FindManyInProfile คืนเฉพาะ id ที่เป็นของร้านนี้
func (r *TaxonomyRepository[T]) FindManyInProfile(profileID uint, ids []uint) ([]T, error) {
	out := []T{}
	if len(ids) == 0 {
		return out, nil
	}
	err := r.DB.Where("profile_id = ? AND id IN ?", profileID, ids).Find(&out).Error
	return out, err
}

func (r *TaxonomyRepository[T]) Create(v *T) error {
	return r.DB.Create(v).Error
}

func (r *TaxonomyRepository[T]) Update(id uint, fields map[string]any) error {
	return r.DB.Model(new(T)).Where("id = ?", id).Updates(fields).Error
}

// Delete ลบหมวดและเคลียร์การอ้างอิงจาก item
func (r *TaxonomyRepository[T]) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		switch any(new(T)).(type) {
		case *entity.Category:
			if err := tx.Model(&entity.Item{}).Where("category_id = ?", id).Update("category_id", nil).Error; err != nil {
				return err
			}
		case *entity.ItemType:
			if err := tx.Model(&entity.Item{}).Where("type_id = ?", id).Update("type_id", nil).Error; err != nil {
				return err
			}
		case *entity.Tag:
			if err := tx.Exec("DELETE FROM item_tags WHERE tag_id = ?", id).Error; err != nil {
				return err
			}
		}
		return tx.Delete(new(T), id).Error
	})
}
