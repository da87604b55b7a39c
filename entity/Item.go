package entity

import (
	"gorm.io/gorm"
)

type Item struct {
	gorm.Model
	Name          string `gorm:"not null" json:"name"`
	Description   string `json:"description"`
	Price         int64  `gorm:"not null" json:"price"` // minor units
	OriginalPrice *int64 `json:"originalPrice,omitempty"`
	ImageURL      string `json:"imageUrl"`
	Position      int    `json:"position"`
	IsAvailable   bool   `gorm:"not null" json:"isAvailable"`

	MenuID    uint `gorm:"index;not null" json:"menuId"`
	Menu      Menu `json:"-"`
	ProfileID uint `gorm:"index;not null" json:"profileId"`

	CategoryID *uint     `gorm:"index" json:"categoryId,omitempty"`
	Category   *Category `json:"category,omitempty"`
	TypeID     *uint     `gorm:"index" json:"typeId,omitempty"`
	Type       *ItemType `gorm:"foreignKey:TypeID" json:"type,omitempty"`

	Tags         []Tag             `gorm:"many2many:item_tags;" json:"tags"`
	Translations []ItemTranslation `json:"translations"`
}

type ItemTranslation struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	ItemID      uint   `gorm:"uniqueIndex:idx_item_lang;not null" json:"itemId"`
	Language    string `gorm:"size:35;uniqueIndex:idx_item_lang;not null" json:"language"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Localized คืนชื่อ/รายละเอียดตามภาษา ถ้าไม่มีคำแปลใช้ค่าเดิม
func (it *Item) Localized(lang string) (string, string) {
	for _, tr := range it.Translations {
		if tr.Language != lang {
			continue
		}
		name, desc := it.Name, it.Description
		if tr.Name != "" {
			name = tr.Name
		}
		if tr.Description != "" {
			desc = tr.Description
		}
		return name, desc
	}
	return it.Name, it.Description
}
