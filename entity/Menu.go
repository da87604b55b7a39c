package entity

import (
	"gorm.io/gorm"
)

type Menu struct {
	gorm.Model
	Name            string   `gorm:"not null" json:"name"`
	Description     string   `json:"description"`
	DefaultLanguage string   `gorm:"size:35;not null;default:en" json:"defaultLanguage"`
	Languages       []string `gorm:"serializer:json" json:"languages"`
	IsPublished     bool     `gorm:"not null;default:false" json:"isPublished"`
	Position        int      `json:"position"`
	ViewCount       int64    `gorm:"not null;default:0" json:"viewCount"`

	ProfileID uint    `gorm:"index;not null" json:"profileId"`
	Profile   Profile `json:"-"` // preload เมื่อจำเป็น

	Items []Item `json:"-"`
}

// HasLanguage รวม default language ด้วย
func (m *Menu) HasLanguage(lang string) bool {
	if lang == m.DefaultLanguage {
		return true
	}
	for _, l := range m.Languages {
		if l == lang {
			return true
		}
	}
	return false
}
