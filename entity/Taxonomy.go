package entity

import (
	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	Name     string `gorm:"not null" json:"name"`
	Position int    `json:"position"`

	ProfileID uint `gorm:"index;not null" json:"profileId"`
}

// ItemType แบ่งกลุ่มใหญ่ของเมนู เช่น Food / Drinks
type ItemType struct {
	gorm.Model
	Name     string `gorm:"not null" json:"name"`
	Position int    `json:"position"`

	ProfileID uint `gorm:"index;not null" json:"profileId"`
}

type Tag struct {
	gorm.Model
	Name     string `gorm:"not null" json:"name"`
	Color    string `gorm:"size:16" json:"color"`
	Position int    `json:"position"`

	ProfileID uint `gorm:"index;not null" json:"profileId"`
}
