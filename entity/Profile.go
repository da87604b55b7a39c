package entity

import (
	"gorm.io/gorm"
)

// Profile คือร้าน (tenant) หนึ่งร้าน
type Profile struct {
	gorm.Model
	PublicID        string `gorm:"size:36;uniqueIndex;not null" json:"publicId"`
	Name            string `gorm:"not null" json:"name"`
	Slug            string `gorm:"size:120;uniqueIndex;not null" json:"slug"`
	Description     string `json:"description"`
	Address         string `json:"address"`
	PhoneNumber     string `json:"phoneNumber"`
	Currency        string `gorm:"size:3;not null;default:USD" json:"currency"`
	DefaultLanguage string `gorm:"size:35;not null;default:en" json:"defaultLanguage"`
	LogoURL         string `json:"logoUrl"`
	IsActive        bool   `gorm:"not null;default:true" json:"isActive"`

	OwnerID uint `gorm:"index;not null" json:"ownerId"`
	Owner   User `gorm:"foreignKey:OwnerID" json:"-"`

	Subscription *Subscription `json:"subscription,omitempty"`
	Menus        []Menu        `json:"-"`
	Categories   []Category    `json:"-"`
	Types        []ItemType    `json:"-"`
	Tags         []Tag         `json:"-"`
	Feedbacks    []Feedback    `json:"-"`
}
