package entity

import (
	"gorm.io/gorm"
)

const (
	RoleAdmin = "admin"
	RoleOwner = "owner"
)

type User struct {
	gorm.Model
	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	Password    string `json:"-"` // bcrypt hash
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `gorm:"not null;default:owner" json:"role"`
	IsActive    bool   `gorm:"not null;default:true" json:"isActive"`

	// Relations: preload เฉพาะตอนจำเป็น
	Profiles       []Profile       `gorm:"foreignKey:OwnerID" json:"-"`
	SupportTickets []SupportTicket `json:"-"`
}
