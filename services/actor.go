package services

import "qrmenu/entity"

// Actor คือผู้ใช้ที่ login อยู่ (มาจาก JWT)
type Actor struct {
	UserID uint
	Role   string
}

func (a Actor) IsAdmin() bool { return a.Role == entity.RoleAdmin }
