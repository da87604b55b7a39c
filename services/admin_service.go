package services

import (
	"qrmenu/entity"
	"qrmenu/pkg/apperr"
	"qrmenu/repository"
)

// AdminService รวมงานหลังบ้านที่ไม่ได้ผูกกับร้านใดร้านหนึ่ง
type AdminService struct {
	Users     *repository.UserRepository
	Analytics *repository.AnalyticsRepository
}

func NewAdminService(users *repository.UserRepository, analytics *repository.AnalyticsRepository) *AdminService {
	return &AdminService{Users: users, Analytics: analytics}
}

func (s *AdminService) ListUsers(q string, page repository.Page) ([]repository.UserRow, int64, error) {
	return s.Users.List(q, page)
}

// ToggleUser เปิด/ปิดบัญชี admin ปิดบัญชีตัวเองไม่ได้
func (s *AdminService) ToggleUser(a Actor, id uint) (*entity.User, error) {
	if a.UserID == id {
		return nil, apperr.Invalid("you cannot disable your own account")
	}
	u, err := s.Users.FindByID(id)
	if err != nil {
		return nil, err
	}
	u.IsActive = !u.IsActive
	if err := s.Users.Update(u.ID, map[string]any{"is_active": u.IsActive}); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AdminService) Summary() (*repository.AnalyticsSummary, error) {
	return s.Analytics.Summary(now())
}
