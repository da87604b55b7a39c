// services/menu_service.go
package services

import (
	"fmt"
	"strings"

	"qrmenu/configs"
	"qrmenu/entity"
	"qrmenu/pkg/apperr"
	"qrmenu/repository"
	"qrmenu/utils"
)

type MenuService struct {
	Repo          *repository.MenuRepository
	Profiles      *ProfileService
	Subscriptions *SubscriptionService
	Cache         MenuInvalidator
	PublicBaseURL string
}

func NewMenuService(
	repo *repository.MenuRepository,
	profiles *ProfileService,
	subs *SubscriptionService,
	cache MenuInvalidator,
	publicBaseURL string,
) *MenuService {
	return &MenuService{
		Repo:          repo,
		Profiles:      profiles,
		Subscriptions: subs,
		Cache:         invalidatorOrNoop(cache),
		PublicBaseURL: publicBaseURL,
	}
}

type MenuInput struct {
	Name            *string   `json:"name"`
	Description     *string   `json:"description"`
	DefaultLanguage *string   `json:"defaultLanguage"`
	Languages       *[]string `json:"languages"`
	Position        *int      `json:"position"`
}

// Authorize โหลดเมนูและตรวจสิทธิ์ผ่านร้านเจ้าของเมนู
func (s *MenuService) Authorize(a Actor, menuID uint) (*entity.Menu, error) {
	m, err := s.Repo.FindByID(menuID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Profiles.Authorize(a, m.ProfileID); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MenuService) ListByProfile(a Actor, profileID uint) ([]entity.Menu, error) {
	if _, err := s.Profiles.Authorize(a, profileID); err != nil {
		return nil, err
	}
	return s.Repo.FindByProfile(profileID)
}

func (s *MenuService) Get(a Actor, id uint) (*entity.Menu, error) {
	return s.Authorize(a, id)
}

func (s *MenuService) Create(a Actor, profileID uint, in MenuInput) (*entity.Menu, error) {
	profile, err := s.Profiles.Authorize(a, profileID)
	if err != nil {
		return nil, err
	}
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, apperr.Invalid("name is required")
	}

	limits, err := s.Subscriptions.Limits(profileID)
	if err != nil {
		return nil, err
	}
	count, err := s.Repo.CountByProfile(profileID)
	if err != nil {
		return nil, err
	}
	if !configs.Within(limits.MaxMenus, int(count)) {
		return nil, apperr.Quota(fmt.Sprintf("%s plan allows %d menu(s)", limits.Name, limits.MaxMenus))
	}

	m := &entity.Menu{
		ProfileID:       profileID,
		Name:            strings.TrimSpace(*in.Name),
		DefaultLanguage: profile.DefaultLanguage,
		Languages:       []string{},
	}
	if err := s.apply(m, in, limits); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MenuService) Update(a Actor, id uint, in MenuInput) (*entity.Menu, error) {
	m, err := s.Authorize(a, id)
	if err != nil {
		return nil, err
	}
	limits, err := s.Subscriptions.Limits(m.ProfileID)
	if err != nil {
		return nil, err
	}
	if err := s.apply(m, in, limits); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(m); err != nil {
		return nil, err
	}
	s.Cache.InvalidateMenu(m.ID)
	return m, nil
}

// apply ตรวจ input แล้วเขียนลง m
func (s *MenuService) apply(m *entity.Menu, in MenuInput, limits configs.Plan) error {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return apperr.Invalid("name is required")
		}
		m.Name = name
	}
	if in.Description != nil {
		m.Description = strings.TrimSpace(*in.Description)
	}
	if in.Position != nil {
		m.Position = *in.Position
	}
	if in.DefaultLanguage != nil {
		lang, err := utils.CanonicalLanguage(*in.DefaultLanguage)
		if err != nil {
			return apperr.Invalid(err.Error())
		}
		m.DefaultLanguage = lang
	}
	if in.Languages != nil {
		langs, err := utils.CanonicalLanguages(*in.Languages)
		if err != nil {
			return apperr.Invalid(err.Error())
		}
		m.Languages = langs
	}

	// default language ต้องอยู่ในรายการเสมอ
	langs := []string{m.DefaultLanguage}
	for _, l := range m.Languages {
		if l != m.DefaultLanguage {
			langs = append(langs, l)
		}
	}
	if limits.MaxLanguages > 0 && len(langs) > limits.MaxLanguages {
		return apperr.Quota(fmt.Sprintf("%s plan allows %d language(s)", limits.Name, limits.MaxLanguages))
	}
	m.Languages = langs
	return nil
}

// TogglePublish เปิด/ปิดการแสดงผลหน้า public
func (s *MenuService) TogglePublish(a Actor, id uint) (*entity.Menu, error) {
	m, err := s.Authorize(a, id)
	if err != nil {
		return nil, err
	}
	m.IsPublished = !m.IsPublished
	if err := s.Repo.SetPublished(m.ID, m.IsPublished); err != nil {
		return nil, err
	}
	s.Cache.InvalidateMenu(m.ID)
	return m, nil
}

func (s *MenuService) Delete(a Actor, id uint) error {
	m, err := s.Authorize(a, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(m.ID); err != nil {
		return err
	}
	s.Cache.InvalidateMenu(m.ID)
	return nil
}

// QRCode คืน PNG และ URL ที่ QR ชี้ไป
func (s *MenuService) QRCode(a Actor, id uint, size int) ([]byte, string, error) {
	m, err := s.Authorize(a, id)
	if err != nil {
		return nil, "", err
	}
	png, err := utils.MenuQRCode(s.PublicBaseURL, m.ID, size)
	if err != nil {
		return nil, "", err
	}
	return png, utils.PublicMenuURL(s.PublicBaseURL, m.ID), nil
}
