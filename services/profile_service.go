package services

import (
	"fmt"
	"strings"

	"qrmenu/entity"
	"qrmenu/pkg/apperr"
	"qrmenu/repository"
	"qrmenu/utils"

	"github.com/google/uuid"
	"golang.org/x/text/currency"
)

type ProfileService struct {
	Repo  *repository.ProfileRepository
	Cache MenuInvalidator
}

func NewProfileService(repo *repository.ProfileRepository, cache MenuInvalidator) *ProfileService {
	return &ProfileService{Repo: repo, Cache: invalidatorOrNoop(cache)}
}

// ProfileInput: nil = ไม่แก้ field นั้น
type ProfileInput struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	Address         *string `json:"address"`
	PhoneNumber     *string `json:"phoneNumber"`
	Currency        *string `json:"currency"`
	DefaultLanguage *string `json:"defaultLanguage"`
	LogoURL         *string `json:"logoUrl"`
}

// Authorize โหลดร้านและตรวจว่า actor เป็นเจ้าของ (admin ผ่านเสมอ)
func (s *ProfileService) Authorize(a Actor, profileID uint) (*entity.Profile, error) {
	p, err := s.Repo.FindByID(profileID)
	if err != nil {
		return nil, err
	}
	if !a.IsAdmin() && p.OwnerID != a.UserID {
		return nil, apperr.ErrForbidden
	}
	return p, nil
}

func (s *ProfileService) ListMine(a Actor) ([]entity.Profile, error) {
	return s.Repo.ListByOwner(a.UserID)
}

func (s *ProfileService) Get(a Actor, id uint) (*entity.Profile, error) {
	return s.Authorize(a, id)
}

func (s *ProfileService) Create(a Actor, in ProfileInput) (*entity.Profile, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, apperr.Invalid("name is required")
	}
	fields, err := normalizeProfileInput(in)
	if err != nil {
		return nil, err
	}

	slug, err := s.uniqueSlug(*in.Name)
	if err != nil {
		return nil, err
	}

	p := &entity.Profile{
		PublicID:        uuid.NewString(),
		Name:            fields["name"].(string),
		Slug:            slug,
		Currency:        "USD",
		DefaultLanguage: "en",
		IsActive:        true,
		OwnerID:         a.UserID,
	}
	if v, ok := fields["description"].(string); ok {
		p.Description = v
	}
	if v, ok := fields["address"].(string); ok {
		p.Address = v
	}
	if v, ok := fields["phone_number"].(string); ok {
		p.PhoneNumber = v
	}
	if v, ok := fields["currency"].(string); ok {
		p.Currency = v
	}
	if v, ok := fields["default_language"].(string); ok {
		p.DefaultLanguage = v
	}
	if v, ok := fields["logo_url"].(string); ok {
		p.LogoURL = v
	}

	sub := &entity.Subscription{
		Plan:      entity.PlanFree,
		Status:    entity.SubscriptionActive,
		StartedAt: now(),
	}
	if err := s.Repo.CreateWithSubscription(p, sub); err != nil {
		return nil, err
	}
	p.Subscription = sub
	return p, nil
}

func (s *ProfileService) Update(a Actor, id uint, in ProfileInput) (*entity.Profile, error) {
	if _, err := s.Authorize(a, id); err != nil {
		return nil, err
	}
	fields, err := normalizeProfileInput(in)
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := s.Repo.Update(id, fields); err != nil {
			return nil, err
		}
		s.Cache.InvalidateProfile(id)
	}
	return s.Repo.FindByID(id)
}

func (s *ProfileService) Delete(a Actor, id uint) error {
	if _, err := s.Authorize(a, id); err != nil {
		return err
	}
	menuIDs, err := s.Repo.Delete(id)
	if err != nil {
		return err
	}
	// ล้าง cache หลัง commit แล้วเท่านั้น
	for _, menuID := range menuIDs {
		s.Cache.InvalidateMenu(menuID)
	}
	return nil
}

// ----- admin -----

func (s *ProfileService) AdminList(q string, page repository.Page) ([]repository.ProfileRow, int64, error) {
	return s.Repo.List(strings.TrimSpace(q), page)
}

// ToggleActive ปิด/เปิดร้าน (ปิดแล้วหน้า public จะ 404)
func (s *ProfileService) ToggleActive(id uint) (*entity.Profile, error) {
	p, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Update(id, map[string]any{"is_active": !p.IsActive}); err != nil {
		return nil, err
	}
	s.Cache.InvalidateProfile(id)
	p.IsActive = !p.IsActive
	return p, nil
}

func (s *ProfileService) uniqueSlug(name string) (string, error) {
	base := utils.Slugify(name)
	slug := base
	for i := 2; i < 1000; i++ {
		exists, err := s.Repo.SlugExists(slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
	return base + "-" + uuid.NewString()[:8], nil
}

func normalizeProfileInput(in ProfileInput) (map[string]any, error) {
	fields := map[string]any{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperr.Invalid("name is required")
		}
		fields["name"] = name
	}
	if in.Description != nil {
		fields["description"] = strings.TrimSpace(*in.Description)
	}
	if in.Address != nil {
		fields["address"] = strings.TrimSpace(*in.Address)
	}
	if in.PhoneNumber != nil {
		fields["phone_number"] = strings.TrimSpace(*in.PhoneNumber)
	}
	if in.LogoURL != nil {
		fields["logo_url"] = strings.TrimSpace(*in.LogoURL)
	}
	if in.Currency != nil {
		unit, err := currency.ParseISO(strings.TrimSpace(*in.Currency))
		if err != nil {
			return nil, apperr.Invalid(fmt.Sprintf("invalid currency %q", *in.Currency))
		}
		fields["currency"] = unit.String()
	}
	if in.DefaultLanguage != nil {
		lang, err := utils.CanonicalLanguage(*in.DefaultLanguage)
		if err != nil {
			return nil, apperr.Invalid(err.Error())
		}
		fields["default_language"] = lang
	}
	return fields, nil
}
