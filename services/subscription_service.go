package services

import (
	"fmt"
	"time"

	"qrmenu/configs"
	"qrmenu/entity"
	"qrmenu/pkg/apperr"
	"qrmenu/repository"
)

type SubscriptionService struct {
	Repo     *repository.SubscriptionRepository
	Menus    *repository.MenuRepository
	Items    *repository.ItemRepository
	Plans    configs.PlanCatalog
	Cache    MenuInvalidator
	Notifier Notifier
}

func NewSubscriptionService(
	repo *repository.SubscriptionRepository,
	menus *repository.MenuRepository,
	items *repository.ItemRepository,
	plans configs.PlanCatalog,
	cache MenuInvalidator,
	notifier Notifier,
) *SubscriptionService {
	return &SubscriptionService{
		Repo:     repo,
		Menus:    menus,
		Items:    items,
		Plans:    plans,
		Cache:    invalidatorOrNoop(cache),
		Notifier: notifierOrNoop(notifier),
	}
}

type Usage struct {
	Menus int64 `json:"menus"`
	Items int64 `json:"items"`
}

// SubscriptionView คือสิ่งที่หน้า /subscription ของเจ้าของร้านแสดง
type SubscriptionView struct {
	Subscription  *entity.Subscription `json:"subscription"`
	EffectivePlan string               `json:"effectivePlan"`
	Limits        configs.Plan         `json:"limits"`
	Usage         Usage                `json:"usage"`
	Plans         []configs.Plan       `json:"plans"`
}

// Limits คืน limit ของแผนที่ใช้ได้จริงของร้าน
func (s *SubscriptionService) Limits(profileID uint) (configs.Plan, error) {
	sub, err := s.Repo.FindByProfile(profileID)
	if err != nil {
		return configs.Plan{}, err
	}
	return s.Plans.Get(sub.EffectivePlan(now())), nil
}

func (s *SubscriptionService) View(profileID uint) (*SubscriptionView, error) {
	sub, err := s.Repo.FindByProfile(profileID)
	if err != nil {
		return nil, err
	}
	menus, err := s.Menus.CountByProfile(profileID)
	if err != nil {
		return nil, err
	}
	items, err := s.Items.CountByProfile(profileID)
	if err != nil {
		return nil, err
	}
	effective := sub.EffectivePlan(now())
	plans := make([]configs.Plan, 0, len(s.Plans))
	for _, code := range []string{entity.PlanFree, entity.PlanStandard, entity.PlanCustom} {
		if s.Plans.Has(code) {
			plans = append(plans, s.Plans.Get(code))
		}
	}
	return &SubscriptionView{
		Subscription:  sub,
		EffectivePlan: effective,
		Limits:        s.Plans.Get(effective),
		Usage:         Usage{Menus: menus, Items: items},
		Plans:         plans,
	}, nil
}

// Cancel: แผนยังใช้ได้จนถึงวันหมดอายุ
func (s *SubscriptionService) Cancel(profileID uint) (*entity.Subscription, error) {
	sub, err := s.Repo.FindByProfile(profileID)
	if err != nil {
		return nil, err
	}
	if sub.Plan == entity.PlanFree {
		return nil, apperr.Invalid("free plan cannot be cancelled")
	}
	if sub.Status != entity.SubscriptionActive {
		return nil, apperr.Invalid(fmt.Sprintf("subscription is %s", sub.Status))
	}
	t := now()
	sub.Status = entity.SubscriptionCancelled
	sub.CancelledAt = &t
	if err := s.Repo.Save(sub); err != nil {
		return nil, err
	}
	s.publish(sub)
	return sub, nil
}

// ----- admin -----

func (s *SubscriptionService) AdminList(plan, status string, page repository.Page) ([]repository.SubscriptionRow, int64, error) {
	return s.Repo.List(plan, status, page)
}

type SubscriptionUpdate struct {
	Plan      *string    `json:"plan"`
	ExpiresAt *time.Time `json:"-"`
	// ClearExpiry ล้างวันหมดอายุ (เช่นย้ายไป FREE)
	ClearExpiry bool `json:"-"`
}

func (s *SubscriptionService) AdminUpdate(id uint, in SubscriptionUpdate) (*entity.Subscription, error) {
	sub, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if in.Plan != nil {
		if !s.Plans.Has(*in.Plan) {
			return nil, apperr.Invalid(fmt.Sprintf("unknown plan %q", *in.Plan))
		}
		sub.Plan = *in.Plan
		if sub.Plan == entity.PlanFree {
			sub.ExpiresAt = nil
		}
	}
	if in.ClearExpiry {
		sub.ExpiresAt = nil
	} else if in.ExpiresAt != nil {
		t := in.ExpiresAt.UTC()
		sub.ExpiresAt = &t
		if sub.Status == entity.SubscriptionExpired && t.After(now()) {
			sub.Status = entity.SubscriptionActive
		}
	}
	if err := s.Repo.Save(sub); err != nil {
		return nil, err
	}
	s.Cache.InvalidateProfile(sub.ProfileID)
	s.publish(sub)
	return sub, nil
}

// Toggle สลับ ACTIVE <-> INACTIVE (INACTIVE = ระงับ หน้า public จะปิด)
func (s *SubscriptionService) Toggle(id uint) (*entity.Subscription, error) {
	sub, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if sub.Status == entity.SubscriptionInactive {
		sub.Status = entity.SubscriptionActive
		if sub.ExpiresAt != nil && !sub.ExpiresAt.After(now()) {
			sub.Status = entity.SubscriptionExpired
		}
	} else {
		sub.Status = entity.SubscriptionInactive
	}
	if err := s.Repo.Save(sub); err != nil {
		return nil, err
	}
	s.Cache.InvalidateProfile(sub.ProfileID)
	s.publish(sub)
	return sub, nil
}

// ExpireDue ถูกเรียกจาก cron job
func (s *SubscriptionService) ExpireDue() (int64, error) {
	return s.Repo.ExpireDue(now())
}

func (s *SubscriptionService) publish(sub *entity.Subscription) {
	s.Notifier.Publish(sub.ProfileID, Event{Type: EventSubscription, ProfileID: sub.ProfileID, Data: sub})
}
