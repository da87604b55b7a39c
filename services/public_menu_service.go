package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"qrmenu/entity"
	"qrmenu/pkg/apperr"
	"qrmenu/pkg/cache"
	"qrmenu/pkg/metrics"
	"qrmenu/repository"
	"qrmenu/utils"

	"github.com/sirupsen/logrus"
)

// MenuInvalidator ถูกเรียกทุกครั้งที่ข้อมูลเมนูเปลี่ยน
type MenuInvalidator interface {
	InvalidateMenu(menuID uint)
	InvalidateProfile(profileID uint)
}

type noopInvalidator struct{}

func (noopInvalidator) InvalidateMenu(uint)    {}
func (noopInvalidator) InvalidateProfile(uint) {}

func invalidatorOrNoop(inv MenuInvalidator) MenuInvalidator {
	if inv == nil {
		return noopInvalidator{}
	}
	return inv
}

// menuSnapshot คือข้อมูลดิบของเมนูที่ cache ไว้ (ยังไม่ filter)
type menuSnapshot struct {
	Menu               entity.Menu       `json:"menu"`
	Profile            PublicProfile     `json:"profile"`
	ProfileActive      bool              `json:"profileActive"`
	SubscriptionStatus string            `json:"subscriptionStatus"`
	Categories         []entity.Category `json:"categories"`
	Types              []entity.ItemType `json:"types"`
	Tags               []entity.Tag      `json:"tags"`
	Items              []entity.Item     `json:"items"`
}

type PublicProfile struct {
	PublicID    string `json:"publicId"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber"`
	Currency    string `json:"currency"`
	LogoURL     string `json:"logoUrl"`
}

type Facets struct {
	Categories []TaxonRef  `json:"categories"`
	Types      []TaxonRef  `json:"types"`
	Tags       []PublicTag `json:"tags"`
	MinPrice   int64       `json:"minPrice"`
	MaxPrice   int64       `json:"maxPrice"`
}

type PublicMenu struct {
	ID           uint          `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Language     string        `json:"language"`
	Languages    []string      `json:"languages"`
	Profile      PublicProfile `json:"profile"`
	Groups       []TypeGroup   `json:"groups"`
	Facets       Facets        `json:"facets"`
	TotalItems   int           `json:"totalItems"`
	MatchedItems int           `json:"matchedItems"`
}

type PublicMenuService struct {
	Menus *repository.MenuRepository
	Items *repository.ItemRepository
	Cats  *repository.TaxonomyRepository[entity.Category]
	Types *repository.TaxonomyRepository[entity.ItemType]
	Tags  *repository.TaxonomyRepository[entity.Tag]
	Store cache.Store
	TTL   time.Duration
	Log   logrus.FieldLogger
}

func NewPublicMenuService(
	menus *repository.MenuRepository,
	items *repository.ItemRepository,
	cats *repository.TaxonomyRepository[entity.Category],
	types *repository.TaxonomyRepository[entity.ItemType],
	tags *repository.TaxonomyRepository[entity.Tag],
	store cache.Store,
	ttl time.Duration,
	log logrus.FieldLogger,
) *PublicMenuService {
	return &PublicMenuService{
		Menus: menus, Items: items, Cats: cats, Types: types, Tags: tags,
		Store: store, TTL: ttl, Log: log,
	}
}

func menuCacheKey(menuID uint) string { return fmt.Sprintf("public:menu:%d", menuID) }

// View คืนเมนูสาธารณะหลัง filter และจัดกลุ่มแล้ว
func (s *PublicMenuService) View(ctx context.Context, menuID uint, lang string, f MenuFilter) (*PublicMenu, error) {
	snap, hit, err := s.snapshot(ctx, menuID)
	if err != nil {
		return nil, err
	}
	if !snap.Menu.IsPublished || !snap.ProfileActive || snap.SubscriptionStatus == entity.SubscriptionInactive {
		return nil, fmt.Errorf("menu %d: %w", menuID, apperr.ErrNotFound)
	}

	if err := s.Menus.IncrementViews(menuID); err != nil {
		s.Log.WithError(err).WithField("menuId", menuID).Warn("increment menu views failed")
	}
	metrics.RecordMenuView(hit)

	supported := append([]string{snap.Menu.DefaultLanguage}, otherLanguages(snap.Menu)...)
	if l, ok := utils.MatchLanguage(lang, supported); ok {
		lang = l
	} else {
		lang = snap.Menu.DefaultLanguage
	}

	matched := make([]entity.Item, 0, len(snap.Items))
	for i := range snap.Items {
		it := &snap.Items[i]
		name, desc := it.Localized(lang)
		if f.Match(it, name, desc) {
			matched = append(matched, *it)
		}
	}

	minP, maxP := PriceRange(snap.Items)
	facets := Facets{MinPrice: minP, MaxPrice: maxP,
		Categories: make([]TaxonRef, 0, len(snap.Categories)),
		Types:      make([]TaxonRef, 0, len(snap.Types)),
		Tags:       make([]PublicTag, 0, len(snap.Tags)),
	}
	for _, c := range snap.Categories {
		facets.Categories = append(facets.Categories, TaxonRef{ID: c.ID, Name: c.Name, Position: c.Position})
	}
	for _, t := range snap.Types {
		facets.Types = append(facets.Types, TaxonRef{ID: t.ID, Name: t.Name, Position: t.Position})
	}
	for _, t := range snap.Tags {
		facets.Tags = append(facets.Tags, PublicTag{ID: t.ID, Name: t.Name, Color: t.Color})
	}

	return &PublicMenu{
		ID:           snap.Menu.ID,
		Name:         snap.Menu.Name,
		Description:  snap.Menu.Description,
		Language:     lang,
		Languages:    supported,
		Profile:      snap.Profile,
		Groups:       GroupItems(matched, lang, snap.Types, snap.Categories),
		Facets:       facets,
		TotalItems:   len(snap.Items),
		MatchedItems: len(matched),
	}, nil
}

func otherLanguages(m entity.Menu) []string {
	out := make([]string, 0, len(m.Languages))
	for _, l := range m.Languages {
		if l != m.DefaultLanguage {
			out = append(out, l)
		}
	}
	return out
}

// EnsureVisible ใช้ตอนรับ feedback จากหน้า public
func (s *PublicMenuService) EnsureVisible(ctx context.Context, menuID uint) (*entity.Menu, error) {
	snap, _, err := s.snapshot(ctx, menuID)
	if err != nil {
		return nil, err
	}
	if !snap.Menu.IsPublished || !snap.ProfileActive || snap.SubscriptionStatus == entity.SubscriptionInactive {
		return nil, fmt.Errorf("menu %d: %w", menuID, apperr.ErrNotFound)
	}
	m := snap.Menu
	return &m, nil
}

func (s *PublicMenuService) snapshot(ctx context.Context, menuID uint) (*menuSnapshot, bool, error) {
	key := menuCacheKey(menuID)
	if raw, ok, err := s.Store.Get(ctx, key); err != nil {
		// cache ล่มไม่ควรทำให้หน้าเมนูล่ม
		s.Log.WithError(err).Warn("menu cache get failed")
	} else if ok {
		var snap menuSnapshot
		if err := json.Unmarshal(raw, &snap); err == nil {
			return &snap, true, nil
		}
	}

	snap, err := s.load(menuID)
	if err != nil {
		return nil, false, err
	}
	if raw, err := json.Marshal(snap); err == nil {
		if err := s.Store.Set(ctx, key, raw, s.TTL); err != nil {
			s.Log.WithError(err).Warn("menu cache set failed")
		}
	}
	return snap, false, nil
}

func (s *PublicMenuService) load(menuID uint) (*menuSnapshot, error) {
	menu, err := s.Menus.FindPublic(menuID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("menu %d: %w", menuID, apperr.ErrNotFound)
		}
		return nil, err
	}
	profile := menu.Profile
	snap := &menuSnapshot{
		Profile: PublicProfile{
			PublicID:    profile.PublicID,
			Name:        profile.Name,
			Slug:        profile.Slug,
			Description: profile.Description,
			Address:     profile.Address,
			PhoneNumber: profile.PhoneNumber,
			Currency:    profile.Currency,
			LogoURL:     profile.LogoURL,
		},
		ProfileActive: profile.IsActive,
	}
	if profile.Subscription != nil {
		snap.SubscriptionStatus = profile.Subscription.Status
	}
	menu.Profile = entity.Profile{}
	snap.Menu = *menu

	if snap.Items, err = s.Items.FindByMenu(menuID); err != nil {
		return nil, err
	}
	if snap.Categories, err = s.Cats.FindByProfile(menu.ProfileID); err != nil {
		return nil, err
	}
	if snap.Types, err = s.Types.FindByProfile(menu.ProfileID); err != nil {
		return nil, err
	}
	if snap.Tags, err = s.Tags.FindByProfile(menu.ProfileID); err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *PublicMenuService) InvalidateMenu(menuID uint) {
	if err := s.Store.Delete(context.Background(), menuCacheKey(menuID)); err != nil {
		s.Log.WithError(err).WithField("menuId", menuID).Warn("menu cache invalidate failed")
	}
}

func (s *PublicMenuService) InvalidateProfile(profileID uint) {
	menus, err := s.Menus.FindByProfile(profileID)
	if err != nil {
		s.Log.WithError(err).WithField("profileId", profileID).Warn("list menus for invalidation failed")
		return
	}
	keys := make([]string, 0, len(menus))
	for _, m := range menus {
		keys = append(keys, menuCacheKey(m.ID))
	}
	if err := s.Store.Delete(context.Background(), keys...); err != nil {
		s.Log.WithError(err).WithField("profileId", profileID).Warn("menu cache invalidate failed")
	}
}
