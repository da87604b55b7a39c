package services

import (
	"errors"
	"fmt"
	"strings"

	"qrmenu/configs"
	"qrmenu/entity"
	"qrmenu/pkg/apperr"
	"qrmenu/repository"
	"qrmenu/utils"
)

type ItemService struct {
	Repo          *repository.ItemRepository
	Menus         *MenuService
	Subscriptions *SubscriptionService
	Cats          *repository.TaxonomyRepository[entity.Category]
	Types         *repository.TaxonomyRepository[entity.ItemType]
	Tags          *repository.TaxonomyRepository[entity.Tag]
	Cache         MenuInvalidator
}

func NewItemService(
	repo *repository.ItemRepository,
	menus *MenuService,
	subs *SubscriptionService,
	cats *repository.TaxonomyRepository[entity.Category],
	types *repository.TaxonomyRepository[entity.ItemType],
	tags *repository.TaxonomyRepository[entity.Tag],
	cache MenuInvalidator,
) *ItemService {
	return &ItemService{
		Repo: repo, Menus: menus, Subscriptions: subs,
		Cats: cats, Types: types, Tags: tags,
		Cache: invalidatorOrNoop(cache),
	}
}

// ItemInput ตรงกับฟอร์ม menu builder
// ClearOriginalPrice / ClearCategory / ClearType ใช้ล้างค่า
type ItemInput struct {
	Name               *string             `json:"name"`
	Description        *string             `json:"description"`
	Price              *int64              `json:"price"`
	OriginalPrice      *int64              `json:"originalPrice"`
	ClearOriginalPrice bool                `json:"clearOriginalPrice"`
	CategoryID         *uint               `json:"categoryId"`
	ClearCategory      bool                `json:"clearCategory"`
	TypeID             *uint               `json:"typeId"`
	ClearType          bool                `json:"clearType"`
	ImageURL           *string             `json:"imageUrl"`
	Position           *int                `json:"position"`
	IsAvailable        *bool               `json:"isAvailable"`
	TagIDs             *[]uint             `json:"tagIds"`
	Translations       *[]TranslationInput `json:"translations"`
}

type TranslationInput struct {
	Language    string `json:"language"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *ItemService) Authorize(a Actor, itemID uint) (*entity.Item, *entity.Menu, error) {
	it, err := s.Repo.FindByID(itemID)
	if err != nil {
		return nil, nil, err
	}
	m, err := s.Menus.Authorize(a, it.MenuID)
	if err != nil {
		return nil, nil, err
	}
	return it, m, nil
}

func (s *ItemService) ListByMenu(a Actor, menuID uint) ([]entity.Item, error) {
	if _, err := s.Menus.Authorize(a, menuID); err != nil {
		return nil, err
	}
	return s.Repo.FindByMenu(menuID)
}

func (s *ItemService) Get(a Actor, id uint) (*entity.Item, error) {
	it, _, err := s.Authorize(a, id)
	return it, err
}

func (s *ItemService) Create(a Actor, menuID uint, in ItemInput) (*entity.Item, error) {
	m, err := s.Menus.Authorize(a, menuID)
	if err != nil {
		return nil, err
	}
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, apperr.Invalid("name is required")
	}
	if in.Price == nil {
		return nil, apperr.Invalid("price is required")
	}

	limits, err := s.Subscriptions.Limits(m.ProfileID)
	if err != nil {
		return nil, err
	}
	count, err := s.Repo.CountByProfile(m.ProfileID)
	if err != nil {
		return nil, err
	}
	if !configs.Within(limits.MaxItems, int(count)) {
		return nil, apperr.Quota(fmt.Sprintf("%s plan allows %d item(s)", limits.Name, limits.MaxItems))
	}

	it := &entity.Item{MenuID: m.ID, ProfileID: m.ProfileID, IsAvailable: true}
	if _, err := s.apply(it, m, in); err != nil {
		return nil, err
	}
	if in.TagIDs != nil {
		tags, err := s.resolveTags(m.ProfileID, *in.TagIDs)
		if err != nil {
			return nil, err
		}
		it.Tags = tags
	}
	if in.Translations != nil {
		trs, err := buildTranslations(m, *in.Translations)
		if err != nil {
			return nil, err
		}
		it.Translations = trs
	}

	if err := s.Repo.Create(it); err != nil {
		return nil, err
	}
	s.Cache.InvalidateMenu(m.ID)
	return s.Repo.FindByID(it.ID)
}

func (s *ItemService) Update(a Actor, id uint, in ItemInput) (*entity.Item, error) {
	it, m, err := s.Authorize(a, id)
	if err != nil {
		return nil, err
	}

	// ตรวจทุกอย่างให้ผ่านก่อน แล้วค่อยเขียนทีเดียว
	fields, err := s.apply(it, m, in)
	if err != nil {
		return nil, err
	}
	ch := repository.ItemChanges{Fields: fields}
	if in.TagIDs != nil {
		tags, err := s.resolveTags(m.ProfileID, *in.TagIDs)
		if err != nil {
			return nil, err
		}
		ch.Tags = &tags
	}
	if in.Translations != nil {
		trs, err := buildTranslations(m, *in.Translations)
		if err != nil {
			return nil, err
		}
		ch.Translations = &trs
	}

	if err := s.Repo.Apply(it, ch); err != nil {
		return nil, err
	}
	s.Cache.InvalidateMenu(m.ID)
	return s.Repo.FindByID(it.ID)
}

func (s *ItemService) ReplaceTags(a Actor, id uint, tagIDs []uint) (*entity.Item, error) {
	return s.Update(a, id, ItemInput{TagIDs: &tagIDs})
}

func (s *ItemService) ReplaceTranslations(a Actor, id uint, trs []TranslationInput) (*entity.Item, error) {
	return s.Update(a, id, ItemInput{Translations: &trs})
}

func (s *ItemService) Delete(a Actor, id uint) error {
	it, _, err := s.Authorize(a, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(it.ID); err != nil {
		return err
	}
	s.Cache.InvalidateMenu(it.MenuID)
	return nil
}

// apply ตรวจฟอร์มราคา/หมวด แล้วเขียนลง it พร้อมคืน map สำหรับ Updates
func (s *ItemService) apply(it *entity.Item, m *entity.Menu, in ItemInput) (map[string]any, error) {
	fields := map[string]any{}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperr.Invalid("name is required")
		}
		it.Name = name
		fields["name"] = name
	}
	if in.Description != nil {
		it.Description = strings.TrimSpace(*in.Description)
		fields["description"] = it.Description
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, apperr.Invalid("price must not be negative")
		}
		it.Price = *in.Price
		fields["price"] = it.Price
	}
	if in.ClearOriginalPrice {
		it.OriginalPrice = nil
		fields["original_price"] = nil
	} else if in.OriginalPrice != nil {
		v := *in.OriginalPrice
		it.OriginalPrice = &v
		fields["original_price"] = v
	}
	// ราคาเดิมต้องมากกว่าราคาขาย ไม่งั้นไม่ใช่โปรโมชัน
	if it.OriginalPrice != nil && *it.OriginalPrice <= it.Price {
		return nil, apperr.Invalid("originalPrice must be greater than price")
	}

	if in.ClearCategory {
		it.CategoryID, it.Category = nil, nil
		fields["category_id"] = nil
	} else if in.CategoryID != nil {
		if _, err := s.Cats.FindInProfile(m.ProfileID, *in.CategoryID); err != nil {
			return nil, taxonErr("category", *in.CategoryID, err)
		}
		v := *in.CategoryID
		it.CategoryID, it.Category = &v, nil
		fields["category_id"] = v
	}
	if in.ClearType {
		it.TypeID, it.Type = nil, nil
		fields["type_id"] = nil
	} else if in.TypeID != nil {
		if _, err := s.Types.FindInProfile(m.ProfileID, *in.TypeID); err != nil {
			return nil, taxonErr("type", *in.TypeID, err)
		}
		v := *in.TypeID
		it.TypeID, it.Type = &v, nil
		fields["type_id"] = v
	}

	if in.ImageURL != nil {
		it.ImageURL = strings.TrimSpace(*in.ImageURL)
		fields["image_url"] = it.ImageURL
	}
	if in.Position != nil {
		it.Position = *in.Position
		fields["position"] = it.Position
	}
	if in.IsAvailable != nil {
		it.IsAvailable = *in.IsAvailable
		fields["is_available"] = it.IsAvailable
	}
	return fields, nil
}

func taxonErr(kind string, id uint, err error) error {
	if errors.Is(err, apperr.ErrNotFound) {
		return apperr.Invalid(fmt.Sprintf("%s %d does not belong to this profile", kind, id))
	}
	return err
}

func (s *ItemService) resolveTags(profileID uint, ids []uint) ([]entity.Tag, error) {
	uniq := make([]uint, 0, len(ids))
	seen := map[uint]bool{}
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			uniq = append(uniq, id)
		}
	}
	tags, err := s.Tags.FindManyInProfile(profileID, uniq)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(uniq) {
		return nil, apperr.Invalid("one or more tags do not belong to this profile")
	}
	return tags, nil
}

// buildTranslations: ภาษาต้องอยู่ในรายการภาษาของเมนู และไม่ซ้ำ
func buildTranslations(m *entity.Menu, in []TranslationInput) ([]entity.ItemTranslation, error) {
	out := make([]entity.ItemTranslation, 0, len(in))
	seen := map[string]bool{}
	for _, tr := range in {
		lang, err := utils.CanonicalLanguage(tr.Language)
		if err != nil {
			return nil, apperr.Invalid(err.Error())
		}
		if !m.HasLanguage(lang) {
			return nil, apperr.Invalid(fmt.Sprintf("language %s is not enabled on this menu", lang))
		}
		if seen[lang] {
			return nil, apperr.Invalid(fmt.Sprintf("duplicate translation for %s", lang))
		}
		seen[lang] = true
		out = append(out, entity.ItemTranslation{
			Language:    lang,
			Name:        strings.TrimSpace(tr.Name),
			Description: strings.TrimSpace(tr.Description),
		})
	}
	return out, nil
}
