package services

import (
	"regexp"
	"strings"

	"qrmenu/entity"
	"qrmenu/pkg/apperr"
	"qrmenu/repository"
)

// TaxonomyService จัดการ categories / types / tags ของร้าน
type TaxonomyService[T repository.Taxon] struct {
	Repo     *repository.TaxonomyRepository[T]
	Profiles *ProfileService
	Cache    MenuInvalidator
}

func NewTaxonomyService[T repository.Taxon](repo *repository.TaxonomyRepository[T], profiles *ProfileService, cache MenuInvalidator) *TaxonomyService[T] {
	return &TaxonomyService[T]{Repo: repo, Profiles: profiles, Cache: invalidatorOrNoop(cache)}
}

type TaxonInput struct {
	Name     *string `json:"name"`
	Position *int    `json:"position"`
	Color    *string `json:"color"` // ใช้กับ tag เท่านั้น
}

var colorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func (s *TaxonomyService[T]) List(a Actor, profileID uint) ([]T, error) {
	if _, err := s.Profiles.Authorize(a, profileID); err != nil {
		return nil, err
	}
	return s.Repo.FindByProfile(profileID)
}

func (s *TaxonomyService[T]) Create(a Actor, profileID uint, in TaxonInput) (*T, error) {
	if _, err := s.Profiles.Authorize(a, profileID); err != nil {
		return nil, err
	}
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, apperr.Invalid("name is required")
	}
	fields, err := taxonFields[T](in)
	if err != nil {
		return nil, err
	}
	v := buildTaxon[T](profileID, fields)
	if err := s.Repo.Create(v); err != nil {
		return nil, err
	}
	s.Cache.InvalidateProfile(profileID)
	return v, nil
}

func (s *TaxonomyService[T]) Update(a Actor, profileID, id uint, in TaxonInput) (*T, error) {
	if _, err := s.Profiles.Authorize(a, profileID); err != nil {
		return nil, err
	}
	if _, err := s.Repo.FindInProfile(profileID, id); err != nil {
		return nil, err
	}
	fields, err := taxonFields[T](in)
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := s.Repo.Update(id, fields); err != nil {
			return nil, err
		}
	}
	s.Cache.InvalidateProfile(profileID)
	return s.Repo.FindInProfile(profileID, id)
}

func (s *TaxonomyService[T]) Delete(a Actor, profileID, id uint) error {
	if _, err := s.Profiles.Authorize(a, profileID); err != nil {
		return err
	}
	if _, err := s.Repo.FindInProfile(profileID, id); err != nil {
		return err
	}
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	s.Cache.InvalidateProfile(profileID)
	return nil
}

func taxonFields[T repository.Taxon](in TaxonInput) (map[string]any, error) {
	fields := map[string]any{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperr.Invalid("name is required")
		}
		fields["name"] = name
	}
	if in.Position != nil {
		fields["position"] = *in.Position
	}
	if _, isTag := any(new(T)).(*entity.Tag); isTag && in.Color != nil {
		c := strings.TrimSpace(*in.Color)
		if c != "" && !colorRe.MatchString(c) {
			return nil, apperr.Invalid("color must be a hex value like #ff8800")
		}
		fields["color"] = c
	}
	return fields, nil
}

func buildTaxon[T repository.Taxon](profileID uint, fields map[string]any) *T {
	name, _ := fields["name"].(string)
	pos, _ := fields["position"].(int)
	v := new(T)
	switch t := any(v).(type) {
	case *entity.Category:
		*t = entity.Category{Name: name, Position: pos, ProfileID: profileID}
	case *entity.ItemType:
		*t = entity.ItemType{Name: name, Position: pos, ProfileID: profileID}
	case *entity.Tag:
		color, _ := fields["color"].(string)
		*t = entity.Tag{Name: name, Color: color, Position: pos, ProfileID: profileID}
	}
	return v
}
