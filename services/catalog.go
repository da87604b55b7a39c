package services

import (
	"sort"
	"strings"

	"qrmenu/entity"
)

// MenuFilter คือ filter ของหน้าเมนูสาธารณะ
// ภายในมิติเดียวกันตรงข้อใดข้อหนึ่งก็พอ แต่ต้องผ่านทุกมิติที่เปิดใช้
type MenuFilter struct {
	MinPrice      *int64
	MaxPrice      *int64
	CategoryIDs   []uint
	TypeIDs       []uint
	TagIDs        []uint
	Query         string
	AvailableOnly bool
}

func (f MenuFilter) Active() bool {
	return f.MinPrice != nil || f.MaxPrice != nil ||
		len(f.CategoryIDs) > 0 || len(f.TypeIDs) > 0 || len(f.TagIDs) > 0 ||
		strings.TrimSpace(f.Query) != "" || f.AvailableOnly
}

// Match ใช้ชื่อ/รายละเอียดที่แปลแล้วสำหรับการค้นหา
func (f MenuFilter) Match(it *entity.Item, name, description string) bool {
	if f.MinPrice != nil && it.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && it.Price > *f.MaxPrice {
		return false
	}
	if f.AvailableOnly && !it.IsAvailable {
		return false
	}
	if len(f.CategoryIDs) > 0 && (it.CategoryID == nil || !containsID(f.CategoryIDs, *it.CategoryID)) {
		return false
	}
	if len(f.TypeIDs) > 0 && (it.TypeID == nil || !containsID(f.TypeIDs, *it.TypeID)) {
		return false
	}
	if len(f.TagIDs) > 0 {
		hit := false
		for _, t := range it.Tags {
			if containsID(f.TagIDs, t.ID) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(name), q) && !strings.Contains(strings.ToLower(description), q) {
			return false
		}
	}
	return true
}

func containsID(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// SavePercent = round((original - price) * 100 / original), 0 ถ้าไม่ได้ลดราคา
func SavePercent(price int64, original *int64) int {
	if original == nil || *original <= 0 || *original <= price {
		return 0
	}
	diff := *original - price
	return int((diff*100 + *original/2) / *original)
}

type TaxonRef struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

type PublicTag struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type PublicItem struct {
	ID            uint        `json:"id"`
	Name          string      `json:"name"`
	Description   string      `json:"description"`
	Price         int64       `json:"price"`
	OriginalPrice *int64      `json:"originalPrice,omitempty"`
	SavePercent   int         `json:"savePercent"`
	ImageURL      string      `json:"imageUrl"`
	IsAvailable   bool        `json:"isAvailable"`
	Tags          []PublicTag `json:"tags"`
}

type CategoryGroup struct {
	Category *TaxonRef    `json:"category"` // nil = ไม่มีหมวด
	Items    []PublicItem `json:"items"`
}

type TypeGroup struct {
	Type       *TaxonRef       `json:"type"` // nil = Other
	Categories []CategoryGroup `json:"categories"`
}

// GroupItems จัดกลุ่มตาม type แล้วตาม category
// กลุ่มที่ไม่มี type/category อยู่ท้ายสุด
func GroupItems(items []entity.Item, lang string, types []entity.ItemType, categories []entity.Category) []TypeGroup {
	typeRefs := make(map[uint]*TaxonRef, len(types))
	for _, t := range types {
		typeRefs[t.ID] = &TaxonRef{ID: t.ID, Name: t.Name, Position: t.Position}
	}
	catRefs := make(map[uint]*TaxonRef, len(categories))
	for _, c := range categories {
		catRefs[c.ID] = &TaxonRef{ID: c.ID, Name: c.Name, Position: c.Position}
	}

	type bucket struct {
		ref  *TaxonRef
		cats map[uint]*CategoryGroup
	}
	buckets := map[uint]*bucket{}

	sorted := append([]entity.Item(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Position != sorted[j].Position {
			return sorted[i].Position < sorted[j].Position
		}
		return sorted[i].ID < sorted[j].ID
	})

	for i := range sorted {
		it := &sorted[i]
		var typeKey uint
		var tRef *TaxonRef
		if it.TypeID != nil {
			if ref, ok := typeRefs[*it.TypeID]; ok {
				typeKey, tRef = *it.TypeID, ref
			}
		}
		b := buckets[typeKey]
		if b == nil {
			b = &bucket{ref: tRef, cats: map[uint]*CategoryGroup{}}
			buckets[typeKey] = b
		}

		var catKey uint
		var cRef *TaxonRef
		if it.CategoryID != nil {
			if ref, ok := catRefs[*it.CategoryID]; ok {
				catKey, cRef = *it.CategoryID, ref
			}
		}
		cg := b.cats[catKey]
		if cg == nil {
			cg = &CategoryGroup{Category: cRef}
			b.cats[catKey] = cg
		}
		cg.Items = append(cg.Items, toPublicItem(it, lang))
	}

	groups := make([]TypeGroup, 0, len(buckets))
	for _, b := range buckets {
		cats := make([]CategoryGroup, 0, len(b.cats))
		for _, cg := range b.cats {
			cats = append(cats, *cg)
		}
		sort.SliceStable(cats, func(i, j int) bool { return refLess(cats[i].Category, cats[j].Category) })
		groups = append(groups, TypeGroup{Type: b.ref, Categories: cats})
	}
	sort.SliceStable(groups, func(i, j int) bool { return refLess(groups[i].Type, groups[j].Type) })
	return groups
}

// refLess: position, name, id; nil อยู่ท้าย
func refLess(a, b *TaxonRef) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	case a.Position != b.Position:
		return a.Position < b.Position
	case a.Name != b.Name:
		return a.Name < b.Name
	default:
		return a.ID < b.ID
	}
}

func toPublicItem(it *entity.Item, lang string) PublicItem {
	name, desc := it.Localized(lang)
	tags := make([]PublicTag, 0, len(it.Tags))
	for _, t := range it.Tags {
		tags = append(tags, PublicTag{ID: t.ID, Name: t.Name, Color: t.Color})
	}
	return PublicItem{
		ID:            it.ID,
		Name:          name,
		Description:   desc,
		Price:         it.Price,
		OriginalPrice: it.OriginalPrice,
		SavePercent:   SavePercent(it.Price, it.OriginalPrice),
		ImageURL:      it.ImageURL,
		IsAvailable:   it.IsAvailable,
		Tags:          tags,
	}
}

// PriceRange ของรายการทั้งหมด (ใช้ทำ slider ราคา)
func PriceRange(items []entity.Item) (min, max int64) {
	for i, it := range items {
		if i == 0 || it.Price < min {
			min = it.Price
		}
		if i == 0 || it.Price > max {
			max = it.Price
		}
	}
	return min, max
}
