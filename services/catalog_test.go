package services

import (
	"testing"

	"qrmenu/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func item(id uint, price int64, pos int, typeID, catID *uint, tagIDs ...uint) entity.Item {
	it := entity.Item{Model: gorm.Model{ID: id}, Name: "item", Price: price, Position: pos,
		TypeID: typeID, CategoryID: catID, IsAvailable: true}
	for _, tid := range tagIDs {
		it.Tags = append(it.Tags, entity.Tag{Model: gorm.Model{ID: tid}})
	}
	return it
}

func TestSavePercent(t *testing.T) {
	cases := []struct {
		name     string
		price    int64
		original *int64
		want     int
	}{
		{"no original", 500, nil, 0},
		{"quarter off", 750, i64(1000), 25},
		{"rounds down", 667, i64(1000), 33},
		{"rounds half up", 665, i64(1000), 34},
		{"original not higher", 1000, i64(1000), 0},
		{"free item", 0, i64(300), 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SavePercent(tc.price, tc.original))
		})
	}
}

func TestMenuFilterMatch(t *testing.T) {
	it := item(1, 1200, 0, uintp(10), uintp(20), 30, 31)

	assert.True(t, MenuFilter{}.Match(&it, "Pad Thai", ""))
	assert.False(t, MenuFilter{}.Active())

	// ราคาเป็นช่วงปิดทั้งสองด้าน
	assert.True(t, MenuFilter{MinPrice: i64(1200), MaxPrice: i64(1200)}.Match(&it, "", ""))
	assert.False(t, MenuFilter{MinPrice: i64(1201)}.Match(&it, "", ""))
	assert.False(t, MenuFilter{MaxPrice: i64(1199)}.Match(&it, "", ""))

	// ภายในมิติเดียวกันตรงตัวใดตัวหนึ่งก็ผ่าน
	assert.True(t, MenuFilter{TagIDs: []uint{99, 31}}.Match(&it, "", ""))
	assert.False(t, MenuFilter{TagIDs: []uint{99}}.Match(&it, "", ""))
	assert.True(t, MenuFilter{CategoryIDs: []uint{5, 20}}.Match(&it, "", ""))

	// ต้องผ่านทุกมิติ
	f := MenuFilter{CategoryIDs: []uint{20}, TypeIDs: []uint{11}}
	assert.True(t, f.Active())
	assert.False(t, f.Match(&it, "", ""))

	assert.True(t, MenuFilter{Query: "THAI"}.Match(&it, "Pad Thai", ""))
	assert.True(t, MenuFilter{Query: "peanut"}.Match(&it, "Pad Thai", "with crushed peanuts"))
	assert.False(t, MenuFilter{Query: "curry"}.Match(&it, "Pad Thai", ""))

	it.IsAvailable = false
	assert.False(t, MenuFilter{AvailableOnly: true}.Match(&it, "", ""))

	noCat := item(2, 100, 0, nil, nil)
	assert.False(t, MenuFilter{CategoryIDs: []uint{20}}.Match(&noCat, "", ""))
}

func TestGroupItemsOrdering(t *testing.T) {
	types := []entity.ItemType{
		{Model: gorm.Model{ID: 1}, Name: "Drinks", Position: 2},
		{Model: gorm.Model{ID: 2}, Name: "Food", Position: 1},
	}
	cats := []entity.Category{
		{Model: gorm.Model{ID: 10}, Name: "Mains", Position: 1},
		{Model: gorm.Model{ID: 11}, Name: "Appetizers", Position: 1},
	}
	items := []entity.Item{
		item(1, 100, 5, uintp(2), uintp(10)),
		item(2, 100, 1, uintp(2), uintp(10)),
		item(3, 100, 0, uintp(2), uintp(11)),
		item(4, 100, 0, uintp(2), nil),
		item(5, 100, 0, uintp(1), nil),
		item(6, 100, 0, nil, uintp(10)),
	}

	groups := GroupItems(items, "en", types, cats)
	require.Len(t, groups, 3)

	require.NotNil(t, groups[0].Type)
	assert.Equal(t, "Food", groups[0].Type.Name)
	assert.Equal(t, "Drinks", groups[1].Type.Name)
	assert.Nil(t, groups[2].Type, "untyped group goes last")

	food := groups[0].Categories
	require.Len(t, food, 3)
	// position เท่ากัน เรียงตามชื่อ
	assert.Equal(t, "Appetizers", food[0].Category.Name)
	assert.Equal(t, "Mains", food[1].Category.Name)
	assert.Nil(t, food[2].Category)

	require.Len(t, food[1].Items, 2)
	assert.Equal(t, uint(2), food[1].Items[0].ID)
	assert.Equal(t, uint(1), food[1].Items[1].ID)
}

func TestGroupItemsUsesTranslation(t *testing.T) {
	it := item(1, 100, 0, nil, nil)
	it.Name = "Chicken rice"
	it.Translations = []entity.ItemTranslation{{Language: "th", Name: "ข้าวมันไก่"}}

	groups := GroupItems([]entity.Item{it}, "th", nil, nil)
	require.Len(t, groups, 1)
	assert.Equal(t, "ข้าวมันไก่", groups[0].Categories[0].Items[0].Name)

	groups = GroupItems([]entity.Item{it}, "fr", nil, nil)
	assert.Equal(t, "Chicken rice", groups[0].Categories[0].Items[0].Name)
}

func TestPriceRange(t *testing.T) {
	min, max := PriceRange(nil)
	assert.Zero(t, min)
	assert.Zero(t, max)

	min, max = PriceRange([]entity.Item{item(1, 300, 0, nil, nil), item(2, 100, 0, nil, nil), item(3, 900, 0, nil, nil)})
	assert.Equal(t, int64(100), min)
	assert.Equal(t, int64(900), max)
}
