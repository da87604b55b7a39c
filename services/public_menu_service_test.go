package services

import (
	"context"
	"testing"
	"time"

	"qrmenu/entity"
	"qrmenu/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type publicMenuFixture struct {
	*fixture
	menu         *entity.Menu
	food, drinks *entity.ItemType
	mains        *entity.Category
	spicy, vegan *entity.Tag
	curry, salad *entity.Item
	tea, mystery *entity.Item
}

func newPublicMenuFixture(t *testing.T) *publicMenuFixture {
	t.Helper()
	f := newFixture(t)
	p := &publicMenuFixture{fixture: f}
	p.menu = f.newMenu(t, "All day")

	var err error
	p.food, err = f.types.Create(f.owner, f.profile.ID, TaxonInput{Name: strp("Food"), Position: intp(1)})
	require.NoError(t, err)
	p.drinks, err = f.types.Create(f.owner, f.profile.ID, TaxonInput{Name: strp("Drinks"), Position: intp(2)})
	require.NoError(t, err)
	p.mains, err = f.cats.Create(f.owner, f.profile.ID, TaxonInput{Name: strp("Mains")})
	require.NoError(t, err)
	p.spicy, err = f.tags.Create(f.owner, f.profile.ID, TaxonInput{Name: strp("Spicy")})
	require.NoError(t, err)
	p.vegan, err = f.tags.Create(f.owner, f.profile.ID, TaxonInput{Name: strp("Vegan")})
	require.NoError(t, err)

	mk := func(in ItemInput) *entity.Item {
		it, err := f.items.Create(f.owner, p.menu.ID, in)
		require.NoError(t, err)
		return it
	}
	p.curry = mk(ItemInput{Name: strp("Green curry"), Description: strp("coconut"), Price: i64(1200), OriginalPrice: i64(1600),
		TypeID: &p.food.ID, CategoryID: &p.mains.ID, TagIDs: &[]uint{p.spicy.ID}})
	p.salad = mk(ItemInput{Name: strp("Papaya salad"), Price: i64(800),
		TypeID: &p.food.ID, TagIDs: &[]uint{p.spicy.ID, p.vegan.ID}})
	p.tea = mk(ItemInput{Name: strp("Iced tea"), Price: i64(300), TypeID: &p.drinks.ID, IsAvailable: boolp(false)})
	p.mystery = mk(ItemInput{Name: strp("Chef special"), Price: i64(2000)})

	_, err = f.menus.TogglePublish(f.owner, p.menu.ID)
	require.NoError(t, err)
	return p
}

func itemIDs(m *PublicMenu) []uint {
	var out []uint
	for _, g := range m.Groups {
		for _, c := range g.Categories {
			for _, it := range c.Items {
				out = append(out, it.ID)
			}
		}
	}
	return out
}

func TestPublicMenuGroupsAndFacets(t *testing.T) {
	p := newPublicMenuFixture(t)
	ctx := context.Background()

	m, err := p.public.View(ctx, p.menu.ID, "", MenuFilter{})
	require.NoError(t, err)

	assert.Equal(t, "en", m.Language)
	assert.Equal(t, 4, m.TotalItems)
	assert.Equal(t, 4, m.MatchedItems)
	require.Len(t, m.Groups, 3)
	assert.Equal(t, "Food", m.Groups[0].Type.Name)
	assert.Equal(t, "Drinks", m.Groups[1].Type.Name)
	assert.Nil(t, m.Groups[2].Type)

	// Food: Mains ก่อน ไม่มีหมวดท้ายสุด
	food := m.Groups[0].Categories
	require.Len(t, food, 2)
	assert.Equal(t, "Mains", food[0].Category.Name)
	assert.Equal(t, 25, food[0].Items[0].SavePercent)
	assert.Nil(t, food[1].Category)

	assert.Equal(t, int64(300), m.Facets.MinPrice)
	assert.Equal(t, int64(2000), m.Facets.MaxPrice)
	assert.Len(t, m.Facets.Tags, 2)
	assert.Equal(t, "Noodle House", m.Profile.Name)
}

func TestPublicMenuFilters(t *testing.T) {
	p := newPublicMenuFixture(t)
	ctx := context.Background()

	view := func(f MenuFilter) []uint {
		m, err := p.public.View(ctx, p.menu.ID, "", f)
		require.NoError(t, err)
		return itemIDs(m)
	}

	assert.ElementsMatch(t, []uint{p.curry.ID, p.salad.ID}, view(MenuFilter{TagIDs: []uint{p.spicy.ID}}))
	assert.ElementsMatch(t, []uint{p.salad.ID}, view(MenuFilter{TagIDs: []uint{p.vegan.ID}}))
	assert.ElementsMatch(t, []uint{p.curry.ID, p.salad.ID, p.tea.ID},
		view(MenuFilter{TypeIDs: []uint{p.food.ID, p.drinks.ID}}))
	assert.ElementsMatch(t, []uint{p.salad.ID, p.tea.ID},
		view(MenuFilter{MinPrice: i64(300), MaxPrice: i64(800)}))
	assert.ElementsMatch(t, []uint{p.curry.ID}, view(MenuFilter{Query: "COCONUT"}))
	assert.NotContains(t, view(MenuFilter{AvailableOnly: true}), p.tea.ID)

	// ทุกมิติต้องผ่านพร้อมกัน
	assert.ElementsMatch(t, []uint{p.curry.ID},
		view(MenuFilter{TagIDs: []uint{p.spicy.ID}, CategoryIDs: []uint{p.mains.ID}}))
	assert.Empty(t, view(MenuFilter{TagIDs: []uint{p.vegan.ID}, MaxPrice: i64(500)}))
}

func TestPublicMenuVisibility(t *testing.T) {
	p := newPublicMenuFixture(t)
	ctx := context.Background()

	_, err := p.public.View(ctx, p.menu.ID, "", MenuFilter{})
	require.NoError(t, err)

	// ปิด publish แล้ว cache ต้องถูกล้าง
	_, err = p.menus.TogglePublish(p.owner, p.menu.ID)
	require.NoError(t, err)
	_, err = p.public.View(ctx, p.menu.ID, "", MenuFilter{})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = p.menus.TogglePublish(p.owner, p.menu.ID)
	require.NoError(t, err)

	// admin ระงับ subscription
	sub, err := p.subs.Repo.FindByProfile(p.profile.ID)
	require.NoError(t, err)
	_, err = p.subs.Toggle(sub.ID)
	require.NoError(t, err)
	_, err = p.public.View(ctx, p.menu.ID, "", MenuFilter{})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = p.subs.Toggle(sub.ID)
	require.NoError(t, err)

	_, err = p.profiles.ToggleActive(p.profile.ID)
	require.NoError(t, err)
	_, err = p.public.View(ctx, p.menu.ID, "", MenuFilter{})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = p.public.View(ctx, 9999, "", MenuFilter{})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestPublicMenuCacheInvalidation(t *testing.T) {
	p := newPublicMenuFixture(t)
	ctx := context.Background()

	_, err := p.public.View(ctx, p.menu.ID, "", MenuFilter{})
	require.NoError(t, err)
	_, cached, _ := p.store.Get(ctx, menuCacheKey(p.menu.ID))
	require.True(t, cached)

	_, err = p.items.Update(p.owner, p.curry.ID, ItemInput{Name: strp("Red curry")})
	require.NoError(t, err)
	_, cached, _ = p.store.Get(ctx, menuCacheKey(p.menu.ID))
	assert.False(t, cached)

	m, err := p.public.View(ctx, p.menu.ID, "", MenuFilter{Query: "red"})
	require.NoError(t, err)
	assert.Equal(t, []uint{p.curry.ID}, itemIDs(m))

	// แก้ taxonomy ล้าง cache ของทุกเมนูในร้าน
	_, err = p.tags.Update(p.owner, p.profile.ID, p.vegan.ID, TaxonInput{Name: strp("Plant based")})
	require.NoError(t, err)
	_, cached, _ = p.store.Get(ctx, menuCacheKey(p.menu.ID))
	assert.False(t, cached)
}

func TestPublicMenuCountsViews(t *testing.T) {
	p := newPublicMenuFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := p.public.View(ctx, p.menu.ID, "", MenuFilter{})
		require.NoError(t, err)
	}
	m, err := p.menus.Get(p.owner, p.menu.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), m.ViewCount)
}

func TestPublicMenuLanguage(t *testing.T) {
	p := newPublicMenuFixture(t)
	ctx := context.Background()

	// ภาษาที่เมนูไม่รองรับ ใช้ default
	m, err := p.public.View(ctx, p.menu.ID, "de", MenuFilter{})
	require.NoError(t, err)
	assert.Equal(t, "en", m.Language)

	p.upgrade(t, entity.PlanStandard, time.Now().Add(24*time.Hour))
	_, err = p.menus.Update(p.owner, p.menu.ID, MenuInput{Languages: &[]string{"th-th"}})
	require.NoError(t, err)
	_, err = p.items.ReplaceTranslations(p.owner, p.curry.ID, []TranslationInput{{Language: "th-TH", Name: "แกงเขียวหวาน"}})
	require.NoError(t, err)

	// ค่า lang ที่ลูกค้าส่งมาไม่จำเป็นต้อง canonical
	for _, lang := range []string{"th-TH", "th-th", "TH-th", "th"} {
		m, err := p.public.View(ctx, p.menu.ID, lang, MenuFilter{})
		require.NoError(t, err, lang)
		assert.Equal(t, "th-TH", m.Language, lang)
		assert.Equal(t, "แกงเขียวหวาน", m.Groups[0].Categories[0].Items[0].Name, lang)
	}

	m, err = p.public.View(ctx, p.menu.ID, "not a tag!", MenuFilter{})
	require.NoError(t, err)
	assert.Equal(t, "en", m.Language)
	assert.Equal(t, "Green curry", m.Groups[0].Categories[0].Items[0].Name)
}
