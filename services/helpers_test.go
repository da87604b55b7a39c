package services

import (
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"qrmenu/configs"
	"qrmenu/entity"
	"qrmenu/pkg/cache"
	"qrmenu/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := configs.ConnectionDB("sqlite", dsn, logger.Default.LogMode(logger.Silent))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, configs.SetupDatabase(db))
	return db
}

// setNow ตรึงเวลาของ service ไว้ตลอด test
func setNow(t *testing.T, at time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []Event
}

func (n *recordingNotifier) Publish(profileID uint, ev Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	ev.ProfileID = profileID
	n.events = append(n.events, ev)
}

func (n *recordingNotifier) types() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.events))
	for _, ev := range n.events {
		out = append(out, ev.Type)
	}
	return out
}

type fixture struct {
	db       *gorm.DB
	store    *cache.Memory
	notifier *recordingNotifier

	public   *PublicMenuService
	profiles *ProfileService
	subs     *SubscriptionService
	menus    *MenuService
	items    *ItemService
	cats     *TaxonomyService[entity.Category]
	types    *TaxonomyService[entity.ItemType]
	tags     *TaxonomyService[entity.Tag]
	feedback *FeedbackService
	payments *PaymentService
	tickets  *TicketService
	admin    *AdminService

	owner   Actor
	profile *entity.Profile
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	plans, err := configs.LoadPlans()
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(io.Discard)

	userRepo := repository.NewUserRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	itemRepo := repository.NewItemRepository(db)
	catRepo := repository.NewTaxonomyRepository[entity.Category](db)
	typeRepo := repository.NewTaxonomyRepository[entity.ItemType](db)
	tagRepo := repository.NewTaxonomyRepository[entity.Tag](db)

	f := &fixture{db: db, store: cache.NewMemory(), notifier: &recordingNotifier{}}
	f.public = NewPublicMenuService(menuRepo, itemRepo, catRepo, typeRepo, tagRepo, f.store, time.Minute, log)
	f.profiles = NewProfileService(repository.NewProfileRepository(db), f.public)
	f.subs = NewSubscriptionService(repository.NewSubscriptionRepository(db), menuRepo, itemRepo, plans, f.public, f.notifier)
	f.menus = NewMenuService(menuRepo, f.profiles, f.subs, f.public, "https://menu.example.com/m")
	f.items = NewItemService(itemRepo, f.menus, f.subs, catRepo, typeRepo, tagRepo, f.public)
	f.cats = NewTaxonomyService(catRepo, f.profiles, f.public)
	f.types = NewTaxonomyService(typeRepo, f.profiles, f.public)
	f.tags = NewTaxonomyService(tagRepo, f.profiles, f.public)
	f.feedback = NewFeedbackService(repository.NewFeedbackRepository(db), f.profiles, f.public, f.notifier)
	f.payments = NewPaymentService(repository.NewPaymentRepository(db), f.subs)
	f.tickets = NewTicketService(repository.NewTicketRepository(db), f.profiles, f.notifier)
	f.admin = NewAdminService(userRepo, repository.NewAnalyticsRepository(db))

	f.owner = f.newUser(t, "owner@example.com", entity.RoleOwner)
	f.profile = f.newProfile(t, f.owner, "Noodle House")
	return f
}

func (f *fixture) newUser(t *testing.T, email, role string) Actor {
	t.Helper()
	u := &entity.User{Email: email, Password: "x", FirstName: "T", LastName: "U", Role: role, IsActive: true}
	require.NoError(t, f.db.Create(u).Error)
	return Actor{UserID: u.ID, Role: role}
}

func (f *fixture) newProfile(t *testing.T, owner Actor, name string) *entity.Profile {
	t.Helper()
	p, err := f.profiles.Create(owner, ProfileInput{Name: &name})
	require.NoError(t, err)
	return p
}

func (f *fixture) newMenu(t *testing.T, name string, langs ...string) *entity.Menu {
	t.Helper()
	in := MenuInput{Name: &name}
	if len(langs) > 0 {
		in.Languages = &langs
	}
	m, err := f.menus.Create(f.owner, f.profile.ID, in)
	require.NoError(t, err)
	return m
}

func (f *fixture) upgrade(t *testing.T, plan string, expires time.Time) {
	t.Helper()
	require.NoError(t, f.db.Model(&entity.Subscription{}).
		Where("profile_id = ?", f.profile.ID).
		Updates(map[string]any{"plan": plan, "status": entity.SubscriptionActive, "expires_at": expires}).Error)
}

func strp(s string) *string { return &s }
func i64(v int64) *int64    { return &v }
func intp(v int) *int       { return &v }
func boolp(v bool) *bool    { return &v }
func uintp(v uint) *uint    { return &v }

func itoa(v uint) string { return fmt.Sprintf("%d", v) }
