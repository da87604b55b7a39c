package configs

import (
	"io"
	"testing"
	"time"

	"qrmenu/entity"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestLoadPlans(t *testing.T) {
	plans, err := LoadPlans()
	require.NoError(t, err)

	free := plans.Get(entity.PlanFree)
	assert.Equal(t, "FREE", free.Code)
	assert.Equal(t, 1, free.MaxMenus)
	assert.Zero(t, free.PeriodDays)

	std := plans.Get(entity.PlanStandard)
	assert.Equal(t, int64(1900), std.Price)
	assert.Equal(t, 30, std.PeriodDays)

	assert.True(t, plans.Has(entity.PlanCustom))
	assert.Equal(t, "FREE", plans.Get("UNKNOWN").Code)
}

func TestParsePlansRequiresFree(t *testing.T) {
	_, err := ParsePlans([]byte("plans:\n  GOLD:\n    name: Gold\n"))
	assert.Error(t, err)

	_, err = ParsePlans([]byte("plans: ["))
	assert.Error(t, err)
}

func TestWithin(t *testing.T) {
	assert.True(t, Within(0, 1000))
	assert.True(t, Within(2, 1))
	assert.False(t, Within(2, 2))
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("CORS_ORIGINS", "https://a.test,https://b.test")
	t.Setenv("FEEDBACK_BURST", "7")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, 7, cfg.FeedbackBurst)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Empty(t, cfg.TrustedProxies)

	t.Setenv("TRUSTED_PROXIES", "10.0.0.1,192.168.0.0/16")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.1", "192.168.0.0/16"}, cfg.TrustedProxies)
}

func TestNewLogger(t *testing.T) {
	log := NewLogger("debug", "json")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	log = NewLogger("nonsense", "text")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestSeedAdminOnce(t *testing.T) {
	db, err := ConnectionDB("sqlite", "file:seed_admin_test?mode=memory&cache=shared", logger.Default.LogMode(logger.Silent))
	require.NoError(t, err)
	require.NoError(t, SetupDatabase(db))

	log := logrus.New()
	log.SetOutput(io.Discard)

	require.NoError(t, SeedAdmin(db, "Admin@Example.com", "pw123456", log))
	require.NoError(t, SeedAdmin(db, "admin@example.com", "pw123456", log))
	require.NoError(t, SeedAdmin(db, "", "", log))

	var users []entity.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, "admin@example.com", users[0].Email)
	assert.Equal(t, entity.RoleAdmin, users[0].Role)
}

func TestConnectionDBRejectsUnknownDriver(t *testing.T) {
	_, err := ConnectionDB("oracle", "", nil)
	assert.Error(t, err)
}
