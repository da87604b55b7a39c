package configs

import (
	"errors"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver  string        `env:"DB_DRIVER" envDefault:"sqlite"`
	DBSource  string        `env:"DB_SOURCE" envDefault:"qrmenu.db"`
	Port      string        `env:"PORT" envDefault:"8000"`
	JWTSecret string        `env:"JWT_SECRET" envDefault:"changeme"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"24h"`

	CookieSecure bool     `env:"COOKIE_SECURE" envDefault:"false"`
	CORSOrigins  []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	// ว่าง = ไม่เชื่อ X-Forwarded-For เลย (ใช้ IP ของ connection)
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	CacheTTL      time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	PublicMenuBaseURL string `env:"PUBLIC_MENU_BASE_URL" envDefault:"http://localhost:3000/m"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	FeedbackRPS   float64 `env:"FEEDBACK_RPS" envDefault:"0.2"`
	FeedbackBurst int     `env:"FEEDBACK_BURST" envDefault:"3"`

	ExpirySchedule string `env:"EXPIRY_SCHEDULE" envDefault:"@every 1h"`

	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

// LoadConfig อ่าน .env (ถ้ามี) แล้ว parse env ทั้งหมด
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
