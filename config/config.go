package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	CatalogDriverPostgres = "postgres"
	CatalogDriverMongo    = "mongo"
	CatalogDriverFile     = "file"
)

type Config struct {
	Port           string   `envDefault:"8080"                  env:"PORT"`
	Environment    string   `envDefault:"development"           env:"ENV"`
	LogLevel       string   `envDefault:"info"                  env:"LOG_LEVEL"`
	LogFormat      string   `envDefault:"json"                  env:"LOG_FORMAT"`
	AllowedOrigins []string `envDefault:"http://localhost:5173" env:"ALLOWED_ORIGINS" envSeparator:","`

	CatalogDriver     string   `envDefault:"postgres"          env:"CATALOG_DRIVER"`
	CatalogFile       string   `envDefault:"data/catalog.json" env:"CATALOG_FILE"`
	CatalogCategories []string `envDefault:"parts,spare_parts" env:"CATALOG_CATEGORIES" envSeparator:","`
	DatabaseURL       string   `env:"DATABASE_URL"`

	CatalogRefreshInterval time.Duration `envDefault:"15m" env:"CATALOG_REFRESH_INTERVAL"`

	MongoURI     string `env:"MONGODB_URI"`
	DatabaseName string `envDefault:"wings" env:"DATABASE_NAME"`

	RedisURL   string        `env:"REDIS_URL"`
	SessionTTL time.Duration `envDefault:"720h" env:"SESSION_TTL"`

	TranslationsDir    string `env:"TRANSLATIONS_DIR"`
	StrictTranslations bool   `envDefault:"false" env:"STRICT_TRANSLATIONS"`
	DefaultLanguage    string `envDefault:"en"    env:"DEFAULT_LANGUAGE"`

	Web3FormsEndpoint string `envDefault:"https://api.web3forms.com/submit" env:"WEB3FORMS_ENDPOINT"`
	Web3FormsKey      string `env:"WEB3FORMS_KEY"`
	WhatsAppHost      string `envDefault:"wa.me"        env:"WHATSAPP_HOST"`
	WhatsAppNumber    string `envDefault:"254718234222" env:"WHATSAPP_NUMBER"`

	PageSize      int           `envDefault:"12"   env:"PAGE_SIZE"`
	MaxPageSize   int           `envDefault:"100"  env:"MAX_PAGE_SIZE"`
	QuoteValidFor time.Duration `envDefault:"720h" env:"QUOTE_VALID_FOR"`

	JWTSecret          string `env:"JWT_SECRET"`
	JWTRefreshSecret   string `env:"JWT_REFRESH_SECRET"`
	AccessTokenMinutes int    `envDefault:"15" env:"ACCESS_TOKEN_TTL_MINUTES"`
	RefreshTokenDays   int    `envDefault:"14" env:"REFRESH_TOKEN_TTL_DAYS"`
	AdminEmail         string `env:"ADMIN_EMAIL"`
	AdminPassword      string `env:"ADMIN_PASSWORD"`

	CookieSecure bool   `envDefault:"false" env:"COOKIE_SECURE"`
	CookieDomain string `env:"COOKIE_DOMAIN"`
}

// Load reads a .env file when present and parses the environment.
// The returned note is non-empty when no .env file was found.
func Load() (Config, string, error) {
	var note string
	if err := godotenv.Load(); err != nil {
		note = "No .env file found, using system environment variables"
	}
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return cfg, note, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, note, err
	}
	return cfg, note, nil
}

// Validate checks combinations the env tags cannot express.
func (c Config) Validate() error {
	switch c.CatalogDriver {
	case CatalogDriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("CATALOG_DRIVER=postgres requires DATABASE_URL")
		}
	case CatalogDriverMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("CATALOG_DRIVER=mongo requires MONGODB_URI")
		}
	case CatalogDriverFile:
		if c.CatalogFile == "" {
			return fmt.Errorf("CATALOG_DRIVER=file requires CATALOG_FILE")
		}
	default:
		return fmt.Errorf("unknown CATALOG_DRIVER %q", c.CatalogDriver)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("PAGE_SIZE must be positive, got %d", c.PageSize)
	}
	if c.MaxPageSize < c.PageSize {
		return fmt.Errorf("MAX_PAGE_SIZE %d is below PAGE_SIZE %d", c.MaxPageSize, c.PageSize)
	}
	if c.AdminEnabled() && (c.JWTSecret == "" || c.JWTRefreshSecret == "") {
		return fmt.Errorf("admin routes need JWT_SECRET and JWT_REFRESH_SECRET")
	}
	return nil
}

// AdminEnabled reports whether the submission archive and admin API run.
func (c Config) AdminEnabled() bool {
	return c.MongoURI != ""
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func (c Config) AccessTTL() time.Duration {
	minutes := c.AccessTokenMinutes
	if minutes <= 0 {
		minutes = 15
	}
	return time.Duration(minutes) * time.Minute
}

func (c Config) RefreshTTL() time.Duration {
	days := c.RefreshTokenDays
	if days <= 0 {
		days = 14
	}
	return time.Duration(days) * 24 * time.Hour
}
