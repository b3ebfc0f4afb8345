package config

import (
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Config struct {
	App       AppConfig
	Backend   BackendConfig
	Session   SessionConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Receipt   ReceiptConfig
	Printer   PrinterConfig
	Roster    RosterConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

// BackendConfig points at the academy REST backend.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

type SessionConfig struct {
	Secret              string
	CookieName          string
	IdleTimeout         time.Duration
	MaxAge              time.Duration
	VerifyInterval      time.Duration
	NotifyBackendOnIdle bool
	SecureCookie        bool
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
	LoginPerMinute    int
}

// ReceiptConfig is printed on every receipt.
type ReceiptConfig struct {
	AcademyName       string
	GSTIN             string
	WordsIncludePaise bool
	// Timezone names the zone whose calendar days receipts are filed under.
	Timezone string
}

// Location resolves Timezone, falling back to the process zone.
func (c ReceiptConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

type PrinterConfig struct {
	Type    string
	USBPath string
	Address string
	Width   int
}

type RosterConfig struct {
	PageSize int
}

func Load(logger *zap.Logger) *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Warn(".env file not found, using environment variables", zap.Error(err))
	}

	setDefaults()

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Backend: BackendConfig{
			BaseURL: viper.GetString("BACKEND_BASE_URL"),
			Timeout: time.Duration(viper.GetInt("BACKEND_TIMEOUT_SECONDS")) * time.Second,
		},
		Session: SessionConfig{
			Secret:              viper.GetString("SESSION_SECRET"),
			CookieName:          viper.GetString("SESSION_COOKIE_NAME"),
			IdleTimeout:         time.Duration(viper.GetInt("SESSION_IDLE_TIMEOUT_MINUTES")) * time.Minute,
			MaxAge:              time.Duration(viper.GetInt("SESSION_MAX_AGE_HOURS")) * time.Hour,
			VerifyInterval:      time.Duration(viper.GetInt("SESSION_VERIFY_INTERVAL_MINUTES")) * time.Minute,
			NotifyBackendOnIdle: viper.GetBool("SESSION_NOTIFY_BACKEND_ON_IDLE"),
			SecureCookie:        viper.GetBool("SESSION_SECURE_COOKIE"),
		},
		Database: DatabaseConfig{
			Driver:   viper.GetString("DB_DRIVER"),
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: viper.GetFloat64("RATE_LIMIT_REQUESTS_PER_SECOND"),
			Burst:             viper.GetInt("RATE_LIMIT_BURST"),
			LoginPerMinute:    viper.GetInt("RATE_LIMIT_LOGIN_PER_MINUTE"),
		},
		Receipt: ReceiptConfig{
			AcademyName:       viper.GetString("RECEIPT_ACADEMY_NAME"),
			GSTIN:             viper.GetString("RECEIPT_GSTIN"),
			WordsIncludePaise: viper.GetBool("RECEIPT_WORDS_INCLUDE_PAISE"),
			Timezone:          viper.GetString("RECEIPT_TIMEZONE"),
		},
		Printer: PrinterConfig{
			Type:    viper.GetString("PRINTER_TYPE"),
			USBPath: viper.GetString("PRINTER_USB_PATH"),
			Address: viper.GetString("PRINTER_ADDRESS"),
			Width:   viper.GetInt("PRINTER_WIDTH"),
		},
		Roster: RosterConfig{
			PageSize: viper.GetInt("ROSTER_PAGE_SIZE"),
		},
	}
}

func setDefaults() {
	viper.SetDefault("APP_NAME", "academy-console")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("BACKEND_BASE_URL", "http://localhost:5000")
	viper.SetDefault("BACKEND_TIMEOUT_SECONDS", 15)
	viper.SetDefault("SESSION_SECRET", "change-this-secret-in-production")
	viper.SetDefault("SESSION_COOKIE_NAME", "academy_session")
	viper.SetDefault("SESSION_IDLE_TIMEOUT_MINUTES", 15)
	viper.SetDefault("SESSION_MAX_AGE_HOURS", 12)
	viper.SetDefault("SESSION_VERIFY_INTERVAL_MINUTES", 5)
	viper.SetDefault("SESSION_NOTIFY_BACKEND_ON_IDLE", true)
	viper.SetDefault("SESSION_SECURE_COOKIE", false)
	viper.SetDefault("DB_DRIVER", "memory")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "academy_console")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS_PER_SECOND", 10)
	viper.SetDefault("RATE_LIMIT_BURST", 20)
	viper.SetDefault("RATE_LIMIT_LOGIN_PER_MINUTE", 10)
	viper.SetDefault("RECEIPT_ACADEMY_NAME", "OEC-7 ACADEMY")
	viper.SetDefault("RECEIPT_GSTIN", "09AJUPB7083R1Z5")
	viper.SetDefault("RECEIPT_WORDS_INCLUDE_PAISE", false)
	viper.SetDefault("RECEIPT_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_USB_PATH", "/dev/usb/lp0")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("PRINTER_WIDTH", 48)
	viper.SetDefault("ROSTER_PAGE_SIZE", 10)
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}

// UsesPostgres reports whether sessions and idempotency keys go to Postgres.
func (c *DatabaseConfig) UsesPostgres() bool {
	return c.Driver == "postgres"
}
