package utils

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Backend   BackendConfig
	Gateway   GatewayConfig
	Booking   BookingConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name     string
	Port     string
	Debug    bool
	LogPath  string
	BaseURL  string
	Timezone string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

// RedisConfig; an empty Addr selects the in-process store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

type GatewayConfig struct {
	BaseURL    string
	ReturnPath string
	RefKey     string
}

type BookingConfig struct {
	ServiceStartHour  int
	ServiceEndHour    int
	BufferHours       int
	SlotHours         int
	HorizonDays       int
	PlatformFee       int64
	TaxBasisPoints    int64
	AdvancePercent    int64
	SourceOfLead      string
	DirectBookingTTL  time.Duration
	PendingBookingTTL time.Duration
	SubmitLockTTL     time.Duration
}

type RateLimitConfig struct {
	PerMinute int
	Burst     int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "service-booking")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("APP_BASE_URL", "http://localhost:3000")
	viper.SetDefault("TIMEZONE", "Local")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("BACKEND_TIMEOUT_SECONDS", 15)
	viper.SetDefault("GATEWAY_RETURN_PATH", "/checkout/return")
	viper.SetDefault("SERVICE_START_HOUR", 9)
	viper.SetDefault("SERVICE_END_HOUR", 21)
	viper.SetDefault("BUFFER_HOURS", 3)
	viper.SetDefault("SLOT_HOURS", 2)
	viper.SetDefault("HORIZON_DAYS", 7)
	viper.SetDefault("PLATFORM_FEE", 0)
	viper.SetDefault("TAX_BASIS_POINTS", 1800)
	viper.SetDefault("ADVANCE_PERCENT", 25)
	viper.SetDefault("SOURCE_OF_LEAD", "website")
	viper.SetDefault("DIRECT_BOOKING_TTL_MINUTES", 30)
	viper.SetDefault("PENDING_BOOKING_TTL_MINUTES", 60)
	viper.SetDefault("SUBMIT_LOCK_SECONDS", 60)
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 30)
	viper.SetDefault("RATE_LIMIT_BURST", 5)

	if _, err := os.Stat(".env"); err == nil {
		if err := viper.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:     viper.GetString("APP_NAME"),
			Port:     viper.GetString("PORT"),
			Debug:    viper.GetBool("DEBUG"),
			LogPath:  viper.GetString("LOG_PATH"),
			BaseURL:  viper.GetString("APP_BASE_URL"),
			Timezone: viper.GetString("TIMEZONE"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Backend: BackendConfig{
			BaseURL: viper.GetString("BACKEND_BASE_URL"),
			Timeout: time.Duration(viper.GetInt("BACKEND_TIMEOUT_SECONDS")) * time.Second,
		},
		Gateway: GatewayConfig{
			BaseURL:    viper.GetString("GATEWAY_BASE_URL"),
			ReturnPath: viper.GetString("GATEWAY_RETURN_PATH"),
			RefKey:     viper.GetString("GATEWAY_REF_KEY"),
		},
		Booking: BookingConfig{
			ServiceStartHour:  viper.GetInt("SERVICE_START_HOUR"),
			ServiceEndHour:    viper.GetInt("SERVICE_END_HOUR"),
			BufferHours:       viper.GetInt("BUFFER_HOURS"),
			SlotHours:         viper.GetInt("SLOT_HOURS"),
			HorizonDays:       viper.GetInt("HORIZON_DAYS"),
			PlatformFee:       viper.GetInt64("PLATFORM_FEE"),
			TaxBasisPoints:    viper.GetInt64("TAX_BASIS_POINTS"),
			AdvancePercent:    viper.GetInt64("ADVANCE_PERCENT"),
			SourceOfLead:      viper.GetString("SOURCE_OF_LEAD"),
			DirectBookingTTL:  time.Duration(viper.GetInt("DIRECT_BOOKING_TTL_MINUTES")) * time.Minute,
			PendingBookingTTL: time.Duration(viper.GetInt("PENDING_BOOKING_TTL_MINUTES")) * time.Minute,
			SubmitLockTTL:     time.Duration(viper.GetInt("SUBMIT_LOCK_SECONDS")) * time.Second,
		},
		RateLimit: RateLimitConfig{
			PerMinute: viper.GetInt("RATE_LIMIT_PER_MINUTE"),
			Burst:     viper.GetInt("RATE_LIMIT_BURST"),
		},
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	b := c.Booking
	if b.ServiceStartHour < 0 || b.ServiceEndHour > 24 || b.ServiceStartHour >= b.ServiceEndHour {
		return fmt.Errorf("invalid service hours %d-%d", b.ServiceStartHour, b.ServiceEndHour)
	}
	if b.BufferHours < 0 || b.SlotHours <= 0 || b.HorizonDays <= 0 {
		return errors.New("buffer, slot and horizon must be positive")
	}
	if b.AdvancePercent <= 0 || b.AdvancePercent > 100 {
		return fmt.Errorf("invalid advance percent %d", b.AdvancePercent)
	}
	// a submit may make the add-on lookup and then the booking call
	if c.Backend.Timeout <= 0 || b.SubmitLockTTL <= 2*c.Backend.Timeout {
		return fmt.Errorf("SUBMIT_LOCK_SECONDS (%s) must exceed twice BACKEND_TIMEOUT_SECONDS (%s)", b.SubmitLockTTL, c.Backend.Timeout)
	}
	if c.Backend.BaseURL == "" {
		return errors.New("BACKEND_BASE_URL is required")
	}
	if c.Gateway.BaseURL == "" {
		return errors.New("GATEWAY_BASE_URL is required")
	}
	if len(c.Gateway.RefKey) < 32 {
		return errors.New("GATEWAY_REF_KEY must be at least 32 bytes")
	}
	return nil
}

// Location resolves the configured timezone, falling back to the host zone.
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
