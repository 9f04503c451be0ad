package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port     int    `yaml:"port"`
	GinMode  string `yaml:"gin_mode"`
	LogLevel string `yaml:"log_level"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	AccessSecret  string `yaml:"access_secret"`
	RefreshSecret string `yaml:"refresh_secret"`
	Issuer        string `yaml:"issuer"`
	AccessTTL     string `yaml:"access_ttl"`
	RefreshTTL    string `yaml:"refresh_ttl"`
}

type OTPConfig struct {
	TTL           string `yaml:"ttl"`
	ResendWindow  string `yaml:"resend_window"`
	PurgeSchedule string `yaml:"purge_schedule"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type AdminConfig struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type CookieConfig struct {
	Secure bool `yaml:"secure"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	OTP      OTPConfig      `yaml:"otp"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	Admin    AdminConfig    `yaml:"admin"`
	Cookie   CookieConfig   `yaml:"cookie"`
}

type Config struct {
	Port              string
	GinMode           string
	LogLevel          string
	DSN               string
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	AccessSecret      string
	RefreshSecret     string
	JWTIssuer         string
	AccessTTL         time.Duration
	RefreshTTL        time.Duration
	OTP_TTL           time.Duration
	OTP_ResendWindow  time.Duration
	OTP_PurgeSchedule string
	SMTPHost          string
	SMTPPort          int
	SMTPUser          string
	SMTPPassword      string
	SMTPFrom          string
	AdminEmail        string
	AdminPassword     string
	CookieSecure      bool
}

func defaults() ConfigFile {
	return ConfigFile{
		App:      AppConfig{Port: 8080, GinMode: "debug", LogLevel: "info"},
		Database: DatabaseConfig{DSN: "host=localhost user=postgres password=postgres dbname=library port=5432 sslmode=disable"},
		Redis:    RedisConfig{Addr: "localhost:6379"},
		JWT:      JWTConfig{Issuer: "librarysvc", AccessTTL: "15m", RefreshTTL: "168h"},
		OTP:      OTPConfig{TTL: "10m", ResendWindow: "60s", PurgeSchedule: "@every 1h"},
		SMTP:     SMTPConfig{Port: 587, From: "no-reply@library.local"},
	}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", k, err)
	}
	return i, nil
}

func envBool(k string, def bool) (bool, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", k, err)
	}
	return b, nil
}

func envDuration(k, def string) (time.Duration, error) {
	d, err := time.ParseDuration(env(k, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", k, err)
	}
	return d, nil
}

// Load reads .env, then the YAML file named by CONFIG_FILE, then environment overrides
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	configFile, err := loadConfigFile(env("CONFIG_FILE", "config/config.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	accTTL, err := envDuration("ACCESS_TOKEN_TTL", configFile.JWT.AccessTTL)
	if err != nil {
		return nil, err
	}
	refTTL, err := envDuration("REFRESH_TOKEN_TTL", configFile.JWT.RefreshTTL)
	if err != nil {
		return nil, err
	}
	otpTTL, err := envDuration("OTP_TTL", configFile.OTP.TTL)
	if err != nil {
		return nil, err
	}
	resWnd, err := envDuration("OTP_RESEND_WINDOW", configFile.OTP.ResendWindow)
	if err != nil {
		return nil, err
	}

	port, err := envInt("PORT", configFile.App.Port)
	if err != nil {
		return nil, err
	}
	redisDB, err := envInt("REDIS_DB", configFile.Redis.DB)
	if err != nil {
		return nil, err
	}
	smtpPort, err := envInt("SMTP_PORT", configFile.SMTP.Port)
	if err != nil {
		return nil, err
	}
	cookieSecure, err := envBool("COOKIE_SECURE", configFile.Cookie.Secure)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:              strconv.Itoa(port),
		GinMode:           env("GIN_MODE", configFile.App.GinMode),
		LogLevel:          env("LOG_LEVEL", configFile.App.LogLevel),
		DSN:               env("DATABASE_DSN", configFile.Database.DSN),
		RedisAddr:         env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword:     env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:           redisDB,
		AccessSecret:      env("ACCESS_TOKEN_SECRET", configFile.JWT.AccessSecret),
		RefreshSecret:     env("REFRESH_TOKEN_SECRET", configFile.JWT.RefreshSecret),
		JWTIssuer:         env("JWT_ISSUER", configFile.JWT.Issuer),
		AccessTTL:         accTTL,
		RefreshTTL:        refTTL,
		OTP_TTL:           otpTTL,
		OTP_ResendWindow:  resWnd,
		OTP_PurgeSchedule: env("OTP_PURGE_SCHEDULE", configFile.OTP.PurgeSchedule),
		SMTPHost:          env("SMTP_HOST", configFile.SMTP.Host),
		SMTPPort:          smtpPort,
		SMTPUser:          env("SMTP_USER", configFile.SMTP.User),
		SMTPPassword:      env("SMTP_PASS", configFile.SMTP.Password),
		SMTPFrom:          env("SMTP_FROM", configFile.SMTP.From),
		AdminEmail:        env("ADMIN_EMAIL", configFile.Admin.Email),
		AdminPassword:     env("ADMIN_PASS", configFile.Admin.Password),
		CookieSecure:      cookieSecure,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.AccessSecret == "" {
		return errors.New("ACCESS_TOKEN_SECRET is required")
	}
	if c.RefreshSecret == "" {
		return errors.New("REFRESH_TOKEN_SECRET is required")
	}
	if c.AccessSecret == c.RefreshSecret {
		return errors.New("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must differ")
	}
	if c.AdminEmail != "" && c.AdminPassword == "" {
		return errors.New("ADMIN_PASS is required when ADMIN_EMAIL is set")
	}
	return nil
}

// loadConfigFile returns defaults when path does not exist
func loadConfigFile(path string) (*ConfigFile, error) {
	config := defaults()

	bytes, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
