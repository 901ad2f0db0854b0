package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"fbauth/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	DB       DBConfig
	JWT      JWTConfig
	Log      LogConfig
	CORS     CORSConfig
	Facebook FacebookConfig
	Session  SessionConfig
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// FacebookConfig holds the Facebook app and provider settings.
type FacebookConfig struct {
	AppID             string        `mapstructure:"app_id"`
	AppSecret         string        `mapstructure:"app_secret"`
	GraphVersion      string        `mapstructure:"graph_version"`
	AppsecretProof    bool          `mapstructure:"appsecret_proof"`
	Timeout           time.Duration `mapstructure:"timeout"`
	ProviderKey       string        `mapstructure:"provider_key"`
	UseUserProvider   bool          `mapstructure:"use_user_provider"`
	CreateIfNotExists bool          `mapstructure:"create_if_not_exists"`
	DefaultRoles      []string      `mapstructure:"default_roles"`
}

// SessionConfig holds session storage settings.
type SessionConfig struct {
	Driver        string        `mapstructure:"driver"`
	TTL           time.Duration `mapstructure:"ttl"`
	CookieName    string        `mapstructure:"cookie_name"`
	CookieSecure  bool          `mapstructure:"cookie_secure"`
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	RedisPrefix   string        `mapstructure:"redis_prefix"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the FBAUTH_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FBAUTH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "fbauth")
	v.SetDefault("db.password", "fbauth_secret")
	v.SetDefault("db.name", "fbauth_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "fbauth")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Facebook defaults
	v.SetDefault("facebook.app_id", "")
	v.SetDefault("facebook.app_secret", "")
	v.SetDefault("facebook.graph_version", "")
	v.SetDefault("facebook.appsecret_proof", true)
	v.SetDefault("facebook.timeout", "10s")
	v.SetDefault("facebook.provider_key", "main")
	v.SetDefault("facebook.use_user_provider", true)
	v.SetDefault("facebook.create_if_not_exists", true)
	v.SetDefault("facebook.default_roles", string(domain.RoleUser))

	// Session defaults
	v.SetDefault("session.driver", "memory")
	v.SetDefault("session.ttl", "24h")
	v.SetDefault("session.cookie_name", "fbauth_sid")
	v.SetDefault("session.cookie_secure", false)
	v.SetDefault("session.redis_addr", "localhost:6379")
	v.SetDefault("session.redis_password", "")
	v.SetDefault("session.redis_db", 0)
	v.SetDefault("session.redis_prefix", "fbauth:session:")

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if FBAUTH_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("FBAUTH_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Facebook = FacebookConfig{
		AppID:             v.GetString("facebook.app_id"),
		AppSecret:         v.GetString("facebook.app_secret"),
		GraphVersion:      v.GetString("facebook.graph_version"),
		AppsecretProof:    v.GetBool("facebook.appsecret_proof"),
		Timeout:           v.GetDuration("facebook.timeout"),
		ProviderKey:       strings.TrimSpace(v.GetString("facebook.provider_key")),
		UseUserProvider:   v.GetBool("facebook.use_user_provider"),
		CreateIfNotExists: v.GetBool("facebook.create_if_not_exists"),
		DefaultRoles:      splitList(v.GetString("facebook.default_roles")),
	}
	cfg.Session = SessionConfig{
		Driver:        v.GetString("session.driver"),
		TTL:           v.GetDuration("session.ttl"),
		CookieName:    v.GetString("session.cookie_name"),
		CookieSecure:  v.GetBool("session.cookie_secure"),
		RedisAddr:     v.GetString("session.redis_addr"),
		RedisPassword: v.GetString("session.redis_password"),
		RedisDB:       v.GetInt("session.redis_db"),
		RedisPrefix:   v.GetString("session.redis_prefix"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Session.Driver {
	case "memory", "redis":
	default:
		return fmt.Errorf("unsupported session driver %q", c.Session.Driver)
	}
	if c.Facebook.ProviderKey == "" {
		return fmt.Errorf("facebook.provider_key must not be empty")
	}
	if c.Facebook.CreateIfNotExists && !c.Facebook.UseUserProvider {
		return fmt.Errorf("facebook.create_if_not_exists requires facebook.use_user_provider")
	}
	return nil
}

// splitList parses a comma-separated list, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
