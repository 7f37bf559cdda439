package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	API       APIConfig       `mapstructure:"api"`
	Session   SessionConfig   `mapstructure:"session"`
	Site      SiteConfig      `mapstructure:"site"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Extend    ExtendConfig    `mapstructure:"extend"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Log       LogConfig       `mapstructure:"log"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	Sentry    SentryConfig    `mapstructure:"sentry"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // debug / release / test
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	EnableSwagger   bool          `mapstructure:"enable_swagger"`
}

// APIConfig 后端文章 API
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type SessionConfig struct {
	Name   string `mapstructure:"name"`
	Secret string `mapstructure:"secret"`
	MaxAge int    `mapstructure:"max_age"` // 秒
}

// SiteConfig 站点信息，Settings 页只做展示
type SiteConfig struct {
	Name         string `mapstructure:"name"`
	Description  string `mapstructure:"description"`
	URL          string `mapstructure:"url"`
	CanonicalURL string `mapstructure:"canonical_url"`
	ContactEmail string `mapstructure:"contact_email"`
	TimeZone     string `mapstructure:"time_zone"`
	Language     string `mapstructure:"language"`
	Version      string `mapstructure:"version"`
}

// AuthConfig 登录是模拟的，只用于头部展示
type AuthConfig struct {
	MockUserEmail string `mapstructure:"mock_user_email"`
}

// ExtendConfig 扩展页状态存储
type ExtendConfig struct {
	Store string        `mapstructure:"store"` // memory / redis / database
	TTL   time.Duration `mapstructure:"ttl"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // sqlite / postgres
	DSN    string `mapstructure:"dsn"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type TracingConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	Endpoint    string  `mapstructure:"endpoint"`
	ServiceName string  `mapstructure:"service_name"`
	Insecure    bool    `mapstructure:"insecure"`
	SampleRatio float64 `mapstructure:"sample_ratio"`
}

type SentryConfig struct {
	DSN         string `mapstructure:"dsn"`
	Environment string `mapstructure:"environment"`
}

// RateLimitConfig 发布接口限流（每秒请求数 + 突发）
type RateLimitConfig struct {
	PublishRPS   float64 `mapstructure:"publish_rps"`
	PublishBurst int     `mapstructure:"publish_burst"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.enable_swagger", false)

	v.SetDefault("api.base_url", "http://127.0.0.1:5000/api")
	v.SetDefault("api.timeout", 10*time.Second)

	v.SetDefault("session.name", "blogadmin")
	v.SetDefault("session.secret", "change-me-in-production")
	v.SetDefault("session.max_age", 86400)

	v.SetDefault("site.name", "My Awesome Site")
	v.SetDefault("site.description", "")
	v.SetDefault("site.url", "http://127.0.0.1/chyrp-lite")
	v.SetDefault("site.canonical_url", "")
	v.SetDefault("site.contact_email", "admin@example.com")
	v.SetDefault("site.time_zone", "Europe/Berlin")
	v.SetDefault("site.language", "en_US")
	v.SetDefault("site.version", "2025.02")

	v.SetDefault("auth.mock_user_email", "admin@example.com")

	v.SetDefault("extend.store", "memory")
	v.SetDefault("extend.ttl", 24*time.Hour)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "blog-admin.db")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// 未设置默认值的 key 无法被 AutomaticEnv 覆盖
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", "blog-admin")
	v.SetDefault("tracing.endpoint", "localhost:4318")
	v.SetDefault("tracing.insecure", true)
	v.SetDefault("tracing.sample_ratio", 1.0)

	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "development")

	v.SetDefault("ratelimit.publish_rps", 2.0)
	v.SetDefault("ratelimit.publish_burst", 5)
}

// Load 读取 config/config.yaml（可选）并用 BLOG_ 前缀的环境变量覆盖
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"./config", "."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("BLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 校验必要字段
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("config: api.base_url is required")
	}
	switch c.Extend.Store {
	case "memory", "redis", "database":
	default:
		return fmt.Errorf("config: unknown extend.store %q", c.Extend.Store)
	}
	if c.Extend.TTL < 0 {
		return fmt.Errorf("config: extend.ttl must not be negative, got %s", c.Extend.TTL)
	}
	if c.Session.Secret == "" {
		return errors.New("config: session.secret is required")
	}
	return nil
}
