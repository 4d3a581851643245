package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host string
	Port int
}

type DB struct {
	Host string
	Port int
	User string
	Pass string
	Name string
}

type JWT struct {
	Secret string
	Issuer string
	ExpMin int
}

type Session struct {
	MaxAgeHours int
}

type Shield struct {
	RPS       float64
	Burst     int
	RedisAddr string
}

// Admin, when fully set, is the bootstrap admin account created at
// startup if absent.
type Admin struct {
	Name     string
	Email    string
	Password string
}

type Config struct {
	Env     string
	HTTP    HTTP
	DB      DB
	JWT     JWT
	Session Session
	Shield  Shield
	Admin   Admin
}

func (c *Config) Production() bool { return c.Env == "production" }

// Load reads the YAML config at path. A missing file is fine; the
// defaults describe a local development setup.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("env", "development")
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("db.host", "127.0.0.1")
	v.SetDefault("db.port", 3306)
	v.SetDefault("db.user", "root")
	v.SetDefault("db.pass", "")
	v.SetDefault("db.name", "userbase")
	v.SetDefault("jwt.issuer", "userbase")
	v.SetDefault("jwt.exp_min", 60)
	v.SetDefault("session.max_age_hours", 24)
	v.SetDefault("shield.rps", 5.0)
	v.SetDefault("shield.burst", 10)
	v.SetDefault("shield.redis_addr", "")

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{
		Env:  v.GetString("env"),
		HTTP: HTTP{Host: v.GetString("server.host"), Port: v.GetInt("server.port")},
		DB: DB{
			Host: v.GetString("db.host"),
			Port: v.GetInt("db.port"),
			User: v.GetString("db.user"),
			Pass: v.GetString("db.pass"),
			Name: v.GetString("db.name"),
		},
		JWT: JWT{
			Secret: v.GetString("jwt.secret"),
			Issuer: v.GetString("jwt.issuer"),
			ExpMin: v.GetInt("jwt.exp_min"),
		},
		Session: Session{MaxAgeHours: v.GetInt("session.max_age_hours")},
		Shield: Shield{
			RPS:       v.GetFloat64("shield.rps"),
			Burst:     v.GetInt("shield.burst"),
			RedisAddr: v.GetString("shield.redis_addr"),
		},
		Admin: Admin{
			Name:     v.GetString("admin.name"),
			Email:    v.GetString("admin.email"),
			Password: v.GetString("admin.password"),
		},
	}

	if cfg.JWT.Secret == "" {
		if cfg.Production() {
			return nil, errors.New("jwt.secret must be set in production")
		}
		cfg.JWT.Secret = "dev-secret"
	}
	if cfg.JWT.ExpMin <= 0 {
		cfg.JWT.ExpMin = 60
	}
	if cfg.Session.MaxAgeHours <= 0 {
		cfg.Session.MaxAgeHours = 24
	}
	return cfg, nil
}
