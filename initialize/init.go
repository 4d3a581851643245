package initialize

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"userbase/app/controllers"
	"userbase/app/db"
	"userbase/app/hash"
	jwtutil "userbase/app/jwt"
	"userbase/app/middleware"
	"userbase/app/models"
	"userbase/app/repo"
	"userbase/app/services"
	"userbase/app/session"
	"userbase/config"
	"userbase/router"
)

type App struct {
	Cfg    *config.Config
	DB     *gorm.DB
	Logger zerolog.Logger
	Router http.Handler
	Auth   *services.AuthService
	Users  *services.UserService
}

// Build wires the whole application from a config file. Everything is
// constructed once here and passed down explicitly; there are no
// package-level singletons.
func Build(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger := NewLogger(cfg.Production())

	gdb, err := db.Connect(db.Config{Host: cfg.DB.Host, Port: cfg.DB.Port, User: cfg.DB.User, Password: cfg.DB.Pass, DBName: cfg.DB.Name})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	if err := gdb.AutoMigrate(&models.User{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	var rdb *redis.Client
	if cfg.Shield.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Shield.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Warn().Err(err).Msg("redis unreachable, shield will use local limiter")
		}
	}

	users := repo.NewUserRepository(gdb)
	hasher := hash.Bcrypt{}
	signer := &jwtutil.Signer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		Expiry: time.Duration(cfg.JWT.ExpMin) * time.Minute,
	}
	cookie := session.Config{
		Secure: cfg.Production(),
		MaxAge: time.Duration(cfg.Session.MaxAgeHours) * time.Hour,
	}

	authSvc := services.NewAuthService(users, hasher, signer)
	userSvc := services.NewUserService(users, hasher)

	if cfg.Admin.Email != "" && cfg.Admin.Password != "" {
		if err := userSvc.EnsureAdmin(context.Background(), cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			logger.Warn().Err(err).Msg("bootstrap admin not created")
		}
	}

	authCtrl := controllers.NewAuthController(authSvc, cookie, logger)
	userCtrl := controllers.NewUserController(userSvc, logger)
	authMw := &middleware.Auth{Signer: signer}
	shield := middleware.NewShield(cfg.Shield.RPS, cfg.Shield.Burst, rdb, logger)

	h := router.New(authCtrl, userCtrl, authMw, shield, logger)

	return &App{Cfg: cfg, DB: gdb, Logger: logger, Router: h, Auth: authSvc, Users: userSvc}, nil
}
