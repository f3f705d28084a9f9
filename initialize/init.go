package initialize

import (
	"fmt"
	"net/http"
	"time"

	"grokmemehub/app/controllers"
	"grokmemehub/app/db"
	jwtutil "grokmemehub/app/jwt"
	"grokmemehub/app/middleware"
	"grokmemehub/app/models"
	"grokmemehub/app/repo"
	"grokmemehub/app/services"
	"grokmemehub/app/upload"
	"grokmemehub/config"
	"grokmemehub/global"
	"grokmemehub/router"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type App struct {
	Cfg       config.Config
	DB        *gorm.DB
	Router    http.Handler
	Users     *services.UserService
	Feed      *services.FeedService
	Memes     *services.MemeService
	Reactions *services.ReactionService
}

func Build(configPath string) (*App, error) {
	// Load config
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	global.Config = *cfg

	// Connect DB
	gdb, err := db.Connect(db.Config{Host: cfg.DB.Host, Port: cfg.DB.Port, User: cfg.DB.User, Password: cfg.DB.Pass, DBName: cfg.DB.Name})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	global.Mdb = gdb

	// Migrate
	if err := gdb.AutoMigrate(&models.User{}, &models.Meme{}, &models.Reaction{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	// Redis is optional; without it the rate limiter passes through.
	if cfg.Redis.Addr != "" {
		global.Rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Pass, DB: cfg.Redis.DB})
	}

	// Repositories and services
	userRepo := repo.NewUserRepository(gdb)
	memeRepo := repo.NewMemeRepository(gdb)
	reactionRepo := repo.NewReactionRepository(gdb)
	userSvc := services.NewUserService(userRepo)
	feedSvc := services.NewFeedService(memeRepo, userRepo)
	memeSvc := services.NewMemeService(memeRepo)
	reactionSvc := services.NewReactionService(reactionRepo, memeRepo)

	uploads, err := upload.NewStore(cfg.UploadsDir)
	if err != nil {
		return nil, fmt.Errorf("uploads dir: %w", err)
	}

	// Controllers
	signer := &jwtutil.Signer{Secret: []byte(cfg.JWT.Secret), Issuer: cfg.JWT.Issuer, ExpMin: cfg.JWT.ExpMin}
	healthCtrl := controllers.NewHealthController()
	authCtrl := controllers.NewAuthController(userSvc, signer)
	memeCtrl := controllers.NewMemeController(feedSvc, memeSvc, uploads)
	reactionCtrl := controllers.NewReactionController(reactionSvc)
	mw := &middleware.Auth{Signer: signer}
	rl := middleware.NewRateLimiter(global.Rdb, time.Duration(cfg.RateLimit.WindowSec)*time.Second, cfg.RateLimit.Max)

	// Router
	h := router.NewRouter(healthCtrl, authCtrl, memeCtrl, reactionCtrl, mw, rl, uploads.Dir())
	h = middleware.Logging(h)

	return &App{Cfg: *cfg, DB: gdb, Router: h, Users: userSvc, Feed: feedSvc, Memes: memeSvc, Reactions: reactionSvc}, nil
}
