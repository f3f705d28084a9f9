package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Server struct {
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

type Redis struct {
	Addr string
	Pass string
	DB   int
}

type RateLimit struct {
	WindowSec int
	Max       int
}

type Config struct {
	Server Server
	DB     DB
	JWT    struct {
		Secret string
		Issuer string
		ExpMin int
	}
	Redis      Redis
	UploadsDir string
	RateLimit  RateLimit
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Defaults
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 5000)
	v.SetDefault("db.host", "127.0.0.1")
	v.SetDefault("db.port", 3306)
	v.SetDefault("db.user", "root")
	v.SetDefault("db.pass", "")
	v.SetDefault("db.name", "grokmemehub_db")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.pass", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("uploads.dir", "uploads")
	v.SetDefault("ratelimit.window_sec", 60)
	v.SetDefault("ratelimit.max", 20)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{
		Server: Server{Host: v.GetString("server.host"), Port: v.GetInt("server.port")},
		DB: DB{
			Host: v.GetString("db.host"),
			Port: v.GetInt("db.port"),
			User: v.GetString("db.user"),
			Pass: v.GetString("db.pass"),
			Name: v.GetString("db.name"),
		},
		Redis:      Redis{Addr: v.GetString("redis.addr"), Pass: v.GetString("redis.pass"), DB: v.GetInt("redis.db")},
		UploadsDir: v.GetString("uploads.dir"),
		RateLimit:  RateLimit{WindowSec: v.GetInt("ratelimit.window_sec"), Max: v.GetInt("ratelimit.max")},
	}
	cfg.JWT.Secret = v.GetString("jwt.secret")
	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = "dev-secret"
	}
	cfg.JWT.Issuer = v.GetString("jwt.issuer")
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "grokmemehub"
	}
	cfg.JWT.ExpMin = v.GetInt("jwt.exp_min")
	if cfg.JWT.ExpMin <= 0 {
		// Matches the 7-day tokens the frontend expects.
		cfg.JWT.ExpMin = 7 * 24 * 60
	}
	return cfg, nil
}
