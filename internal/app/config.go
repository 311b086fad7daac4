package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vestiba/vestiba-backend/internal/logger"
	"github.com/vestiba/vestiba-backend/internal/session"
	"github.com/vestiba/vestiba-backend/internal/utils"
)

type Config struct {
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	AllowOrigins    []string
	Session         session.Config
}

// fileConfig is the optional YAML overlay loaded from CONFIG_FILE. Fields
// left zero keep the environment-derived value.
type fileConfig struct {
	AllowOrigins []string `yaml:"allow_origins"`
	Session      struct {
		GuardWindowMS       int `yaml:"guard_window_ms"`
		RefreshDelayMS      int `yaml:"refresh_delay_ms"`
		RepeatNotifyDelayMS int `yaml:"repeat_notify_delay_ms"`
	} `yaml:"session"`
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTLSeconds := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)

	origins := strings.Split(utils.GetEnv("ALLOW_ORIGINS", "http://localhost:3000,http://localhost:8081", log), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	cfg := Config{
		JWTSecretKey:    jwtSecretKey,
		AccessTokenTTL:  time.Duration(accessTokenTTLSeconds) * time.Second,
		RefreshTokenTTL: time.Duration(refreshTokenTTLSeconds) * time.Second,
		AllowOrigins:    origins,
		Session:         session.DefaultConfig(),
	}

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := applyFileConfig(&cfg, path); err != nil {
			log.Warn("config file ignored", "path", path, "error", err)
		} else {
			log.Info("config file applied", "path", path)
		}
	}

	return cfg
}

func applyFileConfig(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	if len(fc.AllowOrigins) > 0 {
		cfg.AllowOrigins = fc.AllowOrigins
	}
	if fc.Session.GuardWindowMS > 0 {
		cfg.Session.GuardWindow = time.Duration(fc.Session.GuardWindowMS) * time.Millisecond
	}
	if fc.Session.RefreshDelayMS > 0 {
		cfg.Session.RefreshDelay = time.Duration(fc.Session.RefreshDelayMS) * time.Millisecond
	}
	if fc.Session.RepeatNotifyDelayMS > 0 {
		cfg.Session.RepeatNotifyDelay = time.Duration(fc.Session.RepeatNotifyDelayMS) * time.Millisecond
	}
	return nil
}
