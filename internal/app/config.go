package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/astralisweb/astralis-client/internal/pkg/logger"
	"github.com/astralisweb/astralis-client/internal/utils"
)

// Config is the frontend-host configuration. Values come from an optional
// astralis.yaml overlaid by environment variables; env wins.
type Config struct {
	APIBaseURL    string        `yaml:"api_base_url"`
	SessionCookie string        `yaml:"session_cookie"`
	ListenAddr    string        `yaml:"listen_addr"`
	LocalStore    string        `yaml:"local_store_path"`
	RedisAddr     string        `yaml:"redis_addr"`
	APITimeout    time.Duration `yaml:"-"`
	Environment   string        `yaml:"environment"`
}

func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := Config{
		ListenAddr: ":8080",
		LocalStore: "astralis.db",
	}

	path := utils.GetEnv("ASTRALIS_CONFIG", "astralis.yaml", log)
	if raw, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
		log.Info("Loaded config file", "path", path)
	} else {
		log.Debug("No config file, using env and defaults", "path", path)
	}

	if v := strings.TrimSpace(os.Getenv("ASTRALIS_API_BASE_URL")); v != "" {
		cfg.APIBaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("ASTRALIS_SESSION_COOKIE")); v != "" {
		cfg.SessionCookie = v
	}
	if v := strings.TrimSpace(os.Getenv("ASTRALIS_LISTEN_ADDR")); v != "" {
		cfg.ListenAddr = v
	}
	if v := strings.TrimSpace(os.Getenv("ASTRALIS_LOCAL_STORE")); v != "" {
		cfg.LocalStore = v
	}
	if v := strings.TrimSpace(os.Getenv("REDIS_ADDR")); v != "" {
		cfg.RedisAddr = v
	}
	if v := strings.TrimSpace(os.Getenv("ASTRALIS_ENV")); v != "" {
		cfg.Environment = v
	}
	cfg.APITimeout = time.Duration(utils.GetEnvAsInt("ASTRALIS_API_TIMEOUT_SECONDS", 30, log)) * time.Second

	if strings.TrimSpace(cfg.APIBaseURL) == "" {
		return Config{}, fmt.Errorf("api_base_url is required (ASTRALIS_API_BASE_URL)")
	}
	return cfg, nil
}
