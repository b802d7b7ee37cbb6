package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultBasePath = "/inbox"
)

type Config struct {
	Port         string
	DevMode      bool
	DatabasePath string
	BasePath     string
	ListLimit    int
	MessageLimit int
	CacheURL     string
	CacheTTL     time.Duration
}

func Load() Config {
	devMode := os.Getenv("VANGO_DEV") == "1"
	defaultDBPath := "db/creator_inbox.sqlite"
	if devMode {
		defaultDBPath = filepath.Join(os.TempDir(), "creator_inbox.sqlite")
	}

	cfg := Config{
		Port:         getenv("PORT", "3000"),
		DevMode:      devMode,
		DatabasePath: getenv("DATABASE_PATH", defaultDBPath),
		BasePath:     getenv("INBOX_BASE_PATH", DefaultBasePath),
		ListLimit:    getenvInt("INBOX_LIST_LIMIT", 200),
		MessageLimit: getenvInt("INBOX_MESSAGE_LIMIT", 500),
		CacheURL:     os.Getenv("CACHE_URL"),
		CacheTTL:     time.Duration(getenvInt("CACHE_TTL_SECONDS", 30)) * time.Second,
	}

	cfg.BasePath = "/" + strings.Trim(cfg.BasePath, "/")
	if cfg.BasePath == "/" {
		cfg.BasePath = DefaultBasePath
	}
	if cfg.ListLimit < 1 {
		cfg.ListLimit = 200
	}
	if cfg.MessageLimit < 1 {
		cfg.MessageLimit = 500
	}
	if cfg.CacheTTL < 0 {
		cfg.CacheTTL = 0
	}

	return cfg
}

func getenv(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func getenvInt(name string, fallback int) int {
	value := os.Getenv(name)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
