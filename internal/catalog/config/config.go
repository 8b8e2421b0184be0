// Package config loads the service configuration from a YAML file, with
// environment variables taking precedence over file values.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

// DefaultPath is where the service looks for its configuration file.
const DefaultPath = "internal/catalog/config/config.yaml"

// Config struct for YAML configuration
type Config struct {
	GRPCPort    int      `yaml:"GRPC_PORT"`
	HTTPPort    int      `yaml:"HTTP_PORT"`
	DataDir     string   `yaml:"DATA_DIR"`
	PublicDir   string   `yaml:"PUBLIC_DIR"`
	CORSOrigins []string `yaml:"CORS_ORIGINS"`

	Storage    string `yaml:"STORAGE"`
	DBHost     string `yaml:"DB_HOST"`
	DBPort     int    `yaml:"DB_PORT"`
	DBUser     string `yaml:"DB_USER"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBName     string `yaml:"DB_NAME"`
	DBSSLMode  string `yaml:"DB_SSLMODE"`

	// RedisURL enables the snapshot cache when set.
	RedisURL string        `yaml:"REDIS_URL"`
	CacheTTL time.Duration `yaml:"CACHE_TTL"`

	// KafkaBrokers enables import notifications when set.
	KafkaBrokers []string `yaml:"KAFKA_BROKERS"`
	Topic        string   `yaml:"TOPIC"`
	GroupID      string   `yaml:"GROUP_ID"`

	CompanyPageSize   int `yaml:"COMPANY_PAGE_SIZE"`
	DefaultLimit      int `yaml:"DEFAULT_LIMIT"`
	ExpiringSoonCount int `yaml:"EXPIRING_SOON_COUNT"`
	EndingSoonCount   int `yaml:"ENDING_SOON_COUNT"`
	MegamenuItems     int `yaml:"MEGAMENU_ITEMS"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		GRPCPort:          50051,
		HTTPPort:          3030,
		DataDir:           "data",
		PublicDir:         "public",
		CORSOrigins:       []string{"*"},
		Storage:           StorageFile,
		DBPort:            5432,
		DBSSLMode:         "disable",
		CacheTTL:          30 * time.Second,
		Topic:             "catalog.collections",
		GroupID:           "catalog-api",
		CompanyPageSize:   6,
		DefaultLimit:      6,
		ExpiringSoonCount: 6,
		EndingSoonCount:   7,
		MegamenuItems:     2,
	}
}

// Load reads the YAML file at path over the defaults, then applies environment
// overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	file, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, err
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	list := func(key string, dst *[]string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = splitList(v)
		}
	}
	num := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
		return nil
	}

	// HTTP_PORT wins over PORT when both are set.
	for _, n := range []struct {
		key string
		dst *int
	}{
		{"PORT", &c.HTTPPort},
		{"HTTP_PORT", &c.HTTPPort},
		{"GRPC_PORT", &c.GRPCPort},
		{"DB_PORT", &c.DBPort},
	} {
		if err := num(n.key, n.dst); err != nil {
			return err
		}
	}

	str("DATA_DIR", &c.DataDir)
	str("PUBLIC_DIR", &c.PublicDir)
	str("STORAGE", &c.Storage)
	str("DB_HOST", &c.DBHost)
	str("DB_USER", &c.DBUser)
	str("DB_PASSWORD", &c.DBPassword)
	str("DB_NAME", &c.DBName)
	str("DB_SSLMODE", &c.DBSSLMode)
	str("REDIS_URL", &c.RedisURL)
	str("TOPIC", &c.Topic)
	str("GROUP_ID", &c.GroupID)
	list("CORS_ORIGINS", &c.CORSOrigins)
	list("KAFKA_BROKERS", &c.KafkaBrokers)

	if v, ok := lookup("CACHE_TTL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CACHE_TTL: %w", err)
		}
		c.CacheTTL = d
	}
	return nil
}

// Validate rejects settings the service cannot run with.
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageFile, StoragePostgres:
	default:
		return fmt.Errorf("unknown STORAGE %q", c.Storage)
	}
	for name, v := range map[string]int{
		"COMPANY_PAGE_SIZE":   c.CompanyPageSize,
		"DEFAULT_LIMIT":       c.DefaultLimit,
		"EXPIRING_SOON_COUNT": c.ExpiringSoonCount,
		"ENDING_SOON_COUNT":   c.EndingSoonCount,
		"MEGAMENU_ITEMS":      c.MegamenuItems,
	} {
		if v < 1 {
			return fmt.Errorf("%s must be positive, got %d", name, v)
		}
	}
	if c.RedisURL != "" && c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive when REDIS_URL is set")
	}
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
