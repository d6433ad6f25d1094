package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration decodes YAML values like "2h" or "90s" via time.ParseDuration.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config holds the viewer's runtime settings. Values come from defaults,
// then an optional YAML file (QBANK_CONFIG), then environment variables,
// later layers winning.
type Config struct {
	HTTPAddr     string   `yaml:"http_addr"`
	DataDir      string   `yaml:"data_dir"`
	DefaultFile  string   `yaml:"default_file"`
	CORSOrigins  []string `yaml:"cors_origins"`
	SessionTTL   Duration `yaml:"session_ttl"`
	WatchDataDir bool     `yaml:"watch_data_dir"`
	LogLevel     string   `yaml:"log_level"`
}

func defaults() Config {
	return Config{
		HTTPAddr:     ":8080",
		DataDir:      "./data",
		DefaultFile:  "LinearRegression_quiz.json",
		CORSOrigins:  []string{"http://localhost:3000"},
		SessionTTL:   Duration(2 * time.Hour),
		WatchDataDir: true,
		LogLevel:     "info",
	}
}

// Load builds the effective configuration.
func Load() (Config, error) {
	cfg := defaults()
	if path := os.Getenv("QBANK_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %q: %w", path, err)
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.HTTPAddr = envOr("QBANK_HTTP_ADDR", cfg.HTTPAddr)
	cfg.DataDir = envOr("QBANK_DATA_DIR", cfg.DataDir)
	cfg.DefaultFile = envOr("QBANK_DEFAULT_FILE", cfg.DefaultFile)
	cfg.LogLevel = envOr("QBANK_LOG_LEVEL", cfg.LogLevel)
	cfg.WatchDataDir = envBool("QBANK_WATCH", cfg.WatchDataDir)
	if v := os.Getenv("QBANK_CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitCSV(v)
	}
	if v := os.Getenv("QBANK_SESSION_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.SessionTTL = Duration(d)
		}
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
