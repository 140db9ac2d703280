// Load envs from .env
// Load YAML config
// Validate config
// Provide default values

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type SearchConfig struct {
	Query           string   `yaml:"query"`
	Location        string   `yaml:"location"`
	Industry        string   `yaml:"industry"`
	WorkType        string   `yaml:"work_type"`
	JobType         string   `yaml:"job_type"`
	ExperienceLevel string   `yaml:"experience_level"`
	Skills          []string `yaml:"skills"`
	SalaryMin       int      `yaml:"salary_min"`
	SalaryMax       int      `yaml:"salary_max"`
	// AIMatching prefers the backend-computed score when available.
	AIMatching bool `yaml:"ai_matching"`
}

type Config struct {
	APIBaseURL string `yaml:"api_base_url" env:"HIRELOOP_API_URL"`

	// Telegram is optional; notifications are skipped when unset.
	TelegramToken  string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`

	// DatabaseURL enables the optional local tracking store.
	DatabaseURL string `yaml:"database_url" env:"DATABASE_URL"`

	AssetUploadURL    string `yaml:"asset_upload_url"`
	AssetUploadPreset string `yaml:"asset_upload_preset"`

	Search        SearchConfig `yaml:"search"`
	ProfileSkills []string     `yaml:"profile_skills"`

	// Watch cadence: cron spec for discovery, poll intervals for threads
	// and notifications.
	DiscoverySpec        string   `yaml:"discovery_spec"`
	MessagePollInterval  Duration `yaml:"message_poll_interval"`
	NotifyPollInterval   Duration `yaml:"notify_poll_interval"`
	ApplicationsInterval Duration `yaml:"applications_interval"`

	CredentialsPath string `yaml:"credentials_path"`
	CachePath       string `yaml:"cache_path"`
}

// Load reads the YAML config at path, overlays env vars and applies defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("could not read %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", path, err)
		}
	}

	// Override with env vars
	if v := os.Getenv("HIRELOOP_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.TelegramToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.TelegramChatID = id
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}

	// Set default values if not set
	if cfg.CredentialsPath == "" {
		cfg.CredentialsPath = ".hireloop/credentials.json"
	}
	if cfg.CachePath == "" {
		cfg.CachePath = ".hireloop/cache"
	}
	if cfg.DiscoverySpec == "" {
		cfg.DiscoverySpec = "@every 15m"
	}
	if cfg.MessagePollInterval == 0 {
		cfg.MessagePollInterval = Duration(5 * time.Second)
	}
	if cfg.NotifyPollInterval == 0 {
		cfg.NotifyPollInterval = Duration(60 * time.Second)
	}
	if cfg.ApplicationsInterval == 0 {
		cfg.ApplicationsInterval = Duration(30 * time.Second)
	}

	// Validate required fields
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("api_base_url (or HIRELOOP_API_URL) is required")
	}
	if (cfg.TelegramToken == "") != (cfg.TelegramChatID == 0) {
		return nil, fmt.Errorf("telegram_token and telegram_chat_id must be set together")
	}

	return cfg, nil
}
