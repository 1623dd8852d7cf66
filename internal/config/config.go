// Load envs from .env
// Load YAML config
// Validate config
// Provide default values

package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type Config struct {
	//Search criteria
	Keywords      string   `yaml:"keywords"`
	RecencyDays   int      `yaml:"recency_days"`
	Location      string   `yaml:"location"`
	GeoID         string   `yaml:"geo_id"`
	WorkLocations []string `yaml:"work_locations"` // on_site, remote, hybrid

	//Crawl limits
	PageSize int `yaml:"page_size"`
	MaxJobs  int `yaml:"max_jobs"`

	//Title filter keyword sets. A nil set means "no rule of that kind";
	//the filter requires at least one of the three to be present.
	TitleAlwaysKeep []string `yaml:"title_always_keep"`
	TitleKeep       []string `yaml:"title_keep"`
	TitleDiscard    []string `yaml:"title_discard"`

	//Description filter
	DescriptionKeywords []string `yaml:"description_keywords"`
	MarkMatches         bool     `yaml:"mark_matches"`

	//Output
	OutputFolder string `yaml:"output_folder"`
	CachePath    string `yaml:"cache_path"`
	LogLevel     string `yaml:"log_level"`

	//Telegram notifications (optional, skipped when the token is empty)
	TelegramToken  string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`
}

func Load() *Config {
	_ = godotenv.Load()

	//Defaults are set before unmarshalling so that absent YAML keys keep
	//them, and explicit YAML keys (including `mark_matches: false`) win.
	cfg := &Config{
		RecencyDays:   1,
		Location:      "Nederland",
		GeoID:         "102890719",
		WorkLocations: []string{"on_site", "remote", "hybrid"},
		PageSize:      10,
		MaxJobs:       1000,
		MarkMatches:   true,
		OutputFolder:  "results",
		CachePath:     ".cache",
		LogLevel:      "info",
	}

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Warnf("Could not read config.yaml: %v", err)
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Fatalf("Error parsing config.yaml: %v", err)
		}
	}

	//Override with env vars
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.TelegramToken = token
	}

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			log.Fatalf("Invalid TELEGRAM_CHAT_ID: %v", err)
		}
		cfg.TelegramChatID = id
	}

	if keywords := os.Getenv("SEARCH_KEYWORDS"); keywords != "" {
		cfg.Keywords = keywords
	}

	//Validate required fields
	if cfg.Keywords == "" {
		log.Fatal("keywords is required (config.yaml or SEARCH_KEYWORDS)")
	}

	if cfg.RecencyDays < 0 {
		log.Fatalf("recency_days must be >= 0, got %d", cfg.RecencyDays)
	}

	if len(cfg.WorkLocations) == 0 {
		log.Fatal("work_locations must contain at least one of on_site, remote, hybrid")
	}

	if cfg.PageSize <= 0 {
		log.Fatalf("page_size must be > 0, got %d", cfg.PageSize)
	}

	if cfg.TitleAlwaysKeep == nil && cfg.TitleKeep == nil && cfg.TitleDiscard == nil {
		log.Fatal("at least one of title_always_keep, title_keep, title_discard is required")
	}

	return cfg
}
