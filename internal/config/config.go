package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Scan struct {
		Exchanges       []string `yaml:"exchanges"`
		MinPrice        float64  `yaml:"min_price"`
		MinAvgDollarVol float64  `yaml:"min_avg_dollar_vol"`
		MinLastDayVol   float64  `yaml:"min_last_day_vol"`
		DaysRequired    int      `yaml:"days_required"`
		PctPerDay       float64  `yaml:"pct_per_day"`
		BatchSize       int      `yaml:"batch_size"`
		LookbackDays    int      `yaml:"lookback_days"`
		LimitTickers    string   `yaml:"limit_tickers"`
		ExtraTickers    []string `yaml:"extra_tickers"`
	} `yaml:"scan"`
	Output struct {
		Dir string `yaml:"dir"`
	} `yaml:"output"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"data_source"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		ScanCron string `yaml:"scan_cron"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("EXCHANGES"); v != "" {
		cfg.Scan.Exchanges = splitList(v)
	}
	if v := os.Getenv("MIN_PRICE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Scan.MinPrice = f
		}
	}
	if v := os.Getenv("MIN_AVG_DOLLAR_VOL"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Scan.MinAvgDollarVol = f
		}
	}
	if v := os.Getenv("MIN_LAST_DAY_VOL"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Scan.MinLastDayVol = f
		}
	}
	if v := os.Getenv("DAYS_REQUIRED"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Scan.DaysRequired = n
		}
	}
	if v := os.Getenv("PCT_PER_DAY"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Scan.PctPerDay = f
		}
	}
	if v := os.Getenv("BATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Scan.BatchSize = n
		}
	}
	if v := os.Getenv("LIMIT_TICKERS"); v != "" {
		cfg.Scan.LimitTickers = v
	}
	if v := os.Getenv("EXTRA_TICKERS"); v != "" {
		cfg.Scan.ExtraTickers = splitList(v)
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("DATA_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("SCAN_CRON"); v != "" {
		cfg.Schedule.ScanCron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if len(cfg.Scan.Exchanges) == 0 {
		cfg.Scan.Exchanges = []string{"NASDAQ", "NYSE", "AMEX"}
	}
	if cfg.Scan.MinPrice == 0 {
		cfg.Scan.MinPrice = 2
	}
	if cfg.Scan.MinAvgDollarVol == 0 {
		cfg.Scan.MinAvgDollarVol = 2000000
	}
	if cfg.Scan.MinLastDayVol == 0 {
		cfg.Scan.MinLastDayVol = 500000
	}
	if cfg.Scan.DaysRequired == 0 {
		cfg.Scan.DaysRequired = 3
	}
	if cfg.Scan.PctPerDay == 0 {
		cfg.Scan.PctPerDay = 5.0
	}
	if cfg.Scan.BatchSize == 0 {
		cfg.Scan.BatchSize = 250
	}
	if cfg.Scan.LookbackDays == 0 {
		cfg.Scan.LookbackDays = 35
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "."
	}

	return cfg, nil
}

// Validate checks that all required fields are set and consistent.
func (c *Config) Validate() error {
	if c.Scan.DaysRequired <= 0 {
		return fmt.Errorf("scan.days_required must be positive")
	}
	if c.Scan.BatchSize <= 0 {
		return fmt.Errorf("scan.batch_size must be positive")
	}
	if c.Scan.LookbackDays <= c.Scan.DaysRequired {
		return fmt.Errorf("scan.lookback_days must exceed scan.days_required")
	}
	if c.Scan.MinPrice < 0 || c.Scan.MinAvgDollarVol < 0 || c.Scan.MinLastDayVol < 0 {
		return fmt.Errorf("scan thresholds must not be negative")
	}
	return nil
}

// TelegramConfigured reports whether notification credentials are present.
func (c *Config) TelegramConfigured() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
