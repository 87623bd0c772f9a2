package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

// ConfigPathEnv names an optional YAML file layered over the defaults.
const ConfigPathEnv = "MONITOR_CONFIG"

// Load builds the config from defaults, the optional YAML file at path,
// a .env file and finally the process environment. An empty path skips
// the YAML step.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := ReadEnv(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read .env: %w", err)
	}

	if path != "" {
		if err := readYAML(path, &cfg); err != nil {
			return nil, err
		}
	}
	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func readYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	data = []byte(os.ExpandEnv(string(data)))

	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewBuffer(data)); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) error {
	if hasAnyEnv(siteEnvKeys()) {
		var sc SiteConfig
		if err := envconfig.Process("", &sc); err != nil {
			return fmt.Errorf("site env: %w", err)
		}
		applySiteOverrides(cfg, sc)
	}
	if hasAnyEnv(browserEnvKeys()) {
		var bc BrowserConfig
		if err := envconfig.Process("", &bc); err != nil {
			return fmt.Errorf("browser env: %w", err)
		}
		applyBrowserOverrides(cfg, bc)
	}
	if envNonEmpty("OUTPUT_DIR") {
		cfg.Output.Dir = strings.TrimSpace(os.Getenv("OUTPUT_DIR"))
	}
	if hasAnyEnv(sheetsEnvKeys()) {
		var sc SheetsConfig
		if err := envconfig.Process("", &sc); err != nil {
			return fmt.Errorf("sheets env: %w", err)
		}
		applySheetsOverrides(cfg, sc)
	}
	if hasAnyEnv(notifyEnvKeys()) {
		var nc NotifyConfig
		if err := envconfig.Process("", &nc); err != nil {
			return fmt.Errorf("notify env: %w", err)
		}
		applyNotifyOverrides(cfg, nc)
	}
	if hasAnyEnv(logEnvKeys()) {
		var lc LogConfig
		if err := envconfig.Process("", &lc); err != nil {
			return fmt.Errorf("log env: %w", err)
		}
		applyLogOverrides(cfg, lc)
	}
	return nil
}

func applySiteOverrides(cfg *Config, sc SiteConfig) {
	s := &cfg.Site
	if envNonEmpty("SITE_NAME") {
		s.Name = sc.Name
	}
	if envNonEmpty("SITE_BASE_URL") {
		s.BaseURL = strings.TrimSpace(sc.BaseURL)
	}
	if envNonEmpty("HOMEPAGE_TIMEOUT") {
		s.HomepageTimeout = sc.HomepageTimeout
	}
	if envNonEmpty("PAGE_TIMEOUT") {
		s.PageTimeout = sc.PageTimeout
	}
	if envNonEmpty("LINK_TIMEOUT") {
		s.LinkTimeout = sc.LinkTimeout
	}
	if envNonEmpty("SETTLE_DELAY") {
		s.SettleDelay = sc.SettleDelay
	}
	if envNonEmpty("LINK_SAMPLE_SIZE") {
		s.LinkSampleSize = sc.LinkSampleSize
	}
	if envNonEmpty("TITLE_ERROR_PATTERNS") {
		s.TitleErrorPatterns = parseCSV(os.Getenv("TITLE_ERROR_PATTERNS"))
	}
}

func applyBrowserOverrides(cfg *Config, bc BrowserConfig) {
	b := &cfg.Browser
	if envNonEmpty("BROWSER_USER_AGENT") {
		b.UserAgent = bc.UserAgent
	}
	if envNonEmpty("BROWSER_HEADLESS") {
		b.Headless = bc.Headless
	}
	if envNonEmpty("BROWSER_NO_SANDBOX") {
		b.NoSandbox = bc.NoSandbox
	}
	if envNonEmpty("BROWSER_EXEC_PATH") {
		b.ExecPath = bc.ExecPath
	}
}

func applySheetsOverrides(cfg *Config, sc SheetsConfig) {
	s := &cfg.Sheets
	if envNonEmpty("GOOGLE_SHEET_ID") {
		s.SheetID = strings.TrimSpace(sc.SheetID)
	}
	if envNonEmpty("GOOGLE_CREDENTIALS") {
		s.Credentials = sc.Credentials
	}
	if envNonEmpty("GOOGLE_SHEET_RANGE") {
		s.Range = sc.Range
	}
	if envNonEmpty("GOOGLE_SHEETS_TIMEOUT") {
		s.Timeout = sc.Timeout
	}
}

func applyNotifyOverrides(cfg *Config, nc NotifyConfig) {
	n := &cfg.Notify
	if envNonEmpty("NOTIFY_WEBHOOK_URL") {
		n.WebhookURL = nc.WebhookURL
	}
	if envNonEmpty("NOTIFY_SLACK_URL") {
		n.SlackURL = nc.SlackURL
	}
	if envNonEmpty("NOTIFY_DISCORD_URL") {
		n.DiscordURL = nc.DiscordURL
	}
	if envNonEmpty("NOTIFY_DISCORD_USERNAME") {
		n.DiscordUsername = nc.DiscordUsername
	}
	if envNonEmpty("NOTIFY_MIN_STATUS") {
		n.MinStatus = strings.ToUpper(strings.TrimSpace(nc.MinStatus))
	}
	if envNonEmpty("NOTIFY_TIMEOUT") {
		n.Timeout = nc.Timeout
	}
}

func applyLogOverrides(cfg *Config, lc LogConfig) {
	if envNonEmpty("LOG_LEVEL") {
		cfg.Log.Level = lc.Level
	}
	if envNonEmpty("LOG_FORMAT") {
		cfg.Log.Format = lc.Format
	}
	if envNonEmpty("LOG_FILE") {
		cfg.Log.File = lc.File
	}
}

func siteEnvKeys() []string {
	return []string{
		"SITE_NAME", "SITE_BASE_URL", "HOMEPAGE_TIMEOUT", "PAGE_TIMEOUT", "LINK_TIMEOUT",
		"SETTLE_DELAY", "LINK_SAMPLE_SIZE", "TITLE_ERROR_PATTERNS",
	}
}

func browserEnvKeys() []string {
	return []string{
		"BROWSER_USER_AGENT", "BROWSER_HEADLESS", "BROWSER_NO_SANDBOX", "BROWSER_EXEC_PATH",
	}
}

func sheetsEnvKeys() []string {
	return []string{
		"GOOGLE_SHEET_ID", "GOOGLE_CREDENTIALS", "GOOGLE_SHEET_RANGE", "GOOGLE_SHEETS_TIMEOUT",
	}
}

func notifyEnvKeys() []string {
	return []string{
		"NOTIFY_WEBHOOK_URL", "NOTIFY_SLACK_URL", "NOTIFY_DISCORD_URL", "NOTIFY_DISCORD_USERNAME",
		"NOTIFY_MIN_STATUS", "NOTIFY_TIMEOUT",
	}
}

func logEnvKeys() []string {
	return []string{
		"LOG_LEVEL", "LOG_FORMAT", "LOG_FILE",
	}
}

func hasAnyEnv(keys []string) bool {
	for _, key := range keys {
		if envNonEmpty(key) {
			return true
		}
	}
	return false
}

func envNonEmpty(key string) bool {
	val, ok := os.LookupEnv(key)
	if !ok {
		return false
	}
	return strings.TrimSpace(val) != ""
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
