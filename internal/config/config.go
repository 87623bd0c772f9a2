package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

type Config struct {
	Site    SiteConfig    `yaml:"site" mapstructure:"site"`
	Browser BrowserConfig `yaml:"browser" mapstructure:"browser"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Sheets  SheetsConfig  `yaml:"sheets" mapstructure:"sheets"`
	Notify  NotifyConfig  `yaml:"notify" mapstructure:"notify"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

func DefaultConfig() Config {
	return Config{
		Site: SiteConfig{
			Name:               "storefront",
			BaseURL:            "https://www.example-shop.com",
			HomepageTimeout:    15 * time.Second,
			PageTimeout:        10 * time.Second,
			LinkTimeout:        5 * time.Second,
			SettleDelay:        2 * time.Second,
			LinkSampleSize:     5,
			TitleErrorPatterns: []string{"404", "Error", "Not Found"},
		},
		Browser: BrowserConfig{
			Headless: true,
		},
		Output: OutputConfig{
			Dir: ".",
		},
		Sheets: SheetsConfig{
			Range:   "Sheet1!A:E",
			Timeout: 30 * time.Second,
		},
		Notify: NotifyConfig{
			MinStatus: "FAIL",
			Timeout:   5 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

type SiteConfig struct {
	Name               string          `yaml:"name" mapstructure:"name" envconfig:"SITE_NAME"`
	BaseURL            string          `yaml:"base_url" mapstructure:"base_url" envconfig:"SITE_BASE_URL"`
	HomepageTimeout    time.Duration   `yaml:"homepage_timeout" mapstructure:"homepage_timeout" envconfig:"HOMEPAGE_TIMEOUT"`
	PageTimeout        time.Duration   `yaml:"page_timeout" mapstructure:"page_timeout" envconfig:"PAGE_TIMEOUT"`
	LinkTimeout        time.Duration   `yaml:"link_timeout" mapstructure:"link_timeout" envconfig:"LINK_TIMEOUT"`
	SettleDelay        time.Duration   `yaml:"settle_delay" mapstructure:"settle_delay" envconfig:"SETTLE_DELAY"`
	LinkSampleSize     int             `yaml:"link_sample_size" mapstructure:"link_sample_size" envconfig:"LINK_SAMPLE_SIZE"`
	TitleErrorPatterns []string        `yaml:"title_error_patterns" mapstructure:"title_error_patterns" envconfig:"TITLE_ERROR_PATTERNS"`
	Pages              []PageConfig    `yaml:"pages" mapstructure:"pages" ignored:"true"`
	Elements           []ElementConfig `yaml:"elements" mapstructure:"elements" ignored:"true"`
}

type PageConfig struct {
	Name string `yaml:"name" mapstructure:"name"`
	Path string `yaml:"path" mapstructure:"path"`
}

type ElementConfig struct {
	Name      string   `yaml:"name" mapstructure:"name"`
	Selectors []string `yaml:"selectors" mapstructure:"selectors"`
}

type BrowserConfig struct {
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent" envconfig:"BROWSER_USER_AGENT"`
	Headless  bool   `yaml:"headless" mapstructure:"headless" envconfig:"BROWSER_HEADLESS"`
	NoSandbox bool   `yaml:"no_sandbox" mapstructure:"no_sandbox" envconfig:"BROWSER_NO_SANDBOX"`
	ExecPath  string `yaml:"exec_path" mapstructure:"exec_path" envconfig:"BROWSER_EXEC_PATH"`
}

type OutputConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir" envconfig:"OUTPUT_DIR"`
}

type SheetsConfig struct {
	SheetID     string        `yaml:"sheet_id" mapstructure:"sheet_id" envconfig:"GOOGLE_SHEET_ID"`
	Credentials string        `yaml:"credentials" mapstructure:"credentials" envconfig:"GOOGLE_CREDENTIALS"`
	Range       string        `yaml:"range" mapstructure:"range" envconfig:"GOOGLE_SHEET_RANGE"`
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout" envconfig:"GOOGLE_SHEETS_TIMEOUT"`
}

type NotifyConfig struct {
	WebhookURL      string        `yaml:"webhook_url" mapstructure:"webhook_url" envconfig:"NOTIFY_WEBHOOK_URL"`
	SlackURL        string        `yaml:"slack_url" mapstructure:"slack_url" envconfig:"NOTIFY_SLACK_URL"`
	DiscordURL      string        `yaml:"discord_url" mapstructure:"discord_url" envconfig:"NOTIFY_DISCORD_URL"`
	DiscordUsername string        `yaml:"discord_username" mapstructure:"discord_username" envconfig:"NOTIFY_DISCORD_USERNAME"`
	MinStatus       string        `yaml:"min_status" mapstructure:"min_status" envconfig:"NOTIFY_MIN_STATUS"`
	Timeout         time.Duration `yaml:"timeout" mapstructure:"timeout" envconfig:"NOTIFY_TIMEOUT"`
}

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level" envconfig:"LOG_LEVEL"`
	Format string `yaml:"format" mapstructure:"format" envconfig:"LOG_FORMAT"`
	File   string `yaml:"file" mapstructure:"file" envconfig:"LOG_FILE"`
}

func (c *Config) Validate() error {
	var errs []error
	u, err := url.Parse(c.Site.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("site.base_url must be an absolute http(s) url, got %q", c.Site.BaseURL))
	}
	for name, d := range map[string]time.Duration{
		"site.homepage_timeout": c.Site.HomepageTimeout,
		"site.page_timeout":     c.Site.PageTimeout,
		"site.link_timeout":     c.Site.LinkTimeout,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %s", name, d))
		}
	}
	if c.Site.SettleDelay < 0 {
		errs = append(errs, fmt.Errorf("site.settle_delay must not be negative, got %s", c.Site.SettleDelay))
	}
	if c.Site.LinkSampleSize <= 0 {
		errs = append(errs, fmt.Errorf("site.link_sample_size must be positive, got %d", c.Site.LinkSampleSize))
	}
	for i, p := range c.Site.Pages {
		if !strings.HasPrefix(p.Path, "/") {
			errs = append(errs, fmt.Errorf("site.pages[%d] (%q): path must start with /", i, p.Name))
		}
	}
	switch strings.ToUpper(c.Notify.MinStatus) {
	case "PASS", "WARN", "FAIL":
	default:
		errs = append(errs, fmt.Errorf("notify.min_status must be PASS, WARN or FAIL, got %q", c.Notify.MinStatus))
	}
	return errors.Join(errs...)
}
