package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/adamdince/ShopifyAuditor/internal/browser/chrome"
	"github.com/adamdince/ShopifyAuditor/internal/checkers/homepage"
	"github.com/adamdince/ShopifyAuditor/internal/checkers/jserrors"
	"github.com/adamdince/ShopifyAuditor/internal/checkers/links"
	"github.com/adamdince/ShopifyAuditor/internal/checkers/pages"
	"github.com/adamdince/ShopifyAuditor/internal/config"
	"github.com/adamdince/ShopifyAuditor/internal/core/browser"
	"github.com/adamdince/ShopifyAuditor/internal/core/check"
	"github.com/adamdince/ShopifyAuditor/internal/core/notify"
	"github.com/adamdince/ShopifyAuditor/internal/core/policy"
	"github.com/adamdince/ShopifyAuditor/internal/core/runner"
	"github.com/adamdince/ShopifyAuditor/internal/core/store"
	"github.com/adamdince/ShopifyAuditor/internal/notifiers/discord"
	"github.com/adamdince/ShopifyAuditor/internal/notifiers/slack"
	"github.com/adamdince/ShopifyAuditor/internal/notifiers/webhook"
	"github.com/adamdince/ShopifyAuditor/internal/stores/jsonfile"
	"github.com/adamdince/ShopifyAuditor/internal/stores/sheets"
	"github.com/adamdince/ShopifyAuditor/internal/utils/console"
	"github.com/adamdince/ShopifyAuditor/internal/utils/logger"
)

// Options lets callers swap the parts that touch the outside world.
type Options struct {
	Launcher browser.Launcher
	Remote   []store.Store
	Stdout   io.Writer
}

// Run performs a single monitoring pass and returns only when the local
// result file could not be written (or setup failed).
func Run(ctx context.Context, configPath string, opts Options) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, closeLog, err := buildLogger(cfg.Log, opts.Stdout)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	if closeLog != nil {
		defer closeLog()
	}
	if configPath != "" {
		log.Infof("config loaded: %s", configPath)
	}
	log.Infof("target site: %s", cfg.Site.BaseURL)

	r := Build(cfg, log, opts)
	_, err = r.Run(ctx)
	return err
}

// Build assembles the runner for cfg.
func Build(cfg *config.Config, log *logger.Logger, opts Options) *runner.Runner {
	launcher := opts.Launcher
	if launcher == nil {
		launcher = &chrome.Launcher{
			UserAgent: cfg.Browser.UserAgent,
			Headless:  cfg.Browser.Headless,
			NoSandbox: cfg.Browser.NoSandbox,
			ExecPath:  cfg.Browser.ExecPath,
			Logf:      log.Debugf,
		}
	}

	remote := opts.Remote
	if remote == nil {
		remote = []store.Store{&sheets.Store{
			SheetID:         cfg.Sheets.SheetID,
			Range:           cfg.Sheets.Range,
			CredentialsJSON: cfg.Sheets.Credentials,
			Timeout:         cfg.Sheets.Timeout,
		}}
	}

	narrator := console.NewNarrator(opts.Stdout)
	return &runner.Runner{
		Service:   cfg.Site.Name,
		Launcher:  launcher,
		Checkers:  buildChecks(cfg),
		Local:     &jsonfile.Store{Dir: cfg.Output.Dir},
		Remote:    remote,
		Notifiers: buildNotifiers(cfg),
		Policy:    policy.NewThresholdPolicy(check.Status(strings.ToUpper(cfg.Notify.MinStatus))),
		Log:       log,
		OnResult:  narrator.Print,
	}
}

func buildLogger(cfg config.LogConfig, stdout io.Writer) (*logger.Logger, func(), error) {
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	if cfg.Format == "" {
		cfg.Format = "text"
	}

	if cfg.File == "" {
		return logger.New(logger.Config{Level: cfg.Level, Format: cfg.Format, Output: stdout}), nil, nil
	}

	file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}

	closeFn := func() {
		_ = file.Close()
	}
	return logger.New(logger.Config{Level: cfg.Level, Format: cfg.Format, Output: file}), closeFn, nil
}

// buildChecks returns the pipeline in execution order. The JavaScript error
// summary reads console output from every earlier navigation, so it is last.
func buildChecks(cfg *config.Config) []check.Checker {
	titles := check.NewTitleMatcher(cfg.Site.TitleErrorPatterns)

	var elements []homepage.Element
	for _, e := range cfg.Site.Elements {
		elements = append(elements, homepage.Element{Name: e.Name, Selectors: e.Selectors})
	}
	var keyPages []pages.Page
	for _, p := range cfg.Site.Pages {
		keyPages = append(keyPages, pages.Page{Name: p.Name, Path: p.Path})
	}

	return []check.Checker{
		&homepage.Checker{
			URL:         cfg.Site.BaseURL,
			Timeout:     cfg.Site.HomepageTimeout,
			SettleDelay: cfg.Site.SettleDelay,
			Elements:    elements,
			Titles:      titles,
		},
		&pages.Checker{
			BaseURL: cfg.Site.BaseURL,
			Timeout: cfg.Site.PageTimeout,
			Pages:   keyPages,
			Titles:  titles,
		},
		&links.Checker{
			BaseURL:     cfg.Site.BaseURL,
			PageTimeout: cfg.Site.HomepageTimeout,
			LinkTimeout: cfg.Site.LinkTimeout,
			SettleDelay: cfg.Site.SettleDelay,
			SampleSize:  cfg.Site.LinkSampleSize,
		},
		jserrors.Checker{},
	}
}

func buildNotifiers(cfg *config.Config) []notify.Notifier {
	n := cfg.Notify
	var out []notify.Notifier
	if n.WebhookURL != "" {
		out = append(out, &webhook.Notifier{NameValue: "webhook", URL: n.WebhookURL, Timeout: n.Timeout})
	}
	if n.SlackURL != "" {
		out = append(out, &slack.Notifier{NameValue: "slack", URL: n.SlackURL, Timeout: n.Timeout})
	}
	if n.DiscordURL != "" {
		out = append(out, &discord.Notifier{NameValue: "discord", URL: n.DiscordURL, Username: n.DiscordUsername, Timeout: n.Timeout})
	}
	return out
}
