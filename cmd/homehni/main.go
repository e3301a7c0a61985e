// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/homehni/homehni-web/internal/cache"
	"github.com/homehni/homehni-web/internal/config"
	"github.com/homehni/homehni-web/internal/editor"
	"github.com/homehni/homehni-web/internal/geoip"
	"github.com/homehni/homehni-web/internal/handler"
	"github.com/homehni/homehni-web/internal/legacy"
	"github.com/homehni/homehni-web/internal/logging"
	"github.com/homehni/homehni-web/internal/mail"
	"github.com/homehni/homehni-web/internal/scheduler"
	"github.com/homehni/homehni-web/internal/seo"
	"github.com/homehni/homehni-web/internal/session"
	"github.com/homehni/homehni-web/internal/store"
	"github.com/homehni/homehni-web/internal/suggest"
	"github.com/homehni/homehni-web/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")
	importLegacy := flag.Bool("import-legacy", false, "Import pages from the legacy site database and exit")
	importPrefix := flag.String("import-prefix", "", "Table prefix in the legacy database")
	importSkip := flag.Bool("import-skip-existing", false, "Skip legacy pages whose slug already exists")
	importDryRun := flag.Bool("import-dry-run", false, "Report what the legacy import would do without writing")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "HomeHNI - marketing site and content service\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  HOMEHNI_SESSION_SECRET    Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  HOMEHNI_DB_PATH           SQLite database path (default: ./data/homehni.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  HOMEHNI_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  HOMEHNI_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  HOMEHNI_REDIS_URL         Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  HOMEHNI_SMTP_HOST         SMTP relay for lead notifications (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  HOMEHNI_GEOIP_DB_PATH     GeoLite2-Country.mmdb path (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  HOMEHNI_OPENAI_API_KEY    OpenAI key for copy suggestions (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  HOMEHNI_LEGACY_MYSQL_DSN  Legacy site MySQL DSN for -import-legacy\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if *showVersion {
		_, _ = fmt.Printf("homehni %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if *importLegacy {
		if err := runImport(legacy.ImportOptions{
			TablePrefix:  *importPrefix,
			SkipExisting: *importSkip,
			DryRun:       *importDryRun,
		}); err != nil {
			slog.Error("legacy import failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

// runImport runs the one-shot legacy content import and exits.
func runImport(opts legacy.ImportOptions) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cfg.LegacyMySQLDSN == "" {
		return errors.New("HOMEHNI_LEGACY_MYSQL_DSN is not set")
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db, err := openDatabase(cfg.DBPath)
	if err != nil {
		return err
	}
	defer closeDatabase(db)

	result, err := legacy.NewImporter(db, logger).Run(context.Background(), cfg.LegacyMySQLDSN, opts)
	if err != nil {
		return err
	}
	for _, msg := range result.Errors {
		slog.Warn("import error", "detail", msg)
	}
	slog.Info("import complete",
		"imported", result.PagesImported,
		"skipped", result.PagesSkipped,
		"errors", len(result.Errors),
	)
	if result.HasErrors() {
		return fmt.Errorf("%d pages failed to import", len(result.Errors))
	}
	return nil
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	versionInfo := &version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	slog.Info("starting homehni", "version", versionInfo.Version, "commit", versionInfo.GitCommit)

	db, err := openDatabase(cfg.DBPath)
	if err != nil {
		return err
	}
	defer closeDatabase(db)

	// Upgrade logger to mirror WARN and ERROR records into the events table
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	ctx := context.Background()
	if cfg.DoSeed {
		if err := store.Seed(ctx, db); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}

	sessionManager := session.New(db, cfg.IsDevelopment())
	slog.Info("session manager initialized")

	// Cache backend: Redis when configured, in-process memory otherwise
	cacheConfig := cache.DefaultConfig()
	cacheConfig.RedisURL = cfg.RedisURL
	cacheConfig.Prefix = cfg.CachePrefix
	cacheConfig.TTL = time.Duration(cfg.CacheTTL) * time.Second
	cacheConfig.MaxEntries = cfg.CacheMaxSize
	backend := cache.New(cacheConfig)
	defer func() { _ = backend.Close() }()
	switch backend.(type) {
	case *cache.Redis:
		slog.Info("cache initialized", "backend", "redis", "url", cfg.RedisURL)
	default:
		slog.Info("cache initialized", "backend", "memory")
	}
	pageCache := cache.NewPageCache(backend, store.New(db), time.Duration(cfg.CacheTTL)*time.Second)

	// GeoIP country lookup for lead enrichment
	var geo *geoip.Lookup
	if cfg.GeoIPEnabled() {
		geo = geoip.NewLookup()
		if err := geo.Init(cfg.GeoIPDBPath); err != nil {
			slog.Warn("geoip disabled", "error", err)
			geo = nil
		} else {
			defer func() { _ = geo.Close() }()
			slog.Info("geoip lookup initialized", "path", cfg.GeoIPDBPath)
		}
	}

	// Lead notification mail: real SMTP when configured, log-only otherwise
	var mailer mail.Mailer
	if cfg.MailEnabled() {
		mailer = mail.NewSMTPMailer(mail.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
		})
		slog.Info("smtp mailer initialized", "host", cfg.SMTPHost)
	} else {
		mailer = mail.LogMailer{}
		slog.Info("smtp not configured, logging mail instead")
	}

	suggester := suggest.New(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	if suggester.Enabled() {
		slog.Info("copy suggestions enabled", "model", cfg.OpenAIModel)
	}

	sched := scheduler.New(db, logger, scheduler.Options{
		Geo:       geo,
		Mailer:    mailer,
		LeadInbox: cfg.LeadInbox,
		Pages:     pageCache,
	})
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	h := handler.New(db, handler.Options{
		Sessions:  sessionManager,
		Editors:   editor.NewManager(store.NewEditorStore(db)),
		PageCache: pageCache,
		Geo:       geo,
		Mailer:    mailer,
		Suggester: suggester,
		Jobs:      sched.Registry(),
		Site: &seo.SiteConfig{
			SiteName:        "HomeHNI",
			SiteURL:         cfg.BaseURL,
			SiteDescription: "Buy, sell and rent property with zero brokerage.",
			DefaultOGImage:  "/static/og-default.jpg",
			TwitterHandle:   "@homehni",
		},
		LeadInbox: cfg.LeadInbox,
		Version:   versionInfo.Version,
	})

	r := h.Router(handler.RouterConfig{
		SessionSecret: cfg.SessionSecret,
		IsDevelopment: cfg.IsDevelopment(),
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// openDatabase creates the data directory, opens the database and runs
// migrations.
func openDatabase(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", dbPath)
	db, err := store.NewDB(dbPath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}
	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")
	return db, nil
}

func closeDatabase(db *sql.DB) {
	if err := db.Close(); err != nil {
		slog.Error("error closing database connection", "error", err)
	}
}
