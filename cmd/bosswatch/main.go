package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/lord9tools/bosswatch/pkg/config"
	"github.com/lord9tools/bosswatch/pkg/core"
	"github.com/lord9tools/bosswatch/pkg/logging"
	"github.com/lord9tools/bosswatch/pkg/notify"
	"github.com/lord9tools/bosswatch/pkg/scheduler"
	"github.com/lord9tools/bosswatch/pkg/storage"
	"github.com/lord9tools/bosswatch/ui"
)

var (
	logger zerolog.Logger
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "bosswatch",
	Short: "Bosswatch - live respawn countdowns for recurring game bosses",
	Long:  "Bosswatch tracks field and weekly boss respawn timers and serves a live countdown dashboard.",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the bosswatch server",
	Long:  "Start the dashboard HTTP server and the projection refresher",
	RunE:  runServe,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Reset the timer store to the configured roster",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads configuration (called by commands that need it)
func loadConfig() error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger = logging.Setup(cfg.Environment)
	return nil
}

// buildStore constructs the configured storage backend.
func buildStore(roster *config.Roster) (storage.Store, error) {
	defaults, err := roster.Records(cfg.Location)
	if err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case config.StorageSQLite:
		db, err := gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
		}
		return storage.NewGormStore(db, cfg.SQLitePath), nil
	default:
		return storage.NewJSONStore(cfg.DataFile, cfg.HistoryFile, cfg.Location, defaults, logger), nil
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	logger.Info().Msg("bosswatch starting")

	roster, err := config.LoadRoster(cfg.RosterFile)
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}

	store, err := buildStore(roster)
	if err != nil {
		return err
	}
	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate store: %w", err)
	}
	if err := seedIfEmpty(ctx, store, roster); err != nil {
		return err
	}

	weekly, err := roster.WeeklyRecords()
	if err != nil {
		return fmt.Errorf("weekly roster: %w", err)
	}

	sched, err := scheduler.New(ctx, store, cfg.Location, weekly,
		scheduler.WithLogger(logger),
		scheduler.WithSink(notify.NewWebhookSink(cfg.WebhookURL, logger)),
	)
	if err != nil {
		return fmt.Errorf("initialize scheduler: %w", err)
	}

	var metrics *ui.Metrics
	refresherOpts := []scheduler.RefresherOption{
		scheduler.WithInterval(cfg.RefreshInterval),
		scheduler.WithRefresherLogger(logger),
	}
	uiOpts := []ui.Option{
		ui.WithTitle("Lord9 Santiago 7 Boss Timer"),
		ui.WithAdminCredential(cfg.AdminCredential),
		ui.WithAnnouncements(roster.Announcements()),
		ui.WithLogger(logger),
	}
	if cfg.MetricsEnabled {
		metrics = ui.NewMetrics()
		refresherOpts = append(refresherOpts, scheduler.WithOnSnapshot(metrics.Observe))
		uiOpts = append(uiOpts, ui.WithMetrics(metrics))
	}

	ref := scheduler.NewRefresher(sched, refresherOpts...)

	refCtx, stopRefresher := context.WithCancel(ctx)
	defer stopRefresher()
	go func() {
		if err := ref.Start(refCtx); err != nil && err != context.Canceled {
			logger.Error().Err(err).Msg("refresher stopped")
		}
	}()

	httpServer := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTPBind, cfg.HTTPPort),
		Handler: ui.Handler(sched, ref, uiOpts...),
	}

	go func() {
		logger.Info().Str("addr", httpServer.Addr).Msg("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down gracefully...")

	timeoutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(timeoutCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	stopRefresher()
	sched.Flush()

	logger.Info().Msg("bosswatch stopped")
	return nil
}

// seedIfEmpty writes the roster records when the store has none yet.
// The JSON store self-seeds on load; this covers the sqlite backend.
func seedIfEmpty(ctx context.Context, store storage.Store, roster *config.Roster) error {
	records, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}
	if len(records) > 0 {
		return nil
	}
	defaults, err := roster.Records(cfg.Location)
	if err != nil {
		return err
	}
	return store.Save(ctx, defaults)
}

func runSeed(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	roster, err := config.LoadRoster(cfg.RosterFile)
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}

	store, err := buildStore(roster)
	if err != nil {
		return err
	}
	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate store: %w", err)
	}

	records, err := roster.Records(cfg.Location)
	if err != nil {
		return err
	}
	if err := store.Save(ctx, records); err != nil {
		return err
	}

	for _, rec := range records {
		logger.Info().
			Str("boss", rec.Name).
			Str("last_spawn", core.FormatTime(rec.LastSpawn)).
			Float64("interval_minutes", rec.IntervalMinutes).
			Msg("seeded")
	}
	return nil
}
