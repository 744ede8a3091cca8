package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/teetime-scanner/internal/adapter"
	"github.com/pfrederiksen/teetime-scanner/internal/config"
	"github.com/pfrederiksen/teetime-scanner/internal/logger"
	"github.com/pfrederiksen/teetime-scanner/internal/metrics"
	"github.com/pfrederiksen/teetime-scanner/internal/notifier"
	"github.com/pfrederiksen/teetime-scanner/internal/scan"
	"github.com/pfrederiksen/teetime-scanner/internal/storage"
)

const (
	ExitSuccess    = 0
	ExitError      = 1
	ExitTimesFound = 2
)

// errTimesFound makes Execute exit with ExitTimesFound without printing an error.
var errTimesFound = errors.New("tee times found")

// rootOptions holds flags shared by every command.
type rootOptions struct {
	dataDir  string
	logLevel string
	verbose  bool
	dryRun   bool

	cfg config.Config
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "teetime-scanner",
		Short: "Find open tee times across golf course booking sites",
		Long: `A tool to scan golf course booking sites for available tee times.
Runs as an HTTP service or as a one-off scan from the command line.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if opts.dataDir != "" {
				cfg.DataDir = opts.dataDir
			}
			if opts.logLevel != "" {
				cfg.LogLevel = opts.logLevel
			}
			if opts.verbose {
				cfg.LogLevel = "debug"
			}
			if opts.dryRun {
				cfg.NotifyDryRun = true
			}
			opts.cfg = cfg
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "Data directory for the course list (default $DATA_DIR or "+config.DefaultDataDir+")")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (default $LOG_LEVEL or info)")
	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")
	cmd.PersistentFlags().BoolVar(&opts.dryRun, "dry-run", false, "Print webhook notifications instead of sending them")

	cmd.AddCommand(newServeCmd(opts), newScanCmd(opts), newCoursesCmd(opts))
	return cmd
}

// app is everything a command needs, built from config.
type app struct {
	log      *logger.Logger
	store    storage.CourseStore
	metrics  *metrics.Recorder
	registry *adapter.Registry
	scans    *scan.Service
	close    func()
}

func (o *rootOptions) openStore(ctx context.Context) (storage.CourseStore, func(), error) {
	switch o.cfg.CourseStore {
	case config.StorePostgres:
		pg, err := storage.OpenPostgres(ctx, o.cfg.DBDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("initializing storage: %w", err)
		}
		return pg, pg.Close, nil
	default:
		fs, err := storage.NewFileStore(o.cfg.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("initializing storage: %w", err)
		}
		return fs, func() {}, nil
	}
}

// build wires the scan service. logOut receives structured logs.
func (o *rootOptions) build(ctx context.Context, logOut, notifyOut io.Writer) (*app, error) {
	log := logger.New(logger.ParseLevel(o.cfg.LogLevel), logOut)
	logger.SetDefault(log)

	store, closeStore, err := o.openStore(ctx)
	if err != nil {
		return nil, err
	}

	rec := metrics.NewRecorder()
	registry := adapter.DefaultRegistry(adapter.Options{
		Timeout:       o.cfg.UpstreamTimeout,
		Location:      o.cfg.TimeLocation(),
		RetryAttempts: o.cfg.RetryAttempts,
		RetryDelay:    o.cfg.RetryDelay,
		CacheTTL:      o.cfg.CacheTTL,
		Metrics:       rec,
	})

	var n notifier.Notifier = notifier.NewWebhookNotifier(nil)
	if o.cfg.NotifyDryRun {
		n = notifier.NewDryRunNotifier(notifyOut)
	}

	svc := scan.New(registry, scan.Options{
		Courses:         store,
		Notifier:        n,
		Metrics:         rec,
		Logger:          log,
		Concurrency:     o.cfg.ScanConcurrency,
		UpstreamTimeout: o.cfg.UpstreamTimeout,
		RetryAttempts:   o.cfg.RetryAttempts,
		RetryDelay:      o.cfg.RetryDelay,
		CourseTimeout:   o.cfg.CourseTimeout,
		MaxScanDays:     o.cfg.MaxScanDays,
	})

	log.Debug("configuration loaded", logger.Fields{
		"course_store": o.cfg.CourseStore,
		"data_dir":     o.cfg.DataDir,
		"adapters":     strings.Join(registry.Names(), ","),
		"concurrency":  o.cfg.ScanConcurrency,
	})

	return &app{
		log:      log,
		store:    store,
		metrics:  rec,
		registry: registry,
		scans:    svc,
		close:    closeStore,
	}, nil
}

// Execute runs the CLI
func Execute() {
	err := NewRootCmd().Execute()
	switch {
	case err == nil:
		os.Exit(ExitSuccess)
	case errors.Is(err, errTimesFound):
		os.Exit(ExitTimesFound)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
