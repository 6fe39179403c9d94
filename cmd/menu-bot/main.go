package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ressharu/menu-bot/internal/board"
	"github.com/ressharu/menu-bot/internal/config"
	"github.com/ressharu/menu-bot/internal/daemon"
	"github.com/ressharu/menu-bot/internal/menu"
	"github.com/ressharu/menu-bot/pkg/dateutil"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath string
	logger     *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "menu-bot",
		Short: "Cafeteria weekly menu fetcher",
		Long:  "Fetches the cafeteria menu feed and shows this week's and other weeks' daily specials",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load config to get log file path
			cfg, err := config.Load(configPath)
			if err == nil && cfg.Daemon.LogFile != "" {
				logger, err = initFileLogger(cfg.Daemon.LogFile, cfg.Daemon.LogLevel)
				if err != nil {
					initLogger() // Fallback to console
				}
			} else {
				initLogger() // Default console logger
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Config file path")

	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(daemonCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func showCmd() *cobra.Command {
	var week string
	var dateStr string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Fetch the feed and print the weekly menus",
		RunE: func(cmd *cobra.Command, args []string) error {
			if week != "current" && week != "other" && week != "both" {
				return fmt.Errorf("--week must be current, other or both, got %q", week)
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			manager, err := initializeManager(cfg)
			if err != nil {
				return err
			}

			loc := cfg.Menu.GetLocation()
			today := dateutil.Today(loc)
			if dateStr != "" {
				today, err = dateutil.ParseDate(dateStr, loc)
				if err != nil {
					return fmt.Errorf("failed to parse --date: %w", err)
				}
			}

			logger.Info("Showing menu board",
				zap.Time("today", today),
				zap.String("week", week))

			b := manager.Refresh(context.Background(), today)

			renderBoard(os.Stdout, b, manager.Classifier(), week)
			return nil
		},
	}

	cmd.Flags().StringVar(&week, "week", "both", "Which bucket to print: current, other or both")
	cmd.Flags().StringVar(&dateStr, "date", "", "Classify against this date instead of today (YYYY-MM-DD)")

	return cmd
}

func daemonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Keep the menu board refreshed on a schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			manager, err := initializeManager(cfg)
			if err != nil {
				return err
			}

			hour, minute := cfg.Daemon.GetDailyTime()
			d := daemon.New(
				manager,
				cfg.Daemon.GetRefreshInterval(),
				hour, minute,
				cfg.Menu.GetLocation(),
				cfg.Daemon.SystemTray,
				logger,
			)

			return d.Start()
		},
	}
}

func initializeManager(cfg *config.Config) (*board.Manager, error) {
	client := menu.NewClient(
		cfg.Menu.BaseURL,
		cfg.Fetch.GetTimeout(),
		cfg.Fetch.Retries,
		cfg.Fetch.GetCacheTTL(),
		logger,
	)

	snapshot := menu.NewFileSource(cfg.State.SnapshotFile, logger)
	source := menu.NewCompositeSource(client, snapshot, logger)

	classifier := menu.NewClassifier(
		cfg.Menu.ReferenceYear,
		cfg.Menu.Locale,
		cfg.Menu.GetLocation(),
	)

	state := board.NewStateManager(cfg.State.BoardFile, logger)
	if err := state.Load(); err != nil {
		return nil, fmt.Errorf("failed to load board state: %w", err)
	}

	return board.NewManager(source, classifier, state, logger), nil
}

func initLogger() {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,  // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
