package daemon

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/ressharu/menu-bot/internal/board"
	"github.com/ressharu/menu-bot/pkg/dateutil"
	"go.uber.org/zap"
)

// Daemon keeps the menu board fresh: it refreshes on an interval, at a
// configured daily time, or both
type Daemon struct {
	manager         *board.Manager
	refreshInterval time.Duration // 0 disables interval mode
	dailyHour       int
	dailyMinute     int
	location        *time.Location
	systemTray      bool
	logger          *zap.Logger
	ctx             context.Context
	cancel          context.CancelFunc
	trayApp         *TrayApp

	mu          sync.Mutex
	lastRunDate string // guards against refreshing twice on the same scheduled day
	lastBoard   board.Board
}

// New creates a daemon
func New(manager *board.Manager, refreshInterval time.Duration, dailyHour, dailyMinute int, location *time.Location, systemTray bool, logger *zap.Logger) *Daemon {
	ctx, cancel := context.WithCancel(context.Background())

	if location == nil {
		location = time.Local
	}

	return &Daemon{
		manager:         manager,
		refreshInterval: refreshInterval,
		dailyHour:       dailyHour,
		dailyMinute:     dailyMinute,
		location:        location,
		systemTray:      systemTray,
		logger:          logger,
		ctx:             ctx,
		cancel:          cancel,
	}
}

// Start starts the daemon, blocking until shutdown
func (d *Daemon) Start() error {
	if d.systemTray {
		d.logger.Info("Initializing system tray")
		trayApp, err := NewTrayApp(d, d.logger)
		if err != nil {
			d.logger.Warn("Failed to initialize system tray", zap.Error(err))
			d.run()
			return nil
		}
		d.trayApp = trayApp
		// Blocks until Quit
		d.trayApp.Run()
		return nil
	}

	d.run()
	return nil
}

// run is the scheduling loop (called directly or from the tray)
func (d *Daemon) run() {
	d.logger.Info("Daemon started",
		zap.Duration("refresh_interval", d.refreshInterval),
		zap.Int("daily_hour", d.dailyHour),
		zap.Int("daily_minute", d.dailyMinute),
		zap.String("timezone", d.location.String()))

	// Refresh immediately if today's scheduled time already passed
	now := time.Now().In(d.location)
	scheduledToday := time.Date(now.Year(), now.Month(), now.Day(),
		d.dailyHour, d.dailyMinute, 0, 0, d.location)
	if now.After(scheduledToday) {
		d.RefreshNow()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Minute ticker drives the daily schedule; optional interval ticker
	// drives periodic refreshes in between
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	var intervalCh <-chan time.Time
	if d.refreshInterval > 0 {
		intervalTicker := time.NewTicker(d.refreshInterval)
		defer intervalTicker.Stop()
		intervalCh = intervalTicker.C
	}

	for {
		select {
		case <-d.ctx.Done():
			d.logger.Info("Daemon stopped")
			if d.trayApp != nil {
				d.trayApp.Stop()
			}
			return

		case sig := <-sigChan:
			d.logger.Info("Received signal, shutting down",
				zap.String("signal", sig.String()))
			if d.trayApp != nil {
				d.trayApp.Stop()
			}
			d.Stop()
			return

		case <-intervalCh:
			d.RefreshNow()

		case now := <-ticker.C:
			now = now.In(d.location)
			if now.Hour() != d.dailyHour || now.Minute() != d.dailyMinute {
				continue
			}

			today := now.Format("2006-01-02")
			d.mu.Lock()
			alreadyRan := d.lastRunDate == today
			d.mu.Unlock()
			if alreadyRan {
				d.logger.Debug("Already refreshed today, skipping")
				continue
			}

			d.logger.Info("Starting scheduled refresh", zap.Time("time", now))
			d.RefreshNow()

			d.mu.Lock()
			d.lastRunDate = today
			d.mu.Unlock()
		}
	}
}

// RefreshNow refreshes the board immediately
func (d *Daemon) RefreshNow() {
	today := dateutil.Today(d.location)
	b := d.manager.Refresh(d.ctx, today)

	d.mu.Lock()
	d.lastBoard = b
	d.mu.Unlock()

	if d.trayApp != nil {
		if b.Empty() {
			d.trayApp.ShowNotification("Menu", "No menus available")
		} else {
			d.trayApp.ShowNotification("Menu updated", "Weekly menus refreshed")
		}
	}
}

// LastBoard returns the most recently refreshed board
func (d *Daemon) LastBoard() board.Board {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastBoard
}

// Stop stops the daemon
func (d *Daemon) Stop() {
	d.cancel()
}
