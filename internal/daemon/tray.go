// +build windows

package daemon

import (
	"fmt"
	"syscall"
	"unsafe"

	"fyne.io/systray"
	"go.uber.org/zap"
)

var (
	user32      = syscall.NewLazyDLL("user32.dll")
	messageBoxW = user32.NewProc("MessageBoxW")
)

const (
	MB_OK              = 0x00000000
	MB_ICONINFORMATION = 0x00000040
)

// TrayApp represents the system tray application
type TrayApp struct {
	daemon *Daemon
	logger *zap.Logger
	quit   chan struct{}
}

// NewTrayApp creates a new system tray application
func NewTrayApp(daemon *Daemon, logger *zap.Logger) (*TrayApp, error) {
	return &TrayApp{
		daemon: daemon,
		logger: logger,
		quit:   make(chan struct{}),
	}, nil
}

// Run starts the system tray application (blocks until Quit)
func (t *TrayApp) Run() {
	systray.Run(t.onReady, t.onExit)
}

func (t *TrayApp) onReady() {
	if icon := getMenuIcon(); len(icon) > 0 {
		systray.SetIcon(icon)
	}
	systray.SetTitle("MB")
	systray.SetTooltip("Cafeteria Menu Bot")

	mRefreshNow := systray.AddMenuItem("Refresh Now", "Fetch the menu feed immediately")
	systray.AddSeparator()
	mShowMenu := systray.AddMenuItem("This Week", "Show this week's menu")
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Exit the application")

	// Start the scheduling loop in background
	go t.daemon.run()

	go func() {
		for {
			select {
			case <-mRefreshNow.ClickedCh:
				t.logger.Info("Refresh Now clicked from tray")
				go t.daemon.RefreshNow()
			case <-mShowMenu.ClickedCh:
				t.logger.Info("This Week clicked from tray")
				t.showCurrentWeek()
			case <-mQuit.ClickedCh:
				t.logger.Info("Quit clicked from tray")
				t.daemon.Stop()
				systray.Quit()
				return
			case <-t.quit:
				systray.Quit()
				return
			}
		}
	}()
}

func (t *TrayApp) onExit() {
	t.logger.Info("System tray exited")
}

// Stop stops the system tray application
func (t *TrayApp) Stop() {
	close(t.quit)
}

// ShowNotification shows a notification (Windows only)
func (t *TrayApp) ShowNotification(title, message string) {
	// fyne.io/systray doesn't have built-in notification support
	t.logger.Info("Notification", zap.String("title", title), zap.String("message", message))
}

// showCurrentWeek shows this week's menu in a message box
func (t *TrayApp) showCurrentWeek() {
	b := t.daemon.LastBoard()

	if len(b.CurrentWeek) == 0 {
		showMessageBox("Cafeteria Menu", "No menu for this week")
		return
	}

	classifier := t.daemon.manager.Classifier()

	var message string
	for _, m := range b.CurrentWeek {
		for i, day := range m.Days {
			message += fmt.Sprintf("%d/%d (%s)  %s\n",
				m.Month, day, classifier.WeekdayLabel(m.Month, day), m.Caption(i))
		}
	}

	systray.SetTooltip(message)
	showMessageBox("Cafeteria Menu — This Week", message)
}

// getMenuIcon returns the tray icon bytes. Empty until an .ico is embedded;
// systray then falls back to a default icon.
func getMenuIcon() []byte {
	return nil
}

func showMessageBox(title, message string) {
	titlePtr, _ := syscall.UTF16PtrFromString(title)
	messagePtr, _ := syscall.UTF16PtrFromString(message)
	messageBoxW.Call(
		0,
		uintptr(unsafe.Pointer(messagePtr)),
		uintptr(unsafe.Pointer(titlePtr)),
		uintptr(MB_OK|MB_ICONINFORMATION),
	)
}
