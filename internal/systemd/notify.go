// Package systemd reports service state to systemd through sd_notify.
//
// Every call is a no-op when the process was not started by systemd with
// Type=notify (NOTIFY_SOCKET unset).
package systemd

import (
	"context"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/smazurov/framefit/internal/logging"
)

// Ready tells systemd the service finished starting.
func Ready() bool {
	return notify(daemon.SdNotifyReady)
}

// Stopping tells systemd the service is shutting down.
func Stopping() bool {
	return notify(daemon.SdNotifyStopping)
}

// Status sets the free-form status line shown by systemctl status.
func Status(status string) bool {
	return notify("STATUS=" + status)
}

// Watchdog pings the systemd watchdog at half the configured interval until
// ctx is cancelled. It returns immediately when no watchdog is configured.
func Watchdog(ctx context.Context) {
	interval, err := daemon.SdWatchdogEnabled(false)
	if err != nil {
		logging.GetLogger("systemd").Warn("Invalid watchdog configuration", "error", err)
		return
	}
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			notify(daemon.SdNotifyWatchdog)
		}
	}
}

func notify(state string) bool {
	sent, err := daemon.SdNotify(false, state)
	if err != nil {
		logging.GetLogger("systemd").Warn("sd_notify failed", "state", state, "error", err)
	}
	return sent
}
