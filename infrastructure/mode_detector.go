package infrastructure

import (
	"context"
	"sync"
	"time"

	"streambot/domain/entities"

	log "github.com/sirupsen/logrus"
)

// HealthChecker is anything that can tell whether the visualizer is up
type HealthChecker interface {
	Configured() bool
	Health(ctx context.Context) error
}

// ModeDetector caches whether the bot runs against the visualizer API or
// standalone. A cached result older than the interval is re-checked on read.
type ModeDetector struct {
	checker  HealthChecker
	interval time.Duration
	now      func() time.Time

	mu        sync.Mutex
	mode      entities.ConnectionMode
	checkedAt time.Time
}

// NewModeDetector creates a detector that starts in unknown mode
func NewModeDetector(checker HealthChecker, interval time.Duration) *ModeDetector {
	return &ModeDetector{
		checker:  checker,
		interval: interval,
		now:      time.Now,
		mode:     entities.ModeUnknown,
	}
}

// Mode returns the current mode, re-checking when the cached value is stale
func (d *ModeDetector) Mode() entities.ConnectionMode {
	d.mu.Lock()
	stale := d.mode == entities.ModeUnknown || d.now().Sub(d.checkedAt) >= d.interval
	mode := d.mode
	d.mu.Unlock()

	if !stale {
		return mode
	}
	return d.Refresh(context.Background())
}

// Cached returns the last known mode without triggering a check
func (d *ModeDetector) Cached() entities.ConnectionMode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode
}

// Refresh checks the visualizer now and stores the result
func (d *ModeDetector) Refresh(ctx context.Context) entities.ConnectionMode {
	mode := entities.ModeStandalone
	if d.checker.Configured() {
		if err := d.checker.Health(ctx); err != nil {
			log.WithError(err).Debug("Visualizer health check failed")
		} else {
			mode = entities.ModeAPI
		}
	}

	d.mu.Lock()
	previous := d.mode
	d.mode = mode
	d.checkedAt = d.now()
	d.mu.Unlock()

	if previous != mode {
		log.WithFields(log.Fields{
			"previous": previous,
			"mode":     mode,
		}).Info("Connection mode changed")
	}
	return mode
}

// Run refreshes the mode on every interval until ctx is cancelled
func (d *ModeDetector) Run(ctx context.Context) error {
	d.Refresh(ctx)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			d.Refresh(ctx)
		}
	}
}
