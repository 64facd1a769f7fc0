package infrastructure

import (
	"context"
	"errors"
	"time"

	"streambot/domain/entities"
	"streambot/domain/interfaces"

	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"
)

// BattlePoster sends a single battle report
type BattlePoster interface {
	PostBattle(ctx context.Context, report *entities.BattleReport) error
}

// VisualizerBattleReporter posts battle reports while the bot runs in API
// mode, retrying transient failures with exponential backoff
type VisualizerBattleReporter struct {
	poster         BattlePoster
	modes          interfaces.ModeProvider
	maxElapsedTime time.Duration
	initialDelay   time.Duration
}

// NewVisualizerBattleReporter creates a reporter that gives up after maxElapsed
func NewVisualizerBattleReporter(poster BattlePoster, modes interfaces.ModeProvider, maxElapsed time.Duration) *VisualizerBattleReporter {
	return &VisualizerBattleReporter{
		poster:         poster,
		modes:          modes,
		maxElapsedTime: maxElapsed,
		initialDelay:   500 * time.Millisecond,
	}
}

// ReportBattle sends the report, or does nothing outside API mode
func (r *VisualizerBattleReporter) ReportBattle(ctx context.Context, report *entities.BattleReport) error {
	if mode := r.modes.Mode(); mode != entities.ModeAPI {
		log.WithField("mode", mode).Debug("Skipping battle report outside API mode")
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = r.initialDelay
	policy.MaxElapsedTime = r.maxElapsedTime

	attempt := 0
	operation := func() error {
		attempt++
		err := r.poster.PostBattle(ctx, report)
		if err == nil {
			return nil
		}

		var apiErr *APIError
		if errors.As(err, &apiErr) && !apiErr.Retryable() {
			return backoff.Permanent(err)
		}
		log.WithFields(log.Fields{
			"attempt": attempt,
			"error":   err,
		}).Warn("Battle report failed, retrying")
		return err
	}

	return backoff.Retry(operation, backoff.WithContext(policy, ctx))
}
