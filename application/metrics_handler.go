package application

import (
	"context"

	"streambot/domain/events"
)

// DuelMetricsHandler turns duel events into metrics
type DuelMetricsHandler struct {
	recorder DuelMetricsRecorder
}

// NewDuelMetricsHandler creates a new DuelMetricsHandler
func NewDuelMetricsHandler(recorder DuelMetricsRecorder) *DuelMetricsHandler {
	return &DuelMetricsHandler{recorder: recorder}
}

func (h *DuelMetricsHandler) HandleDuelStarted(ctx context.Context, event events.Event) error {
	if _, err := AssertEventType[events.DuelStartedEvent](event, "DuelStartedEvent"); err != nil {
		return err
	}
	h.recorder.RecordDuelStarted()
	return nil
}

func (h *DuelMetricsHandler) HandleDuelResolved(ctx context.Context, event events.Event) error {
	e, err := AssertEventType[events.DuelResolvedEvent](event, "DuelResolvedEvent")
	if err != nil {
		return err
	}
	h.recorder.RecordDuelResolved(string(e.Resolution.Outcome), e.Resolution.Transferred)
	return nil
}

func (h *DuelMetricsHandler) HandleDuelExpired(ctx context.Context, event events.Event) error {
	e, err := AssertEventType[events.DuelExpiredEvent](event, "DuelExpiredEvent")
	if err != nil {
		return err
	}
	h.recorder.RecordDuelExpired(string(e.State))
	return nil
}
