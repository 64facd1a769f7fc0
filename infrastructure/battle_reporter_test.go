package infrastructure

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"streambot/domain/entities"
	"streambot/domain/testhelpers"

	"github.com/stretchr/testify/assert"
)

type fakeBattlePoster struct {
	errs  []error
	calls int
}

func (f *fakeBattlePoster) PostBattle(ctx context.Context, report *entities.BattleReport) error {
	f.calls++
	if len(f.errs) == 0 {
		return nil
	}
	err := f.errs[0]
	f.errs = f.errs[1:]
	return err
}

func newTestReporter(poster BattlePoster, mode entities.ConnectionMode) *VisualizerBattleReporter {
	modes := new(testhelpers.MockModeProvider)
	modes.On("Mode").Return(mode)
	reporter := NewVisualizerBattleReporter(poster, modes, time.Second)
	reporter.initialDelay = time.Millisecond
	return reporter
}

func TestVisualizerBattleReporter_SkipsOutsideAPIMode(t *testing.T) {
	poster := &fakeBattlePoster{}
	reporter := newTestReporter(poster, entities.ModeStandalone)

	assert.NoError(t, reporter.ReportBattle(context.Background(), &entities.BattleReport{}))
	assert.Equal(t, 0, poster.calls)
}

func TestVisualizerBattleReporter_RetriesTransientErrors(t *testing.T) {
	poster := &fakeBattlePoster{errs: []error{
		errors.New("connection reset"),
		&APIError{StatusCode: http.StatusServiceUnavailable},
	}}
	reporter := newTestReporter(poster, entities.ModeAPI)

	assert.NoError(t, reporter.ReportBattle(context.Background(), &entities.BattleReport{}))
	assert.Equal(t, 3, poster.calls)
}

func TestVisualizerBattleReporter_ClientErrorIsPermanent(t *testing.T) {
	poster := &fakeBattlePoster{errs: []error{&APIError{StatusCode: http.StatusBadRequest}}}
	reporter := newTestReporter(poster, entities.ModeAPI)

	err := reporter.ReportBattle(context.Background(), &entities.BattleReport{})

	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 1, poster.calls)
}

func TestVisualizerBattleReporter_StopsOnCancelledContext(t *testing.T) {
	poster := &fakeBattlePoster{errs: []error{errors.New("down"), errors.New("down"), errors.New("down")}}
	reporter := newTestReporter(poster, entities.ModeAPI)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, reporter.ReportBattle(ctx, &entities.BattleReport{}))
	assert.LessOrEqual(t, poster.calls, 1)
}
