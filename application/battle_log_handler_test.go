package application

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"streambot/domain/entities"
	"streambot/domain/events"
	"streambot/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleResolution(outcome entities.Outcome) entities.DuelResolution {
	return entities.DuelResolution{
		DuelID:           "1700000000000_1",
		Outcome:          outcome,
		Challenger:       entities.Participant{DiscordID: "100", DisplayName: "Alice", Linked: true},
		Opponent:         entities.Participant{DiscordID: "200", DisplayName: "Bob"},
		ChallengerWeapon: entities.WeaponRock,
		OpponentWeapon:   entities.WeaponScissors,
		Wager:            30,
		Transferred:      20,
	}
}

func linkedLedger() *testhelpers.MockPointsLedger {
	ledger := new(testhelpers.MockPointsLedger)
	ledger.On("GetAccount", mock.Anything, "100").
		Return(&entities.PointsAccount{DiscordID: "100", ChatUsername: "alice_tv", Store: entities.PointsStoreProfile})
	ledger.On("GetAccount", mock.Anything, "200").
		Return(&entities.PointsAccount{DiscordID: "200", Store: entities.PointsStoreLocal})
	return ledger
}

func TestBattleLogHandler_BuildReport(t *testing.T) {
	tests := []struct {
		name    string
		outcome entities.Outcome
		winner  *string
	}{
		{name: "challenger wins uses chat username", outcome: entities.OutcomeFirstWins, winner: ptr("alice_tv")},
		{name: "opponent wins falls back to display name", outcome: entities.OutcomeSecondWins, winner: ptr("Bob")},
		{name: "tie has no winner", outcome: entities.OutcomeTie},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewBattleLogHandler(linkedLedger(), new(testhelpers.MockBattleReporter))
			resolution := sampleResolution(tt.outcome)

			report := handler.BuildReport(context.Background(), &resolution)

			assert.Equal(t, "Alice", report.Player1.DiscordUsername)
			assert.Equal(t, "alice_tv", report.Player1.TwitchUsername)
			assert.Equal(t, entities.WeaponRock, report.Player1.Choice)
			assert.Equal(t, "Bob", report.Player2.DiscordUsername)
			assert.Equal(t, "Bob", report.Player2.TwitchUsername)
			assert.Equal(t, entities.WeaponScissors, report.Player2.Choice)
			assert.Equal(t, tt.outcome, report.Result)
			assert.Equal(t, int64(20), report.PointsWon)
			assert.Equal(t, tt.winner, report.Winner)
		})
	}
}

func TestBattleLogHandler_HandleDuelResolved(t *testing.T) {
	reporter := new(testhelpers.MockBattleReporter)
	reporter.On("ReportBattle", mock.Anything, mock.MatchedBy(func(r *entities.BattleReport) bool {
		return r.Result == entities.OutcomeFirstWins && r.PointsWon == 20
	})).Return(errors.New("visualizer down"))

	handler := NewBattleLogHandler(linkedLedger(), reporter)

	err := handler.HandleDuelResolved(context.Background(), events.DuelResolvedEvent{
		Resolution: sampleResolution(entities.OutcomeFirstWins),
	})
	handler.Wait()

	assert.NoError(t, err)
	reporter.AssertNumberOfCalls(t, "ReportBattle", 1)
}

func TestBattleLogHandler_HandleDuelResolved_ReturnsBeforeLedgerLookups(t *testing.T) {
	release := make(chan time.Time)
	ledger := new(testhelpers.MockPointsLedger)
	ledger.On("GetAccount", mock.Anything, mock.Anything).
		WaitUntil(release).
		Return(&entities.PointsAccount{Store: entities.PointsStoreLocal})

	reporter := new(testhelpers.MockBattleReporter)
	reporter.On("ReportBattle", mock.Anything, mock.Anything).Return(nil)

	handler := NewBattleLogHandler(ledger, reporter)

	err := handler.HandleDuelResolved(context.Background(), events.DuelResolvedEvent{
		Resolution: sampleResolution(entities.OutcomeTie),
	})
	require.NoError(t, err)
	reporter.AssertNotCalled(t, "ReportBattle", mock.Anything, mock.Anything)

	close(release)
	handler.Wait()

	reporter.AssertNumberOfCalls(t, "ReportBattle", 1)
	ledger.AssertNumberOfCalls(t, "GetAccount", 2)
}

func TestBattleReport_UnlinkedPlayerJSON(t *testing.T) {
	handler := NewBattleLogHandler(linkedLedger(), new(testhelpers.MockBattleReporter))
	resolution := sampleResolution(entities.OutcomeSecondWins)

	data, err := json.Marshal(handler.BuildReport(context.Background(), &resolution))
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(data, &payload))
	player2 := payload["player2"].(map[string]any)
	assert.Equal(t, "Bob", player2["twitchUsername"])
	assert.Equal(t, "Bob", payload["winner"])
}

func TestBattleLogHandler_RejectsWrongEvent(t *testing.T) {
	handler := NewBattleLogHandler(new(testhelpers.MockPointsLedger), new(testhelpers.MockBattleReporter))

	err := handler.HandleDuelResolved(context.Background(), events.DuelStartedEvent{})
	assert.ErrorContains(t, err, "expected DuelResolvedEvent")
}

func ptr(s string) *string {
	return &s
}
