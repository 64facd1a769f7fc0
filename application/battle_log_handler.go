package application

import (
	"context"
	"sync"
	"time"

	"streambot/domain/entities"
	"streambot/domain/events"
	"streambot/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

const battleReportTimeout = 45 * time.Second

// BattleLogHandler forwards resolved duels to the visualizer. Delivery runs
// detached so the duel flow never waits on the visualizer.
type BattleLogHandler struct {
	ledger   interfaces.PointsLedger
	reporter interfaces.BattleReporter
	wg       sync.WaitGroup
}

// NewBattleLogHandler creates a new BattleLogHandler
func NewBattleLogHandler(ledger interfaces.PointsLedger, reporter interfaces.BattleReporter) *BattleLogHandler {
	return &BattleLogHandler{
		ledger:   ledger,
		reporter: reporter,
	}
}

// HandleDuelResolved builds and sends the battle report in the background.
// Ledger lookups happen there too, off the resolving caller's path.
func (h *BattleLogHandler) HandleDuelResolved(ctx context.Context, event events.Event) error {
	e, err := AssertEventType[events.DuelResolvedEvent](event, "DuelResolvedEvent")
	if err != nil {
		return err
	}

	resolution := e.Resolution
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), battleReportTimeout)
		defer cancel()

		report := h.BuildReport(ctx, &resolution)
		if err := h.reporter.ReportBattle(ctx, report); err != nil {
			log.WithFields(log.Fields{
				"duelID": resolution.DuelID,
				"error":  err,
			}).Warn("Failed to report battle to visualizer")
		}
	}()
	return nil
}

// BuildReport converts a resolution into the visualizer payload
func (h *BattleLogHandler) BuildReport(ctx context.Context, resolution *entities.DuelResolution) *entities.BattleReport {
	player1 := h.player(ctx, resolution.Challenger, resolution.ChallengerWeapon)
	player2 := h.player(ctx, resolution.Opponent, resolution.OpponentWeapon)

	report := &entities.BattleReport{
		Player1:   player1,
		Player2:   player2,
		Result:    resolution.Outcome,
		PointsWon: resolution.Transferred,
	}

	switch resolution.Outcome {
	case entities.OutcomeFirstWins:
		report.Winner = winnerName(player1)
	case entities.OutcomeSecondWins:
		report.Winner = winnerName(player2)
	}
	return report
}

// Wait blocks until every in-flight report has finished
func (h *BattleLogHandler) Wait() {
	h.wg.Wait()
}

func (h *BattleLogHandler) player(ctx context.Context, p entities.Participant, weapon entities.Weapon) entities.BattlePlayer {
	player := entities.BattlePlayer{
		DiscordUsername: p.DisplayName,
		TwitchUsername:  p.DisplayName,
		Choice:          weapon,
	}
	if account := h.ledger.GetAccount(ctx, p.DiscordID); account != nil && account.ChatUsername != "" {
		player.TwitchUsername = account.ChatUsername
	}
	return player
}

func winnerName(p entities.BattlePlayer) *string {
	name := p.TwitchUsername
	return &name
}
