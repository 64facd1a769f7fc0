package ssp

import (
	"fmt"
	"time"

	"streambot/bot/common"
	"streambot/domain/entities"

	"github.com/bwmarrin/discordgo"
)

// BuildChallengeEmbed creates the public open challenge
func BuildChallengeEmbed(duel *entities.Duel, acceptTimeout time.Duration) *discordgo.MessageEmbed {
	stake := "🆓 Free round"
	color := common.ColorBattle
	if duel.Wager > 0 {
		stake = fmt.Sprintf("💰 **Stake: %s**", common.PluralPoints(duel.Wager))
		color = common.ColorGold
	}

	return &discordgo.MessageEmbed{
		Title: "⚔️ Battle challenge!",
		Description: fmt.Sprintf("**%s** is looking for an opponent!\n\n%s\n\nWho accepts the challenge?",
			duel.Challenger.DisplayName, stake),
		Color: color,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Expires in %s", common.FormatDuration(acceptTimeout)),
		},
	}
}

// BuildExpiredEmbed replaces a challenge nobody finished in time
func BuildExpiredEmbed(duel *entities.Duel, reason entities.ExpiryReason, after time.Duration) *discordgo.MessageEmbed {
	description := fmt.Sprintf("No opponent found (%s timeout).", common.FormatDuration(after))
	if reason == entities.ExpiryWeaponNotChosen && duel.Opponent != nil {
		description = fmt.Sprintf("**%s** did not choose a weapon in time (%s timeout).",
			duel.Opponent.DisplayName, common.FormatDuration(after))
	}

	return &discordgo.MessageEmbed{
		Title:       "⏰ Challenge expired",
		Description: description,
		Color:       common.ColorMuted,
	}
}

// BuildResultEmbed announces the outcome of a duel
func BuildResultEmbed(r *entities.DuelResolution) *discordgo.MessageEmbed {
	w1, w2 := r.ChallengerWeapon, r.OpponentWeapon

	var line string
	color := common.ColorBattle
	switch r.Outcome {
	case entities.OutcomeFirstWins:
		line = fmt.Sprintf("🏆 **%s** wins! %s beats %s", r.Challenger.DisplayName, w1.Emoji(), w2.Emoji())
	case entities.OutcomeSecondWins:
		line = fmt.Sprintf("🏆 **%s** wins! %s beats %s", r.Opponent.DisplayName, w2.Emoji(), w1.Emoji())
	default:
		line = fmt.Sprintf("🤝 **Tie!** Both chose %s %s.", w1.Emoji(), w1.Label())
		color = common.ColorTie
	}

	embed := &discordgo.MessageEmbed{
		Title: "⚔️ Rock Paper Scissors: Result",
		Description: fmt.Sprintf("**%s** %s **vs** %s **%s**\n\n%s",
			r.Challenger.DisplayName, w1.Emoji(), w2.Emoji(), r.Opponent.DisplayName, line),
		Color: color,
	}

	if winner := r.Winner(); winner != nil && r.Wager > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "💰 Points",
			Value: fmt.Sprintf("**%s** receives **%s**!", winner.DisplayName, common.PluralPoints(r.Transferred)),
		})
	}
	return embed
}

// BuildOpponentResultContent is the private message the opponent sees after choosing
func BuildOpponentResultContent(r *entities.DuelResolution) string {
	switch r.Outcome {
	case entities.OutcomeSecondWins:
		if r.Transferred > 0 {
			return fmt.Sprintf("🏆 You won! +%s", common.PluralPoints(r.Transferred))
		}
		return "🏆 You won!"
	case entities.OutcomeFirstWins:
		if r.Transferred > 0 {
			return fmt.Sprintf("😢 You lost. -%s", common.PluralPoints(r.Transferred))
		}
		return "😢 You lost."
	default:
		return "🤝 Tie!"
	}
}

// BuildAcceptedContent is the private weapon prompt shown to the opponent
func BuildAcceptedContent(duel *entities.Duel) string {
	stake := ""
	if duel.Wager > 0 {
		stake = fmt.Sprintf(" for **%s**", common.PluralPoints(duel.Wager))
	}
	return fmt.Sprintf("⚔️ You are fighting **%s**%s!\nChoose your weapon:", duel.Challenger.DisplayName, stake)
}

// BuildConfirmedContent replaces the configuration view once the challenge is public
func BuildConfirmedContent(duel *entities.Duel) string {
	return fmt.Sprintf("✅ Challenge sent! Your weapon: %s\n*Waiting for an opponent...*", duel.ChallengerWeapon.Emoji())
}
