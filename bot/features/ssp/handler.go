package ssp

import (
	"context"
	"strconv"

	"streambot/bot/common"
	"streambot/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// handleStart opens a duel and shows the private configuration view
func (f *Feature) handleStart(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	userID := common.InteractionUserID(i)

	duel, err := f.duels.StartDuel(ctx, userID, common.InteractionDisplayName(i), i.ChannelID)
	if err != nil {
		common.HandleError(s, i, toBotError(err, "start duel"), false)
		return
	}

	linked := duel.Challenger.Linked
	err = common.RespondEphemeral(s, i,
		BuildConfigContent(linked),
		BuildConfigComponents(duel.ID, linked, f.duels.WagerTiers()))
	if err != nil {
		log.Errorf("Error responding to ssp command: %v", err)
	}
}

// handleChallengerWeapon stores the challenger's weapon selection
func (f *Feature) handleChallengerWeapon(s *discordgo.Session, i *discordgo.InteractionCreate, duelID, value string) {
	weapon, err := entities.ParseWeapon(value)
	if err == nil {
		err = f.duels.SetChallengerWeapon(context.Background(), duelID, common.InteractionUserID(i), weapon)
	}
	if err != nil {
		common.HandleError(s, i, toBotError(err, "choose weapon"), false)
		return
	}

	if err := common.DeferUpdate(s, i); err != nil {
		log.Errorf("Error acknowledging weapon selection: %v", err)
	}
}

// handleWager stores the challenger's stake selection
func (f *Feature) handleWager(s *discordgo.Session, i *discordgo.InteractionCreate, duelID, value string) {
	amount, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		common.HandleError(s, i, toBotError(entities.ErrInvalidWager, "choose wager"), false)
		return
	}

	if err := f.duels.SetWager(context.Background(), duelID, common.InteractionUserID(i), amount); err != nil {
		common.HandleError(s, i, toBotError(err, "choose wager"), false)
		return
	}

	if err := common.DeferUpdate(s, i); err != nil {
		log.Errorf("Error acknowledging wager selection: %v", err)
	}
}

// handleConfirm publishes the challenge. Posting talks to Discord, so the
// interaction is acknowledged first and the private view edited afterwards.
func (f *Feature) handleConfirm(s *discordgo.Session, i *discordgo.InteractionCreate, duelID string) {
	if err := common.DeferUpdate(s, i); err != nil {
		log.Errorf("Error deferring confirm: %v", err)
		return
	}

	duel, err := f.duels.Confirm(context.Background(), duelID, common.InteractionUserID(i))
	if err != nil {
		common.HandleError(s, i, toBotError(err, "confirm duel"), true)
		return
	}

	if err := common.EditResponse(s, i, BuildConfirmedContent(duel), nil); err != nil {
		log.Errorf("Error updating configuration view: %v", err)
	}
}

// handleAccept binds the caller as opponent and prompts for their weapon
func (f *Feature) handleAccept(s *discordgo.Session, i *discordgo.InteractionCreate, duelID string) {
	if err := common.DeferResponse(s, i, true); err != nil {
		log.Errorf("Error deferring accept: %v", err)
		return
	}

	duel, err := f.duels.Accept(context.Background(), duelID, common.InteractionUserID(i), common.InteractionDisplayName(i))
	if err != nil {
		common.EditWithError(s, i, toBotError(err, "accept duel"))
		return
	}

	err = common.EditResponse(s, i, BuildAcceptedContent(duel), BuildOpponentWeaponComponents(duel.ID))
	if err != nil {
		log.WithFields(log.Fields{
			"duelID": duel.ID,
			"error":  err,
		}).Error("Failed to prompt opponent for a weapon")
	}
}

// handleOpponentWeapon resolves the duel with the opponent's weapon
func (f *Feature) handleOpponentWeapon(s *discordgo.Session, i *discordgo.InteractionCreate, duelID, value string) {
	if err := common.DeferUpdate(s, i); err != nil {
		log.Errorf("Error deferring weapon choice: %v", err)
		return
	}

	weapon, err := entities.ParseWeapon(value)
	if err != nil {
		common.HandleError(s, i, toBotError(err, "resolve duel"), true)
		return
	}

	resolution, err := f.duels.ChooseOpponentWeapon(context.Background(), duelID, common.InteractionUserID(i), weapon)
	if err != nil {
		common.HandleError(s, i, toBotError(err, "resolve duel"), true)
		return
	}

	if err := common.EditResponse(s, i, BuildOpponentResultContent(resolution), nil); err != nil {
		log.Errorf("Error updating opponent view: %v", err)
	}
}
