package ssp

import (
	"errors"
	"fmt"

	"streambot/bot/common"
	"streambot/domain/entities"
)

// toBotError maps duel manager errors to what the user should read
func toBotError(err error, action string) *common.BotError {
	var insufficient *entities.InsufficientPointsError
	switch {
	case errors.As(err, &insufficient):
		return common.NewUserError(
			fmt.Sprintf("Not enough points! You have **%s**, stake: **%s**.",
				common.FormatPoints(insufficient.Balance), common.FormatPoints(insufficient.Required)),
			action+": insufficient points")
	case errors.Is(err, entities.ErrAlreadyInDuel):
		return common.NewUserError("You are already in an active game.", action+": already in duel")
	case errors.Is(err, entities.ErrDuelNotActive), errors.Is(err, entities.ErrDuelNotFound):
		return common.NewUserError("This challenge is no longer active.", action+": duel not active")
	case errors.Is(err, entities.ErrNotYourDuel):
		return common.NewUserError("This is not your challenge!", action+": not a participant")
	case errors.Is(err, entities.ErrSelfAccept):
		return common.NewUserError("You cannot accept your own challenge.", action+": self accept")
	case errors.Is(err, entities.ErrWeaponRequired):
		return common.NewUserError("Choose a weapon first!", action+": weapon missing")
	case errors.Is(err, entities.ErrInvalidWeapon):
		return common.NewUserError("That is not a weapon.", action+": invalid weapon")
	case errors.Is(err, entities.ErrInvalidWager):
		return common.NewUserError("That stake is not allowed.", action+": invalid wager")
	case errors.Is(err, entities.ErrWagerRequiresLink):
		return common.NewUserError(
			"Only linked accounts can join points battles.\nUse `/link` to connect your account.",
			action+": account not linked")
	default:
		return common.NewSystemError(err, action+" failed")
	}
}
