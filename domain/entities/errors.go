package entities

import (
	"errors"
	"fmt"
)

// Duel rejection reasons. Handlers compare against these with errors.Is.
var (
	ErrDuelNotFound       = errors.New("duel not found")
	ErrDuelNotActive      = errors.New("this challenge is no longer active")
	ErrNotYourDuel        = errors.New("this is not your challenge")
	ErrAlreadyInDuel      = errors.New("you already have an active challenge")
	ErrSelfAccept         = errors.New("you cannot accept your own challenge")
	ErrWeaponRequired     = errors.New("choose a weapon first")
	ErrInvalidWeapon      = errors.New("invalid weapon")
	ErrInvalidWager       = errors.New("invalid wager amount")
	ErrWagerRequiresLink  = errors.New("only linked accounts can play for points")
	ErrInsufficientPoints = errors.New("insufficient points")
)

// InsufficientPointsError reports the balance that failed a wager check
type InsufficientPointsError struct {
	Balance  int64
	Required int64
}

func (e *InsufficientPointsError) Error() string {
	return fmt.Sprintf("insufficient points: have %d, need %d", e.Balance, e.Required)
}

// Is lets errors.Is match the ErrInsufficientPoints sentinel
func (e *InsufficientPointsError) Is(target error) bool {
	return target == ErrInsufficientPoints
}
