package entities

import "fmt"

// Weapon is one of the three rock-paper-scissors choices
type Weapon string

const (
	WeaponRock     Weapon = "rock"
	WeaponPaper    Weapon = "paper"
	WeaponScissors Weapon = "scissors"
)

// Weapons lists every weapon in display order
var Weapons = []Weapon{WeaponScissors, WeaponRock, WeaponPaper}

// beats maps each weapon to the weapon it defeats
var beats = map[Weapon]Weapon{
	WeaponScissors: WeaponPaper,
	WeaponRock:     WeaponScissors,
	WeaponPaper:    WeaponRock,
}

// ParseWeapon converts a raw component value into a Weapon
func ParseWeapon(raw string) (Weapon, error) {
	w := Weapon(raw)
	if !w.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidWeapon, raw)
	}
	return w, nil
}

// IsValid reports whether w is one of the three weapons
func (w Weapon) IsValid() bool {
	_, ok := beats[w]
	return ok
}

// Beats reports whether w defeats other
func (w Weapon) Beats(other Weapon) bool {
	return beats[w] == other
}

// Emoji returns the icon used in embeds and select menus
func (w Weapon) Emoji() string {
	switch w {
	case WeaponScissors:
		return "✂️"
	case WeaponRock:
		return "🪨"
	case WeaponPaper:
		return "📄"
	default:
		return "❔"
	}
}

// Label returns the display name of the weapon
func (w Weapon) Label() string {
	switch w {
	case WeaponScissors:
		return "Scissors"
	case WeaponRock:
		return "Rock"
	case WeaponPaper:
		return "Paper"
	default:
		return "Unknown"
	}
}

// Outcome is the result of a single round seen from the first weapon's side
type Outcome string

const (
	OutcomeTie        Outcome = "tie"
	OutcomeFirstWins  Outcome = "p1"
	OutcomeSecondWins Outcome = "p2"
)

// ResolveRound returns the outcome of first against second.
// Both weapons must be valid.
func ResolveRound(first, second Weapon) Outcome {
	switch {
	case first == second:
		return OutcomeTie
	case first.Beats(second):
		return OutcomeFirstWins
	default:
		return OutcomeSecondWins
	}
}

// Mirror returns the outcome as seen from the other side
func (o Outcome) Mirror() Outcome {
	switch o {
	case OutcomeFirstWins:
		return OutcomeSecondWins
	case OutcomeSecondWins:
		return OutcomeFirstWins
	default:
		return OutcomeTie
	}
}
