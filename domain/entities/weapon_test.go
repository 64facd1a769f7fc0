package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		first  Weapon
		second Weapon
		want   Outcome
	}{
		{WeaponRock, WeaponScissors, OutcomeFirstWins},
		{WeaponScissors, WeaponPaper, OutcomeFirstWins},
		{WeaponPaper, WeaponRock, OutcomeFirstWins},
		{WeaponScissors, WeaponRock, OutcomeSecondWins},
		{WeaponPaper, WeaponScissors, OutcomeSecondWins},
		{WeaponRock, WeaponPaper, OutcomeSecondWins},
		{WeaponRock, WeaponRock, OutcomeTie},
		{WeaponPaper, WeaponPaper, OutcomeTie},
		{WeaponScissors, WeaponScissors, OutcomeTie},
	}

	for _, tt := range tests {
		t.Run(string(tt.first)+"_vs_"+string(tt.second), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ResolveRound(tt.first, tt.second))
		})
	}
}

func TestResolveRound_MirrorsWhenSwapped(t *testing.T) {
	t.Parallel()

	for _, a := range Weapons {
		for _, b := range Weapons {
			assert.Equal(t, ResolveRound(a, b).Mirror(), ResolveRound(b, a), "%s vs %s", a, b)
			assert.Equal(t, ResolveRound(a, b), ResolveRound(a, b), "deterministic for %s vs %s", a, b)
		}
	}
}

func TestWeapon_NoWeaponBeatsItself(t *testing.T) {
	t.Parallel()

	for _, w := range Weapons {
		assert.False(t, w.Beats(w), "%s beats itself", w)
	}
}

func TestParseWeapon(t *testing.T) {
	t.Parallel()

	w, err := ParseWeapon("paper")
	require.NoError(t, err)
	assert.Equal(t, WeaponPaper, w)

	_, err = ParseWeapon("lizard")
	assert.ErrorIs(t, err, ErrInvalidWeapon)

	_, err = ParseWeapon("")
	assert.ErrorIs(t, err, ErrInvalidWeapon)
}
