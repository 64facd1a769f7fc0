package ssp

import (
	"testing"

	"streambot/domain/entities"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCustomID(t *testing.T) {
	tests := []struct {
		customID string
		action   Action
		duelID   string
		ok       bool
	}{
		{"ssp_wc_1700000000000_1", ActionChallengerWeapon, "1700000000000_1", true},
		{"ssp_pts_1700000000000_12", ActionWager, "1700000000000_12", true},
		{"ssp_confirm_1_2", ActionConfirm, "1_2", true},
		{"ssp_accept_1_2", ActionAccept, "1_2", true},
		{"ssp_wd_1_2", ActionOpponentWeapon, "1_2", true},
		{"ssp_wd_", "", "", false},
		{"ssp_unknown_1_2", "", "", false},
		{"bet_1_2", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.customID, func(t *testing.T) {
			action, duelID, ok := ParseCustomID(tt.customID)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.action, action)
			assert.Equal(t, tt.duelID, duelID)
		})
	}
}

func TestBuildConfigComponents(t *testing.T) {
	tiers := entities.WagerTiers{Step: 10, Max: 100}

	t.Run("linked challenger gets a stake select", func(t *testing.T) {
		rows := BuildConfigComponents("1_1", true, tiers)
		require.Len(t, rows, 3)

		weapons := rows[0].(discordgo.ActionsRow).Components[0].(discordgo.SelectMenu)
		assert.Equal(t, "ssp_wc_1_1", weapons.CustomID)
		require.Len(t, weapons.Options, 3)
		assert.Equal(t, "scissors", weapons.Options[0].Value)

		stakes := rows[1].(discordgo.ActionsRow).Components[0].(discordgo.SelectMenu)
		assert.Equal(t, "ssp_pts_1_1", stakes.CustomID)
		require.Len(t, stakes.Options, 11)
		assert.True(t, stakes.Options[0].Default)
		assert.Equal(t, "0", stakes.Options[0].Value)
		assert.Equal(t, "100", stakes.Options[10].Value)
		assert.Equal(t, "100 points", stakes.Options[10].Label)

		confirm := rows[2].(discordgo.ActionsRow).Components[0].(discordgo.Button)
		assert.Equal(t, "ssp_confirm_1_1", confirm.CustomID)
	})

	t.Run("unlinked challenger only picks a weapon", func(t *testing.T) {
		rows := BuildConfigComponents("1_1", false, tiers)
		require.Len(t, rows, 2)
		confirm := rows[1].(discordgo.ActionsRow).Components[0].(discordgo.Button)
		assert.Equal(t, "ssp_confirm_1_1", confirm.CustomID)
		assert.Contains(t, BuildConfigContent(false), "/link")
	})
}

func TestBuildDisabledAcceptComponents(t *testing.T) {
	rows := BuildDisabledAcceptComponents("1_1")
	button := rows[0].(discordgo.ActionsRow).Components[0].(discordgo.Button)
	assert.True(t, button.Disabled)
	assert.Equal(t, "ssp_accept_1_1", button.CustomID)
}

func TestBuildOpponentWeaponComponents(t *testing.T) {
	rows := BuildOpponentWeaponComponents("7_3")
	require.Len(t, rows, 1)

	menu := rows[0].(discordgo.ActionsRow).Components[0].(discordgo.SelectMenu)
	assert.Equal(t, "ssp_wd_7_3", menu.CustomID)
	require.Len(t, menu.Options, len(entities.Weapons))
	for i, w := range entities.Weapons {
		assert.Equal(t, string(w), menu.Options[i].Value)
	}

	action, duelID, ok := ParseCustomID(menu.CustomID)
	require.True(t, ok)
	assert.Equal(t, ActionOpponentWeapon, action)
	assert.Equal(t, "7_3", duelID)
}

func TestBuildAcceptComponents(t *testing.T) {
	rows := BuildAcceptComponents("7_3")
	button := rows[0].(discordgo.ActionsRow).Components[0].(discordgo.Button)
	assert.False(t, button.Disabled)
	assert.Equal(t, "ssp_accept_7_3", button.CustomID)
}
