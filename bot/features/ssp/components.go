package ssp

import (
	"fmt"
	"strconv"
	"strings"

	"streambot/domain/entities"

	"github.com/bwmarrin/discordgo"
)

// Custom ID prefixes. Every ID is prefix + duel ID, and duel IDs contain "_",
// so parsing strips a known prefix instead of splitting.
const (
	CustomIDPrefix = "ssp_"

	ChallengerWeaponPrefix = "ssp_wc_"
	WagerPrefix            = "ssp_pts_"
	ConfirmPrefix          = "ssp_confirm_"
	AcceptPrefix           = "ssp_accept_"
	OpponentWeaponPrefix   = "ssp_wd_"
)

// Action identifies which duel component was used
type Action string

const (
	ActionChallengerWeapon Action = "challenger_weapon"
	ActionWager            Action = "wager"
	ActionConfirm          Action = "confirm"
	ActionAccept           Action = "accept"
	ActionOpponentWeapon   Action = "opponent_weapon"
)

var actionPrefixes = []struct {
	prefix string
	action Action
}{
	{ChallengerWeaponPrefix, ActionChallengerWeapon},
	{WagerPrefix, ActionWager},
	{ConfirmPrefix, ActionConfirm},
	{AcceptPrefix, ActionAccept},
	{OpponentWeaponPrefix, ActionOpponentWeapon},
}

// ParseCustomID splits a component custom ID into its action and duel ID
func ParseCustomID(customID string) (Action, string, bool) {
	for _, p := range actionPrefixes {
		if duelID, ok := strings.CutPrefix(customID, p.prefix); ok && duelID != "" {
			return p.action, duelID, true
		}
	}
	return "", "", false
}

// weaponSelect builds a weapon select menu with the given custom ID
func weaponSelect(customID string) discordgo.SelectMenu {
	options := make([]discordgo.SelectMenuOption, 0, len(entities.Weapons))
	for _, w := range entities.Weapons {
		options = append(options, discordgo.SelectMenuOption{
			Label: fmt.Sprintf("%s %s", w.Emoji(), w.Label()),
			Value: string(w),
		})
	}

	return discordgo.SelectMenu{
		CustomID:    customID,
		Placeholder: "Choose your weapon...",
		Options:     options,
	}
}

// wagerSelect builds the stake select menu from the allowed tiers
func wagerSelect(duelID string, tiers entities.WagerTiers) discordgo.SelectMenu {
	amounts := tiers.Options()
	options := make([]discordgo.SelectMenuOption, 0, len(amounts))
	for _, amount := range amounts {
		label := fmt.Sprintf("%d points", amount)
		if amount == 0 {
			label = "Free round (0 points)"
		}
		options = append(options, discordgo.SelectMenuOption{
			Label:   label,
			Value:   strconv.FormatInt(amount, 10),
			Default: amount == 0,
		})
	}

	return discordgo.SelectMenu{
		CustomID:    WagerPrefix + duelID,
		Placeholder: "Points stake...",
		Options:     options,
	}
}

// BuildConfigComponents creates the challenger's private configuration view.
// Unlinked challengers only get the weapon select and confirm button.
func BuildConfigComponents(duelID string, linked bool, tiers entities.WagerTiers) []discordgo.MessageComponent {
	rows := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			weaponSelect(ChallengerWeaponPrefix + duelID),
		}},
	}

	if linked {
		rows = append(rows, discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			wagerSelect(duelID, tiers),
		}})
	}

	rows = append(rows, discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.Button{
			Label:    "Send challenge",
			Style:    discordgo.PrimaryButton,
			CustomID: ConfirmPrefix + duelID,
			Emoji:    &discordgo.ComponentEmoji{Name: "⚔️"},
		},
	}})

	return rows
}

// BuildConfigContent creates the text above the configuration components
func BuildConfigContent(linked bool) string {
	if linked {
		return "**⚔️ Configure your battle**\nChoose your weapon and, optionally, a points stake."
	}
	return "**⚔️ Configure your battle**\nChoose your weapon.\n*Points battles require a linked account → `/link`*"
}

// BuildAcceptComponents creates the accept button of an open challenge
func BuildAcceptComponents(duelID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "⚔️ Accept",
				Style:    discordgo.SuccessButton,
				CustomID: AcceptPrefix + duelID,
			},
		}},
	}
}

// BuildDisabledAcceptComponents replaces the accept button once someone took the challenge
func BuildDisabledAcceptComponents(duelID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "⚔️ Battle in progress...",
				Style:    discordgo.SecondaryButton,
				CustomID: AcceptPrefix + duelID,
				Disabled: true,
			},
		}},
	}
}

// BuildOpponentWeaponComponents creates the opponent's private weapon prompt
func BuildOpponentWeaponComponents(duelID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			weaponSelect(OpponentWeaponPrefix + duelID),
		}},
	}
}
