package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// slashCommands lists every slash command the bot serves
func slashCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "ssp",
			Description: "Challenge someone to rock paper scissors",
		},
		{
			Name:        "points",
			Description: "Check your current points",
		},
	}
}

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	appID := b.config.ApplicationID
	if appID == "" {
		appID = b.session.State.User.ID
	}

	for _, cmd := range slashCommands() {
		created, err := b.session.ApplicationCommandCreate(appID, b.config.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
		b.commandIDs = append(b.commandIDs, created.ID)
	}

	log.WithFields(log.Fields{
		"commands": len(b.commandIDs),
		"guildID":  b.config.GuildID,
	}).Info("Registered slash commands")
	return nil
}
