package ssp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"streambot/domain/entities"

	"github.com/bwmarrin/discordgo"
)

// MessageClient is the subset of *discordgo.Session the presenter uses
type MessageClient interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
}

var errNoChannel = errors.New("no channel to post duel messages to")

// Presenter renders duel transitions as Discord channel messages
type Presenter struct {
	client          MessageClient
	battleChannelID string
	acceptTimeout   time.Duration
}

// NewPresenter creates a presenter posting to battleChannelID, or to the
// channel a duel was started from when it is empty
func NewPresenter(client MessageClient, battleChannelID string, acceptTimeout time.Duration) *Presenter {
	return &Presenter{
		client:          client,
		battleChannelID: battleChannelID,
		acceptTimeout:   acceptTimeout,
	}
}

// PostOpenChallenge posts the public challenge with an accept button
func (p *Presenter) PostOpenChallenge(ctx context.Context, duel *entities.Duel) (*entities.PostRef, error) {
	channelID := p.channelFor(duel.OriginChannelID)
	if channelID == "" {
		return nil, errNoChannel
	}

	msg, err := p.client.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{BuildChallengeEmbed(duel, p.acceptTimeout)},
		Components: BuildAcceptComponents(duel.ID),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to post challenge in channel %s: %w", channelID, err)
	}

	return &entities.PostRef{ChannelID: msg.ChannelID, MessageID: msg.ID}, nil
}

// DisablePost swaps the accept button for a disabled one
func (p *Presenter) DisablePost(ctx context.Context, duel *entities.Duel) error {
	if duel.Post == nil {
		return nil
	}

	components := BuildDisabledAcceptComponents(duel.ID)
	_, err := p.client.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    duel.Post.ChannelID,
		ID:         duel.Post.MessageID,
		Components: &components,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to disable challenge %s: %w", duel.ID, err)
	}
	return nil
}

// EditPostExpired replaces the public post with an expired notice
func (p *Presenter) EditPostExpired(ctx context.Context, duel *entities.Duel, reason entities.ExpiryReason, after time.Duration) error {
	if duel.Post == nil {
		return nil
	}

	embeds := []*discordgo.MessageEmbed{BuildExpiredEmbed(duel, reason, after)}
	components := []discordgo.MessageComponent{}
	_, err := p.client.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    duel.Post.ChannelID,
		ID:         duel.Post.MessageID,
		Embeds:     &embeds,
		Components: &components,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to expire challenge %s: %w", duel.ID, err)
	}
	return nil
}

// DeletePost removes the public post
func (p *Presenter) DeletePost(ctx context.Context, ref entities.PostRef) error {
	if err := p.client.ChannelMessageDelete(ref.ChannelID, ref.MessageID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to delete message %s: %w", ref.MessageID, err)
	}
	return nil
}

// PostResult announces the outcome where the challenge was posted
func (p *Presenter) PostResult(ctx context.Context, resolution *entities.DuelResolution) error {
	channelID := p.channelFor(resolution.OriginChannelID)
	if resolution.Post != nil {
		channelID = resolution.Post.ChannelID
	}
	if channelID == "" {
		return errNoChannel
	}

	_, err := p.client.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{BuildResultEmbed(resolution)},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to post result in channel %s: %w", channelID, err)
	}
	return nil
}

func (p *Presenter) channelFor(originChannelID string) string {
	if p.battleChannelID != "" {
		return p.battleChannelID
	}
	return originChannelID
}
