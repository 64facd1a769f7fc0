package ssp

import (
	"context"
	"errors"
	"testing"
	"time"

	"streambot/domain/entities"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	channelID string
	data      *discordgo.MessageSend
}

type fakeMessageClient struct {
	sent    []sentMessage
	edits   []*discordgo.MessageEdit
	deletes []entities.PostRef
	err     error
}

func (f *fakeMessageClient) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, sentMessage{channelID: channelID, data: data})
	return &discordgo.Message{ID: "msg-1", ChannelID: channelID}, nil
}

func (f *fakeMessageClient) ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.edits = append(f.edits, m)
	return &discordgo.Message{ID: m.ID, ChannelID: m.Channel}, nil
}

func (f *fakeMessageClient) ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error {
	if f.err != nil {
		return f.err
	}
	f.deletes = append(f.deletes, entities.PostRef{ChannelID: channelID, MessageID: messageID})
	return nil
}

func postedDuel() *entities.Duel {
	return &entities.Duel{
		ID:              "1_1",
		State:           entities.DuelStatePosted,
		Challenger:      entities.Participant{DiscordID: "1", DisplayName: "Alice"},
		Wager:           20,
		OriginChannelID: "origin",
		Post:            &entities.PostRef{ChannelID: "battle", MessageID: "msg-1"},
	}
}

func TestPresenter_PostOpenChallenge(t *testing.T) {
	ctx := context.Background()

	t.Run("uses the battle channel", func(t *testing.T) {
		client := &fakeMessageClient{}
		presenter := NewPresenter(client, "battle", time.Hour)

		ref, err := presenter.PostOpenChallenge(ctx, postedDuel())
		require.NoError(t, err)
		assert.Equal(t, entities.PostRef{ChannelID: "battle", MessageID: "msg-1"}, *ref)

		require.Len(t, client.sent, 1)
		button := client.sent[0].data.Components[0].(discordgo.ActionsRow).Components[0].(discordgo.Button)
		assert.Equal(t, "ssp_accept_1_1", button.CustomID)
	})

	t.Run("falls back to the origin channel", func(t *testing.T) {
		client := &fakeMessageClient{}
		presenter := NewPresenter(client, "", time.Hour)

		ref, err := presenter.PostOpenChallenge(ctx, postedDuel())
		require.NoError(t, err)
		assert.Equal(t, "origin", ref.ChannelID)
	})

	t.Run("no channel at all", func(t *testing.T) {
		duel := postedDuel()
		duel.OriginChannelID = ""

		_, err := NewPresenter(&fakeMessageClient{}, "", time.Hour).PostOpenChallenge(ctx, duel)
		assert.ErrorIs(t, err, errNoChannel)
	})

	t.Run("discord failure", func(t *testing.T) {
		client := &fakeMessageClient{err: errors.New("429")}
		_, err := NewPresenter(client, "battle", time.Hour).PostOpenChallenge(ctx, postedDuel())
		assert.ErrorContains(t, err, "429")
	})
}

func TestPresenter_EditsAndDeletes(t *testing.T) {
	ctx := context.Background()
	client := &fakeMessageClient{}
	presenter := NewPresenter(client, "battle", time.Hour)
	duel := postedDuel()

	require.NoError(t, presenter.DisablePost(ctx, duel))
	require.NoError(t, presenter.EditPostExpired(ctx, duel, entities.ExpiryNotAccepted, time.Hour))
	require.NoError(t, presenter.DeletePost(ctx, *duel.Post))

	require.Len(t, client.edits, 2)
	disabled := (*client.edits[0].Components)[0].(discordgo.ActionsRow).Components[0].(discordgo.Button)
	assert.True(t, disabled.Disabled)

	expired := client.edits[1]
	assert.Empty(t, *expired.Components)
	require.Len(t, *expired.Embeds, 1)
	assert.Equal(t, "⏰ Challenge expired", (*expired.Embeds)[0].Title)

	assert.Equal(t, []entities.PostRef{{ChannelID: "battle", MessageID: "msg-1"}}, client.deletes)
}

func TestPresenter_SkipsEditsWithoutPost(t *testing.T) {
	client := &fakeMessageClient{}
	presenter := NewPresenter(client, "battle", time.Hour)
	duel := postedDuel()
	duel.Post = nil

	assert.NoError(t, presenter.DisablePost(context.Background(), duel))
	assert.NoError(t, presenter.EditPostExpired(context.Background(), duel, entities.ExpiryNotAccepted, time.Hour))
	assert.Empty(t, client.edits)
}

func TestPresenter_PostResult(t *testing.T) {
	client := &fakeMessageClient{}
	presenter := NewPresenter(client, "battle", time.Hour)

	r := resolution(entities.OutcomeFirstWins, 20, 20)
	r.Post = &entities.PostRef{ChannelID: "posted-here", MessageID: "m"}
	require.NoError(t, presenter.PostResult(context.Background(), r))

	r.Post = nil
	r.OriginChannelID = "origin"
	require.NoError(t, NewPresenter(client, "", time.Hour).PostResult(context.Background(), r))

	require.Len(t, client.sent, 2)
	assert.Equal(t, "posted-here", client.sent[0].channelID)
	assert.Equal(t, "origin", client.sent[1].channelID)
}
