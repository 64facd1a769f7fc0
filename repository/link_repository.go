package repository

import (
	"context"
	"fmt"
	"strings"
)

// LinkRepository reads Discord to chat account links from discord-links.json
type LinkRepository struct {
	file *jsonFile
}

// NewLinkRepository creates a link repository backed by the file at path
func NewLinkRepository(path string) (*LinkRepository, error) {
	file := newJSONFile(path)
	if err := file.ensureExists(); err != nil {
		return nil, fmt.Errorf("failed to prepare link file: %w", err)
	}
	return &LinkRepository{file: file}, nil
}

// GetChatUsername returns the linked chat username, or "" when the identity is not linked
func (r *LinkRepository) GetChatUsername(ctx context.Context, discordID string) (string, error) {
	links := map[string]string{}
	if err := r.file.read(&links); err != nil {
		return "", err
	}
	return links[discordID], nil
}

// GetDiscordID returns the Discord identity linked to a chat username, matched case-insensitively
func (r *LinkRepository) GetDiscordID(ctx context.Context, chatUsername string) (string, error) {
	links := map[string]string{}
	if err := r.file.read(&links); err != nil {
		return "", err
	}
	for discordID, username := range links {
		if strings.EqualFold(username, chatUsername) {
			return discordID, nil
		}
	}
	return "", nil
}
