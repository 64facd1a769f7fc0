package repository

import (
	"context"
	"fmt"

	"streambot/domain/entities"
)

type localPointsRecord struct {
	Points float64 `json:"points"`
}

// LocalPointsRepository stores balances of unlinked identities in discord-users.json
type LocalPointsRepository struct {
	file *jsonFile
}

// NewLocalPointsRepository creates a local points repository backed by the file at path
func NewLocalPointsRepository(path string) (*LocalPointsRepository, error) {
	file := newJSONFile(path)
	if err := file.ensureExists(); err != nil {
		return nil, fmt.Errorf("failed to prepare local points file: %w", err)
	}
	return &LocalPointsRepository{file: file}, nil
}

// GetPoints returns the stored balance, 0 when no record exists
func (r *LocalPointsRepository) GetPoints(ctx context.Context, discordID string) (int64, error) {
	users := map[string]localPointsRecord{}
	if err := r.file.read(&users); err != nil {
		return 0, err
	}
	return entities.NormalizePoints(users[discordID].Points), nil
}

// SetPoints creates or replaces the balance record
func (r *LocalPointsRepository) SetPoints(ctx context.Context, discordID string, points int64) error {
	users := map[string]localPointsRecord{}
	return r.file.update(&users, func() error {
		users[discordID] = localPointsRecord{Points: float64(entities.ClampPoints(points))}
		return nil
	})
}
