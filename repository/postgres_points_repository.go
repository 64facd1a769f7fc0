package repository

import (
	"context"
	"errors"
	"fmt"

	"streambot/database"
	"streambot/domain/entities"

	"github.com/jackc/pgx/v5"
)

// PostgresPointsRepository stores local balances in the discord_points table
type PostgresPointsRepository struct {
	q Queryable
}

// NewPostgresPointsRepository creates a new postgres points repository
func NewPostgresPointsRepository(db *database.DB) *PostgresPointsRepository {
	return &PostgresPointsRepository{q: db.Pool}
}

// NewPostgresPointsRepositoryScoped creates a repository bound to a transaction
func NewPostgresPointsRepositoryScoped(tx Queryable) *PostgresPointsRepository {
	return &PostgresPointsRepository{q: tx}
}

// GetPoints returns the stored balance, 0 when no record exists
func (r *PostgresPointsRepository) GetPoints(ctx context.Context, discordID string) (int64, error) {
	query := `SELECT points FROM discord_points WHERE discord_id = $1`

	var points int64
	err := r.q.QueryRow(ctx, query, discordID).Scan(&points)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get points for %s: %w", discordID, err)
	}
	return points, nil
}

// SetPoints creates or replaces the balance record
func (r *PostgresPointsRepository) SetPoints(ctx context.Context, discordID string, points int64) error {
	query := `
		INSERT INTO discord_points (discord_id, points)
		VALUES ($1, $2)
		ON CONFLICT (discord_id)
		DO UPDATE SET points = EXCLUDED.points, updated_at = NOW()
	`

	if _, err := r.q.Exec(ctx, query, discordID, entities.ClampPoints(points)); err != nil {
		return fmt.Errorf("failed to set points for %s: %w", discordID, err)
	}
	return nil
}
