package ports

import (
	"context"

	"blockpoly/internal/domain"
)

// GameStorePort persists authoritative game snapshots so finished games
// stay queryable and crashed matches can be inspected.
type GameStorePort interface {
	// SaveSnapshot writes the current game state under its game ID.
	SaveSnapshot(ctx context.Context, game *domain.Game) error

	// LoadSnapshot reads a stored game by ID so a new match can resume
	// it. Returns found=false when no snapshot exists.
	LoadSnapshot(ctx context.Context, gameID string) (*domain.Game, bool, error)

	// DeleteSnapshot removes a stored game when an abandoned lobby is
	// discarded.
	DeleteSnapshot(ctx context.Context, gameID string) error
}
