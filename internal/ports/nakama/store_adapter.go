package nakama

import (
	"context"
	"encoding/json"
	"fmt"

	"blockpoly/internal/domain"
	"blockpoly/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// NakamaGameStoreAdapter persists game snapshots in Nakama storage.
// Snapshots are system-owned and publicly readable so finished games can
// be reviewed by clients.
type NakamaGameStoreAdapter struct {
	nk         runtime.NakamaModule
	collection string
}

// NewNakamaGameStoreAdapter creates a snapshot store over the given
// storage collection.
func NewNakamaGameStoreAdapter(nk runtime.NakamaModule, collection string) *NakamaGameStoreAdapter {
	return &NakamaGameStoreAdapter{nk: nk, collection: collection}
}

// SaveSnapshot writes the current game state under its game ID.
func (a *NakamaGameStoreAdapter) SaveSnapshot(ctx context.Context, game *domain.Game) error {
	value, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("failed to marshal game %s: %w", game.ID, err)
	}
	writes := []*runtime.StorageWrite{
		{
			Collection:      a.collection,
			Key:             game.ID,
			Value:           string(value),
			PermissionRead:  runtime.STORAGE_PERMISSION_PUBLIC_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	}
	if _, err := a.nk.StorageWrite(ctx, writes); err != nil {
		return fmt.Errorf("failed to write snapshot for game %s: %w", game.ID, err)
	}
	return nil
}

// LoadSnapshot reads a stored game by ID.
func (a *NakamaGameStoreAdapter) LoadSnapshot(ctx context.Context, gameID string) (*domain.Game, bool, error) {
	reads := []*runtime.StorageRead{
		{Collection: a.collection, Key: gameID},
	}
	objects, err := a.nk.StorageRead(ctx, reads)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read snapshot for game %s: %w", gameID, err)
	}
	if len(objects) == 0 {
		return nil, false, nil
	}
	var game domain.Game
	if err := json.Unmarshal([]byte(objects[0].Value), &game); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal snapshot for game %s: %w", gameID, err)
	}
	return &game, true, nil
}

// DeleteSnapshot removes a stored game.
func (a *NakamaGameStoreAdapter) DeleteSnapshot(ctx context.Context, gameID string) error {
	deletes := []*runtime.StorageDelete{
		{Collection: a.collection, Key: gameID},
	}
	if err := a.nk.StorageDelete(ctx, deletes); err != nil {
		return fmt.Errorf("failed to delete snapshot for game %s: %w", gameID, err)
	}
	return nil
}

var _ ports.GameStorePort = (*NakamaGameStoreAdapter)(nil)
