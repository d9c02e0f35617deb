// Package manager owns the live table of in-memory games and keeps it in
// sync with persistent storage (spec §5 Manager).
package manager

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/herohde/checkai/pkg/chessgame"
	"github.com/herohde/checkai/pkg/protocol"
	"github.com/herohde/checkai/pkg/storage"
	"github.com/seekerror/logw"
	"golang.org/x/sync/errgroup"
)

// restoreConcurrency bounds how many active games are replayed in parallel
// on startup, so a large crash-recovery set doesn't stampede the disk.
const restoreConcurrency = 8

// Manager is the central store used by the transport layer to create,
// retrieve and mutate games. A single mutex guards the live table; game
// logic itself (pkg/chessgame) is not safe for concurrent use.
type Manager struct {
	store *storage.Store

	mu    sync.Mutex
	games map[uuid.UUID]*chessgame.Game
}

// New creates a Manager backed by store, restoring any active games left
// over from a previous run (spec §5 Startup restore).
func New(ctx context.Context, store *storage.Store) (*Manager, error) {
	m := &Manager{
		store: store,
		games: make(map[uuid.UUID]*chessgame.Game),
	}

	if err := m.restoreActiveGames(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manager) restoreActiveGames(ctx context.Context) error {
	ids, err := m.store.ListActiveOnDisk()
	if err != nil {
		return fmt.Errorf("list active games: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}

	type restored struct {
		id   uuid.UUID
		game *chessgame.Game
	}

	results := make([]*restored, len(ids))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(restoreConcurrency)

	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			arch, err := m.store.LoadActive(id)
			if err != nil {
				logw.Warningf(ctx, "Failed to load active game %v: %v", id, err)
				return nil
			}
			game, err := arch.ReplayFull()
			if err != nil {
				logw.Warningf(ctx, "Failed to replay game %v: %v", id, err)
				return nil
			}
			results[i] = &restored{id: id, game: game}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	restoredCount := 0
	for _, r := range results {
		if r == nil {
			continue
		}
		m.games[r.id] = r.game
		restoredCount++
		logw.Infof(ctx, "Restored active game %v (%d moves)", r.id, len(r.game.MoveHistory))
	}
	if restoredCount > 0 {
		logw.Infof(ctx, "Restored %d active game(s) from disk", restoredCount)
	}
	return nil
}

// CreateGame starts a new game, persists it immediately and returns its ID.
func (m *Manager) CreateGame(ctx context.Context) uuid.UUID {
	game := chessgame.New()

	m.mu.Lock()
	m.games[game.ID] = game
	m.mu.Unlock()

	if err := m.store.SaveActive(ctx, game); err != nil {
		logw.Errorf(ctx, "Failed to persist new game %v: %v", game.ID, err)
	}
	return game.ID
}

// Get returns a snapshot-safe read of a game. The returned pointer must not
// be mutated by callers outside the manager; use GetMut for mutation.
func (m *Manager) Get(id uuid.UUID) (*chessgame.Game, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[id]
	return g, ok
}

// GetMut runs fn with exclusive access to the game identified by id and
// persists the resulting state afterward regardless of whether fn returned
// an error. The manager's lock is held for the entire call to fn, not just
// the map lookup: "one lock per inbound request; the rules engine runs
// under the lock" (spec §5 Manager) gives strict per-game linearisability,
// so two concurrent requests against the same game can never race each
// other inside chessgame.MakeMove/ProcessAction. The lock is released
// before the (slower) persistence I/O runs, keeping acquisition brief.
func (m *Manager) GetMut(ctx context.Context, id uuid.UUID, fn func(*chessgame.Game) error) error {
	m.mu.Lock()
	game, ok := m.games[id]
	var err error
	if ok {
		err = fn(game)
	}
	m.mu.Unlock()

	if !ok {
		return protocol.NotFound("game not found: %v", id)
	}

	m.persistGame(ctx, id, game)
	return err
}

// ListIDs returns every live game ID.
func (m *Manager) ListIDs() []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]uuid.UUID, 0, len(m.games))
	for id := range m.games {
		ids = append(ids, id)
	}
	return ids
}

// Persist writes the current state of a game to disk: active games are
// saved uncompressed, completed games are archived and removed from the
// active set.
func (m *Manager) Persist(ctx context.Context, id uuid.UUID) {
	m.mu.Lock()
	game, ok := m.games[id]
	m.mu.Unlock()
	if !ok {
		return
	}
	m.persistGame(ctx, id, game)
}

// persistGame writes game to disk without touching the live table's lock;
// callers that already hold a reference obtained under the lock (GetMut)
// must call this instead of Persist to avoid re-locking m.mu.
func (m *Manager) persistGame(ctx context.Context, id uuid.UUID, game *chessgame.Game) {
	if game.IsOver() {
		size, err := m.store.ArchiveGame(ctx, game)
		if err != nil {
			logw.Errorf(ctx, "Failed to archive game %v: %v", id, err)
			return
		}
		logw.Infof(ctx, "Game %v archived (%d bytes compressed)", id, size)
		return
	}

	if err := m.store.SaveActive(ctx, game); err != nil {
		logw.Errorf(ctx, "Failed to persist game %v: %v", id, err)
	}
}

// Delete removes a game from the live table and its storage files.
func (m *Manager) Delete(id uuid.UUID) bool {
	m.mu.Lock()
	_, existed := m.games[id]
	delete(m.games, id)
	m.mu.Unlock()

	if !existed {
		return false
	}

	_ = m.store.RemoveActive(id)
	_ = m.store.RemoveArchive(id)
	return true
}
