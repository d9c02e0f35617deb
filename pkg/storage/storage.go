// Package storage persists games to disk in the compact binary format from
// pkg/archive: active games uncompressed for crash recovery, completed games
// zstd-compressed for long-term archival (spec §5 Storage).
package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/herohde/checkai/pkg/archive"
	"github.com/herohde/checkai/pkg/chessgame"
	"github.com/herohde/checkai/pkg/protocol"
	"github.com/klauspost/compress/zstd"
	"github.com/seekerror/logw"
)

// zstdLevel is the compression level used for archived games: maximum
// compression, since archive size matters more than encode latency here.
const zstdLevel = zstd.SpeedBestCompression

// Store manages game persistence under a base directory, laid out as
//
//	<base>/active/<id>.cai
//	<base>/archive/<id>.cai.zst
type Store struct {
	baseDir    string
	activeDir  string
	archiveDir string
}

// Open creates a Store rooted at baseDir, creating the active/ and archive/
// subdirectories if they don't already exist.
func Open(ctx context.Context, baseDir string) (*Store, error) {
	activeDir := filepath.Join(baseDir, "active")
	archiveDir := filepath.Join(baseDir, "archive")

	if err := os.MkdirAll(activeDir, 0o755); err != nil {
		return nil, protocol.StorageError(err, "create active dir")
	}
	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return nil, protocol.StorageError(err, "create archive dir")
	}

	logw.Infof(ctx, "Game storage initialized at %v", baseDir)

	return &Store{baseDir: baseDir, activeDir: activeDir, archiveDir: archiveDir}, nil
}

// BaseDir returns the storage root directory.
func (s *Store) BaseDir() string { return s.baseDir }

func (s *Store) activePath(id uuid.UUID) string {
	return filepath.Join(s.activeDir, id.String()+".cai")
}

func (s *Store) archivePath(id uuid.UUID) string {
	return filepath.Join(s.archiveDir, id.String()+".cai.zst")
}

// SaveActive persists an in-progress game, uncompressed, using a temp-file
// write followed by rename so a crash mid-write can never leave a corrupt
// active file behind (spec §5 atomic persistence).
func (s *Store) SaveActive(ctx context.Context, g *chessgame.Game) error {
	data, err := archive.Serialize(g)
	if err != nil {
		return err
	}

	path := s.activePath(g.ID)
	tmpPath := path + ".tmp"

	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return protocol.StorageError(err, "write temp file")
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return protocol.StorageError(err, "rename temp file")
	}

	logw.Debugf(ctx, "Saved active game %v (%d bytes, %d moves)", g.ID, len(data), len(g.MoveHistory))
	return nil
}

// ArchiveGame compresses a completed game with zstd and writes it to
// archive/, then removes the uncompressed active file. The active file is
// only removed after the archive write succeeds, so a crash between the two
// steps leaves both copies on disk, and LoadAny reads the active one first
// (spec §5 crash-safety ordering). Returns the compressed size in bytes.
func (s *Store) ArchiveGame(ctx context.Context, g *chessgame.Game) (int, error) {
	raw, err := archive.Serialize(g)
	if err != nil {
		return 0, err
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstdLevel))
	if err != nil {
		return 0, protocol.StorageError(err, "create zstd encoder")
	}
	compressed := enc.EncodeAll(raw, nil)
	if err := enc.Close(); err != nil {
		return 0, protocol.StorageError(err, "close zstd encoder")
	}

	archivePath := s.archivePath(g.ID)
	if err := os.WriteFile(archivePath, compressed, 0o644); err != nil {
		return 0, protocol.StorageError(err, "write archive")
	}

	if err := s.RemoveActive(g.ID); err != nil {
		logw.Warningf(ctx, "Failed to remove active file for archived game %v: %v", g.ID, err)
	}

	ratio := 0.0
	if len(raw) > 0 {
		ratio = float64(len(compressed)) / float64(len(raw)) * 100
	}
	logw.Infof(ctx, "Archived game %v: %d -> %d bytes (%.1f%% of original, %d moves)",
		g.ID, len(raw), len(compressed), ratio, len(g.MoveHistory))

	return len(compressed), nil
}

// LoadActive reads and decodes an uncompressed active game.
func (s *Store) LoadActive(id uuid.UUID) (*archive.Game, error) {
	data, err := os.ReadFile(s.activePath(id))
	if err != nil {
		return nil, protocol.StorageError(err, "read active game %v", id)
	}
	return archive.Deserialize(data)
}

// LoadArchive reads, decompresses and decodes an archived game.
func (s *Store) LoadArchive(id uuid.UUID) (*archive.Game, error) {
	compressed, err := os.ReadFile(s.archivePath(id))
	if err != nil {
		return nil, protocol.StorageError(err, "read archive %v", id)
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, protocol.StorageError(err, "create zstd decoder")
	}
	defer dec.Close()

	data, err := dec.DecodeAll(compressed, nil)
	if err != nil {
		return nil, protocol.StorageError(err, "zstd decompression failed")
	}
	return archive.Deserialize(data)
}

// LoadAny loads a game from either active or archive storage, checking
// active first. The returned bool reports whether it came from the
// compressed archive.
func (s *Store) LoadAny(id uuid.UUID) (*archive.Game, bool, error) {
	if _, err := os.Stat(s.activePath(id)); err == nil {
		a, err := s.LoadActive(id)
		return a, false, err
	}
	if _, err := os.Stat(s.archivePath(id)); err == nil {
		a, err := s.LoadArchive(id)
		return a, true, err
	}
	return nil, false, protocol.NotFound("game not found: %v", id)
}

// ListArchived returns the IDs of every archived game on disk.
func (s *Store) ListArchived() ([]uuid.UUID, error) {
	return listIDs(s.archiveDir, ".cai.zst")
}

// ListActiveOnDisk returns the IDs of every active game on disk.
func (s *Store) ListActiveOnDisk() ([]uuid.UUID, error) {
	return listIDs(s.activeDir, ".cai")
}

func listIDs(dir, suffix string) ([]uuid.UUID, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, protocol.StorageError(err, "read directory %v", dir)
	}

	var ids []uuid.UUID
	for _, entry := range entries {
		name := entry.Name()
		idStr, ok := strings.CutSuffix(name, suffix)
		if !ok {
			continue
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Stats reports aggregate storage usage across active and archived games.
type Stats struct {
	ActiveCount  int
	ArchivedCount int
	ActiveBytes  int64
	ArchiveBytes int64
	TotalBytes   int64
}

// Stats computes current storage usage.
func (s *Store) Stats() (Stats, error) {
	activeIDs, err := s.ListActiveOnDisk()
	if err != nil {
		return Stats{}, err
	}
	archivedIDs, err := s.ListArchived()
	if err != nil {
		return Stats{}, err
	}

	var activeBytes, archiveBytes int64
	for _, id := range activeIDs {
		if info, err := os.Stat(s.activePath(id)); err == nil {
			activeBytes += info.Size()
		}
	}
	for _, id := range archivedIDs {
		if info, err := os.Stat(s.archivePath(id)); err == nil {
			archiveBytes += info.Size()
		}
	}

	return Stats{
		ActiveCount:   len(activeIDs),
		ArchivedCount: len(archivedIDs),
		ActiveBytes:   activeBytes,
		ArchiveBytes:  archiveBytes,
		TotalBytes:    activeBytes + archiveBytes,
	}, nil
}

// RemoveActive deletes an active game's file, if present.
func (s *Store) RemoveActive(id uuid.UUID) error {
	return removeIfExists(s.activePath(id))
}

// RemoveArchive deletes an archived game's file, if present.
func (s *Store) RemoveArchive(id uuid.UUID) error {
	return removeIfExists(s.archivePath(id))
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return protocol.StorageError(err, "remove %v", path)
	}
	return nil
}

// ArchiveFileSize returns the compressed size in bytes of an archived game,
// or false if it doesn't exist.
func (s *Store) ArchiveFileSize(id uuid.UUID) (int64, bool) {
	info, err := os.Stat(s.archivePath(id))
	if err != nil {
		return 0, false
	}
	return info.Size(), true
}
