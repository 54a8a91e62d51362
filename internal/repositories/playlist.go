package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/streamlethq/slx/internal/models"
	"github.com/streamlethq/slx/internal/shared"
)

// PlaylistRepository implements models.Repository[*models.CachedPlaylist] for
// offline playlist metadata.
type PlaylistRepository struct {
	db *sql.DB
}

// NewPlaylistRepository creates a new PlaylistRepository with the given database connection
func NewPlaylistRepository(db *sql.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// Create inserts a new cached playlist with generated ID and sequence
func (r *PlaylistRepository) Create(playlist *models.CachedPlaylist) error {
	sequence, err := NextSequence(r.db, "playlists")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	playlist.SetID(shared.GenerateID())
	playlist.SetSequence(sequence)

	if err := playlist.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO playlists (id, sequence, remote_id, name, visibility, video_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		playlist.ID(),
		playlist.Sequence(),
		playlist.RemoteID(),
		playlist.Name(),
		playlist.Visibility(),
		playlist.VideoCount(),
		playlist.CreatedAt(),
		playlist.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert playlist: %w", err)
	}

	return nil
}

// Get retrieves a cached playlist by ID, excluding soft-deleted rows
func (r *PlaylistRepository) Get(id string) (*models.CachedPlaylist, error) {
	query := `
		SELECT id, sequence, remote_id, name, visibility, video_count, created_at, updated_at, deleted_at
		FROM playlists
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByRemoteID retrieves a cached playlist by its platform identity
func (r *PlaylistRepository) GetByRemoteID(remoteID string) (*models.CachedPlaylist, error) {
	query := `
		SELECT id, sequence, remote_id, name, visibility, video_count, created_at, updated_at, deleted_at
		FROM playlists
		WHERE remote_id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, remoteID))
}

// Update modifies an existing cached playlist
func (r *PlaylistRepository) Update(playlist *models.CachedPlaylist) error {
	if err := playlist.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now().UTC()
	playlist.SetUpdatedAt(now)

	query := `
		UPDATE playlists
		SET name = ?, visibility = ?, video_count = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		playlist.Name(),
		playlist.Visibility(),
		playlist.VideoCount(),
		now,
		playlist.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update playlist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlist.ID())
	}

	return nil
}

// Upsert inserts the playlist or refreshes the existing row for its remote
// identity. Used when mirroring fetched playlists.
func (r *PlaylistRepository) Upsert(playlist *models.CachedPlaylist) error {
	existing, err := r.GetByRemoteID(playlist.RemoteID())
	if err != nil {
		if errors.Is(err, shared.ErrPlaylistNotFound) {
			return r.Create(playlist)
		}
		return err
	}

	playlist.SetID(existing.ID())
	playlist.SetSequence(existing.Sequence())
	playlist.SetCreatedAt(existing.CreatedAt())
	return r.Update(playlist)
}

// Delete soft-deletes a cached playlist by ID
func (r *PlaylistRepository) Delete(id string) error {
	query := `
		UPDATE playlists
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, id)
	}

	return nil
}

// DeleteByRemoteID soft-deletes the cached row for a platform playlist.
func (r *PlaylistRepository) DeleteByRemoteID(remoteID string) error {
	playlist, err := r.GetByRemoteID(remoteID)
	if err != nil {
		return err
	}
	return r.Delete(playlist.ID())
}

// List retrieves cached playlists matching the given criteria, excluding
// soft-deleted rows
func (r *PlaylistRepository) List(criteria map[string]any) ([]*models.CachedPlaylist, error) {
	query := `
		SELECT id, sequence, remote_id, name, visibility, video_count, created_at, updated_at, deleted_at
		FROM playlists
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if visibility, ok := criteria["visibility"].(string); ok && visibility != "" {
		query += " AND visibility = ?"
		args = append(args, visibility)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	defer rows.Close()

	var playlists []*models.CachedPlaylist
	for rows.Next() {
		playlist, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		playlists = append(playlists, playlist)
	}

	return playlists, rows.Err()
}

func (r *PlaylistRepository) scanOne(row *sql.Row) (*models.CachedPlaylist, error) {
	playlist, err := r.scanRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrPlaylistNotFound
		}
		return nil, err
	}
	return playlist, nil
}

func (r *PlaylistRepository) scanRow(s rowScanner) (*models.CachedPlaylist, error) {
	var row models.CachedPlaylistRow
	var deletedAt sql.NullTime

	err := s.Scan(
		&row.ID,
		&row.Sequence,
		&row.RemoteID,
		&row.Name,
		&row.Visibility,
		&row.VideoCount,
		&row.CreatedAt,
		&row.UpdatedAt,
		&deletedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan playlist: %w", err)
	}

	if deletedAt.Valid {
		t := deletedAt.Time
		row.DeletedAt = &t
	}

	return models.RestoreCachedPlaylist(row), nil
}
