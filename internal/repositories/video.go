package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/streamlethq/slx/internal/models"
	"github.com/streamlethq/slx/internal/shared"
)

// VideoRepository implements models.Repository[*models.CachedVideo] for the
// offline watch-history cache.
type VideoRepository struct {
	db *sql.DB
}

// NewVideoRepository creates a new VideoRepository with the given database connection
func NewVideoRepository(db *sql.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// Create inserts a new cached video with generated ID and sequence
func (r *VideoRepository) Create(video *models.CachedVideo) error {
	sequence, err := NextSequence(r.db, "videos")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	video.SetID(shared.GenerateID())
	video.SetSequence(sequence)

	if err := video.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO videos (id, sequence, remote_id, title, thumbnail, duration, views, owner_id, owner_name, liked, watched_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		video.ID(),
		video.Sequence(),
		video.RemoteID(),
		video.Title(),
		video.Thumbnail(),
		video.Duration(),
		video.Views(),
		video.OwnerID(),
		video.OwnerName(),
		video.Liked(),
		video.WatchedAt(),
		video.CreatedAt(),
		video.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert video: %w", err)
	}

	return nil
}

// Get retrieves a cached video by ID, excluding soft-deleted rows
func (r *VideoRepository) Get(id string) (*models.CachedVideo, error) {
	query := `
		SELECT id, sequence, remote_id, title, thumbnail, duration, views, owner_id, owner_name, liked, watched_at, created_at, updated_at, deleted_at
		FROM videos
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByRemoteID retrieves a cached video by its platform identity
func (r *VideoRepository) GetByRemoteID(remoteID string) (*models.CachedVideo, error) {
	query := `
		SELECT id, sequence, remote_id, title, thumbnail, duration, views, owner_id, owner_name, liked, watched_at, created_at, updated_at, deleted_at
		FROM videos
		WHERE remote_id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, remoteID))
}

// Update modifies an existing cached video
func (r *VideoRepository) Update(video *models.CachedVideo) error {
	if err := video.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now().UTC()
	video.SetUpdatedAt(now)

	query := `
		UPDATE videos
		SET title = ?, thumbnail = ?, duration = ?, views = ?, owner_id = ?, owner_name = ?, liked = ?, watched_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		video.Title(),
		video.Thumbnail(),
		video.Duration(),
		video.Views(),
		video.OwnerID(),
		video.OwnerName(),
		video.Liked(),
		video.WatchedAt(),
		now,
		video.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update video: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrVideoNotFound, video.ID())
	}

	return nil
}

// Upsert inserts the video or, when its remote identity is already cached,
// refreshes the existing row. Used when mirroring fetched history.
func (r *VideoRepository) Upsert(video *models.CachedVideo) error {
	existing, err := r.GetByRemoteID(video.RemoteID())
	if err != nil {
		if errors.Is(err, shared.ErrVideoNotFound) {
			return r.Create(video)
		}
		return err
	}

	video.SetID(existing.ID())
	video.SetSequence(existing.Sequence())
	video.SetCreatedAt(existing.CreatedAt())
	return r.Update(video)
}

// Delete soft-deletes a cached video by ID
func (r *VideoRepository) Delete(id string) error {
	query := `
		UPDATE videos
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrVideoNotFound, id)
	}

	return nil
}

// DeleteAll soft-deletes every cached video. Used when the server-side watch
// history is cleared.
func (r *VideoRepository) DeleteAll() error {
	if _, err := r.db.Exec("UPDATE videos SET deleted_at = ? WHERE deleted_at IS NULL", time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to clear cached videos: %w", err)
	}
	return nil
}

// List retrieves cached videos matching the given criteria, most recently
// watched first, excluding soft-deleted rows
func (r *VideoRepository) List(criteria map[string]any) ([]*models.CachedVideo, error) {
	query := `
		SELECT id, sequence, remote_id, title, thumbnail, duration, views, owner_id, owner_name, liked, watched_at, created_at, updated_at, deleted_at
		FROM videos
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if ownerID, ok := criteria["owner_id"].(string); ok && ownerID != "" {
		query += " AND owner_id = ?"
		args = append(args, ownerID)
	}

	if liked, ok := criteria["liked"].(bool); ok && liked {
		query += " AND liked = 1"
	}

	query += " ORDER BY watched_at DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	defer rows.Close()

	var videos []*models.CachedVideo
	for rows.Next() {
		video, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, video)
	}

	return videos, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *VideoRepository) scanOne(row *sql.Row) (*models.CachedVideo, error) {
	video, err := r.scanRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrVideoNotFound
		}
		return nil, err
	}
	return video, nil
}

func (r *VideoRepository) scanRow(s rowScanner) (*models.CachedVideo, error) {
	var row models.CachedVideoRow
	var watchedAt sql.NullTime
	var deletedAt sql.NullTime

	err := s.Scan(
		&row.ID,
		&row.Sequence,
		&row.RemoteID,
		&row.Title,
		&row.Thumbnail,
		&row.Duration,
		&row.Views,
		&row.OwnerID,
		&row.OwnerName,
		&row.Liked,
		&watchedAt,
		&row.CreatedAt,
		&row.UpdatedAt,
		&deletedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan video: %w", err)
	}

	if watchedAt.Valid {
		row.WatchedAt = watchedAt.Time
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		row.DeletedAt = &t
	}

	return models.RestoreCachedVideo(row), nil
}
