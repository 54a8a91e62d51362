package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/streamlethq/slx/internal/models"
	"github.com/streamlethq/slx/internal/shared"
)

// SessionRepository persists auth cookies between process runs, keyed by API
// base URL and cookie name. It is the local analog of the browser's
// session-scoped credential storage.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SessionRepository with the given database connection
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Save inserts or replaces the stored cookie for the session's base URL and
// cookie name.
func (r *SessionRepository) Save(session *models.Session) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if session.ID() == "" {
		session.SetID(shared.GenerateID())
	}

	query := `
		INSERT INTO sessions (id, base_url, cookie_name, cookie_value, expires_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(base_url, cookie_name) DO UPDATE SET
			cookie_value = excluded.cookie_value,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at
	`

	_, err := r.db.Exec(query,
		session.ID(),
		session.BaseURL(),
		session.CookieName(),
		session.CookieValue(),
		session.ExpiresAt(),
		session.CreatedAt(),
		session.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// ListByBaseURL retrieves all stored cookies for an API base URL.
func (r *SessionRepository) ListByBaseURL(baseURL string) ([]*models.Session, error) {
	query := `
		SELECT id, base_url, cookie_name, cookie_value, expires_at, created_at, updated_at
		FROM sessions
		WHERE base_url = ?
		ORDER BY cookie_name ASC
	`

	rows, err := r.db.Query(query, baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(sessions) == 0 {
		return nil, shared.ErrSessionNotFound
	}

	return sessions, nil
}

// DeleteByBaseURL removes every stored cookie for an API base URL. Called on
// logout.
func (r *SessionRepository) DeleteByBaseURL(baseURL string) error {
	if _, err := r.db.Exec("DELETE FROM sessions WHERE base_url = ?", baseURL); err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}
	return nil
}

// PruneExpired removes stored cookies whose expiry has passed.
func (r *SessionRepository) PruneExpired() error {
	if _, err := r.db.Exec("DELETE FROM sessions WHERE expires_at IS NOT NULL AND expires_at < ?", time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to prune sessions: %w", err)
	}
	return nil
}

func scanSession(s rowScanner) (*models.Session, error) {
	var row models.SessionRow
	var expiresAt sql.NullTime

	err := s.Scan(
		&row.ID,
		&row.BaseURL,
		&row.CookieName,
		&row.CookieValue,
		&expiresAt,
		&row.CreatedAt,
		&row.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to scan session: %w", err)
	}

	if expiresAt.Valid {
		t := expiresAt.Time
		row.ExpiresAt = &t
	}

	return models.RestoreSession(row), nil
}
