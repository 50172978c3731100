package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/resumesavvy/interview-agent/internal/entity"
)

// SessionRepository defines the interface for session persistence
type SessionRepository interface {
	CreateSession(ctx context.Context, session entity.Session) (*entity.Session, error)
	GetSessionByID(ctx context.Context, id string) (*entity.Session, error)
	UpdateSessionStatus(ctx context.Context, id string, status entity.SessionStatus) (*entity.Session, error)
	UpdateSessionIndexed(ctx context.Context, id string, chunksIndexed int) (*entity.Session, error)
	UpdateSessionRole(ctx context.Context, id, role string) (*entity.Session, error)
	UpdateSessionError(ctx context.Context, id, errMsg string) (*entity.Session, error)
	DeleteSession(ctx context.Context, id string) error
}

var _ SessionRepository = &SessionPostgres{}

// SessionPostgres implements SessionRepository using PostgreSQL
type SessionPostgres struct {
	db *pgxpool.Pool
}

func NewSessionPostgres(db *pgxpool.Pool) *SessionPostgres {
	return &SessionPostgres{db: db}
}

const sessionColumns = "id, role, candidate_name, status, chunks_indexed, error, created_at, updated_at"

func (r *SessionPostgres) CreateSession(ctx context.Context, session entity.Session) (*entity.Session, error) {
	sessionID, err := uuid.Parse(session.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid session ID: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO sessions (id, role, candidate_name, status)
		VALUES ($1, $2, $3, $4)
		RETURNING `+sessionColumns,
		sessionID, session.Role, session.CandidateName, string(session.Status),
	)

	created, err := scanSession(row)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return created, nil
}

func (r *SessionPostgres) GetSessionByID(ctx context.Context, id string) (*entity.Session, error) {
	sessionID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid session ID: %w", err)
	}

	row := r.db.QueryRow(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = $1`, sessionID)

	session, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return session, nil
}

func (r *SessionPostgres) UpdateSessionStatus(ctx context.Context, id string, status entity.SessionStatus) (*entity.Session, error) {
	return r.updateSession(ctx, id, `
		UPDATE sessions SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+sessionColumns, string(status))
}

func (r *SessionPostgres) UpdateSessionIndexed(ctx context.Context, id string, chunksIndexed int) (*entity.Session, error) {
	return r.updateSession(ctx, id, `
		UPDATE sessions SET chunks_indexed = $2, status = $3, updated_at = now()
		WHERE id = $1
		RETURNING `+sessionColumns, chunksIndexed, string(entity.SessionStatusReady))
}

func (r *SessionPostgres) UpdateSessionRole(ctx context.Context, id, role string) (*entity.Session, error) {
	return r.updateSession(ctx, id, `
		UPDATE sessions SET role = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+sessionColumns, role)
}

func (r *SessionPostgres) UpdateSessionError(ctx context.Context, id, errMsg string) (*entity.Session, error) {
	return r.updateSession(ctx, id, `
		UPDATE sessions SET error = $2, status = $3, updated_at = now()
		WHERE id = $1
		RETURNING `+sessionColumns, errMsg, string(entity.SessionStatusError))
}

func (r *SessionPostgres) DeleteSession(ctx context.Context, id string) error {
	sessionID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid session ID: %w", err)
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrSessionNotFound
	}
	return nil
}

func (r *SessionPostgres) updateSession(ctx context.Context, id, query string, args ...any) (*entity.Session, error) {
	sessionID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid session ID: %w", err)
	}

	queryArgs := append([]any{sessionID}, args...)
	row := r.db.QueryRow(ctx, query, queryArgs...)

	session, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrSessionNotFound
		}
		return nil, fmt.Errorf("update session: %w", err)
	}
	return session, nil
}

func scanSession(row pgx.Row) (*entity.Session, error) {
	var s entity.Session
	var id uuid.UUID
	err := row.Scan(&id, &s.Role, &s.CandidateName, &s.Status, &s.ChunksIndexed, &s.Error, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.ID = id.String()
	return &s, nil
}
