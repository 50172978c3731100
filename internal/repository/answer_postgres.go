package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/resumesavvy/interview-agent/internal/entity"
)

// AnswerRepository defines the interface for answer persistence
type AnswerRepository interface {
	SaveAnswers(ctx context.Context, sessionID string, answers []entity.Answer) error
	ListAnswers(ctx context.Context, sessionID string) ([]entity.Answer, error)
	HasAnswers(ctx context.Context, sessionID string) (bool, error)
}

var _ AnswerRepository = &AnswerPostgres{}

// AnswerPostgres implements AnswerRepository using PostgreSQL
type AnswerPostgres struct {
	db *pgxpool.Pool
}

func NewAnswerPostgres(db *pgxpool.Pool) *AnswerPostgres {
	return &AnswerPostgres{db: db}
}

// SaveAnswers persists the completed answer sequence in one transaction.
// A second submission for the same session is rejected upstream via HasAnswers.
func (r *AnswerPostgres) SaveAnswers(ctx context.Context, sessionID string, answers []entity.Answer) error {
	sid, err := uuid.Parse(sessionID)
	if err != nil {
		return fmt.Errorf("invalid session ID: %w", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, a := range answers {
		batch.Queue(`
			INSERT INTO answers (id, session_id, position, question, answer, kind, answered_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			uuid.New(), sid, a.Position, a.Question, a.Text, string(a.Kind), a.AnsweredAt,
		)
	}

	results := tx.SendBatch(ctx, batch)
	for range answers {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("insert answer: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("close batch: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *AnswerPostgres) ListAnswers(ctx context.Context, sessionID string) ([]entity.Answer, error) {
	sid, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid session ID: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, session_id, position, question, answer, kind, created_at, answered_at
		FROM answers
		WHERE session_id = $1
		ORDER BY position`, sid)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	defer rows.Close()

	var answers []entity.Answer
	for rows.Next() {
		var a entity.Answer
		var id, asid uuid.UUID
		if err := rows.Scan(&id, &asid, &a.Position, &a.Question, &a.Text, &a.Kind, &a.CreatedAt, &a.AnsweredAt); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		a.ID = id.String()
		a.SessionID = asid.String()
		answers = append(answers, a)
	}

	return answers, rows.Err()
}

func (r *AnswerPostgres) HasAnswers(ctx context.Context, sessionID string) (bool, error) {
	sid, err := uuid.Parse(sessionID)
	if err != nil {
		return false, fmt.Errorf("invalid session ID: %w", err)
	}

	var exists bool
	err = r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM answers WHERE session_id = $1)`, sid).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check answers: %w", err)
	}
	return exists, nil
}
