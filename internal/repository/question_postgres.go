package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/resumesavvy/interview-agent/internal/entity"
)

// QuestionRepository defines the interface for question persistence
type QuestionRepository interface {
	ReplaceQuestions(ctx context.Context, sessionID string, questions []entity.Question) error
	ListQuestions(ctx context.Context, sessionID string) ([]entity.Question, error)
}

var _ QuestionRepository = &QuestionPostgres{}

// QuestionPostgres implements QuestionRepository using PostgreSQL
type QuestionPostgres struct {
	db *pgxpool.Pool
}

func NewQuestionPostgres(db *pgxpool.Pool) *QuestionPostgres {
	return &QuestionPostgres{db: db}
}

// ReplaceQuestions atomically swaps the question set of a session. Question
// generation is re-triggerable, so any previous set is discarded.
func (r *QuestionPostgres) ReplaceQuestions(ctx context.Context, sessionID string, questions []entity.Question) error {
	sid, err := uuid.Parse(sessionID)
	if err != nil {
		return fmt.Errorf("invalid session ID: %w", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM questions WHERE session_id = $1`, sid); err != nil {
		return fmt.Errorf("delete previous questions: %w", err)
	}

	batch := &pgx.Batch{}
	for _, q := range questions {
		batch.Queue(`
			INSERT INTO questions (id, session_id, position, kind, question)
			VALUES ($1, $2, $3, $4, $5)`,
			uuid.New(), sid, q.Position, string(q.Kind), q.Text,
		)
	}

	results := tx.SendBatch(ctx, batch)
	for range questions {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("insert question: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("close batch: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *QuestionPostgres) ListQuestions(ctx context.Context, sessionID string) ([]entity.Question, error) {
	sid, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid session ID: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, session_id, position, kind, question, created_at
		FROM questions
		WHERE session_id = $1
		ORDER BY position`, sid)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var questions []entity.Question
	for rows.Next() {
		var q entity.Question
		var id, qsid uuid.UUID
		if err := rows.Scan(&id, &qsid, &q.Position, &q.Kind, &q.Text, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		q.ID = id.String()
		q.SessionID = qsid.String()
		questions = append(questions, q)
	}

	return questions, rows.Err()
}
