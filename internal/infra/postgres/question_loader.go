package postgres

import (
	"context"
	"fmt"

	"element-quiz-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// QuestionLoader loads the question bank from the questions table.
type QuestionLoader struct {
	pool *pgxpool.Pool
}

func NewQuestionLoader(pool *pgxpool.Pool) *QuestionLoader {
	return &QuestionLoader{pool: pool}
}

func (l *QuestionLoader) LoadQuestions(ctx context.Context) ([]domain.Question, error) {
	rows, err := l.pool.Query(ctx, `SELECT id, text, correct_element, hint, difficulty FROM questions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var (
			q          domain.Question
			difficulty string
		)
		if err := rows.Scan(&q.ID, &q.Text, &q.CorrectElement, &q.Hint, &difficulty); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		q.Difficulty = domain.Difficulty(difficulty)
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	return questions, nil
}

// SeedQuestions inserts questions when the table is empty and reports how many
// rows were written.
func SeedQuestions(ctx context.Context, pool *pgxpool.Pool, questions []domain.Question) (int, error) {
	var existing int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM questions`).Scan(&existing); err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	if existing > 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, q := range questions {
		batch.Queue(`INSERT INTO questions (text, correct_element, hint, difficulty) VALUES ($1, $2, $3, $4)`,
			q.Text, q.CorrectElement, q.Hint, string(q.Difficulty))
	}
	br := pool.SendBatch(ctx, batch)
	defer br.Close()
	for range questions {
		if _, err := br.Exec(); err != nil {
			return 0, fmt.Errorf("seed questions: %w", err)
		}
	}
	return len(questions), nil
}
