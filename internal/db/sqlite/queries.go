package sqlite

import (
	"context"
	"database/sql"

	"github.com/gokatarajesh/trivia-api/internal/db/model"
)

// DBTX is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries runs the trivia statements against SQLite.
type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

const listCategories = `
SELECT id, type FROM categories ORDER BY id
`

func (q *Queries) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := q.db.QueryContext(ctx, listCategories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Type); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

const listQuestions = `
SELECT id, question, answer, category, difficulty FROM questions ORDER BY id
`

func (q *Queries) ListQuestions(ctx context.Context) ([]model.Question, error) {
	return q.queryQuestions(ctx, listQuestions)
}

const listQuestionsByCategory = `
SELECT id, question, answer, category, difficulty FROM questions
WHERE category = ?
ORDER BY id
`

func (q *Queries) ListQuestionsByCategory(ctx context.Context, categoryID int64) ([]model.Question, error) {
	return q.queryQuestions(ctx, listQuestionsByCategory, categoryID)
}

// LIKE in SQLite folds ASCII case only.
const searchQuestions = `
SELECT id, question, answer, category, difficulty FROM questions
WHERE question LIKE ? ESCAPE '\'
ORDER BY id
`

func (q *Queries) SearchQuestions(ctx context.Context, term string) ([]model.Question, error) {
	return q.queryQuestions(ctx, searchQuestions, model.ContainsPattern(term))
}

const insertQuestion = `
INSERT INTO questions (question, answer, category, difficulty)
VALUES (?, ?, ?, ?)
RETURNING id, question, answer, category, difficulty
`

func (q *Queries) InsertQuestion(ctx context.Context, arg model.InsertQuestionParams) (model.Question, error) {
	var row model.Question
	err := q.db.QueryRowContext(ctx, insertQuestion, arg.Question, arg.Answer, arg.Category, arg.Difficulty).
		Scan(&row.ID, &row.Question, &row.Answer, &row.Category, &row.Difficulty)
	return row, err
}

const deleteQuestion = `
DELETE FROM questions WHERE id = ?
`

// DeleteQuestion removes one row and reports how many rows were affected.
func (q *Queries) DeleteQuestion(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteQuestion, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (q *Queries) queryQuestions(ctx context.Context, query string, args ...any) ([]model.Question, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.Question
	for rows.Next() {
		var row model.Question
		if err := rows.Scan(&row.ID, &row.Question, &row.Answer, &row.Category, &row.Difficulty); err != nil {
			return nil, err
		}
		items = append(items, row)
	}
	return items, rows.Err()
}
