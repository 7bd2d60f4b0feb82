// Package postgres implements the question store on top of pgx.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gokatarajesh/trivia-api/internal/db/model"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Queries runs the trivia statements against Postgres.
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
	rows, err := q.db.Query(ctx, listCategories)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[model.Category])
}

const listQuestions = `
SELECT id, question, answer, category, difficulty FROM questions ORDER BY id
`

func (q *Queries) ListQuestions(ctx context.Context) ([]model.Question, error) {
	rows, err := q.db.Query(ctx, listQuestions)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[model.Question])
}

const listQuestionsByCategory = `
SELECT id, question, answer, category, difficulty FROM questions
WHERE category = $1
ORDER BY id
`

func (q *Queries) ListQuestionsByCategory(ctx context.Context, categoryID int64) ([]model.Question, error) {
	rows, err := q.db.Query(ctx, listQuestionsByCategory, categoryID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[model.Question])
}

const searchQuestions = `
SELECT id, question, answer, category, difficulty FROM questions
WHERE question ILIKE $1 ESCAPE '\'
ORDER BY id
`

func (q *Queries) SearchQuestions(ctx context.Context, term string) ([]model.Question, error) {
	rows, err := q.db.Query(ctx, searchQuestions, model.ContainsPattern(term))
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[model.Question])
}

const insertQuestion = `
INSERT INTO questions (question, answer, category, difficulty)
VALUES ($1, $2, $3, $4)
RETURNING id, question, answer, category, difficulty
`

func (q *Queries) InsertQuestion(ctx context.Context, arg model.InsertQuestionParams) (model.Question, error) {
	var row model.Question
	err := q.db.QueryRow(ctx, insertQuestion, arg.Question, arg.Answer, arg.Category, arg.Difficulty).
		Scan(&row.ID, &row.Question, &row.Answer, &row.Category, &row.Difficulty)
	return row, err
}

const deleteQuestion = `
DELETE FROM questions WHERE id = $1
`

// DeleteQuestion removes one row and reports how many rows were affected.
func (q *Queries) DeleteQuestion(ctx context.Context, id int64) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteQuestion, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
