// Package model holds the row types shared by the SQL store backends.
package model

import "strings"

// Category is a row of the categories table.
type Category struct {
	ID   int64
	Type string
}

// Question is a row of the questions table.
type Question struct {
	ID         int64
	Question   string
	Answer     string
	Category   int64
	Difficulty int32
}

// InsertQuestionParams carries the columns of a new question row.
type InsertQuestionParams struct {
	Question   string
	Answer     string
	Category   int64
	Difficulty int32
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern builds a LIKE pattern matching term as a literal substring.
// Backends must pair it with ESCAPE '\'.
func ContainsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
