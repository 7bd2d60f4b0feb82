package question

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuizRequest(t *testing.T) {
	state, err := ParseQuizRequest([]byte(`{"quiz_category":{"type":"Art","id":"2"},"previous_questions":[3,"4"]}`))
	require.NoError(t, err)
	assert.False(t, state.Filter.All())
	assert.Equal(t, int64(2), state.Filter.CategoryID())
	assert.True(t, state.Previous.Has(3))
	assert.True(t, state.Previous.Has(4))
	assert.Len(t, state.Previous, 2)
}

func TestParseQuizRequest_ZeroSelectsAll(t *testing.T) {
	state, err := ParseQuizRequest([]byte(`{"quiz_category":{"type":"click","id":0},"previous_questions":[]}`))
	require.NoError(t, err)
	assert.True(t, state.Filter.All())
	assert.Empty(t, state.Previous)
}

func TestParseQuizRequest_Malformed(t *testing.T) {
	bodies := map[string]string{
		"not json":              `nope`,
		"missing category":      `{"previous_questions":[]}`,
		"missing category id":   `{"quiz_category":{"type":"Art"},"previous_questions":[]}`,
		"null category id":      `{"quiz_category":{"id":null},"previous_questions":[]}`,
		"non numeric id":        `{"quiz_category":{"id":"art"},"previous_questions":[]}`,
		"negative id":           `{"quiz_category":{"id":-1},"previous_questions":[]}`,
		"missing previous":      `{"quiz_category":{"id":1}}`,
		"previous not an array": `{"quiz_category":{"id":1},"previous_questions":"3,4"}`,
		"previous bad member":   `{"quiz_category":{"id":1},"previous_questions":[1,"x"]}`,
		"previous non positive": `{"quiz_category":{"id":1},"previous_questions":[0]}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			_, err := ParseQuizRequest([]byte(body))
			assert.ErrorIs(t, err, ErrMalformedQuizRequest)
			assert.Equal(t, 422, StatusFor(err))
		})
	}
}

func TestParseNewQuestion(t *testing.T) {
	q, err := ParseNewQuestion([]byte(`{"question":"  Who? ","answer":" Me ","category":"3","difficulty":2}`))
	require.NoError(t, err)
	assert.Equal(t, NewQuestion{Question: "Who?", Answer: "Me", Category: 3, Difficulty: 2}, q)
}

func TestParseNewQuestion_Invalid(t *testing.T) {
	bodies := []string{
		`[]`,
		`{"answer":"a","category":1,"difficulty":1}`,
		`{"question":"q","answer":"","category":1,"difficulty":1}`,
		`{"question":"q","answer":"a","difficulty":1}`,
		`{"question":"q","answer":"a","category":0,"difficulty":1}`,
		`{"question":"q","answer":"a","category":1,"difficulty":0}`,
		`{"question":"q","answer":"a","category":1,"difficulty":6}`,
		`{"question":"q","answer":"a","category":1.5,"difficulty":1}`,
	}
	for _, body := range bodies {
		_, err := ParseNewQuestion([]byte(body))
		assert.ErrorIs(t, err, ErrUnprocessable, body)
	}
}

func TestParseSearchTerm(t *testing.T) {
	term, err := ParseSearchTerm([]byte(`{"searchTerm":"  title "}`))
	require.NoError(t, err)
	assert.Equal(t, "  title ", term)

	_, err = ParseSearchTerm([]byte(`{"searchTerm":""}`))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = ParseSearchTerm([]byte(`{"searchTerm":"   "}`))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = ParseSearchTerm([]byte(`{"searchTerm":5}`))
	assert.ErrorIs(t, err, ErrUnprocessable)

	_, err = ParseSearchTerm([]byte(`{}`))
	assert.ErrorIs(t, err, ErrUnprocessable)
}

func TestParsePage(t *testing.T) {
	page, err := ParsePage("")
	require.NoError(t, err)
	assert.Equal(t, 1, page)

	page, err = ParsePage("3")
	require.NoError(t, err)
	assert.Equal(t, 3, page)

	for _, raw := range []string{"0", "-1", "two", "1.5"} {
		_, err := ParsePage(raw)
		assert.ErrorIs(t, err, ErrNotFound, raw)
	}
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "0", "-4", "abc"} {
		_, err := ParseID(raw)
		assert.ErrorIs(t, err, ErrNotFound, raw)
	}
}
