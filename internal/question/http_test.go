package question

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMux(store *stubStore) *http.ServeMux {
	handlers := NewHTTPHandlers(newTestService(store, nil, IndexFunc(func(int) int { return 0 })), zerolog.Nop())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /categories", handlers.GetCategories)
	mux.HandleFunc("GET /categories/{id}/questions", handlers.QuestionsByCategory)
	mux.HandleFunc("GET /questions", handlers.ListQuestions)
	mux.HandleFunc("POST /questions", handlers.CreateQuestion)
	mux.HandleFunc("POST /questions/search", handlers.SearchQuestions)
	mux.HandleFunc("DELETE /questions/{id}", handlers.DeleteQuestion)
	mux.HandleFunc("POST /quizzes", handlers.PlayQuiz)
	return mux
}

func serve(t *testing.T, mux http.Handler, method, target, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	return rec.Code, decoded
}

func TestHandlers_StatusCodes(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(*stubStore)
		method string
		target string
		body   string
		want   int
	}{
		{name: "categories ok", method: http.MethodGet, target: "/categories", want: http.StatusOK},
		{name: "categories empty", setup: func(s *stubStore) { s.categories = nil }, method: http.MethodGet, target: "/categories", want: http.StatusNotFound},
		{name: "categories store down", setup: func(s *stubStore) { s.listErr = errors.New("down") }, method: http.MethodGet, target: "/categories", want: http.StatusInternalServerError},
		{name: "questions page 1", method: http.MethodGet, target: "/questions", want: http.StatusOK},
		{name: "questions past end", method: http.MethodGet, target: "/questions?page=2", want: http.StatusNotFound},
		{name: "questions bad page", method: http.MethodGet, target: "/questions?page=x", want: http.StatusNotFound},
		{name: "questions huge page", method: http.MethodGet, target: "/questions?page=922337203685477582", want: http.StatusNotFound},
		{name: "questions store down", setup: func(s *stubStore) { s.listErr = errors.New("down") }, method: http.MethodGet, target: "/questions", want: http.StatusInternalServerError},
		{name: "delete ok", method: http.MethodDelete, target: "/questions/3", want: http.StatusOK},
		{name: "delete unknown", method: http.MethodDelete, target: "/questions/77", want: http.StatusNotFound},
		{name: "delete store failure", setup: func(s *stubStore) { s.deleteErr = errors.New("locked") }, method: http.MethodDelete, target: "/questions/3", want: http.StatusUnprocessableEntity},
		{name: "create ok", method: http.MethodPost, target: "/questions", body: `{"question":"Q","answer":"A","category":1,"difficulty":1}`, want: http.StatusOK},
		{name: "create empty answer", method: http.MethodPost, target: "/questions", body: `{"question":"Q","answer":"","category":1,"difficulty":1}`, want: http.StatusUnprocessableEntity},
		{name: "create store failure", setup: func(s *stubStore) { s.insertErr = errors.New("fk") }, method: http.MethodPost, target: "/questions", body: `{"question":"Q","answer":"A","category":1,"difficulty":1}`, want: http.StatusUnprocessableEntity},
		{name: "search ok", method: http.MethodPost, target: "/questions/search", body: `{"searchTerm":"penicillin"}`, want: http.StatusOK},
		{name: "search empty term", method: http.MethodPost, target: "/questions/search", body: `{"searchTerm":""}`, want: http.StatusNotFound},
		{name: "search malformed", method: http.MethodPost, target: "/questions/search", body: `{"searchTerm":`, want: http.StatusUnprocessableEntity},
		{name: "search store down", setup: func(s *stubStore) { s.listErr = errors.New("down") }, method: http.MethodPost, target: "/questions/search", body: `{"searchTerm":"a"}`, want: http.StatusInternalServerError},
		{name: "by category ok", method: http.MethodGet, target: "/categories/2/questions", want: http.StatusOK},
		{name: "by category none", method: http.MethodGet, target: "/categories/3/questions", want: http.StatusNotFound},
		{name: "by category bad id", method: http.MethodGet, target: "/categories/x/questions", want: http.StatusNotFound},
		{name: "quiz ok", method: http.MethodPost, target: "/quizzes", body: `{"quiz_category":{"id":2},"previous_questions":[]}`, want: http.StatusOK},
		{name: "quiz malformed", method: http.MethodPost, target: "/quizzes", body: `{"quiz_category":{},"previous_questions":[]}`, want: http.StatusUnprocessableEntity},
		{name: "quiz store down", setup: func(s *stubStore) { s.listErr = errors.New("down") }, method: http.MethodPost, target: "/quizzes", body: `{"quiz_category":{"id":0},"previous_questions":[]}`, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStubStore()
			if tt.setup != nil {
				tt.setup(store)
			}
			code, body := serve(t, newTestMux(store), tt.method, tt.target, tt.body)
			assert.Equal(t, tt.want, code)
			if tt.want == http.StatusOK {
				assert.Equal(t, true, body["success"])
				return
			}
			assert.Equal(t, float64(tt.want), body["error"])
			assert.Equal(t, false, body["success"])
			assert.NotEmpty(t, body["message"])
		})
	}
}

func TestHandlers_ListQuestionsPayload(t *testing.T) {
	_, body := serve(t, newTestMux(newStubStore()), http.MethodGet, "/questions", "")

	assert.Len(t, body["questions"], 4)
	assert.Equal(t, float64(4), body["total_questions"])
	assert.Equal(t, float64(2), body["current_category"])
	assert.Equal(t, map[string]interface{}{"1": "Science", "2": "Art", "3": "Geography"}, body["categories"])

	first := body["questions"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{
		"id":         float64(3),
		"question":   "Which Dutch artist created optical illusions?",
		"answer":     "Escher",
		"difficulty": float64(1),
		"category":   float64(2),
	}, first)
}

func TestHandlers_DeleteEchoesID(t *testing.T) {
	_, body := serve(t, newTestMux(newStubStore()), http.MethodDelete, "/questions/4", "")
	assert.Equal(t, float64(4), body["question_id"])
}

func TestHandlers_CreateEchoesFields(t *testing.T) {
	_, body := serve(t, newTestMux(newStubStore()), http.MethodPost, "/questions",
		`{"question":" Capital of Peru? ","answer":"Lima","category":"3","difficulty":"2"}`)

	assert.Equal(t, float64(100), body["id"])
	assert.Equal(t, "Capital of Peru?", body["question"])
	assert.Equal(t, "Lima", body["answer"])
	assert.Equal(t, float64(3), body["category"])
	assert.Equal(t, float64(2), body["difficulty"])
}

func TestHandlers_SearchPayload(t *testing.T) {
	mux := newTestMux(newStubStore())

	_, body := serve(t, mux, http.MethodPost, "/questions/search", `{"searchTerm":"PAINTINGS"}`)
	assert.Equal(t, float64(1), body["total"])
	assert.Equal(t, float64(2), body["currentcategory"])

	_, body = serve(t, mux, http.MethodPost, "/questions/search", `{"searchTerm":"quasar"}`)
	assert.Equal(t, float64(0), body["total"])
	assert.Equal(t, []interface{}{}, body["questions"])
	assert.Nil(t, body["currentcategory"])

	_, body = serve(t, mux, http.MethodPost, "/questions/search", `{"searchTerm":"who "}`)
	assert.Equal(t, float64(1), body["total"])

	_, body = serve(t, mux, http.MethodPost, "/questions/search", `{"searchTerm":" who"}`)
	assert.Equal(t, float64(0), body["total"])

	code, _ := serve(t, mux, http.MethodPost, "/questions/search", `{"searchTerm":"   "}`)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestHandlers_QuizExhaustedIsNull(t *testing.T) {
	code, body := serve(t, newTestMux(newStubStore()), http.MethodPost, "/quizzes",
		`{"quiz_category":{"id":2},"previous_questions":[3,4,5]}`)

	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "question")
	assert.Nil(t, body["question"])
	assert.Equal(t, true, body["success"])
}

func TestHandlers_QuizPinnedDraw(t *testing.T) {
	_, body := serve(t, newTestMux(newStubStore()), http.MethodPost, "/quizzes",
		`{"quiz_category":{"id":"2"},"previous_questions":[3,4]}`)

	q := body["question"].(map[string]interface{})
	assert.Equal(t, float64(5), q["id"])
}
