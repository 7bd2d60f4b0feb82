package question

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

const maxBodyBytes = 1 << 20

// HTTPHandlers exposes the trivia REST endpoints.
type HTTPHandlers struct {
	service *Service
	logger  zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers for the trivia endpoints.
func NewHTTPHandlers(service *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		service: service,
		logger:  logger.With().Str("component", "question_http").Logger(),
	}
}

// questionListResponse serves GET /questions.
type questionListResponse struct {
	Questions       []Question       `json:"questions"`
	TotalQuestions  int              `json:"total_questions"`
	Categories      map[int64]string `json:"categories"`
	CurrentCategory *int64           `json:"current_category"`
	Success         bool             `json:"success"`
}

type searchResponse struct {
	Questions       []Question `json:"questions"`
	Total           int        `json:"total"`
	CurrentCategory *int64     `json:"currentcategory"`
	Success         bool       `json:"success"`
}

type categoryQuestionsResponse struct {
	Questions  []Question `json:"questions"`
	Total      int        `json:"total"`
	CategoryID int64      `json:"category_id"`
	Success    bool       `json:"success"`
}

type createdQuestionResponse struct {
	ID         int64  `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty int    `json:"difficulty"`
	Category   int64  `json:"category"`
	Success    bool   `json:"success"`
}

type quizResponse struct {
	Question *Question `json:"question"`
	Success  bool      `json:"success"`
}

// GetCategories handles GET /categories
func (h *HTTPHandlers) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"categories": categories,
		"success":    true,
	})
}

// ListQuestions handles GET /questions?page=N
func (h *HTTPHandlers) ListQuestions(w http.ResponseWriter, r *http.Request) {
	page, err := ParsePage(r.URL.Query().Get("page"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	result, err := h.service.QuestionsPage(r.Context(), page)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, questionListResponse{
		Questions:       result.Questions,
		TotalQuestions:  result.TotalQuestions,
		Categories:      result.Categories,
		CurrentCategory: result.CurrentCategory,
		Success:         true,
	})
}

// DeleteQuestion handles DELETE /questions/{id}
func (h *HTTPHandlers) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := ParseID(r.PathValue("id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if err := h.service.DeleteQuestion(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"question_id": id,
		"success":     true,
	})
}

// CreateQuestion handles POST /questions
func (h *HTTPHandlers) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}

	req, err := ParseNewQuestion(body)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	created, err := h.service.CreateQuestion(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, createdQuestionResponse{
		ID:         created.ID,
		Question:   created.Question,
		Answer:     created.Answer,
		Difficulty: created.Difficulty,
		Category:   created.Category,
		Success:    true,
	})
}

// SearchQuestions handles POST /questions/search
func (h *HTTPHandlers) SearchQuestions(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}

	term, err := ParseSearchTerm(body)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	found, err := h.service.SearchQuestions(r.Context(), term)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, searchResponse{
		Questions:       found,
		Total:           len(found),
		CurrentCategory: firstCategory(found),
		Success:         true,
	})
}

// QuestionsByCategory handles GET /categories/{id}/questions
func (h *HTTPHandlers) QuestionsByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := ParseID(r.PathValue("id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	found, err := h.service.QuestionsByCategory(r.Context(), categoryID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, categoryQuestionsResponse{
		Questions:  found,
		Total:      len(found),
		CategoryID: categoryID,
		Success:    true,
	})
}

// PlayQuiz handles POST /quizzes
func (h *HTTPHandlers) PlayQuiz(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}

	state, err := ParseQuizRequest(body)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	next, err := h.service.NextQuizQuestion(r.Context(), state)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, quizResponse{Question: next, Success: true})
}

func (h *HTTPHandlers) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.logger.Debug().Err(err).Msg("request body read failed")
		httperrors.RespondUnprocessable(w)
		return nil, false
	}
	return body, true
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Warn().Err(err).Msg("response encode failed")
	}
}

func (h *HTTPHandlers) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	logger := logging.FromContextOr(r.Context(), h.logger)
	event := logger.Debug()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Err(err).Int("status", status).Msg("request failed")
	httperrors.RespondStatus(w, status)
}
