package question

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// flexInt decodes a JSON integer or a string holding one.
type flexInt int64

func (f *flexInt) UnmarshalJSON(data []byte) error {
	raw := string(bytes.TrimSpace(data))
	if raw == "null" {
		return errors.New("integer expected, got null")
	}
	if strings.HasPrefix(raw, `"`) {
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			return err
		}
		raw = strings.TrimSpace(unquoted)
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("integer expected: %w", err)
	}
	*f = flexInt(n)
	return nil
}

type quizCategoryBody struct {
	ID *flexInt `json:"id"`
}

type quizBody struct {
	QuizCategory      *quizCategoryBody `json:"quiz_category"`
	PreviousQuestions *[]flexInt        `json:"previous_questions"`
}

// ParseQuizRequest decodes {quiz_category:{id}, previous_questions:[ids]}.
// Category id 0 selects every category.
func ParseQuizRequest(body []byte) (QuizState, error) {
	var req quizBody
	if err := json.Unmarshal(body, &req); err != nil {
		return QuizState{}, fmt.Errorf("%w: %v", ErrMalformedQuizRequest, err)
	}

	filter, err := categoryFilter(req.QuizCategory)
	if err != nil {
		return QuizState{}, err
	}

	if req.PreviousQuestions == nil {
		return QuizState{}, fmt.Errorf("%w: previous_questions is required", ErrMalformedQuizRequest)
	}
	previous := make(IDSet, len(*req.PreviousQuestions))
	for _, id := range *req.PreviousQuestions {
		if id <= 0 {
			return QuizState{}, fmt.Errorf("%w: invalid question id %d", ErrMalformedQuizRequest, id)
		}
		previous.Add(int64(id))
	}

	return QuizState{Filter: filter, Previous: previous}, nil
}

// ParseCategoryFilter decodes a bare {id} quiz category object.
func ParseCategoryFilter(raw []byte) (CategoryFilter, error) {
	var body *quizCategoryBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return CategoryFilter{}, fmt.Errorf("%w: %v", ErrMalformedQuizRequest, err)
	}
	return categoryFilter(body)
}

func categoryFilter(body *quizCategoryBody) (CategoryFilter, error) {
	if body == nil || body.ID == nil {
		return CategoryFilter{}, fmt.Errorf("%w: quiz_category.id is required", ErrMalformedQuizRequest)
	}
	id := int64(*body.ID)
	switch {
	case id < 0:
		return CategoryFilter{}, fmt.Errorf("%w: invalid category id %d", ErrMalformedQuizRequest, id)
	case id == 0:
		return AllCategories(), nil
	default:
		return InCategory(id), nil
	}
}

type newQuestionBody struct {
	Question   *string  `json:"question"`
	Answer     *string  `json:"answer"`
	Category   *flexInt `json:"category"`
	Difficulty *flexInt `json:"difficulty"`
}

// ParseNewQuestion decodes and validates a create request.
func ParseNewQuestion(body []byte) (NewQuestion, error) {
	var req newQuestionBody
	if err := json.Unmarshal(body, &req); err != nil {
		return NewQuestion{}, fmt.Errorf("%w: %v", ErrUnprocessable, err)
	}

	switch {
	case req.Question == nil || strings.TrimSpace(*req.Question) == "":
		return NewQuestion{}, fmt.Errorf("%w: question is required", ErrUnprocessable)
	case req.Answer == nil || strings.TrimSpace(*req.Answer) == "":
		return NewQuestion{}, fmt.Errorf("%w: answer is required", ErrUnprocessable)
	case req.Category == nil || *req.Category <= 0:
		return NewQuestion{}, fmt.Errorf("%w: category must be a positive id", ErrUnprocessable)
	case req.Difficulty == nil || *req.Difficulty < MinDifficulty || *req.Difficulty > MaxDifficulty:
		return NewQuestion{}, fmt.Errorf("%w: difficulty must be between %d and %d", ErrUnprocessable, MinDifficulty, MaxDifficulty)
	}

	return NewQuestion{
		Question:   strings.TrimSpace(*req.Question),
		Answer:     strings.TrimSpace(*req.Answer),
		Category:   int64(*req.Category),
		Difficulty: int(*req.Difficulty),
	}, nil
}

type searchBody struct {
	SearchTerm *string `json:"searchTerm"`
}

// ParseSearchTerm decodes {searchTerm}. A blank term is ErrNotFound; a missing
// or non-string one is ErrUnprocessable. Surrounding spaces are part of the match.
func ParseSearchTerm(body []byte) (string, error) {
	var req searchBody
	if err := json.Unmarshal(body, &req); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnprocessable, err)
	}
	if req.SearchTerm == nil {
		return "", fmt.Errorf("%w: searchTerm is required", ErrUnprocessable)
	}
	if strings.TrimSpace(*req.SearchTerm) == "" {
		return "", fmt.Errorf("%w: empty search term", ErrNotFound)
	}
	return *req.SearchTerm, nil
}

// ParsePage reads the page query parameter; absent means the first page.
func ParsePage(raw string) (int, error) {
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, fmt.Errorf("%w: invalid page %q", ErrNotFound, raw)
	}
	return page, nil
}

// ParseID reads a positive integer path segment.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", ErrNotFound, raw)
	}
	return id, nil
}
