package question

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/db/model"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/logging"
)

// Service runs the trivia operations: store reads and writes flow through the
// pager, formatter, search filter and quiz selector.
type Service struct {
	questions  *repository.QuestionRepository
	categories *repository.CategoryRepository
	cache      CategoryCache
	index      IndexSource
	logger     zerolog.Logger
}

type ServiceOptions struct {
	// IndexSource pins the quiz draw; UniformIndex when nil.
	IndexSource IndexSource
	Logger      zerolog.Logger
}

// NewService wires the repositories; cache may be nil.
func NewService(questions *repository.QuestionRepository, categories *repository.CategoryRepository, cache CategoryCache, opts ServiceOptions) *Service {
	index := opts.IndexSource
	if index == nil {
		index = UniformIndex
	}
	return &Service{
		questions:  questions,
		categories: categories,
		cache:      cache,
		index:      index,
		logger:     opts.Logger.With().Str("component", "question_service").Logger(),
	}
}

// Categories returns the id→name catalog, reading through the cache.
func (s *Service) Categories(ctx context.Context) (map[int64]string, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		switch {
		case err != nil:
			categoryCacheLookups.WithLabelValues(cacheError).Inc()
			s.log(ctx).Warn().Err(err).Msg("category cache read failed")
		case len(cached) > 0:
			categoryCacheLookups.WithLabelValues(cacheHit).Inc()
			return cached, nil
		default:
			categoryCacheLookups.WithLabelValues(cacheMiss).Inc()
		}
	}

	formatted, err := s.loadCategories(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, formatted); err != nil {
			s.log(ctx).Warn().Err(err).Msg("category cache write failed")
		}
	}
	return formatted, nil
}

// RefreshCategories reloads the catalog from the store into the cache.
func (s *Service) RefreshCategories(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	formatted, err := s.loadCategories(ctx)
	if err != nil {
		return err
	}
	if err := s.cache.Set(ctx, formatted); err != nil {
		return fmt.Errorf("write category cache: %w", err)
	}
	return nil
}

func (s *Service) loadCategories(ctx context.Context) (map[int64]string, error) {
	rows, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	return FormatCategories(toCategories(rows))
}

// QuestionsPage returns the page-th block of QuestionsPerPage questions.
// An empty page is ErrNotFound.
func (s *Service) QuestionsPage(ctx context.Context, page int) (Page, error) {
	rows, err := s.questions.List(ctx)
	if err != nil {
		return Page{}, err
	}

	items := Paginate(toQuestions(rows), page, QuestionsPerPage)
	if len(items) == 0 {
		return Page{}, fmt.Errorf("%w: page %d is empty", ErrNotFound, page)
	}

	categories, err := s.Categories(ctx)
	if err != nil {
		return Page{}, err
	}

	return Page{
		Questions:       items,
		Number:          page,
		TotalQuestions:  len(rows),
		Categories:      categories,
		CurrentCategory: firstCategory(items),
	}, nil
}

// CreateQuestion stores q. A rejected write is ErrUnprocessable.
func (s *Service) CreateQuestion(ctx context.Context, q NewQuestion) (Question, error) {
	row, err := s.questions.Insert(ctx, model.InsertQuestionParams{
		Question:   q.Question,
		Answer:     q.Answer,
		Category:   q.Category,
		Difficulty: int32(q.Difficulty),
	})
	if err != nil {
		return Question{}, fmt.Errorf("%w: %w", ErrUnprocessable, err)
	}
	s.log(ctx).Info().Int64("question_id", row.ID).Int64("category", row.Category).Msg("question created")
	return toQuestion(row), nil
}

// DeleteQuestion removes a question. Unknown ids are ErrNotFound; any other
// store failure is ErrUnprocessable.
func (s *Service) DeleteQuestion(ctx context.Context, id int64) error {
	err := s.questions.Delete(ctx, id)
	switch {
	case err == nil:
		s.log(ctx).Info().Int64("question_id", id).Msg("question deleted")
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	default:
		return fmt.Errorf("%w: %w", ErrUnprocessable, err)
	}
}

// SearchQuestions returns the questions whose text contains term, ignoring case.
func (s *Service) SearchQuestions(ctx context.Context, term string) ([]Question, error) {
	if strings.TrimSpace(term) == "" {
		return nil, fmt.Errorf("%w: empty search term", ErrNotFound)
	}
	rows, err := s.questions.Search(ctx, term)
	if err != nil {
		return nil, err
	}
	return Search(term, toQuestions(rows)), nil
}

// QuestionsByCategory lists one category's questions; none at all is ErrNotFound.
func (s *Service) QuestionsByCategory(ctx context.Context, categoryID int64) ([]Question, error) {
	rows, err := s.questions.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no questions in category %d", ErrNotFound, categoryID)
	}
	return toQuestions(rows), nil
}

// NextQuizQuestion draws a question the client has not seen yet. A nil
// question with a nil error means the quiz is exhausted.
func (s *Service) NextQuizQuestion(ctx context.Context, state QuizState) (*Question, error) {
	var (
		rows []model.Question
		err  error
	)
	if state.Filter.All() {
		rows, err = s.questions.List(ctx)
	} else {
		rows, err = s.questions.ListByCategory(ctx, state.Filter.CategoryID())
	}
	if err != nil {
		return nil, err
	}

	next, ok := SelectNext(state.Filter, state.Previous, toQuestions(rows), s.index)
	if !ok {
		quizDraws.WithLabelValues(outcomeExhausted).Inc()
		return nil, nil
	}
	quizDraws.WithLabelValues(outcomeServed).Inc()
	return &next, nil
}

func (s *Service) log(ctx context.Context) *zerolog.Logger {
	l := logging.FromContextOr(ctx, s.logger)
	return &l
}

func toQuestion(row model.Question) Question {
	return Question{
		ID:         row.ID,
		Question:   row.Question,
		Answer:     row.Answer,
		Difficulty: int(row.Difficulty),
		Category:   row.Category,
	}
}

func toQuestions(rows []model.Question) []Question {
	out := make([]Question, 0, len(rows))
	for _, row := range rows {
		out = append(out, toQuestion(row))
	}
	return out
}

func toCategories(rows []model.Category) []Category {
	out := make([]Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, Category{ID: row.ID, Type: row.Type})
	}
	return out
}

func firstCategory(items []Question) *int64 {
	if len(items) == 0 {
		return nil
	}
	c := items[0].Category
	return &c
}
