package question

// QuestionsPerPage is the fixed page size of the question listing.
const QuestionsPerPage = 10

// Difficulty bounds accepted for new questions.
const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// Question is the JSON shape of a trivia question.
type Question struct {
	ID         int64  `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty int    `json:"difficulty"`
	Category   int64  `json:"category"`
}

// Category is the JSON shape of a question category.
type Category struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// NewQuestion carries a validated create request.
type NewQuestion struct {
	Question   string
	Answer     string
	Category   int64
	Difficulty int
}

// Page is one slice of the id-ordered question listing.
type Page struct {
	Questions       []Question
	Number          int
	TotalQuestions  int
	Categories      map[int64]string
	CurrentCategory *int64
}

// IDSet is a set of question ids.
type IDSet map[int64]struct{}

// NewIDSet builds a set from ids; duplicates collapse.
func NewIDSet(ids ...int64) IDSet {
	set := make(IDSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func (s IDSet) Has(id int64) bool {
	_, ok := s[id]
	return ok
}

func (s IDSet) Add(id int64) {
	s[id] = struct{}{}
}

// CategoryFilter restricts quiz candidates to one category, or to none.
type CategoryFilter struct {
	id  int64
	all bool
}

// AllCategories places no category restriction on the quiz.
func AllCategories() CategoryFilter {
	return CategoryFilter{all: true}
}

// InCategory restricts the quiz to categoryID.
func InCategory(categoryID int64) CategoryFilter {
	return CategoryFilter{id: categoryID}
}

// All reports whether the filter places no restriction.
func (f CategoryFilter) All() bool {
	return f.all
}

// CategoryID returns the restricted category; only meaningful when All is false.
func (f CategoryFilter) CategoryID() int64 {
	return f.id
}

func (f CategoryFilter) matches(q Question) bool {
	return f.all || q.Category == f.id
}

// QuizState is the request-scoped quiz input: what to draw from and what was already asked.
type QuizState struct {
	Filter   CategoryFilter
	Previous IDSet
}
