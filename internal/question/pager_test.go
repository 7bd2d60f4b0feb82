package question

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestPaginate(t *testing.T) {
	items := seq(23)

	tests := []struct {
		name string
		page int
		want []int
	}{
		{name: "first page", page: 1, want: seq(10)},
		{name: "middle page", page: 2, want: []int{11, 12, 13, 14, 15, 16, 17, 18, 19, 20}},
		{name: "partial last page", page: 3, want: []int{21, 22, 23}},
		{name: "beyond last page", page: 4, want: []int{}},
		{name: "zero reads as first", page: 0, want: seq(10)},
		{name: "negative reads as first", page: -3, want: seq(10)},
		{name: "huge page", page: math.MaxInt, want: []int{}},
		{name: "page whose offset overflows", page: 922337203685477582, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Paginate(items, tt.page, QuestionsPerPage))
		})
	}
}

func TestPaginate_NeverExceedsPageSize(t *testing.T) {
	for n := 0; n <= 35; n++ {
		items := seq(n)
		lastPage := (n + QuestionsPerPage - 1) / QuestionsPerPage
		for page := 1; page <= lastPage+2; page++ {
			got := Paginate(items, page, QuestionsPerPage)
			assert.LessOrEqual(t, len(got), QuestionsPerPage)
			if page > lastPage {
				assert.Empty(t, got, "n=%d page=%d", n, page)
			}
		}
	}
}

func TestPaginate_FewerThanOnePage(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, Paginate(seq(3), 1, QuestionsPerPage))
	assert.Empty(t, Paginate([]int{}, 1, QuestionsPerPage))
}

func TestPaginate_Deterministic(t *testing.T) {
	items := seq(17)
	first := Paginate(items, 2, QuestionsPerPage)
	second := Paginate(items, 2, QuestionsPerPage)
	assert.Equal(t, first, second)
}

func TestPaginate_ReturnsCopy(t *testing.T) {
	items := seq(5)
	got := Paginate(items, 1, QuestionsPerPage)
	got[0] = 99
	assert.Equal(t, 1, items[0])
}

func TestPaginate_NonPositiveSize(t *testing.T) {
	assert.Empty(t, Paginate(seq(5), 1, 0))
	assert.Empty(t, Paginate(seq(5), 1, -1))
}
