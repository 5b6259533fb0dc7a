package spans

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromLines_MergesAndSorts(t *testing.T) {
	got := FromLines([]int{5, 6, 7, 10, 2, 3})
	want := []Span{{2, 3}, {5, 7}, {10, 10}}
	assert.Equal(t, want, got)
}

func TestFromLines_Empty(t *testing.T) {
	assert.Equal(t, []Span{}, FromLines(nil))
	assert.Equal(t, []Span{}, FromLines([]int{}))
}

func TestFromLines_Duplicates(t *testing.T) {
	got := FromLines([]int{4, 4, 5, 5, 5, 6})
	assert.Equal(t, []Span{{4, 6}}, got)
}

func TestFromLines_Singleton(t *testing.T) {
	assert.Equal(t, []Span{{9, 9}}, FromLines([]int{9}))
}

// Re-normalizing the expansion of a normalization is a fixed point.
func TestFromLines_IdempotentUnderExpand(t *testing.T) {
	cases := [][]int{
		{5, 6, 7, 10, 2, 3},
		{1},
		{1, 3, 5, 7, 9},
		{100, 1, 2, 3, 99, 98},
		{},
	}
	for _, lines := range cases {
		once := FromLines(lines)
		again := FromLines(Expand(once))
		assert.Equal(t, once, again)
	}
}

func TestExpand(t *testing.T) {
	got := Expand([]Span{{3, 5}, {9, 9}})
	assert.Equal(t, []int{3, 4, 5, 9}, got)
}

func TestExpand_Overlapping(t *testing.T) {
	got := Expand([]Span{{1, 3}, {2, 4}})
	assert.Equal(t, []int{1, 2, 3, 4}, got)
}

func TestCountLines(t *testing.T) {
	counts := map[int]int{}
	CountLines(counts, []Span{{3, 5}, {9, 9}})
	CountLines(counts, []Span{{5, 6}})

	assert.Equal(t, 1, counts[3])
	assert.Equal(t, 1, counts[4])
	assert.Equal(t, 2, counts[5])
	assert.Equal(t, 1, counts[6])
	assert.Equal(t, 1, counts[9])
	assert.Equal(t, 0, counts[7])
}
