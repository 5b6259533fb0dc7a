package service

import (
	"testing"
	"time"

	"github.com/linemark/linemark/internal/models"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestBuildThreads_GroupsRepliesUnderParent(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	comments := []models.Comment{
		{ID: "c1", DocumentID: "d1", LineNumber: 5, Author: "alice", Content: "needs clarification", CreatedAt: base},
		{ID: "c2", DocumentID: "d1", LineNumber: 5, Author: "bob", Content: "agreed", ParentCommentID: strPtr("c1"), CreatedAt: base.Add(time.Minute)},
	}

	lines := BuildThreads(comments)

	assert.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].LineNumber)
	assert.Equal(t, 2, lines[0].CommentCount)
	assert.Len(t, lines[0].Threads, 1)
	assert.Equal(t, "c1", lines[0].Threads[0].Comment.ID)
	assert.Len(t, lines[0].Threads[0].Replies, 1)
	assert.Equal(t, "c2", lines[0].Threads[0].Replies[0].ID)
}

func TestBuildThreads_RepliesOrderedByCreation(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	comments := []models.Comment{
		{ID: "c1", LineNumber: 3, CreatedAt: base},
		{ID: "c3", LineNumber: 3, ParentCommentID: strPtr("c1"), CreatedAt: base.Add(2 * time.Minute)},
		{ID: "c2", LineNumber: 3, ParentCommentID: strPtr("c1"), CreatedAt: base.Add(time.Minute)},
	}

	lines := BuildThreads(comments)

	replies := lines[0].Threads[0].Replies
	assert.Equal(t, []string{"c2", "c3"}, []string{replies[0].ID, replies[1].ID})
}

func TestBuildThreads_DropsOrphanedReplies(t *testing.T) {
	comments := []models.Comment{
		{ID: "c1", LineNumber: 1},
		{ID: "c2", LineNumber: 1, ParentCommentID: strPtr("missing")},
	}

	lines := BuildThreads(comments)

	assert.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].CommentCount)
	assert.Empty(t, lines[0].Threads[0].Replies)
}

func TestBuildThreads_LinesSorted(t *testing.T) {
	comments := []models.Comment{
		{ID: "c1", LineNumber: 9},
		{ID: "c2", LineNumber: 2},
		{ID: "c3", LineNumber: 5},
	}

	lines := BuildThreads(comments)

	got := []int{lines[0].LineNumber, lines[1].LineNumber, lines[2].LineNumber}
	assert.Equal(t, []int{2, 5, 9}, got)
}

func TestHighlightedLines_Sorted(t *testing.T) {
	highlights := []models.Highlight{
		{ID: "h1", LineNumber: 7},
		{ID: "h2", LineNumber: 2},
		{ID: "h3", LineNumber: 4},
	}
	assert.Equal(t, []int{2, 4, 7}, HighlightedLines(highlights))
}

func TestRelationLineCounts(t *testing.T) {
	relations := []models.Relation{
		{ID: "r1", Spans: []models.RelationSpan{{StartLine: 3, EndLine: 5}, {StartLine: 9, EndLine: 9}}},
		{ID: "r2", Spans: []models.RelationSpan{{StartLine: 5, EndLine: 6}}},
	}

	counts := RelationLineCounts(relations)

	assert.Equal(t, 1, counts[3])
	assert.Equal(t, 1, counts[4])
	assert.Equal(t, 2, counts[5])
	assert.Equal(t, 1, counts[6])
	assert.Equal(t, 1, counts[9])
	assert.Equal(t, 0, counts[1])
}

// Overlapping spans inside one relation count that relation once.
func TestRelationLineCounts_OverlapWithinRelation(t *testing.T) {
	relations := []models.Relation{
		{ID: "r1", Spans: []models.RelationSpan{{StartLine: 1, EndLine: 3}, {StartLine: 2, EndLine: 4}}},
	}

	counts := RelationLineCounts(relations)

	for line := 1; line <= 4; line++ {
		assert.Equal(t, 1, counts[line])
	}
}
