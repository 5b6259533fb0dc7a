package service

import (
	"sort"

	"github.com/linemark/linemark/internal/models"
	"github.com/linemark/linemark/internal/spans"
)

// Thread is a top-level comment with its direct replies in chronological
// order.
type Thread struct {
	Comment models.Comment   `json:"comment"`
	Replies []models.Comment `json:"replies"`
}

// LineThreads are the threads anchored on one line.
type LineThreads struct {
	LineNumber int      `json:"line_number"`
	Threads    []Thread `json:"threads"`
	// CommentCount counts top-level comments plus replies on the line.
	CommentCount int `json:"comment_count"`
}

// DocumentView is the per-line aggregate over one document's comments,
// highlights and relations. It is derived fresh on every fetch; the
// stored rows remain the only source of truth.
type DocumentView struct {
	DocumentID       string        `json:"document_id"`
	LineCount        int           `json:"line_count"`
	Lines            []LineThreads `json:"lines"`
	HighlightedLines []int         `json:"highlighted_lines"`
	RelationCounts   map[int]int   `json:"relation_counts"`
}

// BuildThreads groups a document's comments into per-line threads.
// Top-level comments anchor threads in creation order; replies attach to
// their parent ordered by creation time. A reply whose parent is missing
// or is itself a reply belongs to no thread and is dropped.
func BuildThreads(comments []models.Comment) []LineThreads {
	topLevel := make(map[string]*Thread)
	order := make([]string, 0)
	for _, c := range comments {
		if c.IsReply() {
			continue
		}
		topLevel[c.ID] = &Thread{Comment: c, Replies: []models.Comment{}}
		order = append(order, c.ID)
	}

	for _, c := range comments {
		if !c.IsReply() {
			continue
		}
		parent, ok := topLevel[*c.ParentCommentID]
		if !ok {
			continue // orphaned reply
		}
		parent.Replies = append(parent.Replies, c)
	}

	byLine := make(map[int]*LineThreads)
	lineOrder := make([]int, 0)
	for _, id := range order {
		thread := topLevel[id]
		line := thread.Comment.LineNumber

		// Replies must end up in created_at order regardless of how the
		// store returned them.
		sort.SliceStable(thread.Replies, func(i, j int) bool {
			return thread.Replies[i].CreatedAt.Before(thread.Replies[j].CreatedAt)
		})

		lt, ok := byLine[line]
		if !ok {
			lt = &LineThreads{LineNumber: line}
			byLine[line] = lt
			lineOrder = append(lineOrder, line)
		}
		lt.Threads = append(lt.Threads, *thread)
		lt.CommentCount += 1 + len(thread.Replies)
	}

	sort.Ints(lineOrder)
	result := make([]LineThreads, 0, len(lineOrder))
	for _, line := range lineOrder {
		result = append(result, *byLine[line])
	}
	return result
}

// HighlightedLines returns the sorted set of highlighted line numbers.
func HighlightedLines(highlights []models.Highlight) []int {
	lines := make([]int, 0, len(highlights))
	for _, h := range highlights {
		lines = append(lines, h.LineNumber)
	}
	sort.Ints(lines)
	return lines
}

// RelationLineCounts expands every relation's spans and counts, per
// line, how many relations cover it.
func RelationLineCounts(relations []models.Relation) map[int]int {
	counts := make(map[int]int)
	for _, rel := range relations {
		relSpans := make([]spans.Span, 0, len(rel.Spans))
		for _, s := range rel.Spans {
			relSpans = append(relSpans, spans.Span{StartLine: s.StartLine, EndLine: s.EndLine})
		}
		// Collapse first so overlapping spans within one relation count
		// that relation once per line.
		spans.CountLines(counts, spans.FromLines(spans.Expand(relSpans)))
	}
	return counts
}
