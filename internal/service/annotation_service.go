package service

import (
	"errors"

	"github.com/linemark/linemark/internal/models"
	"github.com/linemark/linemark/internal/repository"
	"github.com/linemark/linemark/internal/spans"
)

var (
	ErrForbidden      = errors.New("you are not the author of this comment")
	ErrHasReplies     = errors.New("cannot delete a comment that has replies")
	ErrParentNotFound = errors.New("parent comment not found")
	ErrParentIsReply  = errors.New("cannot reply to a reply")
	ErrParentWrongDoc = errors.New("parent comment belongs to another document")
	ErrNoSpans        = errors.New("relation requires at least one line or span")
	ErrInvalidSpan    = errors.New("span start must be positive and not exceed its end")
)

// Toggle outcomes reported by ToggleHighlight.
const (
	HighlightCreated = "created"
	HighlightDeleted = "deleted"
)

// AnnotationService owns the line-range annotation model: comments with
// one level of replies, shared per-line highlights, and relations
// linking line spans to external URLs.
type AnnotationService interface {
	CreateComment(author, documentID string, lineNumber int, content string, parentCommentID *string) (*models.Comment, error)
	UpdateComment(id, requester, content string) (*models.Comment, error)
	DeleteComment(id, requester string) error
	ListComments(documentID string) ([]models.Comment, error)

	ToggleHighlight(documentID string, lineNumber int) (*models.Highlight, string, error)
	ListHighlights(documentID string) ([]models.Highlight, error)

	CreateRelation(documentID, url string, note *string, lines []int, explicit []spans.Span) (*models.Relation, error)
	AddRelationSpan(relationID string, span spans.Span) (*models.RelationSpan, error)
	DeleteRelation(id string) error
	DeleteRelationSpan(id string) error
	ListRelations(documentID string) ([]models.Relation, error)

	BuildView(documentID string) (*DocumentView, error)
}

type annotationService struct {
	documentRepo  repository.DocumentRepository
	commentRepo   repository.CommentRepository
	highlightRepo repository.HighlightRepository
	relationRepo  repository.RelationRepository
}

func NewAnnotationService(
	documentRepo repository.DocumentRepository,
	commentRepo repository.CommentRepository,
	highlightRepo repository.HighlightRepository,
	relationRepo repository.RelationRepository,
) AnnotationService {
	return &annotationService{
		documentRepo:  documentRepo,
		commentRepo:   commentRepo,
		highlightRepo: highlightRepo,
		relationRepo:  relationRepo,
	}
}

// CreateComment stores a comment authored by the given username. Replies
// must reference a top-level comment on the same document; single-level
// nesting is enforced here at write time, not just when grouping.
func (s *annotationService) CreateComment(author, documentID string, lineNumber int, content string, parentCommentID *string) (*models.Comment, error) {
	if _, err := s.documentRepo.GetByID(documentID); err != nil {
		return nil, err
	}

	if parentCommentID != nil && *parentCommentID != "" {
		parent, err := s.commentRepo.GetByID(*parentCommentID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, err
		}
		if parent.DocumentID != documentID {
			return nil, ErrParentWrongDoc
		}
		if parent.IsReply() {
			return nil, ErrParentIsReply
		}
	} else {
		parentCommentID = nil
	}

	comment := &models.Comment{
		DocumentID:      documentID,
		LineNumber:      lineNumber,
		Author:          author,
		Content:         content,
		ParentCommentID: parentCommentID,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// UpdateComment replaces a comment's content. Only the author may edit.
func (s *annotationService) UpdateComment(id, requester, content string) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if comment.Author != requester {
		return nil, ErrForbidden
	}

	comment.Content = content
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a comment. Only the author may delete, and a
// comment with replies is refused rather than cascaded: the replies must
// be deleted first.
func (s *annotationService) DeleteComment(id, requester string) error {
	comment, err := s.commentRepo.GetByID(id)
	if err != nil {
		return err
	}
	if comment.Author != requester {
		return ErrForbidden
	}

	hasReplies, err := s.commentRepo.HasReplies(id)
	if err != nil {
		return err
	}
	if hasReplies {
		return ErrHasReplies
	}

	return s.commentRepo.Delete(id)
}

func (s *annotationService) ListComments(documentID string) ([]models.Comment, error) {
	if _, err := s.documentRepo.GetByID(documentID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByDocument(documentID)
}

// ToggleHighlight flips the shared marker for (documentID, lineNumber):
// created if absent, deleted if present. Concurrent toggles of the same
// line may race; the store's uniqueness constraint keeps at most one row
// and the loser's error is surfaced as-is.
func (s *annotationService) ToggleHighlight(documentID string, lineNumber int) (*models.Highlight, string, error) {
	if _, err := s.documentRepo.GetByID(documentID); err != nil {
		return nil, "", err
	}

	existing, err := s.highlightRepo.FindByLine(documentID, lineNumber)
	if err == nil {
		if err := s.highlightRepo.Delete(existing.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, "", err
		}
		return nil, HighlightDeleted, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", err
	}

	highlight := &models.Highlight{
		DocumentID: documentID,
		LineNumber: lineNumber,
	}
	if err := s.highlightRepo.Create(highlight); err != nil {
		return nil, "", err
	}
	return highlight, HighlightCreated, nil
}

func (s *annotationService) ListHighlights(documentID string) ([]models.Highlight, error) {
	if _, err := s.documentRepo.GetByID(documentID); err != nil {
		return nil, err
	}
	return s.highlightRepo.ListByDocument(documentID)
}

// CreateRelation links line spans of a document to an external URL.
// Selected lines are normalized into minimal spans; explicitly provided
// spans are validated and appended as given.
func (s *annotationService) CreateRelation(documentID, url string, note *string, lines []int, explicit []spans.Span) (*models.Relation, error) {
	if _, err := s.documentRepo.GetByID(documentID); err != nil {
		return nil, err
	}

	allSpans := spans.FromLines(lines)
	for _, sp := range explicit {
		if sp.StartLine < 1 || sp.StartLine > sp.EndLine {
			return nil, ErrInvalidSpan
		}
		allSpans = append(allSpans, sp)
	}
	if len(allSpans) == 0 {
		return nil, ErrNoSpans
	}

	relation := &models.Relation{
		DocumentID: documentID,
		URL:        url,
		Note:       note,
	}
	for _, sp := range allSpans {
		relation.Spans = append(relation.Spans, models.RelationSpan{
			StartLine: sp.StartLine,
			EndLine:   sp.EndLine,
		})
	}

	if err := s.relationRepo.Create(relation); err != nil {
		return nil, err
	}
	return relation, nil
}

func (s *annotationService) AddRelationSpan(relationID string, span spans.Span) (*models.RelationSpan, error) {
	if span.StartLine < 1 || span.StartLine > span.EndLine {
		return nil, ErrInvalidSpan
	}
	if _, err := s.relationRepo.GetByID(relationID); err != nil {
		return nil, err
	}

	relationSpan := &models.RelationSpan{
		RelationID: relationID,
		StartLine:  span.StartLine,
		EndLine:    span.EndLine,
	}
	if err := s.relationRepo.CreateSpan(relationSpan); err != nil {
		return nil, err
	}
	return relationSpan, nil
}

func (s *annotationService) DeleteRelation(id string) error {
	return s.relationRepo.Delete(id)
}

func (s *annotationService) DeleteRelationSpan(id string) error {
	return s.relationRepo.DeleteSpan(id)
}

func (s *annotationService) ListRelations(documentID string) ([]models.Relation, error) {
	if _, err := s.documentRepo.GetByID(documentID); err != nil {
		return nil, err
	}
	return s.relationRepo.ListByDocument(documentID)
}

// BuildView assembles the combined per-line view for a document from the
// authoritative comment, highlight and relation lists.
func (s *annotationService) BuildView(documentID string) (*DocumentView, error) {
	doc, err := s.documentRepo.GetByID(documentID)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByDocument(documentID)
	if err != nil {
		return nil, err
	}
	highlights, err := s.highlightRepo.ListByDocument(documentID)
	if err != nil {
		return nil, err
	}
	relations, err := s.relationRepo.ListByDocument(documentID)
	if err != nil {
		return nil, err
	}

	return &DocumentView{
		DocumentID:       documentID,
		LineCount:        doc.LineCount(),
		Lines:            BuildThreads(comments),
		HighlightedLines: HighlightedLines(highlights),
		RelationCounts:   RelationLineCounts(relations),
	}, nil
}
