package memory

import (
	"github.com/linemark/linemark/internal/models"
	"github.com/linemark/linemark/internal/repository"
)

type relationRepo struct {
	s *Store
}

func (r *relationRepo) Create(relation *models.Relation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	relation.ID = newID(relation.ID)
	relation.CreatedAt = stamp(relation.CreatedAt)

	spans := relation.Spans
	relation.Spans = nil
	stored := *relation
	r.s.relations[relation.ID] = stored

	for i := range spans {
		spans[i].ID = newID(spans[i].ID)
		spans[i].RelationID = relation.ID
		r.s.relationSpans[spans[i].ID] = spans[i]
	}
	relation.Spans = spans
	return nil
}

func (r *relationRepo) GetByID(id string) (*models.Relation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	relation, ok := r.s.relations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	relation.Spans = r.spansLocked(id)
	return &relation, nil
}

func (r *relationRepo) ListByDocument(documentID string) ([]models.Relation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	relations := make([]models.Relation, 0)
	for _, rel := range r.s.relations {
		if rel.DocumentID != documentID {
			continue
		}
		rel.Spans = r.spansLocked(rel.ID)
		relations = append(relations, rel)
	}
	return relations, nil
}

// Delete cascades to the relation's spans.
func (r *relationRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.relations[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.relations, id)
	for sid, span := range r.s.relationSpans {
		if span.RelationID == id {
			delete(r.s.relationSpans, sid)
		}
	}
	return nil
}

func (r *relationRepo) CreateSpan(span *models.RelationSpan) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.relations[span.RelationID]; !ok {
		return repository.ErrNotFound
	}
	span.ID = newID(span.ID)
	r.s.relationSpans[span.ID] = *span
	return nil
}

func (r *relationRepo) ListSpansByRelation(relationID string) ([]models.RelationSpan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.spansLocked(relationID), nil
}

func (r *relationRepo) DeleteSpan(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.relationSpans[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.relationSpans, id)
	return nil
}

// spansLocked collects the spans of a relation; callers hold s.mu.
func (r *relationRepo) spansLocked(relationID string) []models.RelationSpan {
	spans := make([]models.RelationSpan, 0)
	for _, span := range r.s.relationSpans {
		if span.RelationID == relationID {
			spans = append(spans, span)
		}
	}
	return spans
}
