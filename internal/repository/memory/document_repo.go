package memory

import (
	"sort"

	"github.com/linemark/linemark/internal/models"
	"github.com/linemark/linemark/internal/repository"
)

type documentRepo struct {
	s *Store
}

func (r *documentRepo) Create(doc *models.Document) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	doc.ID = newID(doc.ID)
	doc.UploadedAt = stamp(doc.UploadedAt)
	r.s.documents[doc.ID] = *doc
	return nil
}

func (r *documentRepo) GetByID(id string) (*models.Document, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	doc, ok := r.s.documents[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &doc, nil
}

func (r *documentRepo) List() ([]models.Document, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	docs := make([]models.Document, 0, len(r.s.documents))
	for _, doc := range r.s.documents {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].UploadedAt.After(docs[j].UploadedAt)
	})
	return docs, nil
}

// Delete cascades to the document's comments, highlights and relations
// (and their spans), matching the database foreign-key behavior.
func (r *documentRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.documents[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.documents, id)

	for cid, c := range r.s.comments {
		if c.DocumentID == id {
			delete(r.s.comments, cid)
		}
	}
	for hid, h := range r.s.highlights {
		if h.DocumentID == id {
			delete(r.s.highlights, hid)
		}
	}
	for rid, rel := range r.s.relations {
		if rel.DocumentID != id {
			continue
		}
		delete(r.s.relations, rid)
		for sid, span := range r.s.relationSpans {
			if span.RelationID == rid {
				delete(r.s.relationSpans, sid)
			}
		}
	}
	return nil
}
