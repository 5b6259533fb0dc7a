package service

import (
	"context"

	"github.com/linemark/linemark/internal/importer"
	"github.com/linemark/linemark/internal/models"
	"github.com/linemark/linemark/internal/repository"
)

type DocumentService interface {
	Create(name, content, docType string) (*models.Document, error)
	Get(id string) (*models.Document, error)
	List() ([]models.Document, error)
	Delete(id string) error
	ImportFromURL(ctx context.Context, rawURL string) (*models.Document, error)
}

type documentService struct {
	documentRepo repository.DocumentRepository
	fetcher      *importer.Importer
}

func NewDocumentService(documentRepo repository.DocumentRepository, fetcher *importer.Importer) DocumentService {
	return &documentService{
		documentRepo: documentRepo,
		fetcher:      fetcher,
	}
}

func (s *documentService) Create(name, content, docType string) (*models.Document, error) {
	doc := &models.Document{
		Name:    name,
		Content: content,
		Type:    docType,
	}
	if err := s.documentRepo.Create(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *documentService) Get(id string) (*models.Document, error) {
	return s.documentRepo.GetByID(id)
}

func (s *documentService) List() ([]models.Document, error) {
	return s.documentRepo.List()
}

// Delete removes the document and, through the store's cascade, all of
// its comments, highlights, relations and relation spans.
func (s *documentService) Delete(id string) error {
	return s.documentRepo.Delete(id)
}

// ImportFromURL fetches a remote text file and stores it as a txt
// document named after the URL's last path segment.
func (s *documentService) ImportFromURL(ctx context.Context, rawURL string) (*models.Document, error) {
	result, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return s.Create(result.Name, result.Content, models.DocumentTypeTxt)
}
