package metadata

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"thothexport/internal/work"
)

// Service exports metadata records for works fetched from a WorkSource.
type Service struct {
	source WorkSource
}

// NewService creates a new export service.
func NewService(source WorkSource) *Service {
	return &Service{source: source}
}

// WorkRecord renders a single work in the given specification.
func (s *Service) WorkRecord(ctx context.Context, specID string, workID uuid.UUID) (Record, error) {
	// Resolve first so an unknown specification never hits the source.
	if _, err := ParseSpecification(specID); err != nil {
		return Record{}, err
	}

	w, err := s.source.GetWork(ctx, workID)
	if err != nil {
		return Record{}, fmt.Errorf("get work %s: %w", workID, err)
	}

	rec, err := Generate(specID, []work.Work{w}, workID.String())
	observeExport(specID, scopeWork, rec, err)
	if err != nil {
		log.Printf("export failed specification=%s work_id=%s error=%v", specID, workID, err)
		return Record{}, err
	}
	log.Printf("export specification=%s work_id=%s bytes=%d", specID, workID, len(rec.Body))
	return rec, nil
}

// PublisherRecord renders every work of a publisher in one record.
func (s *Service) PublisherRecord(ctx context.Context, specID string, publisherID uuid.UUID) (Record, error) {
	if _, err := ParseSpecification(specID); err != nil {
		return Record{}, err
	}

	works, err := s.source.ListPublisherWorks(ctx, publisherID)
	if err != nil {
		return Record{}, fmt.Errorf("list works for publisher %s: %w", publisherID, err)
	}

	rec, err := Generate(specID, works, publisherID.String())
	observeExport(specID, scopePublisher, rec, err)
	if err != nil {
		log.Printf("export failed specification=%s publisher_id=%s works=%d error=%v", specID, publisherID, len(works), err)
		return Record{}, err
	}
	log.Printf("export specification=%s publisher_id=%s works=%d bytes=%d", specID, publisherID, len(works), len(rec.Body))
	return rec, nil
}
