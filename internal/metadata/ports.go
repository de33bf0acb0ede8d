package metadata

import (
	"context"

	"github.com/google/uuid"

	"thothexport/internal/work"
)

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=metadata

// WorkSource loads fully assembled works.
type WorkSource interface {
	// GetWork returns work.ErrNotFound when no work has the id.
	GetWork(ctx context.Context, workID uuid.UUID) (work.Work, error)
	// ListPublisherWorks returns work.ErrNotFound for an unknown publisher.
	ListPublisherWorks(ctx context.Context, publisherID uuid.UUID) ([]work.Work, error)
}
