package ports

import (
	"context"
	"io"

	"github.com/brieflab/briefsight/internal/core/domain"
)

// BriefRepository persists and reads brief state.
type BriefRepository interface {
	Create(ctx context.Context, brief *domain.Brief) error
	GetByID(ctx context.Context, id string) (*domain.Brief, error)
	UpdateStatus(ctx context.Context, id string, status domain.BriefStatus, errMessage string) error
	SaveInsights(ctx context.Context, id string, insights domain.Insights) error
}

// ObjectStorage stores uploaded source files.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MessageQueue publishes/consumes upload events.
type MessageQueue interface {
	PublishBriefUploaded(ctx context.Context, briefID string) error
	SubscribeBriefUploaded(ctx context.Context, handler func(context.Context, string) error) error
}

// TextParser extracts plain text from a stored brief file.
type TextParser interface {
	Parse(ctx context.Context, brief *domain.Brief) (string, error)
}
