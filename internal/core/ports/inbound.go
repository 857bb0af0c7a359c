package ports

import (
	"context"
	"io"

	"github.com/brieflab/briefsight/internal/core/domain"
)

// BriefIngestor is the inbound contract for brief upload orchestration.
type BriefIngestor interface {
	Upload(ctx context.Context, filename, mimeType string, body io.Reader) (*domain.Brief, error)
}

// BriefReader is the inbound read model for brief metadata and results.
type BriefReader interface {
	GetByID(ctx context.Context, id string) (*domain.Brief, error)
}

// BriefAnalyzer is the inbound contract for asynchronous brief analysis.
type BriefAnalyzer interface {
	AnalyzeByID(ctx context.Context, briefID string) error
}

// TextAnalyzer analyzes raw text synchronously, without persistence.
type TextAnalyzer interface {
	AnalyzeText(ctx context.Context, text string) (domain.Insights, error)
}
