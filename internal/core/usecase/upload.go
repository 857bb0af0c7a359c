package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brieflab/briefsight/internal/core/domain"
	"github.com/brieflab/briefsight/internal/core/ports"
)

type UploadBriefUseCase struct {
	repo    ports.BriefRepository
	storage ports.ObjectStorage
	queue   ports.MessageQueue
}

func NewUploadBriefUseCase(
	repo ports.BriefRepository,
	storage ports.ObjectStorage,
	queue ports.MessageQueue,
) *UploadBriefUseCase {
	return &UploadBriefUseCase{
		repo:    repo,
		storage: storage,
		queue:   queue,
	}
}

func (uc *UploadBriefUseCase) Upload(
	ctx context.Context,
	filename, mimeType string,
	body io.Reader,
) (*domain.Brief, error) {
	id := uuid.NewString()
	storageKey := fmt.Sprintf("%s_%s", id, sanitizeFilename(filename))
	now := time.Now().UTC()

	if err := uc.storage.Save(ctx, storageKey, body); err != nil {
		return nil, fmt.Errorf("save to object storage: %w", err)
	}

	brief := &domain.Brief{
		ID:          id,
		Filename:    filename,
		MimeType:    mimeType,
		StoragePath: storageKey,
		Status:      domain.StatusUploaded,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.repo.Create(ctx, brief); err != nil {
		return nil, fmt.Errorf("create brief metadata: %w", err)
	}

	if err := uc.queue.PublishBriefUploaded(ctx, brief.ID); err != nil {
		return nil, fmt.Errorf("publish upload event: %w", err)
	}

	return brief, nil
}

func (uc *UploadBriefUseCase) GetByID(ctx context.Context, id string) (*domain.Brief, error) {
	brief, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch brief by id: %w", err)
	}
	return brief, nil
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" {
		return "brief.bin"
	}
	return base
}
