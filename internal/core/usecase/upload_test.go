package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/brieflab/briefsight/internal/core/domain"
)

type uploadRepoFake struct {
	created *domain.Brief
	err     error
}

func (f *uploadRepoFake) Create(_ context.Context, brief *domain.Brief) error {
	if f.err != nil {
		return f.err
	}
	copyBrief := *brief
	f.created = &copyBrief
	return nil
}

func (f *uploadRepoFake) GetByID(context.Context, string) (*domain.Brief, error) {
	if f.created == nil {
		return nil, domain.ErrBriefNotFound
	}
	copyBrief := *f.created
	return &copyBrief, nil
}
func (f *uploadRepoFake) UpdateStatus(context.Context, string, domain.BriefStatus, string) error {
	return errors.New("not implemented")
}
func (f *uploadRepoFake) SaveInsights(context.Context, string, domain.Insights) error {
	return errors.New("not implemented")
}

type uploadStorageFake struct {
	savedKey  string
	savedBody string
	err       error
}

func (f *uploadStorageFake) Save(_ context.Context, key string, data io.Reader) error {
	if f.err != nil {
		return f.err
	}
	raw, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	f.savedKey = key
	f.savedBody = string(raw)
	return nil
}

func (f *uploadStorageFake) Open(context.Context, string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("")), nil
}

type uploadQueueFake struct {
	briefID string
	err     error
}

func (f *uploadQueueFake) PublishBriefUploaded(_ context.Context, briefID string) error {
	if f.err != nil {
		return f.err
	}
	f.briefID = briefID
	return nil
}

func (f *uploadQueueFake) SubscribeBriefUploaded(context.Context, func(context.Context, string) error) error {
	return errors.New("not implemented")
}

func TestUploadSuccess(t *testing.T) {
	repo := &uploadRepoFake{}
	storage := &uploadStorageFake{}
	queue := &uploadQueueFake{}
	uc := NewUploadBriefUseCase(repo, storage, queue)

	brief, err := uc.Upload(context.Background(), "summer brief.txt", "text/plain", bytes.NewBufferString("hello"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if brief.ID == "" {
		t.Fatalf("expected brief id")
	}
	if brief.Status != domain.StatusUploaded {
		t.Fatalf("expected status uploaded, got %s", brief.Status)
	}
	if repo.created == nil {
		t.Fatalf("expected repo.Create call")
	}
	if queue.briefID != brief.ID {
		t.Fatalf("expected queued brief id %s, got %s", brief.ID, queue.briefID)
	}
	if !strings.Contains(storage.savedKey, "_summer_brief.txt") {
		t.Fatalf("expected sanitized key suffix, got %s", storage.savedKey)
	}
	if storage.savedBody != "hello" {
		t.Fatalf("expected saved body hello, got %s", storage.savedBody)
	}
}

func TestUploadStorageError(t *testing.T) {
	repo := &uploadRepoFake{}
	storage := &uploadStorageFake{err: errors.New("disk full")}
	queue := &uploadQueueFake{}
	uc := NewUploadBriefUseCase(repo, storage, queue)

	_, err := uc.Upload(context.Background(), "brief.txt", "text/plain", bytes.NewBufferString("hello"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "save to object storage") {
		t.Fatalf("expected storage error, got %v", err)
	}
	if repo.created != nil {
		t.Fatalf("expected no metadata row after storage failure")
	}
}

func TestUploadQueueError(t *testing.T) {
	repo := &uploadRepoFake{}
	storage := &uploadStorageFake{}
	queue := &uploadQueueFake{err: errors.New("queue down")}
	uc := NewUploadBriefUseCase(repo, storage, queue)

	_, err := uc.Upload(context.Background(), "brief.txt", "text/plain", bytes.NewBufferString("hello"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "publish upload event") {
		t.Fatalf("expected publish error, got %v", err)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"summer brief.txt", "summer_brief.txt"},
		{"../../etc/passwd", "passwd"},
		{"q1 (final) v2.pdf", "q1__final__v2.pdf"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
