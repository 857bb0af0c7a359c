package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/brieflab/briefsight/internal/core/domain"
	"github.com/brieflab/briefsight/internal/core/insight"
)

type statusCall struct {
	status domain.BriefStatus
	errMsg string
}

type analyzeRepoFake struct {
	brief       *domain.Brief
	getErr      error
	saveErr     error
	statusErr   error
	statusCalls []statusCall
	insightsID  string
	insights    domain.Insights
}

func (f *analyzeRepoFake) Create(context.Context, *domain.Brief) error { return nil }

func (f *analyzeRepoFake) GetByID(context.Context, string) (*domain.Brief, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	copyBrief := *f.brief
	return &copyBrief, nil
}

func (f *analyzeRepoFake) UpdateStatus(_ context.Context, _ string, status domain.BriefStatus, errMessage string) error {
	f.statusCalls = append(f.statusCalls, statusCall{status: status, errMsg: errMessage})
	if f.statusErr != nil {
		return f.statusErr
	}
	return nil
}

func (f *analyzeRepoFake) SaveInsights(_ context.Context, id string, insights domain.Insights) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.insightsID = id
	f.insights = insights
	return nil
}

type parserFake struct {
	text string
	err  error
}

func (f *parserFake) Parse(context.Context, *domain.Brief) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func TestAnalyzeByIDSuccess(t *testing.T) {
	repo := &analyzeRepoFake{brief: &domain.Brief{ID: "brief-1"}}
	parser := &parserFake{text: "Banner size: 1200x628. Deadline: June 10, 2026 for delivery."}
	uc := NewAnalyzeBriefUseCase(repo, parser, insight.New())

	if err := uc.AnalyzeByID(context.Background(), "brief-1"); err != nil {
		t.Fatalf("AnalyzeByID() error = %v", err)
	}
	if len(repo.statusCalls) != 2 {
		t.Fatalf("expected 2 status calls, got %d", len(repo.statusCalls))
	}
	if repo.statusCalls[0].status != domain.StatusProcessing || repo.statusCalls[1].status != domain.StatusAnalyzed {
		t.Fatalf("unexpected status sequence: %+v", repo.statusCalls)
	}
	if repo.insightsID != "brief-1" {
		t.Fatalf("expected insights save for brief-1, got %s", repo.insightsID)
	}
	if got := repo.insights.TechnicalSpecs.Dimensions; len(got) != 1 || got[0] != "1200x628" {
		t.Fatalf("expected extracted dimensions, got %v", got)
	}
}

func TestAnalyzeByIDMarksFailedOnParseError(t *testing.T) {
	repo := &analyzeRepoFake{brief: &domain.Brief{ID: "brief-1"}}
	parser := &parserFake{err: errors.New("parse fail")}
	uc := NewAnalyzeBriefUseCase(repo, parser, insight.New())

	err := uc.AnalyzeByID(context.Background(), "brief-1")
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(repo.statusCalls) != 2 {
		t.Fatalf("expected processing + failed status updates, got %d", len(repo.statusCalls))
	}
	if repo.statusCalls[1].status != domain.StatusFailed {
		t.Fatalf("expected failed status, got %+v", repo.statusCalls[1])
	}
	if repo.statusCalls[1].errMsg == "" {
		t.Fatalf("expected recorded error message")
	}
}

func TestAnalyzeByIDMarksFailedOnEmptyText(t *testing.T) {
	repo := &analyzeRepoFake{brief: &domain.Brief{ID: "brief-1"}}
	uc := NewAnalyzeBriefUseCase(repo, &parserFake{text: ""}, insight.New())

	err := uc.AnalyzeByID(context.Background(), "brief-1")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input kind, got %v", err)
	}
	if repo.statusCalls[len(repo.statusCalls)-1].status != domain.StatusFailed {
		t.Fatalf("expected final failed status, got %+v", repo.statusCalls)
	}
}

func TestAnalyzeByIDMarksFailedOnSaveError(t *testing.T) {
	repo := &analyzeRepoFake{
		brief:   &domain.Brief{ID: "brief-1"},
		saveErr: errors.New("db down"),
	}
	uc := NewAnalyzeBriefUseCase(repo, &parserFake{text: "some brief text"}, insight.New())

	err := uc.AnalyzeByID(context.Background(), "brief-1")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "save insights") {
		t.Fatalf("expected save insights error, got %v", err)
	}
	if repo.statusCalls[len(repo.statusCalls)-1].status != domain.StatusFailed {
		t.Fatalf("expected final failed status, got %+v", repo.statusCalls)
	}
}

func TestAnalyzeTextValidatesLength(t *testing.T) {
	uc := NewAnalyzeTextUseCase(insight.New())

	_, err := uc.AnalyzeText(context.Background(), strings.Repeat("x", maxTextLength+1))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input kind, got %v", err)
	}
}

func TestAnalyzeTextReturnsInsights(t *testing.T) {
	uc := NewAnalyzeTextUseCase(insight.New())

	got, err := uc.AnalyzeText(context.Background(), "CTR: 2.5% is the target.")
	if err != nil {
		t.Fatalf("AnalyzeText() error = %v", err)
	}
	if len(got.KPIs["CTR"]) != 1 || got.KPIs["CTR"][0] != 2.5 {
		t.Fatalf("expected CTR insight, got %v", got.KPIs)
	}
}
