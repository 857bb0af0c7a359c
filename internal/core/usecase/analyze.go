package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/brieflab/briefsight/internal/core/domain"
	"github.com/brieflab/briefsight/internal/core/insight"
	"github.com/brieflab/briefsight/internal/core/ports"
)

type AnalyzeBriefUseCase struct {
	repo   ports.BriefRepository
	parser ports.TextParser
	engine *insight.Engine
}

func NewAnalyzeBriefUseCase(
	repo ports.BriefRepository,
	parser ports.TextParser,
	engine *insight.Engine,
) *AnalyzeBriefUseCase {
	return &AnalyzeBriefUseCase{
		repo:   repo,
		parser: parser,
		engine: engine,
	}
}

func (uc *AnalyzeBriefUseCase) AnalyzeByID(ctx context.Context, briefID string) error {
	if err := uc.markStatus(ctx, briefID, domain.StatusProcessing, ""); err != nil {
		return fmt.Errorf("set status=processing: %w", err)
	}

	insights, err := uc.analyzePipeline(ctx, briefID)
	if err != nil {
		if failErr := uc.markFailed(ctx, briefID, err); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.repo.SaveInsights(ctx, briefID, insights); err != nil {
		if failErr := uc.markFailed(ctx, briefID, err); failErr != nil {
			return fmt.Errorf("save insights: %w; mark failed status: %v", err, failErr)
		}
		return fmt.Errorf("save insights: %w", err)
	}

	if err := uc.markStatus(ctx, briefID, domain.StatusAnalyzed, ""); err != nil {
		return fmt.Errorf("set status=analyzed: %w", err)
	}

	return nil
}

func (uc *AnalyzeBriefUseCase) analyzePipeline(ctx context.Context, briefID string) (domain.Insights, error) {
	brief, err := uc.loadBrief(ctx, briefID)
	if err != nil {
		return domain.Insights{}, err
	}

	text, err := uc.parseText(ctx, brief)
	if err != nil {
		return domain.Insights{}, err
	}

	return uc.engine.Analyze(text), nil
}

func (uc *AnalyzeBriefUseCase) loadBrief(ctx context.Context, briefID string) (*domain.Brief, error) {
	brief, err := uc.repo.GetByID(ctx, briefID)
	if err != nil {
		return nil, fmt.Errorf("fetch brief by id: %w", err)
	}
	return brief, nil
}

func (uc *AnalyzeBriefUseCase) parseText(ctx context.Context, brief *domain.Brief) (string, error) {
	text, err := uc.parser.Parse(ctx, brief)
	if err != nil {
		return "", fmt.Errorf("parse brief text: %w", err)
	}
	if text == "" {
		return "", domain.WrapError(domain.ErrInvalidInput, "parse brief text", errors.New("empty extracted text"))
	}
	return text, nil
}

func (uc *AnalyzeBriefUseCase) markStatus(ctx context.Context, briefID string, status domain.BriefStatus, errMessage string) error {
	return uc.repo.UpdateStatus(ctx, briefID, status, errMessage)
}

func (uc *AnalyzeBriefUseCase) markFailed(ctx context.Context, briefID string, analyzeErr error) error {
	if analyzeErr == nil {
		return nil
	}
	return uc.markStatus(ctx, briefID, domain.StatusFailed, analyzeErr.Error())
}
