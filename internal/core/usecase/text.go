package usecase

import (
	"context"
	"errors"

	"github.com/brieflab/briefsight/internal/core/domain"
	"github.com/brieflab/briefsight/internal/core/insight"
)

const maxTextLength = 1 << 20

// AnalyzeTextUseCase runs the insight pipeline over caller-supplied
// text without touching storage or the queue.
type AnalyzeTextUseCase struct {
	engine *insight.Engine
}

func NewAnalyzeTextUseCase(engine *insight.Engine) *AnalyzeTextUseCase {
	return &AnalyzeTextUseCase{engine: engine}
}

func (uc *AnalyzeTextUseCase) AnalyzeText(_ context.Context, text string) (domain.Insights, error) {
	if len(text) > maxTextLength {
		return domain.Insights{}, domain.WrapError(domain.ErrInvalidInput, "analyze text", errors.New("text exceeds size limit"))
	}
	return uc.engine.Analyze(text), nil
}
