// Package parser turns stored brief files into plain text. Format is
// chosen by file extension; each format handler receives the raw bytes
// and returns normalized text.
package parser

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/brieflab/briefsight/internal/core/domain"
	"github.com/brieflab/briefsight/internal/core/ports"
)

type Parser struct {
	storage ports.ObjectStorage
}

func New(storage ports.ObjectStorage) *Parser {
	return &Parser{storage: storage}
}

func (p *Parser) Parse(ctx context.Context, brief *domain.Brief) (string, error) {
	reader, err := p.storage.Open(ctx, brief.StoragePath)
	if err != nil {
		return "", fmt.Errorf("open source file: %w", err)
	}
	defer reader.Close()

	raw, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read source file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(brief.Filename)); ext {
	case ".txt", ".md", ".text", ".markdown":
		return parsePlainText(raw, brief.Filename)
	case ".pdf":
		return parsePDF(raw)
	case ".docx":
		return parseDocx(raw)
	case ".xlsx":
		return parseXlsx(raw)
	default:
		return "", domain.WrapError(domain.ErrUnsupported, "parse brief", fmt.Errorf("extension %q", ext))
	}
}
