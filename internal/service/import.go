package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"wordcards/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	SourceDemo = "demo"
	SourceAPI  = "api"
	SourceFile = "file"
)

var validate = validator.New()

// Fetcher downloads a remote bundle body
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// ImportService merges external word bundles into the word store
type ImportService struct {
	store   *WordStore
	fetcher Fetcher
	demo    domain.Bundle
	logger  *zap.Logger
}

// NewImportService creates a new import service
func NewImportService(store *WordStore, fetcher Fetcher, demo domain.Bundle, logger *zap.Logger) *ImportService {
	return &ImportService{
		store:   store,
		fetcher: fetcher,
		demo:    demo,
		logger:  logger,
	}
}

// ImportDemo imports the built-in demo bundle
func (s *ImportService) ImportDemo(ctx context.Context) (domain.ImportResult, error) {
	bundle := s.demo
	bundle.Words = domain.CloneWords(s.demo.Words)
	return s.ImportBundle(ctx, bundle, SourceDemo)
}

// ImportFromURL fetches a bundle over HTTP and imports it
func (s *ImportService) ImportFromURL(ctx context.Context, url string) (domain.ImportResult, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return domain.ImportResult{}, domain.ErrEmptyURL
	}

	body, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		s.logger.Warn("Failed to fetch bundle", zap.String("url", url), zap.Error(err))
		return domain.ImportResult{}, err
	}

	return s.ImportJSON(ctx, bytes.NewReader(body), SourceAPI)
}

// ImportJSON decodes a bundle from r and imports it
func (s *ImportService) ImportJSON(ctx context.Context, r io.Reader, source string) (domain.ImportResult, error) {
	bundle, err := decodeBundle(r)
	if err != nil {
		s.logger.Warn("Rejected bundle", zap.String("source", source), zap.Error(err))
		return domain.ImportResult{}, err
	}
	return s.ImportBundle(ctx, bundle, source)
}

// ImportBundle validates bundle, appends the words whose text is not already
// stored and persists the merged list
func (s *ImportService) ImportBundle(ctx context.Context, bundle domain.Bundle, source string) (domain.ImportResult, error) {
	if err := validate.Struct(bundle); err != nil {
		return domain.ImportResult{}, fmt.Errorf("%w: %v", domain.ErrInvalidBundle, err)
	}

	incoming := normalizeWords(bundle.Words)

	var added int
	merged, err := s.store.Update(ctx, func(existing []domain.Word) ([]domain.Word, error) {
		fresh := NewWords(existing, incoming)
		added = len(fresh)
		return append(existing, fresh...), nil
	})
	if err != nil {
		s.logger.Error("Failed to import bundle",
			zap.String("source", source),
			zap.Error(err),
		)
		return domain.ImportResult{}, fmt.Errorf("import %s bundle: %w", source, err)
	}

	result := domain.ImportResult{Source: source, Added: added, Total: len(merged)}

	fields := []zap.Field{
		zap.String("source", source),
		zap.Int("added", result.Added),
		zap.Int("total", result.Total),
	}
	if bundle.Metadata != nil {
		fields = append(fields, zap.String("bundle_version", bundle.Metadata.Version))
	}
	s.logger.Info("Bundle imported", fields...)

	return result, nil
}

// NewWords returns the incoming words whose text does not exactly match
// the text of any existing word, in incoming order. Ids are not compared.
func NewWords(existing, incoming []domain.Word) []domain.Word {
	seen := make(map[string]struct{}, len(existing))
	for _, w := range existing {
		seen[w.Word] = struct{}{}
	}

	fresh := []domain.Word{}
	for _, w := range incoming {
		if _, ok := seen[w.Word]; ok {
			continue
		}
		fresh = append(fresh, w)
	}
	return fresh
}

// normalizeWords gives id-less words a generated id
func normalizeWords(words []domain.Word) []domain.Word {
	out := domain.CloneWords(words)
	for i := range out {
		if strings.TrimSpace(out[i].ID) == "" {
			out[i].ID = uuid.NewString()
		}
	}
	return out
}
