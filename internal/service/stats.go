package service

import (
	"wordcards/internal/domain"

	"go.uber.org/zap"
)

// StatsService summarizes learning progress over the word store
type StatsService struct {
	store      *WordStore
	categories []domain.Category
	logger     *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(store *WordStore, categories []domain.Category, logger *zap.Logger) *StatsService {
	return &StatsService{
		store:      store,
		categories: categories,
		logger:     logger,
	}
}

// Summary counts words per mastery state and per category.
// Words tagged with a category outside the static list are counted as uncategorized.
func (s *StatsService) Summary() domain.Stats {
	words := s.store.Words()

	stats := domain.Stats{
		Total:      len(words),
		Categories: make([]domain.CategoryCount, len(s.categories)),
	}

	index := make(map[string]int, len(s.categories))
	for i, c := range s.categories {
		index[c.ID] = i
		stats.Categories[i].Category = c
	}

	for _, w := range words {
		stats.Reviews += w.ReviewCount
		if w.Mastered {
			stats.Mastered++
		}

		i, ok := index[w.Category]
		if !ok {
			stats.Uncategorized++
			continue
		}
		stats.Categories[i].Words++
		if w.Mastered {
			stats.Categories[i].Mastered++
		}
	}
	stats.Unmastered = stats.Total - stats.Mastered

	s.logger.Debug("Stats computed",
		zap.Int("total", stats.Total),
		zap.Int("mastered", stats.Mastered),
	)

	return stats
}
