package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"wordcards/internal/domain"
	"wordcards/internal/repository"

	"go.uber.org/zap"
)

// WordStore owns the in-memory word list and its persisted slot.
// Every mutation rewrites the whole list and runs under a single lock,
// so concurrent callers cannot lose each other's updates.
type WordStore struct {
	slots   repository.SlotRepository
	slotKey string
	seed    []domain.Word
	logger  *zap.Logger

	mu     sync.RWMutex
	words  []domain.Word
	loaded bool
	// frozen is set when the slot holds a newer schema; writes would destroy it
	frozen bool
}

// NewWordStore creates a word store bound to one slot key.
// seed is adopted when the slot is empty or unreadable.
func NewWordStore(slots repository.SlotRepository, slotKey string, seed []domain.Word, logger *zap.Logger) *WordStore {
	return &WordStore{
		slots:   slots,
		slotKey: slotKey,
		seed:    domain.CloneWords(seed),
		logger:  logger,
		words:   []domain.Word{},
	}
}

// Loading reports whether the first load has not completed yet
func (s *WordStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.loaded
}

// Load reads the persisted slot once. An empty slot is seeded and persisted;
// a read or decode failure falls back to the seed in memory only.
func (s *WordStore) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx)
}

func (s *WordStore) loadLocked(ctx context.Context) {
	if s.loaded {
		return
	}
	s.loaded = true

	data, err := s.getSlot(ctx)
	if errors.Is(err, repository.ErrSlotNotFound) {
		s.words = domain.CloneWords(s.seed)
		if err := s.persist(ctx, s.words); err != nil {
			s.logger.Error("Failed to persist seed words",
				zap.String("slot_key", s.slotKey),
				zap.Error(err),
			)
			return
		}
		s.logger.Info("Seeded empty slot",
			zap.String("slot_key", s.slotKey),
			zap.Int("words", len(s.words)),
		)
		return
	}
	if err != nil {
		s.logger.Error("Failed to read words, using sample set",
			zap.String("slot_key", s.slotKey),
			zap.Error(err),
		)
		s.words = domain.CloneWords(s.seed)
		return
	}

	words, err := repository.DecodeWords(data)
	if err != nil {
		s.frozen = errors.Is(err, repository.ErrUnsupportedVersion)
		s.logger.Error("Failed to decode words, using sample set",
			zap.Bool("read_only", s.frozen),
			zap.String("slot_key", s.slotKey),
			zap.Error(err),
		)
		s.words = domain.CloneWords(s.seed)
		return
	}

	s.words = words
	s.logger.Info("Words loaded",
		zap.String("slot_key", s.slotKey),
		zap.Int("words", len(words)),
	)
}

// Save persists words as the full list and then adopts them in memory.
// On failure the in-memory list is left as it was.
func (s *WordStore) Save(ctx context.Context, words []domain.Word) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.saveLocked(ctx, domain.CloneWords(words)); err != nil {
		return err
	}
	s.loaded = true
	return nil
}

func (s *WordStore) saveLocked(ctx context.Context, words []domain.Word) error {
	if s.frozen {
		return fmt.Errorf("slot %q holds newer data: %w", s.slotKey, repository.ErrUnsupportedVersion)
	}
	if err := s.persist(ctx, words); err != nil {
		s.logger.Error("Failed to save words",
			zap.String("slot_key", s.slotKey),
			zap.Int("words", len(words)),
			zap.Error(err),
		)
		return err
	}
	s.words = words
	return nil
}

func (s *WordStore) persist(ctx context.Context, words []domain.Word) error {
	data, err := repository.EncodeWords(words)
	if err != nil {
		return err
	}
	if err := s.slots.SetSlot(ctx, s.slotKey, data); err != nil {
		return fmt.Errorf("write slot %q: %w", s.slotKey, err)
	}
	return nil
}

// MarkMastered sets mastered on the word with the given id.
// An unknown id leaves the data unchanged but the list is still persisted.
func (s *WordStore) MarkMastered(ctx context.Context, id string) error {
	return s.mutate(ctx, id, func(w *domain.Word) {
		w.Mastered = true
	})
}

// IncrementReviewCount adds one review to the word with the given id
func (s *WordStore) IncrementReviewCount(ctx context.Context, id string) error {
	return s.mutate(ctx, id, func(w *domain.Word) {
		w.ReviewCount++
	})
}

func (s *WordStore) mutate(ctx context.Context, id string, apply func(w *domain.Word)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadLocked(ctx)

	updated := domain.CloneWords(s.words)
	for i := range updated {
		if updated[i].ID == id {
			apply(&updated[i])
		}
	}
	return s.saveLocked(ctx, updated)
}

// Update runs fn against a fresh read of the persisted list, persists the result
// and adopts it in memory. An empty or blank slot reads as an empty list.
func (s *WordStore) Update(ctx context.Context, fn func(persisted []domain.Word) ([]domain.Word, error)) ([]domain.Word, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	persisted, err := s.readSlot(ctx)
	if err != nil {
		return nil, err
	}
	// The slot decoded, so it no longer holds data from a newer schema
	s.frozen = false

	updated, err := fn(persisted)
	if err != nil {
		return nil, err
	}
	updated = domain.CloneWords(updated)

	if err := s.saveLocked(ctx, updated); err != nil {
		return nil, err
	}
	s.loaded = true

	return domain.CloneWords(updated), nil
}

func (s *WordStore) readSlot(ctx context.Context) ([]domain.Word, error) {
	data, err := s.getSlot(ctx)
	if errors.Is(err, repository.ErrSlotNotFound) {
		return []domain.Word{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %q: %w", s.slotKey, err)
	}
	return repository.DecodeWords(data)
}

// getSlot reads the raw slot value. A blank value counts as an absent slot.
func (s *WordStore) getSlot(ctx context.Context) ([]byte, error) {
	data, err := s.slots.GetSlot(ctx, s.slotKey)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, repository.ErrSlotNotFound
	}
	return data, nil
}

// Words returns a copy of the full list in insertion order
func (s *WordStore) Words() []domain.Word {
	return s.filter(func(domain.Word) bool { return true })
}

// Word returns the word with the given id
func (s *WordStore) Word(id string) (domain.Word, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, w := range s.words {
		if w.ID == id {
			return w, true
		}
	}
	return domain.Word{}, false
}

// WordsByCategory returns the words tagged with category
func (s *WordStore) WordsByCategory(category string) []domain.Word {
	return s.filter(func(w domain.Word) bool { return w.Category == category })
}

// MasteredWords returns the words marked as mastered
func (s *WordStore) MasteredWords() []domain.Word {
	return s.filter(func(w domain.Word) bool { return w.Mastered })
}

// UnmasteredWords returns the words still being learned
func (s *WordStore) UnmasteredWords() []domain.Word {
	return s.filter(func(w domain.Word) bool { return !w.Mastered })
}

func (s *WordStore) filter(keep func(domain.Word) bool) []domain.Word {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Word{}
	for _, w := range s.words {
		if keep(w) {
			out = append(out, w)
		}
	}
	return out
}
