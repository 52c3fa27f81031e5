package testutil

import (
	"context"
	"sync"

	"wordcards/internal/domain"
	"wordcards/internal/repository"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestWord creates a test word
func NewTestWord(id, word, category string) domain.Word {
	return domain.Word{
		ID:            id,
		Word:          word,
		Pronunciation: "/" + word + "/",
		Meaning:       "meaning of " + word,
		Example:       "An example with " + word + ".",
		Category:      category,
	}
}

// MemorySlots is an in-memory SlotRepository for tests that need real read-after-write behavior
type MemorySlots struct {
	mu     sync.Mutex
	values map[string][]byte
	writes int
}

// NewMemorySlots creates an empty MemorySlots
func NewMemorySlots() *MemorySlots {
	return &MemorySlots{values: make(map[string][]byte)}
}

func (m *MemorySlots) GetSlot(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	value, ok := m.values[key]
	if !ok {
		return nil, repository.ErrSlotNotFound
	}
	return append([]byte(nil), value...), nil
}

func (m *MemorySlots) SetSlot(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = append([]byte(nil), value...)
	m.writes++
	return nil
}

// Writes returns how many SetSlot calls succeeded
func (m *MemorySlots) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// MustWords decodes the words stored under key, panicking on failure
func (m *MemorySlots) MustWords(key string) []domain.Word {
	data, err := m.GetSlot(context.Background(), key)
	if err != nil {
		panic(err)
	}
	words, err := repository.DecodeWords(data)
	if err != nil {
		panic(err)
	}
	return words
}
