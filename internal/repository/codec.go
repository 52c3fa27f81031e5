package repository

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"wordcards/internal/domain"
)

// SlotVersion is written into every encoded word list.
// Version 0 is the legacy bare JSON array.
const SlotVersion = 1

// ErrUnsupportedVersion means the slot was written by a newer schema
var ErrUnsupportedVersion = errors.New("unsupported slot version")

type slotEnvelope struct {
	Version int           `json:"version"`
	Words   []domain.Word `json:"words"`
}

// EncodeWords serializes the full word list for the slot
func EncodeWords(words []domain.Word) ([]byte, error) {
	if words == nil {
		words = []domain.Word{}
	}
	data, err := json.Marshal(slotEnvelope{Version: SlotVersion, Words: words})
	if err != nil {
		return nil, fmt.Errorf("encode words: %w", err)
	}
	return data, nil
}

// DecodeWords parses a slot value. Both the versioned envelope and
// a legacy bare array are accepted.
func DecodeWords(data []byte) ([]domain.Word, error) {
	trimmed := bytes.TrimSpace(data)

	if len(trimmed) > 0 && trimmed[0] == '{' {
		var env slotEnvelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("decode words: %w", err)
		}
		if env.Version < 1 || env.Version > SlotVersion {
			return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, env.Version)
		}
		return nonNil(env.Words), nil
	}

	var words []domain.Word
	if err := json.Unmarshal(trimmed, &words); err != nil {
		return nil, fmt.Errorf("decode words: %w", err)
	}
	return nonNil(words), nil
}

func nonNil(words []domain.Word) []domain.Word {
	if words == nil {
		return []domain.Word{}
	}
	return words
}
