package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"wordcards/internal/domain"
)

// rawBundle keeps the top-level fields undecoded so presence is checked
// before the shape of their contents
type rawBundle struct {
	Categories json.RawMessage `json:"categories"`
	Words      json.RawMessage `json:"words"`
	Metadata   json.RawMessage `json:"metadata"`
}

// bundleWord is a word as found in an external bundle. Ids may be numbers
// and review counts may be numeric strings.
type bundleWord struct {
	ID            looseString `json:"id"`
	Word          string      `json:"word"`
	Pronunciation string      `json:"pronunciation"`
	Meaning       string      `json:"meaning"`
	Example       string      `json:"example"`
	Category      string      `json:"category"`
	Mastered      bool        `json:"mastered"`
	ReviewCount   looseInt    `json:"reviewCount"`
}

// decodeBundle parses r into a Bundle.
// Malformed JSON is ErrDecodeBundle; well-formed JSON of the wrong shape is ErrInvalidBundle.
func decodeBundle(r io.Reader) (domain.Bundle, error) {
	var top json.RawMessage
	if err := json.NewDecoder(r).Decode(&top); err != nil {
		return domain.Bundle{}, fmt.Errorf("%w: %v", domain.ErrDecodeBundle, err)
	}

	top = bytes.TrimSpace(top)
	if len(top) == 0 || top[0] != '{' {
		return domain.Bundle{}, fmt.Errorf("%w: bundle is not a JSON object", domain.ErrInvalidBundle)
	}

	var raw rawBundle
	if err := json.Unmarshal(top, &raw); err != nil {
		return domain.Bundle{}, fmt.Errorf("%w: %v", domain.ErrInvalidBundle, err)
	}
	if isAbsent(raw.Categories) || isAbsent(raw.Words) {
		return domain.Bundle{}, domain.ErrInvalidBundle
	}

	var bundle domain.Bundle
	if err := json.Unmarshal(raw.Categories, &bundle.Categories); err != nil {
		return domain.Bundle{}, fmt.Errorf("%w: categories: %v", domain.ErrInvalidBundle, err)
	}

	var words []bundleWord
	if err := json.Unmarshal(raw.Words, &words); err != nil {
		return domain.Bundle{}, fmt.Errorf("%w: words: %v", domain.ErrInvalidBundle, err)
	}
	bundle.Words = make([]domain.Word, 0, len(words))
	for _, w := range words {
		bundle.Words = append(bundle.Words, domain.Word{
			ID:            string(w.ID),
			Word:          w.Word,
			Pronunciation: w.Pronunciation,
			Meaning:       w.Meaning,
			Example:       w.Example,
			Category:      w.Category,
			Mastered:      w.Mastered,
			ReviewCount:   int(w.ReviewCount),
		})
	}

	// Metadata is informational only, so a malformed block is dropped
	if !isAbsent(raw.Metadata) {
		var meta domain.BundleMetadata
		if err := json.Unmarshal(raw.Metadata, &meta); err == nil {
			bundle.Metadata = &meta
		}
	}

	return bundle, nil
}

func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

// looseString accepts a JSON string or number
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = looseString(v)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number, got %s", data)
	}
	*s = looseString(n.String())
	return nil
}

// looseInt accepts a JSON number or a numeric string; fractions are truncated
type looseInt int

func (i *looseInt) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	text := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
	}

	if n, err := strconv.Atoi(text); err == nil {
		*i = looseInt(n)
		return nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Errorf("reviewCount must be a number, got %s", data)
	}
	*i = looseInt(f)
	return nil
}
