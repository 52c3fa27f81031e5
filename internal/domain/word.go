package domain

// Word is a single flashcard record
type Word struct {
	ID            string `json:"id"`
	Word          string `json:"word"`
	Pronunciation string `json:"pronunciation"`
	Meaning       string `json:"meaning"`
	Example       string `json:"example"`
	Category      string `json:"category"`
	Mastered      bool   `json:"mastered"`
	ReviewCount   int    `json:"reviewCount"`
}

// Category is static reference data for grouping words
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// CloneWords returns a copy of words that never shares a backing array with the input
func CloneWords(words []Word) []Word {
	out := make([]Word, len(words))
	copy(out, words)
	return out
}
