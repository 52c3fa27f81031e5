package handler

import (
	"fmt"
	"strings"

	"wordcards/internal/domain"
)

func mainMenuText(stats domain.Stats) string {
	var b strings.Builder
	b.WriteString("📚 Word cards\n\n")
	fmt.Fprintf(&b, "Mastered %d / %d\n", stats.Mastered, stats.Total)
	fmt.Fprintf(&b, "Reviews: %d\n\n", stats.Reviews)
	b.WriteString("Choose a category or start learning:")
	return b.String()
}

func categoryText(category domain.Category, words []domain.Word) string {
	if len(words) == 0 {
		return fmt.Sprintf("📂 %s\n\nNo words yet.", category.Name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📂 %s (%d)\n\n", category.Name, len(words))
	for i, w := range words {
		mark := ""
		if w.Mastered {
			mark = " ✓"
		}
		fmt.Fprintf(&b, "%d. %s — %s%s\n", i+1, w.Word, w.Meaning, mark)
	}
	return b.String()
}

func masteredText(words []domain.Word) string {
	var b strings.Builder
	fmt.Fprintf(&b, "✅ Mastered words (%d)\n\n", len(words))
	for i, w := range words {
		fmt.Fprintf(&b, "%d. %s — %s\n", i+1, w.Word, w.Meaning)
	}
	return b.String()
}

func cardFrontText(word domain.Word, position, total int) string {
	text := fmt.Sprintf("🃏 %d / %d\n\n%s", position, total, word.Word)
	if word.Pronunciation != "" {
		text += "\n" + word.Pronunciation
	}
	return text
}

func cardBackText(word domain.Word, position, total int) string {
	text := cardFrontText(word, position, total)
	text += "\n\n💡 " + word.Meaning
	if word.Example != "" {
		text += "\n\n📝 " + word.Example
	}
	text += fmt.Sprintf("\n\nReviewed %d times", word.ReviewCount)
	return text
}
