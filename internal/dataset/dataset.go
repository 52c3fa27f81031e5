// Package dataset holds the bundled word data: the first-run sample set,
// the demo import bundle and the static category list.
package dataset

import "wordcards/internal/domain"

var categories = []domain.Category{
	{ID: "daily", Name: "Daily Life", Color: "#FF6B6B"},
	{ID: "work", Name: "Work & Study", Color: "#4ECDC4"},
	{ID: "travel", Name: "Travel", Color: "#45B7D1"},
	{ID: "food", Name: "Food & Drink", Color: "#96CEB4"},
}

var sampleWords = []domain.Word{
	{
		ID:            "1",
		Word:          "breakfast",
		Pronunciation: "/ˈbrekfəst/",
		Meaning:       "the first meal of the day",
		Example:       "I usually have toast for breakfast.",
		Category:      "daily",
	},
	{
		ID:            "2",
		Word:          "neighbor",
		Pronunciation: "/ˈneɪbər/",
		Meaning:       "a person living next door or nearby",
		Example:       "Our neighbor helped us move the sofa.",
		Category:      "daily",
	},
	{
		ID:            "3",
		Word:          "deadline",
		Pronunciation: "/ˈdedlaɪn/",
		Meaning:       "the latest time by which something must be done",
		Example:       "The deadline for the report is Friday.",
		Category:      "work",
	},
	{
		ID:            "4",
		Word:          "schedule",
		Pronunciation: "/ˈskedʒuːl/",
		Meaning:       "a plan of times for events or tasks",
		Example:       "Let me check my schedule for next week.",
		Category:      "work",
	},
	{
		ID:            "5",
		Word:          "passport",
		Pronunciation: "/ˈpæspɔːrt/",
		Meaning:       "an official document for international travel",
		Example:       "Don't forget your passport at the hotel.",
		Category:      "travel",
	},
	{
		ID:            "6",
		Word:          "luggage",
		Pronunciation: "/ˈlʌɡɪdʒ/",
		Meaning:       "bags and cases carried by a traveler",
		Example:       "Please keep your luggage with you at all times.",
		Category:      "travel",
	},
	{
		ID:            "7",
		Word:          "delicious",
		Pronunciation: "/dɪˈlɪʃəs/",
		Meaning:       "having a very pleasant taste",
		Example:       "This soup is absolutely delicious.",
		Category:      "food",
	},
	{
		ID:            "8",
		Word:          "recipe",
		Pronunciation: "/ˈresəpi/",
		Meaning:       "instructions for preparing a dish",
		Example:       "Could you share the recipe for this cake?",
		Category:      "food",
	},
}

var demoCategories = []domain.Category{
	{ID: "business", Name: "Business English", Color: "#FF6B6B"},
	{ID: "technology", Name: "Technology", Color: "#4ECDC4"},
}

var demoWords = []domain.Word{
	{
		ID:            "101",
		Word:          "negotiate",
		Pronunciation: "/nɪˈɡoʊʃieɪt/",
		Meaning:       "to discuss in order to reach an agreement",
		Example:       "We need to negotiate a better price.",
		Category:      "business",
	},
	{
		ID:            "102",
		Word:          "algorithm",
		Pronunciation: "/ˈælɡərɪðəm/",
		Meaning:       "a set of rules for solving a problem",
		Example:       "The algorithm processes data efficiently.",
		Category:      "technology",
	},
	{
		ID:            "103",
		Word:          "innovative",
		Pronunciation: "/ˈɪnəveɪtɪv/",
		Meaning:       "introducing new ideas or methods",
		Example:       "The company is known for its innovative products.",
		Category:      "technology",
	},
	{
		ID:            "104",
		Word:          "strategic",
		Pronunciation: "/strəˈtiːdʒɪk/",
		Meaning:       "relating to long-term plans and goals",
		Example:       "We need a strategic plan for growth.",
		Category:      "business",
	},
}

// Categories returns the static category list
func Categories() []domain.Category {
	out := make([]domain.Category, len(categories))
	copy(out, categories)
	return out
}

// SampleWords returns the set used to seed an empty slot on first run
func SampleWords() []domain.Word {
	return domain.CloneWords(sampleWords)
}

// DemoBundle returns the built-in bundle offered by "import demo"
func DemoBundle() domain.Bundle {
	cats := make([]domain.Category, len(demoCategories))
	copy(cats, demoCategories)

	return domain.Bundle{
		Categories: cats,
		Words:      domain.CloneWords(demoWords),
		Metadata: &domain.BundleMetadata{
			Version: "1.0",
			Source:  "demo",
		},
	}
}
