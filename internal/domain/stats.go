package domain

// CategoryCount is the number of words tagged with a category
type CategoryCount struct {
	Category Category `json:"category"`
	Words    int      `json:"words"`
	Mastered int      `json:"mastered"`
}

// Stats summarizes learning progress
type Stats struct {
	Total         int             `json:"total"`
	Mastered      int             `json:"mastered"`
	Unmastered    int             `json:"unmastered"`
	Reviews       int             `json:"reviews"`
	Categories    []CategoryCount `json:"categories"`
	Uncategorized int             `json:"uncategorized"`
}
