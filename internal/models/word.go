package models

// WordEntry represents a Sango word or phrase in the vocabulary catalog
type WordEntry struct {
	ID           string              `json:"id" yaml:"id"`
	SourceText   string              `json:"sourceText" yaml:"sango"` // Sango text
	Translations map[Language]string `json:"translations" yaml:"translations"`
}

// Translation returns the translation of the word in the given language
func (w WordEntry) Translation(lang Language) string {
	return w.Translations[lang]
}

// Category represents a themed group of vocabulary words
type Category struct {
	ID    string      `json:"id" yaml:"id"`
	Title string      `json:"title" yaml:"title"`
	Words []WordEntry `json:"words" yaml:"words"`
}

// CategorySummary represents a category in the catalog listing
type CategorySummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	WordCount int    `json:"wordCount"`
	QuizReady bool   `json:"quizReady"` // Category has enough words for a full set of quiz options
}

// WordResponse represents a word in API responses with a locale-specific translation
type WordResponse struct {
	ID          string `json:"id"`
	SourceText  string `json:"sourceText"`
	Translation string `json:"translation"`
}

// CategoryResponse represents a category with its words for one locale
type CategoryResponse struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Language Language       `json:"language"`
	Words    []WordResponse `json:"words"`
}
