// Package vocabulary provides the read-only Sango vocabulary catalog
package vocabulary

import (
	"bytes"
	_ "embed"
	"fmt"
	"maps"

	"github.com/sangostudent/backend/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogData []byte

// catalogFile represents the YAML structure of the catalog asset
type catalogFile struct {
	Categories []models.Category `yaml:"categories"`
}

// Store holds the immutable vocabulary catalog.
//
// A Store never changes after construction, so it is safe for concurrent use.
// All accessors return copies; callers cannot modify the catalog.
type Store struct {
	categories []models.Category
	byID       map[string]int
	wordOwner  map[string]string // word ID -> category ID
}

// Load builds a Store from the catalog embedded into the binary
func Load() (*Store, error) {
	return Parse(catalogData)
}

// MustLoad is like Load but panics if the embedded catalog is invalid
func MustLoad() *Store {
	s, err := Load()
	if err != nil {
		panic(fmt.Sprintf("vocabulary: load embedded catalog: %v", err))
	}
	return s
}

// Parse builds a Store from a YAML catalog document
func Parse(data []byte) (*Store, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var file catalogFile
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	return New(file.Categories)
}

// New builds a Store from the given categories.
//
// Category IDs must be unique, word IDs must be unique across the whole catalog
// and every word must have a translation for every supported language.
// Categories with fewer words than a full quiz needs are accepted.
func New(categories []models.Category) (*Store, error) {
	s := &Store{
		categories: make([]models.Category, 0, len(categories)),
		byID:       make(map[string]int, len(categories)),
		wordOwner:  make(map[string]string),
	}

	for _, c := range categories {
		if c.ID == "" {
			return nil, fmt.Errorf("category with empty id")
		}
		if c.Title == "" {
			return nil, fmt.Errorf("category %q has empty title", c.ID)
		}
		if _, ok := s.byID[c.ID]; ok {
			return nil, fmt.Errorf("duplicate category id %q", c.ID)
		}

		words := make([]models.WordEntry, 0, len(c.Words))
		for _, w := range c.Words {
			if w.ID == "" {
				return nil, fmt.Errorf("category %q has a word with empty id", c.ID)
			}
			if owner, ok := s.wordOwner[w.ID]; ok {
				return nil, fmt.Errorf("duplicate word id %q in categories %q and %q", w.ID, owner, c.ID)
			}
			if w.SourceText == "" {
				return nil, fmt.Errorf("word %q has empty source text", w.ID)
			}
			for _, lang := range models.SupportedLanguages() {
				if w.Translation(lang) == "" {
					return nil, fmt.Errorf("word %q has no %s translation", w.ID, lang)
				}
			}
			s.wordOwner[w.ID] = c.ID
			words = append(words, copyWord(w))
		}

		s.byID[c.ID] = len(s.categories)
		s.categories = append(s.categories, models.Category{ID: c.ID, Title: c.Title, Words: words})
	}

	return s, nil
}

// Categories returns all categories in catalog order
func (s *Store) Categories() []models.Category {
	result := make([]models.Category, len(s.categories))
	for i, c := range s.categories {
		result[i] = copyCategory(c)
	}
	return result
}

// Category returns the category with the given ID
func (s *Store) Category(id string) (models.Category, bool) {
	i, ok := s.byID[id]
	if !ok {
		return models.Category{}, false
	}
	return copyCategory(s.categories[i]), true
}

// Words returns every word of the catalog in catalog order
func (s *Store) Words() []models.WordEntry {
	var words []models.WordEntry
	for _, c := range s.categories {
		for _, w := range c.Words {
			words = append(words, copyWord(w))
		}
	}
	return words
}

// CategoryOf returns the ID of the category that holds the word
func (s *Store) CategoryOf(wordID string) (string, bool) {
	id, ok := s.wordOwner[wordID]
	return id, ok
}

func copyCategory(c models.Category) models.Category {
	words := make([]models.WordEntry, len(c.Words))
	for i, w := range c.Words {
		words[i] = copyWord(w)
	}
	return models.Category{ID: c.ID, Title: c.Title, Words: words}
}

func copyWord(w models.WordEntry) models.WordEntry {
	return models.WordEntry{ID: w.ID, SourceText: w.SourceText, Translations: maps.Clone(w.Translations)}
}
