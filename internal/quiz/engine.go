// Package quiz generates multiple-choice rounds and applies their results to session progress
package quiz

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/samber/lo"
	"github.com/sangostudent/backend/internal/models"
)

const (
	// OptionCount is the number of options of a full quiz round
	OptionCount = 4
	// DistractorCount is the number of wrong options of a full quiz round
	DistractorCount = OptionCount - 1
	// ExperienceReward is added to experience for a correct answer
	ExperienceReward = 10
	// HeartPenalty is taken from hearts for a wrong answer
	HeartPenalty = 1
)

// Catalog is the interface that wraps the vocabulary lookup used for distractors
type Catalog interface {
	// Method Words returns every word of the catalog in catalog order.
	//
	// Words of other categories are used as distractors when a category is too small.
	Words() []models.WordEntry
}

// Engine builds quiz rounds.
//
// The random source is shared, so Engine serialises access to it.
type Engine struct {
	catalog Catalog
	mu      sync.Mutex
	rng     *rand.Rand
}

// NewEngine creates a new quiz engine.
// A nil source means a randomly seeded PCG source.
func NewEngine(catalog Catalog, src rand.Source) *Engine {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Engine{
		catalog: catalog,
		rng:     rand.New(src),
	}
}

// GenerateRound builds the round for the word at wordIndex of the category.
//
// Distractors are taken from the same category first, in random order.
// Only if the category cannot supply enough of them, words of other categories are appended.
// With a catalog of fewer than OptionCount words the round has fewer options.
// Distractor texts are not deduplicated: two words sharing a translation may both appear.
//
// wordIndex must be in [0, len(category.Words)), otherwise GenerateRound panics.
func (e *Engine) GenerateRound(category models.Category, wordIndex int, lang models.Language) *models.QuizRound {
	if wordIndex < 0 || wordIndex >= len(category.Words) {
		panic(fmt.Sprintf("quiz: word index %d out of range [0, %d) in category %q", wordIndex, len(category.Words), category.ID))
	}
	correct := category.Words[wordIndex]

	inCategory := make(map[string]struct{}, len(category.Words))
	for _, w := range category.Words {
		inCategory[w.ID] = struct{}{}
	}

	distractors := lo.FilterMap(category.Words, func(w models.WordEntry, _ int) (string, bool) {
		return w.Translation(lang), w.ID != correct.ID
	})
	e.shuffle(distractors)

	if len(distractors) < DistractorCount {
		others := lo.FilterMap(e.catalog.Words(), func(w models.WordEntry, _ int) (string, bool) {
			_, same := inCategory[w.ID]
			return w.Translation(lang), !same && w.ID != correct.ID
		})
		e.shuffle(others)
		distractors = append(distractors, others...)
	}
	if len(distractors) > DistractorCount {
		distractors = distractors[:DistractorCount]
	}

	options := make([]string, 0, len(distractors)+1)
	options = append(options, correct.Translation(lang))
	options = append(options, distractors...)
	e.shuffle(options)

	return &models.QuizRound{
		Target:   correct,
		Language: lang,
		Options:  options,
	}
}

// Step represents the result of advancing through a category
type Step struct {
	Completed bool              // The category was finished and marked completed
	Index     int               // Index of the next word, unchanged when Completed
	Round     *models.QuizRound // Round for the next word, nil when Completed
}

// Advance moves past the word at wordIndex.
//
// On the last word the category is added to the completed categories of progress.
// Completion is idempotent: advancing past the last word again adds nothing.
// Otherwise a fresh round for the next word is generated in lang.
func (e *Engine) Advance(category models.Category, wordIndex int, lang models.Language, progress *models.SessionProgress) Step {
	if wordIndex >= len(category.Words)-1 {
		progress.MarkCompleted(category.ID)
		return Step{Completed: true, Index: wordIndex}
	}

	next := wordIndex + 1
	return Step{
		Index: next,
		Round: e.GenerateRound(category, next, lang),
	}
}

// SubmitAnswer evaluates the chosen option and updates progress.
//
// A correct answer adds ExperienceReward to experience, a wrong one takes HeartPenalty
// from hearts without going below zero.
// A round can be answered once: later calls return the stored outcome and applied=false
// without touching progress.
func SubmitAnswer(round *models.QuizRound, chosen string, progress *models.SessionProgress) (outcome models.Outcome, applied bool) {
	if round.Answered() {
		return round.Outcome, false
	}

	round.Selected = chosen
	if chosen == round.CorrectAnswer() {
		round.Outcome = models.OutcomeCorrect
		progress.Experience += ExperienceReward
	} else {
		round.Outcome = models.OutcomeWrong
		progress.Hearts = max(0, progress.Hearts-HeartPenalty)
	}

	return round.Outcome, true
}

// Progress returns the percentage of the category already passed in a quiz
func Progress(index, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(index) / float64(total) * 100
}

// shuffle permutes s uniformly in place
func (e *Engine) shuffle(s []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rng.Shuffle(len(s), func(i, j int) {
		s[i], s[j] = s[j], s[i]
	})
}
