package quiz

import (
	"math/rand/v2"
	"testing"

	"github.com/sangostudent/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCatalog is a mock implementation of Catalog
type mockCatalog struct {
	categories []models.Category
}

func (m *mockCatalog) Words() []models.WordEntry {
	var words []models.WordEntry
	for _, c := range m.categories {
		words = append(words, c.Words...)
	}
	return words
}

func word(id, sango, fr, ru string) models.WordEntry {
	return models.WordEntry{
		ID:         id,
		SourceText: sango,
		Translations: map[models.Language]string{
			models.LanguageFrench:  fr,
			models.LanguageRussian: ru,
		},
	}
}

var (
	numbers = models.Category{
		ID:    "numbers",
		Title: "Numbers",
		Words: []models.WordEntry{
			word("n1", "Oko", "Un", "Один"),
			word("n2", "Use", "Deux", "Два"),
			word("n3", "Ota", "Trois", "Три"),
			word("n4", "Osio", "Quatre", "Четыре"),
			word("n5", "Oku", "Cinq", "Пять"),
			word("n6", "Omene", "Six", "Шесть"),
		},
	}
	pair = models.Category{
		ID:    "pair",
		Title: "Pair",
		Words: []models.WordEntry{
			word("p1", "Mama", "Mère", "Мать"),
			word("p2", "Baba", "Père", "Отец"),
		},
	}
)

func newTestEngine(categories ...models.Category) *Engine {
	return NewEngine(&mockCatalog{categories: categories}, rand.NewPCG(1, 2))
}

func translations(c models.Category, lang models.Language) map[string]bool {
	result := make(map[string]bool)
	for _, w := range c.Words {
		result[w.Translation(lang)] = true
	}
	return result
}

func TestNewEngine(t *testing.T) {
	catalog := &mockCatalog{}

	engine := NewEngine(catalog, nil)

	assert.NotNil(t, engine)
	assert.Equal(t, catalog, engine.catalog)
	assert.NotNil(t, engine.rng)
}

func TestEngine_GenerateRound_NumbersExample(t *testing.T) {
	engine := newTestEngine(numbers, pair)

	round := engine.GenerateRound(numbers, 0, models.LanguageFrench)

	require.NotNil(t, round)
	assert.Equal(t, "n1", round.Target.ID)
	assert.Equal(t, "Un", round.CorrectAnswer())
	assert.Equal(t, models.LanguageFrench, round.Language)
	require.Len(t, round.Options, OptionCount)
	assert.Contains(t, round.Options, "Un")

	numberWords := translations(numbers, models.LanguageFrench)
	distinct := make(map[string]bool)
	for _, opt := range round.Options {
		assert.True(t, numberWords[opt], "option %q should come from the numbers category", opt)
		distinct[opt] = true
	}
	assert.Len(t, distinct, OptionCount)
	assert.False(t, round.Answered())
	assert.Empty(t, round.Selected)
}

func TestEngine_GenerateRound_ExactlyOneCorrect(t *testing.T) {
	engine := newTestEngine(numbers, pair)

	for _, lang := range models.SupportedLanguages() {
		for i := range numbers.Words {
			round := engine.GenerateRound(numbers, i, lang)
			require.Len(t, round.Options, OptionCount)

			correct := numbers.Words[i].Translation(lang)
			count := 0
			for _, opt := range round.Options {
				if opt == correct {
					count++
				}
			}
			assert.Equal(t, 1, count, "word %d in %s", i, lang)
		}
	}
}

func TestEngine_GenerateRound_FallbackToOtherCategories(t *testing.T) {
	engine := newTestEngine(numbers, pair)

	round := engine.GenerateRound(pair, 1, models.LanguageRussian)

	require.Len(t, round.Options, OptionCount)
	assert.Contains(t, round.Options, "Отец")
	// The only same-category distractor is always part of the round.
	assert.Contains(t, round.Options, "Мать")

	numberWords := translations(numbers, models.LanguageRussian)
	fromOthers := 0
	for _, opt := range round.Options {
		if numberWords[opt] {
			fromOthers++
		}
	}
	assert.Equal(t, 2, fromOthers)
}

func TestEngine_GenerateRound_DegradedCatalog(t *testing.T) {
	tiny := models.Category{
		ID:    "tiny",
		Title: "Tiny",
		Words: []models.WordEntry{
			word("t1", "A", "a", "а"),
			word("t2", "B", "b", "б"),
		},
	}
	engine := newTestEngine(tiny)

	round := engine.GenerateRound(tiny, 0, models.LanguageFrench)

	assert.ElementsMatch(t, []string{"a", "b"}, round.Options)
}

func TestEngine_GenerateRound_SingleWordCatalog(t *testing.T) {
	single := models.Category{ID: "one", Title: "One", Words: []models.WordEntry{word("o1", "A", "a", "а")}}
	engine := newTestEngine(single)

	round := engine.GenerateRound(single, 0, models.LanguageFrench)

	assert.Equal(t, []string{"a"}, round.Options)
}

func TestEngine_GenerateRound_DuplicateTranslationsKept(t *testing.T) {
	dup := models.Category{
		ID:    "dup",
		Title: "Dup",
		Words: []models.WordEntry{
			word("d1", "A", "same", "одно"),
			word("d2", "B", "same", "одно"),
			word("d3", "C", "other", "другое"),
			word("d4", "D", "target", "цель"),
		},
	}
	engine := newTestEngine(dup)

	round := engine.GenerateRound(dup, 3, models.LanguageFrench)

	assert.ElementsMatch(t, []string{"target", "same", "same", "other"}, round.Options)
}

func TestEngine_GenerateRound_OutOfRangePanics(t *testing.T) {
	engine := newTestEngine(numbers)

	assert.Panics(t, func() { engine.GenerateRound(numbers, -1, models.LanguageFrench) })
	assert.Panics(t, func() { engine.GenerateRound(numbers, len(numbers.Words), models.LanguageFrench) })
}

func TestEngine_GenerateRound_OptionOrderVaries(t *testing.T) {
	engine := newTestEngine(numbers)

	positions := make(map[int]bool)
	for range 200 {
		round := engine.GenerateRound(numbers, 0, models.LanguageFrench)
		for i, opt := range round.Options {
			if opt == "Un" {
				positions[i] = true
			}
		}
	}
	assert.Len(t, positions, OptionCount, "correct answer should appear in every position")
}

func TestSubmitAnswer(t *testing.T) {
	tests := []struct {
		name            string
		chosen          string
		hearts          int
		expectedOutcome models.Outcome
		expectedHearts  int
		expectedXP      int
	}{
		{
			name:            "correct answer adds experience",
			chosen:          "Un",
			hearts:          5,
			expectedOutcome: models.OutcomeCorrect,
			expectedHearts:  5,
			expectedXP:      130,
		},
		{
			name:            "wrong answer takes a heart",
			chosen:          "Deux",
			hearts:          5,
			expectedOutcome: models.OutcomeWrong,
			expectedHearts:  4,
			expectedXP:      120,
		},
		{
			name:            "wrong answer with no hearts left",
			chosen:          "Deux",
			hearts:          0,
			expectedOutcome: models.OutcomeWrong,
			expectedHearts:  0,
			expectedXP:      120,
		},
		{
			name:            "unknown option is wrong",
			chosen:          "not an option",
			hearts:          1,
			expectedOutcome: models.OutcomeWrong,
			expectedHearts:  0,
			expectedXP:      120,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newTestEngine(numbers)
			round := engine.GenerateRound(numbers, 0, models.LanguageFrench)
			progress := models.NewSessionProgress(tt.hearts, 120, 3)

			outcome, applied := SubmitAnswer(round, tt.chosen, progress)

			assert.True(t, applied)
			assert.Equal(t, tt.expectedOutcome, outcome)
			assert.Equal(t, tt.expectedOutcome, round.Outcome)
			assert.Equal(t, tt.chosen, round.Selected)
			assert.Equal(t, tt.expectedHearts, progress.Hearts)
			assert.Equal(t, tt.expectedXP, progress.Experience)
			assert.Equal(t, 3, progress.Streak)
		})
	}
}

func TestSubmitAnswer_OncePerRound(t *testing.T) {
	engine := newTestEngine(numbers)
	round := engine.GenerateRound(numbers, 0, models.LanguageFrench)
	progress := models.NewSessionProgress(5, 0, 0)

	outcome, applied := SubmitAnswer(round, "Deux", progress)
	require.True(t, applied)
	require.Equal(t, models.OutcomeWrong, outcome)

	outcome, applied = SubmitAnswer(round, "Un", progress)

	assert.False(t, applied)
	assert.Equal(t, models.OutcomeWrong, outcome)
	assert.Equal(t, "Deux", round.Selected)
	assert.Equal(t, 4, progress.Hearts)
	assert.Equal(t, 0, progress.Experience)
}

func TestSubmitAnswer_HeartsNeverNegative(t *testing.T) {
	engine := newTestEngine(numbers)
	progress := models.NewSessionProgress(5, 0, 0)

	for i := range 5 {
		round := engine.GenerateRound(numbers, 0, models.LanguageFrench)
		SubmitAnswer(round, "wrong", progress)
		assert.Equal(t, 4-i, progress.Hearts)
	}

	round := engine.GenerateRound(numbers, 0, models.LanguageFrench)
	outcome, applied := SubmitAnswer(round, "wrong", progress)

	assert.True(t, applied)
	assert.Equal(t, models.OutcomeWrong, outcome)
	assert.Equal(t, 0, progress.Hearts)
}

func TestSubmitAnswer_UsesRoundLanguage(t *testing.T) {
	engine := newTestEngine(numbers)
	round := engine.GenerateRound(numbers, 1, models.LanguageRussian)
	progress := models.NewSessionProgress(5, 0, 0)

	outcome, _ := SubmitAnswer(round, "Два", progress)

	assert.Equal(t, models.OutcomeCorrect, outcome)
	assert.Equal(t, ExperienceReward, progress.Experience)
}

func TestEngine_Advance(t *testing.T) {
	t.Run("middle of category", func(t *testing.T) {
		engine := newTestEngine(numbers)
		progress := models.NewSessionProgress(5, 0, 0)

		step := engine.Advance(numbers, 2, models.LanguageRussian, progress)

		assert.False(t, step.Completed)
		assert.Equal(t, 3, step.Index)
		require.NotNil(t, step.Round)
		assert.Equal(t, "n4", step.Round.Target.ID)
		assert.Equal(t, models.LanguageRussian, step.Round.Language)
		assert.Empty(t, progress.CompletedCategoryIDs)
	})

	t.Run("last word completes category", func(t *testing.T) {
		engine := newTestEngine(numbers)
		progress := models.NewSessionProgress(5, 0, 0)
		last := len(numbers.Words) - 1

		step := engine.Advance(numbers, last, models.LanguageFrench, progress)

		assert.True(t, step.Completed)
		assert.Nil(t, step.Round)
		assert.Equal(t, last, step.Index)
		assert.Equal(t, []string{"numbers"}, progress.CompletedCategoryIDs)
	})

	t.Run("completion is idempotent", func(t *testing.T) {
		engine := newTestEngine(numbers, pair)
		progress := models.NewSessionProgress(5, 0, 0)
		last := len(numbers.Words) - 1

		engine.Advance(numbers, last, models.LanguageFrench, progress)
		engine.Advance(pair, 1, models.LanguageFrench, progress)
		engine.Advance(numbers, last, models.LanguageFrench, progress)

		assert.Equal(t, []string{"numbers", "pair"}, progress.CompletedCategoryIDs)
	})
}

func TestProgress(t *testing.T) {
	assert.Equal(t, 0.0, Progress(0, 4))
	assert.Equal(t, 50.0, Progress(2, 4))
	assert.Equal(t, 0.0, Progress(1, 0))
}
