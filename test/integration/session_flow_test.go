package integration

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/sangostudent/backend/internal/config"
	"github.com/sangostudent/backend/internal/database"
	"github.com/sangostudent/backend/internal/handlers"
	"github.com/sangostudent/backend/internal/middleware"
	"github.com/sangostudent/backend/internal/models"
	"github.com/sangostudent/backend/internal/quiz"
	"github.com/sangostudent/backend/internal/repositories"
	"github.com/sangostudent/backend/internal/services"
	"github.com/sangostudent/backend/internal/vocabulary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	testDB     *sql.DB
	testRouter chi.Router
	testLogger *zap.Logger
)

// setupTestRouter creates a test router with all handlers
func setupTestRouter(db *sql.DB, logger *zap.Logger) chi.Router {
	store := vocabulary.MustLoad()
	engine := quiz.NewEngine(store, nil)
	repo := repositories.NewAttemptRepository(db, logger)

	catalogSvc := services.NewCatalogService(store, models.LanguageFrench, logger)
	sessionSvc := services.NewSessionService(store, engine, repo, services.SessionConfig{
		DefaultLanguage:   models.LanguageFrench,
		InitialHearts:     5,
		InitialExperience: 0,
		InitialStreak:     0,
	}, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(logger))
	handlers.NewHealthHandler(sessionSvc, db, logger).RegisterRoutes(r)
	r.Route("/api/v1", func(r chi.Router) {
		handlers.NewCatalogHandler(catalogSvc, logger).RegisterRoutes(r)
		handlers.NewSessionHandler(sessionSvc, logger).RegisterRoutes(r)
	})

	return r
}

// TestMain sets up and tears down the test environment
func TestMain(m *testing.M) {
	// Initialize logger
	var err error
	testLogger, err = zap.NewDevelopment()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	dir, err := os.MkdirTemp("", "sango-integration")
	if err != nil {
		panic(fmt.Sprintf("Failed to create temp dir: %v", err))
	}

	// Setup test database, SQLite unless TEST_DB_* points to MySQL
	cfg, err := config.LoadTestConfig(filepath.Join(dir, "attempts.db"))
	if err != nil {
		panic(fmt.Sprintf("Failed to load test config: %v", err))
	}

	testDB, err = database.Connect(cfg.Database.Driver, cfg.DSN())
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to test database: %v", err))
	}

	if err := database.RunMigrations(testDB, cfg.Database.Driver); err != nil {
		panic(fmt.Sprintf("Failed to run migrations: %v", err))
	}

	testRouter = setupTestRouter(testDB, testLogger)

	code := m.Run()

	testDB.Close()
	os.RemoveAll(dir)
	os.Exit(code)
}

// doRequest sends a request to the test router and decodes the JSON response into out
func doRequest(t *testing.T, method, path string, body any, out any) int {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	testRouter.ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	if out != nil && w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w.Code
}

// firstQuizReadyCategory returns the first category with enough words for a full quiz
func firstQuizReadyCategory(t *testing.T) models.CategorySummary {
	t.Helper()
	var categories []models.CategorySummary
	require.Equal(t, http.StatusOK, doRequest(t, http.MethodGet, "/api/v1/categories", nil, &categories))
	require.NotEmpty(t, categories)

	for _, c := range categories {
		if c.QuizReady {
			return c
		}
	}
	t.Fatal("no quiz ready category in the vocabulary")
	return models.CategorySummary{}
}

func TestIntegration_Health(t *testing.T) {
	var resp handlers.HealthResponse
	code := doRequest(t, http.MethodGet, "/health", nil, &resp)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "enabled", resp.AttemptLog)
}

func TestIntegration_GetCategory(t *testing.T) {
	category := firstQuizReadyCategory(t)

	tests := []struct {
		name           string
		locale         string
		expectedStatus int
		expectedLang   models.Language
	}{
		{name: "default locale", locale: "", expectedStatus: http.StatusOK, expectedLang: models.LanguageFrench},
		{name: "russian", locale: "ru", expectedStatus: http.StatusOK, expectedLang: models.LanguageRussian},
		{name: "unsupported locale", locale: "en", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := "/api/v1/categories/" + category.ID
			if tt.locale != "" {
				path += "?locale=" + tt.locale
			}

			var resp models.CategoryResponse
			code := doRequest(t, http.MethodGet, path, nil, &resp)

			assert.Equal(t, tt.expectedStatus, code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, tt.expectedLang, resp.Language)
				assert.Len(t, resp.Words, category.WordCount)
				for _, w := range resp.Words {
					assert.NotEmpty(t, w.Translation)
				}
			}
		})
	}

	t.Run("unknown category", func(t *testing.T) {
		var resp handlers.ErrorResponse
		code := doRequest(t, http.MethodGet, "/api/v1/categories/does-not-exist", nil, &resp)

		assert.Equal(t, http.StatusNotFound, code)
		assert.Contains(t, resp.Error, "category not found")
	})
}

func TestIntegration_QuizFlow(t *testing.T) {
	category := firstQuizReadyCategory(t)

	// Correct answers by source text
	var words models.CategoryResponse
	require.Equal(t, http.StatusOK, doRequest(t, http.MethodGet, "/api/v1/categories/"+category.ID+"?locale=ru", nil, &words))
	answers := make(map[string]string, len(words.Words))
	for _, w := range words.Words {
		answers[w.SourceText] = w.Translation
	}

	var sess models.SessionResponse
	require.Equal(t, http.StatusCreated, doRequest(t, http.MethodPost, "/api/v1/sessions", models.CreateSessionRequest{Language: "ru"}, &sess))
	require.NotEmpty(t, sess.ID)
	assert.Equal(t, models.ScreenHome, sess.Screen)
	assert.Equal(t, models.LanguageRussian, sess.Language)
	base := "/api/v1/sessions/" + sess.ID

	require.Equal(t, http.StatusOK, doRequest(t, http.MethodPost, base+"/activities",
		models.StartActivityRequest{CategoryID: category.ID, Activity: "quiz"}, &sess))
	require.Equal(t, models.ScreenQuiz, sess.Screen)
	require.NotNil(t, sess.Quiz)

	// Continue before answering is rejected
	assert.Equal(t, http.StatusConflict, doRequest(t, http.MethodPost, base+"/quiz/continue", nil, nil))

	wrongDone := false
	for i := 0; i < category.WordCount; i++ {
		require.NotNil(t, sess.Quiz, "round %d", i)
		assert.Equal(t, i, sess.Quiz.Index)
		assert.Len(t, sess.Quiz.Options, quiz.OptionCount)

		correct, ok := answers[sess.Quiz.SourceText]
		require.True(t, ok, "unknown source text %q", sess.Quiz.SourceText)
		assert.Contains(t, sess.Quiz.Options, correct)

		// The first round is answered wrong once
		option := correct
		if !wrongDone {
			for _, o := range sess.Quiz.Options {
				if o != correct {
					option = o
					break
				}
			}
		}

		var answer models.AnswerResponse
		require.Equal(t, http.StatusOK, doRequest(t, http.MethodPost, base+"/quiz/answer", models.AnswerRequest{Option: option}, &answer))
		assert.True(t, answer.Applied)
		if !wrongDone {
			assert.Equal(t, models.OutcomeWrong, answer.Outcome)
			wrongDone = true

			// A second answer to the same round changes nothing
			var again models.AnswerResponse
			require.Equal(t, http.StatusOK, doRequest(t, http.MethodPost, base+"/quiz/answer", models.AnswerRequest{Option: correct}, &again))
			assert.False(t, again.Applied)
			assert.Equal(t, models.OutcomeWrong, again.Outcome)
		} else {
			assert.Equal(t, models.OutcomeCorrect, answer.Outcome)
		}
		assert.Equal(t, correct, answer.Session.Quiz.CorrectAnswer)

		var next models.ContinueResponse
		require.Equal(t, http.StatusOK, doRequest(t, http.MethodPost, base+"/quiz/continue", nil, &next))
		sess = *next.Session
		assert.Equal(t, i == category.WordCount-1, next.CategoryCompleted)
	}

	assert.Equal(t, models.ScreenHome, sess.Screen)
	assert.Equal(t, 4, sess.Progress.Hearts)
	assert.Equal(t, (category.WordCount-1)*quiz.ExperienceReward, sess.Progress.Experience)
	assert.Contains(t, sess.Progress.CompletedCategoryIDs, category.ID)

	var summary models.AttemptSummary
	require.Equal(t, http.StatusOK, doRequest(t, http.MethodGet, base+"/attempts/summary", nil, &summary))
	assert.Equal(t, models.AttemptSummary{
		SessionID: sess.ID,
		Total:     category.WordCount,
		Correct:   category.WordCount - 1,
		Wrong:     1,
	}, summary)

	assert.Equal(t, http.StatusNoContent, doRequest(t, http.MethodDelete, base, nil, nil))
	assert.Equal(t, http.StatusNotFound, doRequest(t, http.MethodGet, base, nil, nil))
}

func TestIntegration_FlashcardsAndDuel(t *testing.T) {
	category := firstQuizReadyCategory(t)

	var sess models.SessionResponse
	require.Equal(t, http.StatusCreated, doRequest(t, http.MethodPost, "/api/v1/sessions", nil, &sess))
	assert.Equal(t, models.LanguageFrench, sess.Language)
	base := "/api/v1/sessions/" + sess.ID

	require.Equal(t, http.StatusOK, doRequest(t, http.MethodPost, base+"/activities",
		models.StartActivityRequest{CategoryID: category.ID, Activity: "flashcards"}, &sess))
	require.NotNil(t, sess.Flashcards)
	assert.Empty(t, sess.Flashcards.Translation)

	require.Equal(t, http.StatusOK, doRequest(t, http.MethodPost, base+"/flashcards/flip", nil, &sess))
	assert.True(t, sess.Flashcards.Flipped)
	assert.NotEmpty(t, sess.Flashcards.Translation)

	// Flashcards cannot be left for the duel lobby directly
	assert.Equal(t, http.StatusConflict, doRequest(t, http.MethodPost, base+"/duel", nil, nil))

	for i := 0; i < category.WordCount; i++ {
		sess = models.SessionResponse{}
		require.Equal(t, http.StatusOK, doRequest(t, http.MethodPost, base+"/flashcards/next", nil, &sess))
	}
	assert.Equal(t, models.ScreenHome, sess.Screen)
	assert.Empty(t, sess.Progress.CompletedCategoryIDs)

	var lobby models.SessionResponse
	require.Equal(t, http.StatusOK, doRequest(t, http.MethodPost, base+"/duel", nil, &lobby))
	assert.Equal(t, models.ScreenDuel, lobby.Screen)

	var created models.SessionResponse
	require.Equal(t, http.StatusOK, doRequest(t, http.MethodPost, base+"/duel/room", nil, &created))
	require.NotNil(t, created.Duel)
	assert.Len(t, created.Duel.Code, 5)

	var again models.SessionResponse
	require.Equal(t, http.StatusOK, doRequest(t, http.MethodPost, base+"/duel/room", nil, &again))
	assert.Equal(t, created.Duel.Code, again.Duel.Code)

	var cancelled models.SessionResponse
	require.Equal(t, http.StatusOK, doRequest(t, http.MethodDelete, base+"/duel/room", nil, &cancelled))
	assert.Equal(t, models.ScreenDuel, cancelled.Screen)
	if cancelled.Duel != nil {
		assert.Empty(t, cancelled.Duel.Code)
	}

	var home models.SessionResponse
	require.Equal(t, http.StatusOK, doRequest(t, http.MethodPost, base+"/home", nil, &home))
	assert.Equal(t, models.ScreenHome, home.Screen)
	assert.Nil(t, home.Duel)
}
