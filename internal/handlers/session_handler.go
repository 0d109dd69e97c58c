package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sangostudent/backend/internal/models"
	"go.uber.org/zap"
)

// SessionService is the interface that wraps methods for learner session business logic.
//
// Every method addressing a session by "id" returns an error wrapping ErrSessionNotFound
// if the session does not exist or was evicted after being idle.
// Methods that are not allowed on the current screen return an error wrapping ErrInvalidTransition.
type SessionService interface {
	// Method Create starts a new session on the home screen.
	//
	// "languageParam" must be either "fr" (French) or "ru" (Russian); an empty value means the default language.
	Create(ctx context.Context, languageParam string) (*models.SessionResponse, error)
	// Method Get returns the current state of a session.
	Get(ctx context.Context, id string) (*models.SessionResponse, error)
	// Method Delete ends a session.
	Delete(ctx context.Context, id string) error
	// Method SetLanguage switches the target language of a session.
	//
	// An unanswered quiz round is rebuilt in the new language, an answered one is kept.
	SetLanguage(ctx context.Context, id string, languageParam string) (*models.SessionResponse, error)
	// Method StartActivity opens flashcards or a quiz over a category from the home screen.
	//
	// "activityParam" must be either "flashcards" or "quiz".
	StartActivity(ctx context.Context, id string, categoryID string, activityParam string) (*models.SessionResponse, error)
	// Method FlipCard turns the current flashcard over.
	FlipCard(ctx context.Context, id string) (*models.SessionResponse, error)
	// Method NextCard moves to the next flashcard. After the last card the session returns home.
	NextCard(ctx context.Context, id string) (*models.SessionResponse, error)
	// Method PrevCard moves to the previous flashcard. On the first card nothing changes.
	PrevCard(ctx context.Context, id string) (*models.SessionResponse, error)
	// Method Answer submits an option for the current quiz round.
	//
	// Only the first answer of a round changes progress; later ones report "Applied" as false.
	Answer(ctx context.Context, id string, option string) (*models.AnswerResponse, error)
	// Method Continue advances the quiz once the current round was answered.
	//
	// If the round is not answered yet, an error wrapping ErrRoundNotAnswered is returned.
	Continue(ctx context.Context, id string) (*models.ContinueResponse, error)
	// Method Exit returns a session to the home screen from any screen.
	Exit(ctx context.Context, id string) (*models.SessionResponse, error)
	// Method OpenDuel opens the duel lobby from the home screen.
	OpenDuel(ctx context.Context, id string) (*models.SessionResponse, error)
	// Method CreateRoom generates a duel room code; an existing code is kept.
	CreateRoom(ctx context.Context, id string) (*models.SessionResponse, error)
	// Method CancelRoom drops the duel room code.
	CancelRoom(ctx context.Context, id string) (*models.SessionResponse, error)
	// Method AttemptSummary returns the answer counts recorded in the attempt log for a session.
	AttemptSummary(ctx context.Context, id string) (*models.AttemptSummary, error)
}

// SessionHandler handles HTTP requests for learner sessions
type SessionHandler struct {
	BaseHandler
	service SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(svc SessionService, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		service:     svc,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all session handler routes
func (h *SessionHandler) RegisterRoutes(r chi.Router) {
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Delete("/", h.Delete)
			r.Put("/language", h.SetLanguage)
			r.Post("/activities", h.StartActivity)
			r.Post("/home", h.Exit)
			r.Route("/flashcards", func(r chi.Router) {
				r.Post("/flip", h.FlipCard)
				r.Post("/next", h.NextCard)
				r.Post("/previous", h.PrevCard)
			})
			r.Route("/quiz", func(r chi.Router) {
				r.Post("/answer", h.Answer)
				r.Post("/continue", h.Continue)
			})
			r.Post("/duel", h.OpenDuel)
			r.Post("/duel/room", h.CreateRoom)
			r.Delete("/duel/room", h.CancelRoom)
			r.Get("/attempts/summary", h.AttemptSummary)
		})
	})
}

// Create handles POST /api/v1/sessions
// @Summary Create session
// @Description Start a new learner session on the home screen. An empty body uses the default language.
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body models.CreateSessionRequest false "Session language"
// @Success 201 {object} models.SessionResponse
// @Failure 400 {object} ErrorResponse
// @Router /sessions [post]
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSessionRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, errBodyRequired) {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	session, err := h.service.Create(r.Context(), req.Language)
	if err != nil {
		h.respondServiceError(w, err, "create session")
		return
	}

	h.respondJSON(w, http.StatusCreated, session)
}

// Get handles GET /api/v1/sessions/{id}
// @Summary Get session
// @Description Get the current screen and progress of a session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.SessionResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id} [get]
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.respondSession(w, r, "get session", h.service.Get)
}

// Delete handles DELETE /api/v1/sessions/{id}
// @Summary Delete session
// @Description End a session and discard its progress
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id} [delete]
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondServiceError(w, err, "delete session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetLanguage handles PUT /api/v1/sessions/{id}/language
// @Summary Switch language
// @Description Switch the translation language. An unanswered quiz round is rebuilt in the new language.
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body models.SetLanguageRequest true "New language"
// @Success 200 {object} models.SessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id}/language [put]
func (h *SessionHandler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	var req models.SetLanguageRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	session, err := h.service.SetLanguage(r.Context(), chi.URLParam(r, "id"), req.Language)
	if err != nil {
		h.respondServiceError(w, err, "set language")
		return
	}

	h.respondJSON(w, http.StatusOK, session)
}

// StartActivity handles POST /api/v1/sessions/{id}/activities
// @Summary Start activity
// @Description Open flashcards or a quiz over a category from the home screen
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body models.StartActivityRequest true "Category and activity"
// @Success 200 {object} models.SessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/activities [post]
func (h *SessionHandler) StartActivity(w http.ResponseWriter, r *http.Request) {
	var req models.StartActivityRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.CategoryID == "" {
		h.respondError(w, http.StatusBadRequest, "categoryId is required")
		return
	}

	session, err := h.service.StartActivity(r.Context(), chi.URLParam(r, "id"), req.CategoryID, req.Activity)
	if err != nil {
		h.respondServiceError(w, err, "start activity")
		return
	}

	h.respondJSON(w, http.StatusOK, session)
}

// FlipCard handles POST /api/v1/sessions/{id}/flashcards/flip
// @Summary Flip flashcard
// @Tags flashcards
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.SessionResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/flashcards/flip [post]
func (h *SessionHandler) FlipCard(w http.ResponseWriter, r *http.Request) {
	h.respondSession(w, r, "flip card", h.service.FlipCard)
}

// NextCard handles POST /api/v1/sessions/{id}/flashcards/next
// @Summary Next flashcard
// @Description Move to the next flashcard. After the last card the session returns to the home screen.
// @Tags flashcards
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.SessionResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/flashcards/next [post]
func (h *SessionHandler) NextCard(w http.ResponseWriter, r *http.Request) {
	h.respondSession(w, r, "move to next card", h.service.NextCard)
}

// PrevCard handles POST /api/v1/sessions/{id}/flashcards/previous
// @Summary Previous flashcard
// @Tags flashcards
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.SessionResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/flashcards/previous [post]
func (h *SessionHandler) PrevCard(w http.ResponseWriter, r *http.Request) {
	h.respondSession(w, r, "move to previous card", h.service.PrevCard)
}

// Answer handles POST /api/v1/sessions/{id}/quiz/answer
// @Summary Answer quiz round
// @Description Submit an option for the current round. Only the first answer of a round changes progress.
// @Tags quiz
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body models.AnswerRequest true "Chosen option"
// @Success 200 {object} models.AnswerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/quiz/answer [post]
func (h *SessionHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var req models.AnswerRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Option == "" {
		h.respondError(w, http.StatusBadRequest, "option is required")
		return
	}

	result, err := h.service.Answer(r.Context(), chi.URLParam(r, "id"), req.Option)
	if err != nil {
		h.respondServiceError(w, err, "answer")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// Continue handles POST /api/v1/sessions/{id}/quiz/continue
// @Summary Continue quiz
// @Description Move to the next word. After the last word the category is completed and the session returns home.
// @Tags quiz
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.ContinueResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/quiz/continue [post]
func (h *SessionHandler) Continue(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Continue(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondServiceError(w, err, "continue quiz")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// Exit handles POST /api/v1/sessions/{id}/home
// @Summary Return home
// @Description Leave the current activity. A quiz left early is not completed.
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.SessionResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id}/home [post]
func (h *SessionHandler) Exit(w http.ResponseWriter, r *http.Request) {
	h.respondSession(w, r, "return home", h.service.Exit)
}

// OpenDuel handles POST /api/v1/sessions/{id}/duel
// @Summary Open duel lobby
// @Tags duel
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.SessionResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/duel [post]
func (h *SessionHandler) OpenDuel(w http.ResponseWriter, r *http.Request) {
	h.respondSession(w, r, "open duel", h.service.OpenDuel)
}

// CreateRoom handles POST /api/v1/sessions/{id}/duel/room
// @Summary Create duel room
// @Description Generate a 5 character room code. An existing code is returned unchanged.
// @Tags duel
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.SessionResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/duel/room [post]
func (h *SessionHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	h.respondSession(w, r, "create room", h.service.CreateRoom)
}

// CancelRoom handles DELETE /api/v1/sessions/{id}/duel/room
// @Summary Cancel duel room
// @Tags duel
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.SessionResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/duel/room [delete]
func (h *SessionHandler) CancelRoom(w http.ResponseWriter, r *http.Request) {
	h.respondSession(w, r, "cancel room", h.service.CancelRoom)
}

// AttemptSummary handles GET /api/v1/sessions/{id}/attempts/summary
// @Summary Attempt summary
// @Description Get the numbers of correct and wrong answers recorded for a session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.AttemptSummary
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /sessions/{id}/attempts/summary [get]
func (h *SessionHandler) AttemptSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.AttemptSummary(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondServiceError(w, err, "get attempt summary")
		return
	}

	h.respondJSON(w, http.StatusOK, summary)
}

// respondSession runs a session operation without a request body and writes the resulting state
func (h *SessionHandler) respondSession(w http.ResponseWriter, r *http.Request, action string, op func(context.Context, string) (*models.SessionResponse, error)) {
	session, err := op(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondServiceError(w, err, action)
		return
	}

	h.respondJSON(w, http.StatusOK, session)
}
