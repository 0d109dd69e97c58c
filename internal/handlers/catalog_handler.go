package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sangostudent/backend/internal/models"
	"go.uber.org/zap"
)

// CatalogService is the interface that wraps methods for vocabulary catalog business logic.
type CatalogService interface {
	// Method ListCategories returns summaries of all categories in catalog order.
	//
	// A category is quiz ready when it holds enough words for a full set of options without borrowing from other categories.
	ListCategories(ctx context.Context) []models.CategorySummary
	// Method GetCategory returns the words of a category with translations in the requested language.
	//
	// "localeParam" must be either "fr" (French) or "ru" (Russian); an empty value means the default language.
	// If the locale is not supported, an error wrapping ErrInvalidLanguage is returned together with "nil" value.
	// If there is no such category, an error wrapping ErrCategoryNotFound is returned together with "nil" value.
	GetCategory(ctx context.Context, id string, localeParam string) (*models.CategoryResponse, error)
}

// CatalogHandler handles HTTP requests for the vocabulary catalog
type CatalogHandler struct {
	BaseHandler
	service CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(svc CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service:     svc,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all catalog handler routes
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.ListCategories)
		r.Get("/{id}", h.GetCategory)
	})
}

// ListCategories handles GET /api/v1/categories
// @Summary List categories
// @Description Get all vocabulary categories with their word counts
// @Tags categories
// @Produce json
// @Success 200 {array} models.CategorySummary
// @Router /categories [get]
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.service.ListCategories(r.Context()))
}

// GetCategory handles GET /api/v1/categories/{id}
// @Summary Get category words
// @Description Get the words of a category with translations in the requested language
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Param locale query string false "Locale: fr (French) or ru (Russian), default: configured language"
// @Success 200 {object} models.CategoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /categories/{id} [get]
func (h *CatalogHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	locale := r.URL.Query().Get("locale")

	category, err := h.service.GetCategory(r.Context(), id, locale)
	if err != nil {
		h.respondServiceError(w, err, "get category")
		return
	}

	h.respondJSON(w, http.StatusOK, category)
}
