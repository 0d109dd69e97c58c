package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/sangostudent/backend/internal/models"
	"github.com/sangostudent/backend/internal/quiz"
	"go.uber.org/zap"
)

// Catalog is the interface that wraps methods for vocabulary catalog access
type Catalog interface {
	// Method Categories returns all categories of the catalog in catalog order.
	//
	// The returned values are copies, so callers may keep or modify them freely.
	Categories() []models.Category
	// Method Category returns the category with the given ID.
	//
	// If there is no such category, the zero value is returned together with "false".
	Category(id string) (models.Category, bool)
}

type catalogService struct {
	catalog         Catalog
	defaultLanguage models.Language
	logger          *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(catalog Catalog, defaultLanguage models.Language, logger *zap.Logger) *catalogService {
	return &catalogService{
		catalog:         catalog,
		defaultLanguage: defaultLanguage,
		logger:          logger,
	}
}

// ListCategories returns summaries of all categories in catalog order
func (s *catalogService) ListCategories(ctx context.Context) []models.CategorySummary {
	return lo.Map(s.catalog.Categories(), func(c models.Category, _ int) models.CategorySummary {
		return models.CategorySummary{
			ID:        c.ID,
			Title:     c.Title,
			WordCount: len(c.Words),
			QuizReady: len(c.Words) >= quiz.OptionCount,
		}
	})
}

// GetCategory returns the words of a category translated into the requested language
//
// localeParam must be either "fr" (French) or "ru" (Russian); an empty value means the default language.
func (s *catalogService) GetCategory(ctx context.Context, id string, localeParam string) (*models.CategoryResponse, error) {
	lang, err := resolveLanguage(localeParam, s.defaultLanguage)
	if err != nil {
		return nil, err
	}

	category, ok := s.catalog.Category(id)
	if !ok {
		s.logger.Debug("category not found", zap.String("category_id", id))
		return nil, fmt.Errorf("%w: %s", models.ErrCategoryNotFound, id)
	}

	return &models.CategoryResponse{
		ID:       category.ID,
		Title:    category.Title,
		Language: lang,
		Words: lo.Map(category.Words, func(w models.WordEntry, _ int) models.WordResponse {
			return models.WordResponse{
				ID:          w.ID,
				SourceText:  w.SourceText,
				Translation: w.Translation(lang),
			}
		}),
	}, nil
}

// resolveLanguage parses a language parameter, falling back to def when it is empty
func resolveLanguage(param string, def models.Language) (models.Language, error) {
	if strings.TrimSpace(param) == "" {
		return def, nil
	}
	return models.ParseLanguage(param)
}
