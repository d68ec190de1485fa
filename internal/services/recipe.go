package services

import (
	"context"
	"strings"

	"recipeshare/internal/apperr"
	"recipeshare/internal/logging"
	"recipeshare/internal/models"
	"recipeshare/internal/query"
	"recipeshare/internal/store"
)

type RecipeInput struct {
	Title           string
	Ingredients     []string
	Steps           []string
	Image           string
	PreparationTime int
}

// RecipePatch holds the fields to change. Nil means unchanged.
type RecipePatch struct {
	Title           *string
	Ingredients     *[]string
	Steps           *[]string
	Image           *string
	PreparationTime *int
}

type RecipeService struct {
	recipes store.RecipeRepository
	cache   *RecipeCache
}

func NewRecipeService(recipes store.RecipeRepository, cache *RecipeCache) *RecipeService {
	return &RecipeService{recipes: recipes, cache: cache}
}

func (s *RecipeService) Create(ctx context.Context, authorID uint, in RecipeInput) (*RecipeView, error) {
	if authorID == 0 {
		return nil, apperr.Unauthenticated("Not authorized, no token")
	}

	recipe := &models.Recipe{
		Title:           strings.TrimSpace(in.Title),
		Ingredients:     in.Ingredients,
		Steps:           in.Steps,
		Image:           strings.TrimSpace(in.Image),
		PreparationTime: in.PreparationTime,
		AuthorID:        authorID,
	}
	if err := s.recipes.CreateRecipe(ctx, recipe); err != nil {
		return nil, err
	}
	logging.Ctx(ctx).Info().Uint("recipe_id", recipe.ID).Msg("recipe created")
	return s.load(ctx, recipe.ID)
}

// Get returns the populated recipe, served from the cache when possible.
func (s *RecipeService) Get(ctx context.Context, id uint) (*RecipeView, error) {
	if view, ok := s.cache.Get(id); ok {
		return &view, nil
	}
	return s.load(ctx, id)
}

func (s *RecipeService) load(ctx context.Context, id uint) (*RecipeView, error) {
	gen := s.cache.Generation(id)
	recipe, err := s.recipes.FindRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	view := NewRecipeView(recipe)
	s.cache.Set(view, gen)
	return &view, nil
}

func (s *RecipeService) Query(ctx context.Context, q query.RecipeQuery) (*RecipePage, error) {
	if q.Page.Limit <= 0 {
		return nil, apperr.InvalidInput("limit must be a positive integer")
	}
	if q.Page.Number < 1 {
		q.Page.Number = 1
	}
	q.Page.Limit = min(q.Page.Limit, query.MaxLimit)

	recipes, total, err := s.recipes.SearchRecipes(ctx, q.Filter, q.Page)
	if err != nil {
		return nil, err
	}
	return &RecipePage{
		Recipes:     newRecipeViews(recipes),
		TotalPages:  query.TotalPages(total, q.Page.Limit),
		CurrentPage: q.Page.Number,
	}, nil
}

func (s *RecipeService) Top(ctx context.Context, limit int) ([]RecipeView, error) {
	limit = max(1, min(limit, query.MaxTopLimit))
	recipes, err := s.recipes.TopRecipes(ctx, limit)
	if err != nil {
		return nil, err
	}
	return newRecipeViews(recipes), nil
}

// Update applies patch to a recipe owned by userID. Ratings, comments,
// author and average are left alone.
func (s *RecipeService) Update(ctx context.Context, userID, id uint, patch RecipePatch) (*RecipeView, error) {
	recipe, err := s.ownedRecipe(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		recipe.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Ingredients != nil {
		recipe.Ingredients = *patch.Ingredients
	}
	if patch.Steps != nil {
		recipe.Steps = *patch.Steps
	}
	if patch.Image != nil {
		recipe.Image = strings.TrimSpace(*patch.Image)
	}
	if patch.PreparationTime != nil {
		recipe.PreparationTime = *patch.PreparationTime
	}

	if err := s.recipes.UpdateRecipe(ctx, recipe); err != nil {
		return nil, err
	}
	s.cache.Invalidate(id)
	return s.load(ctx, id)
}

func (s *RecipeService) Delete(ctx context.Context, userID, id uint) error {
	if _, err := s.ownedRecipe(ctx, userID, id); err != nil {
		return err
	}
	if err := s.recipes.DeleteRecipe(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(id)
	logging.Ctx(ctx).Info().Uint("recipe_id", id).Msg("recipe deleted")
	return nil
}

func (s *RecipeService) ownedRecipe(ctx context.Context, userID, id uint) (*models.Recipe, error) {
	if userID == 0 {
		return nil, apperr.Unauthenticated("Not authorized, no token")
	}
	recipe, err := s.recipes.FindRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe.AuthorID != userID {
		return nil, apperr.Forbidden("Not authorized to modify this recipe")
	}
	return recipe, nil
}
