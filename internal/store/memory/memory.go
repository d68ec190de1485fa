// Package memory is an in-process store used for local runs and tests.
// Its filtering, ordering and uniqueness rules match the gorm store.
package memory

import (
	"context"
	"errors"
	"slices"
	"sort"
	"sync"
	"time"

	"recipeshare/internal/apperr"
	"recipeshare/internal/models"
	"recipeshare/internal/query"
	"recipeshare/internal/store"
)

type Store struct {
	mu sync.Mutex

	users    map[uint]*models.User
	recipes  map[uint]*models.Recipe
	ratings  map[uint]*models.Rating
	comments map[uint]*models.Comment

	nextUserID    uint
	nextRecipeID  uint
	nextRatingID  uint
	nextCommentID uint

	now func() time.Time
}

var _ store.Repository = (*Store)(nil)

func New() *Store {
	return &Store{
		users:    make(map[uint]*models.User),
		recipes:  make(map[uint]*models.Recipe),
		ratings:  make(map[uint]*models.Rating),
		comments: make(map[uint]*models.Comment),
		now:      time.Now,
	}
}

func (s *Store) Ping(context.Context) error {
	return nil
}

// Users

func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return apperr.Conflict("User already exists")
		}
	}
	s.nextUserID++
	now := s.now()
	user.ID = s.nextUserID
	user.CreatedAt = now
	user.UpdatedAt = now
	stored := *user
	s.users[user.ID] = &stored
	return nil
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			found := *u
			return &found, nil
		}
	}
	return nil, apperr.NotFound("User not found")
}

func (s *Store) FindUserByID(_ context.Context, id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, apperr.NotFound("User not found")
	}
	found := *u
	return &found, nil
}

func (s *Store) UserExists(_ context.Context, username, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// Recipes

func (s *Store) CreateRecipe(_ context.Context, recipe *models.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[recipe.AuthorID]; !ok {
		return apperr.Internal(errUnknownAuthor)
	}
	s.nextRecipeID++
	now := s.now()
	recipe.ID = s.nextRecipeID
	recipe.CreatedAt = now
	recipe.UpdatedAt = now
	stored := *recipe
	stored.Ingredients = slices.Clone(recipe.Ingredients)
	stored.Steps = slices.Clone(recipe.Steps)
	stored.Author = models.User{}
	stored.Ratings = nil
	stored.Comments = nil
	s.recipes[recipe.ID] = &stored
	return nil
}

func (s *Store) UpdateRecipe(_ context.Context, recipe *models.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.recipes[recipe.ID]
	if !ok {
		return apperr.NotFound(msgRecipeNotFound)
	}
	stored.Title = recipe.Title
	stored.Ingredients = slices.Clone(recipe.Ingredients)
	stored.Steps = slices.Clone(recipe.Steps)
	stored.Image = recipe.Image
	stored.PreparationTime = recipe.PreparationTime
	stored.UpdatedAt = s.now()
	return nil
}

func (s *Store) DeleteRecipe(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.recipes[id]; !ok {
		return apperr.NotFound(msgRecipeNotFound)
	}
	for rid, r := range s.ratings {
		if r.RecipeID == id {
			delete(s.ratings, rid)
		}
	}
	for cid, c := range s.comments {
		if c.RecipeID == id {
			delete(s.comments, cid)
		}
	}
	delete(s.recipes, id)
	return nil
}

func (s *Store) FindRecipe(_ context.Context, id uint) (*models.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.recipes[id]
	if !ok {
		return nil, apperr.NotFound(msgRecipeNotFound)
	}
	populated := s.populate(r)
	return &populated, nil
}

func (s *Store) SearchRecipes(_ context.Context, f query.RecipeFilter, page query.Page) ([]models.Recipe, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []*models.Recipe
	for _, r := range s.sortedRecipes() {
		if f.Matches(r) {
			matched = append(matched, r)
		}
	}

	total := int64(len(matched))
	result := []models.Recipe{}
	start := page.Offset()
	if start >= len(matched) {
		return result, total, nil
	}
	end := start + min(page.Limit, len(matched)-start)
	for _, r := range matched[start:end] {
		result = append(result, s.populate(r))
	}
	return result, total, nil
}

func (s *Store) TopRecipes(_ context.Context, limit int) ([]models.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipes := s.sortedRecipes()
	sort.SliceStable(recipes, func(i, j int) bool {
		return recipes[i].AverageRating > recipes[j].AverageRating
	})

	result := []models.Recipe{}
	for _, r := range recipes[:min(limit, len(recipes))] {
		result = append(result, s.populate(r))
	}
	return result, nil
}

// sortedRecipes returns recipes in id order. Caller holds mu.
func (s *Store) sortedRecipes() []*models.Recipe {
	recipes := make([]*models.Recipe, 0, len(s.recipes))
	for _, r := range s.recipes {
		recipes = append(recipes, r)
	}
	sort.Slice(recipes, func(i, j int) bool { return recipes[i].ID < recipes[j].ID })
	return recipes
}

// populate returns a detached copy with author, ratings and comments
// filled in. Caller holds mu.
func (s *Store) populate(r *models.Recipe) models.Recipe {
	out := *r
	out.Ingredients = slices.Clone(r.Ingredients)
	out.Steps = slices.Clone(r.Steps)
	out.Author = s.authorRef(r.AuthorID)

	out.Ratings = []models.Rating{}
	for _, rating := range s.ratings {
		if rating.RecipeID == r.ID {
			out.Ratings = append(out.Ratings, models.Rating{ID: rating.ID, RecipeID: rating.RecipeID, Value: rating.Value})
		}
	}
	sort.Slice(out.Ratings, func(i, j int) bool { return out.Ratings[i].ID < out.Ratings[j].ID })

	out.Comments = s.commentsFor(r.ID)
	sort.Slice(out.Comments, func(i, j int) bool { return commentBefore(&out.Comments[i], &out.Comments[j]) })
	return out
}

func (s *Store) authorRef(id uint) models.User {
	if u, ok := s.users[id]; ok {
		return models.User{ID: u.ID, Username: u.Username}
	}
	return models.User{ID: id}
}

func (s *Store) commentsFor(recipeID uint) []models.Comment {
	comments := []models.Comment{}
	for _, c := range s.comments {
		if c.RecipeID == recipeID {
			out := *c
			out.Author = s.authorRef(c.AuthorID)
			comments = append(comments, out)
		}
	}
	return comments
}

func commentBefore(a, b *models.Comment) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

// Comments

func (s *Store) CreateComment(_ context.Context, comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.recipes[comment.RecipeID]; !ok {
		return apperr.NotFound(msgRecipeNotFound)
	}
	s.nextCommentID++
	comment.ID = s.nextCommentID
	comment.CreatedAt = s.now()
	comment.Author = s.authorRef(comment.AuthorID)
	stored := *comment
	stored.Author = models.User{}
	s.comments[comment.ID] = &stored
	return nil
}

func (s *Store) ListComments(_ context.Context, recipeID uint) ([]models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comments := s.commentsFor(recipeID)
	sort.Slice(comments, func(i, j int) bool { return commentBefore(&comments[j], &comments[i]) })
	return comments, nil
}

const msgRecipeNotFound = "Recipe not found"

var errUnknownAuthor = errors.New("recipe author does not exist")
