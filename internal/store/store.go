// Package store declares the persistence contracts used by the services
// and implements them on gorm/PostgreSQL. Package memory provides an
// in-process implementation with the same semantics.
package store

import (
	"context"

	"recipeshare/internal/models"
	"recipeshare/internal/query"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	// FindUserByEmail returns NotFound when no user has the email.
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id uint) (*models.User, error)
	// UserExists reports whether the username or the email is taken.
	UserExists(ctx context.Context, username, email string) (bool, error)
}

// RecipeRepository returns recipes populated with the author, rating values
// and comments (oldest first, each with its author).
type RecipeRepository interface {
	CreateRecipe(ctx context.Context, recipe *models.Recipe) error
	// UpdateRecipe persists the editable content fields only.
	UpdateRecipe(ctx context.Context, recipe *models.Recipe) error
	// DeleteRecipe removes the recipe with its ratings and comments.
	DeleteRecipe(ctx context.Context, id uint) error
	FindRecipe(ctx context.Context, id uint) (*models.Recipe, error)
	SearchRecipes(ctx context.Context, filter query.RecipeFilter, page query.Page) ([]models.Recipe, int64, error)
	// TopRecipes orders by average rating descending, then id ascending.
	TopRecipes(ctx context.Context, limit int) ([]models.Recipe, error)
}

// RatingRepository runs fn while holding an exclusive lock on the recipe.
// Everything fn writes commits together or not at all. NotFound is
// returned without calling fn if the recipe does not exist.
type RatingRepository interface {
	WithRecipeLock(ctx context.Context, recipeID uint, fn func(tx RatingTx) error) error
}

type RatingTx interface {
	// FindRating returns nil, nil when the user has not rated the recipe.
	FindRating(recipeID, userID uint) (*models.Rating, error)
	CreateRating(rating *models.Rating) error
	UpdateRatingValue(ratingID uint, value int) error
	RatingValues(recipeID uint) ([]int, error)
	SetAverageRating(recipeID uint, average float64) error
}

type CommentRepository interface {
	// CreateComment returns NotFound when the recipe does not exist.
	CreateComment(ctx context.Context, comment *models.Comment) error
	// ListComments returns newest first. An unknown recipe yields an empty list.
	ListComments(ctx context.Context, recipeID uint) ([]models.Comment, error)
}

// Pinger reports store reachability for health checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Repository bundles every contract a single backend provides.
type Repository interface {
	UserRepository
	RecipeRepository
	RatingRepository
	CommentRepository
	Pinger
}
