package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"recipeshare/internal/apperr"
	"recipeshare/internal/models"
	"recipeshare/internal/query"
)

const (
	msgRecipeNotFound = "Recipe not found"
	msgUserNotFound   = "User not found"
)

// GormStore implements Repository on PostgreSQL.
type GormStore struct {
	db *gorm.DB
}

var _ Repository = (*GormStore)(nil)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return apperr.Internal(err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// Users

func (s *GormStore) CreateUser(ctx context.Context, user *models.User) error {
	err := s.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict("User already exists")
	}
	return translateError(err, msgUserNotFound)
}

func (s *GormStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translateError(err, msgUserNotFound)
	}
	return &user, nil
}

func (s *GormStore) FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translateError(err, msgUserNotFound)
	}
	return &user, nil
}

func (s *GormStore) UserExists(ctx context.Context, username, email string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	if err != nil {
		return false, apperr.Internal(err)
	}
	return count > 0, nil
}

// Recipes

func selectAuthor(db *gorm.DB) *gorm.DB {
	return db.Select("id", "username")
}

// populateRecipe preloads what a recipe view needs: author username,
// rating values and comments with their authors.
func populateRecipe(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author", selectAuthor).
		Preload("Ratings", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "recipe_id", "value").Order("id ASC")
		}).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Preload("Comments.Author", selectAuthor)
}

// recipeFilterScope ANDs the present clauses. The search clause matches the
// title or any element of the ingredients array.
func recipeFilterScope(f query.RecipeFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Search != "" {
			pattern := f.LikePattern()
			db = db.Where(
				"(recipes.title ILIKE ? OR EXISTS (SELECT 1 FROM unnest(recipes.ingredients) AS ingredient WHERE ingredient ILIKE ?))",
				pattern, pattern,
			)
		}
		if f.MinRating != nil {
			db = db.Where("recipes.average_rating >= ?", *f.MinRating)
		}
		if f.MaxPreparationTime != nil {
			db = db.Where("recipes.preparation_time <= ?", *f.MaxPreparationTime)
		}
		return db
	}
}

func (s *GormStore) CreateRecipe(ctx context.Context, recipe *models.Recipe) error {
	err := s.db.WithContext(ctx).Omit(clause.Associations).Create(recipe).Error
	return translateError(err, msgRecipeNotFound)
}

func (s *GormStore) UpdateRecipe(ctx context.Context, recipe *models.Recipe) error {
	result := s.db.WithContext(ctx).Model(&models.Recipe{ID: recipe.ID}).
		Updates(map[string]any{
			"title":            recipe.Title,
			"ingredients":      recipe.Ingredients,
			"steps":            recipe.Steps,
			"image":            recipe.Image,
			"preparation_time": recipe.PreparationTime,
		})
	if result.Error != nil {
		return translateError(result.Error, msgRecipeNotFound)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound(msgRecipeNotFound)
	}
	return nil
}

func (s *GormStore) DeleteRecipe(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Recipe{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperr.NotFound(msgRecipeNotFound)
		}
		return nil
	})
	return translateError(err, msgRecipeNotFound)
}

func (s *GormStore) FindRecipe(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).Scopes(populateRecipe).First(&recipe, id).Error; err != nil {
		return nil, translateError(err, msgRecipeNotFound)
	}
	return &recipe, nil
}

func (s *GormStore) SearchRecipes(ctx context.Context, f query.RecipeFilter, page query.Page) ([]models.Recipe, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Scopes(recipeFilterScope(f)).Count(&total).Error; err != nil {
		return nil, 0, apperr.Internal(err)
	}

	recipes := []models.Recipe{}
	if total == 0 || int64(page.Offset()) >= total {
		return recipes, total, nil
	}

	err := s.db.WithContext(ctx).
		Scopes(recipeFilterScope(f), populateRecipe).
		Order("recipes.id ASC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&recipes).Error
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return recipes, total, nil
}

func (s *GormStore) TopRecipes(ctx context.Context, limit int) ([]models.Recipe, error) {
	recipes := []models.Recipe{}
	err := s.db.WithContext(ctx).
		Scopes(populateRecipe).
		Order("recipes.average_rating DESC, recipes.id ASC").
		Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return recipes, nil
}

// Ratings

func (s *GormStore) WithRecipeLock(ctx context.Context, recipeID uint, fn func(tx RatingTx) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		err := tx.Clauses(lockForUpdate()).
			Select("id").
			First(&recipe, recipeID).Error
		if err != nil {
			return err
		}
		return fn(&gormRatingTx{tx: tx})
	})
	return translateError(err, msgRecipeNotFound)
}

func lockForUpdate() clause.Locking {
	return clause.Locking{Strength: "UPDATE"}
}

type gormRatingTx struct {
	tx *gorm.DB
}

func (t *gormRatingTx) FindRating(recipeID, userID uint) (*models.Rating, error) {
	var rating models.Rating
	err := t.tx.Where("recipe_id = ? AND user_id = ?", recipeID, userID).First(&rating).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (t *gormRatingTx) CreateRating(rating *models.Rating) error {
	return t.tx.Omit(clause.Associations).Create(rating).Error
}

func (t *gormRatingTx) UpdateRatingValue(ratingID uint, value int) error {
	return t.tx.Model(&models.Rating{ID: ratingID}).Update("value", value).Error
}

func (t *gormRatingTx) RatingValues(recipeID uint) ([]int, error) {
	var values []int
	err := t.tx.Model(&models.Rating{}).Where("recipe_id = ?", recipeID).Order("id ASC").Pluck("value", &values).Error
	return values, err
}

func (t *gormRatingTx) SetAverageRating(recipeID uint, average float64) error {
	return t.tx.Model(&models.Recipe{ID: recipeID}).UpdateColumn("average_rating", average).Error
}

// Comments

func (s *GormStore) CreateComment(ctx context.Context, comment *models.Comment) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Recipe{}).Where("id = ?", comment.RecipeID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperr.NotFound(msgRecipeNotFound)
		}
		if err := tx.Omit(clause.Associations).Create(comment).Error; err != nil {
			return err
		}
		return tx.Scopes(selectAuthor).First(&comment.Author, comment.AuthorID).Error
	})
	return translateError(err, msgRecipeNotFound)
}

func (s *GormStore) ListComments(ctx context.Context, recipeID uint) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := s.db.WithContext(ctx).
		Preload("Author", selectAuthor).
		Where("recipe_id = ?", recipeID).
		Order("created_at DESC, id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return comments, nil
}
