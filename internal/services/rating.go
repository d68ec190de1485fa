package services

import (
	"context"
	"fmt"

	"recipeshare/internal/apperr"
	"recipeshare/internal/logging"
	"recipeshare/internal/metrics"
	"recipeshare/internal/models"
	"recipeshare/internal/store"
)

// RatingService keeps one rating per (recipe, user) and the recipe's cached
// average in step with its ratings.
type RatingService struct {
	ratings store.RatingRepository
	cache   *RecipeCache
	locks   *recipeLocks
}

func NewRatingService(ratings store.RatingRepository, cache *RecipeCache) *RatingService {
	return &RatingService{ratings: ratings, cache: cache, locks: newRecipeLocks()}
}

// SubmitRating creates or updates the user's rating and returns the
// recomputed average. Submissions for the same recipe are serialized in
// process and again by the store's row lock, so the upsert and the
// recompute commit together.
func (s *RatingService) SubmitRating(ctx context.Context, recipeID, userID uint, value int) (float64, error) {
	if userID == 0 {
		return 0, apperr.Unauthenticated("Not authorized, no token")
	}
	if value < models.MinRatingValue || value > models.MaxRatingValue {
		return 0, apperr.InvalidInput(fmt.Sprintf("value must be an integer between %d and %d", models.MinRatingValue, models.MaxRatingValue))
	}

	unlock := s.locks.Lock(recipeID)
	defer unlock()

	var (
		average float64
		created bool
	)
	err := s.ratings.WithRecipeLock(ctx, recipeID, func(tx store.RatingTx) error {
		existing, err := tx.FindRating(recipeID, userID)
		if err != nil {
			return err
		}
		if existing != nil {
			if err := tx.UpdateRatingValue(existing.ID, value); err != nil {
				return err
			}
		} else {
			if err := tx.CreateRating(&models.Rating{RecipeID: recipeID, UserID: userID, Value: value}); err != nil {
				return err
			}
			created = true
		}

		values, err := tx.RatingValues(recipeID)
		if err != nil {
			return err
		}
		average = AverageRating(values)
		return tx.SetAverageRating(recipeID, average)
	})
	if err != nil {
		return 0, err
	}

	s.cache.Invalidate(recipeID)
	metrics.RecordRating(created)
	logging.Ctx(ctx).Debug().
		Uint("recipe_id", recipeID).
		Int("value", value).
		Bool("created", created).
		Float64("average", average).
		Msg("rating submitted")
	return average, nil
}

// AverageRating is the arithmetic mean of values, or 0 when there are none.
func AverageRating(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}
