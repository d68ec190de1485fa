package memory

import (
	"context"

	"recipeshare/internal/apperr"
	"recipeshare/internal/models"
	"recipeshare/internal/store"
)

// WithRecipeLock holds the store mutex for the duration of fn. Writes made
// through the tx are rolled back if fn fails.
func (s *Store) WithRecipeLock(ctx context.Context, recipeID uint, fn func(tx store.RatingTx) error) error {
	if err := ctx.Err(); err != nil {
		return apperr.Internal(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.recipes[recipeID]; !ok {
		return apperr.NotFound(msgRecipeNotFound)
	}

	tx := &ratingTx{s: s}
	if err := fn(tx); err != nil {
		tx.rollback()
		return err
	}
	return nil
}

type ratingTx struct {
	s    *Store
	undo []func()
}

func (t *ratingTx) rollback() {
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
}

func (t *ratingTx) FindRating(recipeID, userID uint) (*models.Rating, error) {
	for _, r := range t.s.ratings {
		if r.RecipeID == recipeID && r.UserID == userID {
			found := *r
			return &found, nil
		}
	}
	return nil, nil
}

func (t *ratingTx) CreateRating(rating *models.Rating) error {
	if existing, _ := t.FindRating(rating.RecipeID, rating.UserID); existing != nil {
		return apperr.Conflict("Rating already exists")
	}
	t.s.nextRatingID++
	now := t.s.now()
	rating.ID = t.s.nextRatingID
	rating.CreatedAt = now
	rating.UpdatedAt = now
	stored := *rating
	t.s.ratings[rating.ID] = &stored

	id := rating.ID
	t.undo = append(t.undo, func() { delete(t.s.ratings, id) })
	return nil
}

func (t *ratingTx) UpdateRatingValue(ratingID uint, value int) error {
	r, ok := t.s.ratings[ratingID]
	if !ok {
		return apperr.NotFound("Rating not found")
	}
	prevValue, prevUpdated := r.Value, r.UpdatedAt
	r.Value = value
	r.UpdatedAt = t.s.now()
	t.undo = append(t.undo, func() { r.Value, r.UpdatedAt = prevValue, prevUpdated })
	return nil
}

func (t *ratingTx) RatingValues(recipeID uint) ([]int, error) {
	var values []int
	for _, r := range t.s.ratings {
		if r.RecipeID == recipeID {
			values = append(values, r.Value)
		}
	}
	return values, nil
}

func (t *ratingTx) SetAverageRating(recipeID uint, average float64) error {
	r, ok := t.s.recipes[recipeID]
	if !ok {
		return apperr.NotFound(msgRecipeNotFound)
	}
	prev := r.AverageRating
	r.AverageRating = average
	t.undo = append(t.undo, func() { r.AverageRating = prev })
	return nil
}
