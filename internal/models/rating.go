package models

import (
	"time"
)

const (
	MinRatingValue = 1
	MaxRatingValue = 5
)

// Rating is unique per (recipe, user); repeat submissions update Value.
type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_rating_recipe_user" json:"recipeId"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_rating_recipe_user;index" json:"userId"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Value     int       `gorm:"not null;check:chk_ratings_value,value >= 1 AND value <= 5" json:"value"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
