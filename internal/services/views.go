package services

import (
	"time"

	"recipeshare/internal/models"
	"recipeshare/internal/utils"
)

// UserView is the public shape of a user. The password hash never leaves
// the service layer.
type UserView struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func NewUserView(u *models.User) UserView {
	return UserView{ID: u.ID, Username: u.Username, Email: u.Email}
}

type AuthorView struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type RatingView struct {
	ID    uint `json:"id"`
	Value int  `json:"value"`
}

type CommentView struct {
	ID          uint       `json:"id"`
	RecipeID    uint       `json:"recipeId"`
	Content     string     `json:"content"`
	ContentHTML string     `json:"contentHtml"`
	Author      AuthorView `json:"author"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type RecipeView struct {
	ID              uint          `json:"id"`
	Title           string        `json:"title"`
	Ingredients     []string      `json:"ingredients"`
	Steps           []string      `json:"steps"`
	Image           string        `json:"image,omitempty"`
	PreparationTime int           `json:"preparationTime"`
	Author          AuthorView    `json:"author"`
	Ratings         []RatingView  `json:"ratings"`
	Comments        []CommentView `json:"comments"`
	AverageRating   float64       `json:"averageRating"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

type RecipePage struct {
	Recipes     []RecipeView `json:"recipes"`
	TotalPages  int          `json:"totalPages"`
	CurrentPage int          `json:"currentPage"`
}

func newAuthorView(u models.User) AuthorView {
	return AuthorView{ID: u.ID, Username: u.Username}
}

func NewCommentView(c *models.Comment) CommentView {
	return CommentView{
		ID:          c.ID,
		RecipeID:    c.RecipeID,
		Content:     c.Content,
		ContentHTML: utils.RenderMarkdown(c.Content),
		Author:      newAuthorView(c.Author),
		CreatedAt:   c.CreatedAt,
	}
}

func NewRecipeView(r *models.Recipe) RecipeView {
	view := RecipeView{
		ID:              r.ID,
		Title:           r.Title,
		Ingredients:     append([]string{}, r.Ingredients...),
		Steps:           append([]string{}, r.Steps...),
		Image:           r.Image,
		PreparationTime: r.PreparationTime,
		Author:          newAuthorView(r.Author),
		Ratings:         make([]RatingView, 0, len(r.Ratings)),
		Comments:        make([]CommentView, 0, len(r.Comments)),
		AverageRating:   r.AverageRating,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	for _, rating := range r.Ratings {
		view.Ratings = append(view.Ratings, RatingView{ID: rating.ID, Value: rating.Value})
	}
	for i := range r.Comments {
		view.Comments = append(view.Comments, NewCommentView(&r.Comments[i]))
	}
	return view
}

func newRecipeViews(recipes []models.Recipe) []RecipeView {
	views := make([]RecipeView, 0, len(recipes))
	for i := range recipes {
		views = append(views, NewRecipeView(&recipes[i]))
	}
	return views
}
