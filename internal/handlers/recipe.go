package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recipeshare/internal/middleware"
	"recipeshare/internal/query"
	"recipeshare/internal/services"
)

type RecipeHandler struct {
	recipes *services.RecipeService
	ratings *services.RatingService
}

func NewRecipeHandler(recipes *services.RecipeService, ratings *services.RatingService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, ratings: ratings}
}

type createRecipeRequest struct {
	Title           string   `json:"title" validate:"required"`
	Ingredients     []string `json:"ingredients" validate:"required,min=1,dive,required"`
	Steps           []string `json:"steps" validate:"required,min=1,dive,required"`
	Image           string   `json:"image" validate:"omitempty,uri"`
	PreparationTime int      `json:"preparationTime" validate:"required,gte=1"`
}

type updateRecipeRequest struct {
	Title           *string   `json:"title" validate:"omitempty,min=1"`
	Ingredients     *[]string `json:"ingredients" validate:"omitempty,min=1,dive,required"`
	Steps           *[]string `json:"steps" validate:"omitempty,min=1,dive,required"`
	Image           *string   `json:"image" validate:"omitempty,uri"`
	PreparationTime *int      `json:"preparationTime" validate:"omitempty,gte=1"`
}

type rateRequest struct {
	Value int `json:"value" validate:"required,gte=1,lte=5"`
}

// Create handles POST /recipes
func (h *RecipeHandler) Create(c *gin.Context) {
	var req createRecipeRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	recipe, err := h.recipes.Create(c.Request.Context(), middleware.CurrentUserID(c), services.RecipeInput{
		Title:           req.Title,
		Ingredients:     req.Ingredients,
		Steps:           req.Steps,
		Image:           req.Image,
		PreparationTime: req.PreparationTime,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

// List handles GET /recipes?search=&rating=&preparationTime=&page=&limit=
func (h *RecipeHandler) List(c *gin.Context) {
	q, err := query.ParseRecipeQuery(c.Request.URL.Query())
	if err != nil {
		respondError(c, err)
		return
	}

	page, err := h.recipes.Query(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, page)
}

// Top handles GET /recipes/top?limit=
func (h *RecipeHandler) Top(c *gin.Context) {
	recipes, err := h.recipes.Top(c.Request.Context(), query.ParseTopLimit(c.Query("limit")))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, recipes)
}

// Detail handles GET /recipes/:id
func (h *RecipeHandler) Detail(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	recipe, err := h.recipes.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, recipe)
}

// Update handles PATCH /recipes/:id
func (h *RecipeHandler) Update(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var req updateRecipeRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	recipe, err := h.recipes.Update(c.Request.Context(), middleware.CurrentUserID(c), id, services.RecipePatch{
		Title:           req.Title,
		Ingredients:     req.Ingredients,
		Steps:           req.Steps,
		Image:           req.Image,
		PreparationTime: req.PreparationTime,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, recipe)
}

// Delete handles DELETE /recipes/:id
func (h *RecipeHandler) Delete(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.recipes.Delete(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Rate handles POST /recipes/:id/rate
func (h *RecipeHandler) Rate(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var req rateRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	average, err := h.ratings.SubmitRating(c.Request.Context(), id, middleware.CurrentUserID(c), req.Value)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"averageRating": average})
}
