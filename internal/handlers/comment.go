package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recipeshare/internal/middleware"
	"recipeshare/internal/services"
)

type CommentHandler struct {
	comments *services.CommentService
}

func NewCommentHandler(comments *services.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

type createCommentRequest struct {
	RecipeID FlexibleID `json:"recipeId" validate:"required"`
	Content  string     `json:"content" validate:"required"`
}

// Create handles POST /comments
func (h *CommentHandler) Create(c *gin.Context) {
	var req createCommentRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	comment, err := h.comments.Create(c.Request.Context(), middleware.CurrentUserID(c), uint(req.RecipeID), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// List handles GET /comments/:recipeId
func (h *CommentHandler) List(c *gin.Context) {
	recipeID, err := paramID(c, "recipeId")
	if err != nil {
		respondError(c, err)
		return
	}

	comments, err := h.comments.List(c.Request.Context(), recipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, comments)
}
