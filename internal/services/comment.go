package services

import (
	"context"
	"strings"

	"recipeshare/internal/apperr"
	"recipeshare/internal/models"
	"recipeshare/internal/store"
)

type CommentService struct {
	comments store.CommentRepository
	cache    *RecipeCache
}

func NewCommentService(comments store.CommentRepository, cache *RecipeCache) *CommentService {
	return &CommentService{comments: comments, cache: cache}
}

func (s *CommentService) Create(ctx context.Context, authorID, recipeID uint, content string) (*CommentView, error) {
	if authorID == 0 {
		return nil, apperr.Unauthenticated("Not authorized, no token")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.InvalidInput("content is required")
	}

	comment := &models.Comment{RecipeID: recipeID, AuthorID: authorID, Content: content}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	s.cache.Invalidate(recipeID)

	view := NewCommentView(comment)
	return &view, nil
}

// List returns the recipe's comments, newest first.
func (s *CommentService) List(ctx context.Context, recipeID uint) ([]CommentView, error) {
	comments, err := s.comments.ListComments(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	views := make([]CommentView, 0, len(comments))
	for i := range comments {
		views = append(views, NewCommentView(&comments[i]))
	}
	return views, nil
}
