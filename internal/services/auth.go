package services

import (
	"context"
	"strings"

	"recipeshare/internal/apperr"
	"recipeshare/internal/models"
	"recipeshare/internal/store"
	"recipeshare/internal/utils"
)

type AuthService struct {
	users      store.UserRepository
	tokens     *TokenService
	bcryptCost int
}

func NewAuthService(users store.UserRepository, tokens *TokenService, bcryptCost int) *AuthService {
	return &AuthService{users: users, tokens: tokens, bcryptCost: bcryptCost}
}

type LoginResult struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}

// Register creates a user. A taken username or email is a Conflict, also
// when the race is lost to a concurrent registration.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*UserView, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	exists, err := s.users.UserExists(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("User already exists")
	}

	hash, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := &models.User{Username: username, Email: email, Password: hash}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if apperr.Is(err, apperr.KindConflict) {
			return nil, apperr.Conflict("User already exists")
		}
		return nil, err
	}

	view := NewUserView(user)
	return &view, nil
}

// Login returns the same InvalidCredentials error for an unknown email and
// a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, apperr.InvalidCredentials()
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, apperr.InvalidCredentials()
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &LoginResult{Token: token, User: NewUserView(user)}, nil
}

// Authenticate resolves a bearer token to its user. The user must still exist.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnauthenticated, "Not authorized, token failed", err)
	}
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, apperr.Unauthenticated("Not authorized, token failed")
		}
		return nil, err
	}
	return user, nil
}
