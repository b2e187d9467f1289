package service

import (
	"context"
	"time"

	"recshelf/internal/auth"
	"recshelf/internal/middleware"
	"recshelf/internal/models"
	"recshelf/internal/repository"
)

// TokenRevoker persists revoked token ids.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

const (
	msgBadLogin       = "Incorrect username or password"
	msgBadCredentials = "Could not validate credentials"
)

// AuthService authenticates users by password and by bearer token.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
	revoker  TokenRevoker
	now      Clock
}

// NewAuthService builds the service. A nil revoker disables logout
// revocation.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenManager, revoker TokenRevoker) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens, revoker: revoker, now: time.Now}
}

// Authenticate checks a username and password pair.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.CheckPassword(user.HashedPassword, password) {
		return nil, models.NewUnauthorizedError(msgBadLogin)
	}
	return user, nil
}

// Login authenticates and issues a bearer token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.Token, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	issued, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, models.WrapInternal(err)
	}
	return &models.Token{AccessToken: issued.Token, TokenType: "bearer"}, nil
}

// CurrentUser resolves a bearer token to its user. Revocation lookups fail
// open so a Redis outage does not lock everyone out.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*models.User, *auth.Claims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, nil, models.NewUnauthorizedError(msgBadCredentials)
	}

	if s.revoker != nil {
		revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
		if err != nil {
			middleware.Logger.WarnContext(ctx, "token revocation check failed", "error", err)
		}
		if revoked {
			return nil, nil, models.NewUnauthorizedError("Token has been revoked")
		}
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, nil, models.NewUnauthorizedError(msgBadCredentials)
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return nil, nil, models.NewUnauthorizedError(msgBadCredentials)
		}
		return nil, nil, err
	}
	return user, claims, nil
}

// Logout revokes the token for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if s.revoker == nil || claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	ttl := claims.ExpiresAt.Sub(s.now())
	if err := s.revoker.Revoke(ctx, claims.ID, ttl); err != nil {
		return models.WrapInternal(err)
	}
	return nil
}
