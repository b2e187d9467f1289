package service

import (
	"context"

	"recshelf/internal/auth"
	"recshelf/internal/models"
	"recshelf/internal/repository"
	"recshelf/internal/validation"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// Register creates an account. Username is checked before email, and either
// collision comes back as a CONFLICT error without touching the table.
func (s *UserService) Register(ctx context.Context, in models.UserCreate) (user *models.User, err error) {
	ctx, span := traced(ctx, "users", "Register")
	defer func() { endSpan(span, err) }()

	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Duplicate username", nil)
	}
	existing, err = s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Duplicate email", nil)
	}

	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, models.WrapInternal(err)
	}

	user = &models.User{
		Username:       in.Username,
		Email:          in.Email,
		HashedPassword: hashed,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateCredentials applies the present fields of in. A value that already
// belongs to the caller is accepted; one held by another user is a CONFLICT.
func (s *UserService) UpdateCredentials(ctx context.Context, userID uint, in models.UserUpdate) (user *models.User, err error) {
	ctx, span := traced(ctx, "users", "UpdateCredentials")
	defer func() { endSpan(span, err) }()

	user, err = s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.Username.Null {
		return nil, nullField("username")
	}
	if in.Email.Null {
		return nil, nullField("email")
	}
	if !in.Username.Set && !in.Email.Set {
		return user, nil
	}

	if in.Username.Set {
		if err := validation.ValidateUsername(in.Username.Value); err != nil {
			return nil, err
		}
		other, err := s.userRepo.GetByUsername(ctx, in.Username.Value)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != user.ID {
			return nil, models.NewConflictError("Duplicate username", nil)
		}
		user.Username = in.Username.Value
	}
	if in.Email.Set {
		if err := validation.ValidateEmail(in.Email.Value); err != nil {
			return nil, err
		}
		other, err := s.userRepo.GetByEmail(ctx, in.Email.Value)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != user.ID {
			return nil, models.NewConflictError("Duplicate email", nil)
		}
		user.Email = in.Email.Value
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAccount removes the user and everything they own.
func (s *UserService) DeleteAccount(ctx context.Context, userID uint) (err error) {
	ctx, span := traced(ctx, "users", "DeleteAccount")
	defer func() { endSpan(span, err) }()

	return s.userRepo.Delete(ctx, userID)
}
