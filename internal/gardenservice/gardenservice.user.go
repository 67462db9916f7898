// FilePath: internal/gardenservice/gardenservice.user.go
package gardenservice

import (
	"context"

	nuts "github.com/vaudience/go-nuts"
	"golang.org/x/crypto/bcrypt"

	"github.com/verdantlabs/gardenhub/internal/errors"
	"github.com/verdantlabs/gardenhub/internal/models"
)

// RegisterUser creates a new account with a bcrypt-hashed password
func (s *GardenService) RegisterUser(ctx context.Context, username, email, password string) (*models.User, error) {
	if existing, err := s.Users.GetByUsername(ctx, username); err == nil && existing != nil {
		return nil, errors.NewConflictError("username is already taken", nil)
	} else if err != nil && !errors.IsNotFound(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.NewInternalError("failed to hash password", err)
	}

	now := s.now()
	user := &models.User{
		ID:           nuts.NID("usr", 12),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Users.Create(ctx, user); err != nil {
		return nil, err
	}

	nuts.L.Infof("[UserService] Registered user %s (%s)", username, user.ID)
	return user, nil
}

// AuthenticateUser verifies credentials and returns the account
func (s *GardenService) AuthenticateUser(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NewAuthError("invalid credentials", nil)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errors.NewAuthError("invalid credentials", nil)
	}

	return user, nil
}
