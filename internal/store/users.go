package store

import (
	"context"
	"fmt"

	"trade-journal-go/internal/models"
)

// CreateUser persists a new user with a pre-generated API token.
func (s *Store) CreateUser(ctx context.Context, name, token string) (*models.User, error) {
	user := models.User{Name: name, APIToken: token}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// GetUserByToken resolves an API token to its user.
func (s *Store) GetUserByToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("api_token = ?", token).First(&user).Error; err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}
