package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/TheRightGift/coolpayServer/internal/db"
	"github.com/TheRightGift/coolpayServer/internal/models"
)

// UserRepository defines the read-only interface for user identity lookups.
// User management itself lives in an external service.
type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// userRepository implements UserRepository
type userRepository struct {
	q db.Queryer
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(q db.Queryer) UserRepository {
	return &userRepository{q: q}
}

// FindByID retrieves a user by id.
func (r *userRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT id, name, email, created_at FROM users WHERE id = $1`

	var user models.User
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &user, nil
}
