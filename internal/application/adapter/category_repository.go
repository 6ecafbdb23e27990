// Package adapter defines interfaces that are implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/fintrack/backend/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence.
type CategoryRepository interface {
	// Create creates a new category.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindByUser retrieves all categories for a user, ordered by name.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error)

	// ExistsByNameAndUser checks whether the user already has a category with this name.
	ExistsByNameAndUser(ctx context.Context, name string, userID uuid.UUID) (bool, error)

	// Update updates an existing category.
	Update(ctx context.Context, category *entity.Category) error

	// Delete soft-deletes a category.
	Delete(ctx context.Context, id uuid.UUID) error
}
