package category

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fintrack/backend/internal/application/adapter"
	"github.com/fintrack/backend/internal/domain/entity"
	domainerror "github.com/fintrack/backend/internal/domain/error"
)

// UpdateCategoryInput represents the input for category update.
// Nil fields are left unchanged.
type UpdateCategoryInput struct {
	UserID     uuid.UUID
	CategoryID uuid.UUID
	Name       *string
	Color      *string
	Icon       *string
	Type       *entity.CategoryType
}

// UpdateCategoryOutput represents the output of category update.
type UpdateCategoryOutput struct {
	Category *entity.Category
}

// UpdateCategoryUseCase handles category updates.
type UpdateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewUpdateCategoryUseCase creates a new use case instance.
func NewUpdateCategoryUseCase(categoryRepo adapter.CategoryRepository) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{categoryRepo: categoryRepo}
}

// Execute performs the category update.
func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, input UpdateCategoryInput) (*UpdateCategoryOutput, error) {
	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		return nil, domainerror.ErrCategoryNotFound
	}
	if category.UserID != input.UserID {
		return nil, domainerror.ErrCategoryNotOwnedByUser
	}

	if input.Name != nil && *input.Name != category.Name {
		if *input.Name == "" {
			return nil, domainerror.ErrCategoryNameRequired
		}
		taken, err := uc.categoryRepo.ExistsByNameAndUser(ctx, *input.Name, input.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to check category name: %w", err)
		}
		if taken {
			return nil, domainerror.ErrCategoryNameTaken
		}
		category.Name = *input.Name
	}
	if input.Color != nil {
		category.Color = *input.Color
	}
	if input.Icon != nil {
		category.Icon = *input.Icon
	}
	if input.Type != nil {
		if !entity.IsValidCategoryType(*input.Type) {
			return nil, domainerror.ErrInvalidCategoryType
		}
		category.Type = *input.Type
	}
	category.UpdatedAt = time.Now().UTC()

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return &UpdateCategoryOutput{Category: category}, nil
}
