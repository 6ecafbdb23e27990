package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fintrack/backend/internal/application/adapter"
	"github.com/fintrack/backend/internal/domain/entity"
	domainerror "github.com/fintrack/backend/internal/domain/error"
	"github.com/fintrack/backend/internal/integration/persistence/model"
)

// goalRepository implements the adapter.GoalRepository interface.
type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new goal repository instance.
func NewGoalRepository(db *gorm.DB) adapter.GoalRepository {
	return &goalRepository{
		db: db,
	}
}

// Create creates a new goal in the database.
func (r *goalRepository) Create(ctx context.Context, goal *entity.Goal) error {
	goalModel := model.GoalFromEntity(goal)
	result := r.db.WithContext(ctx).Create(goalModel)
	return result.Error
}

// FindByID retrieves a goal by its ID.
func (r *goalRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	var goalModel model.GoalModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&goalModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrGoalNotFound
		}
		return nil, result.Error
	}
	return goalModel.ToEntity(), nil
}

// FindByUser retrieves all goals for a user, newest first.
func (r *goalRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error) {
	var goalModels []model.GoalModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&goalModels)
	if result.Error != nil {
		return nil, result.Error
	}

	goals := make([]*entity.Goal, len(goalModels))
	for i, gm := range goalModels {
		goals[i] = gm.ToEntity()
	}
	return goals, nil
}

// Update updates an existing goal.
func (r *goalRepository) Update(ctx context.Context, goal *entity.Goal) error {
	goalModel := model.GoalFromEntity(goal)
	result := r.db.WithContext(ctx).Save(goalModel)
	return result.Error
}

// Delete soft-deletes a goal.
func (r *goalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.GoalModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrGoalNotFound
	}
	return nil
}

// AddContribution records a contribution and rolls its amount up into the
// goal's current amount in the same database transaction. The returned value
// is re-read after the update so it reflects concurrent contributions too.
func (r *goalRepository) AddContribution(ctx context.Context, contribution *entity.GoalContribution) (decimal.Decimal, error) {
	var currentAmount decimal.Decimal

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		contributionModel := model.GoalContributionFromEntity(contribution)
		if err := tx.Create(contributionModel).Error; err != nil {
			return err
		}

		result := tx.Model(&model.GoalModel{}).
			Where("id = ?", contribution.GoalID).
			Update("current_amount", gorm.Expr("current_amount + ?", contribution.Amount))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrGoalNotFound
		}

		var goalModel model.GoalModel
		if err := tx.Select("current_amount").Where("id = ?", contribution.GoalID).First(&goalModel).Error; err != nil {
			return err
		}
		currentAmount = goalModel.CurrentAmount
		return nil
	})
	if err != nil {
		return decimal.Zero, err
	}
	return currentAmount, nil
}

// Complete marks a goal completed without rewriting any other column.
func (r *goalRepository) Complete(ctx context.Context, id uuid.UUID, completedAt time.Time) error {
	result := r.db.WithContext(ctx).Model(&model.GoalModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       string(entity.GoalStatusCompleted),
			"completed_at": completedAt,
			"updated_at":   completedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrGoalNotFound
	}
	return nil
}

// ListContributions retrieves all contributions for a goal, newest first.
func (r *goalRepository) ListContributions(ctx context.Context, goalID uuid.UUID) ([]*entity.GoalContribution, error) {
	var contributionModels []model.GoalContributionModel
	result := r.db.WithContext(ctx).
		Where("goal_id = ?", goalID).
		Order("date DESC, created_at DESC").
		Find(&contributionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	contributions := make([]*entity.GoalContribution, len(contributionModels))
	for i, cm := range contributionModels {
		contributions[i] = cm.ToEntity()
	}
	return contributions, nil
}
