package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fintrack/backend/internal/application/adapter"
	"github.com/fintrack/backend/internal/domain/entity"
	domainerror "github.com/fintrack/backend/internal/domain/error"
	"github.com/fintrack/backend/internal/integration/persistence/model"
)

// installmentPlanRepository implements the adapter.InstallmentPlanRepository interface.
type installmentPlanRepository struct {
	db *gorm.DB
}

// NewInstallmentPlanRepository creates a new installment plan repository instance.
func NewInstallmentPlanRepository(db *gorm.DB) adapter.InstallmentPlanRepository {
	return &installmentPlanRepository{
		db: db,
	}
}

// Create creates a new installment plan in the database.
func (r *installmentPlanRepository) Create(ctx context.Context, plan *entity.InstallmentPlan) error {
	planModel := model.InstallmentPlanFromEntity(plan)
	result := r.db.WithContext(ctx).Create(planModel)
	return result.Error
}

// FindByID retrieves an installment plan by its ID.
func (r *installmentPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.InstallmentPlan, error) {
	var planModel model.InstallmentPlanModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&planModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrInstallmentPlanNotFound
		}
		return nil, result.Error
	}
	return planModel.ToEntity(), nil
}

// FindByUser retrieves all plans for a user, newest first.
func (r *installmentPlanRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.InstallmentPlan, error) {
	var planModels []model.InstallmentPlanModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&planModels)
	if result.Error != nil {
		return nil, result.Error
	}

	plans := make([]*entity.InstallmentPlan, len(planModels))
	for i, pm := range planModels {
		plans[i] = pm.ToEntity()
	}
	return plans, nil
}

// FindActiveByUser retrieves all active plans for a user.
func (r *installmentPlanRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.InstallmentPlan, error) {
	var planModels []model.InstallmentPlanModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND active = ?", userID, true).
		Order("start_date ASC").
		Find(&planModels)
	if result.Error != nil {
		return nil, result.Error
	}

	plans := make([]*entity.InstallmentPlan, len(planModels))
	for i, pm := range planModels {
		plans[i] = pm.ToEntity()
	}
	return plans, nil
}

// ApplyAdvance persists the advancer's completed-count/active patch.
func (r *installmentPlanRepository) ApplyAdvance(ctx context.Context, id uuid.UUID, patch adapter.InstallmentPlanPatch) error {
	result := r.db.WithContext(ctx).
		Model(&model.InstallmentPlanModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"completed_installments": patch.CompletedInstallments,
			"active":                 patch.Active,
			"updated_at":             time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrInstallmentPlanNotFound
	}
	return nil
}

// Deactivate marks a plan inactive.
func (r *installmentPlanRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&model.InstallmentPlanModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"active":     false,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrInstallmentPlanNotFound
	}
	return nil
}

// ListUserIDsWithActive returns the IDs of users that have at least one
// active plan.
func (r *installmentPlanRepository) ListUserIDsWithActive(ctx context.Context) ([]uuid.UUID, error) {
	var userIDs []uuid.UUID
	result := r.db.WithContext(ctx).
		Model(&model.InstallmentPlanModel{}).
		Where("active = ?", true).
		Distinct("user_id").
		Pluck("user_id", &userIDs)
	if result.Error != nil {
		return nil, result.Error
	}
	return userIDs, nil
}
