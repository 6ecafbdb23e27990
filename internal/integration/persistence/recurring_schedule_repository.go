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

// recurringScheduleRepository implements the adapter.RecurringScheduleRepository interface.
type recurringScheduleRepository struct {
	db *gorm.DB
}

// NewRecurringScheduleRepository creates a new recurring schedule repository instance.
func NewRecurringScheduleRepository(db *gorm.DB) adapter.RecurringScheduleRepository {
	return &recurringScheduleRepository{
		db: db,
	}
}

// Create creates a new recurring schedule in the database.
func (r *recurringScheduleRepository) Create(ctx context.Context, schedule *entity.RecurringSchedule) error {
	scheduleModel := model.RecurringScheduleFromEntity(schedule)
	result := r.db.WithContext(ctx).Create(scheduleModel)
	return result.Error
}

// FindByID retrieves a recurring schedule by its ID.
func (r *recurringScheduleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.RecurringSchedule, error) {
	var scheduleModel model.RecurringScheduleModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&scheduleModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrScheduleNotFound
		}
		return nil, result.Error
	}
	return scheduleModel.ToEntity(), nil
}

// FindByUser retrieves all schedules for a user, newest first.
func (r *recurringScheduleRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringSchedule, error) {
	var scheduleModels []model.RecurringScheduleModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&scheduleModels)
	if result.Error != nil {
		return nil, result.Error
	}

	schedules := make([]*entity.RecurringSchedule, len(scheduleModels))
	for i, sm := range scheduleModels {
		schedules[i] = sm.ToEntity()
	}
	return schedules, nil
}

// FindActiveByUser retrieves all active schedules for a user.
func (r *recurringScheduleRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringSchedule, error) {
	var scheduleModels []model.RecurringScheduleModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND active = ?", userID, true).
		Order("next_due_date ASC").
		Find(&scheduleModels)
	if result.Error != nil {
		return nil, result.Error
	}

	schedules := make([]*entity.RecurringSchedule, len(scheduleModels))
	for i, sm := range scheduleModels {
		schedules[i] = sm.ToEntity()
	}
	return schedules, nil
}

// Update updates a user-editable schedule.
func (r *recurringScheduleRepository) Update(ctx context.Context, schedule *entity.RecurringSchedule) error {
	scheduleModel := model.RecurringScheduleFromEntity(schedule)
	result := r.db.WithContext(ctx).Save(scheduleModel)
	return result.Error
}

// ApplyAdvance persists the advancer's next-due-date/active patch.
func (r *recurringScheduleRepository) ApplyAdvance(ctx context.Context, id uuid.UUID, patch adapter.RecurringSchedulePatch) error {
	result := r.db.WithContext(ctx).
		Model(&model.RecurringScheduleModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"next_due_date": patch.NextDueDate,
			"active":        patch.Active,
			"updated_at":    time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrScheduleNotFound
	}
	return nil
}

// Deactivate marks a schedule inactive.
func (r *recurringScheduleRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&model.RecurringScheduleModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"active":     false,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrScheduleNotFound
	}
	return nil
}

// ListUserIDsWithActive returns the IDs of users that have at least one
// active schedule.
func (r *recurringScheduleRepository) ListUserIDsWithActive(ctx context.Context) ([]uuid.UUID, error) {
	var userIDs []uuid.UUID
	result := r.db.WithContext(ctx).
		Model(&model.RecurringScheduleModel{}).
		Where("active = ?", true).
		Distinct("user_id").
		Pluck("user_id", &userIDs)
	if result.Error != nil {
		return nil, result.Error
	}
	return userIDs, nil
}
