package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fintrack/backend/internal/domain/entity"
)

// GoalModel represents the goals table in the database.
type GoalModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title         string          `gorm:"type:varchar(255);not null"`
	Description   string          `gorm:"type:text"`
	TargetAmount  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CurrentAmount decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TargetDate    time.Time       `gorm:"type:date;not null"`
	Category      string          `gorm:"type:varchar(20);not null"`
	Priority      string          `gorm:"type:varchar(10);not null"`
	Status        string          `gorm:"type:varchar(10);not null;index"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
	CompletedAt   *time.Time      `gorm:"type:timestamp"`
	DeletedAt     gorm.DeletedAt  `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the GoalModel.
func (GoalModel) TableName() string {
	return "goals"
}

// ToEntity converts a GoalModel to a domain Goal entity.
func (m *GoalModel) ToEntity() *entity.Goal {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Goal{
		ID:            m.ID,
		UserID:        m.UserID,
		Title:         m.Title,
		Description:   m.Description,
		TargetAmount:  m.TargetAmount,
		CurrentAmount: m.CurrentAmount,
		TargetDate:    m.TargetDate,
		Category:      entity.GoalCategory(m.Category),
		Priority:      entity.GoalPriority(m.Priority),
		Status:        entity.GoalStatus(m.Status),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		CompletedAt:   m.CompletedAt,
		DeletedAt:     deletedAt,
	}
}

// GoalFromEntity creates a GoalModel from a domain Goal entity.
func GoalFromEntity(goal *entity.Goal) *GoalModel {
	var deletedAt gorm.DeletedAt
	if goal.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *goal.DeletedAt, Valid: true}
	}

	return &GoalModel{
		ID:            goal.ID,
		UserID:        goal.UserID,
		Title:         goal.Title,
		Description:   goal.Description,
		TargetAmount:  goal.TargetAmount,
		CurrentAmount: goal.CurrentAmount,
		TargetDate:    goal.TargetDate,
		Category:      string(goal.Category),
		Priority:      string(goal.Priority),
		Status:        string(goal.Status),
		CreatedAt:     goal.CreatedAt,
		UpdatedAt:     goal.UpdatedAt,
		CompletedAt:   goal.CompletedAt,
		DeletedAt:     deletedAt,
	}
}

// GoalContributionModel represents the goal_contributions table in the database.
type GoalContributionModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	GoalID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Description string          `gorm:"type:varchar(255)"`
	Date        time.Time       `gorm:"type:date;not null"`
	CreatedAt   time.Time       `gorm:"not null"`

	Goal *GoalModel `gorm:"foreignKey:GoalID;references:ID"`
}

// TableName returns the table name for the GoalContributionModel.
func (GoalContributionModel) TableName() string {
	return "goal_contributions"
}

// ToEntity converts a GoalContributionModel to a domain GoalContribution entity.
func (m *GoalContributionModel) ToEntity() *entity.GoalContribution {
	return &entity.GoalContribution{
		ID:          m.ID,
		UserID:      m.UserID,
		GoalID:      m.GoalID,
		Amount:      m.Amount,
		Description: m.Description,
		Date:        m.Date,
		CreatedAt:   m.CreatedAt,
	}
}

// GoalContributionFromEntity creates a GoalContributionModel from a domain entity.
func GoalContributionFromEntity(contribution *entity.GoalContribution) *GoalContributionModel {
	return &GoalContributionModel{
		ID:          contribution.ID,
		UserID:      contribution.UserID,
		GoalID:      contribution.GoalID,
		Amount:      contribution.Amount,
		Description: contribution.Description,
		Date:        contribution.Date,
		CreatedAt:   contribution.CreatedAt,
	}
}
