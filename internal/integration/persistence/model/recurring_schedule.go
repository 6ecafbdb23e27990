package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/domain/entity"
)

// RecurringScheduleModel represents the recurring_schedules table in the database.
type RecurringScheduleModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type          string          `gorm:"type:varchar(10);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Description   string          `gorm:"type:varchar(255);not null"`
	CategoryID    *uuid.UUID      `gorm:"type:uuid;index"`
	PaymentMethod string          `gorm:"type:varchar(20)"`
	Notes         string          `gorm:"type:text"`
	Cadence       string          `gorm:"type:varchar(10);not null"`
	StartDate     time.Time       `gorm:"type:date;not null"`
	EndDate       *time.Time      `gorm:"type:date"`
	NextDueDate   time.Time       `gorm:"type:date;not null;index"`
	Active        bool            `gorm:"default:true;index"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`

	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
	User     *UserModel     `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the table name for the RecurringScheduleModel.
func (RecurringScheduleModel) TableName() string {
	return "recurring_schedules"
}

// ToEntity converts a RecurringScheduleModel to a domain RecurringSchedule entity.
func (m *RecurringScheduleModel) ToEntity() *entity.RecurringSchedule {
	return &entity.RecurringSchedule{
		ID:            m.ID,
		UserID:        m.UserID,
		Type:          entity.TransactionType(m.Type),
		Amount:        m.Amount,
		Description:   m.Description,
		CategoryID:    m.CategoryID,
		PaymentMethod: entity.PaymentMethod(m.PaymentMethod),
		Notes:         m.Notes,
		Cadence:       entity.Cadence(m.Cadence),
		StartDate:     m.StartDate,
		EndDate:       m.EndDate,
		NextDueDate:   m.NextDueDate,
		Active:        m.Active,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// RecurringScheduleFromEntity creates a RecurringScheduleModel from a domain entity.
func RecurringScheduleFromEntity(schedule *entity.RecurringSchedule) *RecurringScheduleModel {
	return &RecurringScheduleModel{
		ID:            schedule.ID,
		UserID:        schedule.UserID,
		Type:          string(schedule.Type),
		Amount:        schedule.Amount,
		Description:   schedule.Description,
		CategoryID:    schedule.CategoryID,
		PaymentMethod: string(schedule.PaymentMethod),
		Notes:         schedule.Notes,
		Cadence:       string(schedule.Cadence),
		StartDate:     schedule.StartDate,
		EndDate:       schedule.EndDate,
		NextDueDate:   schedule.NextDueDate,
		Active:        schedule.Active,
		CreatedAt:     schedule.CreatedAt,
		UpdatedAt:     schedule.UpdatedAt,
	}
}
