package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/backend/internal/domain/entity"
)

// InstallmentPlanModel represents the installment_plans table in the database.
type InstallmentPlanModel struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID                uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type                  string          `gorm:"type:varchar(10);not null"`
	TotalAmount           decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	InstallmentAmount     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Description           string          `gorm:"type:varchar(255);not null"`
	CategoryID            *uuid.UUID      `gorm:"type:uuid;index"`
	PaymentMethod         string          `gorm:"type:varchar(20)"`
	Notes                 string          `gorm:"type:text"`
	InstallmentCount      int             `gorm:"not null"`
	CompletedInstallments int             `gorm:"not null;default:0"`
	StartDate             time.Time       `gorm:"type:date;not null"`
	Active                bool            `gorm:"default:true;index"`
	CreatedAt             time.Time       `gorm:"not null"`
	UpdatedAt             time.Time       `gorm:"not null"`

	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
	User     *UserModel     `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the table name for the InstallmentPlanModel.
func (InstallmentPlanModel) TableName() string {
	return "installment_plans"
}

// ToEntity converts an InstallmentPlanModel to a domain InstallmentPlan entity.
func (m *InstallmentPlanModel) ToEntity() *entity.InstallmentPlan {
	return &entity.InstallmentPlan{
		ID:                    m.ID,
		UserID:                m.UserID,
		Type:                  entity.TransactionType(m.Type),
		TotalAmount:           m.TotalAmount,
		InstallmentAmount:     m.InstallmentAmount,
		Description:           m.Description,
		CategoryID:            m.CategoryID,
		PaymentMethod:         entity.PaymentMethod(m.PaymentMethod),
		Notes:                 m.Notes,
		InstallmentCount:      m.InstallmentCount,
		CompletedInstallments: m.CompletedInstallments,
		StartDate:             m.StartDate,
		Active:                m.Active,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
}

// InstallmentPlanFromEntity creates an InstallmentPlanModel from a domain entity.
func InstallmentPlanFromEntity(plan *entity.InstallmentPlan) *InstallmentPlanModel {
	return &InstallmentPlanModel{
		ID:                    plan.ID,
		UserID:                plan.UserID,
		Type:                  string(plan.Type),
		TotalAmount:           plan.TotalAmount,
		InstallmentAmount:     plan.InstallmentAmount,
		Description:           plan.Description,
		CategoryID:            plan.CategoryID,
		PaymentMethod:         string(plan.PaymentMethod),
		Notes:                 plan.Notes,
		InstallmentCount:      plan.InstallmentCount,
		CompletedInstallments: plan.CompletedInstallments,
		StartDate:             plan.StartDate,
		Active:                plan.Active,
		CreatedAt:             plan.CreatedAt,
		UpdatedAt:             plan.UpdatedAt,
	}
}
