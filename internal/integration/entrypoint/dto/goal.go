package dto

import (
	"time"

	"github.com/fintrack/backend/internal/domain/entity"
)

// CreateGoalRequest represents the request body for goal creation.
type CreateGoalRequest struct {
	Title        string `json:"title" binding:"required,min=1,max=255"`
	Description  string `json:"description,omitempty"`
	TargetAmount string `json:"target_amount" binding:"required"`
	TargetDate   string `json:"target_date" binding:"required"`
	Category     string `json:"category" binding:"required,oneof=savings purchase travel education emergency other"`
	Priority     string `json:"priority" binding:"required,oneof=low medium high"`
}

// UpdateGoalRequest represents the request body for goal update.
type UpdateGoalRequest struct {
	Title        *string `json:"title,omitempty" binding:"omitempty,min=1,max=255"`
	Description  *string `json:"description,omitempty"`
	TargetAmount *string `json:"target_amount,omitempty"`
	TargetDate   *string `json:"target_date,omitempty"`
	Category     *string `json:"category,omitempty" binding:"omitempty,oneof=savings purchase travel education emergency other"`
	Priority     *string `json:"priority,omitempty" binding:"omitempty,oneof=low medium high"`
	Status       *string `json:"status,omitempty" binding:"omitempty,oneof=active completed paused"`
}

// ContributeRequest represents the request body for a goal contribution.
type ContributeRequest struct {
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description,omitempty" binding:"omitempty,max=255"`
	Date        string `json:"date" binding:"required"`
}

// GoalResponse represents a goal in API responses.
type GoalResponse struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	TargetAmount  string     `json:"target_amount"`
	CurrentAmount string     `json:"current_amount"`
	TargetDate    string     `json:"target_date"`
	Category      string     `json:"category"`
	Priority      string     `json:"priority"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// GoalListResponse represents the response for listing goals.
type GoalListResponse struct {
	Goals []GoalResponse `json:"goals"`
}

// ContributionResponse represents a contribution in API responses.
type ContributionResponse struct {
	ID          string    `json:"id"`
	GoalID      string    `json:"goal_id"`
	Amount      string    `json:"amount"`
	Description string    `json:"description,omitempty"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

// ContributionListResponse represents the response for listing contributions.
type ContributionListResponse struct {
	Contributions []ContributionResponse `json:"contributions"`
}

// ContributeResponse represents the response after recording a contribution.
type ContributeResponse struct {
	Contribution ContributionResponse `json:"contribution"`
	Goal         GoalResponse         `json:"goal"`
}

// ToGoalResponse converts a domain Goal entity to a GoalResponse DTO.
func ToGoalResponse(goal *entity.Goal) GoalResponse {
	return GoalResponse{
		ID:            goal.ID.String(),
		Title:         goal.Title,
		Description:   goal.Description,
		TargetAmount:  goal.TargetAmount.StringFixed(2),
		CurrentAmount: goal.CurrentAmount.StringFixed(2),
		TargetDate:    goal.TargetDate.Format("2006-01-02"),
		Category:      string(goal.Category),
		Priority:      string(goal.Priority),
		Status:        string(goal.Status),
		CreatedAt:     goal.CreatedAt,
		UpdatedAt:     goal.UpdatedAt,
		CompletedAt:   goal.CompletedAt,
	}
}

// ToGoalListResponse converts goals to a list response.
func ToGoalListResponse(goals []*entity.Goal) GoalListResponse {
	out := make([]GoalResponse, len(goals))
	for i, g := range goals {
		out[i] = ToGoalResponse(g)
	}
	return GoalListResponse{Goals: out}
}

// ToContributionResponse converts a domain GoalContribution to a response DTO.
func ToContributionResponse(c *entity.GoalContribution) ContributionResponse {
	return ContributionResponse{
		ID:          c.ID.String(),
		GoalID:      c.GoalID.String(),
		Amount:      c.Amount.StringFixed(2),
		Description: c.Description,
		Date:        c.Date.Format("2006-01-02"),
		CreatedAt:   c.CreatedAt,
	}
}

// ToContributionListResponse converts contributions to a list response.
func ToContributionListResponse(contributions []*entity.GoalContribution) ContributionListResponse {
	out := make([]ContributionResponse, len(contributions))
	for i, c := range contributions {
		out[i] = ToContributionResponse(c)
	}
	return ContributionListResponse{Contributions: out}
}
