package project

import (
	"errors"
	"time"
)

type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

var ErrInvalidTransition = errors.New("invalid status transition")

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed from s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition allows open → in_progress → completed, and cancellation from
// any non-terminal status.
func (s Status) CanTransition(to Status) bool {
	if !to.Valid() || s.Terminal() || s == to {
		return false
	}
	switch to {
	case StatusInProgress:
		return s == StatusOpen
	case StatusCompleted:
		return s == StatusInProgress
	case StatusCancelled:
		return true
	}
	return false
}

type Budget struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type Project struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	CreatorID      string     `json:"creator_id"`
	CreatorName    string     `json:"creator_name"`
	RequiredSkills []string   `json:"required_skills"`
	Genres         []string   `json:"genres"`
	Budget         *Budget    `json:"budget,omitempty"`
	Deadline       *time.Time `json:"deadline,omitempty"`
	Status         Status     `json:"status"`
	Applicants     []string   `json:"applicants"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (p Project) HasApplicant(userID string) bool {
	for _, a := range p.Applicants {
		if a == userID {
			return true
		}
	}
	return false
}

// BudgetMax and BudgetMin treat a missing budget as zero.
func (p Project) BudgetMax() int {
	if p.Budget == nil {
		return 0
	}
	return p.Budget.Max
}

func (p Project) BudgetMin() int {
	if p.Budget == nil {
		return 0
	}
	return p.Budget.Min
}

func (p Project) Clone() Project {
	p.RequiredSkills = append([]string(nil), p.RequiredSkills...)
	p.Genres = append([]string(nil), p.Genres...)
	p.Applicants = append([]string(nil), p.Applicants...)
	if p.Budget != nil {
		b := *p.Budget
		p.Budget = &b
	}
	if p.Deadline != nil {
		d := *p.Deadline
		p.Deadline = &d
	}
	return p
}
