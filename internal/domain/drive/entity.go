package drive

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusUpcoming, StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Eligibility is advisory metadata; it is not enforced when students apply.
type Eligibility struct {
	MinCGPA       *float64 `json:"minCgpa,omitempty"`
	Branches      []string `json:"branches,omitempty"`
	MaxBacklogs   *int     `json:"maxBacklogs,omitempty"`
	YearOfPassing []int    `json:"yearOfPassing,omitempty"`
}

type Drive struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	StartDate   time.Time   `json:"startDate"`
	EndDate     time.Time   `json:"endDate"`
	Status      Status      `json:"status"`
	Eligibility Eligibility `json:"eligibilityCriteria"`
	CompanyIDs  []uuid.UUID `json:"companies"`
	CreatedBy   *uuid.UUID  `json:"createdBy,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}
