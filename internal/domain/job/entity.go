package job

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive Status = "active"
	StatusClosed Status = "closed"
	StatusDraft  Status = "draft"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusClosed, StatusDraft:
		return true
	}
	return false
}

type Salary struct {
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Currency   string  `json:"currency"`
	HideSalary bool    `json:"hideSalary"`
}

type Job struct {
	ID           uuid.UUID  `json:"id"`
	CompanyID    uuid.UUID  `json:"companyId"`
	DriveID      *uuid.UUID `json:"placementDrive,omitempty"`
	Title        string     `json:"title"`
	Type         string     `json:"type"`
	Description  string     `json:"description"`
	Requirements []string   `json:"requirements"`
	Salary       Salary     `json:"salary"`
	Locations    []string   `json:"locations"`
	WorkMode     string     `json:"workMode"`
	Openings     int        `json:"openings"`
	Status       Status     `json:"status"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	Skills       []string   `json:"skills"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`

	// Denormalized for listings; populated by queries that join the company.
	CompanyName string `json:"companyName,omitempty"`
}
