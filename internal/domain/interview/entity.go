package interview

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusScheduled   Status = "scheduled"
	StatusConfirmed   Status = "confirmed"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
	StatusRescheduled Status = "rescheduled"
	StatusNoShow      Status = "no_show"
)

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusCompleted,
		StatusCancelled, StatusRescheduled, StatusNoShow:
		return true
	}
	return false
}

type Type string

const (
	TypeInPerson Type = "in-person"
	TypeVirtual  Type = "virtual"
	TypePhone    Type = "phone"
)

func (t Type) Valid() bool {
	switch t {
	case TypeInPerson, TypeVirtual, TypePhone:
		return true
	}
	return false
}

const (
	ReminderConfirmation = "confirmation"
	Reminder24h          = "reminder_24h"
	Reminder1h           = "reminder_1h"
)

// Reminder entries form the idempotence ledger for the sweep: a window class
// already present in the array is never sent again.
type Reminder struct {
	SentAt time.Time `json:"sentAt"`
	Type   string    `json:"type"`
}

type Feedback struct {
	Rating         int        `json:"rating"`
	Notes          string     `json:"notes"`
	Recommendation string     `json:"recommendation"`
	SubmittedBy    *uuid.UUID `json:"submittedBy,omitempty"`
	SubmittedAt    *time.Time `json:"submittedAt,omitempty"`
}

type Interview struct {
	ID            uuid.UUID `json:"id"`
	ApplicationID uuid.UUID `json:"application"`
	CompanyID     uuid.UUID `json:"company"`
	StudentID     uuid.UUID `json:"student"`
	JobID         uuid.UUID `json:"job"`

	Round           int       `json:"round"`
	Type            Type      `json:"type"`
	ScheduledAt     time.Time `json:"scheduledAt"`
	DurationMinutes int       `json:"duration"`
	Location        string    `json:"location"`

	MeetingLink     string `json:"meetingLink,omitempty"`
	MeetingID       string `json:"meetingId,omitempty"`
	MeetingPassword string `json:"meetingPassword,omitempty"`

	Status    Status     `json:"status"`
	Feedback  *Feedback  `json:"feedback,omitempty"`
	Reminders []Reminder `json:"reminders"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Denormalized join fields for listings.
	StudentName       string `json:"studentName,omitempty"`
	RollNumber        string `json:"rollNumber,omitempty"`
	CompanyName       string `json:"companyName,omitempty"`
	JobTitle          string `json:"jobTitle,omitempty"`
	ApplicationStatus string `json:"applicationStatus,omitempty"`
}

func (iv Interview) HasReminder(kind string) bool {
	for _, r := range iv.Reminders {
		if r.Type == kind {
			return true
		}
	}
	return false
}

// Patch carries the company's partial interview update.
type Patch struct {
	ScheduledAt *time.Time
	Status      *Status
	Feedback    *Feedback
}
