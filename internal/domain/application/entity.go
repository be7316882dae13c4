package application

import (
	"time"

	"github.com/google/uuid"
)

// Status values form the application lifecycle:
// submitted -> reviewed -> shortlisted -> interview_scheduled -> offer_extended
// -> offer_accepted | offer_declined, with rejected reachable before an offer.
// The set is a bounded enum; no transition table is enforced so an authorized
// company (or admin override) can move an application to any legal value.
type Status string

const (
	StatusSubmitted          Status = "submitted"
	StatusReviewed           Status = "reviewed"
	StatusShortlisted        Status = "shortlisted"
	StatusRejected           Status = "rejected"
	StatusInterviewScheduled Status = "interview_scheduled"
	StatusOfferExtended      Status = "offer_extended"
	StatusOfferAccepted      Status = "offer_accepted"
	StatusOfferDeclined      Status = "offer_declined"
)

func (s Status) Valid() bool {
	switch s {
	case StatusSubmitted, StatusReviewed, StatusShortlisted, StatusRejected,
		StatusInterviewScheduled, StatusOfferExtended, StatusOfferAccepted, StatusOfferDeclined:
		return true
	}
	return false
}

func (s Status) Terminal() bool {
	switch s {
	case StatusRejected, StatusOfferAccepted, StatusOfferDeclined:
		return true
	}
	return false
}

type HiringDecision string

const (
	DecisionSelected HiringDecision = "selected"
	DecisionRejected HiringDecision = "rejected"
	DecisionOnHold   HiringDecision = "on_hold"
)

func (d HiringDecision) Valid() bool {
	switch d {
	case DecisionSelected, DecisionRejected, DecisionOnHold:
		return true
	}
	return false
}

type OfferDetails struct {
	CTC         float64    `json:"ctc"`
	JoiningDate *time.Time `json:"joiningDate,omitempty"`
	ValidUntil  *time.Time `json:"validUntil,omitempty"`
}

type Application struct {
	ID          uuid.UUID  `json:"id"`
	StudentID   uuid.UUID  `json:"student"`
	JobID       uuid.UUID  `json:"job"`
	DriveID     *uuid.UUID `json:"placementDrive,omitempty"`
	ResumePath  string     `json:"resume"`
	CoverLetter string     `json:"coverLetter"`
	Status      Status     `json:"status"`
	AppliedAt   time.Time  `json:"appliedAt"`

	ReviewedAt      *time.Time     `json:"reviewedAt,omitempty"`
	ReviewedBy      *uuid.UUID     `json:"reviewedBy,omitempty"`
	CompanyFeedback string         `json:"companyFeedback"`
	HiringDecision  HiringDecision `json:"hiringDecision,omitempty"`
	OfferDetails    *OfferDetails  `json:"offerDetails,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Denormalized join fields for listings.
	JobTitle    string `json:"jobTitle,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
	StudentName string `json:"studentName,omitempty"`
	RollNumber  string `json:"rollNumber,omitempty"`
}

// StatusPatch carries the company's partial update. Nil means "leave alone";
// CompanyFeedback distinguishes an absent field from an explicit empty string.
type StatusPatch struct {
	Status          *Status
	CompanyFeedback *string
	HiringDecision  *HiringDecision
	OfferDetails    *OfferDetails
	ReviewedBy      uuid.UUID
	ReviewedAt      time.Time
}
