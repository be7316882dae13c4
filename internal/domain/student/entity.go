package student

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"userId"`
	FullName    string     `json:"fullName"`
	RollNumber  string     `json:"rollNumber"`
	Department  string     `json:"department"`
	Branch      string     `json:"branch"`
	Semester    *int       `json:"semester,omitempty"`
	CGPA        *float64   `json:"cgpa,omitempty"`
	Phone       string     `json:"phone"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	Address     string     `json:"address"`

	Skills       []string      `json:"skills"`
	Achievements []Achievement `json:"achievements"`
	Education    []Education   `json:"education"`

	ResumePath string `json:"resume"`
	PhotoPath  string `json:"photo"`

	// AcademicRecords is an append-only audit trail synced from an external
	// academic system; it lives inside the profile row, not a separate table.
	AcademicRecords []AcademicRecord `json:"academicRecords"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Achievement struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        *time.Time `json:"date,omitempty"`
}

type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Year        string `json:"year"`
	Marks       string `json:"marks"`
}

type AcademicRecord struct {
	Semester int       `json:"semester"`
	Subjects []Subject `json:"subjects"`
	SGPA     float64   `json:"sgpa"`
	CGPA     float64   `json:"cgpa"`
	SyncedAt time.Time `json:"syncedAt"`
}

type Subject struct {
	Name    string  `json:"name"`
	Grade   string  `json:"grade"`
	Credits float64 `json:"credits"`
}
