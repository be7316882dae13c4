package company

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"userId"`
	CompanyName   string    `json:"companyName"`
	Industry      string    `json:"industry"`
	Website       string    `json:"website"`
	Description   string    `json:"description"`
	LogoPath      string    `json:"logo"`
	ContactPerson string    `json:"contactPerson"`
	ContactEmail  string    `json:"contactEmail"`
	ContactPhone  string    `json:"contactPhone"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	Country       string    `json:"country"`
	Size          string    `json:"size"`

	// Verified gates public visibility in the company directory.
	Verified bool `json:"verified"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
