package models

import (
	"time"
)

// Testimonial represents a single user-submitted deployment profile and its
// moderation metadata. The ID doubles as the storage key and is immutable
// once assigned.
type Testimonial struct {
	ID string `json:"id" gorm:"primaryKey;size:64"`

	ContactName  string `json:"contact_name" gorm:"size:200;not null" validate:"required"`
	EmailAddress string `json:"email_address" gorm:"size:200;not null" validate:"required"`
	OrgName      string `json:"org_name" gorm:"size:200;not null" validate:"required"`
	Title        string `json:"title" gorm:"size:200"`
	Website      string `json:"website" gorm:"size:200"`

	// Enum-coded attributes; each value must be a key of its lookup table.
	OrgTypeID  int `json:"org_type" gorm:"not null"`
	IndustryID int `json:"industry" gorm:"not null"`
	CountryID  int `json:"country" gorm:"not null"`
	VersionID  int `json:"version" gorm:"not null"`
	OSTypeID   int `json:"os_type" gorm:"not null"`
	CatalogID  int `json:"catalog" gorm:"not null"`

	OrgSize              int `json:"org_size" gorm:"not null" validate:"min=0"`
	NumberDirectors      int `json:"number_dir" gorm:"not null" validate:"min=0,max=100"`
	NumberClients        int `json:"number_clients" gorm:"not null" validate:"min=0"`
	NumberStorageDaemons int `json:"number_sd" gorm:"not null" validate:"min=0"`
	MonthlyGB            int `json:"monthly_gb" gorm:"not null" validate:"min=0"`
	NumberFiles          int `json:"number_files" gorm:"not null" validate:"min=0"`

	RedundantSetup   bool `json:"redundant_setup"`
	SupportRequested bool `json:"support_requested"`

	// Per-field consent to public display.
	PublishContact bool `json:"publish_contact"`
	PublishEmail   bool `json:"publish_email"`
	PublishOrgName bool `json:"publish_org_name"`
	PublishOrgSize bool `json:"publish_org_size"`
	PublishWebsite bool `json:"publish_website"`

	Comments         string `json:"comments" gorm:"type:text"`
	HardwareComments string `json:"hardware_comments" gorm:"type:text"`

	// Relative path of an uploaded logo image, empty when none was accepted.
	OrgLogo string `json:"org_logo" gorm:"size:200"`

	Visible   bool      `json:"visible" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`

	// Soft-delete marker for the relational backend; the file backend encodes
	// removal in the filename instead, so this never appears in record files.
	Removed bool `json:"-" gorm:"index"`
}

// TableName returns the table name for Testimonial
func (Testimonial) TableName() string {
	return "testimonials"
}
