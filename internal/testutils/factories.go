package testutils

import (
	"net/url"
	"time"

	"testimonial-portal-backend/internal/models"
	"testimonial-portal-backend/internal/token"
)

// TestimonialFactory provides methods to create test Testimonial data
type TestimonialFactory struct{}

// NewTestimonialFactory creates a new TestimonialFactory
func NewTestimonialFactory() *TestimonialFactory {
	return &TestimonialFactory{}
}

// Create creates a test Testimonial with default values
func (f *TestimonialFactory) Create() *models.Testimonial {
	return &models.Testimonial{
		ID:                   token.New(),
		ContactName:          "Jane Doe",
		EmailAddress:         "jane@example.com",
		OrgName:              "Acme Corp",
		Title:                "Systems Administrator",
		Website:              "www.example.com",
		OrgTypeID:            102,
		IndustryID:           410,
		CountryID:            1037,
		VersionID:            208,
		OSTypeID:             508,
		CatalogID:            300,
		OrgSize:              50,
		NumberDirectors:      1,
		NumberClients:        10,
		NumberStorageDaemons: 1,
		MonthlyGB:            500,
		NumberFiles:          100000,
		PublishOrgName:       true,
		Comments:             "Reliable backups for years.",
		Visible:              false,
		CreatedAt:            time.Now().UTC(),
	}
}

// WithVisible sets the moderation flag
func (f *TestimonialFactory) WithVisible(visible bool) *models.Testimonial {
	rec := f.Create()
	rec.Visible = visible
	return rec
}

// Form builds the raw submission form matching Create's defaults
func (f *TestimonialFactory) Form() url.Values {
	return url.Values{
		"contact_name":   {"Jane Doe"},
		"email_address":  {"jane@example.com"},
		"org_name":       {"Acme Corp"},
		"title":          {"Systems Administrator"},
		"website":        {"www.example.com"},
		"org_type":       {"102"},
		"industry":       {"410"},
		"country":        {"1037"},
		"version":        {"208"},
		"os_type":        {"508"},
		"catalog":        {"300"},
		"org_size":       {"50"},
		"number_dir":     {"1"},
		"number_clients": {"10"},
		"number_sd":      {"1"},
		"monthly_gb":     {"500"},
		"number_files":   {"100000"},
		"comments":       {"Reliable backups for years."},
	}
}
