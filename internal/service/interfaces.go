package service

import (
	"mime/multipart"
	"net/url"

	"testimonial-portal-backend/internal/models"
	"testimonial-portal-backend/internal/store"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// TestimonialServiceInterface defines the interface for the moderation workflow
type TestimonialServiceInterface interface {
	BlankForm() *FormResponse
	Submit(form url.Values, logo *multipart.FileHeader) (*SubmitResponse, error)
	Get(id string, admin bool) (*TestimonialResponse, error)
	GetForEdit(id string) (*FormResponse, error)
	Save(id string, form url.Values, logo *multipart.FileHeader) (*TestimonialResponse, error)
	Delete(id string) error
	SetVisibility(id string, visible bool) (*TestimonialResponse, error)
	List(filter store.Filter, offset, limit int, admin bool) (*TestimonialListResponse, error)
	Export(id string) (string, error)
	ExportDump() (string, error)
}

// ExporterInterface defines the interface for the SQL/text exporter
type ExporterInterface interface {
	ExportOne(rec *models.Testimonial) string
	ExportAll() (string, error)
}

// NotifierInterface defines the interface for submission notifications
type NotifierInterface interface {
	SubmissionReceived(id, name, email string)
}
