package service

import (
	"fmt"
	"mime/multipart"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"

	apperrors "testimonial-portal-backend/internal/errors"
	"testimonial-portal-backend/internal/logger"
	"testimonial-portal-backend/internal/models"
	"testimonial-portal-backend/internal/store"
	"testimonial-portal-backend/internal/validation"
)

// TestimonialService orchestrates the submission and moderation workflow
// over the record store: validation, creation, editing, visibility toggles,
// soft deletion and export.
type TestimonialService struct {
	store     store.Store
	logos     *LogoStore
	notifier  NotifierInterface
	exporter  ExporterInterface
	validator *validator.Validate
	baseURL   string
	log       *logger.Logger
}

// Ensure TestimonialService implements TestimonialServiceInterface
var _ TestimonialServiceInterface = (*TestimonialService)(nil)

// NewTestimonialService creates a new TestimonialService
func NewTestimonialService(st store.Store, logos *LogoStore, notifier NotifierInterface, exporter ExporterInterface, validate *validator.Validate, baseURL string) *TestimonialService {
	return &TestimonialService{
		store:     st,
		logos:     logos,
		notifier:  notifier,
		exporter:  exporter,
		validator: validate,
		baseURL:   baseURL,
		log:       logger.New(),
	}
}

// SubmitResponse is returned after a successful submission
type SubmitResponse struct {
	ID       string `json:"id"`
	EditLink string `json:"edit_link"`
	Message  string `json:"message"`
}

// TestimonialResponse represents a single record in API responses. Label
// fields carry the resolved lookup text for the enum-coded attributes.
type TestimonialResponse struct {
	ID            string `json:"id"`
	ContactName   string `json:"contact_name,omitempty"`
	EmailAddress  string `json:"email_address,omitempty"`
	OrgName       string `json:"org_name,omitempty"`
	Title         string `json:"title,omitempty"`
	Website       string `json:"website,omitempty"`
	OrgType       string `json:"org_type"`
	Industry      string `json:"industry"`
	Country       string `json:"country"`
	Version       string `json:"version"`
	OSType        string `json:"os_type"`
	Catalog       string `json:"catalog"`
	OrgSize       int    `json:"org_size,omitempty"`
	NumberDir     int    `json:"number_dir"`
	NumberClients int    `json:"number_clients"`
	NumberSD      int    `json:"number_sd"`
	MonthlyGB     int    `json:"monthly_gb"`
	NumberFiles   int    `json:"number_files"`
	Redundant     bool   `json:"redundant_setup"`
	Support       bool   `json:"support_requested"`
	Comments      string `json:"comments,omitempty"`
	Hardware      string `json:"hardware_comments,omitempty"`
	OrgLogo       string `json:"org_logo,omitempty"`
	Visible       bool   `json:"visible"`
	CreatedAt     string `json:"created_at"`
}

// TestimonialListResponse represents one page of records
type TestimonialListResponse struct {
	Testimonials []TestimonialResponse `json:"testimonials"`
	Offset       int                   `json:"offset"`
	Limit        int                   `json:"limit"`
	HasMore      bool                  `json:"has_more"`
}

// FormResponse carries what a client needs to render the submission form:
// the lookup tables and, when editing, the existing record.
type FormResponse struct {
	Lookups map[models.LookupCategory]map[int]string `json:"lookups"`
	Record  *TestimonialResponse                     `json:"record,omitempty"`
}

// BlankForm returns the form payload for a new submission. No storage effect.
func (s *TestimonialService) BlankForm() *FormResponse {
	return &FormResponse{Lookups: models.Lookups}
}

// Submit validates a raw submission, persists it pending moderation and
// fires the notification emails. On any rule violation nothing is created
// and the error carries one message per offending field.
func (s *TestimonialService) Submit(form url.Values, logo *multipart.FileHeader) (*SubmitResponse, error) {
	rec, err := s.buildRecord(form)
	if err != nil {
		return nil, err
	}

	rec.OrgLogo = s.saveLogo(logo)
	rec.Visible = false
	rec.CreatedAt = time.Now().UTC()

	id, createErr := s.store.Create(rec)
	if createErr != nil {
		return nil, createErr
	}

	// Fire-and-forget: delivery failures are logged inside the notifier and
	// never affect the submission.
	s.notifier.SubmissionReceived(id, rec.ContactName, rec.EmailAddress)

	s.log.WithRecord(id).Info("testimonial submitted")
	return &SubmitResponse{
		ID:       id,
		EditLink: fmt.Sprintf("%s/testimonials?action=Modify&id=%s", s.baseURL, id),
		Message:  "Thank you. Your profile is awaiting moderation.",
	}, nil
}

// Get returns a single record. Non-admin callers only see approved records;
// a hidden record reads exactly like a missing one.
func (s *TestimonialService) Get(id string, admin bool) (*TestimonialResponse, error) {
	rec, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	if !admin && !rec.Visible {
		return nil, apperrors.ErrTestimonialNotFound
	}
	resp := s.toResponse(rec, admin)
	return &resp, nil
}

// GetForEdit loads a record for the pre-filled edit form. Possession of the
// unguessable id is the edit capability, so visibility is not checked.
func (s *TestimonialService) GetForEdit(id string) (*FormResponse, error) {
	rec, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	resp := s.toResponse(rec, true)
	return &FormResponse{Lookups: models.Lookups, Record: &resp}, nil
}

// Save re-validates and overwrites a record in place. Visibility and
// creation time are untouched; the stored logo is preserved unless a new
// upload replaces it.
func (s *TestimonialService) Save(id string, form url.Values, logo *multipart.FileHeader) (*TestimonialResponse, error) {
	existing, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}

	rec, buildErr := s.buildRecord(form)
	if buildErr != nil {
		return nil, buildErr
	}

	rec.ID = existing.ID
	rec.Visible = existing.Visible
	rec.CreatedAt = existing.CreatedAt
	rec.OrgLogo = existing.OrgLogo
	if newLogo := s.saveLogo(logo); newLogo != "" {
		rec.OrgLogo = newLogo
	}

	if err := s.store.Update(id, rec); err != nil {
		return nil, err
	}

	s.log.WithRecord(id).Info("testimonial updated")
	resp := s.toResponse(rec, true)
	return &resp, nil
}

// Delete soft-deletes a record and marks its logo asset removed. Deleting an
// already-deleted record is not an error.
func (s *TestimonialService) Delete(id string) error {
	logo := ""
	if rec, err := s.store.Get(id); err == nil {
		logo = rec.OrgLogo
	}

	if err := s.store.SoftDelete(id); err != nil {
		return err
	}

	if logo != "" {
		s.logos.Remove(logo)
	}
	s.log.WithRecord(id).Info("testimonial deleted")
	return nil
}

// SetVisibility publishes or hides a record.
func (s *TestimonialService) SetVisibility(id string, visible bool) (*TestimonialResponse, error) {
	rec, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}

	rec.Visible = visible
	if err := s.store.Update(id, rec); err != nil {
		return nil, err
	}

	s.log.WithRecord(id).WithField("visible", visible).Info("testimonial visibility changed")
	resp := s.toResponse(rec, true)
	return &resp, nil
}

// List returns one page of records for the filter. Non-admin callers are
// restricted to the public filter by the handler; masking of unconsented
// fields happens here.
func (s *TestimonialService) List(filter store.Filter, offset, limit int, admin bool) (*TestimonialListResponse, error) {
	recs, hasMore, err := s.store.List(filter, offset, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]TestimonialResponse, len(recs))
	for i := range recs {
		responses[i] = s.toResponse(&recs[i], admin)
	}

	return &TestimonialListResponse{
		Testimonials: responses,
		Offset:       offset,
		Limit:        limit,
		HasMore:      hasMore,
	}, nil
}

// Export renders one record as a key = value text block.
func (s *TestimonialService) Export(id string) (string, error) {
	rec, err := s.store.Get(id)
	if err != nil {
		return "", err
	}
	return s.exporter.ExportOne(rec), nil
}

// ExportDump renders the full store as SQL for one-shot migration.
func (s *TestimonialService) ExportDump() (string, error) {
	return s.exporter.ExportAll()
}

// buildRecord runs the authoritative validation pipeline: field rules, then
// lookup membership, then a structural backstop over the typed record.
func (s *TestimonialService) buildRecord(form url.Values) (*models.Testimonial, error) {
	rec, fieldErrs := validation.ParseSubmission(form)
	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}

	validation.CheckLookups(rec, fieldErrs)
	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}

	if err := s.validator.Struct(rec); err != nil {
		// The field rules above should make this unreachable; treat a miss
		// as a plain validation failure rather than leaking tag detail.
		return nil, apperrors.NewValidationError("", "submission rejected")
	}
	return rec, nil
}

// saveLogo stores an upload when one was supplied and its extension passes
// the whitelist. Anything else is silently dropped, never an error.
func (s *TestimonialService) saveLogo(logo *multipart.FileHeader) string {
	if logo == nil || !validation.AllowedLogoExt(logo.Filename) {
		return ""
	}
	name, err := s.logos.Save(logo)
	if err != nil {
		s.log.Warnf("logo upload dropped: %v", err)
		return ""
	}
	return name
}

func (s *TestimonialService) toResponse(rec *models.Testimonial, admin bool) TestimonialResponse {
	label := func(category models.LookupCategory, code int) string {
		l, ok := models.ResolveLookup(category, code)
		if !ok {
			return "unknown"
		}
		return l
	}

	resp := TestimonialResponse{
		ID:            rec.ID,
		ContactName:   rec.ContactName,
		EmailAddress:  rec.EmailAddress,
		OrgName:       rec.OrgName,
		Title:         rec.Title,
		Website:       rec.Website,
		OrgType:       label(models.LookupOrgType, rec.OrgTypeID),
		Industry:      label(models.LookupIndustry, rec.IndustryID),
		Country:       label(models.LookupCountry, rec.CountryID),
		Version:       label(models.LookupVersion, rec.VersionID),
		OSType:        label(models.LookupOSType, rec.OSTypeID),
		Catalog:       label(models.LookupCatalog, rec.CatalogID),
		OrgSize:       rec.OrgSize,
		NumberDir:     rec.NumberDirectors,
		NumberClients: rec.NumberClients,
		NumberSD:      rec.NumberStorageDaemons,
		MonthlyGB:     rec.MonthlyGB,
		NumberFiles:   rec.NumberFiles,
		Redundant:     rec.RedundantSetup,
		Support:       rec.SupportRequested,
		Comments:      rec.Comments,
		Hardware:      rec.HardwareComments,
		OrgLogo:       rec.OrgLogo,
		Visible:       rec.Visible,
		CreatedAt:     rec.CreatedAt.UTC().Format(time.RFC3339),
	}

	if !admin {
		// Honor per-field display consent for public callers.
		if !rec.PublishContact {
			resp.ContactName = ""
			resp.Title = ""
		}
		if !rec.PublishEmail {
			resp.EmailAddress = ""
		}
		if !rec.PublishOrgName {
			resp.OrgName = ""
		}
		if !rec.PublishOrgSize {
			resp.OrgSize = 0
		}
		if !rec.PublishWebsite {
			resp.Website = ""
		}
	}
	return resp
}
