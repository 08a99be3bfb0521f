// Package validation turns the untyped form bag of a submission into a typed
// Testimonial, accumulating every rule violation instead of stopping at the
// first. It is the single authoritative implementation of the submission
// rules; any client-side mirror is advisory UX only.
package validation

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	apperrors "testimonial-portal-backend/internal/errors"
	"testimonial-portal-backend/internal/models"
)

// Form field names of a profile submission.
const (
	FieldContactName      = "contact_name"
	FieldEmailAddress     = "email_address"
	FieldOrgName          = "org_name"
	FieldTitle            = "title"
	FieldWebsite          = "website"
	FieldOrgType          = "org_type"
	FieldIndustry         = "industry"
	FieldCountry          = "country"
	FieldVersion          = "version"
	FieldOSType           = "os_type"
	FieldCatalog          = "catalog"
	FieldOrgSize          = "org_size"
	FieldNumberDirectors  = "number_dir"
	FieldNumberClients    = "number_clients"
	FieldNumberStorage    = "number_sd"
	FieldMonthlyGB        = "monthly_gb"
	FieldNumberFiles      = "number_files"
	FieldRedundantSetup   = "redundant_setup"
	FieldSupportRequested = "support_requested"
	FieldPublishContact   = "publish_contact"
	FieldPublishEmail     = "publish_email"
	FieldPublishOrgName   = "publish_org_name"
	FieldPublishOrgSize   = "publish_org_size"
	FieldPublishWebsite   = "publish_website"
	FieldComments         = "comments"
	FieldHardwareComments = "hardware_comments"
	FieldOrgLogo          = "org_logo"
)

// Characters outside this set are replaced with a space, never rejected.
var disallowedChars = regexp.MustCompile(`[^A-Za-z0-9!.?:/,;_()@\n -]`)

// digitsOnly is what remains of a numeric field after comma/period stripping.
var digitsOnly = regexp.MustCompile(`^[0-9]+$`)

// logoExtensions is the upload whitelist; anything else is silently dropped.
var logoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// MaxDirectors caps the number of director daemons a submission may claim.
const MaxDirectors = 100

// Sanitize replaces every character outside the submission whitelist with a
// space and trims the result.
func Sanitize(s string) string {
	return strings.TrimSpace(disallowedChars.ReplaceAllString(s, " "))
}

// AllowedLogoExt reports whether an uploaded filename carries a whitelisted
// image extension (case-insensitive).
func AllowedLogoExt(name string) bool {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return false
	}
	return logoExtensions[strings.ToLower(name[idx:])]
}

// ParseSubmission validates and sanitizes a raw form bag. On success it
// returns the typed record (without ID, OrgLogo, Visible or CreatedAt, which
// the workflow owns) and an empty error map; on failure the record is nil and
// the map carries one message per offending field.
func ParseSubmission(form url.Values) (*models.Testimonial, apperrors.FieldErrors) {
	fieldErrs := apperrors.FieldErrors{}
	rec := &models.Testimonial{}

	rec.ContactName = requiredString(form, FieldContactName, fieldErrs)
	rec.EmailAddress = requiredString(form, FieldEmailAddress, fieldErrs)
	rec.OrgName = requiredString(form, FieldOrgName, fieldErrs)
	rec.Title = Sanitize(form.Get(FieldTitle))
	rec.Website = Sanitize(form.Get(FieldWebsite))

	rec.OrgTypeID = enumValue(form, FieldOrgType, fieldErrs)
	rec.IndustryID = enumValue(form, FieldIndustry, fieldErrs)
	rec.CountryID = enumValue(form, FieldCountry, fieldErrs)
	rec.VersionID = enumValue(form, FieldVersion, fieldErrs)
	rec.OSTypeID = enumValue(form, FieldOSType, fieldErrs)
	rec.CatalogID = enumValue(form, FieldCatalog, fieldErrs)

	rec.OrgSize = numericValue(form, FieldOrgSize, fieldErrs)
	rec.NumberDirectors = numericValue(form, FieldNumberDirectors, fieldErrs)
	rec.NumberClients = numericValue(form, FieldNumberClients, fieldErrs)
	rec.NumberStorageDaemons = numericValue(form, FieldNumberStorage, fieldErrs)
	rec.MonthlyGB = numericValue(form, FieldMonthlyGB, fieldErrs)
	rec.NumberFiles = numericValue(form, FieldNumberFiles, fieldErrs)

	if _, ok := fieldErrs[FieldNumberDirectors]; !ok {
		if rec.NumberDirectors > MaxDirectors {
			fieldErrs.Add(FieldNumberDirectors, "cannot exceed 100")
		} else if _, clientsOK := fieldErrs[FieldNumberClients]; !clientsOK && rec.NumberDirectors > rec.NumberClients {
			fieldErrs.Add(FieldNumberDirectors, "cannot exceed the number of clients")
		}
	}

	rec.RedundantSetup = boolValue(form, FieldRedundantSetup)
	rec.SupportRequested = boolValue(form, FieldSupportRequested)
	rec.PublishContact = boolValue(form, FieldPublishContact)
	rec.PublishEmail = boolValue(form, FieldPublishEmail)
	rec.PublishOrgName = boolValue(form, FieldPublishOrgName)
	rec.PublishOrgSize = boolValue(form, FieldPublishOrgSize)
	rec.PublishWebsite = boolValue(form, FieldPublishWebsite)

	rec.Comments = freeText(form, FieldComments, fieldErrs)
	rec.HardwareComments = freeText(form, FieldHardwareComments, fieldErrs)

	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}
	return rec, fieldErrs
}

// CheckLookups verifies that every enum-coded attribute resolves to a key of
// its lookup table, recording failures per field. Unresolvable codes are
// validation failures, never silently dropped.
func CheckLookups(rec *models.Testimonial, fieldErrs apperrors.FieldErrors) {
	checks := []struct {
		field    string
		category models.LookupCategory
		code     int
	}{
		{FieldOrgType, models.LookupOrgType, rec.OrgTypeID},
		{FieldIndustry, models.LookupIndustry, rec.IndustryID},
		{FieldCountry, models.LookupCountry, rec.CountryID},
		{FieldVersion, models.LookupVersion, rec.VersionID},
		{FieldOSType, models.LookupOSType, rec.OSTypeID},
		{FieldCatalog, models.LookupCatalog, rec.CatalogID},
	}
	for _, check := range checks {
		if _, ok := models.ResolveLookup(check.category, check.code); !ok {
			fieldErrs.Add(check.field, "is not a recognized value")
		}
	}
}

func requiredString(form url.Values, field string, fieldErrs apperrors.FieldErrors) string {
	value := Sanitize(form.Get(field))
	if value == "" {
		fieldErrs.Add(field, "is required")
	}
	return value
}

// numericValue strips embedded commas and periods (people type "10,000")
// before requiring an all-digit value.
func numericValue(form url.Values, field string, fieldErrs apperrors.FieldErrors) int {
	raw := strings.TrimSpace(form.Get(field))
	raw = strings.ReplaceAll(raw, ",", "")
	raw = strings.ReplaceAll(raw, ".", "")
	if !digitsOnly.MatchString(raw) {
		fieldErrs.Add(field, "must be a number")
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		fieldErrs.Add(field, "must be a number")
		return 0
	}
	return n
}

func enumValue(form url.Values, field string, fieldErrs apperrors.FieldErrors) int {
	raw := strings.TrimSpace(form.Get(field))
	if !digitsOnly.MatchString(raw) {
		fieldErrs.Add(field, "is required")
		return 0
	}
	n, _ := strconv.Atoi(raw)
	return n
}

func boolValue(form url.Values, field string) bool {
	return form.Get(field) == "1"
}

// freeText rejects any value containing a literal link prefix, then applies
// the shared character whitelist. The link ban is the anti-spam rule.
func freeText(form url.Values, field string, fieldErrs apperrors.FieldErrors) string {
	raw := form.Get(field)
	if strings.Contains(raw, "http://") {
		fieldErrs.Add(field, "may not contain links")
		return ""
	}
	return Sanitize(raw)
}
