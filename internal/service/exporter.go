package service

import (
	"fmt"
	"strings"

	"testimonial-portal-backend/internal/models"
	"testimonial-portal-backend/internal/store"
)

// Exporter renders records as text: a readable key = value dump of one
// record, or the whole store as SQL suitable for one-shot migration into a
// relational database. Incremental sync is out of scope.
type Exporter struct {
	store store.Store
}

// Ensure Exporter implements ExporterInterface
var _ ExporterInterface = (*Exporter)(nil)

// NewExporter creates an Exporter over the record store.
func NewExporter(st store.Store) *Exporter {
	return &Exporter{store: st}
}

// ExportOne renders every stored attribute of a record as key = value lines,
// resolving each enum code to its human-readable label.
func (e *Exporter) ExportOne(rec *models.Testimonial) string {
	var b strings.Builder

	line := func(key string, value interface{}) {
		fmt.Fprintf(&b, "%s = %v\n", key, value)
	}
	enumLine := func(key string, category models.LookupCategory, code int) {
		label, ok := models.ResolveLookup(category, code)
		if !ok {
			label = "unknown"
		}
		fmt.Fprintf(&b, "%s = %d (%s)\n", key, code, label)
	}

	line("id", rec.ID)
	line("contact_name", rec.ContactName)
	line("email_address", rec.EmailAddress)
	line("org_name", rec.OrgName)
	line("title", rec.Title)
	line("website", rec.Website)
	enumLine("org_type", models.LookupOrgType, rec.OrgTypeID)
	enumLine("industry", models.LookupIndustry, rec.IndustryID)
	enumLine("country", models.LookupCountry, rec.CountryID)
	enumLine("version", models.LookupVersion, rec.VersionID)
	enumLine("os_type", models.LookupOSType, rec.OSTypeID)
	enumLine("catalog", models.LookupCatalog, rec.CatalogID)
	line("org_size", rec.OrgSize)
	line("number_dir", rec.NumberDirectors)
	line("number_clients", rec.NumberClients)
	line("number_sd", rec.NumberStorageDaemons)
	line("monthly_gb", rec.MonthlyGB)
	line("number_files", rec.NumberFiles)
	line("redundant_setup", boolBit(rec.RedundantSetup))
	line("support_requested", boolBit(rec.SupportRequested))
	line("publish_contact", boolBit(rec.PublishContact))
	line("publish_email", boolBit(rec.PublishEmail))
	line("publish_org_name", boolBit(rec.PublishOrgName))
	line("publish_org_size", boolBit(rec.PublishOrgSize))
	line("publish_website", boolBit(rec.PublishWebsite))
	line("comments", rec.Comments)
	line("hardware_comments", rec.HardwareComments)
	line("org_logo", rec.OrgLogo)
	line("visible", boolBit(rec.Visible))
	line("created_at", rec.CreatedAt.UTC().Format("2006-01-02 15:04:05"))

	return b.String()
}

// testimonialColumns is the column order of the reference schema's wide
// table, matched by recordValues below.
var testimonialColumns = []string{
	"id", "contact_name", "email_address", "org_name", "title", "website",
	"org_type", "industry", "country", "version", "os_type", "catalog",
	"org_size", "number_dir", "number_clients", "number_sd", "monthly_gb",
	"number_files", "redundant_setup", "support_requested",
	"publish_contact", "publish_email", "publish_org_name",
	"publish_org_size", "publish_website", "comments", "hardware_comments",
	"org_logo", "visible", "created_at",
}

// ExportAll emits the reference schema as DDL, one INSERT per lookup entry
// and one INSERT per record still enumerable in the store (hidden records
// included, soft-deleted ones excluded by enumeration).
func (e *Exporter) ExportAll() (string, error) {
	var b strings.Builder

	b.WriteString(referenceSchema)
	b.WriteString("\n")

	for _, category := range models.LookupCategories {
		for _, code := range models.LookupCodes(category) {
			label, _ := models.ResolveLookup(category, code)
			fmt.Fprintf(&b,
				"INSERT INTO lookup_values (category, code, label) VALUES (%s, %d, %s);\n",
				quoteSQL(string(category)), code, quoteSQL(label))
		}
	}
	b.WriteString("\n")

	offset := 0
	for {
		recs, hasMore, err := e.store.List(store.FilterAll, offset, store.MaxPageSize)
		if err != nil {
			return "", err
		}
		for i := range recs {
			fmt.Fprintf(&b, "INSERT INTO testimonials (%s) VALUES (%s);\n",
				strings.Join(testimonialColumns, ", "),
				strings.Join(recordValues(&recs[i]), ", "))
		}
		if !hasMore {
			break
		}
		offset += store.MaxPageSize
	}

	return b.String(), nil
}

func recordValues(rec *models.Testimonial) []string {
	return []string{
		quoteSQL(rec.ID),
		quoteSQL(rec.ContactName),
		quoteSQL(rec.EmailAddress),
		quoteSQL(rec.OrgName),
		quoteSQL(rec.Title),
		quoteSQL(rec.Website),
		fmt.Sprintf("%d", rec.OrgTypeID),
		fmt.Sprintf("%d", rec.IndustryID),
		fmt.Sprintf("%d", rec.CountryID),
		fmt.Sprintf("%d", rec.VersionID),
		fmt.Sprintf("%d", rec.OSTypeID),
		fmt.Sprintf("%d", rec.CatalogID),
		fmt.Sprintf("%d", rec.OrgSize),
		fmt.Sprintf("%d", rec.NumberDirectors),
		fmt.Sprintf("%d", rec.NumberClients),
		fmt.Sprintf("%d", rec.NumberStorageDaemons),
		fmt.Sprintf("%d", rec.MonthlyGB),
		fmt.Sprintf("%d", rec.NumberFiles),
		fmt.Sprintf("%d", boolBit(rec.RedundantSetup)),
		fmt.Sprintf("%d", boolBit(rec.SupportRequested)),
		fmt.Sprintf("%d", boolBit(rec.PublishContact)),
		fmt.Sprintf("%d", boolBit(rec.PublishEmail)),
		fmt.Sprintf("%d", boolBit(rec.PublishOrgName)),
		fmt.Sprintf("%d", boolBit(rec.PublishOrgSize)),
		fmt.Sprintf("%d", boolBit(rec.PublishWebsite)),
		quoteSQL(rec.Comments),
		quoteSQL(rec.HardwareComments),
		quoteSQL(rec.OrgLogo),
		fmt.Sprintf("%d", boolBit(rec.Visible)),
		quoteSQL(rec.CreatedAt.UTC().Format("2006-01-02 15:04:05")),
	}
}

func quoteSQL(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func boolBit(b bool) int {
	if b {
		return 1
	}
	return 0
}

const referenceSchema = `CREATE TABLE lookup_values (
  category VARCHAR(32) NOT NULL,
  code INTEGER NOT NULL,
  label VARCHAR(128) NOT NULL,
  PRIMARY KEY (category, code)
);

CREATE TABLE testimonials (
  id VARCHAR(64) PRIMARY KEY,
  contact_name VARCHAR(200) NOT NULL,
  email_address VARCHAR(200) NOT NULL,
  org_name VARCHAR(200) NOT NULL,
  title VARCHAR(200),
  website VARCHAR(200),
  org_type INTEGER NOT NULL,
  industry INTEGER NOT NULL,
  country INTEGER NOT NULL,
  version INTEGER NOT NULL,
  os_type INTEGER NOT NULL,
  catalog INTEGER NOT NULL,
  org_size INTEGER NOT NULL,
  number_dir INTEGER NOT NULL,
  number_clients INTEGER NOT NULL,
  number_sd INTEGER NOT NULL,
  monthly_gb INTEGER NOT NULL,
  number_files INTEGER NOT NULL,
  redundant_setup SMALLINT NOT NULL DEFAULT 0,
  support_requested SMALLINT NOT NULL DEFAULT 0,
  publish_contact SMALLINT NOT NULL DEFAULT 0,
  publish_email SMALLINT NOT NULL DEFAULT 0,
  publish_org_name SMALLINT NOT NULL DEFAULT 0,
  publish_org_size SMALLINT NOT NULL DEFAULT 0,
  publish_website SMALLINT NOT NULL DEFAULT 0,
  comments TEXT,
  hardware_comments TEXT,
  org_logo VARCHAR(200),
  visible SMALLINT NOT NULL DEFAULT 0,
  created_at TIMESTAMP NOT NULL
);

CREATE VIEW testimonials_expanded AS
SELECT t.*,
       ot.label AS org_type_label,
       ind.label AS industry_label,
       co.label AS country_label,
       ver.label AS version_label,
       ost.label AS os_type_label,
       cat.label AS catalog_label
FROM testimonials t
  JOIN lookup_values ot ON ot.category = 'org_type' AND ot.code = t.org_type
  JOIN lookup_values ind ON ind.category = 'industry' AND ind.code = t.industry
  JOIN lookup_values co ON co.category = 'country' AND co.code = t.country
  JOIN lookup_values ver ON ver.category = 'version' AND ver.code = t.version
  JOIN lookup_values ost ON ost.category = 'os_type' AND ost.code = t.os_type
  JOIN lookup_values cat ON cat.category = 'catalog' AND cat.code = t.catalog;
`
