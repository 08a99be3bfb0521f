package models

import "sort"

// LookupCategory identifies one of the fixed enum tables a submission field
// must resolve against.
type LookupCategory string

const (
	LookupOrgType  LookupCategory = "org_type"
	LookupIndustry LookupCategory = "industry"
	LookupCountry  LookupCategory = "country"
	LookupVersion  LookupCategory = "version"
	LookupOSType   LookupCategory = "os_type"
	LookupCatalog  LookupCategory = "catalog"
)

// IsValid checks if the LookupCategory is valid
func (c LookupCategory) IsValid() bool {
	switch c {
	case LookupOrgType, LookupIndustry, LookupCountry, LookupVersion, LookupOSType, LookupCatalog:
		return true
	}
	return false
}

// OrgTypes maps organization type codes to labels.
var OrgTypes = map[int]string{
	100: "Non-profit",
	101: "Government",
	102: "Commercial",
	103: "Educational",
	104: "Individual",
}

// Industries maps industry codes to labels.
var Industries = map[int]string{
	400: "Aerospace",
	401: "Agriculture",
	402: "Automotive",
	403: "Banking and Finance",
	404: "Construction",
	405: "Consulting",
	406: "Energy",
	407: "Entertainment",
	408: "Healthcare",
	409: "Hospitality",
	410: "Information Technology",
	411: "Insurance",
	412: "Legal",
	413: "Manufacturing",
	414: "Media",
	415: "Research",
	416: "Retail",
	417: "Telecommunications",
	418: "Transportation",
	419: "Other",
}

// Countries maps country codes to labels.
var Countries = map[int]string{
	1000: "Argentina",
	1001: "Australia",
	1002: "Austria",
	1003: "Belgium",
	1004: "Brazil",
	1005: "Canada",
	1006: "Chile",
	1007: "China",
	1008: "Czech Republic",
	1009: "Denmark",
	1010: "Finland",
	1011: "France",
	1012: "Germany",
	1013: "Greece",
	1014: "Hungary",
	1015: "India",
	1016: "Ireland",
	1017: "Israel",
	1018: "Italy",
	1019: "Japan",
	1020: "Mexico",
	1021: "Netherlands",
	1022: "New Zealand",
	1023: "Norway",
	1024: "Poland",
	1025: "Portugal",
	1026: "Romania",
	1027: "Russia",
	1028: "South Africa",
	1029: "South Korea",
	1030: "Spain",
	1031: "Sweden",
	1032: "Switzerland",
	1033: "Taiwan",
	1034: "Turkey",
	1035: "Ukraine",
	1036: "United Kingdom",
	1037: "United States",
	1038: "Other",
}

// Versions maps product version codes to labels.
var Versions = map[int]string{
	200: "5.x or earlier",
	201: "7.x",
	202: "9.x",
	203: "11.x",
	204: "12.x",
	205: "13.x",
	206: "14.x",
	207: "15.x",
	208: "16.x",
	209: "Development snapshot",
}

// OSTypes maps operating system codes to labels.
var OSTypes = map[int]string{
	500: "Linux (Red Hat / CentOS)",
	501: "Linux (Debian / Ubuntu)",
	502: "Linux (SUSE)",
	503: "Linux (other)",
	504: "Solaris",
	505: "AIX",
	506: "HP-UX",
	507: "macOS",
	508: "FreeBSD",
	509: "NetBSD / OpenBSD",
	510: "Windows",
	511: "Mixed environment",
}

// Catalogs maps catalog database engine codes to labels.
var Catalogs = map[int]string{
	300: "PostgreSQL",
	301: "MySQL",
	302: "MariaDB",
	303: "SQLite",
}

// Lookups indexes every fixed enum table by category.
var Lookups = map[LookupCategory]map[int]string{
	LookupOrgType:  OrgTypes,
	LookupIndustry: Industries,
	LookupCountry:  Countries,
	LookupVersion:  Versions,
	LookupOSType:   OSTypes,
	LookupCatalog:  Catalogs,
}

// LookupCategories lists the categories in a stable export order.
var LookupCategories = []LookupCategory{
	LookupOrgType,
	LookupIndustry,
	LookupCountry,
	LookupVersion,
	LookupOSType,
	LookupCatalog,
}

// ResolveLookup returns the label for a code within a category. The second
// return value reports whether the code is a key of the table.
func ResolveLookup(category LookupCategory, code int) (string, bool) {
	table, ok := Lookups[category]
	if !ok {
		return "", false
	}
	label, ok := table[code]
	return label, ok
}

// LookupCodes returns the codes of a category in ascending order.
func LookupCodes(category LookupCategory) []int {
	table := Lookups[category]
	codes := make([]int, 0, len(table))
	for code := range table {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	return codes
}
