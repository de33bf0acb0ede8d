package onix

import (
	"fmt"

	"thothexport/internal/work"
)

// Specification names an ONIX dialect for one distribution channel.
type Specification string

const (
	SpecEbscoHost   Specification = "onix_2.1::ebsco_host"
	SpecProjectMuse Specification = "onix_3.0::project_muse"
	SpecOapen       Specification = "onix_3.0::oapen"
)

// Code List 64
var publishingStatusCodes = map[work.WorkStatus]string{
	work.WorkStatusUnspecified:            "00",
	work.WorkStatusCancelled:              "01",
	work.WorkStatusForthcoming:            "02",
	work.WorkStatusPostponedIndefinitely:  "03",
	work.WorkStatusActive:                 "04",
	work.WorkStatusNoLongerOurProduct:     "05",
	work.WorkStatusOutOfStockIndefinitely: "06",
	work.WorkStatusOutOfPrint:             "07",
	work.WorkStatusInactive:               "08",
	work.WorkStatusUnknown:                "09",
	work.WorkStatusRemaindered:            "10",
	work.WorkStatusWithdrawnFromSale:      "11",
	work.WorkStatusRecalled:               "15",
}

// Code List 27
var subjectSchemeCodes = map[work.SubjectType]string{
	work.SubjectTypeBIC:     "12",
	work.SubjectTypeBISAC:   "10",
	work.SubjectTypeKeyword: "20",
	work.SubjectTypeLCC:     "04",
	work.SubjectTypeThema:   "93",
	work.SubjectTypeCustom:  "B2",
}

// Code List 22. Original and TranslatedInto share a role.
var languageRoleCodes = map[work.LanguageRelation]string{
	work.LanguageRelationOriginal:       "01",
	work.LanguageRelationTranslatedFrom: "02",
	work.LanguageRelationTranslatedInto: "01",
}

// Code List 17
var contributorRoleCodes = map[work.ContributionType]string{
	work.ContributionTypeAuthor:         "A01",
	work.ContributionTypeEditor:         "B01",
	work.ContributionTypeTranslator:     "B06",
	work.ContributionTypePhotographer:   "A13",
	work.ContributionTypeIllustrator:    "A12",
	work.ContributionTypeMusicEditor:    "B25",
	work.ContributionTypeForewordBy:     "A23",
	work.ContributionTypeIntroductionBy: "A24",
	work.ContributionTypeAfterwordBy:    "A19",
	work.ContributionTypePrefaceBy:      "A15",
}

var (
	workStatusTables = map[Specification]map[work.WorkStatus]string{
		SpecEbscoHost:   publishingStatusCodes,
		SpecProjectMuse: publishingStatusCodes,
	}
	subjectTypeTables = map[Specification]map[work.SubjectType]string{
		SpecEbscoHost:   subjectSchemeCodes,
		SpecProjectMuse: subjectSchemeCodes,
	}
	languageRelationTables = map[Specification]map[work.LanguageRelation]string{
		SpecEbscoHost:   languageRoleCodes,
		SpecProjectMuse: languageRoleCodes,
	}
	contributionTypeTables = map[Specification]map[work.ContributionType]string{
		SpecEbscoHost:   contributorRoleCodes,
		SpecProjectMuse: contributorRoleCodes,
	}
)

// WorkStatusCode returns the PublishingStatus code for s.
func WorkStatusCode(spec Specification, s work.WorkStatus) string {
	return codeFor(spec, "work status", workStatusTables, s)
}

// SubjectTypeCode returns the SubjectSchemeIdentifier code for t.
func SubjectTypeCode(spec Specification, t work.SubjectType) string {
	return codeFor(spec, "subject type", subjectTypeTables, t)
}

// LanguageRelationCode returns the LanguageRole code for r.
func LanguageRelationCode(spec Specification, r work.LanguageRelation) string {
	return codeFor(spec, "language relation", languageRelationTables, r)
}

// ContributionTypeCode returns the ContributorRole code for t.
func ContributionTypeCode(spec Specification, t work.ContributionType) string {
	return codeFor(spec, "contribution type", contributionTypeTables, t)
}

// codeFor panics on values without a code: a catch-all enum value reaching
// a feed is an upstream validation defect, not a runtime condition.
func codeFor[K ~string](spec Specification, kind string, tables map[Specification]map[K]string, v K) string {
	codes, ok := tables[spec]
	if !ok {
		panic(fmt.Sprintf("onix: %s has no %s code table", spec, kind))
	}
	code, ok := codes[v]
	if !ok {
		panic(fmt.Sprintf("onix: %s has no code for %s %q", spec, kind, string(v)))
	}
	return code
}
