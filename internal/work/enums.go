package work

import "strings"

// Enumerations are carried as the upper snake case strings used by the
// GraphQL API. Any value outside the declared constants is treated as a
// catch-all that must never reach a distribution feed.

type WorkType string

const (
	WorkTypeBookChapter  WorkType = "BOOK_CHAPTER"
	WorkTypeMonograph    WorkType = "MONOGRAPH"
	WorkTypeEditedBook   WorkType = "EDITED_BOOK"
	WorkTypeTextbook     WorkType = "TEXTBOOK"
	WorkTypeJournalIssue WorkType = "JOURNAL_ISSUE"
	WorkTypeBookSet      WorkType = "BOOK_SET"
)

type WorkStatus string

const (
	WorkStatusUnspecified            WorkStatus = "UNSPECIFIED"
	WorkStatusCancelled              WorkStatus = "CANCELLED"
	WorkStatusForthcoming            WorkStatus = "FORTHCOMING"
	WorkStatusPostponedIndefinitely  WorkStatus = "POSTPONED_INDEFINITELY"
	WorkStatusActive                 WorkStatus = "ACTIVE"
	WorkStatusNoLongerOurProduct     WorkStatus = "NO_LONGER_OUR_PRODUCT"
	WorkStatusOutOfStockIndefinitely WorkStatus = "OUT_OF_STOCK_INDEFINITELY"
	WorkStatusOutOfPrint             WorkStatus = "OUT_OF_PRINT"
	WorkStatusInactive               WorkStatus = "INACTIVE"
	WorkStatusUnknown                WorkStatus = "UNKNOWN"
	WorkStatusRemaindered            WorkStatus = "REMAINDERED"
	WorkStatusWithdrawnFromSale      WorkStatus = "WITHDRAWN_FROM_SALE"
	WorkStatusRecalled               WorkStatus = "RECALLED"
)

// WorkStatuses lists every concrete work status.
var WorkStatuses = []WorkStatus{
	WorkStatusUnspecified, WorkStatusCancelled, WorkStatusForthcoming,
	WorkStatusPostponedIndefinitely, WorkStatusActive, WorkStatusNoLongerOurProduct,
	WorkStatusOutOfStockIndefinitely, WorkStatusOutOfPrint, WorkStatusInactive,
	WorkStatusUnknown, WorkStatusRemaindered, WorkStatusWithdrawnFromSale, WorkStatusRecalled,
}

type PublicationType string

const (
	PublicationTypePaperback PublicationType = "PAPERBACK"
	PublicationTypeHardback  PublicationType = "HARDBACK"
	PublicationTypePDF       PublicationType = "PDF"
	PublicationTypeHTML      PublicationType = "HTML"
	PublicationTypeXML       PublicationType = "XML"
	PublicationTypeEPUB      PublicationType = "EPUB"
	PublicationTypeMOBI      PublicationType = "MOBI"
)

type ContributionType string

const (
	ContributionTypeAuthor         ContributionType = "AUTHOR"
	ContributionTypeEditor         ContributionType = "EDITOR"
	ContributionTypeTranslator     ContributionType = "TRANSLATOR"
	ContributionTypePhotographer   ContributionType = "PHOTOGRAPHER"
	ContributionTypeIllustrator    ContributionType = "ILUSTRATOR"
	ContributionTypeMusicEditor    ContributionType = "MUSIC_EDITOR"
	ContributionTypeForewordBy     ContributionType = "FOREWORD_BY"
	ContributionTypeIntroductionBy ContributionType = "INTRODUCTION_BY"
	ContributionTypeAfterwordBy    ContributionType = "AFTERWORD_BY"
	ContributionTypePrefaceBy      ContributionType = "PREFACE_BY"
)

// ContributionTypes lists every concrete contribution type.
var ContributionTypes = []ContributionType{
	ContributionTypeAuthor, ContributionTypeEditor, ContributionTypeTranslator,
	ContributionTypePhotographer, ContributionTypeIllustrator, ContributionTypeMusicEditor,
	ContributionTypeForewordBy, ContributionTypeIntroductionBy, ContributionTypeAfterwordBy,
	ContributionTypePrefaceBy,
}

type LanguageRelation string

const (
	LanguageRelationOriginal       LanguageRelation = "ORIGINAL"
	LanguageRelationTranslatedFrom LanguageRelation = "TRANSLATED_FROM"
	LanguageRelationTranslatedInto LanguageRelation = "TRANSLATED_INTO"
)

// LanguageRelations lists every concrete language relation.
var LanguageRelations = []LanguageRelation{
	LanguageRelationOriginal, LanguageRelationTranslatedFrom, LanguageRelationTranslatedInto,
}

type SubjectType string

const (
	SubjectTypeBIC     SubjectType = "BIC"
	SubjectTypeBISAC   SubjectType = "BISAC"
	SubjectTypeThema   SubjectType = "THEMA"
	SubjectTypeLCC     SubjectType = "LCC"
	SubjectTypeCustom  SubjectType = "CUSTOM"
	SubjectTypeKeyword SubjectType = "KEYWORD"
)

// SubjectTypes lists every concrete subject type.
var SubjectTypes = []SubjectType{
	SubjectTypeBIC, SubjectTypeBISAC, SubjectTypeThema,
	SubjectTypeLCC, SubjectTypeCustom, SubjectTypeKeyword,
}

type SeriesType string

const (
	SeriesTypeJournal    SeriesType = "JOURNAL"
	SeriesTypeBookSeries SeriesType = "BOOK_SERIES"
)

type LocationPlatform string

const (
	LocationPlatformProjectMuse      LocationPlatform = "PROJECT_MUSE"
	LocationPlatformOapen            LocationPlatform = "OAPEN"
	LocationPlatformDoab             LocationPlatform = "DOAB"
	LocationPlatformJstor            LocationPlatform = "JSTOR"
	LocationPlatformEbscoHost        LocationPlatform = "EBSCO_HOST"
	LocationPlatformOclcKb           LocationPlatform = "OCLC_KB"
	LocationPlatformProquestKb       LocationPlatform = "PROQUEST_KB"
	LocationPlatformProquestExlibris LocationPlatform = "PROQUEST_EXLIBRIS"
	LocationPlatformEbscoKb          LocationPlatform = "EBSCO_KB"
	LocationPlatformJiscKb           LocationPlatform = "JISC_KB"
	LocationPlatformOther            LocationPlatform = "OTHER"
)

// CurrencyCode is an ISO 4217 code, e.g. "USD".
type CurrencyCode string

const (
	CurrencyCodeUSD CurrencyCode = "USD"
	CurrencyCodeGBP CurrencyCode = "GBP"
	CurrencyCodeEUR CurrencyCode = "EUR"
)

// LanguageCode is an ISO 639-2/B code, e.g. "SPA".
type LanguageCode string

// Lower returns the lower case form used by ONIX.
func (c LanguageCode) Lower() string {
	return strings.ToLower(string(c))
}

type Language struct {
	LanguageCode     LanguageCode     `json:"languageCode"`
	LanguageRelation LanguageRelation `json:"languageRelation"`
	MainLanguage     bool             `json:"mainLanguage"`
}

// CountryCode is an ISO 3166-1 alpha-3 code, e.g. "MDA".
type CountryCode string

// NormalizeEnum converts a database enum label ("postponed-indefinitely",
// "Project MUSE", "usd") into its API form ("POSTPONED_INDEFINITELY",
// "PROJECT_MUSE", "USD").
func NormalizeEnum(label string) string {
	r := strings.NewReplacer("-", "_", " ", "_")
	return strings.ToUpper(r.Replace(strings.TrimSpace(label)))
}
