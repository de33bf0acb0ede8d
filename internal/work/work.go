package work

import (
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a work or publisher is not found.
var ErrNotFound = errors.New("work not found")

// Work is the read-only aggregate describing one title and everything
// nested under it. JSON field names match the Thoth GraphQL API.
type Work struct {
	WorkID          uuid.UUID  `json:"workId"`
	WorkType        WorkType   `json:"workType"`
	WorkStatus      WorkStatus `json:"workStatus"`
	FullTitle       string     `json:"fullTitle"`
	Title           string     `json:"title"`
	Subtitle        *string    `json:"subtitle"`
	Edition         int        `json:"edition"`
	Doi             *Doi       `json:"doi"`
	PublicationDate *Date      `json:"publicationDate"`
	Place           *string    `json:"place"`
	WidthMm         *float64   `json:"widthMm"`
	WidthCm         *float64   `json:"widthCm"`
	WidthIn         *float64   `json:"widthIn"`
	HeightMm        *float64   `json:"heightMm"`
	HeightCm        *float64   `json:"heightCm"`
	HeightIn        *float64   `json:"heightIn"`
	PageCount       *int       `json:"pageCount"`
	PageBreakdown   *string    `json:"pageBreakdown"`
	ImageCount      *int       `json:"imageCount"`
	TableCount      *int       `json:"tableCount"`
	AudioCount      *int       `json:"audioCount"`
	VideoCount      *int       `json:"videoCount"`
	License         *string    `json:"license"`
	CopyrightHolder string     `json:"copyrightHolder"`
	LandingPage     *string    `json:"landingPage"`
	Lccn            *string    `json:"lccn"`
	Oclc            *string    `json:"oclc"`
	ShortAbstract   *string    `json:"shortAbstract"`
	LongAbstract    *string    `json:"longAbstract"`
	GeneralNote     *string    `json:"generalNote"`
	Toc             *string    `json:"toc"`
	CoverURL        *string    `json:"coverUrl"`
	CoverCaption    *string    `json:"coverCaption"`

	Imprint       Imprint        `json:"imprint"`
	Publications  []Publication  `json:"publications"`
	Contributions []Contribution `json:"contributions"`
	Languages     []Language     `json:"languages"`
	Issues        []Issue        `json:"issues"`
	Subjects      []Subject      `json:"subjects"`
	Fundings      []Funding      `json:"fundings"`
}

type Imprint struct {
	ImprintName string    `json:"imprintName"`
	Publisher   Publisher `json:"publisher"`
}

type Publisher struct {
	PublisherName string  `json:"publisherName"`
	PublisherURL  *string `json:"publisherUrl"`
}

type Publication struct {
	PublicationID   uuid.UUID       `json:"publicationId"`
	PublicationType PublicationType `json:"publicationType"`
	Isbn            *Isbn           `json:"isbn"`
	Prices          []Price         `json:"prices"`
	Locations       []Location      `json:"locations"`
}

type Price struct {
	CurrencyCode CurrencyCode `json:"currencyCode"`
	UnitPrice    float64      `json:"unitPrice"`
}

type Location struct {
	LandingPage      *string          `json:"landingPage"`
	FullTextURL      *string          `json:"fullTextUrl"`
	LocationPlatform LocationPlatform `json:"locationPlatform"`
	Canonical        bool             `json:"canonical"`
}

type Contribution struct {
	ContributionType    ContributionType `json:"contributionType"`
	FirstName           *string          `json:"firstName"`
	LastName            string           `json:"lastName"`
	FullName            string           `json:"fullName"`
	MainContribution    bool             `json:"mainContribution"`
	ContributionOrdinal int              `json:"contributionOrdinal"`
	Contributor         Contributor      `json:"contributor"`
	Affiliations        []Affiliation    `json:"affiliations"`
}

type Contributor struct {
	Orcid *Orcid `json:"orcid"`
}

type Affiliation struct {
	Position           *string     `json:"position"`
	AffiliationOrdinal int         `json:"affiliationOrdinal"`
	Institution        Institution `json:"institution"`
}

// Institution is shared by affiliations and fundings. Affiliations only
// carry the name.
type Institution struct {
	InstitutionName string       `json:"institutionName"`
	InstitutionDoi  *Doi         `json:"institutionDoi"`
	Ror             *Ror         `json:"ror"`
	CountryCode     *CountryCode `json:"countryCode"`
}

type Issue struct {
	IssueOrdinal int    `json:"issueOrdinal"`
	Series       Series `json:"series"`
}

type Series struct {
	SeriesType  SeriesType `json:"seriesType"`
	SeriesName  string     `json:"seriesName"`
	IssnPrint   string     `json:"issnPrint"`
	IssnDigital string     `json:"issnDigital"`
	SeriesURL   *string    `json:"seriesUrl"`
}

type Subject struct {
	SubjectCode    string      `json:"subjectCode"`
	SubjectType    SubjectType `json:"subjectType"`
	SubjectOrdinal int         `json:"subjectOrdinal"`
}

type Funding struct {
	Program          *string     `json:"program"`
	ProjectName      *string     `json:"projectName"`
	ProjectShortname *string     `json:"projectShortname"`
	GrantNumber      *string     `json:"grantNumber"`
	Jurisdiction     *string     `json:"jurisdiction"`
	Institution      Institution `json:"institution"`
}

// CanonicalFullTextURL returns the full-text URL of the publication's
// canonical location, if it has one.
func (p Publication) CanonicalFullTextURL() (string, bool) {
	for _, l := range p.Locations {
		if l.Canonical {
			if l.FullTextURL == nil {
				return "", false
			}
			return *l.FullTextURL, true
		}
	}
	return "", false
}

// PriceIn returns the unit price in the given currency.
func (p Publication) PriceIn(currency CurrencyCode) (float64, bool) {
	for _, pr := range p.Prices {
		if pr.CurrencyCode == currency {
			return pr.UnitPrice, true
		}
	}
	return 0, false
}

// FirstPublication returns the first publication of the given type.
func (w Work) FirstPublication(t PublicationType) (Publication, bool) {
	for _, p := range w.Publications {
		if p.PublicationType == t {
			return p, true
		}
	}
	return Publication{}, false
}
