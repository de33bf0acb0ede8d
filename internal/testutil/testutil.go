package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/google/uuid"

	"thothexport/internal/work"
)

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

const (
	TestWorkID      = "00000000-0000-0000-aaaa-000000000001"
	TestPublisherID = "00000000-0000-0000-9999-000000000001"
)

const shortAbstract = "Lorem ipsum dolor sit amet, consectetur adipiscing elit. Vestibulum vel libero eleifend, ultrices purus vitae, suscipit ligula. Aliquam ornare quam et nulla vestibulum, id euismod tellus malesuada. Orci varius natoque penatibus et magnis dis parturient montes, nascetur ridiculus mus."

const longAbstract = shortAbstract + " Nullam ornare bibendum ex nec dapibus. Proin porta risus elementum odio feugiat tempus. Etiam eu felis ac metus viverra ornare. In consectetur neque sed feugiat ornare. Mauris at purus fringilla orci tincidunt pulvinar sed a massa. Nullam vestibulum posuere augue, sit amet tincidunt nisl pulvinar ac."

// TestWork returns a fully populated monograph. Every call builds a fresh
// value so tests can modify it freely.
func TestWork() work.Work {
	return work.Work{
		WorkID:          uuid.MustParse(TestWorkID),
		WorkType:        work.WorkTypeMonograph,
		WorkStatus:      work.WorkStatusActive,
		FullTitle:       "Book Title: Book Subtitle",
		Title:           "Book Title",
		Subtitle:        Ptr("Book Subtitle"),
		Edition:         1,
		Doi:             Ptr(work.Doi("https://doi.org/10.00001/BOOK.0001")),
		PublicationDate: Ptr(work.NewDate(1999, 12, 31)),
		Place:           Ptr("León, Spain"),
		WidthMm:         Ptr(156.0),
		WidthCm:         Ptr(15.6),
		WidthIn:         Ptr(6.14),
		HeightMm:        Ptr(234.0),
		HeightCm:        Ptr(23.4),
		HeightIn:        Ptr(9.21),
		PageCount:       Ptr(334),
		PageBreakdown:   Ptr("x+334"),
		ImageCount:      Ptr(15),
		TableCount:      Ptr(20),
		AudioCount:      Ptr(25),
		VideoCount:      Ptr(30),
		License:         Ptr("http://creativecommons.org/licenses/by/4.0/"),
		CopyrightHolder: "Author 1; Author 2",
		LandingPage:     Ptr("https://www.book.com"),
		Lccn:            Ptr("123456789"),
		Oclc:            Ptr("987654321"),
		ShortAbstract:   Ptr(shortAbstract),
		LongAbstract:    Ptr(longAbstract),
		GeneralNote:     Ptr("This is a general note"),
		Toc:             Ptr("1. Chapter 1"),
		CoverURL:        Ptr("https://www.book.com/cover"),
		CoverCaption:    Ptr("This is a cover caption"),
		Imprint: work.Imprint{
			ImprintName: "OA Editions Imprint",
			Publisher:   work.Publisher{PublisherName: "OA Editions"},
		},
		Issues: []work.Issue{{
			IssueOrdinal: 1,
			Series: work.Series{
				SeriesType:  work.SeriesTypeJournal,
				SeriesName:  "Name of series",
				IssnPrint:   "1234-5678",
				IssnDigital: "8765-4321",
				SeriesURL:   Ptr("https://www.series.com"),
			},
		}},
		Contributions: []work.Contribution{
			{
				ContributionType:    work.ContributionTypeAuthor,
				FirstName:           Ptr("Author"),
				LastName:            "1",
				FullName:            "Author 1",
				MainContribution:    true,
				ContributionOrdinal: 1,
				Contributor:         work.Contributor{Orcid: Ptr(work.Orcid("https://orcid.org/0000-0002-0000-0001"))},
				Affiliations: []work.Affiliation{{
					Position:           Ptr("Manager"),
					AffiliationOrdinal: 1,
					Institution:        work.Institution{InstitutionName: "University of Life"},
				}},
			},
			{
				ContributionType:    work.ContributionTypeAuthor,
				FirstName:           Ptr("Author"),
				LastName:            "2",
				FullName:            "Author 2",
				MainContribution:    true,
				ContributionOrdinal: 2,
			},
		},
		Languages: []work.Language{{
			LanguageCode:     "SPA",
			LanguageRelation: work.LanguageRelationOriginal,
			MainLanguage:     true,
		}},
		Publications: []work.Publication{
			{
				PublicationID:   uuid.MustParse("00000000-0000-0000-bbbb-000000000002"),
				PublicationType: work.PublicationTypePaperback,
				Isbn:            Ptr(work.Isbn("978-3-16-148410-0")),
				Prices: []work.Price{
					{CurrencyCode: work.CurrencyCodeEUR, UnitPrice: 25.95},
					{CurrencyCode: work.CurrencyCodeGBP, UnitPrice: 22.95},
					{CurrencyCode: work.CurrencyCodeUSD, UnitPrice: 31.95},
				},
				Locations: []work.Location{
					{
						LandingPage:      Ptr("https://www.book.com/paperback"),
						LocationPlatform: work.LocationPlatformOther,
						Canonical:        true,
					},
					{
						LandingPage:      Ptr("https://www.jstor.com/paperback"),
						LocationPlatform: work.LocationPlatformJstor,
					},
				},
			},
			{
				PublicationID:   uuid.MustParse("00000000-0000-0000-cccc-000000000003"),
				PublicationType: work.PublicationTypeHardback,
				Isbn:            Ptr(work.Isbn("978-1-4028-9462-6")),
				Prices: []work.Price{
					{CurrencyCode: work.CurrencyCodeEUR, UnitPrice: 36.95},
					{CurrencyCode: work.CurrencyCodeGBP, UnitPrice: 32.95},
					{CurrencyCode: work.CurrencyCodeUSD, UnitPrice: 40.95},
				},
			},
			{
				PublicationID:   uuid.MustParse("00000000-0000-0000-dddd-000000000004"),
				PublicationType: work.PublicationTypePDF,
				Isbn:            Ptr(work.Isbn("978-1-56619-909-4")),
				Locations: []work.Location{{
					LandingPage:      Ptr("https://www.book.com/pdf_landing"),
					FullTextURL:      Ptr("https://www.book.com/pdf_fulltext"),
					LocationPlatform: work.LocationPlatformOther,
					Canonical:        true,
				}},
			},
			{
				PublicationID:   uuid.MustParse("00000000-0000-0000-eeee-000000000005"),
				PublicationType: work.PublicationTypeHTML,
				Locations: []work.Location{{
					LandingPage:      Ptr("https://www.book.com/html_landing"),
					FullTextURL:      Ptr("https://www.book.com/html_fulltext"),
					LocationPlatform: work.LocationPlatformOther,
					Canonical:        true,
				}},
			},
			{
				PublicationID:   uuid.MustParse("00000000-0000-0000-ffff-000000000006"),
				PublicationType: work.PublicationTypeXML,
				Isbn:            Ptr(work.Isbn("978-92-95055-02-5")),
			},
		},
		Subjects: []work.Subject{
			{SubjectCode: "AAB", SubjectType: work.SubjectTypeBIC, SubjectOrdinal: 2},
			{SubjectCode: "AAA", SubjectType: work.SubjectTypeBIC, SubjectOrdinal: 1},
			{SubjectCode: "AAA000001", SubjectType: work.SubjectTypeBISAC, SubjectOrdinal: 2},
			{SubjectCode: "AAA000000", SubjectType: work.SubjectTypeBISAC, SubjectOrdinal: 1},
			{SubjectCode: "Category1", SubjectType: work.SubjectTypeCustom, SubjectOrdinal: 1},
			{SubjectCode: "keyword2", SubjectType: work.SubjectTypeKeyword, SubjectOrdinal: 2},
			{SubjectCode: "keyword1", SubjectType: work.SubjectTypeKeyword, SubjectOrdinal: 1},
			{SubjectCode: "JA85", SubjectType: work.SubjectTypeLCC, SubjectOrdinal: 1},
			{SubjectCode: "JWA", SubjectType: work.SubjectTypeThema, SubjectOrdinal: 1},
		},
		Fundings: []work.Funding{{
			Program:      Ptr("Name of program"),
			ProjectName:  Ptr("Name of project"),
			GrantNumber:  Ptr("Number of grant"),
			Jurisdiction: Ptr("Funding jurisdiction"),
			Institution: work.Institution{
				InstitutionName: "Name of institution",
				InstitutionDoi:  Ptr(work.Doi("https://doi.org/10.00001/INSTITUTION.0001")),
				Ror:             Ptr(work.Ror("https://ror.org/0aaaaaa00")),
				CountryCode:     Ptr(work.CountryCode("MDA")),
			},
		}},
	}
}

// RecordResponse is a decoded JSON response.
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]interface{}
}

// RecordHTTPResponse decodes the recorded JSON response.
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var bodyMap map[string]interface{}
	if len(bodyBytes) > 0 {
		json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&bodyMap)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyMap,
	}
}

// ErrorCode returns error.code from an error envelope, or "".
func (r RecordResponse) ErrorCode() string {
	errBody, ok := r.Body["error"].(map[string]interface{})
	if !ok {
		return ""
	}
	code, _ := errBody["code"].(string)
	return code
}
