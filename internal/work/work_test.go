package work

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestIdentifiersStripResolverPrefix(t *testing.T) {
	assert.Equal(t, "10.00001/BOOK.0001", Doi("https://doi.org/10.00001/BOOK.0001").String())
	assert.Equal(t, "0000-0002-0000-0001", Orcid("https://orcid.org/0000-0002-0000-0001").String())
	assert.Equal(t, "0aaaaaa00", Ror("https://ror.org/0aaaaaa00").String())
	assert.Equal(t, "10.00001/BARE", Doi("10.00001/BARE").String())
}

func TestIsbnCompact(t *testing.T) {
	isbn := Isbn("978-3-16-148410-0")
	assert.Equal(t, "978-3-16-148410-0", isbn.String())
	assert.Equal(t, "9783161484100", isbn.Compact())
}

func TestDateJSON(t *testing.T) {
	d := NewDate(1999, time.December, 31)
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"1999-12-31"`, string(b))

	var parsed Date
	require.NoError(t, json.Unmarshal(b, &parsed))
	assert.Equal(t, d, parsed)

	assert.Error(t, json.Unmarshal([]byte(`"31/12/1999"`), &parsed))
}

func TestWorkDecodesFromAPI(t *testing.T) {
	payload := `{
		"workId": "00000000-0000-0000-aaaa-000000000001",
		"workType": "MONOGRAPH",
		"workStatus": "ACTIVE",
		"fullTitle": "Book Title",
		"title": "Book Title",
		"subtitle": null,
		"edition": 1,
		"doi": "https://doi.org/10.00001/BOOK.0001",
		"publicationDate": "1999-12-31",
		"widthMm": 156.0,
		"imprint": {"imprintName": "Imprint", "publisher": {"publisherName": "Press", "publisherUrl": null}},
		"publications": [{"publicationId": "00000000-0000-0000-dddd-000000000004", "publicationType": "PDF", "isbn": "978-1-56619-909-4", "prices": [], "locations": []}],
		"languages": [{"languageCode": "SPA", "languageRelation": "ORIGINAL", "mainLanguage": true}]
	}`
	var w Work
	require.NoError(t, json.Unmarshal([]byte(payload), &w))

	assert.Equal(t, "00000000-0000-0000-aaaa-000000000001", w.WorkID.String())
	assert.Equal(t, WorkStatusActive, w.WorkStatus)
	assert.Nil(t, w.Subtitle)
	require.NotNil(t, w.PublicationDate)
	assert.Equal(t, "1999-12-31", w.PublicationDate.String())
	assert.Equal(t, "10.00001/BOOK.0001", w.Doi.String())
	assert.Equal(t, 156.0, *w.WidthMm)
	assert.Equal(t, PublicationTypePDF, w.Publications[0].PublicationType)
	assert.Equal(t, "spa", w.Languages[0].LanguageCode.Lower())
}

func TestCanonicalFullTextURL(t *testing.T) {
	tests := []struct {
		name    string
		loc     []Location
		want    string
		wantHas bool
	}{
		{name: "no locations"},
		{
			name: "canonical with full text",
			loc: []Location{
				{FullTextURL: strPtr("https://other")},
				{FullTextURL: strPtr("https://canonical"), Canonical: true},
			},
			want:    "https://canonical",
			wantHas: true,
		},
		{
			name: "canonical without full text",
			loc: []Location{
				{LandingPage: strPtr("https://landing"), Canonical: true},
				{FullTextURL: strPtr("https://other")},
			},
		},
		{
			name: "no canonical",
			loc:  []Location{{FullTextURL: strPtr("https://other")}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Publication{Locations: tt.loc}.CanonicalFullTextURL()
			assert.Equal(t, tt.wantHas, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPriceInAndFirstPublication(t *testing.T) {
	w := Work{Publications: []Publication{
		{PublicationType: PublicationTypePaperback},
		{PublicationType: PublicationTypePDF, Prices: []Price{{CurrencyCode: CurrencyCodeGBP, UnitPrice: 5}, {CurrencyCode: CurrencyCodeUSD, UnitPrice: 7.99}}},
		{PublicationType: PublicationTypePDF},
	}}

	pdf, ok := w.FirstPublication(PublicationTypePDF)
	require.True(t, ok)
	price, ok := pdf.PriceIn(CurrencyCodeUSD)
	assert.True(t, ok)
	assert.Equal(t, 7.99, price)

	_, ok = pdf.PriceIn(CurrencyCodeEUR)
	assert.False(t, ok)

	_, ok = w.FirstPublication(PublicationTypeEPUB)
	assert.False(t, ok)
}

func TestNormalizeEnum(t *testing.T) {
	tests := map[string]string{
		"postponed-indefinitely": "POSTPONED_INDEFINITELY",
		"Project MUSE":           "PROJECT_MUSE",
		"usd":                    "USD",
		" book-chapter ":         "BOOK_CHAPTER",
		"ACTIVE":                 "ACTIVE",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeEnum(in), in)
	}
}
