package csvexport

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thothexport/internal/exporterr"
	"thothexport/internal/testutil"
	"thothexport/internal/work"
)

const testWorkCSV = `"publisher","imprint","work_type","work_status","title","subtitle","edition","doi","publication_date","publication_place","license","copyright_holder","landing_page","width (mm)","width (cm)","width (in)","height (mm)","height (cm)","height (in)","page_count","page_breakdown","image_count","table_count","audio_count","video_count","lccn","oclc","short_abstract","long_abstract","general_note","toc","cover_url","cover_caption","contributions [(type, first_name, last_name, full_name, orcid, [(position, ordinal, institution)])]","publications [(type, isbn, [(ISO_4217_currency, price)], [(landing_page, full_text, platform, is_canonical)])]","series [(type, name, issn_print, issn_digital, url, issue)]","languages [(relation, ISO_639-3/B_language, is_main)]","BIC [code]","THEMA [code]","BISAC [code]","LCC [code]","custom_categories [category]","keywords [keyword]","funding [(institution, institution_doi, ror, country, program, project, grant, jurisdiction)]"
"OA Editions","OA Editions Imprint","MONOGRAPH","ACTIVE","Book Title","Book Subtitle","1","10.00001/BOOK.0001","1999-12-31","León, Spain","http://creativecommons.org/licenses/by/4.0/","Author 1; Author 2","https://www.book.com","156.0","15.6","6.14","234.0","23.4","9.21","334","x+334","15","20","25","30","123456789","987654321","Lorem ipsum dolor sit amet, consectetur adipiscing elit. Vestibulum vel libero eleifend, ultrices purus vitae, suscipit ligula. Aliquam ornare quam et nulla vestibulum, id euismod tellus malesuada. Orci varius natoque penatibus et magnis dis parturient montes, nascetur ridiculus mus.","Lorem ipsum dolor sit amet, consectetur adipiscing elit. Vestibulum vel libero eleifend, ultrices purus vitae, suscipit ligula. Aliquam ornare quam et nulla vestibulum, id euismod tellus malesuada. Orci varius natoque penatibus et magnis dis parturient montes, nascetur ridiculus mus. Nullam ornare bibendum ex nec dapibus. Proin porta risus elementum odio feugiat tempus. Etiam eu felis ac metus viverra ornare. In consectetur neque sed feugiat ornare. Mauris at purus fringilla orci tincidunt pulvinar sed a massa. Nullam vestibulum posuere augue, sit amet tincidunt nisl pulvinar ac.","This is a general note","1. Chapter 1","https://www.book.com/cover","This is a cover caption","[(""AUTHOR"", ""Author"", ""1"", ""Author 1"", ""0000-0002-0000-0001"", [(""Manager"", ""1"", ""University of Life"")]),(""AUTHOR"", ""Author"", ""2"", ""Author 2"", """", )]","[(""PAPERBACK"", ""978-3-16-148410-0"", [(""EUR"", ""25.95""),(""GBP"", ""22.95""),(""USD"", ""31.95"")], [(""https://www.book.com/paperback"", """", ""OTHER"", ""true""),(""https://www.jstor.com/paperback"", """", ""JSTOR"", ""false"")]),(""HARDBACK"", ""978-1-4028-9462-6"", [(""EUR"", ""36.95""),(""GBP"", ""32.95""),(""USD"", ""40.95"")], ),(""PDF"", ""978-1-56619-909-4"", , [(""https://www.book.com/pdf_landing"", ""https://www.book.com/pdf_fulltext"", ""OTHER"", ""true"")]),(""HTML"", """", , [(""https://www.book.com/html_landing"", ""https://www.book.com/html_fulltext"", ""OTHER"", ""true"")]),(""XML"", ""978-92-95055-02-5"", , )]","[(""JOURNAL"", ""Name of series"", ""1234-5678"", ""8765-4321"", ""https://www.series.com"", ""1"")]","[(""ORIGINAL"", ""SPA"", ""true"")]","[""AAA"",""AAB""]","[""JWA""]","[""AAA000000"",""AAA000001""]","[""JA85""]","[""Category1""]","[""keyword1"",""keyword2""]","[(""Name of institution"", ""10.00001/INSTITUTION.0001"", ""0aaaaaa00"", ""MDA"", ""Name of program"", ""Name of project"", ""Number of grant"", ""Funding jurisdiction"")]"
`

func TestThothGenerate(t *testing.T) {
	out, err := NewThoth().Generate([]work.Work{testutil.TestWork()})
	require.NoError(t, err)
	assert.Equal(t, testWorkCSV, string(out))
}

func TestThothGenerateHeaderOnly(t *testing.T) {
	out, err := NewThoth().Generate(nil)
	require.NoError(t, err)

	lines := splitLines(string(out))
	require.Len(t, lines, 1)
	assert.Equal(t, splitLines(testWorkCSV)[0], lines[0])
	assert.Len(t, Header, 44)
}

func TestThothGenerateOneRowPerWork(t *testing.T) {
	second := testutil.TestWork()
	second.Title = "Second Title"

	out, err := NewThoth().Generate([]work.Work{testutil.TestWork(), second})
	require.NoError(t, err)

	lines := splitLines(string(out))
	require.Len(t, lines, 3)
	assert.Contains(t, lines[2], `"Second Title"`)
}

func TestRowOmitsMissingValues(t *testing.T) {
	wk := testutil.TestWork()
	wk.Subtitle = nil
	wk.Doi = nil
	wk.PublicationDate = nil
	wk.WidthMm = nil
	wk.PageCount = nil
	wk.Contributions = nil
	wk.Fundings = nil
	wk.Subjects = nil

	row := Row(wk)
	require.Len(t, row, len(Header))
	assert.Equal(t, "", row[5])
	assert.Equal(t, "", row[7])
	assert.Equal(t, "", row[8])
	assert.Equal(t, "", row[13])
	assert.Equal(t, "", row[19])
	assert.Equal(t, "", row[33])
	for i := 37; i < len(row); i++ {
		assert.Equal(t, "", row[i], Header[i])
	}
}

func TestCell(t *testing.T) {
	assert.Equal(t, "", Cell(nil))
	assert.Equal(t, "", Cell([]string{}))
	assert.Equal(t, "[String1]", Cell([]string{"String1"}))
	assert.Equal(t, "[String1,String2]", Cell([]string{"String1", "String2"}))
}

func TestPublicationCell(t *testing.T) {
	tests := []struct {
		name string
		pub  work.Publication
		want string
	}{
		{
			name: "empty lists",
			pub:  work.Publication{PublicationType: work.PublicationTypeHardback},
			want: `("HARDBACK", "", , )`,
		},
		{
			name: "prices and locations",
			pub: work.Publication{
				PublicationType: work.PublicationTypePaperback,
				Isbn:            testutil.Ptr(work.Isbn("978-3-16-148410-0")),
				Prices:          []work.Price{{CurrencyCode: work.CurrencyCodeEUR, UnitPrice: 25.95}},
				Locations: []work.Location{{
					LandingPage:      testutil.Ptr("landing"),
					FullTextURL:      testutil.Ptr("fulltext"),
					LocationPlatform: work.LocationPlatformOther,
					Canonical:        true,
				}},
			},
			want: `("PAPERBACK", "978-3-16-148410-0", [("EUR", "25.95")], [("landing", "fulltext", "OTHER", "true")])`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, publicationCell(tt.pub))
		})
	}
}

func TestContributionCell(t *testing.T) {
	c := work.Contribution{
		ContributionType: work.ContributionTypeEditor,
		LastName:         "Doe",
		FullName:         "Jane Doe",
	}
	assert.Equal(t, `("EDITOR", "", "Doe", "Jane Doe", "", )`, contributionCell(c))
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "156.0", formatMeasure(156))
	assert.Equal(t, "6.14", formatMeasure(6.14))
	assert.Equal(t, "25.95", formatDecimal(25.95))
	assert.Equal(t, "7", formatDecimal(7))
	assert.Equal(t, `"AAB"`, subjectCell(work.Subject{SubjectCode: "AAB"}))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriterQuotesEveryField(t *testing.T) {
	var sb strings.Builder
	w := NewWriter(&sb)
	require.NoError(t, w.Write([]string{"plain", `say "hi"`, ""}))
	require.NoError(t, w.Flush())
	assert.Equal(t, "\"plain\",\"say \"\"hi\"\"\",\"\"\n", sb.String())
}

func TestWriterWrapsIOErrors(t *testing.T) {
	w := NewWriter(failingWriter{})
	require.NoError(t, w.Write([]string{"a"}))
	err := w.Flush()
	assert.ErrorIs(t, err, exporterr.ErrInternal)
}

func splitLines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
