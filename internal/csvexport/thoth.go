package csvexport

import (
	"bytes"
	"slices"
	"strconv"

	"thothexport/internal/work"
)

// Specification is the only CSV dialect.
const Specification = "csv::thoth"

// Header lists the Thoth CSV columns in output order.
var Header = []string{
	"publisher",
	"imprint",
	"work_type",
	"work_status",
	"title",
	"subtitle",
	"edition",
	"doi",
	"publication_date",
	"publication_place",
	"license",
	"copyright_holder",
	"landing_page",
	"width (mm)",
	"width (cm)",
	"width (in)",
	"height (mm)",
	"height (cm)",
	"height (in)",
	"page_count",
	"page_breakdown",
	"image_count",
	"table_count",
	"audio_count",
	"video_count",
	"lccn",
	"oclc",
	"short_abstract",
	"long_abstract",
	"general_note",
	"toc",
	"cover_url",
	"cover_caption",
	"contributions [(type, first_name, last_name, full_name, orcid, [(position, ordinal, institution)])]",
	"publications [(type, isbn, [(ISO_4217_currency, price)], [(landing_page, full_text, platform, is_canonical)])]",
	"series [(type, name, issn_print, issn_digital, url, issue)]",
	"languages [(relation, ISO_639-3/B_language, is_main)]",
	"BIC [code]",
	"THEMA [code]",
	"BISAC [code]",
	"LCC [code]",
	"custom_categories [category]",
	"keywords [keyword]",
	"funding [(institution, institution_doi, ror, country, program, project, grant, jurisdiction)]",
}

// Thoth generates the full Thoth CSV: a header and one row per work.
type Thoth struct{}

func NewThoth() *Thoth {
	return &Thoth{}
}

func (Thoth) Specification() string {
	return Specification
}

func (Thoth) Generate(works []work.Work) ([]byte, error) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.Write(Header); err != nil {
		return nil, err
	}
	for _, wk := range works {
		if err := w.Write(Row(wk)); err != nil {
			return nil, err
		}
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Row renders one work in Header order. Subjects are grouped by scheme and
// ordered by subject ordinal within each group.
func Row(wk work.Work) []string {
	subjects := slices.Clone(wk.Subjects)
	slices.SortStableFunc(subjects, func(a, b work.Subject) int {
		return a.SubjectOrdinal - b.SubjectOrdinal
	})
	bySubjectType := func(t work.SubjectType) string {
		var matching []work.Subject
		for _, s := range subjects {
			if s.SubjectType == t {
				matching = append(matching, s)
			}
		}
		return cells(matching, subjectCell)
	}

	doi, date := "", ""
	if wk.Doi != nil {
		doi = wk.Doi.String()
	}
	if wk.PublicationDate != nil {
		date = wk.PublicationDate.String()
	}

	return []string{
		wk.Imprint.Publisher.PublisherName,
		wk.Imprint.ImprintName,
		string(wk.WorkType),
		string(wk.WorkStatus),
		wk.Title,
		orEmpty(wk.Subtitle),
		strconv.Itoa(wk.Edition),
		doi,
		date,
		orEmpty(wk.Place),
		orEmpty(wk.License),
		wk.CopyrightHolder,
		orEmpty(wk.LandingPage),
		measure(wk.WidthMm),
		measure(wk.WidthCm),
		measure(wk.WidthIn),
		measure(wk.HeightMm),
		measure(wk.HeightCm),
		measure(wk.HeightIn),
		count(wk.PageCount),
		orEmpty(wk.PageBreakdown),
		count(wk.ImageCount),
		count(wk.TableCount),
		count(wk.AudioCount),
		count(wk.VideoCount),
		orEmpty(wk.Lccn),
		orEmpty(wk.Oclc),
		orEmpty(wk.ShortAbstract),
		orEmpty(wk.LongAbstract),
		orEmpty(wk.GeneralNote),
		orEmpty(wk.Toc),
		orEmpty(wk.CoverURL),
		orEmpty(wk.CoverCaption),
		cells(wk.Contributions, contributionCell),
		cells(wk.Publications, publicationCell),
		cells(wk.Issues, issueCell),
		cells(wk.Languages, languageCell),
		bySubjectType(work.SubjectTypeBIC),
		bySubjectType(work.SubjectTypeThema),
		bySubjectType(work.SubjectTypeBISAC),
		bySubjectType(work.SubjectTypeLCC),
		bySubjectType(work.SubjectTypeCustom),
		bySubjectType(work.SubjectTypeKeyword),
		cells(wk.Fundings, fundingCell),
	}
}

func measure(v *float64) string {
	if v == nil {
		return ""
	}
	return formatMeasure(*v)
}

func count(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
