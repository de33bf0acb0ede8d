package csvexport

import (
	"strconv"
	"strings"

	"thothexport/internal/work"
)

// Cell joins already rendered items into a bracketed list. No items give an
// empty cell, never "[]".
func Cell(items []string) string {
	if len(items) == 0 {
		return ""
	}
	return "[" + strings.Join(items, ",") + "]"
}

// cells renders each item with f and joins them with Cell.
func cells[T any](items []T, f func(T) string) string {
	rendered := make([]string, 0, len(items))
	for _, it := range items {
		rendered = append(rendered, f(it))
	}
	return Cell(rendered)
}

// tuple renders quoted fields followed by raw (already rendered) fields:
// ("a", "b", raw1, raw2).
func tuple(quoted []string, raw ...string) string {
	parts := make([]string, 0, len(quoted)+len(raw))
	for _, q := range quoted {
		parts = append(parts, `"`+q+`"`)
	}
	parts = append(parts, raw...)
	return "(" + strings.Join(parts, ", ") + ")"
}

func orEmpty[T ~string](v *T) string {
	if v == nil {
		return ""
	}
	return string(*v)
}

func contributionCell(c work.Contribution) string {
	orcid := ""
	if c.Contributor.Orcid != nil {
		orcid = c.Contributor.Orcid.String()
	}
	return tuple(
		[]string{string(c.ContributionType), orEmpty(c.FirstName), c.LastName, c.FullName, orcid},
		cells(c.Affiliations, affiliationCell),
	)
}

func affiliationCell(a work.Affiliation) string {
	return tuple([]string{orEmpty(a.Position), strconv.Itoa(a.AffiliationOrdinal), a.Institution.InstitutionName})
}

func publicationCell(p work.Publication) string {
	return tuple(
		[]string{string(p.PublicationType), orEmpty(p.Isbn)},
		cells(p.Prices, priceCell),
		cells(p.Locations, locationCell),
	)
}

func priceCell(p work.Price) string {
	return tuple([]string{string(p.CurrencyCode), formatDecimal(p.UnitPrice)})
}

func locationCell(l work.Location) string {
	return tuple([]string{
		orEmpty(l.LandingPage),
		orEmpty(l.FullTextURL),
		string(l.LocationPlatform),
		strconv.FormatBool(l.Canonical),
	})
}

func issueCell(i work.Issue) string {
	s := i.Series
	return tuple([]string{
		string(s.SeriesType),
		s.SeriesName,
		s.IssnPrint,
		s.IssnDigital,
		orEmpty(s.SeriesURL),
		strconv.Itoa(i.IssueOrdinal),
	})
}

func languageCell(l work.Language) string {
	return tuple([]string{
		string(l.LanguageRelation),
		string(l.LanguageCode),
		strconv.FormatBool(l.MainLanguage),
	})
}

func subjectCell(s work.Subject) string {
	return strconv.Quote(s.SubjectCode)
}

func fundingCell(f work.Funding) string {
	inst := f.Institution
	doi, ror := "", ""
	if inst.InstitutionDoi != nil {
		doi = inst.InstitutionDoi.String()
	}
	if inst.Ror != nil {
		ror = inst.Ror.String()
	}
	return tuple([]string{
		inst.InstitutionName,
		doi,
		ror,
		orEmpty(inst.CountryCode),
		orEmpty(f.Program),
		orEmpty(f.ProjectName),
		orEmpty(f.GrantNumber),
		orEmpty(f.Jurisdiction),
	})
}

// formatDecimal renders the shortest representation that round-trips: 25.95, 7.
func formatDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatMeasure always keeps a fractional part: 156.0, 6.14.
func formatMeasure(v float64) string {
	s := formatDecimal(v)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
