package onix

import (
	"strconv"

	"thothexport/internal/work"
)

// SelectISBNs returns the main product ISBN and every publication ISBN,
// hyphens stripped. A PDF ISBN always wins; a paperback ISBN is used only
// while the main ISBN is still unset. The main ISBN is empty when neither exists.
func SelectISBNs(pubs []work.Publication) (string, []string) {
	var (
		main  string
		isbns []string
	)
	for _, p := range pubs {
		if p.Isbn == nil {
			continue
		}
		isbn := p.Isbn.Compact()
		isbns = append(isbns, isbn)
		switch p.PublicationType {
		case work.PublicationTypePDF:
			main = isbn
		case work.PublicationTypePaperback:
			if main == "" {
				main = isbn
			}
		}
	}
	return main, isbns
}

// downloadURL returns the canonical full-text URL of the first publication
// of type t that has any locations.
func downloadURL(w work.Work, t work.PublicationType) (string, bool) {
	for _, p := range w.Publications {
		if p.PublicationType == t && len(p.Locations) > 0 {
			return p.CanonicalFullTextURL()
		}
	}
	return "", false
}

// usdPrice returns the USD price of the first publication of type t, or 0.
func usdPrice(w work.Work, t work.PublicationType) float64 {
	p, ok := w.FirstPublication(t)
	if !ok {
		return 0
	}
	price, _ := p.PriceIn(work.CurrencyCodeUSD)
	return price
}

// formatDecimal renders a price the shortest way that round-trips: 7.99, 0.01, 25.
func formatDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type website struct {
	role, description, link string
}

// websites keeps insertion order and replaces the entry for a link that is
// added twice.
type websites []website

func (ws websites) add(role, description, link string) websites {
	for i := range ws {
		if ws[i].link == link {
			ws[i].role, ws[i].description = role, description
			return ws
		}
	}
	return append(ws, website{role: role, description: description, link: link})
}
