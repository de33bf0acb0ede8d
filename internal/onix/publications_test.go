package onix

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"thothexport/internal/testutil"
	"thothexport/internal/work"
)

func pub(t work.PublicationType, isbn string) work.Publication {
	p := work.Publication{PublicationType: t}
	if isbn != "" {
		p.Isbn = testutil.Ptr(work.Isbn(isbn))
	}
	return p
}

func TestSelectISBNs(t *testing.T) {
	tests := []struct {
		name      string
		pubs      []work.Publication
		wantMain  string
		wantISBNs []string
	}{
		{
			name: "pdf wins over earlier paperback",
			pubs: []work.Publication{
				pub(work.PublicationTypePaperback, "978-3-16-148410-0"),
				pub(work.PublicationTypePDF, "978-1-56619-909-4"),
			},
			wantMain:  "9781566199094",
			wantISBNs: []string{"9783161484100", "9781566199094"},
		},
		{
			name: "pdf wins over later paperback",
			pubs: []work.Publication{
				pub(work.PublicationTypePDF, "978-1-56619-909-4"),
				pub(work.PublicationTypePaperback, "978-3-16-148410-0"),
			},
			wantMain:  "9781566199094",
			wantISBNs: []string{"9781566199094", "9783161484100"},
		},
		{
			name: "paperback only",
			pubs: []work.Publication{
				pub(work.PublicationTypeHardback, "978-1-4028-9462-6"),
				pub(work.PublicationTypePaperback, "978-3-16-148410-0"),
			},
			wantMain:  "9783161484100",
			wantISBNs: []string{"9781402894626", "9783161484100"},
		},
		{
			name: "neither pdf nor paperback",
			pubs: []work.Publication{
				pub(work.PublicationTypeHardback, "978-1-4028-9462-6"),
				pub(work.PublicationTypeHTML, ""),
			},
			wantMain:  "",
			wantISBNs: []string{"9781402894626"},
		},
		{
			name:     "no publications",
			wantMain: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			main, isbns := SelectISBNs(tt.pubs)
			assert.Equal(t, tt.wantMain, main)
			assert.Equal(t, tt.wantISBNs, isbns)
		})
	}
}

func TestBundlePrice(t *testing.T) {
	priced := func(t work.PublicationType, usd float64) work.Publication {
		return work.Publication{
			PublicationType: t,
			Prices:          []work.Price{{CurrencyCode: work.CurrencyCodeUSD, UnitPrice: usd}},
		}
	}
	tests := []struct {
		name string
		pubs []work.Publication
		want float64
	}{
		{name: "no prices", want: 0.01},
		{name: "zero prices", pubs: []work.Publication{priced(work.PublicationTypePDF, 0), priced(work.PublicationTypeEPUB, 0)}, want: 0.01},
		{name: "pdf only", pubs: []work.Publication{priced(work.PublicationTypePDF, 7.99)}, want: 7.99},
		{name: "higher epub", pubs: []work.Publication{priced(work.PublicationTypePDF, 7.99), priced(work.PublicationTypeEPUB, 9.5)}, want: 9.5},
		{name: "other formats ignored", pubs: []work.Publication{priced(work.PublicationTypePaperback, 31.95)}, want: 0.01},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BundlePrice(work.Work{Publications: tt.pubs}))
		})
	}
}

func TestWebsitesDeduplicateByLink(t *testing.T) {
	var ws websites
	ws = ws.add("29", downloadDescription, "https://www.book.com/download")
	ws = ws.add("29", downloadDescription, "https://www.book.com/epub")
	ws = ws.add("01", webShopDescription, "https://www.book.com/download")

	assert.Equal(t, websites{
		{role: "01", description: webShopDescription, link: "https://www.book.com/download"},
		{role: "29", description: downloadDescription, link: "https://www.book.com/epub"},
	}, ws)
}

func TestFormatDecimal(t *testing.T) {
	assert.Equal(t, "7.99", formatDecimal(7.99))
	assert.Equal(t, "0.01", formatDecimal(0.01))
	assert.Equal(t, "25", formatDecimal(25))
}
