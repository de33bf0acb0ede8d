package onix

import (
	"slices"
	"strconv"
	"time"

	"thothexport/internal/exporterr"
	"thothexport/internal/work"
)

const onix3Namespace = "http://ns.editeur.org/onix/3.0/reference"

// ProjectMuse generates ONIX 3.0 records for Project MUSE. Every work is
// sold as an unpriced PDF download.
type ProjectMuse struct {
	now func() time.Time
}

func NewProjectMuse() *ProjectMuse {
	return &ProjectMuse{now: time.Now}
}

func (g *ProjectMuse) Specification() Specification {
	return SpecProjectMuse
}

// Generate returns one message with a Product per work. The sender is the
// publisher of the first work.
func (g *ProjectMuse) Generate(works []work.Work) ([]byte, error) {
	if len(works) == 0 {
		return nil, exporterr.Incomplete(string(SpecProjectMuse), "Not enough data")
	}
	products := make([]museProduct, 0, len(works))
	for _, wk := range works {
		p, err := newMuseProduct(wk)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	sent := g.now().UTC().Format("20060102T150405")
	sender := works[0].Imprint.Publisher.PublisherName

	return render(func(w *Writer) error {
		attrs := map[string]string{"release": "3.0"}
		return w.FullBlock("ONIXMessage", onix3Namespace, attrs, func() error {
			err := w.Block("Header", func() error {
				err := w.Block("Sender", func() error {
					return w.Elements("SenderName", sender, "EmailAddress", thothEmail)
				})
				if err != nil {
					return err
				}
				return w.Element("SentDateTime", sent)
			})
			if err != nil {
				return err
			}
			for _, p := range products {
				if err := p.write(w); err != nil {
					return err
				}
			}
			return nil
		})
	})
}

type museProduct struct {
	work     work.Work
	recordID string
	mainISBN string
	isbns    []string
	pdfURL   string
}

func newMuseProduct(wk work.Work) (museProduct, error) {
	pdfURL, ok := museDownloadURL(wk)
	if !ok {
		return museProduct{}, exporterr.Incomplete(string(SpecProjectMuse), "No PDF URL")
	}
	p := museProduct{work: wk, recordID: "urn:uuid:" + wk.WorkID.String(), pdfURL: pdfURL}
	p.mainISBN, p.isbns = SelectISBNs(wk.Publications)
	return p, nil
}

// museDownloadURL takes the download link of the last PDF publication that
// has one. Within a publication the canonical location wins, then the first
// location with a full-text URL.
func museDownloadURL(wk work.Work) (string, bool) {
	url, found := "", false
	for _, pub := range wk.Publications {
		if pub.PublicationType != work.PublicationTypePDF {
			continue
		}
		if u, ok := pdfLocationURL(pub); ok {
			url, found = u, true
		}
	}
	return url, found
}

func pdfLocationURL(pub work.Publication) (string, bool) {
	if u, ok := pub.CanonicalFullTextURL(); ok {
		return u, true
	}
	for _, l := range pub.Locations {
		if l.FullTextURL != nil {
			return *l.FullTextURL, true
		}
	}
	return "", false
}

func (p museProduct) write(w *Writer) error {
	wk := p.work
	return w.Block("Product", func() error {
		return seq(
			func() error {
				return w.Elements("RecordReference", p.recordID, "NotificationType", "03", "RecordSourceType", "01")
			},
			func() error { return productIdentifier(w, "01", p.recordID) },
			func() error { return productIdentifier(w, "15", p.mainISBN) },
			func() error {
				if wk.Doi == nil {
					return nil
				}
				return productIdentifier(w, "06", wk.Doi.String())
			},
			func() error { return p.writeDescriptiveDetail(w) },
			func() error { return p.writeCollateralDetail(w) },
			func() error { return p.writePublishingDetail(w) },
			func() error {
				if len(p.isbns) == 0 {
					return nil
				}
				return w.Block("RelatedMaterial", func() error {
					for _, isbn := range p.isbns {
						err := w.Block("RelatedProduct", func() error {
							// 06 Alternative format
							if err := w.Element("ProductRelationCode", "06"); err != nil {
								return err
							}
							return productIdentifier(w, "06", isbn)
						})
						if err != nil {
							return err
						}
					}
					return nil
				})
			},
			func() error { return p.writeProductSupply(w) },
		)
	})
}

func (p museProduct) writeDescriptiveDetail(w *Writer) error {
	wk := p.work
	return w.Block("DescriptiveDetail", func() error {
		return seq(
			func() error {
				return w.Elements(
					// 00 Single-component retail product
					"ProductComposition", "00",
					// EB Digital download and online
					"ProductForm", "EB",
					// E107 PDF
					"ProductFormDetail", "E107",
					// 10 Text (eye-readable)
					"PrimaryContentType", "10",
				)
			},
			func() error {
				if wk.License == nil {
					return nil
				}
				return w.Block("EpubLicense", func() error {
					if err := w.Element("EpubLicenseName", "Creative Commons License"); err != nil {
						return err
					}
					return w.Block("EpubLicenseExpression", func() error {
						return w.Elements("EpubLicenseExpressionType", "02", "EpubLicenseExpressionLink", *wk.License)
					})
				})
			},
			func() error {
				return w.Block("TitleDetail", func() error {
					if err := w.Element("TitleType", "01"); err != nil {
						return err
					}
					return w.Block("TitleElement", func() error {
						// 01 Product
						if wk.Subtitle != nil {
							return w.Elements("TitleElementLevel", "01", "TitleText", wk.Title, "Subtitle", *wk.Subtitle)
						}
						return w.Elements("TitleElementLevel", "01", "TitleText", wk.FullTitle)
					})
				})
			},
			func() error { return museContributors(w, wk.Contributions) },
			func() error { return writeLanguages(w, SpecProjectMuse, wk.Languages) },
			func() error { return writeExtent(w, wk.PageCount) },
			func() error {
				for _, s := range wk.Subjects {
					err := w.Block("Subject", func() error {
						return w.Elements(
							"SubjectSchemeIdentifier", SubjectTypeCode(SpecProjectMuse, s.SubjectType),
							"SubjectCode", s.SubjectCode,
						)
					})
					if err != nil {
						return err
					}
				}
				return nil
			},
		)
	})
}

func (p museProduct) writeCollateralDetail(w *Writer) error {
	wk := p.work
	if wk.LongAbstract == nil && wk.Toc == nil {
		return nil
	}
	return w.Block("CollateralDetail", func() error {
		if wk.LongAbstract != nil {
			err := w.Block("TextContent", func() error {
				// 03 Description, 00 Unrestricted
				if err := w.Elements("TextType", "03", "ContentAudience", "00"); err != nil {
					return err
				}
				return w.ElementWithAttrs("Text", map[string]string{"language": "eng"}, *wk.LongAbstract)
			})
			if err != nil {
				return err
			}
		}
		if wk.Toc != nil {
			return w.Block("TextContent", func() error {
				// 04 Table of contents
				return w.Elements("TextType", "04", "ContentAudience", "00", "Text", *wk.Toc)
			})
		}
		return nil
	})
}

func (p museProduct) writePublishingDetail(w *Writer) error {
	wk := p.work
	return w.Block("PublishingDetail", func() error {
		return seq(
			func() error {
				return w.Block("Imprint", func() error {
					return w.Element("ImprintName", wk.Imprint.ImprintName)
				})
			},
			func() error {
				return w.Block("Publisher", func() error {
					return w.Elements("PublishingRole", "01", "PublisherName", wk.Imprint.Publisher.PublisherName)
				})
			},
			func() error {
				if wk.Place == nil {
					return nil
				}
				return w.Element("CityOfPublication", *wk.Place)
			},
			func() error { return w.Element("PublishingStatus", WorkStatusCode(SpecProjectMuse, wk.WorkStatus)) },
			func() error {
				if wk.PublicationDate == nil {
					return nil
				}
				return w.Block("PublishingDate", func() error {
					// 19 Publication date of print counterpart
					if err := w.Element("PublishingDateRole", "19"); err != nil {
						return err
					}
					// dateformat 01 is YYYYMM
					return w.ElementWithAttrs("Date", map[string]string{"dateformat": "01"}, wk.PublicationDate.Format("200601"))
				})
			},
		)
	})
}

func (p museProduct) writeProductSupply(w *Writer) error {
	sites := websites{}.add("01", downloadDescription, p.pdfURL)
	if p.work.LandingPage != nil {
		sites = sites.add("01", webShopDescription, *p.work.LandingPage)
	}
	publisher := p.work.Imprint.Publisher.PublisherName
	return w.Block("ProductSupply", func() error {
		for _, site := range sites {
			err := w.Block("SupplyDetail", func() error {
				err := w.Block("Supplier", func() error {
					// 11 Non-exclusive distributor to end-customers
					if err := w.Elements("SupplierRole", "11", "SupplierName", publisher); err != nil {
						return err
					}
					return w.Block("Website", func() error {
						return w.Elements(
							"WebsiteRole", site.role,
							"WebsiteDescription", site.description,
							"WebsiteLink", site.link,
						)
					})
				})
				if err != nil {
					return err
				}
				// 99 Contact supplier, 04 Contact supplier
				return w.Elements("ProductAvailability", "99", "UnpricedItemType", "04")
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func museContributors(w *Writer, contributions []work.Contribution) error {
	ordered := slices.Clone(contributions)
	slices.SortStableFunc(ordered, func(a, b work.Contribution) int {
		return a.ContributionOrdinal - b.ContributionOrdinal
	})
	for i, c := range ordered {
		err := w.Block("Contributor", func() error {
			err := w.Elements(
				"SequenceNumber", strconv.Itoa(i+1),
				"ContributorRole", ContributionTypeCode(SpecProjectMuse, c.ContributionType),
			)
			if err != nil {
				return err
			}
			if c.Contributor.Orcid != nil {
				err := w.Block("NameIdentifier", func() error {
					// 21 ORCID
					return w.Elements("NameIDType", "21", "IDValue", c.Contributor.Orcid.String())
				})
				if err != nil {
					return err
				}
			}
			return writePersonName(w, c)
		})
		if err != nil {
			return err
		}
	}
	return nil
}
