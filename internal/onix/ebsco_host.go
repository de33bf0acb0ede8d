package onix

import (
	"log"
	"slices"
	"strconv"
	"time"

	"thothexport/internal/exporterr"
	"thothexport/internal/work"
)

const (
	thothSender = "Thoth"
	thothEmail  = "info@thoth.pub"

	downloadDescription = "Publisher's website: download the title"
	webShopDescription  = "Publisher's website: web shop"

	bundlePriceFloor = 0.01
)

// EbscoHost generates ONIX 2.1 records for EBSCO Host. EBSCO only takes
// PDF and EPUB products, so a work must have a canonical download location
// for one of them.
type EbscoHost struct {
	now func() time.Time
}

func NewEbscoHost() *EbscoHost {
	return &EbscoHost{now: time.Now}
}

func (g *EbscoHost) Specification() Specification {
	return SpecEbscoHost
}

// Generate returns one message holding a Product per eligible work. With a
// single work its eligibility error is returned; with several, ineligible
// works are skipped and the batch fails only when none qualify.
func (g *EbscoHost) Generate(works []work.Work) ([]byte, error) {
	products, err := ebscoProducts(works)
	if err != nil {
		return nil, err
	}
	sent := g.now().UTC().Format("20060102")
	return render(func(w *Writer) error {
		return w.Block("ONIXMessage", func() error {
			err := w.Block("Header", func() error {
				return w.Elements(
					"FromCompany", thothSender,
					"FromEmail", thothEmail,
					"SentDate", sent,
				)
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

func ebscoProducts(works []work.Work) ([]ebscoProduct, error) {
	switch len(works) {
	case 0:
		return nil, exporterr.Incomplete(string(SpecEbscoHost), "Not enough data")
	case 1:
		p, err := newEbscoProduct(works[0])
		if err != nil {
			return nil, err
		}
		return []ebscoProduct{p}, nil
	}
	products := make([]ebscoProduct, 0, len(works))
	for _, wk := range works {
		p, err := newEbscoProduct(wk)
		if err != nil {
			log.Printf("onix skip specification=%s work_id=%s reason=%q", SpecEbscoHost, wk.WorkID, err)
			continue
		}
		products = append(products, p)
	}
	if len(products) == 0 {
		return nil, exporterr.Incomplete(string(SpecEbscoHost), "No PDF or EPUB URL")
	}
	return products, nil
}

type ebscoProduct struct {
	work     work.Work
	recordID string
	mainISBN string
	isbns    []string
	pdfURL   string
	hasPDF   bool
	epubURL  string
	hasEPUB  bool
}

func newEbscoProduct(wk work.Work) (ebscoProduct, error) {
	p := ebscoProduct{work: wk, recordID: "urn:uuid:" + wk.WorkID.String()}
	p.pdfURL, p.hasPDF = downloadURL(wk, work.PublicationTypePDF)
	p.epubURL, p.hasEPUB = downloadURL(wk, work.PublicationTypeEPUB)
	if !p.hasPDF && !p.hasEPUB {
		return ebscoProduct{}, exporterr.Incomplete(string(SpecEbscoHost), "No PDF or EPUB URL")
	}
	p.mainISBN, p.isbns = SelectISBNs(wk.Publications)
	return p, nil
}

func (p ebscoProduct) write(w *Writer) error {
	wk := p.work
	return w.Block("Product", func() error {
		return seq(
			func() error {
				return w.Elements(
					"RecordReference", p.recordID,
					// 03 Notification confirmed on publication
					"NotificationType", "03",
					// 01 Publisher
					"RecordSourceType", "01",
				)
			},
			func() error { return productIdentifier(w, "01", p.recordID) },
			// 15 ISBN-13
			func() error { return productIdentifier(w, "15", p.mainISBN) },
			func() error {
				if wk.Doi == nil {
					return nil
				}
				return productIdentifier(w, "06", wk.Doi.String())
			},
			func() error {
				// 002 PDF, 029 EPUB
				epubType := "002"
				if !p.hasPDF {
					epubType = "029"
				}
				// DG Electronic book text
				return w.Elements("ProductForm", "DG", "EpubType", epubType)
			},
			func() error {
				for _, issue := range wk.Issues {
					err := w.Block("Series", func() error {
						return w.Elements(
							"TitleOfSeries", issue.Series.SeriesName,
							"NumberWithinSeries", strconv.Itoa(issue.IssueOrdinal),
						)
					})
					if err != nil {
						return err
					}
				}
				return nil
			},
			func() error {
				return w.Block("Title", func() error {
					// 01 Distinctive title
					if wk.Subtitle != nil {
						return w.Elements("TitleType", "01", "TitleText", wk.Title, "Subtitle", *wk.Subtitle)
					}
					return w.Elements("TitleType", "01", "TitleText", wk.FullTitle)
				})
			},
			func() error {
				return w.Block("WorkIdentifier", func() error {
					return w.Elements("WorkIDType", "01", "IDTypeName", "Thoth WorkID", "IDValue", p.recordID)
				})
			},
			func() error { return p.writeWebsites(w) },
			func() error { return ebscoContributors(w, wk.Contributions) },
			func() error { return writeLanguages(w, SpecEbscoHost, wk.Languages) },
			func() error { return writeExtent(w, wk.PageCount) },
			func() error {
				for _, s := range wk.Subjects {
					err := w.Block("Subject", func() error {
						scheme := SubjectTypeCode(SpecEbscoHost, s.SubjectType)
						switch s.SubjectType {
						case work.SubjectTypeKeyword, work.SubjectTypeCustom:
							return w.Elements("SubjectSchemeIdentifier", scheme, "SubjectHeadingText", s.SubjectCode)
						default:
							return w.Elements("SubjectSchemeIdentifier", scheme, "SubjectCode", s.SubjectCode)
						}
					})
					if err != nil {
						return err
					}
				}
				return nil
			},
			func() error {
				return w.Block("Audience", func() error {
					// 06 Professional and scholarly
					return w.Elements("AudienceCodeType", "01", "AudienceCodeValue", "06")
				})
			},
			func() error { return p.writeOtherText(w) },
			func() error {
				if wk.CoverURL == nil {
					return nil
				}
				return w.Block("MediaFile", func() error {
					// 04 Front cover, 01 URL
					return w.Elements(
						"MediaFileTypeCode", "04",
						"MediaFileLinkTypeCode", "01",
						"MediaFileLink", *wk.CoverURL,
					)
				})
			},
			func() error {
				return w.Block("Imprint", func() error {
					return w.Element("ImprintName", wk.Imprint.ImprintName)
				})
			},
			func() error {
				return w.Block("Publisher", func() error {
					err := w.Elements("PublishingRole", "01", "PublisherName", wk.Imprint.Publisher.PublisherName)
					if err != nil || wk.Imprint.Publisher.PublisherURL == nil {
						return err
					}
					return w.Block("Website", func() error {
						return w.Element("WebsiteLink", *wk.Imprint.Publisher.PublisherURL)
					})
				})
			},
			func() error {
				if wk.Place == nil {
					return nil
				}
				return w.Element("CityOfPublication", *wk.Place)
			},
			func() error { return w.Element("PublishingStatus", WorkStatusCode(SpecEbscoHost, wk.WorkStatus)) },
			func() error {
				if wk.PublicationDate == nil {
					return nil
				}
				return w.Elements(
					"PublicationDate", wk.PublicationDate.Format("20060102"),
					"CopyrightYear", wk.PublicationDate.Format("2006"),
				)
			},
			func() error {
				return w.Block("SalesRights", func() error {
					// 02 Non-exclusive sale in the specified territories
					return w.Elements("SalesRightsType", "02", "RightsTerritory", "WORLD")
				})
			},
			func() error {
				for _, isbn := range p.isbns {
					err := w.Block("RelatedProduct", func() error {
						// 06 Alternative format
						if err := w.Element("RelationCode", "06"); err != nil {
							return err
						}
						return productIdentifier(w, "15", isbn)
					})
					if err != nil {
						return err
					}
				}
				return nil
			},
			func() error { return p.writeSupplyDetail(w) },
		)
	})
}

func (p ebscoProduct) writeWebsites(w *Writer) error {
	var sites websites
	if p.hasPDF {
		sites = sites.add("29", downloadDescription, p.pdfURL)
	}
	if p.hasEPUB {
		sites = sites.add("29", downloadDescription, p.epubURL)
	}
	if p.work.LandingPage != nil {
		sites = sites.add("01", webShopDescription, *p.work.LandingPage)
	}
	for _, site := range sites {
		err := w.Block("Website", func() error {
			return w.Elements(
				"WebsiteRole", site.role,
				"WebsiteDescription", site.description,
				"WebsiteLink", site.link,
			)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (p ebscoProduct) writeOtherText(w *Writer) error {
	wk := p.work
	err := w.Block("OtherText", func() error {
		// 47 Open access statement
		return w.Elements("TextTypeCode", "47", "Text", "Open access - no commercial use")
	})
	if err != nil {
		return err
	}
	if wk.License != nil {
		err := w.Block("OtherText", func() error {
			// 46 License
			return w.Elements("TextTypeCode", "46", "Text", *wk.License)
		})
		if err != nil {
			return err
		}
	}
	if wk.LongAbstract != nil {
		return w.Block("OtherText", func() error {
			// 03 Long description, 06 default text format
			return w.Elements("TextTypeCode", "03", "TextFormat", "06", "Text", *wk.LongAbstract)
		})
	}
	return nil
}

func (p ebscoProduct) writeSupplyDetail(w *Writer) error {
	publisher := p.work.Imprint.Publisher.PublisherName
	return w.Block("SupplyDetail", func() error {
		err := w.Elements(
			"SupplierName", publisher,
			// 09 Publisher to end-customers
			"SupplierRole", "09",
			// 99 Contact supplier
			"ProductAvailability", "99",
			// R Restrictions apply, see note
			"AudienceRestrictionFlag", "R",
			"AudienceRestrictionNote", "Open access",
		)
		if err != nil {
			return err
		}
		return w.Block("Price", func() error {
			// 02 RRP including tax
			return w.Elements(
				"PriceTypeCode", "02",
				"PriceAmount", formatDecimal(BundlePrice(p.work)),
				"CurrencyCode", string(work.CurrencyCodeUSD),
			)
		})
	})
}

// BundlePrice is the single USD price EBSCO gets for the PDF and EPUB sold
// together: the higher of the two, never below 0.01, which EBSCO requires
// for open access titles.
func BundlePrice(wk work.Work) float64 {
	return max(usdPrice(wk, work.PublicationTypePDF), usdPrice(wk, work.PublicationTypeEPUB), bundlePriceFloor)
}

func ebscoContributors(w *Writer, contributions []work.Contribution) error {
	ordered := slices.Clone(contributions)
	slices.SortStableFunc(ordered, func(a, b work.Contribution) int {
		return a.ContributionOrdinal - b.ContributionOrdinal
	})
	for _, c := range ordered {
		err := w.Block("Contributor", func() error {
			err := w.Elements(
				"SequenceNumber", strconv.Itoa(c.ContributionOrdinal),
				"ContributorRole", ContributionTypeCode(SpecEbscoHost, c.ContributionType),
			)
			if err != nil {
				return err
			}
			if c.Contributor.Orcid != nil {
				err := w.Block("PersonNameIdentifier", func() error {
					// 01 Proprietary
					return w.Elements("PersonNameIDType", "01", "IDTypeName", "ORCID", "IDValue", c.Contributor.Orcid.String())
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

func writePersonName(w *Writer, c work.Contribution) error {
	if c.FirstName != nil {
		return w.Elements("NamesBeforeKey", *c.FirstName, "KeyNames", c.LastName)
	}
	return w.Element("PersonName", c.FullName)
}

func productIdentifier(w *Writer, idType, value string) error {
	return w.Block("ProductIdentifier", func() error {
		return w.Elements("ProductIDType", idType, "IDValue", value)
	})
}

func writeLanguages(w *Writer, spec Specification, languages []work.Language) error {
	for _, l := range languages {
		err := w.Block("Language", func() error {
			return w.Elements(
				"LanguageRole", LanguageRelationCode(spec, l.LanguageRelation),
				"LanguageCode", l.LanguageCode.Lower(),
			)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func writeExtent(w *Writer, pageCount *int) error {
	if pageCount == nil {
		return nil
	}
	return w.Block("Extent", func() error {
		// 00 Main content, 03 Pages
		return w.Elements("ExtentType", "00", "ExtentValue", strconv.Itoa(*pageCount), "ExtentUnit", "03")
	})
}
