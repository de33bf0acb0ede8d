package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"thothexport/internal/work"
)

// WorkPG assembles works straight from the Thoth relational schema.
// It only reads.
type WorkPG struct {
	db *pgxpool.Pool
}

func NewWorkPG(db *pgxpool.Pool) *WorkPG {
	return &WorkPG{db: db}
}

const workSelect = `
	SELECT w.work_id, w.work_type::text, w.work_status::text, w.full_title, w.title, w.subtitle,
		COALESCE(w.edition, 0), w.doi, w.publication_date, w.place,
		w.width_mm, w.width_cm, w.width_in, w.height_mm, w.height_cm, w.height_in,
		w.page_count, w.page_breakdown, w.image_count, w.table_count, w.audio_count, w.video_count,
		w.license, COALESCE(w.copyright_holder, ''), w.landing_page, w.lccn, w.oclc,
		w.short_abstract, w.long_abstract, w.general_note, w.toc, w.cover_url, w.cover_caption,
		i.imprint_name, p.publisher_name, p.publisher_url
	FROM work w
	JOIN imprint i ON i.imprint_id = w.imprint_id
	JOIN publisher p ON p.publisher_id = i.publisher_id`

// GetWork implements metadata.WorkSource.
func (r *WorkPG) GetWork(ctx context.Context, workID uuid.UUID) (work.Work, error) {
	works, err := r.loadWorks(ctx, workSelect+` WHERE w.work_id = $1`, workID)
	if err != nil {
		return work.Work{}, err
	}
	if len(works) == 0 {
		return work.Work{}, work.ErrNotFound
	}
	return works[0], nil
}

// ListPublisherWorks implements metadata.WorkSource.
func (r *WorkPG) ListPublisherWorks(ctx context.Context, publisherID uuid.UUID) ([]work.Work, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM publisher WHERE publisher_id = $1)`, publisherID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check publisher: %w", err)
	}
	if !exists {
		return nil, work.ErrNotFound
	}
	return r.loadWorks(ctx, workSelect+` WHERE p.publisher_id = $1 ORDER BY w.full_title, w.work_id`, publisherID)
}

func (r *WorkPG) loadWorks(ctx context.Context, query string, args ...any) ([]work.Work, error) {
	var works []work.Work
	err := r.collect(ctx, query, args, func(rows pgx.Rows) error {
		w, err := scanWork(rows)
		if err != nil {
			return err
		}
		works = append(works, w)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load works: %w", err)
	}
	if len(works) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, len(works))
	index := make(map[uuid.UUID]int, len(works))
	for i, w := range works {
		ids[i] = w.WorkID
		index[w.WorkID] = i
	}

	loaders := []struct {
		name string
		load func(context.Context, []uuid.UUID, []work.Work, map[uuid.UUID]int) error
	}{
		{"publications", r.loadPublications},
		{"contributions", r.loadContributions},
		{"languages", r.loadLanguages},
		{"issues", r.loadIssues},
		{"subjects", r.loadSubjects},
		{"fundings", r.loadFundings},
	}
	for _, l := range loaders {
		if err := l.load(ctx, ids, works, index); err != nil {
			return nil, fmt.Errorf("load %s: %w", l.name, err)
		}
	}
	return works, nil
}

func scanWork(rows pgx.Rows) (work.Work, error) {
	var (
		w                    work.Work
		workType, workStatus string
		doi                  *string
		publicationDate      *time.Time
	)
	err := rows.Scan(
		&w.WorkID, &workType, &workStatus, &w.FullTitle, &w.Title, &w.Subtitle,
		&w.Edition, &doi, &publicationDate, &w.Place,
		&w.WidthMm, &w.WidthCm, &w.WidthIn, &w.HeightMm, &w.HeightCm, &w.HeightIn,
		&w.PageCount, &w.PageBreakdown, &w.ImageCount, &w.TableCount, &w.AudioCount, &w.VideoCount,
		&w.License, &w.CopyrightHolder, &w.LandingPage, &w.Lccn, &w.Oclc,
		&w.ShortAbstract, &w.LongAbstract, &w.GeneralNote, &w.Toc, &w.CoverURL, &w.CoverCaption,
		&w.Imprint.ImprintName, &w.Imprint.Publisher.PublisherName, &w.Imprint.Publisher.PublisherURL,
	)
	if err != nil {
		return work.Work{}, err
	}
	w.WorkType = enum[work.WorkType](workType)
	w.WorkStatus = enum[work.WorkStatus](workStatus)
	w.Doi = optional[work.Doi](doi)
	if publicationDate != nil {
		d := work.NewDate(publicationDate.Year(), publicationDate.Month(), publicationDate.Day())
		w.PublicationDate = &d
	}
	return w, nil
}

func (r *WorkPG) loadPublications(ctx context.Context, ids []uuid.UUID, works []work.Work, index map[uuid.UUID]int) error {
	prices := make(map[uuid.UUID][]work.Price)
	const priceSQL = `
		SELECT pr.publication_id, pr.currency_code::text, pr.unit_price
		FROM price pr
		JOIN publication p ON p.publication_id = pr.publication_id
		WHERE p.work_id = ANY($1)
		ORDER BY pr.currency_code`
	err := r.collect(ctx, priceSQL, []any{ids}, func(rows pgx.Rows) error {
		var (
			pubID    uuid.UUID
			currency string
			price    work.Price
		)
		if err := rows.Scan(&pubID, &currency, &price.UnitPrice); err != nil {
			return err
		}
		price.CurrencyCode = enum[work.CurrencyCode](currency)
		prices[pubID] = append(prices[pubID], price)
		return nil
	})
	if err != nil {
		return err
	}

	locations := make(map[uuid.UUID][]work.Location)
	const locationSQL = `
		SELECT l.publication_id, l.landing_page, l.full_text_url, l.location_platform::text, l.canonical
		FROM location l
		JOIN publication p ON p.publication_id = l.publication_id
		WHERE p.work_id = ANY($1)
		ORDER BY l.canonical DESC, l.location_platform`
	err = r.collect(ctx, locationSQL, []any{ids}, func(rows pgx.Rows) error {
		var (
			pubID    uuid.UUID
			platform string
			loc      work.Location
		)
		if err := rows.Scan(&pubID, &loc.LandingPage, &loc.FullTextURL, &platform, &loc.Canonical); err != nil {
			return err
		}
		loc.LocationPlatform = enum[work.LocationPlatform](platform)
		locations[pubID] = append(locations[pubID], loc)
		return nil
	})
	if err != nil {
		return err
	}

	const publicationSQL = `
		SELECT work_id, publication_id, publication_type::text, isbn
		FROM publication
		WHERE work_id = ANY($1)
		ORDER BY publication_type, publication_id`
	return r.collect(ctx, publicationSQL, []any{ids}, func(rows pgx.Rows) error {
		var (
			workID  uuid.UUID
			pubType string
			isbn    *string
			pub     work.Publication
		)
		if err := rows.Scan(&workID, &pub.PublicationID, &pubType, &isbn); err != nil {
			return err
		}
		pub.PublicationType = enum[work.PublicationType](pubType)
		pub.Isbn = optional[work.Isbn](isbn)
		pub.Prices = prices[pub.PublicationID]
		pub.Locations = locations[pub.PublicationID]
		w := &works[index[workID]]
		w.Publications = append(w.Publications, pub)
		return nil
	})
}

func (r *WorkPG) loadContributions(ctx context.Context, ids []uuid.UUID, works []work.Work, index map[uuid.UUID]int) error {
	affiliations := make(map[uuid.UUID][]work.Affiliation)
	const affiliationSQL = `
		SELECT a.contribution_id, a.position, a.affiliation_ordinal, i.institution_name
		FROM affiliation a
		JOIN institution i ON i.institution_id = a.institution_id
		JOIN contribution c ON c.contribution_id = a.contribution_id
		WHERE c.work_id = ANY($1)
		ORDER BY a.affiliation_ordinal`
	err := r.collect(ctx, affiliationSQL, []any{ids}, func(rows pgx.Rows) error {
		var (
			contributionID uuid.UUID
			a              work.Affiliation
		)
		if err := rows.Scan(&contributionID, &a.Position, &a.AffiliationOrdinal, &a.Institution.InstitutionName); err != nil {
			return err
		}
		affiliations[contributionID] = append(affiliations[contributionID], a)
		return nil
	})
	if err != nil {
		return err
	}

	const contributionSQL = `
		SELECT c.work_id, c.contribution_id, c.contribution_type::text, c.first_name, c.last_name, c.full_name,
			c.main_contribution, c.contribution_ordinal, ct.orcid
		FROM contribution c
		JOIN contributor ct ON ct.contributor_id = c.contributor_id
		WHERE c.work_id = ANY($1)
		ORDER BY c.contribution_ordinal`
	return r.collect(ctx, contributionSQL, []any{ids}, func(rows pgx.Rows) error {
		var (
			workID, contributionID uuid.UUID
			contributionType       string
			orcid                  *string
			c                      work.Contribution
		)
		err := rows.Scan(&workID, &contributionID, &contributionType, &c.FirstName, &c.LastName, &c.FullName,
			&c.MainContribution, &c.ContributionOrdinal, &orcid)
		if err != nil {
			return err
		}
		c.ContributionType = enum[work.ContributionType](contributionType)
		c.Contributor.Orcid = optional[work.Orcid](orcid)
		c.Affiliations = affiliations[contributionID]
		w := &works[index[workID]]
		w.Contributions = append(w.Contributions, c)
		return nil
	})
}

func (r *WorkPG) loadLanguages(ctx context.Context, ids []uuid.UUID, works []work.Work, index map[uuid.UUID]int) error {
	const languageSQL = `
		SELECT work_id, language_code::text, language_relation::text, main_language
		FROM language
		WHERE work_id = ANY($1)
		ORDER BY main_language DESC, language_code`
	return r.collect(ctx, languageSQL, []any{ids}, func(rows pgx.Rows) error {
		var (
			workID         uuid.UUID
			code, relation string
			l              work.Language
		)
		if err := rows.Scan(&workID, &code, &relation, &l.MainLanguage); err != nil {
			return err
		}
		l.LanguageCode = enum[work.LanguageCode](code)
		l.LanguageRelation = enum[work.LanguageRelation](relation)
		w := &works[index[workID]]
		w.Languages = append(w.Languages, l)
		return nil
	})
}

func (r *WorkPG) loadIssues(ctx context.Context, ids []uuid.UUID, works []work.Work, index map[uuid.UUID]int) error {
	const issueSQL = `
		SELECT iss.work_id, iss.issue_ordinal, s.series_type::text, s.series_name,
			COALESCE(s.issn_print, ''), COALESCE(s.issn_digital, ''), s.series_url
		FROM issue iss
		JOIN series s ON s.series_id = iss.series_id
		WHERE iss.work_id = ANY($1)
		ORDER BY iss.issue_ordinal`
	return r.collect(ctx, issueSQL, []any{ids}, func(rows pgx.Rows) error {
		var (
			workID     uuid.UUID
			seriesType string
			iss        work.Issue
		)
		err := rows.Scan(&workID, &iss.IssueOrdinal, &seriesType, &iss.Series.SeriesName,
			&iss.Series.IssnPrint, &iss.Series.IssnDigital, &iss.Series.SeriesURL)
		if err != nil {
			return err
		}
		iss.Series.SeriesType = enum[work.SeriesType](seriesType)
		w := &works[index[workID]]
		w.Issues = append(w.Issues, iss)
		return nil
	})
}

func (r *WorkPG) loadSubjects(ctx context.Context, ids []uuid.UUID, works []work.Work, index map[uuid.UUID]int) error {
	const subjectSQL = `
		SELECT work_id, subject_code, subject_type::text, subject_ordinal
		FROM subject
		WHERE work_id = ANY($1)
		ORDER BY subject_type, subject_ordinal`
	return r.collect(ctx, subjectSQL, []any{ids}, func(rows pgx.Rows) error {
		var (
			workID      uuid.UUID
			subjectType string
			s           work.Subject
		)
		if err := rows.Scan(&workID, &s.SubjectCode, &subjectType, &s.SubjectOrdinal); err != nil {
			return err
		}
		s.SubjectType = enum[work.SubjectType](subjectType)
		w := &works[index[workID]]
		w.Subjects = append(w.Subjects, s)
		return nil
	})
}

func (r *WorkPG) loadFundings(ctx context.Context, ids []uuid.UUID, works []work.Work, index map[uuid.UUID]int) error {
	const fundingSQL = `
		SELECT f.work_id, f.program, f.project_name, f.project_shortname, f.grant_number, f.jurisdiction,
			i.institution_name, i.institution_doi, i.ror, i.country_code::text
		FROM funding f
		JOIN institution i ON i.institution_id = f.institution_id
		WHERE f.work_id = ANY($1)
		ORDER BY f.funding_id`
	return r.collect(ctx, fundingSQL, []any{ids}, func(rows pgx.Rows) error {
		var (
			workID                uuid.UUID
			doi, ror, countryCode *string
			f                     work.Funding
		)
		err := rows.Scan(&workID, &f.Program, &f.ProjectName, &f.ProjectShortname, &f.GrantNumber, &f.Jurisdiction,
			&f.Institution.InstitutionName, &doi, &ror, &countryCode)
		if err != nil {
			return err
		}
		f.Institution.InstitutionDoi = optional[work.Doi](doi)
		f.Institution.Ror = optional[work.Ror](ror)
		if countryCode != nil {
			cc := enum[work.CountryCode](*countryCode)
			f.Institution.CountryCode = &cc
		}
		w := &works[index[workID]]
		w.Fundings = append(w.Fundings, f)
		return nil
	})
}

func (r *WorkPG) collect(ctx context.Context, query string, args []any, scan func(pgx.Rows) error) error {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	return nil
}

// apiSpellings holds the labels the GraphQL API spells differently from the database.
var apiSpellings = map[string]string{
	"ILLUSTRATOR": string(work.ContributionTypeIllustrator),
}

// enum maps a Postgres enum label such as "postponed-indefinitely" or
// "Project MUSE" onto the API spelling.
func enum[T ~string](label string) T {
	v := work.NormalizeEnum(label)
	if api, ok := apiSpellings[v]; ok {
		v = api
	}
	return T(v)
}

func optional[T ~string](s *string) *T {
	if s == nil {
		return nil
	}
	v := T(*s)
	return &v
}
