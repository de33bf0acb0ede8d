package work

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	DoiDomain   = "https://doi.org/"
	OrcidDomain = "https://orcid.org/"
	RorDomain   = "https://ror.org/"
)

// Doi is stored in its resolver URL form. String returns the bare DOI.
type Doi string

func (d Doi) String() string {
	return strings.TrimPrefix(string(d), DoiDomain)
}

// Orcid is stored in its URL form. String returns the bare identifier.
type Orcid string

func (o Orcid) String() string {
	return strings.TrimPrefix(string(o), OrcidDomain)
}

// Ror is stored in its URL form. String returns the bare identifier.
type Ror string

func (r Ror) String() string {
	return strings.TrimPrefix(string(r), RorDomain)
}

// Isbn is stored hyphenated, e.g. "978-3-16-148410-0".
type Isbn string

func (i Isbn) String() string {
	return string(i)
}

// Compact returns the ISBN without hyphens.
func (i Isbn) Compact() string {
	return strings.ReplaceAll(string(i), "-", "")
}

const dateLayout = "2006-01-02"

// Date is a calendar date without time of day.
type Date struct {
	time.Time
}

// NewDate returns the date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO 8601 calendar date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
