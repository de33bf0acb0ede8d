package metadata

import (
	"fmt"
	"strings"

	"thothexport/internal/work"
)

// Record is a generated metadata file ready for delivery.
type Record struct {
	Specification Specification
	Body          []byte
	Filename      string
}

// ContentType of the record body.
func (r Record) ContentType() string {
	return r.Specification.ContentType()
}

// ContentDisposition marks the record as a download.
func (r Record) ContentDisposition() string {
	return fmt.Sprintf("attachment; filename=%q", r.Filename)
}

// Generate resolves id and renders works into a Record. subject names what
// the record covers (a work or publisher id) and ends up in the filename.
func Generate(id string, works []work.Work, subject string) (Record, error) {
	spec, err := ParseSpecification(id)
	if err != nil {
		return Record{}, err
	}
	body, err := spec.Generate(works)
	if err != nil {
		return Record{}, err
	}
	return Record{
		Specification: spec,
		Body:          body,
		Filename:      filename(spec, subject),
	}, nil
}

func filename(spec Specification, subject string) string {
	name := strings.NewReplacer("::", "__", ".", "_").Replace(spec.ID)
	return fmt.Sprintf("%s__%s.%s", name, subject, spec.extension())
}
