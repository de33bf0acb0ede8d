package metadata

import (
	"slices"

	"thothexport/internal/csvexport"
	"thothexport/internal/exporterr"
	"thothexport/internal/onix"
	"thothexport/internal/work"
)

// Format is the family of a specification's output.
type Format string

const (
	FormatOnix Format = "onix"
	FormatCSV  Format = "csv"
)

// Generator turns a batch of works into a record body.
type Generator interface {
	Generate(works []work.Work) ([]byte, error)
}

// Specification is one entry in the export catalogue.
type Specification struct {
	ID         string   `json:"specificationId"`
	Name       string   `json:"specificationName"`
	Format     Format   `json:"format"`
	Version    string   `json:"version,omitempty"`
	AcceptedBy []string `json:"acceptedBy"`

	generator Generator
}

var catalogue = []Specification{
	{
		ID:         string(onix.SpecProjectMuse),
		Name:       "Project MUSE ONIX 3.0",
		Format:     FormatOnix,
		Version:    "3.0",
		AcceptedBy: []string{"Project MUSE"},
		generator:  onix.NewProjectMuse(),
	},
	{
		ID:         string(onix.SpecOapen),
		Name:       "OAPEN ONIX 3.0",
		Format:     FormatOnix,
		Version:    "3.0",
		AcceptedBy: []string{"OAPEN", "DOAB"},
		generator:  onix.NewOapen(),
	},
	{
		ID:         string(onix.SpecEbscoHost),
		Name:       "EBSCO Host ONIX 2.1",
		Format:     FormatOnix,
		Version:    "2.1",
		AcceptedBy: []string{"EBSCO Host"},
		generator:  onix.NewEbscoHost(),
	},
	{
		ID:         csvexport.Specification,
		Name:       "Thoth CSV",
		Format:     FormatCSV,
		AcceptedBy: []string{"Thoth"},
		generator:  csvexport.NewThoth(),
	},
}

// Specifications lists every specification the service can resolve.
func Specifications() []Specification {
	return slices.Clone(catalogue)
}

// ParseSpecification resolves a case-sensitive specification id.
func ParseSpecification(id string) (Specification, error) {
	for _, s := range catalogue {
		if s.ID == id {
			return s, nil
		}
	}
	return Specification{}, &exporterr.InvalidSpecificationError{Name: id}
}

// ContentType is the media type records of this specification are served with.
func (s Specification) ContentType() string {
	if s.Format == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "text/xml; charset=utf-8"
}

func (s Specification) extension() string {
	if s.Format == FormatCSV {
		return "csv"
	}
	return "xml"
}

// Generate runs the specification's generator over works.
func (s Specification) Generate(works []work.Work) ([]byte, error) {
	return s.generator.Generate(works)
}
