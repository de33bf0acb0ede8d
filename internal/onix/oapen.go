package onix

import (
	"fmt"

	"thothexport/internal/exporterr"
	"thothexport/internal/work"
)

// Oapen is the ONIX 3.0 feed for OAPEN. It is listed so the name resolves,
// but no record layout has been agreed with OAPEN yet.
type Oapen struct{}

func NewOapen() *Oapen {
	return &Oapen{}
}

func (g *Oapen) Specification() Specification {
	return SpecOapen
}

func (g *Oapen) Generate([]work.Work) ([]byte, error) {
	return nil, fmt.Errorf("%s: %w", SpecOapen, exporterr.ErrNotImplemented)
}
