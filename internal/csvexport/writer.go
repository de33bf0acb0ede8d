package csvexport

import (
	"bufio"
	"io"
	"strings"

	"thothexport/internal/exporterr"
)

// Writer writes comma separated records with every field quoted. Compound
// cells carry their own commas and quotes, so quoting only when needed would
// make the output ambiguous to naive readers.
type Writer struct {
	w *bufio.Writer
}

func NewWriter(out io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(out)}
}

// Write writes one record terminated by "\n".
func (cw *Writer) Write(record []string) error {
	for i, field := range record {
		if i > 0 {
			if err := cw.w.WriteByte(','); err != nil {
				return exporterr.Internal("Could not generate CSV", err)
			}
		}
		if _, err := cw.w.WriteString(`"` + strings.ReplaceAll(field, `"`, `""`) + `"`); err != nil {
			return exporterr.Internal("Could not generate CSV", err)
		}
	}
	if err := cw.w.WriteByte('\n'); err != nil {
		return exporterr.Internal("Could not generate CSV", err)
	}
	return nil
}

func (cw *Writer) Flush() error {
	if err := cw.w.Flush(); err != nil {
		return exporterr.Internal("Could not generate CSV", err)
	}
	return nil
}
