package onix

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"thothexport/internal/exporterr"
)

// Writer emits indented ONIX XML as nested, always-closed element blocks.
// Markup goes through encoding/xml; character data is escaped here.
type Writer struct {
	out io.Writer
	enc *xml.Encoder
}

func NewWriter(out io.Writer) *Writer {
	enc := xml.NewEncoder(out)
	enc.Indent("", "  ")
	return &Writer{out: out, enc: enc}
}

// Block writes <name>, runs body, then writes </name>. The end element is
// written even when body fails; the first error wins.
func (w *Writer) Block(name string, body func() error) error {
	return w.FullBlock(name, "", nil, body)
}

// FullBlock is Block with an optional default namespace and attributes.
func (w *Writer) FullBlock(name, namespace string, attrs map[string]string, body func() error) (err error) {
	start := xml.StartElement{Name: xml.Name{Space: namespace, Local: name}}
	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: k}, Value: attrs[k]})
	}
	if err := w.encode(start); err != nil {
		return err
	}
	defer func() {
		if endErr := w.encode(start.End()); err == nil {
			err = endErr
		}
	}()
	if body == nil {
		return nil
	}
	return body()
}

// Element writes <name>text</name>.
func (w *Writer) Element(name, text string) error {
	return w.ElementWithAttrs(name, nil, text)
}

// Elements writes consecutive name/text pairs.
func (w *Writer) Elements(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if err := w.Element(pairs[i], pairs[i+1]); err != nil {
			return err
		}
	}
	return nil
}

// ElementWithAttrs writes <name attrs...>text</name>.
func (w *Writer) ElementWithAttrs(name string, attrs map[string]string, text string) error {
	escaped, err := escapeText(text)
	if err != nil {
		return exporterr.Internal("Could not generate ONIX", fmt.Errorf("%s: %w", name, err))
	}
	return w.FullBlock(name, "", attrs, func() error {
		if escaped == "" {
			return nil
		}
		// The encoder buffers; flush so the text lands after the start tag.
		if err := w.Flush(); err != nil {
			return err
		}
		if _, err := io.WriteString(w.out, escaped); err != nil {
			return exporterr.Internal("Could not generate ONIX", err)
		}
		return nil
	})
}

func (w *Writer) Flush() error {
	if err := w.enc.Flush(); err != nil {
		return exporterr.Internal("Could not generate ONIX", err)
	}
	return nil
}

func (w *Writer) encode(t xml.Token) error {
	if err := w.enc.EncodeToken(t); err != nil {
		return exporterr.Internal("Could not generate ONIX", err)
	}
	return nil
}

// seq runs steps in order and stops at the first error.
func seq(steps ...func() error) error {
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// escapeText escapes only what character data requires, so apostrophes,
// quotes, tabs and newlines reach feed consumers as written. Text that is
// not valid UTF-8 or holds characters XML 1.0 forbids is rejected rather
// than replaced.
func escapeText(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))
	for i, r := range s {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(s[i:]); size == 1 {
				return "", fmt.Errorf("invalid UTF-8 at byte %d", i)
			}
		}
		if !isXMLChar(r) {
			return "", fmt.Errorf("character %U not allowed in XML", r)
		}
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '\r':
			b.WriteString("&#xD;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

// isXMLChar reports whether r is in the XML 1.0 Char production.
func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}

// render writes the XML declaration followed by whatever body emits.
// Nothing is returned unless body succeeds.
func render(body func(w *Writer) error) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	w := NewWriter(&buf)
	if err := body(w); err != nil {
		return nil, err
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
