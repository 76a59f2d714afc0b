package receipt

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Character widths for the supported thermal paper sizes.
const (
	Width58mm = 32
	Width80mm = 48
)

// Doc builds a fixed-width plain-text receipt using manual column padding.
type Doc struct {
	b     strings.Builder
	width int
}

// NewDoc creates a document with the given character width.
// Common widths: 32 for 58mm paper, 48 for 80mm paper.
func NewDoc(width int) *Doc {
	if width <= 0 {
		width = Width58mm
	}
	return &Doc{width: width}
}

// Width returns the character width of the document.
func (d *Doc) Width() int {
	return d.width
}

// Line writes a line of text.
func (d *Doc) Line(s string) *Doc {
	d.b.WriteString(s)
	d.b.WriteByte('\n')
	return d
}

// Linef writes a formatted line of text.
func (d *Doc) Linef(format string, args ...interface{}) *Doc {
	return d.Line(fmt.Sprintf(format, args...))
}

// Center writes a line centered within the document width. Widths are
// measured in runes so multi-byte names do not skew the columns.
func (d *Doc) Center(s string) *Doc {
	pad := (d.width - utf8.RuneCountInString(s)) / 2
	if pad > 0 {
		d.b.WriteString(strings.Repeat(" ", pad))
	}
	d.b.WriteString(s)
	d.b.WriteByte('\n')
	return d
}

// Separator writes a full-width separator line.
func (d *Doc) Separator(char byte) *Doc {
	return d.Line(strings.Repeat(string(char), d.width))
}

// KeyValue writes a left-aligned key and right-aligned value on the same line.
// Example: "Subtotal                  30.000"
func (d *Doc) KeyValue(key, value string) *Doc {
	spaces := d.width - utf8.RuneCountInString(key) - utf8.RuneCountInString(value)
	if spaces < 1 {
		spaces = 1
	}
	d.b.WriteString(key)
	d.b.WriteString(strings.Repeat(" ", spaces))
	d.b.WriteString(value)
	d.b.WriteByte('\n')
	return d
}

// Blank writes an empty line.
func (d *Doc) Blank() *Doc {
	d.b.WriteByte('\n')
	return d
}

// String returns the accumulated document.
func (d *Doc) String() string {
	return d.b.String()
}
