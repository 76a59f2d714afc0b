package printer

import (
	"bytes"

	"github.com/SunnFlower47/kasir-print-service/internal/domain/entity"
)

// ESC/POS command constants
const (
	escByte = 0x1B
	gsByte  = 0x1D
	lfByte  = 0x0A
)

// escpos font magnification values
const (
	escposFontNormal = 0x00
	escposFontTall   = 0x01 // double height only
)

// EncodeReceipt wraps an already-formatted fixed-width receipt text into an
// ESC/POS byte stream: initialize, optional font magnification, the text
// verbatim, paper feed, partial cut. Column layout is the formatter's job;
// the text goes to the device untouched.
func EncodeReceipt(text, fontSize string) []byte {
	var buf bytes.Buffer

	// ESC @ — initialize
	buf.Write([]byte{escByte, '@'})

	// GS ! — character size
	size := byte(escposFontNormal)
	if fontSize == entity.FontSizeLarge {
		size = escposFontTall
	}
	buf.Write([]byte{gsByte, '!', size})

	buf.WriteString(text)
	if len(text) > 0 && text[len(text)-1] != '\n' {
		buf.WriteByte(lfByte)
	}

	// Feed past the tear bar, then GS V 1 — partial cut
	buf.Write([]byte{lfByte, lfByte, lfByte})
	buf.Write([]byte{gsByte, 'V', 0x01})

	return buf.Bytes()
}
