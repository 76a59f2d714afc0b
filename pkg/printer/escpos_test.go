package printer

import (
	"bytes"
	"testing"

	"github.com/SunnFlower47/kasir-print-service/internal/domain/entity"
)

func TestEncodeReceipt(t *testing.T) {
	data := EncodeReceipt("STRUK\n", entity.FontSizeMedium)

	if !bytes.HasPrefix(data, []byte{escByte, '@'}) {
		t.Error("missing ESC @ initialization")
	}
	if !bytes.Contains(data, []byte{gsByte, '!', escposFontNormal}) {
		t.Error("medium font should use normal magnification")
	}
	if !bytes.HasSuffix(data, []byte{gsByte, 'V', 0x01}) {
		t.Error("missing GS V partial cut")
	}
}

func TestEncodeReceiptLargeFont(t *testing.T) {
	data := EncodeReceipt("STRUK\n", entity.FontSizeLarge)
	if !bytes.Contains(data, []byte{gsByte, '!', escposFontTall}) {
		t.Error("large font should use double height")
	}
}

func TestEncodeReceiptTerminatesLine(t *testing.T) {
	data := EncodeReceipt("STRUK", entity.FontSizeMedium)
	if !bytes.Contains(data, []byte("STRUK\n")) {
		t.Error("text without trailing newline should get one before the feed")
	}
}
