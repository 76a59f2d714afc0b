package receipt

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestDocCenter(t *testing.T) {
	doc := NewDoc(Width58mm)
	doc.Center("TOKO")
	got := strings.TrimRight(doc.String(), "\n")

	wantPad := (Width58mm - len("TOKO")) / 2
	if got != strings.Repeat(" ", wantPad)+"TOKO" {
		t.Errorf("Center() = %q, want %d leading spaces", got, wantPad)
	}
}

func TestDocKeyValue(t *testing.T) {
	doc := NewDoc(Width58mm)
	doc.KeyValue("Subtotal", "30.000")
	got := strings.TrimRight(doc.String(), "\n")

	if len(got) != Width58mm {
		t.Errorf("KeyValue() line width = %d, want %d", len(got), Width58mm)
	}
	if !strings.HasPrefix(got, "Subtotal") || !strings.HasSuffix(got, "30.000") {
		t.Errorf("KeyValue() = %q, want key left and value right aligned", got)
	}
}

func TestDocMultiByteWidths(t *testing.T) {
	doc := NewDoc(Width58mm)
	doc.Center("Café Déjà")
	got := strings.TrimRight(doc.String(), "\n")

	wantPad := (Width58mm - utf8.RuneCountInString("Café Déjà")) / 2
	if got != strings.Repeat(" ", wantPad)+"Café Déjà" {
		t.Errorf("Center() = %q, want %d leading spaces for rune width", got, wantPad)
	}

	doc = NewDoc(Width58mm)
	doc.KeyValue("Café", "30.000")
	line := strings.TrimRight(doc.String(), "\n")
	if utf8.RuneCountInString(line) != Width58mm {
		t.Errorf("KeyValue() rune width = %d, want %d", utf8.RuneCountInString(line), Width58mm)
	}
}

func TestDocKeyValueOverflowKeepsOneSpace(t *testing.T) {
	doc := NewDoc(10)
	doc.KeyValue("a very long key", "value")
	got := strings.TrimRight(doc.String(), "\n")
	if got != "a very long key value" {
		t.Errorf("KeyValue() overflow = %q, want single separating space", got)
	}
}

func TestDocSeparator(t *testing.T) {
	doc := NewDoc(Width80mm)
	doc.Separator('=')
	got := strings.TrimRight(doc.String(), "\n")
	if got != strings.Repeat("=", Width80mm) {
		t.Errorf("Separator() = %q, want %d '='", got, Width80mm)
	}
}
