package receipt

// Template identifies one of the four fixed receipt layouts.
type Template string

const (
	// Template58mm is the fixed-width thermal default.
	Template58mm Template = "58mm"
	// TemplateSimple is a thermal layout with a minimal header.
	TemplateSimple Template = "simple"
	// TemplateDetailed is a thermal layout with the full header and
	// right-aligned columns.
	TemplateDetailed Template = "detailed"
	// TemplateInvoice is the HTML-styled A4 layout.
	TemplateInvoice Template = "invoice"
)

// ParseTemplate maps an identifier onto a Template, reporting whether it was
// recognized. Callers fall back to a persisted preference and finally to
// Template58mm.
func ParseTemplate(s string) (Template, bool) {
	switch Template(s) {
	case Template58mm, TemplateSimple, TemplateDetailed, TemplateInvoice:
		return Template(s), true
	default:
		return Template58mm, false
	}
}

// Thermal reports whether the template renders as fixed-width text.
func (t Template) Thermal() bool {
	return t != TemplateInvoice
}
