package receipt

import (
	"fmt"
	"html"

	"github.com/SunnFlower47/kasir-print-service/internal/domain/entity"
)

// fontPx maps the font-size enum onto a pixel size for the thermal layouts.
func fontPx(fontSize string) int {
	switch fontSize {
	case entity.FontSizeSmall:
		return 10
	case entity.FontSizeLarge:
		return 14
	default:
		return 12
	}
}

// wrapHTML wraps rendered content in the shared printable envelope. The
// @media print block binds the page size and margins to the chosen template,
// so the same document works through the host print bridge and through a
// plain print dialog.
func wrapHTML(body string, tpl Template, printer entity.PrinterSettings) string {
	var pageSize, bodyCSS string
	if tpl.Thermal() {
		paper := printer.PaperSize
		if paper != entity.PaperSize80mm {
			paper = entity.PaperSize58mm
		}
		pageSize = paper + " auto"
		bodyCSS = fmt.Sprintf(
			`font-family: "Courier New", monospace; font-size: %dpx; width: %s; margin: 0;`,
			fontPx(printer.FontSize), paper)
	} else {
		pageSize = "A4"
		bodyCSS = `font-family: Arial, Helvetica, sans-serif; font-size: 14px; margin: 0;`
	}

	return `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Struk</title>
<style>
@media print {
  @page { size: ` + pageSize + `; margin: ` + pageMargin(tpl) + `; }
  body { -webkit-print-color-adjust: exact; }
}
body { ` + bodyCSS + ` }
pre { font: inherit; margin: 0; white-space: pre; }
.invoice { padding: 10mm; }
.invoice h1 { font-size: 22px; margin: 0 0 8px 0; }
.invoice img.logo { max-height: 60px; margin-bottom: 8px; }
.invoice table { width: 100%; border-collapse: collapse; margin-top: 10px; }
.invoice table.items th, .invoice table.items td { border: 1px solid #333; padding: 4px 8px; text-align: left; }
.invoice table.items td.empty { text-align: center; }
.invoice table.totals td { padding: 2px 8px; text-align: right; }
.invoice tr.grand td { font-weight: bold; border-top: 1px solid #333; }
.invoice p.footer { margin-top: 16px; text-align: center; }
</style>
</head>
<body>
` + body + `
</body>
</html>`
}

func pageMargin(tpl Template) string {
	if tpl.Thermal() {
		return "0"
	}
	return "15mm"
}

func escapeHTML(s string) string {
	return html.EscapeString(s)
}
