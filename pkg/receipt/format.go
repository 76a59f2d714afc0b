// Package receipt renders a normalized sale into printable content: three
// fixed-width thermal layouts and one HTML invoice layout, all wrapped in a
// shared printable HTML envelope.
package receipt

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/SunnFlower47/kasir-print-service/internal/domain/entity"
)

// NoItemsPlaceholder is rendered instead of the item block when a receipt has
// no line items. Rendering must still succeed in that case.
const NoItemsPlaceholder = "Tidak ada item"

// CustomerCopyBanner marks the duplicate customer copy on thermal layouts.
const CustomerCopyBanner = "*** SALINAN PELANGGAN ***"

const defaultCashier = "Kasir"

// Rendered is the output of one render: the complete printable HTML document
// plus, for thermal templates, the bare fixed-width text for raw device
// output.
type Rendered struct {
	Template  Template
	HTML      string
	PlainText string
}

// Formatter turns a ReceiptData plus resolved settings into printable
// content. It never returns empty content; the dispatcher re-checks that
// invariant before attempting delivery.
type Formatter struct {
	logger *zap.Logger
}

func NewFormatter(logger *zap.Logger) *Formatter {
	return &Formatter{logger: logger.Named("receipt")}
}

// Normalize gives every field of data a safe fallback so rendering never
// fails on missing optional data, and fills blank branding fields from the
// resolved company settings.
func (f *Formatter) Normalize(data *entity.ReceiptData, company entity.CompanySettings) {
	now := time.Now()
	if data.Date == "" {
		data.Date = now.Format("02/01/2006")
	}
	if data.Time == "" {
		data.Time = now.Format("15:04")
	}
	if data.Cashier == "" {
		data.Cashier = defaultCashier
	}
	if data.Items == nil {
		data.Items = []entity.ReceiptItem{}
	}
	if data.CompanyName == "" {
		data.CompanyName = company.CompanyName
	}
	if data.CompanyAddress == "" {
		data.CompanyAddress = company.CompanyAddress
	}
	if data.CompanyPhone == "" {
		data.CompanyPhone = company.CompanyPhone
	}
	if data.FooterText == "" {
		if company.ReceiptFooter != "" {
			data.FooterText = company.ReceiptFooter
		} else {
			data.FooterText = "Terima kasih, " + data.CompanyName
		}
	}
}

// Render produces the printable content for one physical copy. customerCopy
// adds the duplicate-copy banner on thermal layouts.
func (f *Formatter) Render(data entity.ReceiptData, printer entity.PrinterSettings, company entity.CompanySettings, tpl Template, customerCopy bool) (*Rendered, error) {
	if tpl == TemplateInvoice {
		body, err := f.renderInvoice(data, printer, company)
		if err != nil {
			return nil, fmt.Errorf("render invoice: %w", err)
		}
		return &Rendered{
			Template: tpl,
			HTML:     wrapHTML(body, tpl, printer),
		}, nil
	}

	text := f.renderThermal(data, printer, company, tpl, customerCopy)
	return &Rendered{
		Template:  tpl,
		HTML:      wrapHTML(preBlock(text), tpl, printer),
		PlainText: text,
	}, nil
}

// renderThermal builds the fixed-width text document. The three thermal
// templates share this structure and differ in header verbosity and item
// column alignment.
func (f *Formatter) renderThermal(data entity.ReceiptData, printer entity.PrinterSettings, company entity.CompanySettings, tpl Template, customerCopy bool) string {
	width := Width58mm
	if printer.PaperSize == entity.PaperSize80mm {
		width = Width80mm
	}
	doc := NewDoc(width)
	decimals := company.CurrencyDecimals

	if printer.PrintHeader {
		doc.Center(data.CompanyName)
		if tpl != TemplateSimple {
			if data.CompanyAddress != "" {
				doc.Center(data.CompanyAddress)
			}
			if data.CompanyPhone != "" {
				doc.Center(data.CompanyPhone)
			}
		}
		if tpl == TemplateDetailed {
			if company.CompanyTaxID != "" {
				doc.Center("NPWP: " + company.CompanyTaxID)
			}
			if company.CompanyWebsite != "" {
				doc.Center(company.CompanyWebsite)
			}
		}
		if company.ReceiptHeader != "" {
			doc.Center(company.ReceiptHeader)
		}
	}

	doc.Separator('=')
	doc.KeyValue("No", data.TransactionID)
	doc.KeyValue("Tanggal", data.Date+" "+data.Time)
	doc.KeyValue("Kasir", data.Cashier)
	if data.Customer != "" {
		doc.KeyValue("Pelanggan", data.Customer)
	}
	doc.Separator('-')

	if len(data.Items) == 0 {
		doc.Center(NoItemsPlaceholder)
	}
	for _, item := range data.Items {
		doc.Line(item.Name)
		qtyLine := fmt.Sprintf("%d x %s = %s",
			item.Quantity,
			FormatNumber(item.Price, decimals),
			FormatNumber(item.Total, decimals))
		if tpl == TemplateDetailed {
			doc.KeyValue(fmt.Sprintf("%d x %s", item.Quantity, FormatNumber(item.Price, decimals)),
				FormatNumber(item.Total, decimals))
		} else {
			doc.Line(qtyLine)
		}
	}

	doc.Separator('-')
	doc.KeyValue("Subtotal", FormatNumber(data.Subtotal, decimals))
	if data.Discount > 0 {
		doc.KeyValue("Diskon", "-"+FormatNumber(data.Discount, decimals))
	}
	if data.Tax > 0 {
		taxName := company.TaxName
		if taxName == "" {
			taxName = "Pajak"
		}
		doc.KeyValue(taxName, FormatNumber(data.Tax, decimals))
	}
	doc.KeyValue("TOTAL", FormatNumber(data.Total, decimals))

	payLabel := "Bayar"
	if data.PaymentMethod != "" {
		payLabel = "Bayar (" + data.PaymentMethod + ")"
	}
	doc.KeyValue(payLabel, FormatNumber(data.PaidAmount, decimals))
	doc.KeyValue("Kembali", FormatNumber(data.Change, decimals))
	doc.Separator('=')

	if customerCopy {
		doc.Center(CustomerCopyBanner)
	}
	if printer.PrintFooter && data.FooterText != "" {
		doc.Center(data.FooterText)
	}

	return doc.String()
}

func preBlock(text string) string {
	return "<pre>" + escapeHTML(text) + "</pre>"
}
