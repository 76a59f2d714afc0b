package receipt

import (
	"html/template"
	"strings"

	"github.com/SunnFlower47/kasir-print-service/internal/domain/entity"
)

// invoiceView is the pre-formatted data handed to the invoice template. All
// money values are formatted strings so the template stays free of locale
// logic.
type invoiceView struct {
	TransactionID string
	Date          string
	Time          string
	Cashier       string
	Customer      string
	Logo          string
	CompanyName   string
	Address       string
	Phone         string
	Email         string
	TaxID         string
	Items         []invoiceItemView
	Subtotal      string
	HasDiscount   bool
	Discount      string
	HasTax        bool
	TaxName       string
	Tax           string
	Total         string
	PaymentMethod string
	Paid          string
	Change        string
	Footer        string
}

type invoiceItemView struct {
	Name     string
	Quantity int
	Price    string
	Total    string
}

var invoiceTmpl = template.Must(template.New("invoice").Parse(`<div class="invoice">
  <div class="invoice-header">
    <h1>INVOICE</h1>
    {{if .Logo}}<img class="logo" src="{{.Logo}}" alt="{{.CompanyName}}">{{end}}
    <div class="company">
      <strong>{{.CompanyName}}</strong><br>
      {{if .Address}}{{.Address}}<br>{{end}}
      {{if .Phone}}Telp: {{.Phone}}<br>{{end}}
      {{if .Email}}{{.Email}}<br>{{end}}
      {{if .TaxID}}NPWP: {{.TaxID}}{{end}}
    </div>
  </div>
  <table class="meta">
    <tr><td>No. Transaksi</td><td>{{.TransactionID}}</td></tr>
    <tr><td>Tanggal</td><td>{{.Date}} {{.Time}}</td></tr>
    <tr><td>Kasir</td><td>{{.Cashier}}</td></tr>
    {{if .Customer}}<tr><td>Pelanggan</td><td>{{.Customer}}</td></tr>{{end}}
  </table>
  <table class="items">
    <thead>
      <tr><th>Item</th><th>Qty</th><th>Harga</th><th>Jumlah</th></tr>
    </thead>
    <tbody>
      {{range .Items}}<tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td>{{.Price}}</td><td>{{.Total}}</td></tr>
      {{else}}<tr><td colspan="4" class="empty">` + NoItemsPlaceholder + `</td></tr>
      {{end}}
    </tbody>
  </table>
  <table class="totals">
    <tr><td>Subtotal</td><td>{{.Subtotal}}</td></tr>
    {{if .HasDiscount}}<tr><td>Diskon</td><td>-{{.Discount}}</td></tr>{{end}}
    {{if .HasTax}}<tr><td>{{.TaxName}}</td><td>{{.Tax}}</td></tr>{{end}}
    <tr class="grand"><td>TOTAL</td><td>{{.Total}}</td></tr>
    <tr><td>Bayar{{if .PaymentMethod}} ({{.PaymentMethod}}){{end}}</td><td>{{.Paid}}</td></tr>
    <tr><td>Kembali</td><td>{{.Change}}</td></tr>
  </table>
  {{if .Footer}}<p class="footer">{{.Footer}}</p>{{end}}
</div>`))

func (f *Formatter) renderInvoice(data entity.ReceiptData, printer entity.PrinterSettings, company entity.CompanySettings) (string, error) {
	view := invoiceView{
		TransactionID: data.TransactionID,
		Date:          data.Date,
		Time:          data.Time,
		Cashier:       data.Cashier,
		Customer:      data.Customer,
		CompanyName:   data.CompanyName,
		Address:       data.CompanyAddress,
		Phone:         data.CompanyPhone,
		Email:         company.CompanyEmail,
		TaxID:         company.CompanyTaxID,
		Subtotal:      FormatMoney(data.Subtotal, company),
		HasDiscount:   data.Discount > 0,
		Discount:      FormatMoney(data.Discount, company),
		HasTax:        data.Tax > 0,
		TaxName:       company.TaxName,
		Tax:           FormatMoney(data.Tax, company),
		Total:         FormatMoney(data.Total, company),
		PaymentMethod: data.PaymentMethod,
		Paid:          FormatMoney(data.PaidAmount, company),
		Change:        FormatMoney(data.Change, company),
		Footer:        data.FooterText,
	}
	if view.TaxName == "" {
		view.TaxName = "Pajak"
	}
	if printer.PrintLogo {
		view.Logo = company.CompanyLogo
	}
	for _, item := range data.Items {
		view.Items = append(view.Items, invoiceItemView{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    FormatMoney(item.Price, company),
			Total:    FormatMoney(item.Total, company),
		})
	}

	var b strings.Builder
	if err := invoiceTmpl.Execute(&b, view); err != nil {
		return "", err
	}
	return b.String(), nil
}
