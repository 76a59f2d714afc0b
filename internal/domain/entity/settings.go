package entity

// Font sizes for the thermal receipt templates.
const (
	FontSizeSmall  = "small"
	FontSizeMedium = "medium"
	FontSizeLarge  = "large"
)

// Paper sizes supported by the thermal templates.
const (
	PaperSize58mm = "58mm"
	PaperSize80mm = "80mm"
)

// PrinterSettings is the printing half of the resolved configuration. It is
// loaded once from the backend settings store, replaced atomically on every
// successful reload, and never partially updated.
type PrinterSettings struct {
	PrinterName       string `json:"printer_name"`
	PrinterType       string `json:"printer_type"`
	PaperSize         string `json:"paper_size"`
	PrintLogo         bool   `json:"print_logo"`
	PrintHeader       bool   `json:"print_header"`
	PrintFooter       bool   `json:"print_footer"`
	AutoPrint         bool   `json:"auto_print"`
	PrintCustomerCopy bool   `json:"print_customer_copy"`
	FontSize          string `json:"font_size"`
	PrintCopies       int    `json:"print_copies"`
	DisplayScale      int    `json:"display_scale"`
}

// CompanySettings is the branding half of the resolved configuration. Same
// load/replace lifecycle as PrinterSettings; an outlet record may additionally
// override the identity fields for a single print call without touching the
// cached copy.
type CompanySettings struct {
	CompanyName    string `json:"company_name"`
	CompanyAddress string `json:"company_address"`
	CompanyPhone   string `json:"company_phone"`
	CompanyEmail   string `json:"company_email"`
	CompanyWebsite string `json:"company_website"`
	CompanyTaxID   string `json:"company_tax_id"`
	CompanyLogo    string `json:"company_logo"`

	AppName       string `json:"app_name"`
	ReceiptHeader string `json:"receipt_header"`
	ReceiptFooter string `json:"receipt_footer"`

	TaxEnabled bool    `json:"tax_enabled"`
	TaxName    string  `json:"tax_name"`
	TaxRate    float64 `json:"tax_rate"`

	CurrencySymbol   string `json:"currency_symbol"`
	CurrencyPosition string `json:"currency_position"` // "before" or "after"
	CurrencyDecimals int    `json:"currency_decimals"`
}

// DefaultPrinterSettings returns the hard-coded bottom layer of the printer
// configuration. Every settings load starts from this and overlays whatever
// the backend returns.
func DefaultPrinterSettings() PrinterSettings {
	return PrinterSettings{
		PrinterName:       "",
		PrinterType:       "thermal",
		PaperSize:         PaperSize58mm,
		PrintLogo:         true,
		PrintHeader:       true,
		PrintFooter:       true,
		AutoPrint:         false,
		PrintCustomerCopy: false,
		FontSize:          FontSizeMedium,
		PrintCopies:       1,
		DisplayScale:      100,
	}
}

// DefaultCompanySettings returns the hard-coded bottom layer of the branding
// configuration.
func DefaultCompanySettings() CompanySettings {
	return CompanySettings{
		CompanyName:      "Kasir POS",
		AppName:          "Kasir POS",
		ReceiptFooter:    "Terima kasih atas kunjungan Anda",
		TaxEnabled:       false,
		TaxName:          "PPN",
		TaxRate:          11,
		CurrencySymbol:   "Rp",
		CurrencyPosition: "before",
		CurrencyDecimals: 0,
	}
}
