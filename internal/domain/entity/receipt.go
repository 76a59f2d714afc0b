package entity

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"qty"`
	Price    float64 `json:"price"`
	Total    float64 `json:"total"`
}

// ReceiptData is a value object representing one completed sale, normalized for
// printing. It is NOT a database entity — the calling UI composes it from an
// already-fetched transaction and hands it to the print pipeline.
//
// The pipeline trusts the caller's arithmetic: total = subtotal - discount + tax
// and change = paid_amount - total are expected but not enforced here.
type ReceiptData struct {
	TransactionID string        `json:"transaction_id"`
	Date          string        `json:"date"`
	Time          string        `json:"time"`
	Cashier       string        `json:"cashier,omitempty"`
	Customer      string        `json:"customer,omitempty"`
	Items         []ReceiptItem `json:"items"`
	Subtotal      float64       `json:"subtotal"`
	Tax           float64       `json:"tax"`
	Discount      float64       `json:"discount"`
	Total         float64       `json:"total"`
	PaymentMethod string        `json:"payment_method,omitempty"`
	PaidAmount    float64       `json:"paid_amount"`
	Change        float64       `json:"change"`

	// Branding fields. When left blank by the caller they are filled from the
	// resolved company settings before rendering.
	CompanyName    string `json:"company_name,omitempty"`
	CompanyAddress string `json:"company_address,omitempty"`
	CompanyPhone   string `json:"company_phone,omitempty"`
	FooterText     string `json:"footer_text,omitempty"`
}

// Outlet is a single physical store/branch as returned by the backend. Its
// non-empty fields override company-level branding for receipts issued from it.
// This service only ever reads outlets; it never writes them back.
type Outlet struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Website string `json:"website"`
	TaxID   string `json:"tax_id"`
	Logo    string `json:"logo"`
}
