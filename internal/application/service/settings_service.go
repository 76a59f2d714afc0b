package service

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/SunnFlower47/kasir-print-service/internal/domain/entity"
	"github.com/SunnFlower47/kasir-print-service/internal/infrastructure/backendapi"
)

// SettingsAPI is the slice of the backend client the resolver needs.
type SettingsAPI interface {
	FetchSettings(ctx context.Context) (map[string][]backendapi.SettingEntry, error)
	FetchOutlet(ctx context.Context, id string) (*entity.Outlet, error)
}

// printerKeys is the fixed key set that routes a settings entry into
// PrinterSettings. Everything else lands in CompanySettings.
var printerKeys = map[string]bool{
	"printer_name":        true,
	"printer_type":        true,
	"paper_size":          true,
	"print_logo":          true,
	"print_header":        true,
	"print_footer":        true,
	"auto_print":          true,
	"print_customer_copy": true,
	"font_size":           true,
	"print_copies":        true,
	"display_scale":       true,
}

// SettingsService resolves the three configuration layers (hard-coded
// defaults, the backend settings store, an optional outlet record) into the
// PrinterSettings/CompanySettings pair used by a print call.
//
// The two cached snapshots are replaced atomically by Load and only read
// everywhere else, so concurrent prints are safe against each other; a reload
// concurrent with a print simply decides which snapshot that print sees.
type SettingsService struct {
	api    SettingsAPI
	logger *zap.Logger

	mu      sync.RWMutex
	loaded  bool
	printer entity.PrinterSettings
	company entity.CompanySettings
}

// NewSettingsService creates a settings resolver around the backend client.
func NewSettingsService(api SettingsAPI, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		api:     api,
		logger:  logger.Named("settings"),
		printer: entity.DefaultPrinterSettings(),
		company: entity.DefaultCompanySettings(),
	}
}

// Load fetches the settings store and replaces both cached snapshots. A
// transport failure is not an error: the service must always be able to print
// something, so it logs and substitutes the full hard-coded defaults instead.
func (s *SettingsService) Load(ctx context.Context) {
	printer := entity.DefaultPrinterSettings()
	company := entity.DefaultCompanySettings()

	groups, err := s.api.FetchSettings(ctx)
	if err != nil {
		s.logger.Warn("settings fetch failed, using defaults", zap.Error(err))
	} else {
		for _, entries := range groups {
			for _, e := range entries {
				value, ok := s.coerce(e)
				if !ok {
					continue
				}
				if printerKeys[e.Key] {
					applyPrinterSetting(&printer, e.Key, value)
				} else {
					applyCompanySetting(&company, e.Key, value)
				}
			}
		}
	}

	s.mu.Lock()
	s.printer = printer
	s.company = company
	s.loaded = true
	s.mu.Unlock()
}

// PrinterSettings returns a copy of the current printer snapshot, loading the
// store first if it has never been loaded.
func (s *SettingsService) PrinterSettings(ctx context.Context) entity.PrinterSettings {
	s.ensureLoaded(ctx)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.printer
}

// CompanySettings returns the branding configuration for one print call. When
// an outlet id is given, the outlet record is fetched and merged on top of the
// cached company snapshot; the merge is computed fresh per call and never
// written back, so concurrent calls with different outlets do not interfere.
// An outlet fetch failure degrades to the cached snapshot unchanged.
func (s *SettingsService) CompanySettings(ctx context.Context, outletID string) entity.CompanySettings {
	s.ensureLoaded(ctx)

	s.mu.RLock()
	company := s.company
	s.mu.RUnlock()

	if outletID == "" {
		return company
	}

	outlet, err := s.api.FetchOutlet(ctx, outletID)
	if err != nil || outlet == nil {
		s.logger.Warn("outlet fetch failed, keeping company settings",
			zap.String("outlet_id", outletID), zap.Error(err))
		return company
	}

	return MergeOutlet(company, *outlet)
}

func (s *SettingsService) ensureLoaded(ctx context.Context) {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if !loaded {
		s.Load(ctx)
	}
}

// MergeOutlet overlays an outlet's identity fields onto the company settings.
//
// Precedence, per field: outlet value (only if non-empty) > company settings >
// hard default. App-level fields with no outlet equivalent (app name, receipt
// header/footer, tax configuration, currency formatting) always come from the
// company settings.
func MergeOutlet(company entity.CompanySettings, outlet entity.Outlet) entity.CompanySettings {
	merged := company
	if outlet.Name != "" {
		merged.CompanyName = outlet.Name
	}
	if outlet.Address != "" {
		merged.CompanyAddress = outlet.Address
	}
	if outlet.Phone != "" {
		merged.CompanyPhone = outlet.Phone
	}
	if outlet.Email != "" {
		merged.CompanyEmail = outlet.Email
	}
	if outlet.Website != "" {
		merged.CompanyWebsite = outlet.Website
	}
	if outlet.TaxID != "" {
		merged.CompanyTaxID = outlet.TaxID
	}
	if outlet.Logo != "" {
		merged.CompanyLogo = outlet.Logo
	}
	return merged
}

// coerce applies the entry's declared type to its raw value. A json entry
// that fails to parse is discarded with a warning rather than treated as an
// error; a declared type that does not match the stored value falls back
// leniently (booleans become false, integers keep the field default).
func (s *SettingsService) coerce(e backendapi.SettingEntry) (any, bool) {
	switch e.Type {
	case "boolean":
		switch v := e.Value.(type) {
		case bool:
			return v, true
		case string:
			return v == "1", true
		default:
			return false, true
		}
	case "integer":
		switch v := e.Value.(type) {
		case float64:
			return int(v), true
		case string:
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, true // nil keeps the field default in apply
			}
			return n, true
		default:
			return nil, true
		}
	case "json":
		if v, ok := e.Value.(string); ok {
			var parsed any
			if err := json.Unmarshal([]byte(v), &parsed); err != nil {
				s.logger.Warn("discarding unparsable json setting",
					zap.String("key", e.Key), zap.Error(err))
				return nil, false
			}
			return parsed, true
		}
		return e.Value, true
	default:
		return asString(e.Value), true
	}
}

func applyPrinterSetting(p *entity.PrinterSettings, key string, v any) {
	switch key {
	case "printer_name":
		setString(&p.PrinterName, v)
	case "printer_type":
		setString(&p.PrinterType, v)
	case "paper_size":
		if s := asString(v); s == entity.PaperSize58mm || s == entity.PaperSize80mm {
			p.PaperSize = s
		}
	case "print_logo":
		setBool(&p.PrintLogo, v)
	case "print_header":
		setBool(&p.PrintHeader, v)
	case "print_footer":
		setBool(&p.PrintFooter, v)
	case "auto_print":
		setBool(&p.AutoPrint, v)
	case "print_customer_copy":
		setBool(&p.PrintCustomerCopy, v)
	case "font_size":
		switch asString(v) {
		case entity.FontSizeSmall, entity.FontSizeMedium, entity.FontSizeLarge:
			p.FontSize = asString(v)
		}
	case "print_copies":
		if n, ok := asInt(v); ok && n >= 1 {
			p.PrintCopies = n
		}
	case "display_scale":
		if n, ok := asInt(v); ok && n > 0 {
			p.DisplayScale = n
		}
	}
}

func applyCompanySetting(c *entity.CompanySettings, key string, v any) {
	switch key {
	case "company_name":
		setString(&c.CompanyName, v)
	case "company_address":
		setString(&c.CompanyAddress, v)
	case "company_phone":
		setString(&c.CompanyPhone, v)
	case "company_email":
		setString(&c.CompanyEmail, v)
	case "company_website":
		setString(&c.CompanyWebsite, v)
	case "company_tax_id":
		setString(&c.CompanyTaxID, v)
	case "company_logo":
		setString(&c.CompanyLogo, v)
	case "app_name":
		setString(&c.AppName, v)
	case "receipt_header":
		setString(&c.ReceiptHeader, v)
	case "receipt_footer":
		setString(&c.ReceiptFooter, v)
	case "tax_enabled":
		setBool(&c.TaxEnabled, v)
	case "tax_name":
		setString(&c.TaxName, v)
	case "tax_rate":
		if f, ok := asFloat(v); ok && f >= 0 {
			c.TaxRate = f
		}
	case "currency_symbol":
		setString(&c.CurrencySymbol, v)
	case "currency_position":
		if s := asString(v); s == "before" || s == "after" {
			c.CurrencyPosition = s
		}
	case "currency_decimals":
		if n, ok := asInt(v); ok && n >= 0 {
			c.CurrencyDecimals = n
		}
	}
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "1"
		}
		return "0"
	default:
		return ""
	}
}

func asInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case float64:
		return int(t), true
	case string:
		n, err := strconv.Atoi(t)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func setString(dst *string, v any) {
	if s := asString(v); s != "" {
		*dst = s
	}
}

func setBool(dst *bool, v any) {
	if b, ok := v.(bool); ok {
		*dst = b
	}
}
