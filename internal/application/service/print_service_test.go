package service

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/SunnFlower47/kasir-print-service/internal/domain/entity"
	"github.com/SunnFlower47/kasir-print-service/internal/infrastructure/backendapi"
	infrarepo "github.com/SunnFlower47/kasir-print-service/internal/infrastructure/repository"
	"github.com/SunnFlower47/kasir-print-service/pkg/notify"
	"github.com/SunnFlower47/kasir-print-service/pkg/prefs"
	"github.com/SunnFlower47/kasir-print-service/pkg/printer"
	"github.com/SunnFlower47/kasir-print-service/pkg/receipt"
)

type stubBackend struct {
	name      string
	available bool
	err       error

	mu   sync.Mutex
	jobs []printer.Job
}

func (b *stubBackend) Name() string                  { return b.name }
func (b *stubBackend) Available(_ *printer.Job) bool { return b.available }

func (b *stubBackend) Print(_ context.Context, job *printer.Job) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.jobs = append(b.jobs, *job)
	return b.err
}

func (b *stubBackend) delivered() []printer.Job {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]printer.Job, len(b.jobs))
	copy(out, b.jobs)
	return out
}

type printFixture struct {
	svc     *PrintService
	api     *fakeSettingsAPI
	backend *stubBackend
	capture *notify.Capture
}

func newPrintFixture(t *testing.T, printerEntries []backendapi.SettingEntry) *printFixture {
	t.Helper()
	api := &fakeSettingsAPI{settings: map[string][]backendapi.SettingEntry{
		"printer": printerEntries,
	}}
	backend := &stubBackend{name: "stub", available: true}
	capture := &notify.Capture{}

	svc := NewPrintService(
		NewSettingsService(api, zap.NewNop()),
		receipt.NewFormatter(zap.NewNop()),
		prefs.NewStore(filepath.Join(t.TempDir(), "prefs.json")),
		infrarepo.NewMemoryPrintJobRepository(),
		StaticOutletProvider(""),
		capture,
		zap.NewNop(),
		backend,
	)
	return &printFixture{svc: svc, api: api, backend: backend, capture: capture}
}

func sampleReceipt() entity.ReceiptData {
	return entity.ReceiptData{
		TransactionID: "TRX-001",
		Items: []entity.ReceiptItem{
			{Name: "Kopi", Quantity: 2, Price: 15000, Total: 30000},
		},
		Subtotal:      30000,
		Total:         30000,
		PaymentMethod: "Tunai",
		PaidAmount:    50000,
		Change:        20000,
	}
}

func TestPrintReceiptSingleCopy(t *testing.T) {
	fx := newPrintFixture(t, nil)

	outcome, err := fx.svc.PrintReceipt(context.Background(), sampleReceipt(), PrintOptions{})
	if err != nil {
		t.Fatalf("PrintReceipt() error: %v", err)
	}
	if outcome.Copies != 1 || outcome.CustomerCopy {
		t.Errorf("outcome = %+v, want single copy without customer copy", outcome)
	}
	if outcome.Backend != "stub" {
		t.Errorf("Backend = %q, want stub", outcome.Backend)
	}
	if got := len(fx.backend.delivered()); got != 1 {
		t.Errorf("deliveries = %d, want 1", got)
	}
}

func TestPrintReceiptCopiesAndCustomerCopy(t *testing.T) {
	fx := newPrintFixture(t, []backendapi.SettingEntry{
		{Key: "print_copies", Value: float64(2), Type: "integer"},
		{Key: "print_customer_copy", Value: true, Type: "boolean"},
	})

	outcome, err := fx.svc.PrintReceipt(context.Background(), sampleReceipt(), PrintOptions{})
	if err != nil {
		t.Fatalf("PrintReceipt() error: %v", err)
	}
	if outcome.Copies != 2 || !outcome.CustomerCopy {
		t.Errorf("outcome = %+v, want 2 copies plus customer copy", outcome)
	}

	delivered := fx.backend.delivered()
	if len(delivered) != 3 {
		t.Fatalf("deliveries = %d, want 2 primary + 1 customer copy", len(delivered))
	}
	// The customer copy follows the first primary delivery.
	if delivered[0].CustomerCopy || !delivered[1].CustomerCopy || delivered[2].CustomerCopy {
		t.Errorf("customer copy position wrong: %v, %v, %v",
			delivered[0].CustomerCopy, delivered[1].CustomerCopy, delivered[2].CustomerCopy)
	}
}

func TestPrintReceiptRecordsJob(t *testing.T) {
	fx := newPrintFixture(t, nil)

	if _, err := fx.svc.PrintReceipt(context.Background(), sampleReceipt(), PrintOptions{}); err != nil {
		t.Fatalf("PrintReceipt() error: %v", err)
	}

	jobs, total, err := fx.svc.Jobs(context.Background(), 0, 10)
	if err != nil {
		t.Fatalf("Jobs() error: %v", err)
	}
	if total != 1 || len(jobs) != 1 {
		t.Fatalf("job history = %d entries, want 1", total)
	}
	job := jobs[0]
	if job.TransactionID != "TRX-001" || job.Status != entity.PrintJobStatusPrinted || job.Backend != "stub" {
		t.Errorf("recorded job = %+v, want printed TRX-001 via stub", job)
	}
}

func TestPrintReceiptFailureNotifiesAndRecords(t *testing.T) {
	fx := newPrintFixture(t, nil)
	wantErr := errors.New("paper out")
	fx.backend.err = wantErr

	_, err := fx.svc.PrintReceipt(context.Background(), sampleReceipt(), PrintOptions{})
	if !errors.Is(err, wantErr) {
		t.Fatalf("PrintReceipt() error = %v, want wrapped %v", err, wantErr)
	}
	if fx.capture.Count() != 1 {
		t.Errorf("notifications = %d, want 1", fx.capture.Count())
	}

	jobs, _, err := fx.svc.Jobs(context.Background(), 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 1 || jobs[0].Status != entity.PrintJobStatusFailed {
		t.Errorf("job history = %+v, want one failed entry", jobs)
	}
}

func TestPrintReceiptNoBackendAvailable(t *testing.T) {
	fx := newPrintFixture(t, nil)
	fx.backend.available = false

	_, err := fx.svc.PrintReceipt(context.Background(), sampleReceipt(), PrintOptions{})
	if !errors.Is(err, printer.ErrNoBackendAvailable) {
		t.Errorf("PrintReceipt() error = %v, want ErrNoBackendAvailable", err)
	}
	if got := len(fx.backend.delivered()); got != 0 {
		t.Errorf("deliveries = %d, unavailable backend must not run", got)
	}
}

func TestPrintReceiptTemplateResolution(t *testing.T) {
	t.Run("explicit template wins", func(t *testing.T) {
		fx := newPrintFixture(t, nil)
		outcome, err := fx.svc.PrintReceipt(context.Background(), sampleReceipt(), PrintOptions{Template: "invoice"})
		if err != nil {
			t.Fatal(err)
		}
		if outcome.Template != "invoice" {
			t.Errorf("Template = %q, want invoice", outcome.Template)
		}
		// Invoice output carries no thermal text.
		if delivered := fx.backend.delivered(); delivered[0].PlainText != "" {
			t.Error("invoice job should have no plain text")
		}
	})

	t.Run("persisted preference", func(t *testing.T) {
		fx := newPrintFixture(t, nil)
		if err := fx.svc.prefStore.Save(prefs.PrintPrefs{Template: "detailed", Scale: 100}); err != nil {
			t.Fatal(err)
		}
		outcome, err := fx.svc.PrintReceipt(context.Background(), sampleReceipt(), PrintOptions{})
		if err != nil {
			t.Fatal(err)
		}
		if outcome.Template != "detailed" {
			t.Errorf("Template = %q, want preference detailed", outcome.Template)
		}
	})

	t.Run("unknown falls back to 58mm", func(t *testing.T) {
		fx := newPrintFixture(t, nil)
		outcome, err := fx.svc.PrintReceipt(context.Background(), sampleReceipt(), PrintOptions{Template: "a4"})
		if err != nil {
			t.Fatal(err)
		}
		if outcome.Template != "58mm" {
			t.Errorf("Template = %q, want default 58mm", outcome.Template)
		}
	})
}

func TestPrintReceiptScaleResolution(t *testing.T) {
	t.Run("backend display scale without persisted preference", func(t *testing.T) {
		fx := newPrintFixture(t, []backendapi.SettingEntry{
			{Key: "display_scale", Value: float64(50), Type: "integer"},
		})
		if _, err := fx.svc.PrintReceipt(context.Background(), sampleReceipt(), PrintOptions{}); err != nil {
			t.Fatal(err)
		}
		if got := fx.backend.delivered()[0].Scale; got != 50 {
			t.Errorf("job scale = %d, want configured display scale 50", got)
		}
	})

	t.Run("persisted preference wins", func(t *testing.T) {
		fx := newPrintFixture(t, []backendapi.SettingEntry{
			{Key: "display_scale", Value: float64(50), Type: "integer"},
		})
		if err := fx.svc.prefStore.Save(prefs.PrintPrefs{Template: "58mm", Scale: 80}); err != nil {
			t.Fatal(err)
		}
		if _, err := fx.svc.PrintReceipt(context.Background(), sampleReceipt(), PrintOptions{}); err != nil {
			t.Fatal(err)
		}
		if got := fx.backend.delivered()[0].Scale; got != 80 {
			t.Errorf("job scale = %d, want persisted preference 80", got)
		}
	})
}

func TestPrintReceiptResolvesOutletFromProvider(t *testing.T) {
	fx := newPrintFixture(t, nil)
	fx.api.outlet = &entity.Outlet{ID: "out-9", Name: "Cabang Timur"}
	fx.svc.outlets = StaticOutletProvider("out-9")

	if _, err := fx.svc.PrintReceipt(context.Background(), sampleReceipt(), PrintOptions{}); err != nil {
		t.Fatal(err)
	}
	if fx.api.outletCalls != 1 {
		t.Errorf("outlet fetches = %d, want 1 from the session provider", fx.api.outletCalls)
	}
}

func TestTestPrint(t *testing.T) {
	fx := newPrintFixture(t, nil)

	data, outcome, err := fx.svc.TestPrint(context.Background())
	if err != nil {
		t.Fatalf("TestPrint() error: %v", err)
	}
	if data.TransactionID != "TEST-001" {
		t.Errorf("TransactionID = %q, want TEST-001", data.TransactionID)
	}
	if outcome.Backend != "stub" {
		t.Errorf("Backend = %q, want stub", outcome.Backend)
	}
}

func TestStatus(t *testing.T) {
	fx := newPrintFixture(t, nil)
	fx.backend.available = false

	report := fx.svc.Status(context.Background())
	if len(report.Backends) != 1 {
		t.Fatalf("backends = %d, want 1", len(report.Backends))
	}
	if report.Backends[0].Name != "stub" || report.Backends[0].Available {
		t.Errorf("backend status = %+v, want stub unavailable", report.Backends[0])
	}
	if report.AutoPrint {
		t.Error("auto_print should default to false")
	}
}

func TestStatusAutoPrint(t *testing.T) {
	fx := newPrintFixture(t, []backendapi.SettingEntry{
		{Key: "auto_print", Value: "1", Type: "boolean"},
	})

	if !fx.svc.Status(context.Background()).AutoPrint {
		t.Error("auto_print backend setting should surface in the status report")
	}
}
