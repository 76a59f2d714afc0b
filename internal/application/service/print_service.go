package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SunnFlower47/kasir-print-service/internal/domain/entity"
	"github.com/SunnFlower47/kasir-print-service/internal/domain/repository"
	"github.com/SunnFlower47/kasir-print-service/pkg/notify"
	"github.com/SunnFlower47/kasir-print-service/pkg/prefs"
	"github.com/SunnFlower47/kasir-print-service/pkg/printer"
	"github.com/SunnFlower47/kasir-print-service/pkg/receipt"
)

// OutletProvider supplies the outlet a print call belongs to when the caller
// does not say. It stands in for the cached session/user record of the
// back-office UI.
type OutletProvider interface {
	CurrentOutletID() string
}

// StaticOutletProvider always answers with one configured outlet id,
// possibly empty.
type StaticOutletProvider string

func (p StaticOutletProvider) CurrentOutletID() string { return string(p) }

// PrintOptions are the per-call knobs of PrintReceipt. Zero values mean
// "resolve from session and persisted preference".
type PrintOptions struct {
	OutletID string
	Template string
}

// PrintOutcome summarizes a completed print call.
type PrintOutcome struct {
	JobID        uuid.UUID `json:"job_id"`
	Template     string    `json:"template"`
	Copies       int       `json:"copies"`
	CustomerCopy bool      `json:"customer_copy"`
	Backend      string    `json:"backend"`
}

// BackendStatus reports one chain entry's availability for the current
// configuration.
type BackendStatus struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

// StatusReport is the full status payload: per-backend availability plus the
// auto_print flag the POS frontend polls to decide whether to print without a
// cashier confirmation.
type StatusReport struct {
	AutoPrint bool            `json:"auto_print"`
	Backends  []BackendStatus `json:"backends"`
}

// PrintService is the dispatcher: it resolves settings, renders the receipt,
// and pushes the required number of copies through the backend chain,
// strictly sequentially. Copies are never printed concurrently — some host
// bridges are not safe to invoke in parallel, and the customer copy has
// different content than the primary copies.
type PrintService struct {
	settings  *SettingsService
	formatter *receipt.Formatter
	chain     *printer.Chain
	backends  []printer.Backend
	prefStore *prefs.Store
	jobs      repository.PrintJobRepository
	outlets   OutletProvider
	notifier  notify.Notifier
	logger    *zap.Logger
}

func NewPrintService(
	settings *SettingsService,
	formatter *receipt.Formatter,
	prefStore *prefs.Store,
	jobs repository.PrintJobRepository,
	outlets OutletProvider,
	notifier notify.Notifier,
	logger *zap.Logger,
	backends ...printer.Backend,
) *PrintService {
	return &PrintService{
		settings:  settings,
		formatter: formatter,
		chain:     printer.NewChain(logger, backends...),
		backends:  backends,
		prefStore: prefStore,
		jobs:      jobs,
		outlets:   outlets,
		notifier:  notifier,
		logger:    logger.Named("print"),
	}
}

// PrintReceipt runs the whole pipeline for one transaction: settings
// resolution strictly precedes rendering, which strictly precedes dispatch.
// It delivers print_copies primary outputs plus, when configured, one
// customer-flagged copy after the first delivery.
func (s *PrintService) PrintReceipt(ctx context.Context, data entity.ReceiptData, opts PrintOptions) (*PrintOutcome, error) {
	jobID := uuid.New()
	tpl := s.resolveTemplate(opts.Template)

	outletID := opts.OutletID
	if outletID == "" && s.outlets != nil {
		outletID = s.outlets.CurrentOutletID()
	}

	printerSettings := s.settings.PrinterSettings(ctx)
	company := s.settings.CompanySettings(ctx, outletID)
	s.formatter.Normalize(&data, company)

	primary, err := s.formatter.Render(data, printerSettings, company, tpl, false)
	if err != nil {
		return nil, s.fail(ctx, jobID, data, outletID, tpl, printerSettings, "", fmt.Errorf("render receipt: %w", err))
	}
	if primary.HTML == "" {
		// Formatter invariant violated; fail fast before touching any backend.
		return nil, s.fail(ctx, jobID, data, outletID, tpl, printerSettings, "", printer.ErrEmptyContent)
	}

	copies := printerSettings.PrintCopies
	if copies < 1 {
		copies = 1
	}

	// The client-local preference only wins over the backend-configured
	// display scale when one was actually persisted.
	scale := printerSettings.DisplayScale
	if p, ok := s.prefStore.Persisted(); ok && p.Scale > 0 {
		scale = p.Scale
	}

	var delivered string
	for i := 1; i <= copies; i++ {
		backend, err := s.chain.Deliver(ctx, s.buildJob(jobID, data, printerSettings, primary, scale, false))
		if err != nil {
			return nil, s.fail(ctx, jobID, data, outletID, tpl, printerSettings, delivered, err)
		}
		delivered = backend

		if i == 1 && printerSettings.PrintCustomerCopy {
			copyContent, err := s.formatter.Render(data, printerSettings, company, tpl, true)
			if err != nil {
				return nil, s.fail(ctx, jobID, data, outletID, tpl, printerSettings, delivered, fmt.Errorf("render customer copy: %w", err))
			}
			backend, err := s.chain.Deliver(ctx, s.buildJob(jobID, data, printerSettings, copyContent, scale, true))
			if err != nil {
				return nil, s.fail(ctx, jobID, data, outletID, tpl, printerSettings, delivered, err)
			}
			delivered = backend
		}
	}

	outcome := &PrintOutcome{
		JobID:        jobID,
		Template:     string(tpl),
		Copies:       copies,
		CustomerCopy: printerSettings.PrintCustomerCopy,
		Backend:      delivered,
	}
	s.record(ctx, &entity.PrintJob{
		ID:            jobID,
		TransactionID: data.TransactionID,
		OutletID:      outletID,
		Template:      string(tpl),
		Copies:        copies,
		CustomerCopy:  printerSettings.PrintCustomerCopy,
		Backend:       delivered,
		Status:        entity.PrintJobStatusPrinted,
	})
	return outcome, nil
}

// TestPrint pushes a fixed sample receipt through the pipeline so a cashier
// can verify the physical setup.
func (s *PrintService) TestPrint(ctx context.Context) (*entity.ReceiptData, *PrintOutcome, error) {
	data := entity.ReceiptData{
		TransactionID: "TEST-001",
		Cashier:       "System",
		Items: []entity.ReceiptItem{
			{Name: "Item Uji 1", Quantity: 1, Price: 10000, Total: 10000},
			{Name: "Item Uji 2", Quantity: 2, Price: 5000, Total: 10000},
		},
		Subtotal:      20000,
		Total:         20000,
		PaymentMethod: "Tunai",
		PaidAmount:    20000,
	}
	outcome, err := s.PrintReceipt(ctx, data, PrintOptions{})
	return &data, outcome, err
}

// Status reports each backend's availability for the current configuration,
// along with the resolved auto_print setting.
func (s *PrintService) Status(ctx context.Context) *StatusReport {
	settings := s.settings.PrinterSettings(ctx)
	job := &printer.Job{
		PlainText: "status",
		Settings:  settings,
	}
	report := &StatusReport{
		AutoPrint: settings.AutoPrint,
		Backends:  make([]BackendStatus, 0, len(s.backends)),
	}
	for _, b := range s.backends {
		report.Backends = append(report.Backends, BackendStatus{
			Name:      b.Name(),
			Available: b.Available(job),
		})
	}
	return report
}

// Jobs lists the print audit trail, newest first.
func (s *PrintService) Jobs(ctx context.Context, offset, limit int) ([]entity.PrintJob, int64, error) {
	return s.jobs.List(ctx, offset, limit)
}

func (s *PrintService) resolveTemplate(requested string) receipt.Template {
	if tpl, ok := receipt.ParseTemplate(requested); ok {
		return tpl
	}
	if tpl, ok := receipt.ParseTemplate(s.prefStore.Load().Template); ok {
		return tpl
	}
	return receipt.Template58mm
}

func (s *PrintService) buildJob(id uuid.UUID, data entity.ReceiptData, settings entity.PrinterSettings, content *receipt.Rendered, scale int, customerCopy bool) *printer.Job {
	return &printer.Job{
		ID:            id,
		TransactionID: data.TransactionID,
		HTML:          content.HTML,
		PlainText:     content.PlainText,
		Settings:      settings,
		Scale:         scale,
		CustomerCopy:  customerCopy,
	}
}

// fail records and surfaces one failed print call. There is no automatic
// retry across strategy chains: once the chain has thrown past its own
// fallback points, the cashier decides what happens next.
func (s *PrintService) fail(ctx context.Context, jobID uuid.UUID, data entity.ReceiptData, outletID string, tpl receipt.Template, settings entity.PrinterSettings, backend string, err error) error {
	s.logger.Error("print call failed",
		zap.String("transaction_id", data.TransactionID),
		zap.String("template", string(tpl)),
		zap.Error(err))
	s.record(ctx, &entity.PrintJob{
		ID:            jobID,
		TransactionID: data.TransactionID,
		OutletID:      outletID,
		Template:      string(tpl),
		Copies:        settings.PrintCopies,
		CustomerCopy:  settings.PrintCustomerCopy,
		Backend:       backend,
		Status:        entity.PrintJobStatusFailed,
		Error:         err.Error(),
	})
	if s.notifier != nil {
		s.notifier.PrintFailed(data.TransactionID, "Struk gagal dicetak")
	}
	return fmt.Errorf("print receipt %s: %w", data.TransactionID, err)
}

func (s *PrintService) record(ctx context.Context, job *entity.PrintJob) {
	if s.jobs == nil {
		return
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		s.logger.Warn("failed to record print job", zap.Error(err))
	}
}
