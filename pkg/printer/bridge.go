package printer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Capability names one of the host bridge's optional print functions.
type Capability string

const (
	// CapPrintContent prints rendered content on a named printer, silently.
	CapPrintContent Capability = "print_content"
	// CapPrintDirect prints the current view directly, silently.
	CapPrintDirect Capability = "print_direct"
	// CapPrintReceipt is the legacy call accepting structured receipt data
	// or raw content.
	CapPrintReceipt Capability = "print_receipt"
)

// Result is the bridge's answer to any print call.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// ContentRequest asks the bridge to print rendered content.
type ContentRequest struct {
	Content     string `json:"content"`
	PrinterName string `json:"printer_name,omitempty"`
	Scale       int    `json:"scale,omitempty"`
	Copies      int    `json:"copies,omitempty"`
}

// ReceiptRequest is the legacy print call: either structured receipt fields
// or raw content, whichever the caller has.
type ReceiptRequest struct {
	Receipt any    `json:"receipt,omitempty"`
	Content string `json:"content,omitempty"`
}

// Bridge is the host print capability surface. It only exists when the
// application runs next to a packaged desktop wrapper; absence is a normal,
// expected condition, not an error.
type Bridge interface {
	// Available reports whether the bridge is reachable at all.
	Available() bool
	// Supports reports whether the bridge exposes the given capability.
	Supports(c Capability) bool
	PrintContent(ctx context.Context, req ContentRequest) (*Result, error)
	PrintDirect(ctx context.Context) (*Result, error)
	PrintReceipt(ctx context.Context, req ReceiptRequest) (*Result, error)
}

const bridgeProbeTTL = 5 * time.Second

// HTTPBridge talks to a local print agent over HTTP. Availability and the
// capability set come from its health endpoint and are cached briefly so a
// multi-copy print does not re-probe per copy.
type HTTPBridge struct {
	http   *resty.Client
	logger *zap.Logger

	mu       sync.Mutex
	probedAt time.Time
	alive    bool
	caps     map[Capability]bool
}

// NewHTTPBridge creates a bridge client for the given agent URL. Returns nil
// when the URL is empty, which the backends treat as "no bridge in this
// environment".
func NewHTTPBridge(baseURL string, logger *zap.Logger) *HTTPBridge {
	if baseURL == "" {
		return nil
	}
	return &HTTPBridge{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(5 * time.Second),
		logger: logger.Named("bridge"),
	}
}

type bridgeHealth struct {
	Status       string   `json:"status"`
	Capabilities []string `json:"capabilities"`
}

func (b *HTTPBridge) Available() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if time.Since(b.probedAt) < bridgeProbeTTL {
		return b.alive
	}
	b.probedAt = time.Now()
	b.alive = false
	b.caps = nil

	var health bridgeHealth
	resp, err := b.http.R().
		SetResult(&health).
		Get("/health")
	if err != nil || resp.IsError() {
		return false
	}

	b.alive = true
	// An agent that does not list capabilities is assumed to have all three.
	if len(health.Capabilities) == 0 {
		b.caps = map[Capability]bool{
			CapPrintContent: true,
			CapPrintDirect:  true,
			CapPrintReceipt: true,
		}
	} else {
		b.caps = make(map[Capability]bool, len(health.Capabilities))
		for _, c := range health.Capabilities {
			b.caps[Capability(c)] = true
		}
	}
	return true
}

func (b *HTTPBridge) Supports(c Capability) bool {
	if !b.Available() {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.caps[c]
}

func (b *HTTPBridge) PrintContent(ctx context.Context, req ContentRequest) (*Result, error) {
	return b.post(ctx, "/print/content", req)
}

func (b *HTTPBridge) PrintDirect(ctx context.Context) (*Result, error) {
	return b.post(ctx, "/print/direct", nil)
}

func (b *HTTPBridge) PrintReceipt(ctx context.Context, req ReceiptRequest) (*Result, error) {
	return b.post(ctx, "/print/receipt", req)
}

func (b *HTTPBridge) post(ctx context.Context, path string, body any) (*Result, error) {
	var result Result
	r := b.http.R().SetContext(ctx).SetResult(&result)
	if body != nil {
		r.SetBody(body)
	}
	resp, err := r.Post(path)
	if err != nil {
		return nil, fmt.Errorf("printer: bridge call %s: %w", path, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("printer: bridge call %s: %s", path, resp.Status())
	}
	return &result, nil
}
