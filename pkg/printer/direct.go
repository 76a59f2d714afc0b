package printer

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// directScale is the fixed scale factor for bridge-delivered thermal text.
const directScale = 85

// thermalHints are printer-name fragments that suggest a thermal/POS device.
var thermalHints = []string{"pos", "thermal", "58", "80", "tm-", "rp"}

// ThermalName reports whether a configured printer name suggests a
// thermal/POS device.
func ThermalName(name string) bool {
	lower := strings.ToLower(name)
	for _, hint := range thermalHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

// DirectBackend is the highest-priority strategy: it pushes the fixed-width
// receipt text straight at a thermal target. A configured raw device gets
// ESC/POS bytes; otherwise, when the printer name looks thermal and a bridge
// is present, the text goes through the bridge's print-content capability at
// a fixed 85% scale. Its failures are swallowed by the chain, which simply
// moves on.
type DirectBackend struct {
	device Device
	bridge Bridge
	logger *zap.Logger
}

func NewDirectBackend(device Device, bridge Bridge, logger *zap.Logger) *DirectBackend {
	return &DirectBackend{
		device: device,
		bridge: bridge,
		logger: logger.Named("direct"),
	}
}

func (b *DirectBackend) Name() string { return "direct" }

func (b *DirectBackend) Available(job *Job) bool {
	if job.PlainText == "" {
		return false
	}
	if b.device != nil && b.device.Connected() {
		return true
	}
	return b.bridge != nil && b.bridge.Available() && ThermalName(job.Settings.PrinterName)
}

func (b *DirectBackend) Print(ctx context.Context, job *Job) error {
	if b.device != nil && b.device.Connected() {
		data := EncodeReceipt(job.PlainText, job.Settings.FontSize)
		if err := b.device.Write(data); err != nil {
			return fmt.Errorf("direct device print: %w", err)
		}
		b.logger.Debug("printed via raw device",
			zap.String("transaction_id", job.TransactionID))
		return nil
	}

	// The device may disconnect between the availability probe and this
	// call, so the bridge path has to be re-checked here.
	if b.bridge == nil {
		return fmt.Errorf("direct print: device disconnected and no bridge configured")
	}

	res, err := b.bridge.PrintContent(ctx, ContentRequest{
		Content:     job.PlainText,
		PrinterName: job.Settings.PrinterName,
		Scale:       directScale,
		Copies:      1,
	})
	if err != nil {
		return fmt.Errorf("direct bridge print: %w", err)
	}
	if !res.Success {
		return fmt.Errorf("direct bridge print: %s", res.Error)
	}
	return nil
}
