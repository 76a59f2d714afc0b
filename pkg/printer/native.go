package printer

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// NativeBackend delivers through the host print bridge when one is present.
// It walks the bridge's capabilities in preference order — print content
// (silent), print direct (silent), legacy print receipt — logging each
// sub-attempt's failure and trying the next. All of them failing is a
// delivery error, unlike DirectBackend whose failures the chain just skips
// past.
type NativeBackend struct {
	bridge Bridge
	logger *zap.Logger
}

func NewNativeBackend(bridge Bridge, logger *zap.Logger) *NativeBackend {
	return &NativeBackend{
		bridge: bridge,
		logger: logger.Named("native"),
	}
}

func (b *NativeBackend) Name() string { return "native" }

func (b *NativeBackend) Available(job *Job) bool {
	return b.bridge != nil && b.bridge.Available()
}

func (b *NativeBackend) Print(ctx context.Context, job *Job) error {
	var lastErr error

	if b.bridge.Supports(CapPrintContent) {
		res, err := b.bridge.PrintContent(ctx, ContentRequest{
			Content:     job.HTML,
			PrinterName: job.Settings.PrinterName,
			Scale:       job.Scale,
			Copies:      1,
		})
		if err == nil && res.Success {
			return nil
		}
		lastErr = resultError("print content", res, err)
		b.logger.Warn("bridge print content failed", zap.Error(lastErr))
	}

	if b.bridge.Supports(CapPrintDirect) {
		res, err := b.bridge.PrintDirect(ctx)
		if err == nil && res.Success {
			return nil
		}
		lastErr = resultError("print direct", res, err)
		b.logger.Warn("bridge print direct failed", zap.Error(lastErr))
	}

	if b.bridge.Supports(CapPrintReceipt) {
		res, err := b.bridge.PrintReceipt(ctx, ReceiptRequest{Content: job.HTML})
		if err == nil && res.Success {
			return nil
		}
		lastErr = resultError("print receipt", res, err)
		b.logger.Warn("bridge print receipt failed", zap.Error(lastErr))
	}

	if lastErr == nil {
		return errors.New("native print: bridge exposes no print capability")
	}
	return fmt.Errorf("native print: all bridge capabilities failed: %w", lastErr)
}

func resultError(op string, res *Result, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res != nil && res.Error != "" {
		return fmt.Errorf("%s: %s", op, res.Error)
	}
	return fmt.Errorf("%s: bridge reported failure", op)
}
