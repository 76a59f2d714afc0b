package printer

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/SunnFlower47/kasir-print-service/internal/domain/entity"
)

type fakeDevice struct {
	connected bool
	writeErr  error
	buf       bytes.Buffer
}

func (d *fakeDevice) Write(data []byte) error {
	if d.writeErr != nil {
		return d.writeErr
	}
	d.buf.Write(data)
	return nil
}

func (d *fakeDevice) Close() error    { return nil }
func (d *fakeDevice) Connected() bool { return d.connected }

type fakeBridge struct {
	alive bool
	caps  map[Capability]bool

	contentRes *Result
	contentErr error
	directRes  *Result
	directErr  error
	receiptRes *Result
	receiptErr error

	contentCalls []ContentRequest
	directCalls  int
	receiptCalls int
}

func (b *fakeBridge) Available() bool { return b.alive }

func (b *fakeBridge) Supports(c Capability) bool {
	return b.alive && b.caps[c]
}

func (b *fakeBridge) PrintContent(_ context.Context, req ContentRequest) (*Result, error) {
	b.contentCalls = append(b.contentCalls, req)
	return b.contentRes, b.contentErr
}

func (b *fakeBridge) PrintDirect(_ context.Context) (*Result, error) {
	b.directCalls++
	return b.directRes, b.directErr
}

func (b *fakeBridge) PrintReceipt(_ context.Context, _ ReceiptRequest) (*Result, error) {
	b.receiptCalls++
	return b.receiptRes, b.receiptErr
}

func TestThermalName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"POS-58", true},
		{"Epson TM-T82", true},
		{"Generic Thermal", true},
		{"RP326", true},
		{"printer80mm", true},
		{"HP LaserJet 1020", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ThermalName(tt.name); got != tt.want {
			t.Errorf("ThermalName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDirectBackendAvailable(t *testing.T) {
	job := &Job{PlainText: "x", Settings: entity.PrinterSettings{PrinterName: "POS-58"}}

	tests := []struct {
		name   string
		device Device
		bridge Bridge
		job    *Job
		want   bool
	}{
		{"connected device", &fakeDevice{connected: true}, nil, job, true},
		{"disconnected device, no bridge", &fakeDevice{}, nil, job, false},
		{"bridge with thermal name", nil, &fakeBridge{alive: true}, job, true},
		{
			"bridge with non-thermal name",
			nil,
			&fakeBridge{alive: true},
			&Job{PlainText: "x", Settings: entity.PrinterSettings{PrinterName: "LaserJet"}},
			false,
		},
		{"unreachable bridge", nil, &fakeBridge{alive: false}, job, false},
		{"no plain text", &fakeDevice{connected: true}, nil, &Job{HTML: "<p>x</p>"}, false},
		{"nothing configured", nil, nil, job, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewDirectBackend(tt.device, tt.bridge, zap.NewNop())
			if got := b.Available(tt.job); got != tt.want {
				t.Errorf("Available() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDirectBackendDevicePrint(t *testing.T) {
	device := &fakeDevice{connected: true}
	b := NewDirectBackend(device, nil, zap.NewNop())

	job := &Job{PlainText: "STRUK", Settings: entity.PrinterSettings{FontSize: entity.FontSizeMedium}}
	if err := b.Print(context.Background(), job); err != nil {
		t.Fatalf("Print() error: %v", err)
	}

	data := device.buf.Bytes()
	if !bytes.HasPrefix(data, []byte{0x1B, '@'}) {
		t.Error("device output missing ESC @ initialization")
	}
	if !bytes.Contains(data, []byte("STRUK")) {
		t.Error("device output missing receipt text")
	}
	if !bytes.HasSuffix(data, []byte{0x1D, 'V', 0x01}) {
		t.Error("device output missing partial cut")
	}
}

func TestDirectBackendDeviceError(t *testing.T) {
	wantErr := errors.New("paper out")
	b := NewDirectBackend(&fakeDevice{connected: true, writeErr: wantErr}, nil, zap.NewNop())

	err := b.Print(context.Background(), &Job{PlainText: "x"})
	if !errors.Is(err, wantErr) {
		t.Errorf("Print() error = %v, want wrapped %v", err, wantErr)
	}
}

func TestDirectBackendBridgePrint(t *testing.T) {
	bridge := &fakeBridge{alive: true, contentRes: &Result{Success: true}}
	b := NewDirectBackend(nil, bridge, zap.NewNop())

	job := &Job{PlainText: "STRUK", Settings: entity.PrinterSettings{PrinterName: "POS-58"}, Scale: 100}
	if err := b.Print(context.Background(), job); err != nil {
		t.Fatalf("Print() error: %v", err)
	}

	if len(bridge.contentCalls) != 1 {
		t.Fatalf("bridge PrintContent calls = %d, want 1", len(bridge.contentCalls))
	}
	req := bridge.contentCalls[0]
	if req.Content != "STRUK" || req.PrinterName != "POS-58" {
		t.Errorf("ContentRequest = %+v, want plain text on named printer", req)
	}
	if req.Scale != directScale {
		t.Errorf("ContentRequest.Scale = %d, want fixed %d", req.Scale, directScale)
	}
}

func TestDirectBackendDeviceDisconnectsBeforePrint(t *testing.T) {
	device := &fakeDevice{connected: true}
	b := NewDirectBackend(device, nil, zap.NewNop())

	job := &Job{PlainText: "x", Settings: entity.PrinterSettings{PrinterName: "POS-58"}}
	if !b.Available(job) {
		t.Fatal("Available() should report true while the device is connected")
	}

	// The device drops between the availability probe and the print attempt.
	device.connected = false
	if err := b.Print(context.Background(), job); err == nil {
		t.Fatal("Print() should fail when the device drops and no bridge is configured")
	}
}

func TestDirectBackendBridgeFailure(t *testing.T) {
	bridge := &fakeBridge{alive: true, contentRes: &Result{Success: false, Error: "busy"}}
	b := NewDirectBackend(nil, bridge, zap.NewNop())

	err := b.Print(context.Background(), &Job{PlainText: "x", Settings: entity.PrinterSettings{PrinterName: "POS-58"}})
	if err == nil {
		t.Fatal("Print() should fail when the bridge reports failure")
	}
}
