package printer

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func allCaps() map[Capability]bool {
	return map[Capability]bool{
		CapPrintContent: true,
		CapPrintDirect:  true,
		CapPrintReceipt: true,
	}
}

func TestNativeBackendAvailable(t *testing.T) {
	tests := []struct {
		name   string
		bridge Bridge
		want   bool
	}{
		{"reachable bridge", &fakeBridge{alive: true}, true},
		{"unreachable bridge", &fakeBridge{alive: false}, false},
		{"no bridge", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewNativeBackend(tt.bridge, zap.NewNop())
			if got := b.Available(&Job{HTML: "<p>x</p>"}); got != tt.want {
				t.Errorf("Available() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNativeBackendFirstCapabilityWins(t *testing.T) {
	bridge := &fakeBridge{alive: true, caps: allCaps(), contentRes: &Result{Success: true}}
	b := NewNativeBackend(bridge, zap.NewNop())

	if err := b.Print(context.Background(), &Job{HTML: "<p>x</p>"}); err != nil {
		t.Fatalf("Print() error: %v", err)
	}
	if len(bridge.contentCalls) != 1 {
		t.Errorf("PrintContent calls = %d, want 1", len(bridge.contentCalls))
	}
	if bridge.directCalls != 0 || bridge.receiptCalls != 0 {
		t.Error("lower-priority capabilities must not run after a success")
	}
}

func TestNativeBackendWalksCapabilities(t *testing.T) {
	bridge := &fakeBridge{
		alive:      true,
		caps:       allCaps(),
		contentRes: &Result{Success: false, Error: "no printer"},
		directRes:  &Result{Success: false, Error: "no view"},
		receiptRes: &Result{Success: true},
	}
	b := NewNativeBackend(bridge, zap.NewNop())

	if err := b.Print(context.Background(), &Job{HTML: "<p>x</p>"}); err != nil {
		t.Fatalf("Print() error: %v", err)
	}
	if len(bridge.contentCalls) != 1 || bridge.directCalls != 1 || bridge.receiptCalls != 1 {
		t.Errorf("capability walk = (%d, %d, %d), want each tried once",
			len(bridge.contentCalls), bridge.directCalls, bridge.receiptCalls)
	}
}

func TestNativeBackendAllCapabilitiesFail(t *testing.T) {
	bridge := &fakeBridge{
		alive:      true,
		caps:       allCaps(),
		contentRes: &Result{Success: false, Error: "a"},
		directRes:  &Result{Success: false, Error: "b"},
		receiptRes: &Result{Success: false, Error: "c"},
	}
	b := NewNativeBackend(bridge, zap.NewNop())

	err := b.Print(context.Background(), &Job{HTML: "<p>x</p>"})
	if err == nil || !strings.Contains(err.Error(), "all bridge capabilities failed") {
		t.Errorf("Print() error = %v, want all-capabilities-failed", err)
	}
}

func TestNativeBackendNoCapabilities(t *testing.T) {
	bridge := &fakeBridge{alive: true, caps: map[Capability]bool{}}
	b := NewNativeBackend(bridge, zap.NewNop())

	err := b.Print(context.Background(), &Job{HTML: "<p>x</p>"})
	if err == nil || !strings.Contains(err.Error(), "no print capability") {
		t.Errorf("Print() error = %v, want no-capability error", err)
	}
}

func TestNativeBackendSkipsUnsupportedCapability(t *testing.T) {
	bridge := &fakeBridge{
		alive:     true,
		caps:      map[Capability]bool{CapPrintDirect: true},
		directRes: &Result{Success: true},
	}
	b := NewNativeBackend(bridge, zap.NewNop())

	if err := b.Print(context.Background(), &Job{HTML: "<p>x</p>"}); err != nil {
		t.Fatalf("Print() error: %v", err)
	}
	if len(bridge.contentCalls) != 0 {
		t.Error("unsupported print content capability must not be called")
	}
	if bridge.directCalls != 1 {
		t.Errorf("directCalls = %d, want 1", bridge.directCalls)
	}
}
