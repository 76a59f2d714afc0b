// Package printer gets rendered receipt content onto a physical printer. It
// exposes a prioritized chain of mutually exclusive backends — raw thermal
// device, host print bridge, spool-file fallback — and stops at the first one
// that both exists in the running environment and reports success.
package printer

import (
	"fmt"
	"net"
	"os"
	"time"
)

// Device is a raw byte sink for ESC/POS output on a thermal printer.
type Device interface {
	// Write sends raw ESC/POS bytes to the printer.
	Write(data []byte) error
	// Close releases the printer connection/handle.
	Close() error
	// Connected returns true if the printer is reachable.
	Connected() bool
}

// --- USB device (writes to a device file, e.g. /dev/usb/lp0) ---

type usbDevice struct {
	path string
}

// NewUSBDevice creates a device that writes to a USB device file.
func NewUSBDevice(devicePath string) Device {
	return &usbDevice{path: devicePath}
}

func (d *usbDevice) Write(data []byte) error {
	f, err := os.OpenFile(d.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: failed to open USB device %s: %w", d.path, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("printer: failed to write to USB device %s: %w", d.path, err)
	}
	return nil
}

func (d *usbDevice) Close() error {
	return nil // USB device opens/closes per print job
}

func (d *usbDevice) Connected() bool {
	_, err := os.Stat(d.path)
	return err == nil
}

// --- Network device (dials TCP, e.g. 192.168.1.100:9100) ---

type networkDevice struct {
	address string
	timeout time.Duration
}

// NewNetworkDevice creates a device that connects via TCP.
// Address should include port, e.g. "192.168.1.100:9100".
func NewNetworkDevice(address string) Device {
	return &networkDevice{
		address: address,
		timeout: 5 * time.Second,
	}
}

func (d *networkDevice) Write(data []byte) error {
	conn, err := net.DialTimeout("tcp", d.address, d.timeout)
	if err != nil {
		return fmt.Errorf("printer: failed to connect to %s: %w", d.address, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))

	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: failed to write to %s: %w", d.address, err)
	}
	return nil
}

func (d *networkDevice) Close() error {
	return nil // Network device opens/closes per print job
}

func (d *networkDevice) Connected() bool {
	conn, err := net.DialTimeout("tcp", d.address, 2*time.Second)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// NewDeviceFromConfig creates the raw device for the configured printer type,
// or nil when no raw device is configured ("none" or empty).
//
//	printerType: "usb", "network", or "none"
//	usbPath: device path for USB printers (e.g. "/dev/usb/lp0")
//	address: TCP address for network printers (e.g. "192.168.1.100:9100")
func NewDeviceFromConfig(printerType, usbPath, address string) (Device, error) {
	switch printerType {
	case "usb":
		if usbPath == "" {
			return nil, fmt.Errorf("printer: USB path is required for USB printer type")
		}
		return NewUSBDevice(usbPath), nil
	case "network":
		if address == "" {
			return nil, fmt.Errorf("printer: address is required for network printer type")
		}
		return NewNetworkDevice(address), nil
	case "none", "", "thermal":
		return nil, nil
	default:
		return nil, fmt.Errorf("printer: unknown printer type %q (use usb, network, or none)", printerType)
	}
}
