package port

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/sirupsen/logrus/hooks/test"

	"gpport/internal/gphoto2"
)

func testMockPorts() []gphoto2.MockPort {
	return []gphoto2.MockPort{
		{Name: "Universal Serial Bus", Path: "usb:", Type: gphoto2.PortUSB},
		{Name: "Canon EOS 80D", Path: "usb:001,004", Type: gphoto2.PortUSB},
		{Name: "", Path: "serial:*", Type: gphoto2.PortSerial},
	}
}

func newTestDiscovery(ports ...gphoto2.MockPort) (*GPhotoDiscovery, *gphoto2.MockLibrary) {
	logger, _ := test.NewNullLogger()
	lib := gphoto2.NewMockLibrary(ports...)
	return NewGPhotoDiscovery(lib, logger), lib
}

func TestGPhotoDiscovery_ScanPorts(t *testing.T) {
	ctx := context.Background()
	discovery, lib := newTestDiscovery(testMockPorts()...)

	ports, err := discovery.ScanPorts(ctx)
	if err != nil {
		t.Fatalf("ScanPorts failed: %v", err)
	}

	want := []Port{
		{ID: PortID("usb:"), Index: 0, Name: "Universal Serial Bus", Path: "usb:", Type: "usb"},
		{ID: PortID("usb:001,004"), Index: 1, Name: "Canon EOS 80D", Path: "usb:001,004", Type: "usb"},
	}
	if diff := cmp.Diff(want, ports, cmpopts.IgnoreFields(Port{}, "LastSeen")); diff != "" {
		t.Errorf("ports mismatch (-want +got):\n%s", diff)
	}

	for _, p := range ports {
		if p.LastSeen.IsZero() {
			t.Errorf("Expected LastSeen to be set for %s", p.Path)
		}
	}

	// リストは必ず解放される
	if lib.OpenLists() != 0 {
		t.Errorf("Expected all lists to be freed, got %d open", lib.OpenLists())
	}
}

func TestGPhotoDiscovery_ScanPortsErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("ドライバなし", func(t *testing.T) {
		discovery, lib := newTestDiscovery()

		_, err := discovery.ScanPorts(ctx)
		if !errors.Is(err, &gphoto2.ResultError{Code: gphoto2.ErrorLibrary}) {
			t.Fatalf("Expected ErrorLibrary, got %v", err)
		}
		if lib.OpenLists() != 0 {
			t.Errorf("Expected list to be freed after load failure, got %d open", lib.OpenLists())
		}
	})

	t.Run("割り当て失敗", func(t *testing.T) {
		discovery, lib := newTestDiscovery(testMockPorts()...)
		lib.SetFailAllocations(true)

		_, err := discovery.ScanPorts(ctx)
		if !errors.Is(err, &gphoto2.ResultError{Code: gphoto2.ErrorNoMemory}) {
			t.Fatalf("Expected ErrorNoMemory, got %v", err)
		}
	})

	t.Run("キャンセル済みコンテキスト", func(t *testing.T) {
		discovery, lib := newTestDiscovery(testMockPorts()...)
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := discovery.ScanPorts(cancelled)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Expected context.Canceled, got %v", err)
		}
		if lib.OpenLists() != 0 {
			t.Errorf("Expected no open lists, got %d", lib.OpenLists())
		}
	})
}

func TestGPhotoDiscovery_LookupPath(t *testing.T) {
	ctx := context.Background()
	discovery, lib := newTestDiscovery(testMockPorts()...)

	p, err := discovery.LookupPath(ctx, "usb:001,004")
	if err != nil {
		t.Fatalf("LookupPath failed: %v", err)
	}
	if p.Index != 1 || p.Name != "Canon EOS 80D" {
		t.Errorf("Unexpected port: %+v", p)
	}

	// パターンを主張するドライバによる一致
	p, err = discovery.LookupPath(ctx, "serial:/dev/ttyUSB0")
	if err != nil {
		t.Fatalf("LookupPath with pattern failed: %v", err)
	}
	if p.Path != "serial:/dev/ttyUSB0" || p.Type != "serial" {
		t.Errorf("Unexpected generic port: %+v", p)
	}
	if p.ID != PortID("serial:/dev/ttyUSB0") {
		t.Errorf("Expected ID derived from path, got %s", p.ID)
	}

	_, err = discovery.LookupPath(ctx, "ptpip:192.168.0.10")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	if lib.OpenLists() != 0 {
		t.Errorf("Expected all lists to be freed, got %d open", lib.OpenLists())
	}
}

func TestGPhotoDiscovery_LookupName(t *testing.T) {
	ctx := context.Background()
	discovery, _ := newTestDiscovery(testMockPorts()...)

	p, err := discovery.LookupName(ctx, "Universal Serial Bus")
	if err != nil {
		t.Fatalf("LookupName failed: %v", err)
	}
	if p.Path != "usb:" {
		t.Errorf("Expected path usb:, got %s", p.Path)
	}

	_, err = discovery.LookupName(ctx, "Nikon D750")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestGPhotoDiscovery_Describe(t *testing.T) {
	discovery, _ := newTestDiscovery()

	if got := discovery.Describe(gphoto2.ErrorUnknownPort); got != "Unknown port" {
		t.Errorf("Expected %q, got %q", "Unknown port", got)
	}
}

func TestPortID(t *testing.T) {
	if PortID("usb:") != PortID("usb:") {
		t.Error("Expected PortID to be deterministic")
	}
	if PortID("usb:") == PortID("usb:001,004") {
		t.Error("Expected different paths to produce different IDs")
	}
}
