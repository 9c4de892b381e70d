package port

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"

	"gpport/internal/gphoto2"
)

func newTestManager(lib *gphoto2.MockLibrary, options ManagerOptions) *DefaultManager {
	logger, _ := test.NewNullLogger()
	return NewDefaultManager(NewGPhotoDiscovery(lib, logger), options, logger)
}

func TestDefaultManager_Basic(t *testing.T) {
	ctx := context.Background()
	lib := gphoto2.NewMockLibrary(testMockPorts()...)
	manager := newTestManager(lib, ManagerOptions{CacheTTL: time.Minute})

	if err := manager.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer func() { _ = manager.Stop(ctx) }()

	ports := manager.GetPorts()
	if len(ports) != 2 {
		t.Fatalf("Expected 2 ports, got %d", len(ports))
	}
	for i, p := range ports {
		if p.Index != i {
			t.Errorf("Expected ports sorted by index, got %d at %d", p.Index, i)
		}
	}

	snapshot := manager.Snapshot()
	if snapshot.ID == "" || snapshot.Count != 2 || snapshot.ScannedAt.IsZero() {
		t.Errorf("Unexpected snapshot: %+v", snapshot)
	}

	p, ok := manager.GetPort(PortID("usb:001,004"))
	if !ok {
		t.Fatal("Expected port usb:001,004 to exist")
	}
	if p.Name != "Canon EOS 80D" {
		t.Errorf("Expected name Canon EOS 80D, got %s", p.Name)
	}

	if _, ok := manager.GetPort("unknown"); ok {
		t.Error("Expected unknown port to be missing")
	}

	// 二重開始はエラー
	if err := manager.Start(ctx); err == nil {
		t.Error("Expected error on second Start")
	}
}

func TestDefaultManager_StartFailure(t *testing.T) {
	ctx := context.Background()
	manager := newTestManager(gphoto2.NewMockLibrary(), ManagerOptions{})

	err := manager.Start(ctx)
	if !errors.Is(err, &gphoto2.ResultError{Code: gphoto2.ErrorLibrary}) {
		t.Fatalf("Expected ErrorLibrary, got %v", err)
	}
}

func TestDefaultManager_Rescan(t *testing.T) {
	ctx := context.Background()
	lib := gphoto2.NewMockLibrary(testMockPorts()...)
	manager := newTestManager(lib, ManagerOptions{CacheTTL: time.Minute})

	if err := manager.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer func() { _ = manager.Stop(ctx) }()
	first := manager.Snapshot()

	lib.AddPort(gphoto2.MockPort{Name: "PTP/IP Connection", Path: "ptpip:", Type: gphoto2.PortPTPIP})
	lib.RemovePort("usb:")

	snapshot, err := manager.Rescan(ctx)
	if err != nil {
		t.Fatalf("Rescan failed: %v", err)
	}
	if snapshot.ID == first.ID {
		t.Error("Expected a new scan ID")
	}
	if snapshot.Count != 2 {
		t.Errorf("Expected 2 ports, got %d", snapshot.Count)
	}
	if _, ok := manager.GetPort(PortID("usb:")); ok {
		t.Error("Expected removed port to be gone")
	}
	if _, ok := manager.GetPort(PortID("ptpip:")); !ok {
		t.Error("Expected added port to exist")
	}

	// 失敗時は直前の結果を保持
	lib.SetLoadResult(gphoto2.ErrorIO)
	kept, err := manager.Rescan(ctx)
	if err == nil {
		t.Fatal("Expected Rescan to fail")
	}
	if kept.ID != snapshot.ID {
		t.Errorf("Expected previous snapshot %s, got %s", snapshot.ID, kept.ID)
	}
	if len(manager.GetPorts()) != 2 {
		t.Errorf("Expected previous ports to be kept, got %d", len(manager.GetPorts()))
	}
}

func TestDefaultManager_LookupCache(t *testing.T) {
	ctx := context.Background()
	lib := gphoto2.NewMockLibrary(testMockPorts()...)
	manager := newTestManager(lib, ManagerOptions{CacheTTL: time.Minute})

	if err := manager.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer func() { _ = manager.Stop(ctx) }()

	p, err := manager.LookupName(ctx, "Canon EOS 80D")
	if err != nil {
		t.Fatalf("LookupName failed: %v", err)
	}
	if p.Path != "usb:001,004" {
		t.Errorf("Expected path usb:001,004, got %s", p.Path)
	}

	// ライブラリから消えてもキャッシュから返る
	lib.RemovePort("usb:001,004")
	if _, err := manager.LookupName(ctx, "Canon EOS 80D"); err != nil {
		t.Errorf("Expected cached result, got %v", err)
	}

	// 再スキャンでキャッシュは破棄される
	if _, err := manager.Rescan(ctx); err != nil {
		t.Fatalf("Rescan failed: %v", err)
	}
	if _, err := manager.LookupName(ctx, "Canon EOS 80D"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after rescan, got %v", err)
	}

	p, err = manager.LookupPath(ctx, "serial:/dev/ttyS1")
	if err != nil {
		t.Fatalf("LookupPath failed: %v", err)
	}
	if p.Type != "serial" {
		t.Errorf("Expected serial port, got %s", p.Type)
	}

	if lib.OpenLists() != 0 {
		t.Errorf("Expected all lists to be freed, got %d open", lib.OpenLists())
	}
}

func TestDefaultManager_BackgroundScan(t *testing.T) {
	ctx := context.Background()
	lib := gphoto2.NewMockLibrary(testMockPorts()...)
	manager := newTestManager(lib, ManagerOptions{
		AutoScan:     true,
		ScanInterval: 20 * time.Millisecond,
		CacheTTL:     time.Minute,
	})

	if err := manager.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	first := manager.Snapshot()

	lib.AddPort(gphoto2.MockPort{Name: "PTP/IP Connection", Path: "ptpip:", Type: gphoto2.PortPTPIP})

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if manager.Snapshot().ID != first.ID {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	if manager.Snapshot().ID == first.ID {
		t.Fatal("Expected background scan to produce a new snapshot")
	}
	if _, ok := manager.GetPort(PortID("ptpip:")); !ok {
		t.Error("Expected background scan to pick up the new port")
	}

	if err := manager.Stop(ctx); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	// 停止後の二重停止は何もしない
	if err := manager.Stop(ctx); err != nil {
		t.Errorf("Expected second Stop to be a no-op, got %v", err)
	}
}

func TestDefaultManager_Describe(t *testing.T) {
	manager := newTestManager(gphoto2.NewMockLibrary(), DefaultManagerOptions())

	if got := manager.Describe(gphoto2.OK); got != "No error" {
		t.Errorf("Expected %q, got %q", "No error", got)
	}
}
