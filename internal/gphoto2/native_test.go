//go:build cgo && gphoto2

package gphoto2

import "testing"

// 実機のドライバ構成に依存するため、件数や特定のポートは検証しない
func TestNativeLibrary_Lifecycle(t *testing.T) {
	lib := Native()

	var list PortInfoList
	if ret := lib.NewList(&list); ret != OK {
		t.Fatalf("NewList failed: %s", lib.ResultAsString(ret))
	}
	if ret := lib.Load(list); ret != OK {
		lib.Free(list)
		t.Skipf("Load failed, no io drivers installed? %s", lib.ResultAsString(ret))
	}

	count := lib.Count(list)
	if count < 0 {
		t.Fatalf("Count failed: %s", lib.ResultAsString(count))
	}
	t.Logf("Found %d ports", count)

	if ret := lib.LookupName(list, "no such port name"); ret >= 0 {
		t.Errorf("Expected negative code for unknown name, got %d", ret)
	}

	var info PortInfo
	if ret := lib.GetInfo(list, int(count), &info); ret >= 0 {
		t.Errorf("Expected negative code for out-of-range index, got %d", ret)
	}
	if !info.IsNil() {
		t.Error("Expected output handle to stay nil")
	}

	for i := 0; i < int(count); i++ {
		if ret := lib.GetInfo(list, i, &info); ret != OK {
			t.Errorf("GetInfo(%d) failed: %s", i, lib.ResultAsString(ret))
			continue
		}
		name, _ := lib.Name(info)
		path, _ := lib.Path(info)
		pt, _ := lib.Type(info)
		t.Logf("Port %d: %s (%s) %s", i, name, path, pt)
	}

	if ret := lib.Free(list); ret != OK {
		t.Errorf("Free failed: %s", lib.ResultAsString(ret))
	}
}
