package gphoto2

import (
	"errors"
	"testing"
)

func TestResult_String(t *testing.T) {
	for _, code := range KnownResults() {
		first := code.String()
		if first == "" {
			t.Errorf("Expected non-empty description for %d", code)
		}
		if first == unknownResult {
			t.Errorf("Expected known description for %d, got %q", code, first)
		}
		// 同じ入力には同じ出力
		if second := code.String(); second != first {
			t.Errorf("Expected stable description for %d: %q != %q", code, first, second)
		}
	}

	if got := Result(-999).String(); got != unknownResult {
		t.Errorf("Expected %q for unknown code, got %q", unknownResult, got)
	}

	// 正の値はインデックスなので成功扱い
	if got := Result(3).String(); got != OK.String() {
		t.Errorf("Expected %q for positive code, got %q", OK.String(), got)
	}
}

func TestResult_Err(t *testing.T) {
	testCases := []struct {
		name    string
		code    Result
		wantErr bool
	}{
		{"成功", OK, false},
		{"インデックス", Result(2), false},
		{"不明なポート", ErrorUnknownPort, true},
		{"メモリ不足", ErrorNoMemory, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.code.Err()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Err() = %v, wantErr %v", err, tc.wantErr)
			}
			if err == nil {
				return
			}

			var resErr *ResultError
			if !errors.As(err, &resErr) {
				t.Fatalf("Expected *ResultError, got %T", err)
			}
			if resErr.Code != tc.code {
				t.Errorf("Expected code %d, got %d", tc.code, resErr.Code)
			}
			if !errors.Is(err, &ResultError{Code: tc.code}) {
				t.Error("Expected errors.Is to match the same code")
			}
			if errors.Is(err, &ResultError{Code: Error}) {
				t.Error("Expected errors.Is not to match a different code")
			}
		})
	}
}

func TestPortType_String(t *testing.T) {
	testCases := []struct {
		t    PortType
		want string
	}{
		{PortNone, "none"},
		{PortSerial, "serial"},
		{PortUSB, "usb"},
		{PortUSB | PortDisk, "usb|disk"},
		{PortType(1 << 1), "unknown"},
	}

	for _, tc := range testCases {
		if got := tc.t.String(); got != tc.want {
			t.Errorf("PortType(%d).String() = %q, want %q", int(tc.t), got, tc.want)
		}
	}
}

func TestParsePortType(t *testing.T) {
	for _, name := range []string{"none", "serial", "usb", "disk", "ptpip", "usbdiskdirect", "usbscsi", "ip"} {
		pt, ok := ParsePortType(name)
		if !ok {
			t.Errorf("Expected %q to parse", name)
			continue
		}
		if pt.String() != name {
			t.Errorf("Expected %q, got %q", name, pt.String())
		}
	}

	if _, ok := ParsePortType("firewire"); ok {
		t.Error("Expected unknown port type to be rejected")
	}
}

func TestNativeLibrary_ResultAsString(t *testing.T) {
	lib := Native()
	for _, code := range KnownResults() {
		if lib.ResultAsString(code) == "" {
			t.Errorf("Expected non-empty description for %d", code)
		}
	}
}
