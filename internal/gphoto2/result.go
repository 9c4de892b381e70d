package gphoto2

import "fmt"

// Result はネイティブ関数が返すステータスコード
// 0 は成功、正の値はインデックスや件数、負の値はエラー種別を表す
type Result int

// gphoto2-port-result.h のステータスコード
const (
	OK                      Result = 0
	Error                   Result = -1
	ErrorBadParameters      Result = -2
	ErrorNoMemory           Result = -3
	ErrorLibrary            Result = -4
	ErrorUnknownPort        Result = -5
	ErrorNotSupported       Result = -6
	ErrorIO                 Result = -7
	ErrorFixedLimitExceeded Result = -8
	ErrorTimeout            Result = -10
	ErrorIOSupportedSerial  Result = -20
	ErrorIOSupportedUSB     Result = -21
	ErrorIOInit             Result = -31
	ErrorIORead             Result = -34
	ErrorIOWrite            Result = -35
	ErrorIOUpdate           Result = -37
	ErrorIOSerialSpeed      Result = -41
	ErrorIOUSBClearHalt     Result = -51
	ErrorIOUSBFind          Result = -52
	ErrorIOUSBClaim         Result = -53
	ErrorIOLock             Result = -60
	ErrorHAL                Result = -70
)

// resultDescriptions は静的なエラー説明のテーブル
var resultDescriptions = map[Result]string{
	OK:                      "No error",
	Error:                   "Unspecified error",
	ErrorBadParameters:      "Bad parameters",
	ErrorNoMemory:           "Out of memory",
	ErrorLibrary:            "Error loading a library",
	ErrorUnknownPort:        "Unknown port",
	ErrorNotSupported:       "Unsupported operation",
	ErrorIO:                 "I/O problem",
	ErrorFixedLimitExceeded: "Fixed limit exceeded",
	ErrorTimeout:            "Timeout reading from or writing to the port",
	ErrorIOSupportedSerial:  "Serial port not supported",
	ErrorIOSupportedUSB:     "USB port not supported",
	ErrorIOInit:             "Error initializing the port",
	ErrorIORead:             "Error reading from the port",
	ErrorIOWrite:            "Error writing to the port",
	ErrorIOUpdate:           "Error updating the port settings",
	ErrorIOSerialSpeed:      "Error setting the serial port speed",
	ErrorIOUSBClearHalt:     "Error clearing a halt condition on the USB port",
	ErrorIOUSBFind:          "Could not find the requested device on the USB port",
	ErrorIOUSBClaim:         "Could not claim the USB device",
	ErrorIOLock:             "Could not lock the device",
	ErrorHAL:                "libhal error",
}

// unknownResult は未知のコードに対する説明
const unknownResult = "Unknown error"

// KnownResults は定義済みの全ステータスコードを返す
func KnownResults() []Result {
	return []Result{
		OK, Error, ErrorBadParameters, ErrorNoMemory, ErrorLibrary,
		ErrorUnknownPort, ErrorNotSupported, ErrorIO, ErrorFixedLimitExceeded,
		ErrorTimeout, ErrorIOSupportedSerial, ErrorIOSupportedUSB, ErrorIOInit,
		ErrorIORead, ErrorIOWrite, ErrorIOUpdate, ErrorIOSerialSpeed,
		ErrorIOUSBClearHalt, ErrorIOUSBFind, ErrorIOUSBClaim, ErrorIOLock,
		ErrorHAL,
	}
}

// String はステータスコードの静的な説明を返す
// ネイティブライブラリを必要としない
func (r Result) String() string {
	if r > OK {
		// 正の値はインデックスまたは件数
		return resultDescriptions[OK]
	}
	if desc, ok := resultDescriptions[r]; ok {
		return desc
	}
	return unknownResult
}

// IsOK は成功（0以上）かどうかを返す
func (r Result) IsOK() bool {
	return r >= OK
}

// Err は負のコードを error に変換する。成功時は nil
func (r Result) Err() error {
	if r.IsOK() {
		return nil
	}
	return &ResultError{Code: r}
}

// ResultError はネイティブのエラーコードを保持する error
type ResultError struct {
	Code Result
}

func (e *ResultError) Error() string {
	return fmt.Sprintf("gphoto2: %s (%d)", e.Code.String(), int(e.Code))
}

// Is はコードが一致する ResultError を同一とみなす
func (e *ResultError) Is(target error) bool {
	t, ok := target.(*ResultError)
	return ok && t.Code == e.Code
}
