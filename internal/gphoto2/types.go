package gphoto2

import (
	"errors"
	"strings"
)

// PortInfo は単一ポート情報 (GPPortInfo) の不透明なハンドル
// Go 側から参照先を読むことはできない。ゼロ値は nil ハンドル
type PortInfo uintptr

// PortInfoList はポート情報リスト (GPPortInfoList*) の不透明なハンドル
type PortInfoList uintptr

// IsNil はハンドルが未割り当てかどうかを返す
func (p PortInfo) IsNil() bool { return p == 0 }

// IsNil はハンドルが未割り当てかどうかを返す
func (l PortInfoList) IsNil() bool { return l == 0 }

// PortType はポートの種類 (GPPortType) を表すビットセット
type PortType int

const (
	PortNone          PortType = 0
	PortSerial        PortType = 1 << 0
	PortUSB           PortType = 1 << 2
	PortDisk          PortType = 1 << 3
	PortPTPIP         PortType = 1 << 4
	PortUSBDiskDirect PortType = 1 << 5
	PortUSBSCSI       PortType = 1 << 6
	PortIP            PortType = 1 << 7
)

var portTypeNames = []struct {
	t    PortType
	name string
}{
	{PortSerial, "serial"},
	{PortUSB, "usb"},
	{PortDisk, "disk"},
	{PortPTPIP, "ptpip"},
	{PortUSBDiskDirect, "usbdiskdirect"},
	{PortUSBSCSI, "usbscsi"},
	{PortIP, "ip"},
}

// String はポート種別を "usb|disk" のような形式で返す
func (t PortType) String() string {
	if t == PortNone {
		return "none"
	}
	var names []string
	for _, n := range portTypeNames {
		if t&n.t != 0 {
			names = append(names, n.name)
		}
	}
	if len(names) == 0 {
		return "unknown"
	}
	return strings.Join(names, "|")
}

// ParsePortType はポート種別名を PortType に変換する
func ParsePortType(name string) (PortType, bool) {
	if name == "none" {
		return PortNone, true
	}
	for _, n := range portTypeNames {
		if n.name == name {
			return n.t, true
		}
	}
	return PortNone, false
}

// ErrNotBuilt はネイティブライブラリがリンクされていないことを示す
// cgo と gphoto2 ビルドタグの両方が有効な場合のみリンクされる
var ErrNotBuilt = errors.New("gphoto2: native bindings not built")

// Library は libgphoto2_port のポート検出 API の呼び出し面
//
// 全ての呼び出しは同期的で、ネイティブ関数が戻るまでブロックする。
// ライフサイクル（load 前の検索禁止、二重解放など）は検証しない。
// 同一リストへの並行呼び出しの排他は呼び出し側の責任。
type Library interface {
	// ResultAsString はステータスコードの静的な説明を返す
	ResultAsString(code Result) string

	// NewPortInfo は未初期化の PortInfo を割り当て、info に書き込む
	NewPortInfo(info *PortInfo) Result

	// NewList は空の PortInfoList を割り当て、list に書き込む
	NewList(list *PortInfoList) Result

	// Load はシステムの I/O ドライバを検索し、リストに追加する
	Load(list PortInfoList) Result

	// Free はリストとその全エントリを解放する
	Free(list PortInfoList) Result

	// Count はリストのエントリ数を返す
	Count(list PortInfoList) Result

	// GetInfo は index 番目のエントリを info に書き込む
	GetInfo(list PortInfoList, index int, info *PortInfo) Result

	// LookupPath はパスに一致するエントリのインデックスを返す
	// 完全一致がない場合は "serial:*" のようなパターンを登録したドライバを探す
	LookupPath(list PortInfoList, path string) Result

	// LookupName は表示名が完全一致するエントリのインデックスを返す
	LookupName(list PortInfoList, name string) Result

	// Name はエントリの表示名を返す
	Name(info PortInfo) (string, Result)

	// Path はエントリのパスを返す
	Path(info PortInfo) (string, Result)

	// Type はエントリのポート種別を返す
	Type(info PortInfo) (PortType, Result)
}
