//go:build !cgo || !gphoto2

package gphoto2

// NativeAvailable はネイティブライブラリがリンクされているかどうか
const NativeAvailable = false

// NativeLibrary はネイティブライブラリをリンクしないビルドで使われる代替実装
// 全ての呼び出しが ErrorLibrary を返す
type NativeLibrary struct{}

// Native は新しい NativeLibrary を返す
func Native() *NativeLibrary {
	return &NativeLibrary{}
}

func (n *NativeLibrary) ResultAsString(code Result) string { return code.String() }

func (n *NativeLibrary) NewPortInfo(*PortInfo) Result { return ErrorLibrary }

func (n *NativeLibrary) NewList(*PortInfoList) Result { return ErrorLibrary }

func (n *NativeLibrary) Load(PortInfoList) Result { return ErrorLibrary }

func (n *NativeLibrary) Free(PortInfoList) Result { return ErrorLibrary }

func (n *NativeLibrary) Count(PortInfoList) Result { return ErrorLibrary }

func (n *NativeLibrary) GetInfo(PortInfoList, int, *PortInfo) Result { return ErrorLibrary }

func (n *NativeLibrary) LookupPath(PortInfoList, string) Result { return ErrorLibrary }

func (n *NativeLibrary) LookupName(PortInfoList, string) Result { return ErrorLibrary }

func (n *NativeLibrary) Name(PortInfo) (string, Result) { return "", ErrorLibrary }

func (n *NativeLibrary) Path(PortInfo) (string, Result) { return "", ErrorLibrary }

func (n *NativeLibrary) Type(PortInfo) (PortType, Result) { return PortNone, ErrorLibrary }
