//go:build cgo && gphoto2

package gphoto2

/*
#cgo pkg-config: libgphoto2_port
#include <stdlib.h>
#include <gphoto2/gphoto2-port-info-list.h>
#include <gphoto2/gphoto2-port-result.h>
*/
import "C"

import "unsafe"

// NativeAvailable はネイティブライブラリがリンクされているかどうか
const NativeAvailable = true

// NativeLibrary は libgphoto2_port を cgo 経由で呼び出す Library 実装
// unsafe なポインタ操作はこのファイルに閉じ込める
type NativeLibrary struct{}

// Native は新しい NativeLibrary を返す
func Native() *NativeLibrary {
	return &NativeLibrary{}
}

func listPtr(l PortInfoList) *C.GPPortInfoList {
	return (*C.GPPortInfoList)(unsafe.Pointer(l))
}

func infoPtr(p PortInfo) C.GPPortInfo {
	return C.GPPortInfo(unsafe.Pointer(p))
}

// ResultAsString は gp_port_result_as_string を呼び出す
func (n *NativeLibrary) ResultAsString(code Result) string {
	return C.GoString(C.gp_port_result_as_string(C.int(code)))
}

// NewPortInfo は gp_port_info_new を呼び出す
func (n *NativeLibrary) NewPortInfo(info *PortInfo) Result {
	var p C.GPPortInfo
	ret := Result(C.gp_port_info_new(&p))
	if ret.IsOK() {
		*info = PortInfo(unsafe.Pointer(p))
	}
	return ret
}

// NewList は gp_port_info_list_new を呼び出す
func (n *NativeLibrary) NewList(list *PortInfoList) Result {
	var l *C.GPPortInfoList
	ret := Result(C.gp_port_info_list_new(&l))
	if ret.IsOK() {
		*list = PortInfoList(unsafe.Pointer(l))
	}
	return ret
}

// Load は gp_port_info_list_load を呼び出す
func (n *NativeLibrary) Load(list PortInfoList) Result {
	return Result(C.gp_port_info_list_load(listPtr(list)))
}

// Free は gp_port_info_list_free を呼び出す
func (n *NativeLibrary) Free(list PortInfoList) Result {
	return Result(C.gp_port_info_list_free(listPtr(list)))
}

// Count は gp_port_info_list_count を呼び出す
func (n *NativeLibrary) Count(list PortInfoList) Result {
	return Result(C.gp_port_info_list_count(listPtr(list)))
}

// GetInfo は gp_port_info_list_get_info を呼び出す
// 失敗時は info を書き換えない
func (n *NativeLibrary) GetInfo(list PortInfoList, index int, info *PortInfo) Result {
	var p C.GPPortInfo
	ret := Result(C.gp_port_info_list_get_info(listPtr(list), C.int(index), &p))
	if ret.IsOK() {
		*info = PortInfo(unsafe.Pointer(p))
	}
	return ret
}

// LookupPath は gp_port_info_list_lookup_path を呼び出す
func (n *NativeLibrary) LookupPath(list PortInfoList, path string) Result {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	return Result(C.gp_port_info_list_lookup_path(listPtr(list), cpath))
}

// LookupName は gp_port_info_list_lookup_name を呼び出す
func (n *NativeLibrary) LookupName(list PortInfoList, name string) Result {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return Result(C.gp_port_info_list_lookup_name(listPtr(list), cname))
}

// Name は gp_port_info_get_name を呼び出す
// 返される文字列はリスト側の所有なので Go の文字列にコピーする
func (n *NativeLibrary) Name(info PortInfo) (string, Result) {
	var cname *C.char
	ret := Result(C.gp_port_info_get_name(infoPtr(info), &cname))
	if !ret.IsOK() || cname == nil {
		return "", ret
	}
	return C.GoString(cname), ret
}

// Path は gp_port_info_get_path を呼び出す
func (n *NativeLibrary) Path(info PortInfo) (string, Result) {
	var cpath *C.char
	ret := Result(C.gp_port_info_get_path(infoPtr(info), &cpath))
	if !ret.IsOK() || cpath == nil {
		return "", ret
	}
	return C.GoString(cpath), ret
}

// Type は gp_port_info_get_type を呼び出す
func (n *NativeLibrary) Type(info PortInfo) (PortType, Result) {
	var t C.GPPortType
	ret := Result(C.gp_port_info_get_type(infoPtr(info), &t))
	if !ret.IsOK() {
		return PortNone, ret
	}
	return PortType(t), ret
}
