package gphoto2

import (
	"strings"
	"sync"

	"github.com/gobwas/glob"
)

// genericPortName はパターン一致で追加されるエントリの表示名
const genericPortName = "Generic Port"

// MockPort はモックに登録するドライバのポート
// Name が空で Path がパターン（例: "serial:*"）のものはパス群を主張するドライバとして扱い、
// 件数・インデックス・名前検索からは見えない
type MockPort struct {
	Name string
	Path string
	Type PortType
}

// hidden はパターン登録用の不可視エントリかどうかを返す
func (p MockPort) hidden() bool {
	return p.Name == ""
}

type mockList struct {
	visible []PortInfo
	claims  []PortInfo
}

// MockLibrary はテスト用のインメモリ Library 実装
// 観測可能な呼び出し契約だけを再現し、実際のポート列挙は行わない
type MockLibrary struct {
	mu         sync.Mutex
	drivers    []MockPort
	lists      map[PortInfoList]*mockList
	infos      map[PortInfo]*MockPort
	next       uintptr
	failAlloc  bool
	loadResult Result
}

// NewMockLibrary は新しい MockLibrary を作成する
func NewMockLibrary(ports ...MockPort) *MockLibrary {
	return &MockLibrary{
		drivers: append([]MockPort(nil), ports...),
		lists:   make(map[PortInfoList]*mockList),
		infos:   make(map[PortInfo]*MockPort),
		next:    0x1000,
	}
}

// AddPort はテスト用にドライバのポートを追加する
func (m *MockLibrary) AddPort(port MockPort) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.drivers {
		if p.Path == port.Path && p.Name == port.Name {
			return
		}
	}
	m.drivers = append(m.drivers, port)
}

// RemovePort はテスト用にパスが一致するポートを削除する
func (m *MockLibrary) RemovePort(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, p := range m.drivers {
		if p.Path == path {
			m.drivers = append(m.drivers[:i], m.drivers[i+1:]...)
			return
		}
	}
}

// SetFailAllocations は割り当て失敗 (ErrorNoMemory) を発生させるかどうかを設定する
func (m *MockLibrary) SetFailAllocations(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failAlloc = fail
}

// SetLoadResult は Load が返す失敗コードを設定する。OK で通常動作に戻る
func (m *MockLibrary) SetLoadResult(code Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadResult = code
}

// OpenLists は解放されていないリストの数を返す
func (m *MockLibrary) OpenLists() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.lists)
}

// allocLocked は新しいハンドル値を払い出す（ロック済み前提）
func (m *MockLibrary) allocLocked() uintptr {
	m.next += 0x10
	return m.next
}

// ResultAsString は静的な説明を返す
func (m *MockLibrary) ResultAsString(code Result) string {
	return code.String()
}

// NewPortInfo は未初期化の PortInfo を割り当てる
func (m *MockLibrary) NewPortInfo(info *PortInfo) Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	if info == nil {
		return ErrorBadParameters
	}
	if m.failAlloc {
		return ErrorNoMemory
	}
	h := PortInfo(m.allocLocked())
	m.infos[h] = &MockPort{}
	*info = h
	return OK
}

// NewList は空のリストを割り当てる
func (m *MockLibrary) NewList(list *PortInfoList) Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	if list == nil {
		return ErrorBadParameters
	}
	if m.failAlloc {
		return ErrorNoMemory
	}
	h := PortInfoList(m.allocLocked())
	m.lists[h] = &mockList{}
	*list = h
	return OK
}

// Load は登録済みドライバのポートをリストに追加する
func (m *MockLibrary) Load(list PortInfoList) Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.lists[list]
	if !ok {
		return ErrorBadParameters
	}
	if m.loadResult != OK {
		return m.loadResult
	}
	// ドライバが一つもない場合はライブラリの読み込みエラー
	if len(m.drivers) == 0 {
		return ErrorLibrary
	}

	for _, d := range m.drivers {
		port := d
		h := PortInfo(m.allocLocked())
		m.infos[h] = &port
		if port.hidden() {
			l.claims = append(l.claims, h)
		} else {
			l.visible = append(l.visible, h)
		}
	}
	return OK
}

// Free はリストと所有するエントリを解放する
func (m *MockLibrary) Free(list PortInfoList) Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.lists[list]
	if !ok {
		return ErrorBadParameters
	}
	for _, h := range l.visible {
		delete(m.infos, h)
	}
	for _, h := range l.claims {
		delete(m.infos, h)
	}
	delete(m.lists, list)
	return OK
}

// Count は可視エントリの数を返す
func (m *MockLibrary) Count(list PortInfoList) Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.lists[list]
	if !ok {
		return ErrorBadParameters
	}
	return Result(len(l.visible))
}

// GetInfo は index 番目の可視エントリを info に書き込む
func (m *MockLibrary) GetInfo(list PortInfoList, index int, info *PortInfo) Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.lists[list]
	if !ok || info == nil {
		return ErrorBadParameters
	}
	if index < 0 || index >= len(l.visible) {
		return ErrorBadParameters
	}
	*info = l.visible[index]
	return OK
}

// LookupPath はパスの完全一致、次にパターン一致でエントリを探す
// パターン一致時は要求されたパスを持つ "Generic Port" を追加し、そのインデックスを返す
func (m *MockLibrary) LookupPath(list PortInfoList, path string) Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.lists[list]
	if !ok {
		return ErrorBadParameters
	}

	for i, h := range l.visible {
		if m.infos[h].Path == path {
			return Result(i)
		}
	}

	for _, h := range l.claims {
		claim := m.infos[h]
		g, err := glob.Compile(claim.Path)
		if err != nil {
			continue
		}
		if !g.Match(path) {
			continue
		}
		generic := PortInfo(m.allocLocked())
		m.infos[generic] = &MockPort{
			Name: genericPortName,
			Path: path,
			Type: claim.Type,
		}
		l.visible = append(l.visible, generic)
		return Result(len(l.visible) - 1)
	}

	return ErrorUnknownPort
}

// LookupName は表示名が完全一致する可視エントリを探す
func (m *MockLibrary) LookupName(list PortInfoList, name string) Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.lists[list]
	if !ok {
		return ErrorBadParameters
	}
	for i, h := range l.visible {
		if m.infos[h].Name == name {
			return Result(i)
		}
	}
	return ErrorUnknownPort
}

// Name はエントリの表示名を返す
func (m *MockLibrary) Name(info PortInfo) (string, Result) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.infos[info]
	if !ok {
		return "", ErrorBadParameters
	}
	return p.Name, OK
}

// Path はエントリのパスを返す
func (m *MockLibrary) Path(info PortInfo) (string, Result) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.infos[info]
	if !ok {
		return "", ErrorBadParameters
	}
	return p.Path, OK
}

// Type はエントリのポート種別を返す
func (m *MockLibrary) Type(info PortInfo) (PortType, Result) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.infos[info]
	if !ok {
		return PortNone, ErrorBadParameters
	}
	return p.Type, OK
}

// ParseMockPort は "name=path=type" 形式の文字列を MockPort に変換する
// type を省略した場合は PortNone
func ParseMockPort(s string) (MockPort, bool) {
	parts := strings.SplitN(s, "=", 3)
	if len(parts) < 2 {
		return MockPort{}, false
	}
	port := MockPort{Name: parts[0], Path: parts[1]}
	if len(parts) == 3 {
		t, ok := ParsePortType(parts[2])
		if !ok {
			return MockPort{}, false
		}
		port.Type = t
	}
	return port, true
}
