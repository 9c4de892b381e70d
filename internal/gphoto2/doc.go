// Package gphoto2 は libgphoto2_port のポート検出 API へのバインディング
//
// # 責務
// - GPPortInfo / GPPortInfoList の不透明なハンドル型の定義
// - ネイティブ関数（new, load, free, get_info, lookup_path, lookup_name, result_as_string）の呼び出し面
// - ネイティブのステータスコードの公開
//
// # 仕様
// - 全ての呼び出しは同期的で、タイムアウトやキャンセルはない
// - ハンドルの寿命管理（load 前の検索、二重解放など）は検証しない
// - unsafe なメモリ操作は native.go に閉じ込める
// - ネイティブ実装は cgo と gphoto2 ビルドタグが有効な場合のみリンクされる
//   それ以外のビルドでは全ての呼び出しが ErrorLibrary を返す
// - MockLibrary はテスト用に呼び出し契約だけを再現する
//
// # 前提要件
//   - libgphoto2 の開発パッケージと pkg-config
//     Ubuntu/Debian: sudo apt install libgphoto2-dev pkg-config
//     Red Hat/Fedora: sudo dnf install libgphoto2-devel pkgconf
//   - ビルド: go build -tags gphoto2 ./...
package gphoto2

var (
	_ Library = (*NativeLibrary)(nil)
	_ Library = (*MockLibrary)(nil)
)
