// Package port カメラに到達できる通信ポートの検出を担う
//
// # 責務
// - gphoto2 バインディングの呼び出し順序の管理（new → load → count/get/lookup → free）
// - ネイティブのステータスコードの解釈とエラーへの変換
// - 検出済みポートの保持と定期的な再スキャン
// - パス・名前検索結果のキャッシュ
//
// # 仕様
// - Discovery: 呼び出しごとにリストを作成・ロードし、必ず解放する
// - Manager: 最新スキャン結果の保持、バックグラウンドスキャン、検索キャッシュ
// - ネイティブ呼び出しはキャンセルできないため、コンテキストは呼び出しの間で確認する
// - バインディングは排他制御を持たないため、Manager が全ての呼び出しを直列化する
package port
