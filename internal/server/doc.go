// Package server は、ポート検出結果を公開するHTTPサーバーを管理します。
//
// このパッケージは、HTTPサーバーの起動、ルーティング、
// ポートマネージャーのライフサイクル管理を担当します。
//
// 責務:
//   - HTTPサーバーの起動と管理
//   - 検出済みポートの一覧・詳細の配信
//   - パス・名前によるポート検索
//   - ステータスコードの説明の配信
//
// 仕様:
//   - gin を使用
//   - グレースフルシャットダウンに対応
//   - エラーレスポンスは共通のJSON形式
package server
