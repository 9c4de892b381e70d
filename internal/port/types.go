package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gpport/internal/gphoto2"
)

// portNamespace はポートIDを導出するための UUID 名前空間
var portNamespace = uuid.MustParse("5a0f7a52-4c1e-4c7e-9d0b-6f1f3c9a2b10")

// Port は検出された通信ポートの情報
type Port struct {
	ID       string    // パスから導出される一意識別子
	Index    int       // 検出時のリスト内インデックス
	Name     string    // 表示名
	Path     string    // ポートパス（例: usb:001,004）
	Type     string    // ポート種別（例: usb）
	LastSeen time.Time // 最後に検出された時刻
}

// PortID はパスから決定的なポートIDを生成する
func PortID(path string) string {
	return uuid.NewSHA1(portNamespace, []byte(path)).String()
}

// Snapshot は一回のスキャン結果の概要
type Snapshot struct {
	ID        string    // スキャンごとに払い出される識別子
	ScannedAt time.Time // スキャン完了時刻
	Count     int       // 検出されたポート数
}

// Discovery はポートの検出機能を提供する
type Discovery interface {
	// ScanPorts はシステムの利用可能なポートをスキャンする
	ScanPorts(ctx context.Context) ([]Port, error)

	// LookupPath はパスに一致するポートを検索する
	LookupPath(ctx context.Context, path string) (*Port, error)

	// LookupName は表示名が完全一致するポートを検索する
	LookupName(ctx context.Context, name string) (*Port, error)

	// Describe はステータスコードの静的な説明を返す
	Describe(code gphoto2.Result) string
}

// Manager は検出済みポートの管理を担うインターフェース
type Manager interface {
	// Start は初期スキャンを行い、必要ならバックグラウンドスキャンを開始する
	Start(ctx context.Context) error

	// Stop はバックグラウンドスキャンを停止する
	Stop(ctx context.Context) error

	// GetPorts は最新スキャンのポート一覧をインデックス順に返す
	GetPorts() []Port

	// GetPort は指定されたIDのポートを取得する
	GetPort(id string) (*Port, bool)

	// Rescan はポートを再スキャンする
	Rescan(ctx context.Context) (Snapshot, error)

	// Snapshot は最新スキャンの概要を返す
	Snapshot() Snapshot

	// LookupPath はパスに一致するポートを検索する
	LookupPath(ctx context.Context, path string) (*Port, error)

	// LookupName は表示名が完全一致するポートを検索する
	LookupName(ctx context.Context, name string) (*Port, error)

	// Describe はステータスコードの静的な説明を返す
	Describe(code gphoto2.Result) string
}
