package server

import (
	"time"

	"gpport/internal/port"
)

// HealthResponse はヘルスチェックのレスポンス
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// ServerInfo はサーバー情報
type ServerInfo struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// ScanInfo は最新スキャンの情報
type ScanInfo struct {
	ID        string    `json:"id"`
	ScannedAt time.Time `json:"scanned_at"`
	Count     int       `json:"count"`
}

// StatusResponse はシステム状態のレスポンス
type StatusResponse struct {
	Status    string     `json:"status"`
	Server    ServerInfo `json:"server"`
	Backend   string     `json:"backend"`
	Scan      ScanInfo   `json:"scan"`
	Timestamp time.Time  `json:"timestamp"`
}

// PortInfo はポート情報のレスポンス
type PortInfo struct {
	ID       string    `json:"id"`
	Index    int       `json:"index"`
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	Type     string    `json:"type"`
	LastSeen time.Time `json:"last_seen"`
}

// PortsResponse はポート一覧のレスポンス
type PortsResponse struct {
	Ports []PortInfo `json:"ports"`
	Scan  ScanInfo   `json:"scan"`
}

// ResultResponse はステータスコードの説明のレスポンス
type ResultResponse struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
	OK          bool   `json:"ok"`
}

// ErrorResponse は共通のエラーレスポンス
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Details   *string   `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func toPortInfo(p port.Port) PortInfo {
	return PortInfo{
		ID:       p.ID,
		Index:    p.Index,
		Name:     p.Name,
		Path:     p.Path,
		Type:     p.Type,
		LastSeen: p.LastSeen,
	}
}

func toScanInfo(s port.Snapshot) ScanInfo {
	return ScanInfo{
		ID:        s.ID,
		ScannedAt: s.ScannedAt,
		Count:     s.Count,
	}
}
