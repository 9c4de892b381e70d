package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"gpport/internal/gphoto2"
)

// バックエンドの種類
const (
	BackendNative = "native" // libgphoto2_port を cgo 経由で使う
	BackendMock   = "mock"   // インメモリのモック
)

// Config はアプリケーション全体の設定を保持する構造体
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Discovery DiscoveryConfig `yaml:"discovery"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig はHTTPサーバーの設定
type ServerConfig struct {
	Host string `yaml:"host" validate:"required"`        // リッスンするホスト
	Port int    `yaml:"port" validate:"min=1,max=65535"` // リッスンするポート番号

	// タイムアウト設定
	ReadTimeout  time.Duration `yaml:"read_timeout" validate:"gte=0"`  // 読み込みタイムアウト
	WriteTimeout time.Duration `yaml:"write_timeout" validate:"gte=0"` // 書き込みタイムアウト
}

// DiscoveryConfig はポート検出の設定
type DiscoveryConfig struct {
	Backend      string           `yaml:"backend" validate:"oneof=native mock"`
	AutoScan     bool             `yaml:"auto_scan"`
	ScanInterval time.Duration    `yaml:"scan_interval" validate:"gt=0"` // 再スキャン間隔
	CacheTTL     time.Duration    `yaml:"cache_ttl" validate:"gt=0"`     // 検索結果のキャッシュ期間
	MockPorts    []MockPortConfig `yaml:"mock_ports" validate:"dive"`    // mock バックエンドのポート
}

// MockPortConfig はモックバックエンドに登録するポート
// name が空のものはパス群を主張するドライバとして扱われる（例: path "serial:*"）
type MockPortConfig struct {
	Name string `yaml:"name"`
	Path string `yaml:"path" validate:"required"`
	Type string `yaml:"type" validate:"omitempty,oneof=none serial usb disk ptpip usbdiskdirect usbscsi ip"`
}

// LogConfig はログ出力の設定
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// Default はデフォルト設定を返す
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Discovery: DiscoveryConfig{
			Backend:      BackendNative,
			AutoScan:     true,
			ScanInterval: 30 * time.Second,
			CacheTTL:     time.Minute,
			MockPorts:    DefaultMockPorts(),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultMockPorts はモックバックエンドのデフォルトのポート構成
func DefaultMockPorts() []MockPortConfig {
	return []MockPortConfig{
		{Name: "Universal Serial Bus", Path: "usb:", Type: "usb"},
		{Name: "PTP/IP Connection", Path: "ptpip:", Type: "ptpip"},
		{Name: "", Path: "serial:*", Type: "serial"},
	}
}

// Load は設定を読み込む
// GPPORT_CONFIG が設定されていればYAMLファイルを読み込み、その後環境変数で上書きする
func Load() (*Config, error) {
	return LoadFile(os.Getenv("GPPORT_CONFIG"))
}

// LoadFile は指定されたYAMLファイルから設定を読み込む
// path が空の場合はデフォルト値から開始する
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "設定ファイル %s の読み込みに失敗", path)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "設定ファイル %s の解析に失敗", path)
		}
	}

	cfg.applyEnv()

	// 設定の検証
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "設定の検証に失敗")
	}

	return cfg, nil
}

// applyEnv は環境変数で設定を上書きする
func (c *Config) applyEnv() {
	c.Server.Host = getEnvOrDefault("SERVER_HOST", c.Server.Host)
	c.Server.Port = getEnvAsIntOrDefault("PORT", c.Server.Port)
	c.Discovery.Backend = getEnvOrDefault("GPPORT_BACKEND", c.Discovery.Backend)
	c.Log.Level = getEnvOrDefault("LOG_LEVEL", c.Log.Level)
}

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// ServerAddress はサーバーのリッスンアドレスを返す
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// LibraryPorts はモックバックエンドに渡すポートに変換する
func (d DiscoveryConfig) LibraryPorts() []gphoto2.MockPort {
	ports := make([]gphoto2.MockPort, 0, len(d.MockPorts))
	for _, p := range d.MockPorts {
		t, _ := gphoto2.ParsePortType(p.Type)
		ports = append(ports, gphoto2.MockPort{Name: p.Name, Path: p.Path, Type: t})
	}
	return ports
}

// getEnvOrDefault は環境変数を取得し、設定されていない場合はデフォルト値を返す
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault は環境変数を整数として取得し、設定されていない場合はデフォルト値を返す
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var intVal int
		if _, err := fmt.Sscanf(value, "%d", &intVal); err == nil {
			return intVal
		}
	}
	return defaultValue
}
