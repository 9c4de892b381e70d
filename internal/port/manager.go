package port

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"gpport/internal/gphoto2"
)

// ManagerOptions はManagerの動作設定
type ManagerOptions struct {
	AutoScan     bool          // バックグラウンドスキャンの有効/無効
	ScanInterval time.Duration // スキャン間隔
	CacheTTL     time.Duration // 検索結果のキャッシュ期間（0 は期限なし）
}

var _ Manager = (*DefaultManager)(nil)

// DefaultManagerOptions はデフォルトの設定を返す
func DefaultManagerOptions() ManagerOptions {
	return ManagerOptions{
		AutoScan:     true,
		ScanInterval: 30 * time.Second,
		CacheTTL:     time.Minute,
	}
}

// DefaultManager はManagerのデフォルト実装
type DefaultManager struct {
	discovery Discovery
	logger    logrus.FieldLogger
	options   ManagerOptions

	ports    map[string]*Port
	snapshot Snapshot
	mu       sync.RWMutex

	// バインディング呼び出しの直列化
	libMu sync.Mutex

	lookups *cache.Cache

	// 制御用
	stopCh  chan struct{}
	wg      sync.WaitGroup
	running bool
	ctrlMu  sync.Mutex
}

// NewDefaultManager は新しいDefaultManagerを作成する
func NewDefaultManager(discovery Discovery, options ManagerOptions, logger logrus.FieldLogger) *DefaultManager {
	return &DefaultManager{
		discovery: discovery,
		logger:    logger.WithField("component", "port-manager"),
		options:   options,
		ports:     make(map[string]*Port),
		lookups:   cache.New(options.CacheTTL, 2*options.CacheTTL),
		stopCh:    make(chan struct{}),
	}
}

// Start はポートマネージャーを開始する
func (m *DefaultManager) Start(ctx context.Context) error {
	m.ctrlMu.Lock()
	defer m.ctrlMu.Unlock()

	if m.running {
		return errors.New("ポートマネージャーは既に開始されています")
	}

	// 初期スキャンを実行
	if _, err := m.Rescan(ctx); err != nil {
		return errors.Wrap(err, "初期スキャンに失敗")
	}

	// 自動検出が有効な場合、バックグラウンドスキャンを開始
	if m.options.AutoScan && m.options.ScanInterval > 0 {
		m.stopCh = make(chan struct{})
		m.wg.Add(1)
		go m.backgroundScan(ctx, m.stopCh)
	}

	m.running = true
	return nil
}

// Stop はポートマネージャーを停止する
func (m *DefaultManager) Stop(_ context.Context) error {
	m.ctrlMu.Lock()
	defer m.ctrlMu.Unlock()

	if !m.running {
		return nil
	}

	// バックグラウンドスキャンを停止
	if m.options.AutoScan && m.options.ScanInterval > 0 {
		close(m.stopCh)
		m.wg.Wait()
	}

	m.running = false
	m.lookups.Flush()
	return nil
}

// GetPorts は最新スキャンのポート一覧をインデックス順に返す
func (m *DefaultManager) GetPorts() []Port {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ports := make([]Port, 0, len(m.ports))
	for _, p := range m.ports {
		ports = append(ports, *p)
	}
	sort.Slice(ports, func(i, j int) bool {
		return ports[i].Index < ports[j].Index
	})

	return ports
}

// GetPort は指定されたIDのポートを取得する
func (m *DefaultManager) GetPort(id string) (*Port, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, exists := m.ports[id]
	if !exists {
		return nil, false
	}

	// コピーを返す
	result := *p
	return &result, true
}

// Snapshot は最新スキャンの概要を返す
func (m *DefaultManager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}

// Rescan はポートを再スキャンする
// 失敗した場合は直前のスキャン結果を保持する
func (m *DefaultManager) Rescan(ctx context.Context) (Snapshot, error) {
	m.libMu.Lock()
	ports, err := m.discovery.ScanPorts(ctx)
	m.libMu.Unlock()
	if err != nil {
		m.logger.WithError(err).Warn("ポートのスキャンに失敗しました")
		return m.Snapshot(), err
	}

	next := make(map[string]*Port, len(ports))
	for i := range ports {
		p := ports[i]
		next[p.ID] = &p
	}

	m.mu.Lock()
	added, removed := diffPorts(m.ports, next)
	m.ports = next
	m.snapshot = Snapshot{
		ID:        uuid.New().String(),
		ScannedAt: time.Now(),
		Count:     len(next),
	}
	snapshot := m.snapshot
	m.mu.Unlock()

	// スキャン結果が変わった可能性があるのでキャッシュを破棄
	m.lookups.Flush()

	m.logger.WithFields(logrus.Fields{
		"scan_id": snapshot.ID,
		"count":   snapshot.Count,
		"added":   added,
		"removed": removed,
	}).Info("ポートをスキャンしました")

	return snapshot, nil
}

// LookupPath はパスに一致するポートを検索する
func (m *DefaultManager) LookupPath(ctx context.Context, path string) (*Port, error) {
	return m.cachedLookup(ctx, "path:"+path, func() (*Port, error) {
		return m.discovery.LookupPath(ctx, path)
	})
}

// LookupName は表示名が完全一致するポートを検索する
func (m *DefaultManager) LookupName(ctx context.Context, name string) (*Port, error) {
	return m.cachedLookup(ctx, "name:"+name, func() (*Port, error) {
		return m.discovery.LookupName(ctx, name)
	})
}

// Describe はステータスコードの静的な説明を返す
func (m *DefaultManager) Describe(code gphoto2.Result) string {
	return m.discovery.Describe(code)
}

// cachedLookup はキャッシュを確認し、なければ検索して結果を保存する
// 見つからなかった結果はキャッシュしない
func (m *DefaultManager) cachedLookup(ctx context.Context, key string, find func() (*Port, error)) (*Port, error) {
	if v, ok := m.lookups.Get(key); ok {
		p := v.(Port)
		return &p, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.libMu.Lock()
	p, err := find()
	m.libMu.Unlock()
	if err != nil {
		return nil, err
	}

	m.lookups.Set(key, *p, cache.DefaultExpiration)
	return p, nil
}

// backgroundScan は定期的なポートスキャンを実行する
func (m *DefaultManager) backgroundScan(ctx context.Context, stopCh <-chan struct{}) {
	defer m.wg.Done()

	ticker := time.NewTicker(m.options.ScanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			// エラーは Rescan 内でログ出力済み
			_, _ = m.Rescan(ctx)
		}
	}
}

// diffPorts は追加・削除されたポート数を数える
func diffPorts(prev, next map[string]*Port) (added, removed int) {
	for id := range next {
		if _, ok := prev[id]; !ok {
			added++
		}
	}
	for id := range prev {
		if _, ok := next[id]; !ok {
			removed++
		}
	}
	return added, removed
}
