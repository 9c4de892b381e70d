package port

import (
	"github.com/pkg/errors"

	"gpport/internal/config"
	"gpport/internal/gphoto2"
)

// NewLibrary は設定されたバックエンドの Library を作成する
func NewLibrary(cfg config.DiscoveryConfig) (gphoto2.Library, error) {
	switch cfg.Backend {
	case config.BackendNative:
		if !gphoto2.NativeAvailable {
			return nil, errors.Wrap(gphoto2.ErrNotBuilt, "-tags gphoto2 を付けてビルドしてください")
		}
		return gphoto2.Native(), nil
	case config.BackendMock:
		return gphoto2.NewMockLibrary(cfg.LibraryPorts()...), nil
	default:
		return nil, errors.Errorf("未知のバックエンド: %s", cfg.Backend)
	}
}
