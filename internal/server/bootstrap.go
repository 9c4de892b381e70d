package server

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"gpport/internal/config"
	"gpport/internal/port"
)

// NewFromConfig は設定からバックエンドとポートマネージャーを組み立て、サーバーを作成する
func NewFromConfig(cfg *config.Config, logger logrus.FieldLogger) (*Server, error) {
	lib, err := port.NewLibrary(cfg.Discovery)
	if err != nil {
		return nil, errors.Wrap(err, "バックエンドの作成に失敗")
	}

	manager := port.NewDefaultManager(
		port.NewGPhotoDiscovery(lib, logger),
		port.ManagerOptions{
			AutoScan:     cfg.Discovery.AutoScan,
			ScanInterval: cfg.Discovery.ScanInterval,
			CacheTTL:     cfg.Discovery.CacheTTL,
		},
		logger,
	)

	return New(cfg, manager, logger), nil
}
