// Package logging は logrus のロガーを設定から組み立てる
package logging

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"gpport/internal/config"
)

// New は設定に従ってロガーを作成する
func New(cfg config.LogConfig, out io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, errors.Wrapf(err, "無効なログレベル: %s", cfg.Level)
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(level)

	switch cfg.Format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, errors.Errorf("無効なログ形式: %s", cfg.Format)
	}

	return logger, nil
}
