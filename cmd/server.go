// Package main はgpportサーバーコマンドの実装です
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"

	"gpport/internal/config"
	"gpport/internal/gphoto2"
	"gpport/internal/logging"
	"gpport/internal/port"
	"gpport/internal/server"
)

// options はコマンドラインオプション
type options struct {
	Host      string   `long:"host" description:"サーバーのホスト (デフォルト: 0.0.0.0)"`
	Port      int      `long:"port" description:"サーバーのポート (デフォルト: 8080)"`
	Backend   string   `long:"backend" choice:"native" choice:"mock" description:"ポート検出のバックエンド"`
	Config    string   `short:"c" long:"config" description:"YAML設定ファイル"`
	MockPorts []string `long:"mock-port" value-name:"NAME=PATH=TYPE" description:"mock バックエンドのポート (複数指定可)"`
	List      bool     `long:"list" description:"ポートを一度スキャンして表示し終了する"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		// ヘルプ表示
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}

	// 設定を読み込む
	path := opts.Config
	if path == "" {
		path = os.Getenv("GPPORT_CONFIG")
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	// コマンドラインオプションで設定を上書き
	if err := applyOptions(cfg, opts); err != nil {
		log.Fatalf("オプションが不正です: %v", err)
	}

	logger, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		log.Fatalf("ロガーの作成に失敗しました: %v", err)
	}

	ctx := context.Background()

	if opts.List {
		if err := listPorts(ctx, cfg, logger); err != nil {
			logger.WithError(err).Fatal("ポートのスキャンに失敗しました")
		}
		return
	}

	srv, err := server.NewFromConfig(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("サーバーの作成に失敗しました")
	}

	// サーバーを起動
	logger.WithField("addr", cfg.ServerAddress()).Info("gpport サーバーを起動します")
	if err := srv.Start(ctx); err != nil {
		logger.WithError(err).Fatal("サーバーの起動に失敗しました")
	}
}

// applyOptions はコマンドラインオプションを設定に反映する
func applyOptions(cfg *config.Config, opts options) error {
	if opts.Host != "" {
		cfg.Server.Host = opts.Host
	}
	if opts.Port != 0 {
		cfg.Server.Port = opts.Port
	}
	if opts.Backend != "" {
		cfg.Discovery.Backend = opts.Backend
	}
	if len(opts.MockPorts) > 0 {
		cfg.Discovery.MockPorts = nil
		for _, s := range opts.MockPorts {
			p, ok := gphoto2.ParseMockPort(s)
			if !ok {
				return fmt.Errorf("--mock-port %q は NAME=PATH=TYPE 形式で指定してください", s)
			}
			cfg.Discovery.MockPorts = append(cfg.Discovery.MockPorts, config.MockPortConfig{
				Name: p.Name,
				Path: p.Path,
				Type: p.Type.String(),
			})
		}
	}

	return cfg.Validate()
}

// listPorts はポートを一度スキャンして標準出力に表示する
func listPorts(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger) error {
	lib, err := port.NewLibrary(cfg.Discovery)
	if err != nil {
		return err
	}

	ports, err := port.NewGPhotoDiscovery(lib, logger).ScanPorts(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tNAME\tPATH\tTYPE")
	for _, p := range ports {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.Index, p.Name, p.Path, p.Type)
	}
	return w.Flush()
}
