package port

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"gpport/internal/gphoto2"
)

// ErrNotFound は検索に一致するポートがないことを示す
var ErrNotFound = errors.New("port not found")

var _ Discovery = (*GPhotoDiscovery)(nil)

// GPhotoDiscovery は gphoto2 バインディングを使ったポート検出を実装する
type GPhotoDiscovery struct {
	lib    gphoto2.Library
	logger logrus.FieldLogger
}

// NewGPhotoDiscovery は新しいGPhotoDiscoveryを作成する
func NewGPhotoDiscovery(lib gphoto2.Library, logger logrus.FieldLogger) *GPhotoDiscovery {
	return &GPhotoDiscovery{
		lib:    lib,
		logger: logger.WithField("component", "discovery"),
	}
}

// ScanPorts はシステム内の利用可能なポートをスキャンする
func (d *GPhotoDiscovery) ScanPorts(ctx context.Context) ([]Port, error) {
	var ports []Port

	err := d.withLoadedList(ctx, func(list gphoto2.PortInfoList) error {
		count := d.lib.Count(list)
		if err := count.Err(); err != nil {
			return errors.Wrap(err, "ポート数の取得に失敗")
		}

		now := time.Now()
		ports = make([]Port, 0, int(count))
		for i := 0; i < int(count); i++ {
			// コンテキストのキャンセルをチェック
			if err := ctx.Err(); err != nil {
				return err
			}

			port, err := d.readPort(list, i)
			if err != nil {
				return err
			}
			port.LastSeen = now
			ports = append(ports, port)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	d.logger.WithField("count", len(ports)).Debug("ポートをスキャンしました")
	return ports, nil
}

// LookupPath はパスに一致するポートを検索する
// 完全一致がない場合はパターンを登録したドライバが一致することがある
func (d *GPhotoDiscovery) LookupPath(ctx context.Context, path string) (*Port, error) {
	return d.lookup(ctx, "path", path, d.lib.LookupPath)
}

// LookupName は表示名が完全一致するポートを検索する
func (d *GPhotoDiscovery) LookupName(ctx context.Context, name string) (*Port, error) {
	return d.lookup(ctx, "name", name, d.lib.LookupName)
}

// Describe はステータスコードの静的な説明を返す
func (d *GPhotoDiscovery) Describe(code gphoto2.Result) string {
	return d.lib.ResultAsString(code)
}

func (d *GPhotoDiscovery) lookup(
	ctx context.Context,
	field, key string,
	find func(gphoto2.PortInfoList, string) gphoto2.Result,
) (*Port, error) {
	var found *Port

	err := d.withLoadedList(ctx, func(list gphoto2.PortInfoList) error {
		idx := find(list, key)
		if idx == gphoto2.ErrorUnknownPort {
			return errors.Wrapf(ErrNotFound, "%s %q", field, key)
		}
		if err := idx.Err(); err != nil {
			return errors.Wrapf(err, "%s %q の検索に失敗", field, key)
		}

		port, err := d.readPort(list, int(idx))
		if err != nil {
			return err
		}
		port.LastSeen = time.Now()
		found = &port
		return nil
	})
	if err != nil {
		return nil, err
	}

	return found, nil
}

// readPort は index 番目のエントリを読み出す
func (d *GPhotoDiscovery) readPort(list gphoto2.PortInfoList, index int) (Port, error) {
	var info gphoto2.PortInfo
	if err := d.lib.GetInfo(list, index, &info).Err(); err != nil {
		return Port{}, errors.Wrapf(err, "ポート %d の情報取得に失敗", index)
	}

	name, ret := d.lib.Name(info)
	if err := ret.Err(); err != nil {
		return Port{}, errors.Wrapf(err, "ポート %d の名前取得に失敗", index)
	}
	path, ret := d.lib.Path(info)
	if err := ret.Err(); err != nil {
		return Port{}, errors.Wrapf(err, "ポート %d のパス取得に失敗", index)
	}
	portType, ret := d.lib.Type(info)
	if err := ret.Err(); err != nil {
		return Port{}, errors.Wrapf(err, "ポート %d の種別取得に失敗", index)
	}

	return Port{
		ID:    PortID(path),
		Index: index,
		Name:  name,
		Path:  path,
		Type:  portType.String(),
	}, nil
}

// withLoadedList はリストを作成・ロードして fn を呼び出し、必ず解放する
func (d *GPhotoDiscovery) withLoadedList(ctx context.Context, fn func(gphoto2.PortInfoList) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var list gphoto2.PortInfoList
	if err := d.lib.NewList(&list).Err(); err != nil {
		return errors.Wrap(err, "ポート情報リストの作成に失敗")
	}
	defer func() {
		if ret := d.lib.Free(list); !ret.IsOK() {
			d.logger.WithField("result", ret.String()).Warn("ポート情報リストの解放に失敗しました")
		}
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := d.lib.Load(list).Err(); err != nil {
		return errors.Wrap(err, "システムポートの読み込みに失敗")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return fn(list)
}
