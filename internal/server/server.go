package server

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"gpport/internal/config"
	"gpport/internal/port"
)

// Server はHTTPサーバーを管理する構造体
type Server struct {
	config     *config.Config
	manager    port.Manager
	logger     logrus.FieldLogger
	engine     *gin.Engine
	httpServer *http.Server
}

// New は新しいServerインスタンスを作成する
func New(cfg *config.Config, manager port.Manager, logger logrus.FieldLogger) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(logger))

	s := &Server{
		config:  cfg,
		manager: manager,
		logger:  logger.WithField("component", "server"),
		engine:  engine,
		httpServer: &http.Server{
			Addr:         cfg.ServerAddress(),
			Handler:      engine,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}
	s.setupRoutes()

	return s
}

// Handler はルーティング済みのハンドラを返す
func (s *Server) Handler() http.Handler {
	return s.engine
}

// setupRoutes はHTTPルートを設定する
func (s *Server) setupRoutes() {
	h := &PortHandler{config: s.config, manager: s.manager}

	// ヘルスチェックエンドポイント
	s.engine.GET("/health", h.HealthCheck)

	// APIエンドポイント
	api := s.engine.Group("/api")
	api.GET("/status", h.GetStatus)
	api.GET("/ports", h.GetPorts)
	api.GET("/ports/:id", h.GetPort)
	api.POST("/ports/rescan", h.Rescan)
	api.GET("/lookup", h.Lookup)
	api.GET("/results/:code", h.GetResult)
}

// Start はポートマネージャーとサーバーを起動する
func (s *Server) Start(ctx context.Context) error {
	if err := s.manager.Start(ctx); err != nil {
		return errors.Wrap(err, "ポートマネージャーの起動に失敗")
	}

	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		_ = s.manager.Stop(ctx)
		return errors.Wrap(err, "サーバーの起動に失敗")
	}

	// シャットダウン用のチャンネル
	shutdownCh := make(chan error, 1)

	// サーバーを別ゴルーチンで起動
	go func() {
		s.logger.WithField("addr", listener.Addr().String()).Info("HTTPサーバーを起動しています")
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			shutdownCh <- errors.Wrap(err, "サーバーの実行に失敗")
		}
	}()

	// シグナルハンドリング
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	// コンテキストかシグナルを待つ
	select {
	case <-ctx.Done():
		s.logger.Info("コンテキストがキャンセルされました")
	case sig := <-sigCh:
		s.logger.WithField("signal", sig.String()).Info("シグナルを受信しました")
	case err := <-shutdownCh:
		_ = s.manager.Stop(context.Background())
		return err
	}

	// グレースフルシャットダウン
	return s.Shutdown()
}

// Shutdown はサーバーをグレースフルにシャットダウンする
func (s *Server) Shutdown() error {
	s.logger.Info("サーバーをシャットダウンしています")

	// 5秒のタイムアウトを設定
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "サーバーのシャットダウンに失敗")
	}
	if err := s.manager.Stop(ctx); err != nil {
		return errors.Wrap(err, "ポートマネージャーの停止に失敗")
	}

	s.logger.Info("サーバーが正常にシャットダウンされました")
	return nil
}

// requestLogger はリクエストをログ出力するミドルウェア
func requestLogger(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}).Debug("リクエストを処理しました")
	}
}
