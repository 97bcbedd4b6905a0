package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"ginview/internal/config"
	"ginview/internal/generated"
	"ginview/internal/resource"

	"github.com/gin-gonic/gin"
)

const defaultShutdownTimeout = 5 * time.Second

// Server はHTTPサーバーを管理する構造体
type Server struct {
	config     *config.Config
	logger     *slog.Logger
	engine     *gin.Engine
	httpServer *http.Server

	resources    *resource.Root
	templates    *resource.Templates
	watcher      *resource.Watcher
	shellBackend string

	ready   chan struct{}
	started atomic.Bool

	mu   sync.RWMutex
	addr string // 実際にバインドしたアドレス
}

// Option はServerの生成オプション
type Option func(*Server)

// WithLogger はロガーを指定する
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithResources は解決済みのリソースルートを指定する
// 指定がなければ cfg.Resources.Dir から解決する
func WithResources(root *resource.Root) Option {
	return func(s *Server) {
		s.resources = root
	}
}

// WithShellBackend は /api/info に表示するウィンドウバックエンド名を指定する
func WithShellBackend(name string) Option {
	return func(s *Server) {
		s.shellBackend = name
	}
}

// NewGin は新しいGinサーバーを作成する
func NewGin(cfg *config.Config, opts ...Option) (*Server, error) {
	s := &Server{
		config: cfg,
		logger: slog.Default(),
		ready:  make(chan struct{}),
		addr:   cfg.ServerAddress(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.resources == nil {
		root, err := resource.Locate(cfg.Resources.Dir)
		if err != nil {
			return nil, fmt.Errorf("リソースの解決に失敗: %w", err)
		}
		s.resources = root
	}

	templateFS, err := s.resources.Templates()
	if err != nil {
		return nil, err
	}
	s.templates, err = resource.LoadTemplates(templateFS)
	if err != nil {
		return nil, err
	}
	staticFS, err := s.resources.Static()
	if err != nil {
		return nil, err
	}

	// 開発モードではテンプレートの変更を監視する
	if cfg.Resources.Watch && s.resources.Mode() == resource.ModeDevelopment {
		s.watcher = resource.NewWatcher(s.resources.TemplateDir(), s.templates, s.logger)
	}

	swagger, err := generated.GetSwagger()
	if err != nil {
		return nil, err
	}

	handler := &GinviewHandler{
		config:       cfg,
		templates:    s.templates,
		static:       staticFS,
		swagger:      swagger,
		shellBackend: s.shellBackend,
	}

	s.engine = newEngine(s.logger)
	generated.RegisterHandlersWithOptions(s.engine, handler, generated.GinServerOptions{
		ErrorHandler: handleBindError,
	})

	s.httpServer = &http.Server{
		Handler:      s.engine,
		ReadTimeout:  cfg.Server.ReadTimeout.Std(),
		WriteTimeout: cfg.Server.WriteTimeout.Std(),
	}

	s.logger.Debug("Ginサーバーを作成しました",
		"resources", string(s.resources.Mode()),
		"watch", s.watcher != nil)

	return s, nil
}

// newEngine はミドルウェアを設定したGinエンジンを作成する
func newEngine(logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery(), requestID(), accessLog(logger))
	engine.NoRoute(handleNotFound)

	return engine
}

// Handler はルーティング済みのHTTPハンドラを返す
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Ready はリスナーの確保が完了すると閉じられるチャネルを返す
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Addr はサーバーのアドレスを返す
// 起動後は実際にバインドしたアドレス（ポート0の場合も確定したポート）になる
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.addr
}

// URL はウィンドウが読み込むURLを返す
func (s *Server) URL() string {
	return "http://" + s.Addr()
}

// Start はサーバーを起動し、ctx がキャンセルされるまでブロックする
func (s *Server) Start(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return errors.New("サーバーは既に起動しています")
	}

	// リスナーを先に確保してから準備完了を通知する
	ln, err := net.Listen("tcp", s.config.ServerAddress())
	if err != nil {
		return fmt.Errorf("サーバーの起動に失敗 (%s): %w", s.config.ServerAddress(), err)
	}

	s.mu.Lock()
	s.addr = ln.Addr().String()
	s.mu.Unlock()

	// テンプレート監視（開発モードのみ）
	watchCtx, stopWatch := context.WithCancel(ctx)
	var wg sync.WaitGroup
	defer func() {
		stopWatch()
		wg.Wait()
	}()
	if s.watcher != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.watcher.Run(watchCtx); err != nil {
				s.logger.Warn("テンプレートの監視を開始できませんでした", "error", err)
			}
		}()
	}

	// サーバーを別ゴルーチンで起動
	serveCh := make(chan error, 1)
	go func() {
		defer close(serveCh)
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveCh <- fmt.Errorf("サーバーの実行に失敗: %w", err)
		}
	}()

	s.logger.Info("HTTPサーバーを起動しました", "url", s.URL())
	close(s.ready)

	select {
	case <-ctx.Done():
		s.logger.Debug("コンテキストがキャンセルされました")
	case err, ok := <-serveCh:
		if ok {
			return err
		}
		// 外部から Shutdown された
		return nil
	}

	// グレースフルシャットダウン
	if err := s.Shutdown(); err != nil {
		return err
	}
	<-serveCh
	return nil
}

// Shutdown はサーバーをグレースフルにシャットダウンする
func (s *Server) Shutdown() error {
	s.logger.Info("サーバーをシャットダウンしています...")

	timeout := s.config.Server.ShutdownTimeout.Std()
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("サーバーのシャットダウンに失敗: %w", err)
	}

	s.logger.Info("サーバーが正常にシャットダウンされました")
	return nil
}
