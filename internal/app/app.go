// Package app はサーバーとウィンドウを組み合わせてアプリケーションを実行する
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"ginview/internal/config"
	"ginview/internal/server"
	"ginview/internal/window"

	"golang.org/x/sync/errgroup"
)

// ErrWindow はウィンドウを開けなかったことを表す
var ErrWindow = errors.New("ウィンドウの起動に失敗")

type options struct {
	logger  *slog.Logger
	factory *window.Factory
	table   window.Table
	out     io.Writer
	goos    string
}

// Option はRunのオプション
type Option func(*options)

// WithLogger はロガーを指定する
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithFactory はウィンドウバックエンドのファクトリーを差し替える
func WithFactory(factory *window.Factory) Option {
	return func(o *options) {
		o.factory = factory
	}
}

// WithTable はプラットフォーム対応表を差し替える
func WithTable(table window.Table) Option {
	return func(o *options) {
		o.table = table
	}
}

// WithOutput は起動・終了メッセージの出力先を指定する
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.out = w
	}
}

// WithGOOS はバックエンド選択に使うプラットフォームを指定する
func WithGOOS(goos string) Option {
	return func(o *options) {
		o.goos = goos
	}
}

// Run はサーバーを起動してウィンドウを開き、ウィンドウが閉じられるまでブロックする
// ウィンドウは呼び出し元のゴルーチンで開く（ネイティブのイベントループはメインスレッドが必要）
func Run(ctx context.Context, cfg *config.Config, opts ...Option) error {
	o := &options{
		logger: slog.Default(),
		table:  window.DefaultTable(),
		out:    os.Stdout,
		goos:   runtime.GOOS,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.factory == nil {
		o.factory = window.NewFactory()
	}
	logger := o.logger

	printStart(o.out, cfg.App.Name)

	// バックエンドを選択
	backend, entry, err := window.Select(ctx, o.factory, o.table, o.goos, cfg.Window.Backend)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWindow, err)
	}
	logger.Info("ウィンドウバックエンドを選択しました", "backend", backend.Name(), "platform", o.goos)

	// サーバーを作成
	srv, err := server.NewGin(cfg,
		server.WithLogger(logger.With("component", "server")),
		server.WithShellBackend(backend.Name()),
	)
	if err != nil {
		return fmt.Errorf("サーバーの作成に失敗: %w", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// サーバーを別ゴルーチンで起動
	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		return srv.Start(gctx)
	})

	spec := window.Spec{
		Title:     cfg.Window.Title,
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		MinWidth:  cfg.Window.MinWidth,
		MinHeight: cfg.Window.MinHeight,
		Debug:     cfg.Window.Debug || entry.Debug,
	}
	policy := window.DefaultReadyPolicy()
	policy.Timeout = cfg.Window.ReadyTimeout.Std()
	policy.MaxRetries = cfg.Window.ReadyRetries

	openErr := openWindow(gctx, srv, backend, spec, policy, logger)

	// ウィンドウが閉じられたらサーバーを停止
	cancel()
	serveErr := g.Wait()

	switch {
	case serveErr != nil:
		return serveErr
	case openErr != nil && ctx.Err() == nil:
		return fmt.Errorf("%w: %w", ErrWindow, openErr)
	case openErr != nil:
		logger.Info("中断されました", "reason", ctx.Err())
	}

	printClosed(o.out)
	return nil
}

// openWindow はサーバーの準備完了を待ってからウィンドウを開く
func openWindow(ctx context.Context, srv *server.Server, backend window.Backend, spec window.Spec, policy window.ReadyPolicy, logger *slog.Logger) error {
	// リスナーの確保を待つ
	select {
	case <-srv.Ready():
	case <-ctx.Done():
		return fmt.Errorf("サーバーの起動を待機中に停止しました: %w", ctx.Err())
	}

	// ハンドラが応答することを確認する
	if err := window.WaitReady(ctx, srv.URL()+"/health", policy); err != nil {
		return err
	}

	spec.URL = srv.URL()
	logger.Info("ウィンドウを開きます", "url", spec.URL, "backend", backend.Name())
	if backend.Name() == window.BackendBrowser {
		// ブラウザのタブを閉じたことは検知できない
		logger.Info("ブラウザで開きました。終了するには Ctrl+C を押してください")
	}

	if err := backend.Open(ctx, spec); err != nil {
		return err
	}

	logger.Info("ウィンドウが閉じられました")
	return nil
}

// ExitCode はRunの結果をプロセスの終了コードに変換する
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
