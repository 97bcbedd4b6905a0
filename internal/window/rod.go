package window

import (
	"context"
	"fmt"

	"github.com/go-rod/rod/lib/launcher"
)

// RodBackend は go-rod のランチャーで Chromium をアプリモードで起動する
type RodBackend struct {
	lookPath func() (string, bool)
}

// NewRodBackend は新しいRodBackendを作成する
func NewRodBackend() Backend {
	return &RodBackend{lookPath: launcher.LookPath}
}

// Name はバックエンド名を返す
func (b *RodBackend) Name() string {
	return BackendRod
}

// IsAvailable はローカルにブラウザがあるかどうかを返す
// ランチャーの自動ダウンロードには頼らない
func (b *RodBackend) IsAvailable(ctx context.Context) bool {
	_, ok := b.lookPath()
	return ok
}

// Open はウィンドウを開き、ブラウザプロセスが終了するまで待つ
func (b *RodBackend) Open(ctx context.Context, spec Spec) error {
	width, height := spec.Size()
	l := launcher.NewAppMode(spec.URL).
		Set("window-size", fmt.Sprintf("%d,%d", width, height))
	if bin, ok := b.lookPath(); ok {
		l = l.Bin(bin)
	}
	if spec.Debug {
		l = l.Devtools(true)
	}

	if _, err := l.Launch(); err != nil {
		return fmt.Errorf("Chromiumの起動に失敗: %w", err)
	}

	// Cleanup はブラウザの終了を待ってからプロファイルを削除する
	exited := make(chan struct{})
	go func() {
		l.Cleanup()
		close(exited)
	}()

	select {
	case <-exited:
	case <-ctx.Done():
		l.Kill()
		<-exited
	}
	return nil
}
