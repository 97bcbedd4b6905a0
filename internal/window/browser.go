package window

import (
	"context"
	"fmt"

	"github.com/pkg/browser"
)

// BrowserBackend は既定のブラウザでURLを開く
// ウィンドウが閉じられたことは検知できないため、ctx のキャンセルまでブロックする
type BrowserBackend struct {
	open func(url string) error
}

// NewBrowserBackend は新しいBrowserBackendを作成する
func NewBrowserBackend() Backend {
	return &BrowserBackend{open: browser.OpenURL}
}

// Name はバックエンド名を返す
func (b *BrowserBackend) Name() string {
	return BackendBrowser
}

// IsAvailable は常に true を返す
func (b *BrowserBackend) IsAvailable(ctx context.Context) bool {
	return true
}

// Open はブラウザでURLを開き、ctx がキャンセルされるまで待つ
func (b *BrowserBackend) Open(ctx context.Context, spec Spec) error {
	if err := b.open(spec.URL); err != nil {
		return fmt.Errorf("ブラウザの起動に失敗: %w", err)
	}

	<-ctx.Done()
	return nil
}
