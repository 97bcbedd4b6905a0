//go:build webview

package window

import (
	"context"
	"errors"

	webview "github.com/webview/webview_go"
)

func init() {
	builtinCreators[BackendWebView] = NewWebViewBackend
}

// WebViewBackend は OS ネイティブの WebView でウィンドウを開く
// Open はメインスレッド（main パッケージで LockOSThread 済み）から呼ぶこと
type WebViewBackend struct{}

// NewWebViewBackend は新しいWebViewBackendを作成する
func NewWebViewBackend() Backend {
	return &WebViewBackend{}
}

// Name はバックエンド名を返す
func (b *WebViewBackend) Name() string {
	return BackendWebView
}

// IsAvailable はビルドに含まれていれば true を返す
func (b *WebViewBackend) IsAvailable(ctx context.Context) bool {
	return true
}

// Open はウィンドウを開き、イベントループが終わるまでブロックする
func (b *WebViewBackend) Open(ctx context.Context, spec Spec) error {
	w := webview.New(spec.Debug)
	if w == nil {
		return errors.New("WebViewの作成に失敗しました")
	}
	defer w.Destroy()

	w.SetTitle(spec.Title)
	if spec.MinWidth > 0 && spec.MinHeight > 0 {
		w.SetSize(spec.MinWidth, spec.MinHeight, webview.HintMin)
	}
	w.SetSize(spec.Width, spec.Height, webview.HintNone)
	w.Navigate(spec.URL)

	// ctx のキャンセルでイベントループを止める
	stop := context.AfterFunc(ctx, func() {
		w.Dispatch(w.Terminate)
	})
	defer stop()

	w.Run()
	return nil
}
