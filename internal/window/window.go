package window

import (
	"context"
	"errors"
)

// バックエンド名
const (
	BackendLorca   = "lorca"
	BackendRod     = "rod"
	BackendWebView = "webview"
	BackendBrowser = "browser"
)

var (
	// ErrNoBackend は使用できるバックエンドがないことを表す
	ErrNoBackend = errors.New("使用できるウィンドウバックエンドがありません")

	// ErrNotReady はサーバーの準備完了を確認できなかったことを表す
	ErrNotReady = errors.New("サーバーの準備が完了しませんでした")
)

// Spec は開くウィンドウの内容
type Spec struct {
	Title     string
	URL       string
	Width     int
	Height    int
	MinWidth  int
	MinHeight int
	Debug     bool // 開発者ツールを有効にする
}

// Size は最小サイズを下回らないように調整した初期サイズを返す
// 最小サイズを強制できないバックエンドは初期サイズだけでも守る
func (s Spec) Size() (width, height int) {
	return max(s.Width, s.MinWidth), max(s.Height, s.MinHeight)
}

// Backend はウィンドウを描画するバックエンド
type Backend interface {
	// Name はバックエンド名を返す
	Name() string

	// IsAvailable はこの環境で使用できるかを返す
	IsAvailable(ctx context.Context) bool

	// Open はウィンドウを開き、閉じられるか ctx がキャンセルされるまでブロックする
	// ctx のキャンセルで閉じた場合は nil を返す
	Open(ctx context.Context, spec Spec) error
}
