package window

import (
	"context"
	"fmt"

	"github.com/zserge/lorca"
)

// LorcaBackend は Chrome のアプリモードでウィンドウを開く
type LorcaBackend struct {
	locate func() string
	newUI  func(url, dir string, width, height int, customArgs ...string) (lorca.UI, error)
}

// NewLorcaBackend は新しいLorcaBackendを作成する
func NewLorcaBackend() Backend {
	return &LorcaBackend{
		locate: lorca.LocateChrome,
		newUI:  lorca.New,
	}
}

// Name はバックエンド名を返す
func (b *LorcaBackend) Name() string {
	return BackendLorca
}

// IsAvailable は Chrome が見つかるかどうかを返す
func (b *LorcaBackend) IsAvailable(ctx context.Context) bool {
	return b.locate() != ""
}

// Open はウィンドウを開き、閉じられるまで待つ
func (b *LorcaBackend) Open(ctx context.Context, spec Spec) error {
	var args []string
	if spec.Debug {
		args = append(args, "--auto-open-devtools-for-tabs")
	}

	// dir が空なら lorca が一時プロファイルを作って後始末する
	width, height := spec.Size()
	ui, err := b.newUI(spec.URL, "", width, height, args...)
	if err != nil {
		return fmt.Errorf("Chromeウィンドウの作成に失敗: %w", err)
	}
	defer ui.Close()

	select {
	case <-ui.Done():
	case <-ctx.Done():
	}
	return nil
}
