package resource

import (
	"fmt"
	"html/template"
	"io/fs"
	"sync/atomic"
)

// Templates は解析済みテンプレートを保持する
// 再読み込みとリクエスト処理が並行しても安全
type Templates struct {
	fsys    fs.FS
	current atomic.Pointer[template.Template]
}

// LoadTemplates はテンプレートディレクトリの *.html を読み込む
func LoadTemplates(fsys fs.FS) (*Templates, error) {
	t := &Templates{fsys: fsys}
	if err := t.Reload(); err != nil {
		return nil, err
	}
	return t, nil
}

// Reload はテンプレートを解析し直す
// 解析に失敗した場合は以前のテンプレートを使い続ける
func (t *Templates) Reload() error {
	tmpl, err := template.ParseFS(t.fsys, "*.html")
	if err != nil {
		return fmt.Errorf("テンプレートの解析に失敗: %w", err)
	}
	t.current.Store(tmpl)
	return nil
}

// Get は現在のテンプレートを返す
func (t *Templates) Get() *template.Template {
	return t.current.Load()
}
