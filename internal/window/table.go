package window

import (
	"context"
	"fmt"
	"strings"
)

// Entry はプラットフォームごとのバックエンド候補
type Entry struct {
	Backends []string // 優先順
	Debug    bool
}

// Table はプラットフォーム（GOOS）からバックエンド候補への対応表
type Table struct {
	Platforms map[string]Entry
	Default   Entry
}

// DefaultTable は標準の対応表を返す
// Windows と Linux は Chromium 系、それ以外はネイティブ WebView を優先し開発者ツールを有効にする
func DefaultTable() Table {
	chromium := Entry{Backends: []string{BackendLorca, BackendRod, BackendBrowser}}

	return Table{
		Platforms: map[string]Entry{
			"windows": chromium,
			"linux":   chromium,
		},
		Default: Entry{
			Backends: []string{BackendWebView, BackendLorca, BackendRod, BackendBrowser},
			Debug:    true,
		},
	}
}

// Lookup はプラットフォームの候補を返す
func (t Table) Lookup(goos string) Entry {
	if entry, ok := t.Platforms[goos]; ok {
		return entry
	}
	return t.Default
}

// Select はバックエンドを選択する
// override が指定されていればそれを使い、なければ対応表の候補のうち
// 登録済みかつ使用可能な最初のものを返す
func Select(ctx context.Context, factory *Factory, table Table, goos, override string) (Backend, Entry, error) {
	entry := table.Lookup(goos)

	if override != "" {
		backend, err := factory.Create(override)
		if err != nil {
			return nil, entry, fmt.Errorf("%w: %v", ErrNoBackend, err)
		}
		return backend, entry, nil
	}

	for _, name := range entry.Backends {
		backend, err := factory.Create(name)
		if err != nil {
			// このビルドに含まれていない
			continue
		}
		if backend.IsAvailable(ctx) {
			return backend, entry, nil
		}
	}

	return nil, entry, fmt.Errorf("%w: %s (候補: %s)", ErrNoBackend, goos, strings.Join(entry.Backends, ", "))
}
