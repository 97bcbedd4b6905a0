package window

import (
	"fmt"
	"sort"
)

// Creator はバックエンド作成関数の型
type Creator func() Backend

// builtinCreators はビルドタグで追加されるバックエンド
var builtinCreators = map[string]Creator{}

// Factory はバックエンドの作成を担う
// ゼロ値は何も登録されていない状態で使用できる
type Factory struct {
	creators map[string]Creator
}

// NewFactory は組み込みバックエンドを登録したファクトリーを作成する
func NewFactory() *Factory {
	factory := &Factory{}

	factory.Register(BackendLorca, NewLorcaBackend)
	factory.Register(BackendRod, NewRodBackend)
	factory.Register(BackendBrowser, NewBrowserBackend)

	// ビルドタグ付きのバックエンド（webview など）
	for name, creator := range builtinCreators {
		factory.Register(name, creator)
	}

	return factory
}

// Register はバックエンド作成関数を登録する
func (f *Factory) Register(name string, creator Creator) {
	if f.creators == nil {
		f.creators = make(map[string]Creator)
	}
	f.creators[name] = creator
}

// Create はバックエンドを作成する
func (f *Factory) Create(name string) (Backend, error) {
	creator, exists := f.creators[name]
	if !exists {
		return nil, fmt.Errorf("サポートされていないバックエンド: %s", name)
	}

	return creator(), nil
}

// SupportedBackends は登録されているバックエンド名を返す
func (f *Factory) SupportedBackends() []string {
	names := make([]string, 0, len(f.creators))
	for name := range f.creators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
