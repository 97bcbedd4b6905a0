package resource

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
)

//go:embed all:assets
var embedFS embed.FS

// Mode はリソースの読み込み元を表す
type Mode string

const (
	ModePackaged    Mode = "packaged"    // バイナリに埋め込まれたリソース
	ModeDevelopment Mode = "development" // ディスク上のリソース
)

// ルート配下のディレクトリ名
const (
	TemplatesDir = "templates"
	StaticDir    = "static"
)

// ErrInvalidRoot はリソースディレクトリの構成が正しくないことを表す
var ErrInvalidRoot = errors.New("無効なリソースディレクトリ")

// Root は解決済みのリソースルート
type Root struct {
	mode Mode
	dir  string // 開発モードのみ
	fsys fs.FS
}

// Locate はリソースルートを解決する
// dir が空なら埋め込みリソース、指定があればそのディレクトリを開発モードで使う
func Locate(dir string) (*Root, error) {
	if dir == "" {
		sub, err := fs.Sub(embedFS, "assets")
		if err != nil {
			return nil, fmt.Errorf("埋め込みリソースの作成に失敗: %w", err)
		}
		return &Root{mode: ModePackaged, fsys: sub}, nil
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("リソースパスの解決に失敗: %w", err)
	}

	// templates/ と static/ が揃っていること
	for _, name := range []string{"", TemplatesDir, StaticDir} {
		path := filepath.Join(abs, name)
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRoot, path, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%w: %s はディレクトリではありません", ErrInvalidRoot, path)
		}
	}

	return &Root{mode: ModeDevelopment, dir: abs, fsys: os.DirFS(abs)}, nil
}

// SourceDir はソースツリー上の assets/ の絶対パスを返す
// go run で起動した開発時に、編集中のファイルを直接読むために使う
func SourceDir() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return ""
	}
	return filepath.Join(filepath.Dir(file), "assets")
}

// Mode は読み込み元を返す
func (r *Root) Mode() Mode {
	return r.mode
}

// Dir は開発モードのルートディレクトリを返す（パッケージ版では空）
func (r *Root) Dir() string {
	return r.dir
}

// TemplateDir は開発モードのテンプレートディレクトリを返す（パッケージ版では空）
func (r *Root) TemplateDir() string {
	if r.dir == "" {
		return ""
	}
	return filepath.Join(r.dir, TemplatesDir)
}

// Templates はテンプレートのファイルシステムを返す
func (r *Root) Templates() (fs.FS, error) {
	return r.sub(TemplatesDir)
}

// Static は静的ファイルのファイルシステムを返す
func (r *Root) Static() (fs.FS, error) {
	return r.sub(StaticDir)
}

func (r *Root) sub(name string) (fs.FS, error) {
	sub, err := fs.Sub(r.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%s の取得に失敗: %w", name, err)
	}
	return sub, nil
}
