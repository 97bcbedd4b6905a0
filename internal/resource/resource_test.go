package resource

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newDevRoot はテスト用の開発モードディレクトリを作る
func newDevRoot(t *testing.T, index string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, TemplatesDir), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, StaticDir), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, TemplatesDir, "index.html"), []byte(index), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, StaticDir, "app.js"), []byte("// app"), 0o644))
	return dir
}

func render(t *testing.T, tmpl *Templates) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, tmpl.Get().ExecuteTemplate(&buf, "index.html", map[string]string{"Title": "Gin Webview App", "AppName": "Gin Webview App"}))
	return buf.String()
}

func TestLocatePackaged(t *testing.T) {
	root, err := Locate("")
	require.NoError(t, err)
	assert.Equal(t, ModePackaged, root.Mode())
	assert.Empty(t, root.Dir())
	assert.Empty(t, root.TemplateDir())

	static, err := root.Static()
	require.NoError(t, err)
	for _, name := range []string{"app.js", "style.css"} {
		_, err := fs.Stat(static, name)
		assert.NoError(t, err, name)
	}

	templates, err := root.Templates()
	require.NoError(t, err)
	tmpl, err := LoadTemplates(templates)
	require.NoError(t, err)
	assert.Contains(t, render(t, tmpl), "<title>Gin Webview App</title>")
}

func TestLocateDevelopment(t *testing.T) {
	dir := newDevRoot(t, "dev")

	root, err := Locate(dir)
	require.NoError(t, err)
	assert.Equal(t, ModeDevelopment, root.Mode())
	assert.Equal(t, filepath.Join(root.Dir(), TemplatesDir), root.TemplateDir())

	static, err := root.Static()
	require.NoError(t, err)
	data, err := fs.ReadFile(static, "app.js")
	require.NoError(t, err)
	assert.Equal(t, "// app", string(data))
}

func TestLocateInvalid(t *testing.T) {
	testCases := []struct {
		name  string
		setup func(t *testing.T) string
	}{
		{"存在しないディレクトリ", func(t *testing.T) string {
			return filepath.Join(t.TempDir(), "missing")
		}},
		{"static なし", func(t *testing.T) string {
			dir := t.TempDir()
			require.NoError(t, os.MkdirAll(filepath.Join(dir, TemplatesDir), 0o755))
			return dir
		}},
		{"ファイルを指定", func(t *testing.T) string {
			path := filepath.Join(t.TempDir(), "file")
			require.NoError(t, os.WriteFile(path, nil, 0o644))
			return path
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Locate(tc.setup(t))
			assert.ErrorIs(t, err, ErrInvalidRoot)
		})
	}
}

func TestSourceDir(t *testing.T) {
	dir := SourceDir()
	require.NotEmpty(t, dir)

	root, err := Locate(dir)
	require.NoError(t, err)
	assert.Equal(t, ModeDevelopment, root.Mode())
}

func TestTemplatesReloadKeepsPreviousOnError(t *testing.T) {
	dir := newDevRoot(t, "v1")
	tmpl, err := LoadTemplates(os.DirFS(filepath.Join(dir, TemplatesDir)))
	require.NoError(t, err)
	assert.Equal(t, "v1", render(t, tmpl))

	// 壊れたテンプレート
	require.NoError(t, os.WriteFile(filepath.Join(dir, TemplatesDir, "index.html"), []byte("{{ .Broken"), 0o644))
	assert.Error(t, tmpl.Reload())
	assert.Equal(t, "v1", render(t, tmpl))
}

func TestWatcherReloadsTemplates(t *testing.T) {
	dir := newDevRoot(t, "v1")
	root, err := Locate(dir)
	require.NoError(t, err)

	templates, err := root.Templates()
	require.NoError(t, err)
	tmpl, err := LoadTemplates(templates)
	require.NoError(t, err)

	w := NewWatcher(root.TemplateDir(), tmpl, nil)
	w.Debounce = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// 監視の開始を待ってから書き換える
	assert.Eventually(t, func() bool {
		_ = os.WriteFile(filepath.Join(dir, TemplatesDir, "index.html"), []byte("v2"), 0o644)
		var buf bytes.Buffer
		if err := tmpl.Get().ExecuteTemplate(&buf, "index.html", map[string]string{"Title": "Gin Webview App", "AppName": "Gin Webview App"}); err != nil {
			return false
		}
		return buf.String() == "v2"
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("監視の停止がタイムアウトしました")
	}
}
