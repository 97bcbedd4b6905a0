package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConfigLoad は既定値での読み込みをテストする
func TestConfigLoad(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err, "設定の読み込みに失敗しました")
	require.NotNil(t, cfg)

	// 元のアプリケーションの定数と一致すること
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, DefaultAppName, cfg.App.Name)
	assert.Equal(t, DefaultGreeting, cfg.App.Greeting)
	assert.Equal(t, 1200, cfg.Window.Width)
	assert.Equal(t, 800, cfg.Window.Height)
	assert.Equal(t, 800, cfg.Window.MinWidth)
	assert.Equal(t, 600, cfg.Window.MinHeight)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout.Std())
	assert.Empty(t, cfg.Resources.Dir, "既定はパッケージ版リソース")
}

// TestConfigValidation は設定の検証をテストする
func TestConfigValidation(t *testing.T) {
	testCases := []struct {
		name      string
		modify    func(c *Config)
		expectErr bool
	}{
		{"正常な設定", func(c *Config) {}, false},
		{"エフェメラルポート", func(c *Config) { c.Server.Port = 0 }, false},
		{"localhost", func(c *Config) { c.Server.Host = "localhost" }, false},
		{"IPv6ループバック", func(c *Config) { c.Server.Host = "::1" }, false},
		{"無効なポート番号", func(c *Config) { c.Server.Port = 99999 }, true},
		{"負のポート番号", func(c *Config) { c.Server.Port = -1 }, true},
		{"ホストなし", func(c *Config) { c.Server.Host = "" }, true},
		{"ループバック以外のホスト", func(c *Config) { c.Server.Host = "0.0.0.0" }, true},
		{"最小サイズを下回る", func(c *Config) { c.Window.Width = 640 }, true},
		{"ウィンドウ幅ゼロ", func(c *Config) { c.Window.Width = 0 }, true},
		{"準備確認回数ゼロ", func(c *Config) { c.Window.ReadyRetries = 0 }, true},
		{"無効なログレベル", func(c *Config) { c.Log.Level = "verbose" }, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.modify(cfg)
			err := cfg.Validate()
			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestServerAddress はサーバーアドレスの生成をテストする
func TestServerAddress(t *testing.T) {
	cfg := Default()
	cfg.Server.Port = 9090

	assert.Equal(t, "127.0.0.1:9090", cfg.ServerAddress())
	assert.Equal(t, "http://127.0.0.1:9090", cfg.BaseURL())

	cfg.Server.Host = "::1"
	assert.Equal(t, "[::1]:9090", cfg.ServerAddress())
}

// TestEnvironmentVariables は環境変数の処理をテストする
func TestEnvironmentVariables(t *testing.T) {
	t.Setenv("GINVIEW_HOST", "localhost")
	t.Setenv("GINVIEW_PORT", "9999")
	t.Setenv("GINVIEW_BACKEND", "browser")
	t.Setenv("GINVIEW_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "browser", cfg.Window.Backend)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("YAML", func(t *testing.T) {
		path := filepath.Join(dir, "ginview.yaml")
		content := `
app:
  name: My Shell
server:
  port: 6001
  shutdown_timeout: 2s
window:
  backend: lorca
  debug: true
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "My Shell", cfg.App.Name)
		assert.Equal(t, DefaultGreeting, cfg.App.Greeting, "ファイルにない項目は既定値のまま")
		assert.Equal(t, 6001, cfg.Server.Port)
		assert.Equal(t, 2*time.Second, cfg.Server.ShutdownTimeout.Std())
		assert.Equal(t, "lorca", cfg.Window.Backend)
		assert.True(t, cfg.Window.Debug)
	})

	t.Run("TOML", func(t *testing.T) {
		path := filepath.Join(dir, "ginview.toml")
		content := `
[server]
port = 6002
read_timeout = "3s"

[window]
width = 1024
height = 768
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 6002, cfg.Server.Port)
		assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout.Std())
		assert.Equal(t, 1024, cfg.Window.Width)
		assert.Equal(t, 768, cfg.Window.Height)
	})

	t.Run("空のYAML", func(t *testing.T) {
		path := filepath.Join(dir, "empty.yml")
		require.NoError(t, os.WriteFile(path, nil, 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, DefaultPort, cfg.Server.Port)
	})

	t.Run("未知のキー", func(t *testing.T) {
		path := filepath.Join(dir, "unknown.yaml")
		require.NoError(t, os.WriteFile(path, []byte("server:\n  prot: 1\n"), 0o600))

		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("不正な時間指定", func(t *testing.T) {
		path := filepath.Join(dir, "bad.toml")
		require.NoError(t, os.WriteFile(path, []byte("[server]\nread_timeout = \"soon\"\n"), 0o600))

		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("未対応の拡張子", func(t *testing.T) {
		path := filepath.Join(dir, "ginview.json")
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))

		_, err := Load(path)
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("ファイルなし", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "missing.yaml"))
		assert.Error(t, err)
	})
}
