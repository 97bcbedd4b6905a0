package config

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"
)

// Config はアプリケーション全体の設定を保持する構造体
// サーバー起動とウィンドウ表示の両方にこの値を明示的に渡す
type Config struct {
	App       AppConfig      `yaml:"app" toml:"app"`
	Server    ServerConfig   `yaml:"server" toml:"server"`
	Window    WindowConfig   `yaml:"window" toml:"window"`
	Resources ResourceConfig `yaml:"resources" toml:"resources"`
	Log       LogConfig      `yaml:"log" toml:"log"`
}

// AppConfig はアプリケーションのメタデータ
type AppConfig struct {
	Name     string `yaml:"name" toml:"name"`         // アプリケーション名
	Version  string `yaml:"version" toml:"version"`   // バージョン
	Greeting string `yaml:"greeting" toml:"greeting"` // /api/hello が返す挨拶文
}

// ServerConfig はHTTPサーバーの設定
type ServerConfig struct {
	Host string `yaml:"host" toml:"host"` // リッスンするホスト（ループバックのみ）
	Port int    `yaml:"port" toml:"port"` // リッスンするポート番号（0はエフェメラル）

	// タイムアウト設定
	ReadTimeout     Duration `yaml:"read_timeout" toml:"read_timeout"`         // 読み込みタイムアウト
	WriteTimeout    Duration `yaml:"write_timeout" toml:"write_timeout"`       // 書き込みタイムアウト
	ShutdownTimeout Duration `yaml:"shutdown_timeout" toml:"shutdown_timeout"` // グレースフルシャットダウンの猶予
}

// WindowConfig はネイティブウィンドウの設定
type WindowConfig struct {
	Title     string `yaml:"title" toml:"title"`
	Width     int    `yaml:"width" toml:"width"`
	Height    int    `yaml:"height" toml:"height"`
	MinWidth  int    `yaml:"min_width" toml:"min_width"`
	MinHeight int    `yaml:"min_height" toml:"min_height"`

	// Backend は描画バックエンドの明示指定（空ならプラットフォーム表から自動選択）
	Backend string `yaml:"backend" toml:"backend"`
	Debug   bool   `yaml:"debug" toml:"debug"`

	// サーバーの準備完了を待つ上限
	ReadyTimeout Duration `yaml:"ready_timeout" toml:"ready_timeout"`
	ReadyRetries int      `yaml:"ready_retries" toml:"ready_retries"`
}

// ResourceConfig はテンプレートと静的ファイルの配置
type ResourceConfig struct {
	// Dir が空なら埋め込みリソース（パッケージ版）、指定があれば開発モード
	Dir   string `yaml:"dir" toml:"dir"`
	Watch bool   `yaml:"watch" toml:"watch"` // 開発モードでテンプレートの変更を監視する
}

// LogConfig はログ出力の設定
type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`   // debug, info, warn, error
	Format string `yaml:"format" toml:"format"` // text, json, auto
}

// 既定値
const (
	DefaultAppName  = "Gin Webview App"
	DefaultVersion  = "1.0.0"
	DefaultGreeting = "Hello from Gin!"
	DefaultHost     = "127.0.0.1"
	DefaultPort     = 5000
)

// Default は元のアプリケーションと同じ定数から設定を作る
func Default() *Config {
	return &Config{
		App: AppConfig{
			Name:     DefaultAppName,
			Version:  DefaultVersion,
			Greeting: DefaultGreeting,
		},
		Server: ServerConfig{
			Host:            DefaultHost,
			Port:            DefaultPort,
			ReadTimeout:     Duration(10 * time.Second),
			WriteTimeout:    Duration(10 * time.Second),
			ShutdownTimeout: Duration(5 * time.Second),
		},
		Window: WindowConfig{
			Title:        DefaultAppName,
			Width:        1200,
			Height:       800,
			MinWidth:     800,
			MinHeight:    600,
			ReadyTimeout: Duration(10 * time.Second),
			ReadyRetries: 20,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}

// Load は設定を読み込む
// 既定値 → 設定ファイル（path が空でなければ） → 環境変数 の順に上書きして検証する
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	// 設定の検証
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("設定の検証に失敗: %w", err)
	}

	return cfg, nil
}

// applyEnv は環境変数の値で設定を上書きする
func (c *Config) applyEnv() {
	c.Server.Host = getEnvOrDefault("GINVIEW_HOST", c.Server.Host)
	c.Server.Port = getEnvAsIntOrDefault("GINVIEW_PORT", c.Server.Port)
	c.Window.Backend = getEnvOrDefault("GINVIEW_BACKEND", c.Window.Backend)
	c.Resources.Dir = getEnvOrDefault("GINVIEW_RESOURCE_DIR", c.Resources.Dir)
	c.Log.Level = getEnvOrDefault("GINVIEW_LOG_LEVEL", c.Log.Level)
}

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	// サーバー設定の検証
	if c.Server.Host == "" {
		return fmt.Errorf("ホストが設定されていません")
	}
	if !isLoopback(c.Server.Host) {
		return fmt.Errorf("ループバック以外のホストは使用できません: %s", c.Server.Host)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("無効なポート番号: %d", c.Server.Port)
	}

	// ウィンドウ設定の検証
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("無効なウィンドウサイズ: %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.Width < c.Window.MinWidth || c.Window.Height < c.Window.MinHeight {
		return fmt.Errorf("ウィンドウサイズ %dx%d が最小サイズ %dx%d を下回っています",
			c.Window.Width, c.Window.Height, c.Window.MinWidth, c.Window.MinHeight)
	}
	if c.Window.ReadyRetries <= 0 {
		return fmt.Errorf("無効な準備確認回数: %d", c.Window.ReadyRetries)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("無効なログレベル: %s", c.Log.Level)
	}

	return nil
}

// ServerAddress はサーバーのリッスンアドレスを返す
func (c *Config) ServerAddress() string {
	return net.JoinHostPort(c.Server.Host, fmt.Sprintf("%d", c.Server.Port))
}

// BaseURL はウィンドウが読み込むURLを返す
func (c *Config) BaseURL() string {
	return "http://" + c.ServerAddress()
}

// isLoopback はホストがループバックアドレスかどうかを判定する
func isLoopback(host string) bool {
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// getEnvOrDefault は環境変数を取得し、設定されていない場合はデフォルト値を返す
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault は環境変数を整数として取得し、設定されていない場合はデフォルト値を返す
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var intVal int
		if _, err := fmt.Sscanf(value, "%d", &intVal); err == nil {
			return intVal
		}
	}
	return defaultValue
}
