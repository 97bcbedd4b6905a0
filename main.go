package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"ginview/internal/app"
	"ginview/internal/config"
	"ginview/internal/logging"
	"ginview/internal/resource"

	"github.com/spf13/cobra"
)

// ネイティブのウィンドウはメインスレッドで動かす必要がある
func init() {
	runtime.LockOSThread()
}

var (
	configPath string
	host       string
	port       int
	backend    string
	devMode    bool
	watch      bool
	debug      bool
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "ginview",
	Short: "ローカルのGinサーバーをネイティブウィンドウで表示するデスクトップアプリ",
	Long: `ginview はループバックアドレスでHTTPサーバーを起動し、
準備完了を確認してからウィンドウでそのページを開きます。
ウィンドウを閉じるとサーバーも停止します。`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runApp,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "設定ファイル (.yaml / .toml)")
	flags.StringVar(&host, "host", "", "サーバーのホスト (デフォルト: 127.0.0.1)")
	flags.IntVar(&port, "port", 0, "サーバーのポート (デフォルト: 5000)")
	flags.StringVar(&backend, "backend", "", "ウィンドウバックエンド (lorca, rod, webview, browser)")
	flags.BoolVar(&devMode, "dev", false, "ソースツリーのテンプレートと静的ファイルを使う")
	flags.BoolVar(&watch, "watch", false, "開発モードでテンプレートの変更を監視する")
	flags.BoolVar(&debug, "debug", false, "開発者ツールを有効にする")
	flags.StringVar(&logLevel, "log-level", "", "ログレベル (debug, info, warn, error)")
}

func runApp(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// コマンドラインオプションで設定を上書き
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = host
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = port
	}
	if backend != "" {
		cfg.Window.Backend = backend
	}
	if devMode && cfg.Resources.Dir == "" {
		cfg.Resources.Dir = resource.SourceDir()
	}
	if watch {
		cfg.Resources.Watch = true
	}
	if debug {
		cfg.Window.Debug = true
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("設定の検証に失敗: %w", err)
	}

	logger := logging.Setup(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.Run(ctx, cfg, app.WithLogger(logger))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		app.PrintError(os.Stdout, err)
		os.Exit(app.ExitCode(err))
	}
}
