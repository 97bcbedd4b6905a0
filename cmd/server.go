// Package main はウィンドウを開かずにサーバーだけを起動するコマンドです
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ginview/internal/config"
	"ginview/internal/logging"
	"ginview/internal/server"

	"github.com/spf13/cobra"
)

var (
	configPath  string
	host        string
	port        int
	resourceDir string
	watch       bool
	logLevel    string
)

var serverCmd = &cobra.Command{
	Use:           "ginview-server",
	Short:         "ginview のHTTPサーバーだけを起動する",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServer,
}

func init() {
	flags := serverCmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "設定ファイル (.yaml / .toml)")
	flags.StringVar(&host, "host", "", "サーバーのホスト (デフォルト: 127.0.0.1)")
	flags.IntVar(&port, "port", 0, "サーバーのポート (デフォルト: 5000)")
	flags.StringVar(&resourceDir, "resources", "", "テンプレートと静的ファイルのディレクトリ（開発モード）")
	flags.BoolVar(&watch, "watch", false, "テンプレートの変更を監視する")
	flags.StringVar(&logLevel, "log-level", "", "ログレベル (debug, info, warn, error)")
}

func runServer(cmd *cobra.Command, args []string) error {
	// 設定を読み込む
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
	if resourceDir != "" {
		cfg.Resources.Dir = resourceDir
	}
	if watch {
		cfg.Resources.Watch = true
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("設定の検証に失敗: %w", err)
	}

	logger := logging.Setup(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	// Ginサーバーを作成
	srv, err := server.NewGin(cfg, server.WithLogger(logger))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// サーバーを起動
	logger.Info("ginview サーバーを起動します", "addr", cfg.ServerAddress())
	return srv.Start(ctx)
}

func main() {
	if err := serverCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "サーバーの起動に失敗しました: %v\n", err)
		os.Exit(1)
	}
}
