package server

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"testing"
	"time"

	"ginview/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// keep-alive 接続の後始末はクライアント側のトランスポートが持つ
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
	)
}

// newTestConfig はエフェメラルポートを使うテスト用の設定を作る
func newTestConfig() *config.Config {
	cfg := config.Default()
	cfg.Server.Port = 0
	cfg.Server.ShutdownTimeout = config.Duration(2 * time.Second)
	return cfg
}

func newTestServer(t *testing.T, cfg *config.Config, opts ...Option) *Server {
	t.Helper()
	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	srv, err := NewGin(cfg, opts...)
	require.NoError(t, err)
	return srv
}

// TestServerStartAndShutdown はサーバーの起動とシャットダウンをテストする
func TestServerStartAndShutdown(t *testing.T) {
	srv := newTestServer(t, newTestConfig())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	// 固定の待ち時間ではなく準備完了の通知を待つ
	select {
	case <-srv.Ready():
	case <-time.After(3 * time.Second):
		t.Fatal("サーバーの準備完了がタイムアウトしました")
	}

	_, port, err := net.SplitHostPort(srv.Addr())
	require.NoError(t, err)
	assert.NotEqual(t, "0", port, "エフェメラルポートが確定していること")

	// コンテキストをキャンセルしてサーバーを停止
	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err, "サーバーの起動/停止でエラーが発生しました")
	case <-time.After(3 * time.Second):
		t.Fatal("サーバーの停止がタイムアウトしました")
	}
}

// TestServerEndpoints は実際のリスナー経由でエンドポイントをテストする
func TestServerEndpoints(t *testing.T) {
	srv := newTestServer(t, newTestConfig())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()
	defer func() {
		cancel()
		require.NoError(t, <-errCh)
	}()

	<-srv.Ready()

	client := &http.Client{
		Timeout:   3 * time.Second,
		Transport: &http.Transport{DisableKeepAlives: true},
	}

	testCases := []struct {
		name           string
		endpoint       string
		expectedStatus int
	}{
		{"ルートエンドポイント", "/", http.StatusOK},
		{"ヘルスチェックエンドポイント", "/health", http.StatusOK},
		{"挨拶エンドポイント", "/api/hello", http.StatusOK},
		{"情報エンドポイント", "/api/info", http.StatusOK},
		{"静的ファイル", "/static/app.js", http.StatusOK},
		{"存在しない静的ファイル", "/static/missing.js", http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := client.Get(srv.URL() + tc.endpoint)
			require.NoError(t, err, "HTTPリクエストでエラーが発生しました")
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode)
		})
	}
}

func TestServerStartTwice(t *testing.T) {
	srv := newTestServer(t, newTestConfig())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()
	<-srv.Ready()

	assert.Error(t, srv.Start(ctx))

	cancel()
	assert.NoError(t, <-errCh)
}

// TestServerPortInUse はポートが使用中の場合に Ready が閉じられないことを確認する
func TestServerPortInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	cfg := newTestConfig()
	cfg.Server.Port = ln.Addr().(*net.TCPAddr).Port

	srv := newTestServer(t, cfg)
	err = srv.Start(context.Background())
	require.Error(t, err)

	select {
	case <-srv.Ready():
		t.Fatal("起動に失敗したのに準備完了が通知されました")
	default:
	}
}

func TestServerExternalShutdown(t *testing.T) {
	srv := newTestServer(t, newTestConfig())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(context.Background())
	}()
	<-srv.Ready()

	require.NoError(t, srv.Shutdown())

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Start が終了しませんでした")
	}
}
