package window

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// ReadyPolicy はサーバーの準備完了を待つ方針
type ReadyPolicy struct {
	Timeout         time.Duration // 全体の上限（0なら無制限）
	MaxRetries      int           // 再試行回数の上限（0なら Timeout まで無制限）
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Client          *http.Client
}

// DefaultReadyPolicy は標準の待ち方を返す
func DefaultReadyPolicy() ReadyPolicy {
	return ReadyPolicy{
		Timeout:         10 * time.Second,
		MaxRetries:      20,
		InitialInterval: 50 * time.Millisecond,
		MaxInterval:     time.Second,
	}
}

// WaitReady はヘルスチェックURLが200を返すまで指数バックオフでポーリングする
func WaitReady(ctx context.Context, healthURL string, policy ReadyPolicy) error {
	if policy.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, policy.Timeout)
		defer cancel()
	}

	client := policy.Client
	if client == nil {
		client = &http.Client{
			Timeout:   2 * time.Second,
			Transport: &http.Transport{DisableKeepAlives: true},
		}
	}

	b := backoff.NewExponentialBackOff()
	if policy.InitialInterval > 0 {
		b.InitialInterval = policy.InitialInterval
	}
	if policy.MaxInterval > 0 {
		b.MaxInterval = policy.MaxInterval
	}
	b.MaxElapsedTime = 0 // 上限は Timeout と MaxRetries で決める

	var lastErr error
	probe := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, healthURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			return err
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("予期しないステータスコード: %d", resp.StatusCode)
			return lastErr
		}
		return nil
	}

	retries := policy.MaxRetries
	if retries < 0 {
		retries = 0
	}
	err := backoff.Retry(probe, backoff.WithContext(backoff.WithMaxRetries(b, uint64(retries)), ctx))
	if err != nil {
		if lastErr == nil {
			lastErr = err
		}
		return fmt.Errorf("%w: %s: %v", ErrNotReady, healthURL, lastErr)
	}
	return nil
}
