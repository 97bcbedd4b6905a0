// Package sysinfo はAPIが返すホスト環境の情報を提供する
package sysinfo

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/shirou/gopsutil/v4/host"
)

// hostInfo は gopsutil の取得処理（テストで差し替える）
var hostInfo = host.InfoWithContext

// platform は Describe の結果をプロセス終了までキャッシュする
var platform = &describeCache{}

type describeCache struct {
	once  sync.Once
	value string
}

// get は初回だけホスト情報を取得する
// 最初の呼び出し元の ctx がキャンセルされても、取得結果をフォールバックで固定しない
func (c *describeCache) get(ctx context.Context) string {
	c.once.Do(func() {
		c.value = describe(context.WithoutCancel(ctx))
	})
	return c.value
}

// System はOSの系統名を返す（例: Linux, Darwin, Windows）
func System() string {
	return systemName(runtime.GOOS)
}

func systemName(goos string) string {
	switch goos {
	case "linux":
		return "Linux"
	case "darwin":
		return "Darwin"
	case "windows":
		return "Windows"
	case "freebsd":
		return "FreeBSD"
	}
	return goos
}

// GoVersion はランタイムのバージョンを返す
func GoVersion() string {
	return runtime.Version()
}

// Describe はプラットフォームの詳細を一行で返す
// 例: Linux-6.8.0-x86_64-with-ubuntu-24.04
// 初回の結果をプロセス終了までキャッシュする
func Describe(ctx context.Context) string {
	return platform.get(ctx)
}

func describe(ctx context.Context) string {
	fallback := fmt.Sprintf("%s-%s", System(), runtime.GOARCH)

	info, err := hostInfo(ctx)
	if err != nil || info == nil {
		return fallback
	}

	parts := []string{systemName(info.OS)}
	if info.KernelVersion != "" {
		parts = append(parts, info.KernelVersion)
	}
	arch := info.KernelArch
	if arch == "" {
		arch = runtime.GOARCH
	}
	parts = append(parts, arch)

	s := strings.Join(parts, "-")
	if info.Platform != "" {
		s += "-with-" + info.Platform
		if info.PlatformVersion != "" {
			s += "-" + info.PlatformVersion
		}
	}
	return s
}
