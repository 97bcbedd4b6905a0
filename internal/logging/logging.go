// Package logging は slog ロガーの構築を担う
//
// 端末への出力は charmbracelet/log のテキスト形式、
// それ以外（パイプやファイル）は JSON 形式で出力する。
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
)

// 出力形式
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatAuto = "auto"
)

// ParseLevel はログレベル文字列を slog.Level に変換する
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("無効なログレベル: %q", level)
}

// Setup は設定に従ってロガーを作成する
// 不明なレベルは info として扱う
func Setup(level, format string, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	lvl, _ := ParseLevel(level)

	if strings.ToLower(format) == FormatAuto || format == "" {
		format = FormatJSON
		if isTerminal(w) {
			format = FormatText
		}
	}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case FormatText:
		handler = log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			ReportCaller:    lvl == slog.LevelDebug,
			Level:           log.Level(lvl),
		})
	default:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	}

	return slog.New(handler)
}

// isTerminal は書き込み先が端末かどうかを判定する
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
