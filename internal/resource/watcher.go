package resource

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce はエディタの連続保存をまとめる待ち時間
const DefaultDebounce = 100 * time.Millisecond

// Watcher は開発モードのテンプレートディレクトリを監視し、変更時に再読み込みする
type Watcher struct {
	dir       string
	templates *Templates
	logger    *slog.Logger

	// Debounce は最後のイベントから再読み込みまでの待ち時間
	Debounce time.Duration
}

// NewWatcher は新しいWatcherを作成する
func NewWatcher(dir string, templates *Templates, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		dir:       dir,
		templates: templates,
		logger:    logger,
		Debounce:  DefaultDebounce,
	}
}

// Run は ctx がキャンセルされるまで監視を続ける
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("ファイル監視の作成に失敗: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("ディレクトリの監視に失敗 (%s): %w", w.dir, err)
	}
	w.logger.Info("テンプレートの監視を開始しました", "dir", w.dir)

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("テンプレートの監視を終了しました")
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug("テンプレートの変更を検出", "path", event.Name, "op", event.Op.String())

			// デバウンス
			if timer == nil {
				timer = time.NewTimer(w.Debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.Debounce)
			}
			pending = timer.C

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("ファイル監視でエラーが発生しました", "error", err)

		case <-pending:
			pending = nil
			if err := w.templates.Reload(); err != nil {
				w.logger.Error("テンプレートの再読み込みに失敗しました", "error", err)
				continue
			}
			w.logger.Info("テンプレートを再読み込みしました")
		}
	}
}
