// Package window はローカルサーバーを表示するウィンドウを開く
//
// # 責務
// - プラットフォームごとの描画バックエンドの選択
// - サーバーの準備完了の確認（固定の待ち時間は使わない）
// - ウィンドウを開き、閉じられるまでブロックする
//
// # バックエンド
// - lorca: Chrome/Chromium のアプリモードウィンドウ
// - rod: go-rod のランチャーで起動する Chromium ウィンドウ
// - webview: OS ネイティブの WebView（`-tags webview` でビルドした場合のみ）
// - browser: 既定のブラウザで開く（最後の手段）
//
// # バックエンドごとの制限
//   - lorca / rod: 最小サイズは強制できないため、初期サイズを最小サイズ以上にする (Spec.Size)
//     ウィンドウタイトルはページの <title> が使われる（index.html は Spec.Title と同じ設定値を描画する）
//   - webview: タイトル・初期サイズ・最小サイズをすべて反映する
//   - browser: タイトルとサイズはブラウザに任せる。タブを閉じても検知できないため Ctrl+C で終了する
//
// # 前提要件
//   - lorca / rod: Chrome または Chromium がインストールされていること
//   - webview: cgo と各OSの WebView 開発ヘッダー
//     Ubuntu/Debian: sudo apt install libgtk-3-dev libwebkit2gtk-4.0-dev
package window
