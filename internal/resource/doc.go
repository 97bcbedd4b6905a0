// Package resource はテンプレートと静的ファイルの配置を解決する
//
// 責務:
//   - パッケージ版: バイナリに埋め込んだ assets/ を使う
//   - 開発モード: ディスク上のディレクトリ（既定はソースツリーの assets/）を使う
//   - テンプレートの読み込みと、開発モードでの変更監視による再読み込み
//
// どちらのモードでもルート直下に templates/ と static/ を持つ。
package resource
