// Package server は、ウィンドウに表示するローカルHTTPサーバーを管理します。
//
// このパッケージは、Ginエンジンの構築、ルーティング、
// テンプレートのレンダリング、静的ファイルの配信を担当します。
//
// 責務:
//   - ループバックアドレスでのHTTPサーバーの起動と停止
//   - ホームページのレンダリング
//   - /api/hello, /api/info のJSON応答
//   - 静的ファイル（CSS/JS）の配信
//   - 準備完了の通知（Ready チャネルと /health）
//
// 仕様:
//   - ルーティングは internal/generated の ServerInterface に従う
//   - リスナーの確保が完了してから Ready を閉じる
//   - グレースフルシャットダウンに対応
package server
