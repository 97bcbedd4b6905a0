package server

import (
	"io/fs"
	"net/http"
	"time"

	"ginview/internal/config"
	"ginview/internal/generated"
	"ginview/internal/resource"
	"ginview/internal/sysinfo"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
)

// GinviewHandler は生成されたServerInterfaceを実装する
type GinviewHandler struct {
	config       *config.Config
	templates    *resource.Templates
	static       fs.FS
	swagger      *openapi3.T
	shellBackend string
}

var _ generated.ServerInterface = (*GinviewHandler)(nil)

// GetIndex はホームページをレンダリングする
// Chromium 系のバックエンドではページの title がそのままウィンドウタイトルになる
func (h *GinviewHandler) GetIndex(c *gin.Context) {
	c.Render(http.StatusOK, render.HTML{
		Template: h.templates.Get(),
		Name:     "index.html",
		Data: gin.H{
			"Title":   h.config.Window.Title,
			"AppName": h.config.App.Name,
		},
	})
}

// GetHello は挨拶とランタイム情報を返す
func (h *GinviewHandler) GetHello(c *gin.Context) {
	response := generated.HelloResponse{
		Message:   h.config.App.Greeting,
		Platform:  sysinfo.System(),
		GoVersion: sysinfo.GoVersion(),
	}

	c.JSON(http.StatusOK, response)
}

// GetInfo はアプリケーションのメタデータを返す
func (h *GinviewHandler) GetInfo(c *gin.Context) {
	response := generated.InfoResponse{
		AppName:  h.config.App.Name,
		Version:  h.config.App.Version,
		Backend:  backendLabel(h.shellBackend),
		Platform: sysinfo.Describe(c.Request.Context()),
	}

	c.JSON(http.StatusOK, response)
}

// GetOpenAPISpec はAPI定義をJSONで返す
func (h *GinviewHandler) GetOpenAPISpec(c *gin.Context) {
	c.JSON(http.StatusOK, h.swagger)
}

// HealthCheck はヘルスチェックエンドポイントの実装
// ウィンドウ側はこの応答を待ってから画面を開く
func (h *GinviewHandler) HealthCheck(c *gin.Context) {
	response := generated.HealthResponse{
		Status:    generated.Healthy,
		Timestamp: time.Now(),
	}

	c.JSON(http.StatusOK, response)
}

// GetStaticAsset は静的ファイルを配信する
// filepath は static/ からの相対パスで、サブディレクトリを含んでよい
func (h *GinviewHandler) GetStaticAsset(c *gin.Context, filepath string) {
	// 不正なパス、ディレクトリ、存在しないファイルは404
	if filepath == "" || !fs.ValidPath(filepath) {
		assetNotFound(c)
		return
	}
	info, err := fs.Stat(h.static, filepath)
	if err != nil || info.IsDir() {
		assetNotFound(c)
		return
	}

	c.FileFromFS(filepath, http.FS(h.static))
}

// ヘルパー関数

// backendLabel は /api/info の backend 欄の文字列を作る
func backendLabel(shell string) string {
	if shell == "" {
		return "Gin"
	}
	return "Gin + " + shell
}

func assetNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, generated.ErrorResponse{
		Error:     "asset_not_found",
		Message:   "指定されたファイルが見つかりません",
		Timestamp: time.Now(),
	})
}

// handleNotFound は未定義のルートに対するJSON応答
func handleNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, generated.ErrorResponse{
		Error:     "not_found",
		Message:   "指定されたパスは存在しません",
		Timestamp: time.Now(),
	})
}

// handleBindError はパラメータのバインド失敗をJSONで返す
func handleBindError(c *gin.Context, err error, statusCode int) {
	c.JSON(statusCode, generated.ErrorResponse{
		Error:     "invalid_parameter",
		Message:   err.Error(),
		Timestamp: time.Now(),
	})
}
