package generated

// openapi.yaml のモデルとGinバインディング
// oapi-codegen の gin-server 出力と同じ形で手書きしている（/static はキャッチオールのため生成できない）
// openapi.yaml を変更したら routes_test.go が一致を確認する

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
)

// Defines values for HealthResponseStatus.
const (
	Healthy HealthResponseStatus = "healthy"
)

// ErrorResponse defines model for ErrorResponse.
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthResponse defines model for HealthResponse.
type HealthResponse struct {
	Status    HealthResponseStatus `json:"status"`
	Timestamp time.Time            `json:"timestamp"`
}

// HealthResponseStatus defines model for HealthResponse.Status.
type HealthResponseStatus string

// HelloResponse defines model for HelloResponse.
type HelloResponse struct {
	GoVersion string `json:"go_version"`
	Message   string `json:"message"`
	Platform  string `json:"platform"`
}

// InfoResponse defines model for InfoResponse.
type InfoResponse struct {
	AppName  string `json:"app_name"`
	Backend  string `json:"backend"`
	Platform string `json:"platform"`
	Version  string `json:"version"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// ホームページ
	// (GET /)
	GetIndex(c *gin.Context)
	// 挨拶とランタイム情報
	// (GET /api/hello)
	GetHello(c *gin.Context)
	// アプリケーションのメタデータ
	// (GET /api/info)
	GetInfo(c *gin.Context)
	// このAPI定義
	// (GET /api/openapi.json)
	GetOpenAPISpec(c *gin.Context)
	// 準備完了の確認
	// (GET /health)
	HealthCheck(c *gin.Context)
	// 静的ファイル
	// (GET /static/{filepath})
	GetStaticAsset(c *gin.Context, filepath string)
}

// ServerInterfaceWrapper converts contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	HandlerMiddlewares []MiddlewareFunc
	ErrorHandler       func(*gin.Context, error, int)
}

type MiddlewareFunc func(c *gin.Context)

// GetIndex operation middleware
func (siw *ServerInterfaceWrapper) GetIndex(c *gin.Context) {

	for _, middleware := range siw.HandlerMiddlewares {
		middleware(c)
		if c.IsAborted() {
			return
		}
	}

	siw.Handler.GetIndex(c)
}

// GetHello operation middleware
func (siw *ServerInterfaceWrapper) GetHello(c *gin.Context) {

	for _, middleware := range siw.HandlerMiddlewares {
		middleware(c)
		if c.IsAborted() {
			return
		}
	}

	siw.Handler.GetHello(c)
}

// GetInfo operation middleware
func (siw *ServerInterfaceWrapper) GetInfo(c *gin.Context) {

	for _, middleware := range siw.HandlerMiddlewares {
		middleware(c)
		if c.IsAborted() {
			return
		}
	}

	siw.Handler.GetInfo(c)
}

// GetOpenAPISpec operation middleware
func (siw *ServerInterfaceWrapper) GetOpenAPISpec(c *gin.Context) {

	for _, middleware := range siw.HandlerMiddlewares {
		middleware(c)
		if c.IsAborted() {
			return
		}
	}

	siw.Handler.GetOpenAPISpec(c)
}

// HealthCheck operation middleware
func (siw *ServerInterfaceWrapper) HealthCheck(c *gin.Context) {

	for _, middleware := range siw.HandlerMiddlewares {
		middleware(c)
		if c.IsAborted() {
			return
		}
	}

	siw.Handler.HealthCheck(c)
}

// GetStaticAsset operation middleware
func (siw *ServerInterfaceWrapper) GetStaticAsset(c *gin.Context) {

	var err error

	// ------------- Path parameter "filepath" -------------
	var filepath string

	// キャッチオールの値は先頭に "/" が付く。空の場合はハンドラが404を返す
	err = runtime.BindStyledParameterWithOptions("simple", "filepath", strings.TrimPrefix(c.Param("filepath"), "/"), &filepath, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: false})
	if err != nil {
		siw.ErrorHandler(c, fmt.Errorf("Invalid format for parameter filepath: %w", err), http.StatusBadRequest)
		return
	}

	for _, middleware := range siw.HandlerMiddlewares {
		middleware(c)
		if c.IsAborted() {
			return
		}
	}

	siw.Handler.GetStaticAsset(c, filepath)
}

// GinServerOptions provides options for the Gin server.
type GinServerOptions struct {
	BaseURL      string
	Middlewares  []MiddlewareFunc
	ErrorHandler func(*gin.Context, error, int)
}

// RegisterHandlers creates http.Handler with routing matching OpenAPI spec.
func RegisterHandlers(router gin.IRouter, si ServerInterface) {
	RegisterHandlersWithOptions(router, si, GinServerOptions{})
}

// RegisterHandlersWithOptions creates http.Handler with additional options
func RegisterHandlersWithOptions(router gin.IRouter, si ServerInterface, options GinServerOptions) {
	errorHandler := options.ErrorHandler
	if errorHandler == nil {
		errorHandler = func(c *gin.Context, err error, statusCode int) {
			c.JSON(statusCode, gin.H{"msg": err.Error()})
		}
	}

	wrapper := ServerInterfaceWrapper{
		Handler:            si,
		HandlerMiddlewares: options.Middlewares,
		ErrorHandler:       errorHandler,
	}

	router.GET(options.BaseURL+"/", wrapper.GetIndex)
	router.GET(options.BaseURL+"/api/hello", wrapper.GetHello)
	router.GET(options.BaseURL+"/api/info", wrapper.GetInfo)
	router.GET(options.BaseURL+"/api/openapi.json", wrapper.GetOpenAPISpec)
	router.GET(options.BaseURL+"/health", wrapper.HealthCheck)
	router.GET(options.BaseURL+"/static/*filepath", wrapper.GetStaticAsset)
}
