// Package generated は openapi.yaml に対応するモデルとGinバインディングを提供する
package generated
