package config

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	EnvProduction = "production"
	EnvTest       = "test"

	DefaultPort uint32 = 3000
)

// App 服務本身的設定，對應 APP__* 環境變數
type App struct {
	Env            string `mapstructure:"ENV" json:"env" yaml:"env"`
	Port           uint32 `mapstructure:"PORT" json:"port" yaml:"port"`
	Name           string `mapstructure:"NAME" json:"name" yaml:"name"`
	Version        string `mapstructure:"VERSION" json:"version" yaml:"version"`
	SwaggerEnabled bool   `mapstructure:"SWAGGER_ENABLED" json:"swagger_enabled" yaml:"swagger_enabled"`
	// 允許的前端來源，空值表示不限制
	CorsOrigins []string `mapstructure:"CORS_ORIGINS" json:"cors_origins" yaml:"cors_origins"`
}

func (a App) IsProduction() bool {
	return a.Env == EnvProduction
}

// GinMode production 走 release，test 走 test，其他一律 debug
func (a App) GinMode() string {
	switch a.Env {
	case EnvProduction:
		return gin.ReleaseMode
	case EnvTest:
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

func (a App) AllowedOrigins() []string {
	if len(a.CorsOrigins) == 0 {
		return []string{"*"}
	}
	return a.CorsOrigins
}

// ListenAddr 未設定 PORT 時監聽 3000
func (a App) ListenAddr() string {
	port := a.Port
	if port == 0 {
		port = DefaultPort
	}
	return ":" + strconv.FormatUint(uint64(port), 10)
}
