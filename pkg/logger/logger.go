package logger

import (
	"go.uber.org/zap"
)

// New 按环境创建 zap 日志，生产环境输出 JSON
func New(production bool) (*zap.Logger, error) {
	var zapConfig zap.Config
	if production {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.EncoderConfig.FunctionKey = "func"

	return zapConfig.Build(zap.AddCaller())
}
