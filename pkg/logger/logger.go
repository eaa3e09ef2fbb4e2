// Package logger wraps zap into the shape every component constructor in
// this repo expects: a *zap.SugaredLogger threaded in, never a global.
package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nikoly240702/tender-sniper/configs"
)

// New builds a *zap.SugaredLogger from the app's LoggingConfig. JSON encoding
// when cfg.Format is "json", console encoding (colorized, human-friendly)
// otherwise; mode is only attached as a log field.
func New(cfg configs.LoggingConfig, mode string) (*zap.SugaredLogger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zapcore.InfoLevel
	}

	var zcfg zap.Config
	if cfg.Format == "json" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.DisableCaller = !cfg.EnableCaller
	zcfg.DisableStacktrace = !cfg.EnableStacktrace

	l, err := zcfg.Build()
	if err != nil {
		return nil, err
	}

	return l.Sugar().With("service", "tender-sniper", "mode", mode), nil
}

// Noop returns a logger that discards everything; used by tests that do not
// care about log output but still need to satisfy a *zap.SugaredLogger param.
func Noop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
