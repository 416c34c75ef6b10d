package log

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New - консольный логгер диагностики в w. Без verbose пишутся только
// предупреждения и ошибки, с verbose - все начиная с debug
func New(verbose bool, w io.Writer) *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	} else {
		encCfg.TimeKey = ""
		encCfg.CallerKey = ""
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	if verbose {
		return zap.New(core, zap.AddCaller())
	}
	return zap.New(core)
}

// Sync - сбрасывает буферы логгера
func Sync(l *zap.Logger) {
	if l != nil {
		_ = l.Sync()
	}
}
