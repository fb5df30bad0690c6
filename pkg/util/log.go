package util

import "go.uber.org/zap"

// log is the process-wide logger. Engine code logs through the package
// functions below (util.Error("...", zap.String(...)), util.Info(...))
// rather than taking a *zap.Logger dependency directly, so a bare import
// of this package is always safe to log through.
var log *zap.Logger

func init() {
	l, err := zap.NewProduction()
	if err != nil {
		l = zap.NewNop()
	}
	log = l
}

// SetLogger lets cmd/ binaries install a differently-configured logger
// (e.g. zap.NewDevelopment() for human-readable console output) before
// any engine code logs anything.
func SetLogger(l *zap.Logger) {
	if l != nil {
		log = l
	}
}

func Error(msg string, fields ...zap.Field) {
	log.Error(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	log.Warn(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	log.Info(msg, fields...)
}

func Debug(msg string, fields ...zap.Field) {
	log.Debug(msg, fields...)
}
