package logger

import (
	"log"

	"go.uber.org/zap"
)

var l = zap.NewNop()

// Init replaces the package logger. Call once at startup.
func Init(env string) {
	var (
		zl  *zap.Logger
		err error
	)
	if env == "production" {
		zl, err = zap.NewProduction()
	} else {
		zl, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l = zl
}

func L() *zap.Logger { return l }

func Info(msg string, fields ...zap.Field)  { l.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { l.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { l.Error(msg, fields...) }

func Sync() { _ = l.Sync() }
