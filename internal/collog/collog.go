// Package collog is the ambient logging seam the engine is built against:
// a thin wrapper over zap so every package in this module gets structured,
// leveled logging without depending on zap's API directly at every call
// site, the same separation the original service/logger package draws
// between "how do I build a *zap.Logger" and "what does the rest of the
// program do with one."
package collog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config selects where log output goes and how verbose it is. The zero
// Config logs Info and above to stderr, since the zero zapcore.Level is
// InfoLevel.
type Config struct {
	Level    zapcore.Level
	Path     string // "" or "stderr" means stderr; "stdout" means stdout
	Rotate   bool   // rotate Path through lumberjack instead of appending
	MaxSizeMB int
}

// New builds a *zap.Logger from cfg. It never returns an error: a bad Path
// falls back to stderr rather than failing the caller's startup path,
// matching the original package's "logging must never be why the program
// didn't start" posture.
func New(cfg Config) *zap.Logger {
	ws := openWriteSyncer(cfg)
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(encoder, ws, cfg.Level)
	return zap.New(core)
}

func openWriteSyncer(cfg Config) zapcore.WriteSyncer {
	switch cfg.Path {
	case "", "stderr":
		return zapcore.AddSync(os.Stderr)
	case "stdout":
		return zapcore.AddSync(os.Stdout)
	default:
		if cfg.Rotate {
			maxSize := cfg.MaxSizeMB
			if maxSize <= 0 {
				maxSize = 100
			}
			return zapcore.AddSync(&lumberjack.Logger{
				Filename: cfg.Path,
				MaxSize:  maxSize,
				Compress: true,
			})
		}
		f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return zapcore.AddSync(os.Stderr)
		}
		return zapcore.AddSync(f)
	}
}

// Nop returns a logger that discards everything, for callers that accept
// an optional *zap.Logger and want a safe non-nil default.
func Nop() *zap.Logger {
	return zap.NewNop()
}
