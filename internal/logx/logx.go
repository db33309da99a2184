// Package logx is a thin leveled wrapper over the standard logger. The
// level is fixed at construction and threaded into components explicitly,
// so concurrent runs never fight over global state.
package logx

import "log"

// Level maps the CLI verbosity flag: 0 errors only, 1 adds warnings,
// 2 adds info.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
)

type Logger struct {
	level Level
}

func New(level Level) *Logger {
	if level < LevelError {
		level = LevelError
	}
	if level > LevelInfo {
		level = LevelInfo
	}
	return &Logger{level: level}
}

func (l *Logger) Errorf(format string, args ...any) {
	log.Printf("[error] "+format, args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	if l.level >= LevelWarn {
		log.Printf("[warn] "+format, args...)
	}
}

func (l *Logger) Infof(format string, args ...any) {
	if l.level >= LevelInfo {
		log.Printf("[info] "+format, args...)
	}
}
