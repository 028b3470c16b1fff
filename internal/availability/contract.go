package availability

import (
	"context"
	"time"
)

// Checker источник вердикта о занятости слота
// Реализации: локальный use case check_availability и HTTP клиент reservationapi
type Checker interface {
	Check(ctx context.Context, candidate Candidate) (Verdict, error)
}

// CheckerFunc адаптер функции к Checker
type CheckerFunc func(ctx context.Context, candidate Candidate) (Verdict, error)

func (f CheckerFunc) Check(ctx context.Context, candidate Candidate) (Verdict, error) {
	return f(ctx, candidate)
}

// Timer отменяемый таймер debounce
type Timer interface {
	Stop() bool
}

// AfterFunc планирует вызов f через d (по умолчанию time.AfterFunc)
type AfterFunc func(d time.Duration, f func()) Timer

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
