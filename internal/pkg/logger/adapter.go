package logger

import "quantora_agent/internal/app/port"

// slogAdapter реализует port.Logger поверх глобального логгера пакета.
// Поля attrs добавляются к каждой записи (например, "component", "portfolio").
type slogAdapter struct {
	attrs []any
}

// NewSlogAdapter returns a port.Logger writing through the process logger.
// attrs are key/value pairs attached to every record.
func NewSlogAdapter(attrs ...any) port.Logger {
	bound := make([]any, len(attrs))
	copy(bound, attrs)
	return &slogAdapter{attrs: bound}
}

func (a *slogAdapter) fields(args []any) []any {
	if len(a.attrs) == 0 {
		return args
	}
	merged := make([]any, 0, len(a.attrs)+len(args))
	merged = append(merged, a.attrs...)
	return append(merged, args...)
}

func (a *slogAdapter) Info(msg string, args ...any) {
	Info(msg, a.fields(args)...)
}

func (a *slogAdapter) Debug(msg string, args ...any) {
	Debug(msg, a.fields(args)...)
}

func (a *slogAdapter) Warn(msg string, args ...any) {
	Warn(msg, a.fields(args)...)
}

func (a *slogAdapter) Error(msg string, args ...any) {
	Error(msg, a.fields(args)...)
}
