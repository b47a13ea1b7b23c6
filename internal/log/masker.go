// Package log содержит обвязку над log/slog: маскировку токена бота
// в записях журнала.
package log

import (
	"context"
	"log/slog"
	"regexp"
)

// Токен Bot API имеет форму bot<ID>:<секрет>. Секрет не должен попадать
// в журнал ни в сообщении, ни в атрибутах, ни в тексте ошибок.
var tokenRegex = regexp.MustCompile(`\bbot\d+:[A-Za-z0-9_-]{30,}`)

const tokenMask = "bot***:***"

// MaskingHandler — обертка для slog.Handler, маскирующая токен бота.
type MaskingHandler struct {
	inner slog.Handler
}

// NewMaskingHandler создает обработчик с маскировкой токена.
func NewMaskingHandler(inner slog.Handler) *MaskingHandler {
	return &MaskingHandler{inner: inner}
}

// NewMaskedLogger создает slog.Logger с маскировкой токена.
func NewMaskedLogger(inner slog.Handler) *slog.Logger {
	return slog.New(NewMaskingHandler(inner))
}

func mask(s string) string {
	return tokenRegex.ReplaceAllString(s, tokenMask)
}

// Enabled реализует интерфейс slog.Handler.
func (h *MaskingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle реализует интерфейс slog.Handler. Исходную запись изменять
// нельзя, поэтому собирается новая: сообщение и каждый атрибут
// добавляются в нее уже маскированными.
func (h *MaskingHandler) Handle(ctx context.Context, record slog.Record) error {
	r := slog.NewRecord(record.Time, record.Level, mask(record.Message), record.PC)

	record.Attrs(func(a slog.Attr) bool {
		r.AddAttrs(slog.Attr{Key: a.Key, Value: maskValue(a.Value)})
		return true
	})

	return h.inner.Handle(ctx, r)
}

// WithAttrs реализует интерфейс slog.Handler.
func (h *MaskingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		masked[i] = slog.Attr{Key: a.Key, Value: maskValue(a.Value)}
	}
	return &MaskingHandler{inner: h.inner.WithAttrs(masked)}
}

// WithGroup реализует интерфейс slog.Handler.
func (h *MaskingHandler) WithGroup(name string) slog.Handler {
	return &MaskingHandler{inner: h.inner.WithGroup(name)}
}

// maskValue рекурсивно маскирует значение атрибута.
func maskValue(v slog.Value) slog.Value {
	switch v.Kind() {
	case slog.KindString:
		return slog.StringValue(mask(v.String()))
	case slog.KindAny:
		// Ошибки Bot API включают URL запроса вместе с токеном.
		if err, ok := v.Any().(error); ok {
			return slog.StringValue(mask(err.Error()))
		}
		return v
	case slog.KindGroup:
		group := v.Group()
		masked := make([]slog.Attr, len(group))
		for i, a := range group {
			masked[i] = slog.Attr{Key: a.Key, Value: maskValue(a.Value)}
		}
		return slog.GroupValue(masked...)
	default:
		return v
	}
}
