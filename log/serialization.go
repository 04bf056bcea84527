package log

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/zomekit-dev/zome-sdk/domain/entities"
)

// toWire flattens a slog.Record into the log_message wire payload.
func (h *HostLogHandler) toWire(record slog.Record) entities.LogMessageInput {
	msg := entities.LogMessageInput{
		Level:     record.Level.String(),
		Message:   record.Message,
		Timestamp: record.Time,
	}

	appendAttr := func(attr slog.Attr) {
		attr.Value = attr.Value.Resolve()
		if msg.Attrs == nil {
			msg.Attrs = make(map[string]string)
		}
		msg.Attrs[attr.Key] = attrString(attr.Value)
	}

	for _, attr := range h.attrs {
		appendAttr(attr)
	}
	record.Attrs(func(attr slog.Attr) bool {
		appendAttr(attr)
		return true
	})
	return msg
}

func attrString(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindTime:
		return v.Time().Format(time.RFC3339Nano)
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
		return fmt.Sprintf("%v", v.Any())
	default:
		return fmt.Sprintf("%v", v.Any())
	}
}
