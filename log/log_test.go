package log

import (
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zomekit-dev/zome-sdk/dispatch"
	"github.com/zomekit-dev/zome-sdk/domain/entities"
	"github.com/zomekit-dev/zome-sdk/wireformat"
)

func captureLogs(t *testing.T) *[]entities.LogMessageInput {
	t.Helper()
	var captured []entities.LogMessageInput
	restore := dispatch.Bind(func(tag wireformat.Tag, request []byte) []byte {
		if tag != wireformat.TagLogMessage {
			return nil
		}
		var msg entities.LogMessageInput
		if err := wireformat.Unmarshal(request, &msg); err != nil {
			return nil
		}
		captured = append(captured, msg)
		encoded, _ := wireformat.EncodeResponse(tag, entities.LogMessageOutput{})
		return encoded
	})
	t.Cleanup(restore)
	return &captured
}

func TestHandler_ShipsRecords(t *testing.T) {
	captured := captureLogs(t)
	logger := slog.New(NewHandler())

	logger.Info("created entry", "entry_type", "post", "count", 3)

	require.Len(t, *captured, 1)
	msg := (*captured)[0]
	assert.Equal(t, "INFO", msg.Level)
	assert.Equal(t, "created entry", msg.Message)
	assert.Equal(t, "post", msg.Attrs["entry_type"])
	assert.Equal(t, "3", msg.Attrs["count"])
	assert.False(t, msg.Timestamp.IsZero())
}

func TestHandler_LevelFilter(t *testing.T) {
	captured := captureLogs(t)
	logger := slog.New(NewHandler(WithLevel(slog.LevelWarn)))

	logger.Debug("too quiet")
	logger.Info("still too quiet")
	logger.Error("loud enough")

	require.Len(t, *captured, 1)
	assert.Equal(t, "ERROR", (*captured)[0].Level)
}

func TestHandler_WithAttrs(t *testing.T) {
	captured := captureLogs(t)
	logger := slog.New(NewHandler()).With("zome", "forum")

	logger.Info("something happened", "detail", "extra")

	require.Len(t, *captured, 1)
	msg := (*captured)[0]
	assert.Equal(t, "forum", msg.Attrs["zome"])
	assert.Equal(t, "extra", msg.Attrs["detail"])
}

func TestAttrString(t *testing.T) {
	assert.Equal(t, "plain", attrString(slog.StringValue("plain")))
	assert.Equal(t, "1.5s", attrString(slog.DurationValue(1500*time.Millisecond)))
	assert.Equal(t, "boom", attrString(slog.AnyValue(fmt.Errorf("boom"))))

	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, "2026-01-02T03:04:05Z", attrString(slog.TimeValue(ts)))
}

func TestHandler_UnboundTrampolineIsSilent(t *testing.T) {
	restore := dispatch.Bind(nil)
	t.Cleanup(restore)

	logger := slog.New(NewHandler())
	assert.NotPanics(t, func() {
		logger.Info("into the void")
	})
}
