//go:build wasip1

package log

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zomekit-dev/zome-sdk/dispatch"
	"github.com/zomekit-dev/zome-sdk/wireformat"
)

func init() {
	// Compiled zome modules log through the host from the first statement.
	Install()
}

// Handle ships a slog.Record to the host log sink.
func (h *HostLogHandler) Handle(_ context.Context, record slog.Record) error {
	if err := dispatch.Notify(wireformat.TagLogMessage, h.toWire(record)); err != nil {
		// Logging must never kill an invocation; fall back to stdout.
		fmt.Printf("sdk: failed to ship log record to host: %v, original: %s\n", err, record.Message)
	}
	return nil
}
