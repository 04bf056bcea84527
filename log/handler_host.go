//go:build !wasip1

package log

import (
	"context"
	"log/slog"

	"github.com/zomekit-dev/zome-sdk/dispatch"
	"github.com/zomekit-dev/zome-sdk/wireformat"
)

// Handle for non-WASM builds routes through whatever trampoline is bound
// (the emulated conductor in tests), so log traffic exercises the same
// bridge path as on wasip1.
func (h *HostLogHandler) Handle(_ context.Context, record slog.Record) error {
	// Best effort; an unbound trampoline just drops the record.
	_ = dispatch.Notify(wireformat.TagLogMessage, h.toWire(record))
	return nil
}
