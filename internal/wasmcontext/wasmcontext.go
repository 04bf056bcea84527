// Package wasmcontext tracks the current zome invocation. The conductor
// invokes one exported function at a time and the guest has no concurrency
// of its own, so a single global slot holds the active call context for the
// duration of the invocation.
package wasmcontext

import (
	stdcontext "context"
	"sync"

	"github.com/zomekit-dev/zome-sdk/hash"
)

// CallInfo describes the invocation the host is currently executing:
// which zome function was called and on whose behalf.
type CallInfo struct {
	ZomeName     string
	FunctionName string
	// Provenance is the agent the host attributes the call to.
	Provenance hash.Hash
	// RequestID correlates guest-side logs with host traces.
	RequestID string
}

type contextKey string

// callInfoKey is the context key the active CallInfo is stored under.
const callInfoKey contextKey = "call_info"

var contextStore = struct {
	sync.RWMutex
	ctx stdcontext.Context
}{
	ctx: stdcontext.Background(),
}

// BeginCall installs the invocation context. Called by the zome runtime
// when the host enters an exported function.
func BeginCall(info CallInfo) stdcontext.Context {
	ctx := stdcontext.WithValue(stdcontext.Background(), callInfoKey, info)
	contextStore.Lock()
	defer contextStore.Unlock()
	contextStore.ctx = ctx
	return ctx
}

// Current returns the active invocation context, or context.Background()
// outside an invocation.
func Current() stdcontext.Context {
	contextStore.RLock()
	defer contextStore.RUnlock()
	if contextStore.ctx == nil {
		return stdcontext.Background()
	}
	return contextStore.ctx
}

// EndCall resets the store. Deferred by the runtime when the invocation
// returns, so stale call info never leaks into the next invocation.
func EndCall() {
	contextStore.Lock()
	defer contextStore.Unlock()
	contextStore.ctx = stdcontext.Background()
}

// InfoFrom extracts the CallInfo from a context, if present.
func InfoFrom(ctx stdcontext.Context) (CallInfo, bool) {
	info, ok := ctx.Value(callInfoKey).(CallInfo)
	return info, ok
}
