//go:build !wasip1

package dispatch

import (
	"sync"

	"github.com/zomekit-dev/zome-sdk/wireformat"
)

// Trampoline stands in for the host's trampoline import on non-WASM
// builds. It receives the request bytes and returns encoded response
// envelope bytes, exactly as the real host would write them into guest
// memory. This is what makes the whole bridge testable without a live
// conductor: bind an emulated host (see the hostfuncs package) and every
// capability function above the dispatcher runs unmodified.
type Trampoline func(tag wireformat.Tag, request []byte) []byte

var trampolineStore = struct {
	sync.RWMutex
	fn Trampoline
}{}

// Bind installs the trampoline for this process. It returns a restore
// function so tests can rebind cleanly.
func Bind(fn Trampoline) (restore func()) {
	trampolineStore.Lock()
	prev := trampolineStore.fn
	trampolineStore.fn = fn
	trampolineStore.Unlock()
	return func() {
		trampolineStore.Lock()
		trampolineStore.fn = prev
		trampolineStore.Unlock()
	}
}

func invokeRaw(tag wireformat.Tag, request []byte) []byte {
	trampolineStore.RLock()
	fn := trampolineStore.fn
	trampolineStore.RUnlock()
	if fn == nil {
		return nil // surfaces as a protocol violation in Call
	}
	return fn(tag, request)
}
