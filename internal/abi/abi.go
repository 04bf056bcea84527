// Package abi provides memory management for the WASM linear memory.
//
// Every buffer that crosses the guest/host boundary is tracked here. The
// arena keeps a reference to each allocated slice so the Go GC cannot
// collect it while the host may still read it, effectively pinning the
// memory until explicitly released. Handles are packed (ptr, len) pairs;
// ownership of a handle transfers to the host for exactly the duration of
// one synchronous call.
package abi

import (
	"fmt"
	"sync"

	"github.com/zomekit-dev/zome-sdk/domain/errors"
)

// MaxTotalAllocations is the maximum total memory the SDK will pin at once.
// This bounds linear memory growth in the guest.
const MaxTotalAllocations = 100 * 1024 * 1024 // 100 MB

// arena tracks pinned allocations keyed by their guest pointer.
type arena struct {
	mu             sync.Mutex
	ptrs           map[uint32][]byte
	totalAllocated int
	limit          int
}

func newArena(limit int) *arena {
	return &arena{
		ptrs:  make(map[uint32][]byte),
		limit: limit,
	}
}

// track pins a buffer under the given pointer. It fails if pinning would
// exceed the arena limit or the pointer is already tracked.
func (a *arena) track(ptr uint32, buf []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.totalAllocated+len(buf) > a.limit {
		return &errors.MemoryError{Requested: len(buf), Current: a.totalAllocated, Limit: a.limit}
	}
	if _, exists := a.ptrs[ptr]; exists {
		return fmt.Errorf("abi: pointer %#x already tracked", ptr)
	}
	a.ptrs[ptr] = buf
	a.totalAllocated += len(buf)
	return nil
}

// lookup returns the pinned buffer for a pointer, if still tracked.
// A released pointer yields (nil, false): there is no read-after-free path.
func (a *arena) lookup(ptr uint32) ([]byte, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	buf, ok := a.ptrs[ptr]
	return buf, ok
}

// release unpins a pointer. Releasing an untracked pointer is an idempotent
// no-op; accounting uses the stored length, never a caller-supplied size, so
// a mismatched deallocate cannot corrupt the counter.
func (a *arena) release(ptr uint32) {
	a.mu.Lock()
	defer a.mu.Unlock()

	buf, exists := a.ptrs[ptr]
	if !exists {
		return
	}
	delete(a.ptrs, ptr)
	a.totalAllocated -= len(buf)
	if a.totalAllocated < 0 {
		a.totalAllocated = 0
	}
}

// releaseAll unpins everything. Called during panic recovery or module
// shutdown to prevent leaks.
func (a *arena) releaseAll() {
	a.mu.Lock()
	defer a.mu.Unlock()
	clear(a.ptrs)
	a.totalAllocated = 0
}

// allocated returns the current pinned byte total.
func (a *arena) allocated() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.totalAllocated
}

// guestArena is the process-wide arena for the running zome.
var guestArena = newArena(MaxTotalAllocations)

// FreeAllTracked frees all memory currently tracked by the SDK.
func FreeAllTracked() {
	guestArena.releaseAll()
}

// PackPtrLen packs a pointer and length into a single uint64.
// Pointer is stored in the high 32 bits, length in the low 32 bits.
// Panics if ptr is 0 and length > 0, indicating an invalid state.
func PackPtrLen(ptr, length uint32) uint64 {
	if ptr == 0 && length > 0 {
		panic(fmt.Sprintf("abi: invalid pack - null pointer with non-zero length (%d)", length))
	}
	return (uint64(ptr) << 32) | uint64(length)
}

// UnpackPtrLen unpacks a uint64 into its original pointer and length.
// Panics if ptr is 0 and length > 0, indicating an invalid packed value.
func UnpackPtrLen(packed uint64) (ptr, length uint32) {
	ptr = uint32(packed >> 32)
	length = uint32(packed)
	if ptr == 0 && length > 0 {
		panic(fmt.Sprintf("abi: invalid unpack - null pointer with non-zero length (%d)", length))
	}
	return ptr, length
}
