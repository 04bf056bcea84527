//go:build wasip1

package abi

import "unsafe"

// allocate reserves memory in the WASM linear memory and returns a pointer.
// The host can read from and write into this pointer. The allocation is
// pinned until deallocate is called for it.
//
//go:wasmexport allocate
func allocate(size uint32) uint32 {
	if size == 0 {
		return 0
	}
	buf := make([]byte, size)
	ptr := uint32(uintptr(unsafe.Pointer(&buf[0])))
	if err := guestArena.track(ptr, buf); err != nil {
		panic(err)
	}
	return ptr
}

// deallocate unpins a pointer, letting the GC reclaim it. Untracked
// pointers are ignored, so a double free is safe.
//
//go:wasmexport deallocate
func deallocate(ptr uint32, _ uint32) {
	guestArena.release(ptr)
}

// PtrFromBytes copies data into freshly pinned guest memory and returns the
// packed pointer and length. Used when the guest sends data to the host;
// the caller must free the handle with DeallocatePacked once the host call
// returns.
func PtrFromBytes(data []byte) uint64 {
	if len(data) == 0 {
		return 0
	}
	ptr := allocate(uint32(len(data)))
	dest := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(ptr))), len(data))
	copy(dest, data)
	return PackPtrLen(ptr, uint32(len(data)))
}

// BytesFromPtr reads the data behind a packed handle out of linear memory,
// returning a copy. Used when the guest receives data from the host.
func BytesFromPtr(packed uint64) []byte {
	ptr, length := UnpackPtrLen(packed)
	if ptr == 0 || length == 0 {
		return nil
	}
	src := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(ptr))), length)
	data := make([]byte, length)
	copy(data, src)
	return data
}

// DeallocatePacked unpins the memory behind a packed handle. The guest
// frees its own request buffers after the host call returns, and frees
// host-written response buffers after decoding them.
func DeallocatePacked(packed uint64) {
	ptr, length := UnpackPtrLen(packed)
	if ptr != 0 && length > 0 {
		deallocate(ptr, length)
	}
}
