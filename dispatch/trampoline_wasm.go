//go:build wasip1

package dispatch

import (
	"github.com/zomekit-dev/zome-sdk/internal/abi"
	"github.com/zomekit-dev/zome-sdk/wireformat"
)

// The one host-provided trampoline. Both sides exchange only a capability
// tag and packed (ptr, len) buffer handles.
//
//go:wasmimport zome_host host_call
//nolint:revive // intentional snake_case to match the WASM import convention
func host_call(tag uint32, requestPacked uint64) uint64

// invokeRaw places the request in pinned guest memory, performs the single
// trampoline call, and copies the response out of linear memory. The
// request buffer is released only after the call returns; the response
// buffer was allocated by the host through the guest's allocate export and
// is released here once copied.
func invokeRaw(tag wireformat.Tag, request []byte) []byte {
	reqPacked := abi.PtrFromBytes(request)
	respPacked := host_call(uint32(tag), reqPacked)
	abi.DeallocatePacked(reqPacked)

	resp := abi.BytesFromPtr(respPacked)
	abi.DeallocatePacked(respPacked)
	return resp
}
