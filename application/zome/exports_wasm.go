//go:build wasip1

package zome

import (
	"log/slog"

	"github.com/zomekit-dev/zome-sdk/domain/errors"
	"github.com/zomekit-dev/zome-sdk/internal/abi"
	"github.com/zomekit-dev/zome-sdk/internal/wasmcontext"
	_ "github.com/zomekit-dev/zome-sdk/log" // route slog through the host
	"github.com/zomekit-dev/zome-sdk/wireformat"
)

// Exported entry points the conductor calls on the compiled module. Each
// performs ABI translation and panic recovery before touching zome code.

//go:wasmexport zome_manifest
func zomeManifest() uint64 {
	z := Registered()
	if z == nil {
		return packError(&wireformat.ErrorDetail{
			Type:    "internal",
			Message: "no zome defined",
		})
	}
	data, err := wireformat.Marshal(z.Manifest())
	if err != nil {
		return packError(errors.ToErrorDetail(err))
	}
	return abi.PtrFromBytes(data)
}

//go:wasmexport zome_call
func zomeCall(ptr uint32, length uint32) uint64 {
	packed := abi.PackPtrLen(ptr, length)
	invBytes := abi.BytesFromPtr(packed)
	// The host wrote the invocation through the allocate export, so the
	// buffer is pinned in the guest arena; release it now that it is copied.
	abi.DeallocatePacked(packed)

	var inv Invocation
	if err := wireformat.Unmarshal(invBytes, &inv); err != nil {
		return packError(errors.ToErrorDetail(err))
	}

	z := Registered()
	if z == nil {
		return packError(&wireformat.ErrorDetail{
			Type:    "internal",
			Message: "no zome defined",
		})
	}

	result := z.Invoke(wasmcontext.CallInfo{
		ZomeName:     inv.ZomeName,
		FunctionName: inv.FunctionName,
		Provenance:   inv.Provenance,
		RequestID:    inv.RequestID,
	}, inv.Payload)
	return abi.PtrFromBytes(result)
}

// packError encodes a bare error envelope for failures that happen before a
// zome function runs.
func packError(detail *wireformat.ErrorDetail) uint64 {
	data, err := wireformat.Marshal(CallResult{Err: detail})
	if err != nil {
		slog.Error("sdk: failed to marshal error envelope", "error", err.Error())
		return 0
	}
	return abi.PtrFromBytes(data)
}
