package zome

import (
	"fmt"
	"runtime/debug"

	"github.com/zomekit-dev/zome-sdk/domain/errors"
	"github.com/zomekit-dev/zome-sdk/internal/wasmcontext"
	"github.com/zomekit-dev/zome-sdk/wireformat"
)

// CallResult is the envelope a zome invocation returns to the host.
// Exactly one of Payload or Err is set.
type CallResult struct {
	Payload []byte                  `msgpack:"payload,omitempty"`
	Err     *wireformat.ErrorDetail `msgpack:"err,omitempty"`
}

// Invoke runs a registered zome function against a payload and encodes the
// result envelope. Panics in application code are recovered into a
// structured error rather than trapping the module.
func (z *ZomeDefinition) Invoke(info wasmcontext.CallInfo, payload []byte) []byte {
	ctx := wasmcontext.BeginCall(info)
	defer wasmcontext.EndCall()

	result := func() (result CallResult) {
		defer func() {
			if r := recover(); r != nil {
				result = CallResult{Err: &wireformat.ErrorDetail{
					Type:    "internal",
					Code:    "panic",
					Message: fmt.Sprintf("zome function %s panicked: %v", info.FunctionName, r),
					Details: map[string]any{"stack": string(debug.Stack())},
				}}
			}
		}()

		handler, ok := z.Handler(info.FunctionName)
		if !ok {
			return CallResult{Err: &wireformat.ErrorDetail{
				Type:       "not_found",
				Message:    "no such zome function: " + info.FunctionName,
				IsNotFound: true,
			}}
		}

		out, err := handler(ctx, payload)
		if err != nil {
			return CallResult{Err: errors.ToErrorDetail(err)}
		}

		encoded, err := wireformat.Marshal(out)
		if err != nil {
			return CallResult{Err: errors.ToErrorDetail(err)}
		}
		return CallResult{Payload: encoded}
	}()

	encoded, err := wireformat.Marshal(result)
	if err != nil {
		// The envelope itself must always encode; if it cannot, return the
		// smallest well-formed error envelope we can build by hand.
		fallback, _ := wireformat.Marshal(CallResult{Err: &wireformat.ErrorDetail{
			Type:    "internal",
			Message: "failed to encode call result: " + err.Error(),
		}})
		return fallback
	}
	return encoded
}
