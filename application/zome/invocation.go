package zome

import "github.com/zomekit-dev/zome-sdk/hash"

// Invocation is what the host passes to the exported call entry point:
// which function to run, on whose behalf, and the encoded argument.
type Invocation struct {
	ZomeName     string    `msgpack:"zome_name"`
	FunctionName string    `msgpack:"fn_name"`
	Provenance   hash.Hash `msgpack:"provenance"`
	RequestID    string    `msgpack:"request_id,omitempty"`
	Payload      []byte    `msgpack:"payload"`
}
