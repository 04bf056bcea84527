// Package hostfuncs implements the host side of the zome ABI in process: an
// in-memory conductor with per-agent source chains, a link store, capability
// grant checking, and signing keys. It answers every capability tag the
// dispatcher can send, so zome code can be exercised end to end without a
// compiled module or a live conductor.
//
// The same handler backs two transports: a direct trampoline for native test
// builds (see dispatch.Bind) and a wazero host function for compiled modules
// (see package host).
package hostfuncs
