// Package host runs compiled zome modules against the emulated conductor.
//
// It abstracts the underlying WASM engine (wazero), manages module
// lifecycle, and handles the low-level ABI interactions: the packed
// pointer/length convention, guest memory allocation, and the single
// host_call trampoline import every zome module expects. Tests use it to
// exercise a .wasm build of a zome end to end without a real conductor.
package host
