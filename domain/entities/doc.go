// Package entities provides core domain entities for the SDK.
// These types serve dual purpose: domain entities AND msgpack wire DTOs.
// The encoded form of an entry or action is what the conductor hashes,
// so field layout is part of the ABI contract.
package entities
