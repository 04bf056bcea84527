package entities

import "github.com/zomekit-dev/zome-sdk/hash"

// AgentInfo describes the local agent as reported by the host.
type AgentInfo struct {
	AgentInitialPubkey hash.Hash `json:"agent_initial_pubkey" msgpack:"agent_initial_pubkey"`
	AgentLatestPubkey  hash.Hash `json:"agent_latest_pubkey" msgpack:"agent_latest_pubkey"`
	ChainHead          hash.Hash `json:"chain_head,omitempty" msgpack:"chain_head,omitempty"`
	ChainLength        uint32    `json:"chain_length" msgpack:"chain_length"`
}

// DnaInfo describes the DNA a cell runs: its name and the properties its
// installer configured. Properties are opaque to the host; zomes decode
// them into their own config structs.
type DnaInfo struct {
	Name       string         `json:"name" msgpack:"name"`
	Properties map[string]any `json:"properties,omitempty" msgpack:"properties,omitempty"`
}

// Signal is an application-defined payload emitted to the host for delivery
// to listening clients. Emission is fire-and-forget: the bridge reports only
// that the host accepted it.
type Signal struct {
	Name    string `json:"name" msgpack:"name"`
	Payload []byte `json:"payload,omitempty" msgpack:"payload,omitempty"`
}
