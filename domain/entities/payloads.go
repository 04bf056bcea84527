package entities

import (
	"time"

	"github.com/zomekit-dev/zome-sdk/hash"
)

// Per-capability request/response payloads. Each capability tag has exactly
// one input and one output shape; both are versioned alongside the tag.

// CreateEntryInput commits a new entry to the source chain.
type CreateEntryInput struct {
	Entry Entry `json:"entry" msgpack:"entry"`
}

// CreateEntryOutput returns the action hash of the commit.
type CreateEntryOutput struct {
	ActionHash hash.Hash `json:"action_hash" msgpack:"action_hash"`
}

// GetRecordInput fetches the resolved record at an address. The address may
// be an entry hash or an action hash.
type GetRecordInput struct {
	Address hash.Hash `json:"address" msgpack:"address"`
}

// GetRecordOutput carries the resolved record, or nothing if the address is
// unknown or its lineage is dead.
type GetRecordOutput struct {
	Record *Record `json:"record,omitempty" msgpack:"record,omitempty"`
}

// GetDetailsInput fetches the full history view of an address.
type GetDetailsInput struct {
	Address hash.Hash `json:"address" msgpack:"address"`
}

// GetDetailsOutput carries the record plus all updates and deletes
// referencing it.
type GetDetailsOutput struct {
	Details *RecordDetails `json:"details,omitempty" msgpack:"details,omitempty"`
}

// UpdateEntryInput supersedes a prior create or update with new content.
type UpdateEntryInput struct {
	OriginalAction hash.Hash `json:"original_action" msgpack:"original_action"`
	Entry          Entry     `json:"entry" msgpack:"entry"`
}

// UpdateEntryOutput returns the action hash of the update.
type UpdateEntryOutput struct {
	ActionHash hash.Hash `json:"action_hash" msgpack:"action_hash"`
}

// DeleteEntryInput tombstones a prior create or update.
type DeleteEntryInput struct {
	DeletesAction hash.Hash `json:"deletes_action" msgpack:"deletes_action"`
}

// DeleteEntryOutput returns the action hash of the delete.
type DeleteEntryOutput struct {
	ActionHash hash.Hash `json:"action_hash" msgpack:"action_hash"`
}

// CreateLinkInput commits a typed, tagged edge between two addresses.
type CreateLinkInput struct {
	Base   hash.Hash `json:"base" msgpack:"base"`
	Target hash.Hash `json:"target" msgpack:"target"`
	Type   string    `json:"type" msgpack:"type"`
	Tag    []byte    `json:"tag,omitempty" msgpack:"tag,omitempty"`
}

// CreateLinkOutput returns the action hash of the create_link.
type CreateLinkOutput struct {
	ActionHash hash.Hash `json:"action_hash" msgpack:"action_hash"`
}

// DeleteLinkInput tombstones a create_link by its action hash. The original
// link record is never erased.
type DeleteLinkInput struct {
	LinkAdd hash.Hash `json:"link_add" msgpack:"link_add"`
}

// DeleteLinkOutput returns the action hash of the delete_link.
type DeleteLinkOutput struct {
	ActionHash hash.Hash `json:"action_hash" msgpack:"action_hash"`
}

// GetLinksInput resolves the live links from a base address, optionally
// filtered by link type.
type GetLinksInput struct {
	Base hash.Hash `json:"base" msgpack:"base"`
	Type string    `json:"type,omitempty" msgpack:"type,omitempty"`
}

// GetLinksOutput carries the live links. Unknown bases yield an empty list.
type GetLinksOutput struct {
	Links []Link `json:"links,omitempty" msgpack:"links,omitempty"`
}

// SignInput asks the host to sign arbitrary bytes with the agent key.
type SignInput struct {
	Data []byte `json:"data" msgpack:"data"`
}

// SignOutput carries the detached signature.
type SignOutput struct {
	Signature Signature `json:"signature" msgpack:"signature"`
}

// VerifySignatureInput checks a detached signature against a signer.
type VerifySignatureInput struct {
	Signer    hash.Hash `json:"signer" msgpack:"signer"`
	Data      []byte    `json:"data" msgpack:"data"`
	Signature Signature `json:"signature" msgpack:"signature"`
}

// VerifySignatureOutput reports validity.
type VerifySignatureOutput struct {
	Valid bool `json:"valid" msgpack:"valid"`
}

// EmitSignalInput publishes a signal to listening clients.
type EmitSignalInput struct {
	Signal Signal `json:"signal" msgpack:"signal"`
}

// EmitSignalOutput is empty; acceptance is the only acknowledgment.
type EmitSignalOutput struct{}

// AgentInfoInput is empty; the host knows the calling cell.
type AgentInfoInput struct{}

// AgentInfoOutput carries the local agent description.
type AgentInfoOutput struct {
	Info AgentInfo `json:"info" msgpack:"info"`
}

// DnaInfoInput is empty; the host knows which DNA the calling cell runs.
type DnaInfoInput struct{}

// DnaInfoOutput carries the DNA description and properties.
type DnaInfoOutput struct {
	Info DnaInfo `json:"info" msgpack:"info"`
}

// CallRemoteInput invokes a function in another agent's cell, optionally
// presenting a capability claim. A nil claim is an explicit unrestricted
// call, never a silent downgrade.
type CallRemoteInput struct {
	Target   hash.Hash `json:"target" msgpack:"target"`
	Zome     string    `json:"zome" msgpack:"zome"`
	Function string    `json:"function" msgpack:"function"`
	Claim    *CapClaim `json:"claim,omitempty" msgpack:"claim,omitempty"`
	Payload  []byte    `json:"payload,omitempty" msgpack:"payload,omitempty"`
}

// CallRemoteOutput carries the callee's encoded return value.
type CallRemoteOutput struct {
	Response []byte `json:"response,omitempty" msgpack:"response,omitempty"`
}

// QueryInput filters the local source chain.
type QueryInput struct {
	EntryTypes     []EntryType  `json:"entry_types,omitempty" msgpack:"entry_types,omitempty"`
	ActionTypes    []ActionType `json:"action_types,omitempty" msgpack:"action_types,omitempty"`
	After          time.Time    `json:"after,omitempty" msgpack:"after,omitempty"`
	Before         time.Time    `json:"before,omitempty" msgpack:"before,omitempty"`
	IncludeEntries bool         `json:"include_entries,omitempty" msgpack:"include_entries,omitempty"`
}

// Matches reports whether a record passes the filter.
func (q QueryInput) Matches(rec Record) bool {
	if len(q.ActionTypes) > 0 && !containsActionType(q.ActionTypes, rec.Action.Type) {
		return false
	}
	if len(q.EntryTypes) > 0 && !containsEntryType(q.EntryTypes, rec.Action.EntryType) {
		return false
	}
	if !q.After.IsZero() && !rec.Action.Timestamp.After(q.After) {
		return false
	}
	if !q.Before.IsZero() && !rec.Action.Timestamp.Before(q.Before) {
		return false
	}
	return true
}

func containsActionType(types []ActionType, t ActionType) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}

func containsEntryType(types []EntryType, t EntryType) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}

// QueryOutput carries the matching chain records in chain order.
type QueryOutput struct {
	Records []Record `json:"records,omitempty" msgpack:"records,omitempty"`
}

// LogMessageInput ships a structured log record to the host sink.
type LogMessageInput struct {
	Level     string            `json:"level" msgpack:"level"`
	Message   string            `json:"message" msgpack:"message"`
	Timestamp time.Time         `json:"timestamp" msgpack:"timestamp"`
	Attrs     map[string]string `json:"attrs,omitempty" msgpack:"attrs,omitempty"`
}

// LogMessageOutput is empty.
type LogMessageOutput struct{}
