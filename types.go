// Package sdk is the development kit for writing zomes: application logic
// compiled to WASM and executed by a conductor host. Each exported function
// here wraps exactly one host capability: it validates its inputs locally,
// crosses the trust boundary once through the dispatcher, and returns a
// typed result or a typed error.
package sdk

import (
	"github.com/zomekit-dev/zome-sdk/application/config"
	"github.com/zomekit-dev/zome-sdk/domain/entities"
	"github.com/zomekit-dev/zome-sdk/wireformat"
)

// Properties is the DNA-level configuration the host supplies to a zome,
// as a key-value map. The config package has typed accessors for it.
type Properties = config.Properties

// Re-exported core types, so simple zomes only import the sdk package.
type (
	// Entry is application content as committed to the source chain.
	Entry = entities.Entry
	// EntryType names an application-defined entry type.
	EntryType = entities.EntryType
	// ActionType discriminates source-chain actions.
	ActionType = entities.ActionType
	// Record pairs a signed action with the entry it committed.
	Record = entities.Record
	// RecordDetails is the full history view of an address.
	RecordDetails = entities.RecordDetails
	// Link is a typed, tagged edge between two addresses.
	Link = entities.Link
	// CapGrant is the issuer-held half of a capability credential.
	CapGrant = entities.CapGrant
	// CapClaim is the caller-held half of a capability credential.
	CapClaim = entities.CapClaim
	// ErrorDetail is the structured wire error format.
	ErrorDetail = wireformat.ErrorDetail
)

const (
	// Version of the SDK.
	Version = "0.1.0"
	// MinHostVersion is the minimum compatible conductor version.
	MinHostVersion = "0.1.0"
)
