package entities

import (
	"github.com/zomekit-dev/zome-sdk/hash"
	"github.com/zomekit-dev/zome-sdk/wireformat"
)

// EntryType names an application-defined entry type registered by a zome,
// or one of the system entry types used for capability credentials.
type EntryType string

// System entry types. Capability grants and claims are committed to the
// source chain like any application entry, under these reserved types.
const (
	EntryTypeCapGrant EntryType = "__cap_grant"
	EntryTypeCapClaim EntryType = "__cap_claim"
)

// IsSystem reports whether the entry type is reserved by the SDK.
func (t EntryType) IsSystem() bool {
	return t == EntryTypeCapGrant || t == EntryTypeCapClaim
}

// Entry is application content as committed to the source chain.
// Content is the canonical msgpack encoding of the application value;
// the entry hash is computed over exactly these bytes.
type Entry struct {
	Type    EntryType `json:"type" msgpack:"type"`
	Content []byte    `json:"content" msgpack:"content"`
}

// Hash returns the content address of the entry, computed over its
// canonical encoding.
func (e Entry) Hash() (hash.Hash, error) {
	canonical, err := wireformat.Marshal(e)
	if err != nil {
		return hash.Hash{}, err
	}
	return hash.Sum(hash.KindEntry, canonical), nil
}
