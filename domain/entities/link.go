package entities

import (
	"time"

	"github.com/zomekit-dev/zome-sdk/hash"
)

// Link is the materialized view of a create_link action: a typed, tagged
// edge from a base address to a target address. CreateHash identifies the
// create_link action, which is what a delete_link must reference.
type Link struct {
	Base       hash.Hash `json:"base" msgpack:"base"`
	Target     hash.Hash `json:"target" msgpack:"target"`
	Type       string    `json:"type" msgpack:"type"`
	Tag        []byte    `json:"tag,omitempty" msgpack:"tag,omitempty"`
	Author     hash.Hash `json:"author" msgpack:"author"`
	Timestamp  time.Time `json:"timestamp" msgpack:"timestamp"`
	CreateHash hash.Hash `json:"create_hash" msgpack:"create_hash"`
}
