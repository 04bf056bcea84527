package entities

import (
	"fmt"
	"time"

	"github.com/zomekit-dev/zome-sdk/hash"
	"github.com/zomekit-dev/zome-sdk/wireformat"
)

// ActionType discriminates the action union. The set is closed: every switch
// over it should be exhaustive.
type ActionType string

const (
	ActionCreate     ActionType = "create"
	ActionUpdate     ActionType = "update"
	ActionDelete     ActionType = "delete"
	ActionCreateLink ActionType = "create_link"
	ActionDeleteLink ActionType = "delete_link"
)

// Action is one step in an agent's append-only source chain. Records are
// never mutated in place: an update or delete is a new action referencing
// the hash of the action it supersedes.
//
// Common fields are always set; the remaining fields depend on Type.
type Action struct {
	Type      ActionType `json:"type" msgpack:"type"`
	Author    hash.Hash  `json:"author" msgpack:"author"`
	Timestamp time.Time  `json:"timestamp" msgpack:"timestamp"`

	// Seq is the position in the author's chain; PrevAction links to the
	// prior action, forming the chain. Seq 0 has no PrevAction.
	Seq        uint32    `json:"seq" msgpack:"seq"`
	PrevAction hash.Hash `json:"prev_action,omitempty" msgpack:"prev_action,omitempty"`

	// EntryType and EntryHash are set for create and update actions.
	EntryType EntryType `json:"entry_type,omitempty" msgpack:"entry_type,omitempty"`
	EntryHash hash.Hash `json:"entry_hash,omitempty" msgpack:"entry_hash,omitempty"`

	// OriginalAction and OriginalEntry are set for updates: the action and
	// entry being superseded.
	OriginalAction hash.Hash `json:"original_action,omitempty" msgpack:"original_action,omitempty"`
	OriginalEntry  hash.Hash `json:"original_entry,omitempty" msgpack:"original_entry,omitempty"`

	// Deletes is set for delete actions: the create or update being
	// tombstoned.
	Deletes hash.Hash `json:"deletes,omitempty" msgpack:"deletes,omitempty"`

	// Link fields, set for create_link.
	Base     hash.Hash `json:"base,omitempty" msgpack:"base,omitempty"`
	Target   hash.Hash `json:"target,omitempty" msgpack:"target,omitempty"`
	LinkType string    `json:"link_type,omitempty" msgpack:"link_type,omitempty"`
	LinkTag  []byte    `json:"link_tag,omitempty" msgpack:"link_tag,omitempty"`

	// LinkAdd is set for delete_link: the create_link being tombstoned.
	LinkAdd hash.Hash `json:"link_add,omitempty" msgpack:"link_add,omitempty"`
}

// Hash returns the content address of the action, computed over its
// canonical encoding.
func (a Action) Hash() (hash.Hash, error) {
	canonical, err := wireformat.Marshal(a)
	if err != nil {
		return hash.Hash{}, err
	}
	return hash.Sum(hash.KindAction, canonical), nil
}

// Validate checks the structural invariants of the action variant.
func (a Action) Validate() error {
	if !a.Author.IsValid() {
		return fmt.Errorf("action: missing author")
	}
	if a.Timestamp.IsZero() {
		return fmt.Errorf("action: missing timestamp")
	}
	switch a.Type {
	case ActionCreate:
		if a.EntryType == "" || !a.EntryHash.IsValid() {
			return fmt.Errorf("action: create requires entry type and entry hash")
		}
	case ActionUpdate:
		if a.EntryType == "" || !a.EntryHash.IsValid() {
			return fmt.Errorf("action: update requires entry type and entry hash")
		}
		if !a.OriginalAction.IsValid() || !a.OriginalEntry.IsValid() {
			return fmt.Errorf("action: update requires original action and entry hashes")
		}
	case ActionDelete:
		if !a.Deletes.IsValid() {
			return fmt.Errorf("action: delete requires the hash it tombstones")
		}
	case ActionCreateLink:
		if !a.Base.IsValid() || !a.Target.IsValid() {
			return fmt.Errorf("action: create_link requires base and target")
		}
		if a.LinkType == "" {
			return fmt.Errorf("action: create_link requires a link type")
		}
	case ActionDeleteLink:
		if !a.LinkAdd.IsValid() {
			return fmt.Errorf("action: delete_link requires the create_link hash")
		}
	default:
		return fmt.Errorf("action: unknown type %q", a.Type)
	}
	return nil
}
