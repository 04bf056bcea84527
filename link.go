package sdk

import (
	"github.com/zomekit-dev/zome-sdk/dispatch"
	"github.com/zomekit-dev/zome-sdk/domain/entities"
	"github.com/zomekit-dev/zome-sdk/domain/errors"
	"github.com/zomekit-dev/zome-sdk/hash"
	"github.com/zomekit-dev/zome-sdk/wireformat"
)

// CreateLink commits a typed, tagged edge from base to target and returns
// the action hash of the create_link.
func CreateLink(base, target hash.Hash, linkType string, tag []byte) (hash.Hash, error) {
	if !base.IsValid() {
		return hash.Hash{}, &errors.ValidationError{Field: "base", Reason: "malformed hash"}
	}
	if !target.IsValid() {
		return hash.Hash{}, &errors.ValidationError{Field: "target", Reason: "malformed hash"}
	}
	if linkType == "" {
		return hash.Hash{}, &errors.ValidationError{Field: "link_type", Reason: "must not be empty"}
	}

	out, err := dispatch.CallTyped[entities.CreateLinkInput, entities.CreateLinkOutput](
		wireformat.TagCreateLink,
		entities.CreateLinkInput{Base: base, Target: target, Type: linkType, Tag: tag},
	)
	if err != nil {
		return hash.Hash{}, err
	}
	return out.ActionHash, nil
}

// GetLinks resolves the live links from a base, optionally filtered by link
// type (empty means all types). A base with no links yields an empty slice,
// not an error.
func GetLinks(base hash.Hash, linkType string) ([]Link, error) {
	if !base.IsValid() {
		return nil, &errors.ValidationError{Field: "base", Reason: "malformed hash"}
	}

	out, err := dispatch.CallTyped[entities.GetLinksInput, entities.GetLinksOutput](
		wireformat.TagGetLinks,
		entities.GetLinksInput{Base: base, Type: linkType},
	)
	if err != nil {
		return nil, err
	}
	return out.Links, nil
}

// DeleteLink tombstones a create_link by its action hash. Like entry
// deletes, this appends a delete_link record referencing the original; the
// link simply stops resolving through GetLinks.
func DeleteLink(linkAdd hash.Hash) (hash.Hash, error) {
	if !linkAdd.IsValid() {
		return hash.Hash{}, &errors.ValidationError{Field: "link_add", Reason: "malformed hash"}
	}

	out, err := dispatch.CallTyped[entities.DeleteLinkInput, entities.DeleteLinkOutput](
		wireformat.TagDeleteLink,
		entities.DeleteLinkInput{LinkAdd: linkAdd},
	)
	if err != nil {
		return hash.Hash{}, err
	}
	return out.ActionHash, nil
}
