package sdk

import (
	"github.com/zomekit-dev/zome-sdk/dispatch"
	"github.com/zomekit-dev/zome-sdk/domain/entities"
	"github.com/zomekit-dev/zome-sdk/domain/errors"
	"github.com/zomekit-dev/zome-sdk/hash"
	"github.com/zomekit-dev/zome-sdk/wireformat"
)

// CreateCapGrant commits a capability grant to the chain as a system entry
// and returns its action hash. The grant takes effect immediately; revoke
// it with RevokeCapGrant.
func CreateCapGrant(grant CapGrant) (hash.Hash, error) {
	if err := checkGrant(grant); err != nil {
		return hash.Hash{}, err
	}

	content, err := wireformat.Marshal(grant)
	if err != nil {
		return hash.Hash{}, &errors.ValidationError{Field: "grant", Reason: err.Error()}
	}

	out, err := dispatch.CallTyped[entities.CreateEntryInput, entities.CreateEntryOutput](
		wireformat.TagCreateEntry,
		entities.CreateEntryInput{Entry: entities.Entry{Type: entities.EntryTypeCapGrant, Content: content}},
	)
	if err != nil {
		return hash.Hash{}, err
	}
	return out.ActionHash, nil
}

// RevokeCapGrant tombstones a grant by the action hash CreateCapGrant
// returned. Claims presented against a revoked grant fail with the
// grant_revoked outcome from then on.
func RevokeCapGrant(grantAction hash.Hash) (hash.Hash, error) {
	return DeleteEntry(grantAction)
}

// CreateCapClaim stores a received claim on the chain as a system entry so
// it can be retrieved later and presented in CallRemote.
func CreateCapClaim(claim CapClaim) (hash.Hash, error) {
	if err := checkClaim(&claim); err != nil {
		return hash.Hash{}, err
	}

	content, err := wireformat.Marshal(claim)
	if err != nil {
		return hash.Hash{}, &errors.ValidationError{Field: "claim", Reason: err.Error()}
	}

	out, err := dispatch.CallTyped[entities.CreateEntryInput, entities.CreateEntryOutput](
		wireformat.TagCreateEntry,
		entities.CreateEntryInput{Entry: entities.Entry{Type: entities.EntryTypeCapClaim, Content: content}},
	)
	if err != nil {
		return hash.Hash{}, err
	}
	return out.ActionHash, nil
}

// checkGrant enforces coherence of the access discipline before the grant
// crosses the boundary.
func checkGrant(grant CapGrant) error {
	if grant.Tag == "" {
		return &errors.ValidationError{Field: "grant.tag", Reason: "must not be empty"}
	}
	switch grant.Access {
	case entities.CapAccessUnrestricted:
		// No secret, no assignees.
	case entities.CapAccessTransferable:
		if len(grant.Secret) == 0 {
			return &errors.ValidationError{Field: "grant.secret", Reason: "transferable grants need a secret"}
		}
	case entities.CapAccessAssigned:
		if len(grant.Secret) == 0 {
			return &errors.ValidationError{Field: "grant.secret", Reason: "assigned grants need a secret"}
		}
		if len(grant.Assignees) == 0 {
			return &errors.ValidationError{Field: "grant.assignees", Reason: "assigned grants need at least one assignee"}
		}
	default:
		return &errors.ValidationError{Field: "grant.access", Reason: "unknown access discipline"}
	}
	if !grant.Functions.All && len(grant.Functions.Functions) == 0 {
		return &errors.ValidationError{Field: "grant.functions", Reason: "grant covers no functions"}
	}
	return nil
}
