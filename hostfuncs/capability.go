package hostfuncs

import (
	"github.com/zomekit-dev/zome-sdk/domain/entities"
	"github.com/zomekit-dev/zome-sdk/hash"
	"github.com/zomekit-dev/zome-sdk/wireformat"
)

// Capability checking for remote calls. Grants live on the callee's source
// chain as __cap_grant entries; revocation is deleting the grant's create
// action. The verdict is one of the closed ClaimValidation outcomes, and
// anything but ClaimValid refuses the call.

// grantState is a grant decoded off a chain together with its tombstone
// status.
type grantState struct {
	grant   entities.CapGrant
	revoked bool
}

// grantsOf decodes every capability grant the agent has ever committed.
func (c *Conductor) grantsOf(callee *cell) []grantState {
	var grants []grantState
	for _, rec := range callee.chain.records {
		if rec.Action.Type != entities.ActionCreate && rec.Action.Type != entities.ActionUpdate {
			continue
		}
		if rec.Action.EntryType != entities.EntryTypeCapGrant || rec.Entry == nil {
			continue
		}
		var grant entities.CapGrant
		if err := wireformat.Unmarshal(rec.Entry.Content, &grant); err != nil {
			continue
		}
		actionHash, err := rec.Action.Hash()
		if err != nil {
			continue
		}
		grants = append(grants, grantState{
			grant:   grant,
			revoked: len(c.deletesOf(actionHash)) > 0,
		})
	}
	return grants
}

// validateClaim checks a remote call from caller against the callee's
// grants.
//
// A nil claim is an explicit request for unrestricted access: it succeeds
// only if the callee has a live unrestricted grant covering the function.
// With a claim, the grant is looked up by tag and checked in a fixed order
// so the outcome names the first failing condition: revocation, expiry,
// secret, function coverage, assignee list.
func (c *Conductor) validateClaim(callee *cell, caller hash.Hash, zomeName, function string, claim *entities.CapClaim) entities.ClaimValidation {
	grants := c.grantsOf(callee)
	now := c.now()

	if claim == nil {
		for _, gs := range grants {
			if gs.revoked || gs.grant.Access != entities.CapAccessUnrestricted {
				continue
			}
			if gs.grant.Expired(now) {
				continue
			}
			if gs.grant.Functions.Covers(zomeName, function) {
				return entities.ClaimValid
			}
		}
		return entities.ClaimGrantNotFound
	}

	for _, gs := range grants {
		if gs.grant.Tag != claim.Tag {
			continue
		}
		if gs.revoked {
			return entities.ClaimGrantRevoked
		}
		if gs.grant.Expired(now) {
			return entities.ClaimGrantExpired
		}
		switch gs.grant.Access {
		case entities.CapAccessUnrestricted:
			// No secret to check.
		case entities.CapAccessTransferable:
			if !gs.grant.Secret.Equal(claim.Secret) {
				return entities.ClaimSecretMismatch
			}
		case entities.CapAccessAssigned:
			if !gs.grant.Secret.Equal(claim.Secret) {
				return entities.ClaimSecretMismatch
			}
			if !assigneeListed(gs.grant.Assignees, caller) {
				return entities.ClaimAssigneeMismatch
			}
		}
		if !gs.grant.Functions.Covers(zomeName, function) {
			return entities.ClaimFunctionMismatch
		}
		return entities.ClaimValid
	}
	return entities.ClaimGrantNotFound
}

func assigneeListed(assignees []hash.Hash, caller hash.Hash) bool {
	for _, a := range assignees {
		if a.Equal(caller) {
			return true
		}
	}
	return false
}
