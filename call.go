package sdk

import (
	"github.com/zomekit-dev/zome-sdk/dispatch"
	"github.com/zomekit-dev/zome-sdk/domain/entities"
	"github.com/zomekit-dev/zome-sdk/domain/errors"
	"github.com/zomekit-dev/zome-sdk/hash"
	"github.com/zomekit-dev/zome-sdk/wireformat"
)

// CallRemote invokes a function in another agent's cell. A nil claim makes
// an explicitly unrestricted call; a non-nil claim is presented to the
// callee's host for validation. The bridge never downgrades a failed claim
// to an unauthenticated call: an invalid claim surfaces as an
// UnauthorizedError carrying the exact validation outcome.
func CallRemote(target hash.Hash, zomeName, function string, claim *CapClaim, payload []byte) ([]byte, error) {
	if !target.IsValid() {
		return nil, &errors.ValidationError{Field: "target", Reason: "malformed hash"}
	}
	if zomeName == "" {
		return nil, &errors.ValidationError{Field: "zome", Reason: "must not be empty"}
	}
	if function == "" {
		return nil, &errors.ValidationError{Field: "function", Reason: "must not be empty"}
	}
	if claim != nil {
		if err := checkClaim(claim); err != nil {
			return nil, err
		}
	}

	out, err := dispatch.CallTyped[entities.CallRemoteInput, entities.CallRemoteOutput](
		wireformat.TagCallRemote,
		entities.CallRemoteInput{
			Target:   target,
			Zome:     zomeName,
			Function: function,
			Claim:    claim,
			Payload:  payload,
		},
	)
	if err != nil {
		return nil, err
	}
	return out.Response, nil
}

// checkClaim enforces the structural shape of a claim before it crosses the
// boundary. Validity (expiry, revocation, secret match) is the host's
// verdict alone.
func checkClaim(claim *CapClaim) error {
	if !claim.Grantor.IsValid() {
		return &errors.ValidationError{Field: "claim.grantor", Reason: "malformed hash"}
	}
	if len(claim.Secret) == 0 {
		return &errors.ValidationError{Field: "claim.secret", Reason: "must not be empty"}
	}
	return nil
}
