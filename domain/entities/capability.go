package entities

import (
	"crypto/subtle"
	"time"

	"github.com/zomekit-dev/zome-sdk/hash"
)

// CapAccess is the access discipline of a grant. The set is closed.
type CapAccess string

const (
	// CapAccessUnrestricted allows any caller, no secret required.
	CapAccessUnrestricted CapAccess = "unrestricted"
	// CapAccessTransferable allows any caller that presents the secret.
	CapAccessTransferable CapAccess = "transferable"
	// CapAccessAssigned allows only listed assignees presenting the secret.
	CapAccessAssigned CapAccess = "assigned"
)

// CapSecret is the shared secret of a transferable or assigned grant.
type CapSecret []byte

// Equal compares secrets in constant time.
func (s CapSecret) Equal(other CapSecret) bool {
	if len(s) == 0 || len(other) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(s, other) == 1
}

// GrantedFunctions names the zome functions a grant covers. A nil or empty
// Functions list with All set covers every function.
type GrantedFunctions struct {
	All       bool           `json:"all,omitempty" msgpack:"all,omitempty"`
	Functions []ZomeFunction `json:"functions,omitempty" msgpack:"functions,omitempty"`
}

// ZomeFunction names a single function within a zome.
type ZomeFunction struct {
	Zome     string `json:"zome" msgpack:"zome"`
	Function string `json:"function" msgpack:"function"`
}

// Covers reports whether the grant extends to the given function.
func (g GrantedFunctions) Covers(zome, function string) bool {
	if g.All {
		return true
	}
	for _, fn := range g.Functions {
		if fn.Zome == zome && fn.Function == function {
			return true
		}
	}
	return false
}

// CapGrant is a credential issued by an agent, committed to its own chain as
// a system entry, describing which functions may be invoked by whom.
type CapGrant struct {
	Tag       string           `json:"tag" msgpack:"tag"`
	Access    CapAccess        `json:"access" msgpack:"access"`
	Secret    CapSecret        `json:"secret,omitempty" msgpack:"secret,omitempty"`
	Assignees []hash.Hash      `json:"assignees,omitempty" msgpack:"assignees,omitempty"`
	Functions GrantedFunctions `json:"functions" msgpack:"functions"`
	ExpiresAt time.Time        `json:"expires_at,omitempty" msgpack:"expires_at,omitempty"`
}

// Expired reports whether the grant has lapsed at the given instant.
// A zero ExpiresAt never expires.
func (g CapGrant) Expired(now time.Time) bool {
	return !g.ExpiresAt.IsZero() && now.After(g.ExpiresAt)
}

// CapClaim is the caller-held half of the credential pair, presented when
// invoking a restricted function. The guest only constructs and presents
// claims; validity is the host's verdict.
type CapClaim struct {
	Tag     string    `json:"tag" msgpack:"tag"`
	Grantor hash.Hash `json:"grantor" msgpack:"grantor"`
	Secret  CapSecret `json:"secret" msgpack:"secret"`
}

// ClaimValidation is the exhaustive outcome of checking a claim against the
// grants an agent has authored. Anything but ClaimValid is an authorization
// failure; a guarded call never silently degrades to an unauthenticated one.
type ClaimValidation string

const (
	ClaimValid            ClaimValidation = "valid"
	ClaimGrantNotFound    ClaimValidation = "grant_not_found"
	ClaimGrantExpired     ClaimValidation = "grant_expired"
	ClaimGrantRevoked     ClaimValidation = "grant_revoked"
	ClaimSecretMismatch   ClaimValidation = "secret_mismatch"
	ClaimFunctionMismatch ClaimValidation = "function_mismatch"
	ClaimAssigneeMismatch ClaimValidation = "assignee_mismatch"
)

// Authorized reports whether the outcome permits the call.
func (v ClaimValidation) Authorized() bool { return v == ClaimValid }
