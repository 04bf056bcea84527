package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCapSecret_Equal(t *testing.T) {
	secret := CapSecret("super-secret-value")

	assert.True(t, secret.Equal(CapSecret("super-secret-value")))
	assert.False(t, secret.Equal(CapSecret("wrong")))
	assert.False(t, secret.Equal(nil), "empty never matches")
	assert.False(t, CapSecret(nil).Equal(secret))
	assert.False(t, CapSecret(nil).Equal(nil))
}

func TestGrantedFunctions_Covers(t *testing.T) {
	all := GrantedFunctions{All: true}
	assert.True(t, all.Covers("any", "thing"))

	scoped := GrantedFunctions{Functions: []ZomeFunction{
		{Zome: "forum", Function: "create_post"},
		{Zome: "forum", Function: "delete_post"},
	}}
	assert.True(t, scoped.Covers("forum", "create_post"))
	assert.False(t, scoped.Covers("forum", "update_post"))
	assert.False(t, scoped.Covers("chat", "create_post"))

	empty := GrantedFunctions{}
	assert.False(t, empty.Covers("forum", "create_post"))
}

func TestCapGrant_Expired(t *testing.T) {
	now := time.Unix(1700000000, 0)

	forever := CapGrant{Tag: "t", Access: CapAccessUnrestricted}
	assert.False(t, forever.Expired(now))

	lapsed := CapGrant{Tag: "t", ExpiresAt: now.Add(-time.Hour)}
	assert.True(t, lapsed.Expired(now))

	future := CapGrant{Tag: "t", ExpiresAt: now.Add(time.Hour)}
	assert.False(t, future.Expired(now))

	exact := CapGrant{Tag: "t", ExpiresAt: now}
	assert.False(t, exact.Expired(now), "boundary instant is still valid")
}

func TestClaimValidation_Authorized(t *testing.T) {
	assert.True(t, ClaimValid.Authorized())

	for _, outcome := range []ClaimValidation{
		ClaimGrantNotFound, ClaimGrantExpired, ClaimGrantRevoked,
		ClaimSecretMismatch, ClaimFunctionMismatch, ClaimAssigneeMismatch,
	} {
		assert.False(t, outcome.Authorized(), "%s must refuse", outcome)
	}
}
