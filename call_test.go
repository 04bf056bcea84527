package sdk_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdk "github.com/zomekit-dev/zome-sdk"
	"github.com/zomekit-dev/zome-sdk/application/zome"
	"github.com/zomekit-dev/zome-sdk/domain/entities"
	"github.com/zomekit-dev/zome-sdk/domain/errors"
	"github.com/zomekit-dev/zome-sdk/hash"
	"github.com/zomekit-dev/zome-sdk/hostfuncs"
)

type greetIn struct {
	Name string `msgpack:"name"`
}

type greetOut struct {
	Greeting string `msgpack:"greeting"`
}

// newCallee sets up a second agent with a forum zome installed, plus a
// helper that commits grants onto its chain.
func newCallee(t *testing.T, conductor *hostfuncs.Conductor) hash.Hash {
	t.Helper()
	callee, err := conductor.GenerateAgent()
	require.NoError(t, err)

	def := zome.DefineZome(zome.ZomeDef{Name: "forum", Version: "1.0.0"})
	zome.Register(def, "greet", func(ctx context.Context, in greetIn) (greetOut, error) {
		return greetOut{Greeting: "hello " + in.Name}, nil
	})
	zome.Register(def, "commit_post", func(ctx context.Context, in post) (hash.Hash, error) {
		content, err := sdk.MarshalContent(in)
		if err != nil {
			return hash.Hash{}, err
		}
		return sdk.CreateEntry("post", content)
	})
	zome.Register(def, "fail", func(ctx context.Context, in struct{}) (struct{}, error) {
		return struct{}{}, &errors.ValidationError{Field: "always", Reason: "this function always fails"}
	})

	require.NoError(t, conductor.InstallZome(callee, def))
	return callee
}

func grantAs(t *testing.T, conductor *hostfuncs.Conductor, agent hash.Hash, grant sdk.CapGrant) hash.Hash {
	t.Helper()
	var grantAction hash.Hash
	asAgent(t, conductor, agent, func() {
		var err error
		grantAction, err = sdk.CreateCapGrant(grant)
		require.NoError(t, err)
	})
	return grantAction
}

func TestCallRemote_Unrestricted(t *testing.T) {
	conductor, _ := newCell(t)
	callee := newCallee(t, conductor)

	grantAs(t, conductor, callee, sdk.CapGrant{
		Tag:       "public-api",
		Access:    entities.CapAccessUnrestricted,
		Functions: entities.GrantedFunctions{Functions: []entities.ZomeFunction{{Zome: "forum", Function: "greet"}}},
	})

	payload, err := sdk.MarshalContent(greetIn{Name: "alice"})
	require.NoError(t, err)
	response, err := sdk.CallRemote(callee, "forum", "greet", nil, payload)
	require.NoError(t, err)

	var out greetOut
	require.NoError(t, sdk.UnmarshalContent(response, &out))
	assert.Equal(t, "hello alice", out.Greeting)
}

func TestCallRemote_NoGrant(t *testing.T) {
	conductor, _ := newCell(t)
	callee := newCallee(t, conductor)

	_, err := sdk.CallRemote(callee, "forum", "greet", nil, nil)
	var unauthorized *errors.UnauthorizedError
	require.ErrorAs(t, err, &unauthorized)
	assert.Equal(t, entities.ClaimGrantNotFound, unauthorized.Outcome)
}

func TestCallRemote_Transferable(t *testing.T) {
	conductor, _ := newCell(t)
	callee := newCallee(t, conductor)
	secret := entities.CapSecret("the-shared-secret")

	grantAs(t, conductor, callee, sdk.CapGrant{
		Tag:       "friends",
		Access:    entities.CapAccessTransferable,
		Secret:    secret,
		Functions: entities.GrantedFunctions{All: true},
	})

	t.Run("valid secret", func(t *testing.T) {
		payload, err := sdk.MarshalContent(greetIn{Name: "bob"})
		require.NoError(t, err)
		claim := &sdk.CapClaim{Tag: "friends", Grantor: callee, Secret: secret}
		_, err = sdk.CallRemote(callee, "forum", "greet", claim, payload)
		require.NoError(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		claim := &sdk.CapClaim{Tag: "friends", Grantor: callee, Secret: entities.CapSecret("guess")}
		_, err := sdk.CallRemote(callee, "forum", "greet", claim, nil)
		var unauthorized *errors.UnauthorizedError
		require.ErrorAs(t, err, &unauthorized)
		assert.Equal(t, entities.ClaimSecretMismatch, unauthorized.Outcome)
	})

	t.Run("unknown tag", func(t *testing.T) {
		claim := &sdk.CapClaim{Tag: "strangers", Grantor: callee, Secret: secret}
		_, err := sdk.CallRemote(callee, "forum", "greet", claim, nil)
		var unauthorized *errors.UnauthorizedError
		require.ErrorAs(t, err, &unauthorized)
		assert.Equal(t, entities.ClaimGrantNotFound, unauthorized.Outcome)
	})
}

func TestCallRemote_Assigned(t *testing.T) {
	conductor, caller := newCell(t)
	callee := newCallee(t, conductor)
	outsider, err := conductor.GenerateAgent()
	require.NoError(t, err)
	secret := entities.CapSecret("assigned-secret")

	grantAs(t, conductor, callee, sdk.CapGrant{
		Tag:       "inner-circle",
		Access:    entities.CapAccessAssigned,
		Secret:    secret,
		Assignees: []hash.Hash{caller},
		Functions: entities.GrantedFunctions{All: true},
	})
	claim := &sdk.CapClaim{Tag: "inner-circle", Grantor: callee, Secret: secret}

	t.Run("assignee passes", func(t *testing.T) {
		payload, err := sdk.MarshalContent(greetIn{Name: "carol"})
		require.NoError(t, err)
		_, err = sdk.CallRemote(callee, "forum", "greet", claim, payload)
		require.NoError(t, err)
	})

	t.Run("non-assignee refused", func(t *testing.T) {
		asAgent(t, conductor, outsider, func() {
			_, err := sdk.CallRemote(callee, "forum", "greet", claim, nil)
			var unauthorized *errors.UnauthorizedError
			require.ErrorAs(t, err, &unauthorized)
			assert.Equal(t, entities.ClaimAssigneeMismatch, unauthorized.Outcome)
		})
	})
}

func TestCallRemote_RevokedGrant(t *testing.T) {
	conductor, _ := newCell(t)
	callee := newCallee(t, conductor)
	secret := entities.CapSecret("soon-revoked")

	grantAction := grantAs(t, conductor, callee, sdk.CapGrant{
		Tag:       "temporary",
		Access:    entities.CapAccessTransferable,
		Secret:    secret,
		Functions: entities.GrantedFunctions{All: true},
	})
	asAgent(t, conductor, callee, func() {
		_, err := sdk.RevokeCapGrant(grantAction)
		require.NoError(t, err)
	})

	claim := &sdk.CapClaim{Tag: "temporary", Grantor: callee, Secret: secret}
	_, err := sdk.CallRemote(callee, "forum", "greet", claim, nil)
	var unauthorized *errors.UnauthorizedError
	require.ErrorAs(t, err, &unauthorized)
	assert.Equal(t, entities.ClaimGrantRevoked, unauthorized.Outcome)
}

func TestCallRemote_ExpiredGrant(t *testing.T) {
	now := time.Unix(1700000000, 0)
	conductor, _ := newCell(t, hostfuncs.WithClock(func() time.Time { return now }))
	callee := newCallee(t, conductor)
	secret := entities.CapSecret("short-lived")

	grantAs(t, conductor, callee, sdk.CapGrant{
		Tag:       "lease",
		Access:    entities.CapAccessTransferable,
		Secret:    secret,
		ExpiresAt: now.Add(time.Hour),
		Functions: entities.GrantedFunctions{All: true},
	})

	claim := &sdk.CapClaim{Tag: "lease", Grantor: callee, Secret: secret}
	payload, err := sdk.MarshalContent(greetIn{Name: "dave"})
	require.NoError(t, err)
	_, err = sdk.CallRemote(callee, "forum", "greet", claim, payload)
	require.NoError(t, err, "grant is still inside its lease")

	now = now.Add(2 * time.Hour)
	_, err = sdk.CallRemote(callee, "forum", "greet", claim, payload)
	var unauthorized *errors.UnauthorizedError
	require.ErrorAs(t, err, &unauthorized)
	assert.Equal(t, entities.ClaimGrantExpired, unauthorized.Outcome)
}

func TestCallRemote_FunctionMismatch(t *testing.T) {
	conductor, _ := newCell(t)
	callee := newCallee(t, conductor)
	secret := entities.CapSecret("narrow")

	grantAs(t, conductor, callee, sdk.CapGrant{
		Tag:       "narrow",
		Access:    entities.CapAccessTransferable,
		Secret:    secret,
		Functions: entities.GrantedFunctions{Functions: []entities.ZomeFunction{{Zome: "forum", Function: "greet"}}},
	})

	claim := &sdk.CapClaim{Tag: "narrow", Grantor: callee, Secret: secret}
	_, err := sdk.CallRemote(callee, "forum", "commit_post", claim, nil)
	var unauthorized *errors.UnauthorizedError
	require.ErrorAs(t, err, &unauthorized)
	assert.Equal(t, entities.ClaimFunctionMismatch, unauthorized.Outcome)
}

func TestCallRemote_CalleeCommitsToOwnChain(t *testing.T) {
	conductor, caller := newCell(t)
	callee := newCallee(t, conductor)

	grantAs(t, conductor, callee, sdk.CapGrant{
		Tag:       "open",
		Access:    entities.CapAccessUnrestricted,
		Functions: entities.GrantedFunctions{All: true},
	})
	calleeLenBefore := conductor.ChainLength(callee)
	callerLenBefore := conductor.ChainLength(caller)

	payload, err := sdk.MarshalContent(post{Title: "remote", Body: "committed by callee"})
	require.NoError(t, err)
	response, err := sdk.CallRemote(callee, "forum", "commit_post", nil, payload)
	require.NoError(t, err)

	var actionHash hash.Hash
	require.NoError(t, sdk.UnmarshalContent(response, &actionHash))
	assert.True(t, actionHash.IsValid())

	assert.Equal(t, calleeLenBefore+1, conductor.ChainLength(callee), "commit lands on the callee chain")
	assert.Equal(t, callerLenBefore, conductor.ChainLength(caller), "caller chain is untouched")

	record, err := sdk.GetRecord(actionHash)
	require.NoError(t, err)
	assert.True(t, record.Action.Author.Equal(callee))
}

func TestCallRemote_CalleeErrorPropagates(t *testing.T) {
	conductor, _ := newCell(t)
	callee := newCallee(t, conductor)

	grantAs(t, conductor, callee, sdk.CapGrant{
		Tag:       "open",
		Access:    entities.CapAccessUnrestricted,
		Functions: entities.GrantedFunctions{All: true},
	})

	_, err := sdk.CallRemote(callee, "forum", "fail", nil, nil)
	var validation *errors.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, err.Error(), "always fails")
}

func TestCallRemote_UnknownTarget(t *testing.T) {
	newCell(t)

	ghost, err := hash.FromDigest(hash.KindAgent, make([]byte, 32))
	require.NoError(t, err)
	_, err = sdk.CallRemote(ghost, "forum", "greet", nil, nil)
	var notFound *errors.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestCreateCapGrant_LocalValidation(t *testing.T) {
	cases := []struct {
		name  string
		grant sdk.CapGrant
	}{
		{"missing tag", sdk.CapGrant{Access: entities.CapAccessUnrestricted, Functions: entities.GrantedFunctions{All: true}}},
		{"transferable without secret", sdk.CapGrant{Tag: "t", Access: entities.CapAccessTransferable, Functions: entities.GrantedFunctions{All: true}}},
		{"assigned without assignees", sdk.CapGrant{Tag: "t", Access: entities.CapAccessAssigned, Secret: entities.CapSecret("s"), Functions: entities.GrantedFunctions{All: true}}},
		{"unknown access", sdk.CapGrant{Tag: "t", Access: "open-sesame", Functions: entities.GrantedFunctions{All: true}}},
		{"no functions", sdk.CapGrant{Tag: "t", Access: entities.CapAccessUnrestricted}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := sdk.CreateCapGrant(tc.grant)
			var validation *errors.ValidationError
			assert.ErrorAs(t, err, &validation)
		})
	}
}

func TestCreateCapClaim_StoredOnChain(t *testing.T) {
	conductor, _ := newCell(t)
	callee := newCallee(t, conductor)

	_, err := sdk.CreateCapClaim(sdk.CapClaim{
		Tag:     "received",
		Grantor: callee,
		Secret:  entities.CapSecret("given to me"),
	})
	require.NoError(t, err)

	records, err := sdk.Query(sdk.QueryFilter{
		EntryTypes:     []sdk.EntryType{entities.EntryTypeCapClaim},
		IncludeEntries: true,
	})
	require.NoError(t, err)
	require.Len(t, records, 1)

	var claim sdk.CapClaim
	require.NoError(t, sdk.UnmarshalContent(records[0].Entry.Content, &claim))
	assert.Equal(t, "received", claim.Tag)
	assert.True(t, claim.Grantor.Equal(callee))
}
