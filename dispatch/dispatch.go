// Package dispatch is the single choke point for guest-to-host calls.
//
// Every capability the host exposes is invoked through Call: encode a
// request, cross the trust boundary exactly once, decode the tagged
// response, convert host-reported failures into typed guest errors. There
// are no retries and no timeouts here; a host call either succeeds once or
// returns a typed failure, and retry policy belongs to application code.
package dispatch

import (
	"github.com/zomekit-dev/zome-sdk/domain/errors"
	"github.com/zomekit-dev/zome-sdk/wireformat"
)

// Call invokes the host capability identified by tag with an encoded
// request, returning the encoded success payload.
//
// The guest is single-threaded and every call is synchronous: execution
// suspends until the host returns, and no second call can be in flight.
func Call(tag wireformat.Tag, request []byte) ([]byte, error) {
	raw := invokeRaw(tag, request)
	if raw == nil {
		return nil, &errors.ProtocolViolationError{Reason: "host returned no data for " + tag.String()}
	}

	env, err := wireformat.DecodeResponse(raw)
	if err != nil {
		return nil, &errors.ProtocolViolationError{Reason: "undecodable response for " + tag.String(), Err: err}
	}
	if env.Tag != tag {
		return nil, &errors.ProtocolViolationError{
			Reason: "response tag " + env.Tag.String() + " does not match request tag " + tag.String(),
		}
	}
	if env.Err != nil {
		return nil, errors.FromErrorDetail(env.Err)
	}
	return env.Payload, nil
}

// CallTyped marshals a typed request, performs the host call, and
// unmarshals the typed response.
func CallTyped[Req any, Resp any](tag wireformat.Tag, req Req) (Resp, error) {
	var resp Resp

	reqBytes, err := wireformat.Marshal(req)
	if err != nil {
		return resp, &errors.ValidationError{Reason: "cannot encode request: " + err.Error()}
	}

	respBytes, err := Call(tag, reqBytes)
	if err != nil {
		return resp, err
	}

	if err := wireformat.Unmarshal(respBytes, &resp); err != nil {
		return resp, &errors.ProtocolViolationError{Reason: "undecodable payload for " + tag.String(), Err: err}
	}
	return resp, nil
}

// Notify performs a one-way host call whose response carries no payload the
// caller needs. Failures still surface as typed errors.
func Notify(tag wireformat.Tag, req any) error {
	reqBytes, err := wireformat.Marshal(req)
	if err != nil {
		return &errors.ValidationError{Reason: "cannot encode request: " + err.Error()}
	}
	_, err = Call(tag, reqBytes)
	return err
}
