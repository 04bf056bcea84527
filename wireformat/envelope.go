package wireformat

import "github.com/vmihailenco/msgpack/v5"

// ResponseEnvelope is what the host writes back for every capability call.
// Exactly one of Payload or Err is meaningful: a success carries the encoded
// capability-specific output, a failure carries a structured error. The tag
// echoes the request so the guest can detect a mismatched response.
type ResponseEnvelope struct {
	Tag     Tag                `msgpack:"tag"`
	Payload msgpack.RawMessage `msgpack:"payload,omitempty"`
	Err     *ErrorDetail       `msgpack:"err,omitempty"`
}

// EncodeResponse builds and encodes a success envelope.
func EncodeResponse(tag Tag, payload any) ([]byte, error) {
	raw, err := Marshal(payload)
	if err != nil {
		return nil, err
	}
	return Marshal(ResponseEnvelope{Tag: tag, Payload: raw})
}

// EncodeErrorResponse builds and encodes a failure envelope.
func EncodeErrorResponse(tag Tag, detail *ErrorDetail) ([]byte, error) {
	return Marshal(ResponseEnvelope{Tag: tag, Err: detail})
}

// DecodeResponse decodes an envelope. An unrecognized tag yields a
// DecodeError of kind DecodeUnknownTag. Checking that the tag matches the
// request is the dispatcher's job.
func DecodeResponse(data []byte) (*ResponseEnvelope, error) {
	var env ResponseEnvelope
	if err := Unmarshal(data, &env); err != nil {
		return nil, err
	}
	if !env.Tag.Known() {
		return nil, &DecodeError{Kind: DecodeUnknownTag, Tag: env.Tag}
	}
	return &env, nil
}
