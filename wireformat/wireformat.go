// Package wireformat defines the binary wire format exchanged between the
// conductor host and guest (zomes). Encoding is deterministic msgpack: the
// same logical value always produces the same bytes, because encoded bytes
// are hashed for content addressing. These types must remain stable and
// backward compatible as they define the ABI contract.
package wireformat

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Marshal encodes a value into canonical msgpack bytes.
// Map keys are sorted and struct fields encode as maps in declaration order,
// so equal values always yield identical bytes.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	enc.UseCompactInts(true)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("wireformat: encode failed: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes msgpack bytes into v.
// Truncated or structurally invalid input yields a DecodeError of kind
// DecodeMalformed.
func Unmarshal(data []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(v); err != nil {
		return &DecodeError{Kind: DecodeMalformed, cause: err}
	}
	return nil
}

// DecodeErrorKind distinguishes the ways decoding can fail.
type DecodeErrorKind int

const (
	// DecodeMalformed means the bytes were truncated or not valid msgpack
	// for the expected shape.
	DecodeMalformed DecodeErrorKind = iota

	// DecodeUnknownTag means the envelope carried a capability tag this
	// build does not recognize. The tag space is append-only, so this is
	// the forward-compatibility path, not a crash.
	DecodeUnknownTag
)

// DecodeError is a guest-local decoding failure.
type DecodeError struct {
	Kind  DecodeErrorKind
	Tag   Tag // set for DecodeUnknownTag
	cause error
}

func (e *DecodeError) Error() string {
	switch e.Kind {
	case DecodeUnknownTag:
		return fmt.Sprintf("wireformat: unknown capability tag %d", e.Tag)
	default:
		return fmt.Sprintf("wireformat: malformed input: %v", e.cause)
	}
}

func (e *DecodeError) Unwrap() error { return e.cause }
