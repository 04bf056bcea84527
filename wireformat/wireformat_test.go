package wireformat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshal_Deterministic(t *testing.T) {
	// Map iteration order is randomized in Go; canonical encoding must not
	// leak that randomness into the bytes.
	value := map[string]any{
		"zebra": 1, "apple": 2, "mango": 3, "kiwi": 4, "berry": 5,
	}

	first, err := Marshal(value)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		again, err := Marshal(value)
		require.NoError(t, err)
		assert.Equal(t, first, again, "encoding differed on iteration %d", i)
	}
}

func TestMarshal_NestedMapsDeterministic(t *testing.T) {
	value := map[string]any{
		"outer": map[string]any{"b": 1, "a": 2, "c": 3},
		"list":  []any{map[string]any{"y": 1, "x": 2}},
	}

	first, err := Marshal(value)
	require.NoError(t, err)
	second, err := Marshal(value)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestUnmarshal_RoundTrip(t *testing.T) {
	type payload struct {
		Name  string `msgpack:"name"`
		Count int    `msgpack:"count"`
		Data  []byte `msgpack:"data"`
	}

	in := payload{Name: "widget", Count: 42, Data: []byte{1, 2, 3}}
	encoded, err := Marshal(in)
	require.NoError(t, err)

	var out payload
	require.NoError(t, Unmarshal(encoded, &out))
	assert.Equal(t, in, out)
}

func TestUnmarshal_Malformed(t *testing.T) {
	var out map[string]any
	err := Unmarshal([]byte{0xc1, 0xff, 0x00}, &out)
	require.Error(t, err)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, DecodeMalformed, decodeErr.Kind)
}

func TestTag_String(t *testing.T) {
	assert.Equal(t, "create_entry", TagCreateEntry.String())
	assert.Equal(t, "log_message", TagLogMessage.String())
	assert.Contains(t, Tag(9999).String(), "unknown")
}

func TestTag_Known(t *testing.T) {
	assert.True(t, TagCreateEntry.Known())
	assert.True(t, TagLogMessage.Known())
	assert.False(t, TagInvalid.Known())
	assert.False(t, Tag(9999).Known())
}

func TestEncodeResponse_RoundTrip(t *testing.T) {
	type output struct {
		Value string `msgpack:"value"`
	}

	encoded, err := EncodeResponse(TagGetRecord, output{Value: "hello"})
	require.NoError(t, err)

	env, err := DecodeResponse(encoded)
	require.NoError(t, err)
	assert.Equal(t, TagGetRecord, env.Tag)
	assert.Nil(t, env.Err)

	var out output
	require.NoError(t, Unmarshal(env.Payload, &out))
	assert.Equal(t, "hello", out.Value)
}

func TestEncodeErrorResponse_RoundTrip(t *testing.T) {
	detail := &ErrorDetail{Type: "not_found", Message: "nothing here", IsNotFound: true}

	encoded, err := EncodeErrorResponse(TagGetRecord, detail)
	require.NoError(t, err)

	env, err := DecodeResponse(encoded)
	require.NoError(t, err)
	assert.Equal(t, TagGetRecord, env.Tag)
	require.NotNil(t, env.Err)
	assert.Equal(t, "not_found", env.Err.Type)
	assert.True(t, env.Err.IsNotFound)
	assert.Empty(t, env.Payload)
}

func TestDecodeResponse_UnknownTag(t *testing.T) {
	encoded, err := Marshal(ResponseEnvelope{Tag: Tag(9999)})
	require.NoError(t, err)

	_, err = DecodeResponse(encoded)
	require.Error(t, err)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, DecodeUnknownTag, decodeErr.Kind)
	assert.Equal(t, Tag(9999), decodeErr.Tag)
}

func TestDecodeResponse_Garbage(t *testing.T) {
	_, err := DecodeResponse([]byte("definitely not msgpack"))
	require.Error(t, err)
}

func TestErrorDetail_Error(t *testing.T) {
	detail := &ErrorDetail{Type: "validation", Message: "field missing"}
	assert.Contains(t, detail.Error(), "field missing")
}
