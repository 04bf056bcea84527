package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmihailenco/msgpack/v5"
)

func TestSum_Shape(t *testing.T) {
	h := Sum(KindEntry, []byte("some canonical bytes"))

	require.True(t, h.IsValid())
	assert.Equal(t, KindEntry, h.Kind())
	assert.Len(t, h.Bytes(), Size)
	assert.Equal(t, []byte{0x84, 0x21, 0x24}, h.Bytes()[:3])
	assert.Len(t, h.Digest(), 32)
}

func TestSum_DeterministicPerKind(t *testing.T) {
	content := []byte("identical content")

	entry := Sum(KindEntry, content)
	entryAgain := Sum(KindEntry, content)
	action := Sum(KindAction, content)

	assert.True(t, entry.Equal(entryAgain))
	assert.False(t, entry.Equal(action), "same content under different kinds must differ")
	assert.Equal(t, entry.Digest(), action.Digest(), "digest portion is kind-independent")
}

func TestSum_DistinctContent(t *testing.T) {
	a := Sum(KindEntry, []byte("a"))
	b := Sum(KindEntry, []byte("b"))
	assert.False(t, a.Equal(b))
}

func TestString_ParseRoundTrip(t *testing.T) {
	for _, kind := range []Kind{KindAgent, KindEntry, KindAction, KindExternal} {
		h := Sum(kind, []byte("round trip"))

		text := h.String()
		require.NotEmpty(t, text)
		assert.Equal(t, "u", text[:1])

		parsed, err := Parse(text)
		require.NoError(t, err)
		assert.True(t, h.Equal(parsed))
		assert.Equal(t, kind, parsed.Kind())
	}
}

func TestParse_Rejects(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"missing prefix", "AAAA"},
		{"bad base64", "u!!!!"},
		{"wrong length", "uAAAA"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.in)
			assert.Error(t, err)
		})
	}
}

func TestFromBytes_RejectsUnknownPrefix(t *testing.T) {
	raw := Sum(KindEntry, []byte("x")).Bytes()
	raw[0] = 0xFF
	_, err := FromBytes(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kind prefix")
}

func TestFromBytes_RejectsWrongLength(t *testing.T) {
	_, err := FromBytes(make([]byte, 38))
	assert.Error(t, err)
}

func TestFromDigest(t *testing.T) {
	pubkey := make([]byte, 32)
	for i := range pubkey {
		pubkey[i] = byte(i)
	}

	h, err := FromDigest(KindAgent, pubkey)
	require.NoError(t, err)
	assert.Equal(t, KindAgent, h.Kind())
	assert.Equal(t, pubkey, h.Digest())

	_, err = FromDigest(KindAgent, pubkey[:16])
	assert.Error(t, err)
}

func TestZeroValue(t *testing.T) {
	var h Hash
	assert.False(t, h.IsValid())
	assert.Empty(t, h.String())
	assert.False(t, h.Equal(Sum(KindEntry, []byte("x"))))
}

func TestMsgpack_RoundTrip(t *testing.T) {
	h := Sum(KindAction, []byte("action bytes"))

	encoded, err := msgpack.Marshal(h)
	require.NoError(t, err)

	var decoded Hash
	require.NoError(t, msgpack.Unmarshal(encoded, &decoded))
	assert.True(t, h.Equal(decoded))
}

func TestMsgpack_ZeroValueRoundTrip(t *testing.T) {
	// Optional hash fields carry the zero value as nil on the wire.
	type holder struct {
		Opt Hash `msgpack:"opt"`
	}

	encoded, err := msgpack.Marshal(holder{})
	require.NoError(t, err)

	var decoded holder
	require.NoError(t, msgpack.Unmarshal(encoded, &decoded))
	assert.False(t, decoded.Opt.IsValid())
}

func TestMsgpack_RejectsCorruptBytes(t *testing.T) {
	encoded, err := msgpack.Marshal([]byte("not 39 bytes"))
	require.NoError(t, err)

	var decoded Hash
	assert.Error(t, msgpack.Unmarshal(encoded, &decoded))
}

func TestLocation_DependsOnDigest(t *testing.T) {
	a := Sum(KindEntry, []byte("first"))
	b := Sum(KindEntry, []byte("second"))
	assert.NotEqual(t, a.Bytes()[35:], b.Bytes()[35:], "location trailers should differ for different digests")
}
