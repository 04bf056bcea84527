// Package hash implements content addressing for records exchanged with the
// conductor host. A hash is 39 bytes: a 3-byte kind prefix, the 32-byte
// blake2b-256 digest of the canonical encoding, and a 4-byte location trailer
// used by the host for DHT placement. The text form is "u" followed by the
// unpadded base64url encoding of all 39 bytes.
package hash

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/crypto/blake2b"
)

// Kind identifies what a hash addresses.
type Kind uint8

const (
	// KindAgent addresses an agent public key.
	KindAgent Kind = iota
	// KindEntry addresses entry content.
	KindEntry
	// KindAction addresses a signed action.
	KindAction
	// KindExternal addresses content that lives outside the conductor.
	KindExternal
)

// 3-byte kind prefixes. The prefix space is append-only; retired prefixes
// must not be reused.
var kindPrefixes = map[Kind][3]byte{
	KindAgent:    {0x84, 0x20, 0x24},
	KindEntry:    {0x84, 0x21, 0x24},
	KindAction:   {0x84, 0x29, 0x24},
	KindExternal: {0x84, 0x2f, 0x24},
}

const (
	prefixLen   = 3
	digestLen   = 32
	locationLen = 4

	// Size is the total byte length of a hash.
	Size = prefixLen + digestLen + locationLen
)

// textPrefix marks the string form of a hash.
const textPrefix = "u"

var b64 = base64.RawURLEncoding

// Hash is an immutable content address. The zero value is invalid.
type Hash struct {
	raw [Size]byte
	ok  bool
}

// Sum hashes canonical bytes and returns the full address for the given kind.
func Sum(kind Kind, canonical []byte) Hash {
	prefix, found := kindPrefixes[kind]
	if !found {
		panic(fmt.Sprintf("hash: unknown kind %d", kind))
	}
	digest := blake2b.Sum256(canonical)

	var h Hash
	copy(h.raw[:prefixLen], prefix[:])
	copy(h.raw[prefixLen:prefixLen+digestLen], digest[:])
	copy(h.raw[prefixLen+digestLen:], location(digest[:]))
	h.ok = true
	return h
}

// FromDigest builds a hash from a precomputed 32-byte digest. Used for agent
// addresses, where the digest is the public key itself rather than a hash of
// content.
func FromDigest(kind Kind, digest []byte) (Hash, error) {
	if len(digest) != digestLen {
		return Hash{}, fmt.Errorf("hash: digest must be %d bytes, got %d", digestLen, len(digest))
	}
	prefix, found := kindPrefixes[kind]
	if !found {
		return Hash{}, fmt.Errorf("hash: unknown kind %d", kind)
	}
	var h Hash
	copy(h.raw[:prefixLen], prefix[:])
	copy(h.raw[prefixLen:prefixLen+digestLen], digest)
	copy(h.raw[prefixLen+digestLen:], location(digest))
	h.ok = true
	return h, nil
}

// FromBytes validates and wraps a raw 39-byte hash.
func FromBytes(raw []byte) (Hash, error) {
	if len(raw) != Size {
		return Hash{}, fmt.Errorf("hash: expected %d bytes, got %d", Size, len(raw))
	}
	if _, err := kindOf(raw); err != nil {
		return Hash{}, err
	}
	var h Hash
	copy(h.raw[:], raw)
	h.ok = true
	return h, nil
}

// Parse decodes the text form produced by String.
func Parse(s string) (Hash, error) {
	if len(s) == 0 || s[:len(textPrefix)] != textPrefix {
		return Hash{}, fmt.Errorf("hash: missing %q prefix", textPrefix)
	}
	raw, err := b64.DecodeString(s[len(textPrefix):])
	if err != nil {
		return Hash{}, fmt.Errorf("hash: invalid base64url: %w", err)
	}
	return FromBytes(raw)
}

func kindOf(raw []byte) (Kind, error) {
	for kind, prefix := range kindPrefixes {
		if bytes.Equal(raw[:prefixLen], prefix[:]) {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("hash: unrecognized kind prefix %x", raw[:prefixLen])
}

// location derives the 4-byte DHT location trailer by XOR-folding a 16-byte
// blake2b digest of the content digest.
func location(digest []byte) []byte {
	hasher, err := blake2b.New(16, nil)
	if err != nil {
		panic(err) // only fails for bad key/size arguments
	}
	hasher.Write(digest)
	folded := hasher.Sum(nil)

	loc := make([]byte, locationLen)
	copy(loc, folded[:locationLen])
	for i := locationLen; i < len(folded); i += locationLen {
		for j := 0; j < locationLen; j++ {
			loc[j] ^= folded[i+j]
		}
	}
	return loc
}

// IsValid reports whether h carries a well-formed address.
func (h Hash) IsValid() bool { return h.ok }

// Kind returns what the hash addresses.
func (h Hash) Kind() Kind {
	kind, err := kindOf(h.raw[:])
	if err != nil {
		return KindExternal
	}
	return kind
}

// Bytes returns a copy of the raw 39-byte address.
func (h Hash) Bytes() []byte {
	out := make([]byte, Size)
	copy(out, h.raw[:])
	return out
}

// Digest returns the 32-byte digest portion.
func (h Hash) Digest() []byte {
	out := make([]byte, digestLen)
	copy(out, h.raw[prefixLen:prefixLen+digestLen])
	return out
}

// String returns the canonical text form.
func (h Hash) String() string {
	if !h.ok {
		return ""
	}
	return textPrefix + b64.EncodeToString(h.raw[:])
}

// IsZero reports whether h is the zero value. msgpack consults this for
// omitempty fields; without it a set Hash would be judged empty because it
// exports no fields.
func (h Hash) IsZero() bool { return !h.ok }

// Equal reports byte equality.
func (h Hash) Equal(other Hash) bool {
	return h.ok == other.ok && h.raw == other.raw
}

// EncodeMsgpack encodes the hash as its raw 39 bytes. The zero value
// encodes as nil so optional hash fields round-trip.
func (h Hash) EncodeMsgpack(enc *msgpack.Encoder) error {
	if !h.ok {
		return enc.EncodeNil()
	}
	return enc.EncodeBytes(h.raw[:])
}

// DecodeMsgpack decodes a hash from its raw byte form.
func (h *Hash) DecodeMsgpack(dec *msgpack.Decoder) error {
	raw, err := dec.DecodeBytes()
	if err != nil {
		return err
	}
	if raw == nil {
		*h = Hash{}
		return nil
	}
	parsed, err := FromBytes(raw)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

var (
	_ msgpack.CustomEncoder = Hash{}
	_ msgpack.CustomDecoder = (*Hash)(nil)
)
